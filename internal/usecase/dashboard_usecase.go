package usecase

import (
	"context"
	"time"

	"hospital-management/internal/converter"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DashboardUsecase interface {
	DoctorDashboard(ctx context.Context, accountID uint) (*dto.DoctorDashboardResponse, error)
	PatientDashboard(ctx context.Context, accountID uint) (*dto.PatientDashboardResponse, error)
}

type dashboardUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	profileRepo      repository.ProfileRepository
	doctorRepo       repository.DoctorRepository
	patientRepo      repository.PatientRepository
	availabilityRepo repository.AvailabilityRepository
	appointments     AppointmentUsecase
}

func NewDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	profileRepo repository.ProfileRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	availabilityRepo repository.AvailabilityRepository,
	appointments AppointmentUsecase,
) DashboardUsecase {
	return &dashboardUsecase{
		db:               db,
		log:              log,
		profileRepo:      profileRepo,
		doctorRepo:       doctorRepo,
		patientRepo:      patientRepo,
		availabilityRepo: availabilityRepo,
		appointments:     appointments,
	}
}

// requireRole re-reads the profile so a role change applies to sessions
// opened before it.
func (u *dashboardUsecase) requireRole(ctx context.Context, accountID uint, want entity.Role) error {
	profile, err := u.profileRepo.FindByAccountID(ctx, u.db, accountID)
	if err != nil {
		u.log.Warnf("Failed to find profile for account %d: %+v", accountID, err)
		return err
	}
	if profile == nil || !profile.Role.Valid() {
		return ErrRoleNotAssigned
	}
	if profile.Role != want {
		return ErrRoleMismatch
	}
	return nil
}

func (u *dashboardUsecase) DoctorDashboard(ctx context.Context, accountID uint) (*dto.DoctorDashboardResponse, error) {
	if err := u.requireRole(ctx, accountID, entity.RoleDoctor); err != nil {
		return nil, err
	}

	doctor, err := u.doctorRepo.FindByAccountID(ctx, u.db, accountID)
	if err != nil {
		u.log.Warnf("Failed to find doctor for account %d: %+v", accountID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	appointments, err := u.appointments.ListDoctorAppointments(ctx, doctor.ID)
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	availabilities, err := u.availabilityRepo.FindByDoctorID(ctx, u.db, doctor.ID, today)
	if err != nil {
		u.log.Warnf("Failed to find availability for doctor %d: %+v", doctor.ID, err)
		return nil, err
	}

	return &dto.DoctorDashboardResponse{
		Doctor:       *converter.DoctorToResponse(doctor),
		Appointments: appointments.Appointments,
		Availability: converter.AvailabilitiesToResponses(availabilities),
	}, nil
}

func (u *dashboardUsecase) PatientDashboard(ctx context.Context, accountID uint) (*dto.PatientDashboardResponse, error) {
	if err := u.requireRole(ctx, accountID, entity.RolePatient); err != nil {
		return nil, err
	}

	patient, err := u.patientRepo.FindByAccountID(ctx, u.db, accountID)
	if err != nil {
		u.log.Warnf("Failed to find patient for account %d: %+v", accountID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	appointments, err := u.appointments.ListPatientAppointments(ctx, patient.ID)
	if err != nil {
		return nil, err
	}

	return &dto.PatientDashboardResponse{
		Patient:      *converter.PatientToResponse(patient),
		Appointments: appointments.Appointments,
	}, nil
}
