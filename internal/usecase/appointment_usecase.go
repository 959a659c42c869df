package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"hospital-management/internal/converter"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/repository"
	"hospital-management/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const bookingAccountSavePoint = "booking_account"

type AppointmentUsecase interface {
	Book(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	BookingForm(ctx context.Context) (*dto.BookingFormResponse, error)
	ListDoctorAppointments(ctx context.Context, doctorID uint) (*dto.AppointmentListResponse, error)
	ListPatientAppointments(ctx context.Context, patientID uint) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	provisioner     *accountProvisioner
	accountRepo     repository.AccountRepository
	departmentRepo  repository.DepartmentRepository
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	accountRepo repository.AccountRepository,
	profileRepo repository.ProfileRepository,
	departmentRepo repository.DepartmentRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		provisioner:     newAccountProvisioner(log, accountRepo, profileRepo),
		accountRepo:     accountRepo,
		departmentRepo:  departmentRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

// Book places a pending appointment at the default time of day.
//
// Flow:
// 1. Validate input and resolve the doctor
// 2. Find or create the account keyed by email (with a patient profile)
// 3. Find or create the patient for that account
// 4. Insert the appointment; the slot unique index decides races
func (u *appointmentUsecase) Book(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	if strings.TrimSpace(req.PatientName) == "" || strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Phone) == "" || req.DepartmentID == 0 || req.DoctorID == 0 ||
		strings.TrimSpace(req.AppointmentDate) == "" {
		return nil, ErrMissingField
	}

	date, err := time.Parse(entity.DateLayout, req.AppointmentDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// Step 1: Resolve doctor
	doctor, err := u.doctorRepo.FindByID(ctx, tx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	// Step 2: Find or create account
	account, err := u.findOrCreateAccount(ctx, tx, req)
	if err != nil {
		return nil, err
	}

	// Step 3: Find or create patient
	patient, err := u.patientRepo.FindByAccountID(ctx, tx, account.ID)
	if err != nil {
		u.log.Warnf("Failed to find patient for account %d: %+v", account.ID, err)
		return nil, err
	}
	if patient == nil {
		patient = entity.NewPlaceholderPatient(account.ID, req.Phone)
		if err := u.patientRepo.Create(ctx, tx, patient); err != nil {
			u.log.Warnf("Failed to create patient for account %d: %+v", account.ID, err)
			return nil, err
		}
	}
	patient.Account = *account

	// Step 4: Insert appointment
	appointment := &entity.Appointment{
		DoctorID:  doctor.ID,
		PatientID: patient.ID,
		Date:      date,
		Time:      entity.DefaultAppointmentTime,
		Status:    entity.AppointmentStatusPending,
	}
	if err := u.appointmentRepo.Create(ctx, tx, appointment); err != nil {
		if isDuplicateKeyError(tx, err, "slot") {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}
	appointment.Doctor = *doctor
	appointment.Patient = *patient

	response := converter.AppointmentToResponse(appointment)
	if err := u.auditService.LogCreate(ctx, tx, &account.ID, entity.AuditActionAppointmentBook, "appointment", appointment.ID, response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment booked: id=%d, doctor=%d, patient=%d, date=%s", appointment.ID, doctor.ID, patient.ID, req.AppointmentDate)
	return response, nil
}

// findOrCreateAccount returns the account keyed by the booking email. A
// concurrent booking can insert the same username between the lookup and
// the insert; the savepoint keeps tx usable so the committed row is read
// back and reused.
func (u *appointmentUsecase) findOrCreateAccount(ctx context.Context, tx *gorm.DB, req *dto.BookAppointmentRequest) (*entity.Account, error) {
	account, err := u.accountRepo.FindByUsername(ctx, tx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find account %q: %+v", req.Email, err)
		return nil, err
	}
	if account != nil {
		return account, nil
	}

	if err := tx.SavePoint(bookingAccountSavePoint).Error; err != nil {
		u.log.Warnf("Failed to create savepoint: %+v", err)
		return nil, err
	}

	account = &entity.Account{
		Username: req.Email,
		Password: entity.UnusablePassword,
		Email:    req.Email,
		FullName: req.PatientName,
	}
	_, err = u.provisioner.provision(ctx, tx, account, entity.RolePatient)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, ErrDuplicateUsername) {
		return nil, err
	}

	if err := tx.RollbackTo(bookingAccountSavePoint).Error; err != nil {
		u.log.Warnf("Failed to roll back savepoint: %+v", err)
		return nil, err
	}

	account, err = u.accountRepo.FindByUsername(ctx, tx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find account %q: %+v", req.Email, err)
		return nil, err
	}
	if account == nil {
		return nil, ErrDuplicateUsername
	}

	u.log.Infof("Reusing account %d created by a concurrent booking", account.ID)
	return account, nil
}

// BookingForm returns the departments and doctors offered by the booking page.
func (u *appointmentUsecase) BookingForm(ctx context.Context) (*dto.BookingFormResponse, error) {
	departments, err := u.departmentRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find departments: %+v", err)
		return nil, err
	}

	doctors, err := u.doctorRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}

	return &dto.BookingFormResponse{
		Departments: converter.DepartmentsToResponses(departments),
		Doctors:     converter.DoctorsToResponses(doctors),
	}, nil
}

func (u *appointmentUsecase) ListDoctorAppointments(ctx context.Context, doctorID uint) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByDoctorID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %d: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) ListPatientAppointments(ctx context.Context, patientID uint) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatientID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %d: %+v", patientID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}
