package usecase

import (
	"context"
	"time"

	"hospital-management/internal/converter"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/repository"
	"hospital-management/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// clockLayout is the HH:MM format of availability bounds.
const clockLayout = "15:04"

type DirectoryUsecase interface {
	ListDepartments(ctx context.Context) (*dto.DepartmentListResponse, error)
	ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	ListAvailability(ctx context.Context, doctorID uint) (*dto.AvailabilityListResponse, error)
	AddAvailability(ctx context.Context, accountID uint, req *dto.CreateAvailabilityRequest) (*dto.AvailabilityResponse, error)
	RemoveAvailability(ctx context.Context, accountID uint, availabilityID uint) error
}

type directoryUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	departmentRepo   repository.DepartmentRepository
	doctorRepo       repository.DoctorRepository
	availabilityRepo repository.AvailabilityRepository
	auditService     service.AuditService
}

func NewDirectoryUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	departmentRepo repository.DepartmentRepository,
	doctorRepo repository.DoctorRepository,
	availabilityRepo repository.AvailabilityRepository,
	auditService service.AuditService,
) DirectoryUsecase {
	return &directoryUsecase{
		db:               db,
		log:              log,
		departmentRepo:   departmentRepo,
		doctorRepo:       doctorRepo,
		availabilityRepo: availabilityRepo,
		auditService:     auditService,
	}
}

func (u *directoryUsecase) ListDepartments(ctx context.Context) (*dto.DepartmentListResponse, error) {
	departments, err := u.departmentRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find departments: %+v", err)
		return nil, err
	}

	return &dto.DepartmentListResponse{
		Departments: converter.DepartmentsToResponses(departments),
		Total:       len(departments),
	}, nil
}

func (u *directoryUsecase) ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

// ListAvailability returns the doctor's windows from today onwards.
func (u *directoryUsecase) ListAvailability(ctx context.Context, doctorID uint) (*dto.AvailabilityListResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return u.upcomingAvailability(ctx, doctor.ID)
}

func (u *directoryUsecase) upcomingAvailability(ctx context.Context, doctorID uint) (*dto.AvailabilityListResponse, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	availabilities, err := u.availabilityRepo.FindByDoctorID(ctx, u.db, doctorID, today)
	if err != nil {
		u.log.Warnf("Failed to find availability for doctor %d: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AvailabilityListResponse{
		Availability: converter.AvailabilitiesToResponses(availabilities),
		Total:        len(availabilities),
	}, nil
}

// AddAvailability adds a window for the doctor owning accountID.
func (u *directoryUsecase) AddAvailability(ctx context.Context, accountID uint, req *dto.CreateAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	date, err := time.Parse(entity.DateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	start, err := time.Parse(clockLayout, req.StartTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	end, err := time.Parse(clockLayout, req.EndTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	if !end.After(start) {
		return nil, ErrInvalidTimeRange
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByAccountID(ctx, tx, accountID)
	if err != nil {
		u.log.Warnf("Failed to find doctor for account %d: %+v", accountID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	availability := &entity.Availability{
		DoctorID:  doctor.ID,
		Date:      date,
		StartTime: start.Format(clockLayout),
		EndTime:   end.Format(clockLayout),
	}
	if err := u.availabilityRepo.Create(ctx, tx, availability); err != nil {
		if isDuplicateKeyError(tx, err, "slot") {
			return nil, ErrAvailabilityExists
		}
		u.log.Warnf("Failed to create availability: %+v", err)
		return nil, err
	}

	response := converter.AvailabilityToResponse(availability)
	if err := u.auditService.LogCreate(ctx, tx, &accountID, entity.AuditActionAvailabilityCreate, "availability", availability.ID, response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

// RemoveAvailability deletes a window only when it belongs to the doctor
// owning accountID.
func (u *directoryUsecase) RemoveAvailability(ctx context.Context, accountID uint, availabilityID uint) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByAccountID(ctx, tx, accountID)
	if err != nil {
		u.log.Warnf("Failed to find doctor for account %d: %+v", accountID, err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	availability, err := u.availabilityRepo.FindByID(ctx, tx, availabilityID)
	if err != nil {
		u.log.Warnf("Failed to find availability %d: %+v", availabilityID, err)
		return err
	}
	if availability == nil || availability.DoctorID != doctor.ID {
		return ErrAvailabilityNotFound
	}

	affected, err := u.availabilityRepo.Delete(ctx, tx, availabilityID, doctor.ID)
	if err != nil {
		u.log.Warnf("Failed to delete availability %d: %+v", availabilityID, err)
		return err
	}
	if affected == 0 {
		return ErrAvailabilityNotFound
	}

	oldValue := converter.AvailabilityToResponse(availability)
	if err := u.auditService.LogDelete(ctx, tx, &accountID, entity.AuditActionAvailabilityDelete, "availability", availabilityID, oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
