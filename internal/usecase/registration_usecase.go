package usecase

import (
	"context"
	"strings"

	"hospital-management/internal/converter"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/repository"
	"hospital-management/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegistrationUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AccountResponse, error)
	RegisterForm() *dto.RegisterFormResponse
}

type registrationUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	provisioner        *accountProvisioner
	accountRepo        repository.AccountRepository
	departmentRepo     repository.DepartmentRepository
	specializationRepo repository.SpecializationRepository
	doctorRepo         repository.DoctorRepository
	patientRepo        repository.PatientRepository
	auditService       service.AuditService
}

func NewRegistrationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	accountRepo repository.AccountRepository,
	profileRepo repository.ProfileRepository,
	departmentRepo repository.DepartmentRepository,
	specializationRepo repository.SpecializationRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) RegistrationUsecase {
	return &registrationUsecase{
		db:                 db,
		log:                log,
		provisioner:        newAccountProvisioner(log, accountRepo, profileRepo),
		accountRepo:        accountRepo,
		departmentRepo:     departmentRepo,
		specializationRepo: specializationRepo,
		doctorRepo:         doctorRepo,
		patientRepo:        patientRepo,
		auditService:       auditService,
	}
}

// Register creates the account, its profile and the role record in one
// transaction. Any failure leaves nothing behind.
func (u *registrationUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AccountResponse, error) {
	if !req.Role.Valid() {
		return nil, ErrInvalidRole
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return nil, ErrMissingField
	}
	if req.ConfirmPassword != nil && *req.ConfirmPassword != req.Password {
		return nil, ErrPasswordMismatch
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	exists, err := u.accountRepo.ExistsByUsername(ctx, tx, req.Username)
	if err != nil {
		u.log.Warnf("Failed to check username %q: %+v", req.Username, err)
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateUsername
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	account := &entity.Account{
		Username: req.Username,
		Password: string(hashedPassword),
		Email:    req.Email,
		FullName: req.FullName,
	}
	profile, err := u.provisioner.provision(ctx, tx, account, req.Role)
	if err != nil {
		return nil, err
	}

	switch profile.Role {
	case entity.RoleDoctor:
		if err := u.createDoctor(ctx, tx, account.ID, req.Doctor); err != nil {
			return nil, err
		}
	case entity.RolePatient:
		patient := entity.NewPlaceholderPatient(account.ID, "")
		if err := u.patientRepo.Create(ctx, tx, patient); err != nil {
			u.log.Warnf("Failed to create patient for account %d: %+v", account.ID, err)
			return nil, err
		}
	default:
		return nil, ErrInvalidRole
	}

	response := converter.AccountToResponse(account, profile.Role)
	if err := u.auditService.LogCreate(ctx, tx, &account.ID, entity.AuditActionAccountRegister, "account", account.ID, response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Account registered: id=%d, username=%s, role=%s", account.ID, account.Username, profile.Role)
	return response, nil
}

func (u *registrationUsecase) createDoctor(ctx context.Context, tx *gorm.DB, accountID uint, details *dto.DoctorDetails) error {
	doctor := &entity.Doctor{AccountID: accountID}

	if details != nil {
		doctor.Phone = details.Phone
		doctor.Experience = details.Experience

		if details.SpecializationID != nil {
			specialization, err := u.specializationRepo.FindByID(ctx, tx, *details.SpecializationID)
			if err != nil {
				u.log.Warnf("Failed to find specialization %d: %+v", *details.SpecializationID, err)
				return err
			}
			if specialization == nil {
				return ErrSpecializationNotFound
			}
			doctor.SpecializationID = &specialization.ID
			doctor.DepartmentID = specialization.DepartmentID
		}

		if details.DepartmentID != nil {
			department, err := u.departmentRepo.FindByID(ctx, tx, *details.DepartmentID)
			if err != nil {
				u.log.Warnf("Failed to find department %d: %+v", *details.DepartmentID, err)
				return err
			}
			if department == nil {
				return ErrDepartmentNotFound
			}
			doctor.DepartmentID = &department.ID
		}
	}

	if err := u.doctorRepo.Create(ctx, tx, doctor); err != nil {
		u.log.Warnf("Failed to create doctor for account %d: %+v", accountID, err)
		return err
	}
	return nil
}

// RegisterForm returns the context of the generic registration page.
func (u *registrationUsecase) RegisterForm() *dto.RegisterFormResponse {
	roles := entity.Roles()
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}
	return &dto.RegisterFormResponse{Roles: names}
}
