package usecase

import (
	"context"
	"strings"

	"hospital-management/internal/converter"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/repository"
	"hospital-management/internal/service"
	"hospital-management/pkg/jwt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SessionUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, accountID uint, tokenID string) error
}

type sessionUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	accountRepo  repository.AccountRepository
	profileRepo  repository.ProfileRepository
	jwtService   *jwt.JWTService
	sessionStore service.SessionStore
	auditService service.AuditService
}

func NewSessionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	accountRepo repository.AccountRepository,
	profileRepo repository.ProfileRepository,
	jwtService *jwt.JWTService,
	sessionStore service.SessionStore,
	auditService service.AuditService,
) SessionUsecase {
	return &sessionUsecase{
		db:           db,
		log:          log,
		accountRepo:  accountRepo,
		profileRepo:  profileRepo,
		jwtService:   jwtService,
		sessionStore: sessionStore,
		auditService: auditService,
	}
}

// Login checks the credentials, resolves the account's role and opens a
// session. The response names the dashboard for that role.
func (u *sessionUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return nil, ErrMissingField
	}

	// Read-only, no transaction needed
	account, err := u.accountRepo.FindByUsername(ctx, u.db, req.Username)
	if err != nil {
		u.log.Warnf("Failed to find account by username: %+v", err)
		return nil, err
	}
	if account == nil || account.Password == entity.UnusablePassword {
		return nil, ErrInvalidCredentials
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	profile, err := u.profileRepo.FindByAccountID(ctx, u.db, account.ID)
	if err != nil {
		u.log.Warnf("Failed to find profile for account %d: %+v", account.ID, err)
		return nil, err
	}

	var role entity.Role
	if profile != nil {
		role = profile.Role
	}

	var redirect string
	switch role {
	case entity.RoleDoctor, entity.RolePatient:
		redirect = role.DashboardPath()
	default:
		// No session is opened, so the account is left signed out.
		u.log.Warnf("Account %d has no valid role (%q)", account.ID, role)
		if err := u.auditService.LogEvent(ctx, &account.ID, entity.AuditActionSessionRoleMissing, entity.AuditMetadata{"role": string(role)}); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
		return nil, ErrRoleNotAssigned
	}

	token, tokenID, err := u.jwtService.GenerateSessionToken(account.ID, account.Username, string(role))
	if err != nil {
		u.log.Warnf("Failed to generate session token: %+v", err)
		return nil, err
	}

	if err := u.sessionStore.Open(ctx, account.ID, tokenID, u.jwtService.GetSessionExpiry()); err != nil {
		return nil, err
	}

	if err := u.auditService.LogEvent(ctx, &account.ID, entity.AuditActionSessionLogin, entity.AuditMetadata{"token_id": tokenID}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int64(u.jwtService.GetSessionExpiry().Seconds()),
		Redirect:  redirect,
		Account:   *converter.AccountToResponse(account, role),
	}, nil
}

// Logout closes the session if there is one. Calling it without a session
// is not an error.
func (u *sessionUsecase) Logout(ctx context.Context, accountID uint, tokenID string) error {
	if tokenID == "" {
		return nil
	}

	if err := u.sessionStore.Close(ctx, accountID, tokenID); err != nil {
		return err
	}

	if err := u.auditService.LogEvent(ctx, &accountID, entity.AuditActionSessionLogout, entity.AuditMetadata{"token_id": tokenID}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}
