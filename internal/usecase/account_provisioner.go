package usecase

import (
	"context"

	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// accountProvisioner creates an account together with its profile. Both
// rows are written on the caller's transaction, so an account never exists
// without a role.
type accountProvisioner struct {
	log         *logrus.Logger
	accountRepo repository.AccountRepository
	profileRepo repository.ProfileRepository
}

func newAccountProvisioner(log *logrus.Logger, accountRepo repository.AccountRepository, profileRepo repository.ProfileRepository) *accountProvisioner {
	return &accountProvisioner{
		log:         log,
		accountRepo: accountRepo,
		profileRepo: profileRepo,
	}
}

func (p *accountProvisioner) provision(ctx context.Context, tx *gorm.DB, account *entity.Account, role entity.Role) (*entity.Profile, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	if err := p.accountRepo.Create(ctx, tx, account); err != nil {
		if isDuplicateKeyError(tx, err, "username") {
			return nil, ErrDuplicateUsername
		}
		p.log.Warnf("Failed to create account: %+v", err)
		return nil, err
	}

	profile := &entity.Profile{
		AccountID: account.ID,
		Role:      role,
	}
	if err := p.profileRepo.Create(ctx, tx, profile); err != nil {
		p.log.Warnf("Failed to create profile for account %d: %+v", account.ID, err)
		return nil, err
	}

	return profile, nil
}
