package repository

import (
	"context"

	"hospital-management/internal/domain/entity"

	"gorm.io/gorm"
)

type AccountRepository interface {
	Create(ctx context.Context, db *gorm.DB, account *entity.Account) error
	FindByUsername(ctx context.Context, db *gorm.DB, username string) (*entity.Account, error)
	ExistsByUsername(ctx context.Context, db *gorm.DB, username string) (bool, error)
}

type ProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *entity.Profile) error
	FindByAccountID(ctx context.Context, db *gorm.DB, accountID uint) (*entity.Profile, error)
}
