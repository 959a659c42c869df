package repository

import (
	"context"

	"hospital-management/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	FindByAccountID(ctx context.Context, db *gorm.DB, accountID uint) (*entity.Patient, error)
}
