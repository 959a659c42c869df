package repository

import (
	"context"
	"time"

	"hospital-management/internal/domain/entity"

	"gorm.io/gorm"
)

type DepartmentRepository interface {
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Department, error)
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Department, error)
}

type SpecializationRepository interface {
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Specialization, error)
}

type DoctorRepository interface {
	Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Doctor, error)
	FindByAccountID(ctx context.Context, db *gorm.DB, accountID uint) (*entity.Doctor, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Doctor, error)
}

type AvailabilityRepository interface {
	Create(ctx context.Context, db *gorm.DB, availability *entity.Availability) error
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Availability, error)
	FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uint, from time.Time) ([]entity.Availability, error)
	Delete(ctx context.Context, db *gorm.DB, id uint, doctorID uint) (int64, error)
}
