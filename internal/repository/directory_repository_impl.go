package repository

import (
	"context"
	"errors"
	"time"

	"hospital-management/internal/domain/entity"
	domainRepo "hospital-management/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Department Repository

type departmentRepository struct{}

func NewDepartmentRepository() domainRepo.DepartmentRepository {
	return &departmentRepository{}
}

func (r *departmentRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Department, error) {
	var departments []entity.Department
	err := db.WithContext(ctx).
		Preload("Specializations", func(db *gorm.DB) *gorm.DB {
			return db.Order("specializations.name ASC")
		}).
		Order("name ASC").
		Find(&departments).Error
	if err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *departmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Department, error) {
	var department entity.Department
	err := db.WithContext(ctx).Where("id = ?", id).First(&department).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &department, nil
}

// Specialization Repository

type specializationRepository struct{}

func NewSpecializationRepository() domainRepo.SpecializationRepository {
	return &specializationRepository{}
}

func (r *specializationRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Specialization, error) {
	var specialization entity.Specialization
	err := db.WithContext(ctx).Where("id = ?", id).First(&specialization).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &specialization, nil
}

// Doctor Repository

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(doctor).Error
}

func (r *doctorRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.WithContext(ctx).
		Preload("Account").Preload("Department").Preload("Specialization").
		Where("id = ?", id).
		First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByAccountID(ctx context.Context, db *gorm.DB, accountID uint) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.WithContext(ctx).
		Preload("Account").Preload("Department").Preload("Specialization").
		Where("account_id = ?", accountID).
		First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.WithContext(ctx).
		Preload("Account").Preload("Department").Preload("Specialization").
		Order("id ASC").
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

// Availability Repository

type availabilityRepository struct{}

func NewAvailabilityRepository() domainRepo.AvailabilityRepository {
	return &availabilityRepository{}
}

func (r *availabilityRepository) Create(ctx context.Context, db *gorm.DB, availability *entity.Availability) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(availability).Error
}

func (r *availabilityRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Availability, error) {
	var availability entity.Availability
	err := db.WithContext(ctx).Where("id = ?", id).First(&availability).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &availability, nil
}

// FindByDoctorID returns a doctor's windows on or after from, ordered by date then start time.
func (r *availabilityRepository) FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uint, from time.Time) ([]entity.Availability, error) {
	var availabilities []entity.Availability
	err := db.WithContext(ctx).
		Where("availabilities.doctor_id = ? AND availabilities.date >= ?", doctorID, from).
		Order("availabilities.date ASC, availabilities.start_time ASC").
		Find(&availabilities).Error
	if err != nil {
		return nil, err
	}
	return availabilities, nil
}

// Delete removes a window only if it belongs to doctorID. Returns affected rows.
func (r *availabilityRepository) Delete(ctx context.Context, db *gorm.DB, id uint, doctorID uint) (int64, error) {
	result := db.WithContext(ctx).
		Where("id = ? AND doctor_id = ?", id, doctorID).
		Delete(&entity.Availability{})
	return result.RowsAffected, result.Error
}
