package service

import (
	"context"

	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const auditSavePoint = "audit_log"

type AuditService interface {
	LogCreate(ctx context.Context, tx *gorm.DB, accountID *uint, action string, entityName string, entityID uint, newValue interface{}) error
	LogDelete(ctx context.Context, tx *gorm.DB, accountID *uint, action string, entityName string, entityID uint, oldValue interface{}) error
	LogEvent(ctx context.Context, accountID *uint, action string, details entity.AuditMetadata) error
}

type auditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action inside the caller's transaction
func (s *auditService) LogCreate(ctx context.Context, tx *gorm.DB, accountID *uint, action string, entityName string, entityID uint, newValue interface{}) error {
	metadata := entity.AuditMetadata{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": nil,
		"new_value": newValue,
	}

	return s.writeInTx(ctx, tx, &entity.AuditLog{
		AccountID: accountID,
		Action:    action,
		Metadata:  metadata,
	})
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, tx *gorm.DB, accountID *uint, action string, entityName string, entityID uint, oldValue interface{}) error {
	metadata := entity.AuditMetadata{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": nil,
	}

	return s.writeInTx(ctx, tx, &entity.AuditLog{
		AccountID: accountID,
		Action:    action,
		Metadata:  metadata,
	})
}

// LogEvent logs an action that is not tied to a transaction (sign in, sign out).
func (s *auditService) LogEvent(ctx context.Context, accountID *uint, action string, details entity.AuditMetadata) error {
	auditLog := &entity.AuditLog{
		AccountID: accountID,
		Action:    action,
		Metadata:  details,
	}

	if err := s.auditRepo.Create(ctx, s.db, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}

// writeInTx wraps the insert in a savepoint: a failed audit write must not
// abort the surrounding transaction.
func (s *auditService) writeInTx(ctx context.Context, tx *gorm.DB, auditLog *entity.AuditLog) error {
	if err := tx.SavePoint(auditSavePoint).Error; err != nil {
		s.log.Warnf("Failed to create audit savepoint: %+v", err)
		return err
	}

	if err := s.auditRepo.Create(ctx, tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		if rbErr := tx.RollbackTo(auditSavePoint).Error; rbErr != nil {
			s.log.Warnf("Failed to roll back audit savepoint: %+v", rbErr)
		}
		return err
	}

	return nil
}
