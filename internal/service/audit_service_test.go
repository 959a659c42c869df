package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"hospital-management/internal/domain/entity"
	"hospital-management/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuditTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_audit_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.Account{}, &entity.AuditLog{}))
	return db
}

func TestAuditService_LogCreateInTransaction(t *testing.T) {
	db := setupAuditTestDB(t)
	svc := NewAuditService(db, quietLogger(), repository.NewAuditLogRepository())
	ctx := context.Background()

	tx := db.Begin()
	account := entity.Account{Username: "amy", Password: "x"}
	require.NoError(t, tx.Create(&account).Error)
	require.NoError(t, svc.LogCreate(ctx, tx, &account.ID, entity.AuditActionAccountRegister, "account", account.ID, map[string]string{"username": "amy"}))
	require.NoError(t, tx.Commit().Error)

	var log entity.AuditLog
	require.NoError(t, db.First(&log).Error)
	assert.Equal(t, entity.AuditActionAccountRegister, log.Action)
	assert.Equal(t, "account", log.Metadata["entity"])
	assert.Nil(t, log.Metadata["old_value"])
	require.NotNil(t, log.AccountID)
	assert.Equal(t, account.ID, *log.AccountID)
}

func TestAuditService_FailedWriteKeepsTransaction(t *testing.T) {
	db := setupAuditTestDB(t)
	svc := NewAuditService(db, quietLogger(), repository.NewAuditLogRepository())
	ctx := context.Background()
	require.NoError(t, db.Migrator().DropTable(&entity.AuditLog{}))

	tx := db.Begin()
	first := entity.Account{Username: "amy", Password: "x"}
	require.NoError(t, tx.Create(&first).Error)

	err := svc.LogDelete(ctx, tx, &first.ID, entity.AuditActionAvailabilityDelete, "availability", 1, nil)
	assert.Error(t, err)

	require.NoError(t, tx.Create(&entity.Account{Username: "bob", Password: "x"}).Error)
	require.NoError(t, tx.Commit().Error)

	var count int64
	require.NoError(t, db.Model(&entity.Account{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestAuditService_LogEvent(t *testing.T) {
	db := setupAuditTestDB(t)
	svc := NewAuditService(db, quietLogger(), repository.NewAuditLogRepository())

	require.NoError(t, svc.LogEvent(context.Background(), nil, entity.AuditActionSessionLogout, entity.AuditMetadata{"token_id": "abc"}))

	var log entity.AuditLog
	require.NoError(t, db.First(&log).Error)
	assert.Nil(t, log.AccountID)
	assert.Equal(t, "abc", log.Metadata["token_id"])
}
