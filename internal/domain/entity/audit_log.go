package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// AuditLog records who did what. Entries are kept after the acting
// account is deleted, so there is no foreign key on AccountID.
type AuditLog struct {
	ID        int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID *uint         `gorm:"index" json:"account_id,omitempty"`
	Action    string        `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  AuditMetadata `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time     `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// AuditMetadata is stored as jsonb. Empty metadata is written as NULL.
type AuditMetadata map[string]interface{}

func (m AuditMetadata) Value() (driver.Value, error) {
	if len(m) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal audit metadata: %w", err)
	}
	return string(raw), nil
}

func (m *AuditMetadata) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported audit metadata type %T", value)
	}

	decoded := AuditMetadata{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("unmarshal audit metadata: %w", err)
	}
	*m = decoded
	return nil
}

// Audit actions
const (
	AuditActionAccountRegister    = "account.register"
	AuditActionSessionLogin       = "session.login"
	AuditActionSessionLogout      = "session.logout"
	AuditActionSessionRoleMissing = "session.role_missing"
	AuditActionAppointmentBook    = "appointment.book"
	AuditActionAvailabilityCreate = "availability.create"
	AuditActionAvailabilityDelete = "availability.delete"
)
