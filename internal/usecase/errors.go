package usecase

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrDuplicateUsername      = errors.New("username already exists")
	ErrPasswordMismatch       = errors.New("passwords do not match")
	ErrMissingField           = errors.New("please fill all required fields")
	ErrInvalidRole            = errors.New("invalid role")
	ErrDepartmentNotFound     = errors.New("department not found")
	ErrSpecializationNotFound = errors.New("specialization not found")

	ErrDoctorNotFound  = errors.New("doctor not found")
	ErrPatientNotFound = errors.New("patient not found")
	ErrSlotTaken       = errors.New("slot already booked")
	ErrInvalidDate     = errors.New("invalid date format, use YYYY-MM-DD")

	ErrInvalidTimeFormat    = errors.New("invalid time format, use HH:MM")
	ErrInvalidTimeRange     = errors.New("end time must be after start time")
	ErrAvailabilityExists   = errors.New("availability already exists")
	ErrAvailabilityNotFound = errors.New("availability not found")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrRoleNotAssigned    = errors.New("role not assigned, contact admin")
	ErrRoleMismatch       = errors.New("account does not have the required role")
)

// isDuplicateKeyError checks if err is a unique constraint violation.
// On PostgreSQL the violated constraint name must contain constraintName;
// other drivers are matched through the dialector's error translator.
func isDuplicateKeyError(db *gorm.DB, err error, constraintName string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		return pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName))
	}

	if db != nil {
		if translator, ok := db.Dialector.(gorm.ErrorTranslator); ok {
			return errors.Is(translator.Translate(err), gorm.ErrDuplicatedKey)
		}
	}
	return false
}
