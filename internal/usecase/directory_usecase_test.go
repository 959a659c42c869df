package usecase

import (
	"context"
	"testing"
	"time"

	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format(entity.DateLayout)
}

func TestListDepartments_WithSpecializations(t *testing.T) {
	db := setupTestDB(t)
	mustSeedDirectory(t, db)
	uc := newDirectoryUsecase(db)

	list, err := uc.ListDepartments(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, "Cardiology", list.Departments[0].Name)
	require.Len(t, list.Departments[0].Specializations, 1)
	assert.Equal(t, uint(3), list.Departments[0].Specializations[0].ID)
	assert.Empty(t, list.Departments[1].Specializations)
}

func TestListDoctors(t *testing.T) {
	db := setupTestDB(t)
	mustCreateDoctor(t, db, 7, "dr_jane")
	mustCreateDoctor(t, db, 8, "dr_john")
	uc := newDirectoryUsecase(db)

	list, err := uc.ListDoctors(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, "dr_jane", list.Doctors[0].Username)
	assert.Equal(t, "Dr. dr_john", list.Doctors[1].Name)
}

func TestAddAvailability(t *testing.T) {
	db := setupTestDB(t)
	doctor := mustCreateDoctor(t, db, 7, "dr_jane")
	uc := newDirectoryUsecase(db)
	ctx := context.Background()

	later, err := uc.AddAvailability(ctx, doctor.AccountID, &dto.CreateAvailabilityRequest{Date: futureDate(2), StartTime: "13:00", EndTime: "17:00"})
	require.NoError(t, err)
	assert.Equal(t, uint(7), later.DoctorID)

	sooner, err := uc.AddAvailability(ctx, doctor.AccountID, &dto.CreateAvailabilityRequest{Date: futureDate(1), StartTime: "09:00", EndTime: "12:00"})
	require.NoError(t, err)

	list, err := uc.ListAvailability(ctx, doctor.ID)
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, sooner.ID, list.Availability[0].ID)
	assert.Equal(t, "09:00", list.Availability[0].StartTime)
	assert.Equal(t, later.ID, list.Availability[1].ID)

	_, err = uc.AddAvailability(ctx, doctor.AccountID, &dto.CreateAvailabilityRequest{Date: futureDate(1), StartTime: "09:00", EndTime: "12:00"})
	assert.ErrorIs(t, err, ErrAvailabilityExists)
}

func TestAddAvailability_Validation(t *testing.T) {
	db := setupTestDB(t)
	doctor := mustCreateDoctor(t, db, 7, "dr_jane")
	patient := mustCreateAccount(t, db, "amy", "pw", entity.RolePatient)
	uc := newDirectoryUsecase(db)
	ctx := context.Background()

	tests := []struct {
		name      string
		accountID uint
		req       dto.CreateAvailabilityRequest
		wantErr   error
	}{
		{"bad date", doctor.AccountID, dto.CreateAvailabilityRequest{Date: "tomorrow", StartTime: "09:00", EndTime: "10:00"}, ErrInvalidDate},
		{"bad start", doctor.AccountID, dto.CreateAvailabilityRequest{Date: futureDate(1), StartTime: "9am", EndTime: "10:00"}, ErrInvalidTimeFormat},
		{"bad end", doctor.AccountID, dto.CreateAvailabilityRequest{Date: futureDate(1), StartTime: "09:00", EndTime: "25:00"}, ErrInvalidTimeFormat},
		{"end equals start", doctor.AccountID, dto.CreateAvailabilityRequest{Date: futureDate(1), StartTime: "09:00", EndTime: "09:00"}, ErrInvalidTimeRange},
		{"end before start", doctor.AccountID, dto.CreateAvailabilityRequest{Date: futureDate(1), StartTime: "10:00", EndTime: "09:00"}, ErrInvalidTimeRange},
		{"not a doctor", patient.ID, dto.CreateAvailabilityRequest{Date: futureDate(1), StartTime: "09:00", EndTime: "10:00"}, ErrDoctorNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.AddAvailability(ctx, tt.accountID, &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Zero(t, countRows(t, db, &entity.Availability{}))
}

func TestListAvailability_SkipsPastAndUnknownDoctor(t *testing.T) {
	db := setupTestDB(t)
	doctor := mustCreateDoctor(t, db, 7, "dr_jane")
	past := time.Now().UTC().AddDate(0, 0, -3).Truncate(24 * time.Hour)
	require.NoError(t, db.Omit("Doctor").Create(&entity.Availability{DoctorID: doctor.ID, Date: past, StartTime: "09:00", EndTime: "10:00"}).Error)
	uc := newDirectoryUsecase(db)

	list, err := uc.ListAvailability(context.Background(), doctor.ID)
	require.NoError(t, err)
	assert.Zero(t, list.Total)

	_, err = uc.ListAvailability(context.Background(), 404)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestRemoveAvailability(t *testing.T) {
	db := setupTestDB(t)
	jane := mustCreateDoctor(t, db, 7, "dr_jane")
	john := mustCreateDoctor(t, db, 8, "dr_john")
	uc := newDirectoryUsecase(db)
	ctx := context.Background()

	window, err := uc.AddAvailability(ctx, jane.AccountID, &dto.CreateAvailabilityRequest{Date: futureDate(1), StartTime: "09:00", EndTime: "12:00"})
	require.NoError(t, err)

	err = uc.RemoveAvailability(ctx, john.AccountID, window.ID)
	assert.ErrorIs(t, err, ErrAvailabilityNotFound)
	assert.Equal(t, int64(1), countRows(t, db, &entity.Availability{}))

	require.NoError(t, uc.RemoveAvailability(ctx, jane.AccountID, window.ID))
	assert.Zero(t, countRows(t, db, &entity.Availability{}))

	err = uc.RemoveAvailability(ctx, jane.AccountID, window.ID)
	assert.ErrorIs(t, err, ErrAvailabilityNotFound)

	var deletes int64
	require.NoError(t, db.Model(&entity.AuditLog{}).Where("action = ?", entity.AuditActionAvailabilityDelete).Count(&deletes).Error)
	assert.Equal(t, int64(1), deletes)
}
