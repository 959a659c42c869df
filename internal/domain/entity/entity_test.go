package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole(t *testing.T) {
	assert.True(t, RoleDoctor.Valid())
	assert.True(t, RolePatient.Valid())
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())

	assert.Equal(t, "/dashboard/doctor/", RoleDoctor.DashboardPath())
	assert.Equal(t, "/dashboard/patient/", RolePatient.DashboardPath())
	assert.Empty(t, Role("nurse").DashboardPath())
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("")
	assert.True(t, ok)
	assert.Equal(t, RolePatient, role)

	role, ok = ParseRole("doctor")
	assert.True(t, ok)
	assert.Equal(t, RoleDoctor, role)

	_, ok = ParseRole("Doctor")
	assert.False(t, ok)
}

func TestNewPlaceholderPatient(t *testing.T) {
	patient := NewPlaceholderPatient(9, "555-0100")

	assert.Equal(t, uint(9), patient.AccountID)
	require.NotNil(t, patient.Age)
	assert.Equal(t, 0, *patient.Age)
	require.NotNil(t, patient.Gender)
	assert.Equal(t, GenderNotSpecified, *patient.Gender)
	require.NotNil(t, patient.Phone)
	assert.Equal(t, "555-0100", *patient.Phone)
}

func TestDisplayName(t *testing.T) {
	account := Account{Username: "dr_jane"}
	assert.Equal(t, "dr_jane", account.DisplayName())

	account.FullName = "Jane Roe"
	assert.Equal(t, "Jane Roe", account.DisplayName())

	doctor := Doctor{Account: account}
	assert.Equal(t, "Dr. Jane Roe", doctor.DisplayName())
}

func TestAuditMetadataValueAndScan(t *testing.T) {
	value, err := AuditMetadata{}.Value()
	require.NoError(t, err)
	assert.Nil(t, value)

	value, err = AuditMetadata{"entity": "appointment"}.Value()
	require.NoError(t, err)

	var scanned AuditMetadata
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, "appointment", scanned["entity"])

	require.NoError(t, scanned.Scan(`{"entity_id": 7}`))
	assert.Equal(t, float64(7), scanned["entity_id"])

	require.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned)

	assert.Error(t, scanned.Scan(42))
}
