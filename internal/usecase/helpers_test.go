package usecase

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"hospital-management/config"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/repository"
	"hospital-management/internal/service"
	"hospital-management/pkg/jwt"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_usecase_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entity.Account{},
		&entity.Profile{},
		&entity.Department{},
		&entity.Specialization{},
		&entity.Doctor{},
		&entity.Availability{},
		&entity.Patient{},
		&entity.Appointment{},
		&entity.AuditLog{},
	)
	require.NoError(t, err)

	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestAuditService(db *gorm.DB, log *logrus.Logger) service.AuditService {
	return service.NewAuditService(db, log, repository.NewAuditLogRepository())
}

func newTestJWTService() *jwt.JWTService {
	return jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", SessionExpiry: time.Hour})
}

func newRegistrationUsecase(db *gorm.DB) RegistrationUsecase {
	log := newTestLogger()
	return NewRegistrationUsecase(
		db,
		log,
		repository.NewAccountRepository(),
		repository.NewProfileRepository(),
		repository.NewDepartmentRepository(),
		repository.NewSpecializationRepository(),
		repository.NewDoctorRepository(),
		repository.NewPatientRepository(),
		newTestAuditService(db, log),
	)
}

func newAppointmentUsecase(db *gorm.DB) AppointmentUsecase {
	log := newTestLogger()
	return NewAppointmentUsecase(
		db,
		log,
		repository.NewAccountRepository(),
		repository.NewProfileRepository(),
		repository.NewDepartmentRepository(),
		repository.NewDoctorRepository(),
		repository.NewPatientRepository(),
		repository.NewAppointmentRepository(),
		newTestAuditService(db, log),
	)
}

func newDirectoryUsecase(db *gorm.DB) DirectoryUsecase {
	log := newTestLogger()
	return NewDirectoryUsecase(
		db,
		log,
		repository.NewDepartmentRepository(),
		repository.NewDoctorRepository(),
		repository.NewAvailabilityRepository(),
		newTestAuditService(db, log),
	)
}

func newDashboardUsecase(db *gorm.DB) DashboardUsecase {
	return NewDashboardUsecase(
		db,
		newTestLogger(),
		repository.NewProfileRepository(),
		repository.NewDoctorRepository(),
		repository.NewPatientRepository(),
		repository.NewAvailabilityRepository(),
		newAppointmentUsecase(db),
	)
}

// fakeSessionStore keeps sessions in memory.
type fakeSessionStore struct {
	sessions map[string]time.Duration
	err      error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]time.Duration{}}
}

func (s *fakeSessionStore) Open(_ context.Context, accountID uint, tokenID string, ttl time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.sessions[service.SessionKey(accountID, tokenID)] = ttl
	return nil
}

func (s *fakeSessionStore) IsActive(_ context.Context, accountID uint, tokenID string) (bool, error) {
	_, ok := s.sessions[service.SessionKey(accountID, tokenID)]
	return ok, s.err
}

func (s *fakeSessionStore) Close(_ context.Context, accountID uint, tokenID string) error {
	if s.err != nil {
		return s.err
	}
	delete(s.sessions, service.SessionKey(accountID, tokenID))
	return nil
}

func mustSeedDirectory(t *testing.T, db *gorm.DB) {
	t.Helper()
	departmentID := uint(1)
	require.NoError(t, db.Create(&entity.Department{ID: departmentID, Name: "Cardiology"}).Error)
	require.NoError(t, db.Create(&entity.Department{ID: 2, Name: "Neurology"}).Error)
	require.NoError(t, db.Create(&entity.Specialization{ID: 3, Name: "Interventional Cardiology", DepartmentID: &departmentID}).Error)
	require.NoError(t, db.Create(&entity.Specialization{ID: 4, Name: "General Practice"}).Error)
}

// mustCreateAccount creates an account with a bcrypt hash of password and,
// when role is not empty, a profile holding it.
func mustCreateAccount(t *testing.T, db *gorm.DB, username, password string, role entity.Role) entity.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	account := entity.Account{Username: username, Password: string(hash), FullName: username}
	require.NoError(t, db.Create(&account).Error)
	if role != "" {
		require.NoError(t, db.Create(&entity.Profile{AccountID: account.ID, Role: role}).Error)
	}
	return account
}

func mustCreateDoctor(t *testing.T, db *gorm.DB, id uint, username string) entity.Doctor {
	t.Helper()
	account := mustCreateAccount(t, db, username, "secret", entity.RoleDoctor)
	doctor := entity.Doctor{ID: id, AccountID: account.ID}
	require.NoError(t, db.Omit("Account", "Department", "Specialization").Create(&doctor).Error)
	doctor.Account = account
	return doctor
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}
