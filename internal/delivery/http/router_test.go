package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hospital-management/config"
	"hospital-management/internal/delivery/http/handler"
	"hospital-management/internal/delivery/http/middleware"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/repository"
	"hospital-management/internal/service"
	"hospital-management/internal/usecase"
	"hospital-management/pkg/jwt"
	"hospital-management/pkg/response"
	"hospital-management/pkg/validator"

	"github.com/go-redis/redismock/v9"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type memorySessionStore struct {
	active map[string]bool
}

func (s *memorySessionStore) Open(_ context.Context, accountID uint, tokenID string, _ time.Duration) error {
	s.active[service.SessionKey(accountID, tokenID)] = true
	return nil
}

func (s *memorySessionStore) IsActive(_ context.Context, accountID uint, tokenID string) (bool, error) {
	return s.active[service.SessionKey(accountID, tokenID)], nil
}

func (s *memorySessionStore) Close(_ context.Context, accountID uint, tokenID string) error {
	delete(s.active, service.SessionKey(accountID, tokenID))
	return nil
}

type testServer struct {
	router *mux.Router
	db     *gorm.DB
	redis  redismock.ClientMock
	logins int64
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_router_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.Account{}, &entity.Profile{}, &entity.Department{}, &entity.Specialization{},
		&entity.Doctor{}, &entity.Availability{}, &entity.Patient{}, &entity.Appointment{}, &entity.AuditLog{},
	))

	log := logrus.New()
	log.SetOutput(io.Discard)

	redisClient, redisMock := redismock.NewClientMock()
	store := &memorySessionStore{active: map[string]bool{}}
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", SessionExpiry: time.Hour})
	v := validator.NewValidator()

	accountRepo := repository.NewAccountRepository()
	profileRepo := repository.NewProfileRepository()
	departmentRepo := repository.NewDepartmentRepository()
	specializationRepo := repository.NewSpecializationRepository()
	doctorRepo := repository.NewDoctorRepository()
	availabilityRepo := repository.NewAvailabilityRepository()
	patientRepo := repository.NewPatientRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	auditService := service.NewAuditService(db, log, repository.NewAuditLogRepository())

	registrationUsecase := usecase.NewRegistrationUsecase(db, log, accountRepo, profileRepo, departmentRepo, specializationRepo, doctorRepo, patientRepo, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, accountRepo, profileRepo, departmentRepo, doctorRepo, patientRepo, appointmentRepo, auditService)
	directoryUsecase := usecase.NewDirectoryUsecase(db, log, departmentRepo, doctorRepo, availabilityRepo, auditService)
	sessionUsecase := usecase.NewSessionUsecase(db, log, accountRepo, profileRepo, jwtService, store, auditService)
	dashboardUsecase := usecase.NewDashboardUsecase(db, log, profileRepo, doctorRepo, patientRepo, availabilityRepo, appointmentUsecase)

	router := NewRouter(
		handler.NewPageHandler("Hospital Management", config.ClinicConfig{Email: "info@clinic.test"}),
		handler.NewRegistrationHandler(registrationUsecase, directoryUsecase, v),
		handler.NewSessionHandler(sessionUsecase, v, log, false),
		handler.NewAppointmentHandler(appointmentUsecase, v),
		handler.NewDirectoryHandler(directoryUsecase, v),
		handler.NewDashboardHandler(dashboardUsecase),
		middleware.NewAuthMiddleware(jwtService, store, log),
		middleware.NewRateLimiter(redisClient, log, middleware.RateLimitConfig{Limit: 5, Window: 15 * time.Minute}),
		middleware.NewCORSMiddleware("*"),
	)

	return &testServer{router: router.Setup(), db: db, redis: redisMock}
}

func (s *testServer) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "192.0.2.1:40000"
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// login expects one rate limit hit and returns the session cookie.
func (s *testServer) login(t *testing.T, username, password string) (*httptest.ResponseRecorder, *http.Cookie) {
	t.Helper()
	key := middleware.RateLimitKey("/login/", "192.0.2.1")
	s.logins++
	s.redis.ExpectIncr(key).SetVal(s.logins)
	if s.logins == 1 {
		s.redis.ExpectExpire(key, 15*time.Minute).SetVal(true)
	}

	rec := s.do(http.MethodPost, "/login/", fmt.Sprintf(`{"username":%q,"password":%q}`, username, password))
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName && c.Value != "" {
			return rec, c
		}
	}
	return rec, nil
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealthAndPages(t *testing.T) {
	s := setupTestServer(t)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", "").Code)

	rec := s.do(http.MethodGet, "/contact/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "info@clinic.test")

	rec = s.do(http.MethodGet, "/register/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"roles":["doctor","patient"]`)
}

func TestPreflightThroughRouter(t *testing.T) {
	s := setupTestServer(t)

	for _, path := range []string{"/appointment/", "/login/", "/dashboard/doctor/availability/"} {
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		req.Header.Set("Origin", "https://portal.clinic.test")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code, path)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"), path)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost, path)
	}

	rec := s.do(http.MethodGet, "/health", "")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestDirectoryListings(t *testing.T) {
	s := setupTestServer(t)

	departmentID := uint(1)
	require.NoError(t, s.db.Create(&entity.Department{ID: departmentID, Name: "Cardiology"}).Error)
	require.NoError(t, s.db.Create(&entity.Specialization{ID: 3, Name: "Interventional Cardiologist", DepartmentID: &departmentID}).Error)
	account := entity.Account{Username: "dr_jane", Password: "x", FullName: "Jane Foster"}
	require.NoError(t, s.db.Create(&account).Error)
	require.NoError(t, s.db.Create(&entity.Doctor{AccountID: account.ID, DepartmentID: &departmentID}).Error)

	rec := s.do(http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Hospital Management", decode(t, rec).Message)

	rec = s.do(http.MethodGet, "/departments/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Cardiology"`)
	assert.Contains(t, rec.Body.String(), "Interventional Cardiologist")

	rec = s.do(http.MethodGet, "/register/doctor/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cardiology")

	rec = s.do(http.MethodGet, "/doctors/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data, ok := decode(t, rec).Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), data["total"])
	assert.Contains(t, rec.Body.String(), `"name":"Dr. Jane Foster"`)

	rec = s.do(http.MethodGet, "/doctors/999/availability/", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPatientRegistrationLoginAndDashboard(t *testing.T) {
	s := setupTestServer(t)

	rec := s.do(http.MethodPost, "/register/patient/", `{"full_name":"Amy Pond","username":"amy","email":"amy@x.com","password":"pw","confirm_password":"pw"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/login/", decode(t, rec).Redirect)

	rec = s.do(http.MethodPost, "/register/patient/", `{"full_name":"Amy Pond","username":"amy","email":"amy@x.com","password":"pw","confirm_password":"pw"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "/register/patient/", decode(t, rec).Redirect)

	rec, cookie := s.login(t, "amy", "pw")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/dashboard/patient/", decode(t, rec).Redirect)

	rec = s.do(http.MethodGet, "/dashboard/patient/", "", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/dashboard/doctor/", "", cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login/", rec.Header().Get("Location"))

	rec = s.do(http.MethodPost, "/logout/", "", cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login/", rec.Header().Get("Location"))

	rec = s.do(http.MethodGet, "/dashboard/patient/", "", cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	assert.NoError(t, s.redis.ExpectationsWereMet())
}

func TestRegisterValidationAndMismatch(t *testing.T) {
	s := setupTestServer(t)

	rec := s.do(http.MethodPost, "/register/", `{"username":"bob"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "Please fill all required fields!", resp.Message)
	assert.Equal(t, "/register/", resp.Redirect)

	rec = s.do(http.MethodPost, "/register/", `{"full_name":"Bob","username":"bob","email":"bob@x.com","password1":"a","password2":"b"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Passwords do not match!", decode(t, rec).Message)

	rec = s.do(http.MethodPost, "/register/", `{"full_name":"Bob","username":"bob","email":"bob@x.com","password1":"a","password2":"a","role":"doctor"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var profile entity.Profile
	require.NoError(t, s.db.Joins("JOIN accounts ON accounts.id = profiles.account_id").Where("accounts.username = ?", "bob").First(&profile).Error)
	assert.Equal(t, entity.RoleDoctor, profile.Role)
}

func TestBookingFlow(t *testing.T) {
	s := setupTestServer(t)

	rec := s.do(http.MethodPost, "/register/doctor/", `{"username":"dr_jane","password":"pw123"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var doctor entity.Doctor
	require.NoError(t, s.db.First(&doctor).Error)

	body := fmt.Sprintf(`{"patient_name":"John Doe","email":"john@x.com","phone":"555","department_id":1,"doctor_id":%d,"appointment_date":"2025-03-10"}`, doctor.ID)
	rec = s.do(http.MethodPost, "/appointment/", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "/appointment/", resp.Redirect)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, "09:00", data["time"])

	rec = s.do(http.MethodPost, "/appointment/", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, decode(t, rec).Message, "already booked")

	rec = s.do(http.MethodPost, "/appointment/", `{"patient_name":"John Doe","email":"john@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	longEmail := strings.Repeat("a", 60) + "@" + strings.Repeat("b", 60) + "." + strings.Repeat("c", 40) + ".com"
	rec = s.do(http.MethodPost, "/appointment/", fmt.Sprintf(`{"patient_name":"Long Mail","email":%q,"phone":"555","department_id":1,"doctor_id":%d,"appointment_date":"2025-03-11"}`, longEmail, doctor.ID))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email must be at most 150 characters", decode(t, rec).Error.(map[string]interface{})["email"])
	var longAccounts int64
	require.NoError(t, s.db.Model(&entity.Account{}).Where("username = ?", longEmail).Count(&longAccounts).Error)
	assert.Zero(t, longAccounts)

	rec, cookie := s.login(t, "dr_jane", "pw123")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/dashboard/doctor/", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "John Doe")

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format(entity.DateLayout)
	rec = s.do(http.MethodPost, "/dashboard/doctor/availability/", fmt.Sprintf(`{"date":%q,"start_time":"10:00","end_time":"09:00"}`, tomorrow), cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/dashboard/doctor/availability/", fmt.Sprintf(`{"date":%q,"start_time":"09:00","end_time":"12:00"}`, tomorrow), cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode(t, rec).Data.(map[string]interface{})["id"]

	rec = s.do(http.MethodGet, fmt.Sprintf("/doctors/%d/availability/", doctor.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"start_time":"09:00"`)

	rec = s.do(http.MethodDelete, fmt.Sprintf("/dashboard/doctor/availability/%v/", id), "", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.NoError(t, s.redis.ExpectationsWereMet())
}

func TestLoginFailures(t *testing.T) {
	s := setupTestServer(t)

	rec, cookie := s.login(t, "nobody", "pw")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, cookie)

	// an account without a role record
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, s.db.Create(&entity.Account{Username: "legacy", Password: string(hash)}).Error)
	rec, cookie = s.login(t, "legacy", "pw")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Nil(t, cookie)
	assert.Equal(t, "Role not assigned. Contact admin.", decode(t, rec).Message)

	assert.NoError(t, s.redis.ExpectationsWereMet())
}

func TestDashboardWithoutSessionRedirects(t *testing.T) {
	s := setupTestServer(t)

	for _, path := range []string{"/dashboard/doctor/", "/dashboard/patient/"} {
		rec := s.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login/", rec.Header().Get("Location"))
	}

	rec := s.do(http.MethodGet, "/logout/", "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}
