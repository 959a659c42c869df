package http

import (
	"net/http"

	"hospital-management/internal/delivery/http/handler"
	"hospital-management/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	pageHandler         *handler.PageHandler
	registrationHandler *handler.RegistrationHandler
	sessionHandler      *handler.SessionHandler
	appointmentHandler  *handler.AppointmentHandler
	directoryHandler    *handler.DirectoryHandler
	dashboardHandler    *handler.DashboardHandler
	authMiddleware      *middleware.AuthMiddleware
	rateLimiter         *middleware.RateLimiter
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	pageHandler *handler.PageHandler,
	registrationHandler *handler.RegistrationHandler,
	sessionHandler *handler.SessionHandler,
	appointmentHandler *handler.AppointmentHandler,
	directoryHandler *handler.DirectoryHandler,
	dashboardHandler *handler.DashboardHandler,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		pageHandler:         pageHandler,
		registrationHandler: registrationHandler,
		sessionHandler:      sessionHandler,
		appointmentHandler:  appointmentHandler,
		directoryHandler:    directoryHandler,
		dashboardHandler:    dashboardHandler,
		authMiddleware:      authMiddleware,
		rateLimiter:         rateLimiter,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// Preflight: registered first so every path matches OPTIONS before the
	// method-specific routes answer 405.
	r.router.Methods(http.MethodOptions).HandlerFunc(r.preflight)

	// Health check
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Pages (public)
	r.router.HandleFunc("/", r.pageHandler.Home).Methods(http.MethodGet)
	r.router.HandleFunc("/contact/", r.pageHandler.Contact).Methods(http.MethodGet)

	// Registration (public)
	r.router.HandleFunc("/register/", r.registrationHandler.RegisterForm).Methods(http.MethodGet)
	r.router.HandleFunc("/register/", r.registrationHandler.Register).Methods(http.MethodPost)
	r.router.HandleFunc("/register/doctor/", r.registrationHandler.DoctorForm).Methods(http.MethodGet)
	r.router.HandleFunc("/register/doctor/", r.registrationHandler.RegisterDoctor).Methods(http.MethodPost)
	r.router.HandleFunc("/register/patient/", r.registrationHandler.PatientForm).Methods(http.MethodGet)
	r.router.HandleFunc("/register/patient/", r.registrationHandler.RegisterPatient).Methods(http.MethodPost)

	// Session
	r.router.HandleFunc("/login/", r.sessionHandler.LoginForm).Methods(http.MethodGet)
	r.router.Handle("/login/", r.rateLimiter.Limit(http.HandlerFunc(r.sessionHandler.Login))).Methods(http.MethodPost)
	r.router.Handle("/logout/", r.authMiddleware.Identify(http.HandlerFunc(r.sessionHandler.Logout))).Methods(http.MethodGet, http.MethodPost)

	// Directory (public)
	r.router.HandleFunc("/departments/", r.directoryHandler.ListDepartments).Methods(http.MethodGet)
	r.router.HandleFunc("/doctors/", r.directoryHandler.ListDoctors).Methods(http.MethodGet)
	r.router.HandleFunc("/doctors/{id:[0-9]+}/availability/", r.directoryHandler.ListAvailability).Methods(http.MethodGet)

	// Booking (public)
	r.router.HandleFunc("/appointment/", r.appointmentHandler.BookingForm).Methods(http.MethodGet)
	r.router.HandleFunc("/appointment/", r.appointmentHandler.Book).Methods(http.MethodPost)

	// Doctor dashboard (doctor session)
	doctor := r.router.PathPrefix("/dashboard/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/", r.dashboardHandler.DoctorDashboard).Methods(http.MethodGet)
	doctor.HandleFunc("/availability/", r.directoryHandler.AddAvailability).Methods(http.MethodPost)
	doctor.HandleFunc("/availability/{id:[0-9]+}/", r.directoryHandler.RemoveAvailability).Methods(http.MethodDelete)

	// Patient dashboard (patient session)
	patient := r.router.PathPrefix("/dashboard/patient").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/", r.dashboardHandler.PatientDashboard).Methods(http.MethodGet)

	// CORS runs on every matched route, preflight included
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) preflight(w http.ResponseWriter, req *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
