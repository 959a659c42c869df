package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"hospital-management/internal/converter"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/delivery/http/middleware"
	"hospital-management/internal/usecase"
	"hospital-management/pkg/response"
	"hospital-management/pkg/validator"
)

type RegistrationHandler struct {
	registrationUsecase usecase.RegistrationUsecase
	directoryUsecase    usecase.DirectoryUsecase
	validator           *validator.CustomValidator
}

func NewRegistrationHandler(registrationUsecase usecase.RegistrationUsecase, directoryUsecase usecase.DirectoryUsecase, validator *validator.CustomValidator) *RegistrationHandler {
	return &RegistrationHandler{
		registrationUsecase: registrationUsecase,
		directoryUsecase:    directoryUsecase,
		validator:           validator,
	}
}

// RegisterForm returns the roles offered by the generic registration form.
func (h *RegistrationHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Registration form", h.registrationUsecase.RegisterForm())
}

// DoctorForm returns the departments and specializations a doctor can pick.
func (h *RegistrationHandler) DoctorForm(w http.ResponseWriter, r *http.Request) {
	departments, err := h.directoryUsecase.ListDepartments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load registration form")
		return
	}
	response.Success(w, http.StatusOK, "Doctor registration form", departments)
}

func (h *RegistrationHandler) PatientForm(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Patient registration form", nil)
}

// Register handles the generic registration form
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterAccountRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.register(w, r, converter.AccountFormToRegisterRequest(&req))
}

// RegisterDoctor handles doctor registration
func (h *RegistrationHandler) RegisterDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterDoctorRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.register(w, r, converter.DoctorFormToRegisterRequest(&req))
}

// RegisterPatient handles patient registration
func (h *RegistrationHandler) RegisterPatient(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterPatientRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.register(w, r, converter.PatientFormToRegisterRequest(&req))
}

func (h *RegistrationHandler) decode(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.ErrorRedirect(w, http.StatusBadRequest, "Invalid request body", nil, r.URL.Path)
		return false
	}

	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err), r.URL.Path)
		return false
	}
	return true
}

func (h *RegistrationHandler) register(w http.ResponseWriter, r *http.Request, req *dto.RegisterRequest) {
	form := r.URL.Path

	account, err := h.registrationUsecase.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDuplicateUsername):
			response.ErrorRedirect(w, http.StatusConflict, "Username already exists!", nil, form)
		case errors.Is(err, usecase.ErrPasswordMismatch):
			response.ErrorRedirect(w, http.StatusBadRequest, "Passwords do not match!", nil, form)
		case errors.Is(err, usecase.ErrMissingField):
			response.ErrorRedirect(w, http.StatusBadRequest, "Please fill all required fields!", nil, form)
		case errors.Is(err, usecase.ErrInvalidRole):
			response.ErrorRedirect(w, http.StatusBadRequest, "Invalid role", nil, form)
		case errors.Is(err, usecase.ErrSpecializationNotFound):
			response.ErrorRedirect(w, http.StatusBadRequest, "Specialization not found", nil, form)
		case errors.Is(err, usecase.ErrDepartmentNotFound):
			response.ErrorRedirect(w, http.StatusBadRequest, "Department not found", nil, form)
		default:
			response.ErrorRedirect(w, http.StatusInternalServerError, "Registration failed, please try again", nil, form)
		}
		return
	}

	response.SuccessRedirect(w, http.StatusCreated, "Registration successful! Please login.", account, middleware.LoginPath)
}
