package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/delivery/http/middleware"
	"hospital-management/internal/usecase"
	"hospital-management/pkg/response"
	"hospital-management/pkg/validator"

	"github.com/gorilla/mux"
)

const doctorDashboardPath = "/dashboard/doctor/"

type DirectoryHandler struct {
	directoryUsecase usecase.DirectoryUsecase
	validator        *validator.CustomValidator
}

func NewDirectoryHandler(directoryUsecase usecase.DirectoryUsecase, validator *validator.CustomValidator) *DirectoryHandler {
	return &DirectoryHandler{
		directoryUsecase: directoryUsecase,
		validator:        validator,
	}
}

func (h *DirectoryHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.directoryUsecase.ListDepartments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get departments")
		return
	}

	response.Success(w, http.StatusOK, "Departments retrieved successfully", departments)
}

func (h *DirectoryHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.directoryUsecase.ListDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DirectoryHandler) ListAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	availability, err := h.directoryUsecase.ListAvailability(r.Context(), doctorID)
	if err != nil {
		if errors.Is(err, usecase.ErrDoctorNotFound) {
			response.NotFound(w, "Doctor not found")
			return
		}
		response.InternalServerError(w, "Failed to get availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}

// AddAvailability adds a window for the signed-in doctor
func (h *DirectoryHandler) AddAvailability(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountIDFromContext(r.Context())
	if !ok {
		response.Redirect(w, r, middleware.LoginPath)
		return
	}

	var req dto.CreateAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorRedirect(w, http.StatusBadRequest, "Invalid request body", nil, doctorDashboardPath)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err), doctorDashboardPath)
		return
	}

	availability, err := h.directoryUsecase.AddAvailability(r.Context(), accountID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidDate):
			response.ErrorRedirect(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil, doctorDashboardPath)
		case errors.Is(err, usecase.ErrInvalidTimeFormat):
			response.ErrorRedirect(w, http.StatusBadRequest, "Invalid time format, use HH:MM", nil, doctorDashboardPath)
		case errors.Is(err, usecase.ErrInvalidTimeRange):
			response.ErrorRedirect(w, http.StatusBadRequest, "End time must be after start time", nil, doctorDashboardPath)
		case errors.Is(err, usecase.ErrAvailabilityExists):
			response.ErrorRedirect(w, http.StatusConflict, "Availability already exists", nil, doctorDashboardPath)
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.ErrorRedirect(w, http.StatusNotFound, "Doctor not found", nil, doctorDashboardPath)
		default:
			response.ErrorRedirect(w, http.StatusInternalServerError, "Failed to add availability", nil, doctorDashboardPath)
		}
		return
	}

	response.SuccessRedirect(w, http.StatusCreated, "Availability added successfully", availability, doctorDashboardPath)
}

func (h *DirectoryHandler) RemoveAvailability(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountIDFromContext(r.Context())
	if !ok {
		response.Redirect(w, r, middleware.LoginPath)
		return
	}

	availabilityID, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid availability ID", nil)
		return
	}

	if err := h.directoryUsecase.RemoveAvailability(r.Context(), accountID, availabilityID); err != nil {
		switch {
		case errors.Is(err, usecase.ErrAvailabilityNotFound):
			response.NotFound(w, "Availability not found")
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to remove availability")
		}
		return
	}

	response.SuccessRedirect(w, http.StatusOK, "Availability removed successfully", nil, doctorDashboardPath)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
