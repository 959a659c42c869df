package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/usecase"
	"hospital-management/pkg/response"
	"hospital-management/pkg/validator"
)

const appointmentPath = "/appointment/"

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// BookingForm returns the departments and doctors to choose from.
func (h *AppointmentHandler) BookingForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.appointmentUsecase.BookingForm(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load booking form")
		return
	}

	response.Success(w, http.StatusOK, "Booking form", form)
}

func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorRedirect(w, http.StatusBadRequest, "Invalid request body", nil, appointmentPath)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err), appointmentPath)
		return
	}

	appointment, err := h.appointmentUsecase.Book(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingField):
			response.ErrorRedirect(w, http.StatusBadRequest, "Please fill all required fields!", nil, appointmentPath)
		case errors.Is(err, usecase.ErrInvalidDate):
			response.ErrorRedirect(w, http.StatusBadRequest, "Invalid appointment date, use YYYY-MM-DD", nil, appointmentPath)
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.ErrorRedirect(w, http.StatusNotFound, "Doctor not found", nil, appointmentPath)
		case errors.Is(err, usecase.ErrDuplicateUsername):
			response.ErrorRedirect(w, http.StatusConflict, "Another booking with this email is in progress. Please try again.", nil, appointmentPath)
		case errors.Is(err, usecase.ErrSlotTaken):
			response.ErrorRedirect(w, http.StatusConflict, "This slot is already booked. Please choose another date.", nil, appointmentPath)
		default:
			response.ErrorRedirect(w, http.StatusInternalServerError, "Failed to book appointment", nil, appointmentPath)
		}
		return
	}

	response.SuccessRedirect(w, http.StatusCreated, "Appointment booked successfully!", appointment, appointmentPath)
}
