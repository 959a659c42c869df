package handler

import (
	"errors"
	"net/http"

	"hospital-management/internal/delivery/http/middleware"
	"hospital-management/internal/usecase"
	"hospital-management/pkg/response"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
	}
}

func (h *DashboardHandler) DoctorDashboard(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountIDFromContext(r.Context())
	if !ok {
		response.Redirect(w, r, middleware.LoginPath)
		return
	}

	dashboard, err := h.dashboardUsecase.DoctorDashboard(r.Context(), accountID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Doctor dashboard", dashboard)
}

func (h *DashboardHandler) PatientDashboard(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountIDFromContext(r.Context())
	if !ok {
		response.Redirect(w, r, middleware.LoginPath)
		return
	}

	dashboard, err := h.dashboardUsecase.PatientDashboard(r.Context(), accountID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Patient dashboard", dashboard)
}

func (h *DashboardHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrRoleMismatch), errors.Is(err, usecase.ErrRoleNotAssigned):
		response.Redirect(w, r, middleware.LoginPath)
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, "Doctor not found")
	case errors.Is(err, usecase.ErrPatientNotFound):
		response.NotFound(w, "Patient not found")
	default:
		response.InternalServerError(w, "Failed to load dashboard")
	}
}
