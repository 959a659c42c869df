package handler

import (
	"net/http"

	"hospital-management/config"
	"hospital-management/internal/delivery/dto"
	"hospital-management/pkg/response"
)

type PageHandler struct {
	clinic dto.ClinicResponse
}

func NewPageHandler(appName string, clinic config.ClinicConfig) *PageHandler {
	return &PageHandler{
		clinic: dto.ClinicResponse{
			Name:    appName,
			Email:   clinic.Email,
			Phone:   clinic.Phone,
			Address: clinic.Address,
		},
	}
}

func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Welcome to "+h.clinic.Name, h.clinic)
}

func (h *PageHandler) Contact(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Contact us", h.clinic)
}
