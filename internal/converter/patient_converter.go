package converter

import (
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
)

func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	response := &dto.PatientResponse{
		ID:        patient.ID,
		AccountID: patient.AccountID,
		Name:      patient.Account.DisplayName(),
		Email:     patient.Account.Email,
		Age:       patient.Age,
		Phone:     patient.Phone,
	}
	if patient.Gender != nil {
		gender := string(*patient.Gender)
		response.Gender = &gender
	}
	return response
}
