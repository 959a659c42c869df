package converter

import (
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:        appointment.ID,
		DoctorID:  appointment.DoctorID,
		PatientID: appointment.PatientID,
		Date:      appointment.Date.Format(entity.DateLayout),
		Time:      TrimSeconds(appointment.Time),
		Status:    string(appointment.Status),
		CreatedAt: appointment.CreatedAt,
	}

	// Include names if the relations were loaded
	if appointment.Doctor.ID != 0 {
		response.DoctorName = appointment.Doctor.DisplayName()
	}
	if appointment.Patient.ID != 0 {
		response.PatientName = appointment.Patient.Account.DisplayName()
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
