package converter

import (
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
)

func SpecializationToResponse(specialization *entity.Specialization) *dto.SpecializationResponse {
	if specialization == nil {
		return nil
	}

	return &dto.SpecializationResponse{
		ID:           specialization.ID,
		Name:         specialization.Name,
		DepartmentID: specialization.DepartmentID,
	}
}

func DepartmentToResponse(department *entity.Department) *dto.DepartmentResponse {
	if department == nil {
		return nil
	}

	response := &dto.DepartmentResponse{
		ID:   department.ID,
		Name: department.Name,
	}
	for i := range department.Specializations {
		response.Specializations = append(response.Specializations, *SpecializationToResponse(&department.Specializations[i]))
	}
	return response
}

func DepartmentsToResponses(departments []entity.Department) []dto.DepartmentResponse {
	responses := make([]dto.DepartmentResponse, len(departments))
	for i := range departments {
		responses[i] = *DepartmentToResponse(&departments[i])
	}
	return responses
}

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:             doctor.ID,
		AccountID:      doctor.AccountID,
		Name:           doctor.DisplayName(),
		Username:       doctor.Account.Username,
		Phone:          doctor.Phone,
		Experience:     doctor.Experience,
		Department:     DepartmentToResponse(doctor.Department),
		Specialization: SpecializationToResponse(doctor.Specialization),
	}
}

func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}

func AvailabilityToResponse(availability *entity.Availability) *dto.AvailabilityResponse {
	if availability == nil {
		return nil
	}

	return &dto.AvailabilityResponse{
		ID:        availability.ID,
		DoctorID:  availability.DoctorID,
		Date:      availability.Date.Format(entity.DateLayout),
		StartTime: TrimSeconds(availability.StartTime),
		EndTime:   TrimSeconds(availability.EndTime),
	}
}

func AvailabilitiesToResponses(availabilities []entity.Availability) []dto.AvailabilityResponse {
	responses := make([]dto.AvailabilityResponse, len(availabilities))
	for i := range availabilities {
		responses[i] = *AvailabilityToResponse(&availabilities[i])
	}
	return responses
}

// TrimSeconds renders a stored time of day ("09:00:00") as HH:MM.
func TrimSeconds(clock string) string {
	if len(clock) > 5 && clock[2] == ':' {
		return clock[:5]
	}
	return clock
}
