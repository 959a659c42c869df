package converter

import (
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
)

// DoctorFormToRegisterRequest converts the doctor registration form.
// The doctor form has no confirmation field.
func DoctorFormToRegisterRequest(req *dto.RegisterDoctorRequest) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Role:     entity.RoleDoctor,
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		FullName: req.FullName,
		Doctor: &dto.DoctorDetails{
			DepartmentID:     req.DepartmentID,
			SpecializationID: req.SpecializationID,
			Phone:            req.Phone,
			Experience:       req.Experience,
		},
	}
}

// PatientFormToRegisterRequest converts the patient registration form.
func PatientFormToRegisterRequest(req *dto.RegisterPatientRequest) *dto.RegisterRequest {
	confirm := req.ConfirmPassword
	return &dto.RegisterRequest{
		Role:            entity.RolePatient,
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: &confirm,
		Email:           req.Email,
		FullName:        req.FullName,
	}
}

// AccountFormToRegisterRequest converts the generic registration form.
// An empty role registers a patient.
func AccountFormToRegisterRequest(req *dto.RegisterAccountRequest) *dto.RegisterRequest {
	role, ok := entity.ParseRole(req.Role)
	if !ok {
		role = entity.Role(req.Role)
	}
	confirm := req.Password2
	out := &dto.RegisterRequest{
		Role:            role,
		Username:        req.Username,
		Password:        req.Password1,
		ConfirmPassword: &confirm,
		Email:           req.Email,
		FullName:        req.FullName,
	}
	if role == entity.RoleDoctor {
		out.Doctor = &dto.DoctorDetails{}
	}
	return out
}
