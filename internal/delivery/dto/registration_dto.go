package dto

import "hospital-management/internal/domain/entity"

// RegisterRequest is the single input of the registration flow. Every
// registration form is converted into it.
type RegisterRequest struct {
	Role            entity.Role
	Username        string
	Password        string
	ConfirmPassword *string
	Email           string
	FullName        string
	Doctor          *DoctorDetails
}

// DoctorDetails carries the doctor-only fields of a registration.
type DoctorDetails struct {
	DepartmentID     *uint
	SpecializationID *uint
	Phone            *string
	Experience       *int
}

// Form DTOs

// RegisterDoctorRequest is the body of POST /register/doctor/.
type RegisterDoctorRequest struct {
	Username         string  `json:"username" validate:"required,max=150"`
	Password         string  `json:"password" validate:"required"`
	Email            string  `json:"email" validate:"omitempty,email,max=254"`
	FullName         string  `json:"full_name" validate:"omitempty,max=150"`
	SpecializationID *uint   `json:"specialization_id" validate:"omitempty,gte=1"`
	DepartmentID     *uint   `json:"department_id" validate:"omitempty,gte=1"`
	Phone            *string `json:"phone" validate:"omitempty,max=15"`
	Experience       *int    `json:"experience" validate:"omitempty,gte=0"`
}

// RegisterPatientRequest is the body of POST /register/patient/.
type RegisterPatientRequest struct {
	FullName        string `json:"full_name" validate:"required,max=150"`
	Username        string `json:"username" validate:"required,max=150"`
	Email           string `json:"email" validate:"required,email,max=254"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// RegisterAccountRequest is the body of the generic POST /register/ form.
type RegisterAccountRequest struct {
	FullName  string `json:"full_name" validate:"required,max=150"`
	Username  string `json:"username" validate:"required,max=150"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Password1 string `json:"password1" validate:"required"`
	Password2 string `json:"password2" validate:"required"`
	Role      string `json:"role" validate:"omitempty,oneof=doctor patient"`
}

type RegisterFormResponse struct {
	Roles []string `json:"roles"`
}
