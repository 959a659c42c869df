package dto

type SpecializationResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	DepartmentID *uint  `json:"department_id,omitempty"`
}

type DepartmentResponse struct {
	ID              uint                     `json:"id"`
	Name            string                   `json:"name"`
	Specializations []SpecializationResponse `json:"specializations,omitempty"`
}

type DepartmentListResponse struct {
	Departments []DepartmentResponse `json:"departments"`
	Total       int                  `json:"total"`
}

type DoctorResponse struct {
	ID             uint                    `json:"id"`
	AccountID      uint                    `json:"account_id"`
	Name           string                  `json:"name"`
	Username       string                  `json:"username"`
	Phone          *string                 `json:"phone,omitempty"`
	Experience     *int                    `json:"experience,omitempty"`
	Department     *DepartmentResponse     `json:"department,omitempty"`
	Specialization *SpecializationResponse `json:"specialization,omitempty"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

// Request DTOs

type CreateAvailabilityRequest struct {
	Date      string `json:"date" validate:"required,isodate"`
	StartTime string `json:"start_time" validate:"required,clock"`
	EndTime   string `json:"end_time" validate:"required,clock"`
}

type AvailabilityResponse struct {
	ID        uint   `json:"id"`
	DoctorID  uint   `json:"doctor_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type AvailabilityListResponse struct {
	Availability []AvailabilityResponse `json:"availability"`
	Total        int                    `json:"total"`
}
