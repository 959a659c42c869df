package dto

type PatientResponse struct {
	ID        uint    `json:"id"`
	AccountID uint    `json:"account_id"`
	Name      string  `json:"name"`
	Email     string  `json:"email,omitempty"`
	Age       *int    `json:"age,omitempty"`
	Gender    *string `json:"gender,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

type DoctorDashboardResponse struct {
	Doctor       DoctorResponse         `json:"doctor"`
	Appointments []AppointmentResponse  `json:"appointments"`
	Availability []AvailabilityResponse `json:"availability"`
}

type PatientDashboardResponse struct {
	Patient      PatientResponse       `json:"patient"`
	Appointments []AppointmentResponse `json:"appointments"`
}
