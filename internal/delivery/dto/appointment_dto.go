package dto

import "time"

// Request DTOs

type BookAppointmentRequest struct {
	PatientName     string `json:"patient_name" validate:"required,max=150"`
	Email           string `json:"email" validate:"required,email,max=150"`
	Phone           string `json:"phone" validate:"required,max=15"`
	DepartmentID    uint   `json:"department_id" validate:"required"`
	DoctorID        uint   `json:"doctor_id" validate:"required"`
	AppointmentDate string `json:"appointment_date" validate:"required,isodate"`
}

// Response DTOs

type AppointmentResponse struct {
	ID          uint      `json:"id"`
	DoctorID    uint      `json:"doctor_id"`
	DoctorName  string    `json:"doctor_name,omitempty"`
	PatientID   uint      `json:"patient_id"`
	PatientName string    `json:"patient_name,omitempty"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// BookingFormResponse is the context of the booking page.
type BookingFormResponse struct {
	Departments []DepartmentResponse `json:"departments"`
	Doctors     []DoctorResponse     `json:"doctors"`
}
