package entity

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusApproved  AppointmentStatus = "approved"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// DefaultAppointmentTime is the time of day every booking is placed at.
const DefaultAppointmentTime = "09:00"

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// Appointment books a patient into a doctor's (date, time) slot.
// The slot is unique per doctor; listings are ordered by date then time.
type Appointment struct {
	ID        uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uint              `gorm:"not null;uniqueIndex:idx_appointments_slot,priority:1" json:"doctor_id"`
	PatientID uint              `gorm:"not null;index" json:"patient_id"`
	Date      time.Time         `gorm:"type:date;not null;uniqueIndex:idx_appointments_slot,priority:2" json:"date"`
	Time      string            `gorm:"type:time;not null;uniqueIndex:idx_appointments_slot,priority:3" json:"time"`
	Status    AppointmentStatus `gorm:"type:varchar(10);not null;default:'pending'" json:"status"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  Doctor  `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"doctor,omitempty"`
	Patient Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}
