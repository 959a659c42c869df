package entity

import "time"

// Availability is a window in which a doctor can see patients.
// (doctor, date, start, end) is unique; listings are ordered by date then start.
type Availability struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uint      `gorm:"not null;uniqueIndex:idx_availabilities_slot,priority:1" json:"doctor_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_availabilities_slot,priority:2" json:"date"`
	StartTime string    `gorm:"type:time;not null;uniqueIndex:idx_availabilities_slot,priority:3" json:"start_time"`
	EndTime   string    `gorm:"type:time;not null;uniqueIndex:idx_availabilities_slot,priority:4" json:"end_time"`

	// Relationships
	Doctor Doctor `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Availability) TableName() string {
	return "availabilities"
}
