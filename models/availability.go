package models

import "time"

// Availability is one recurring weekly slot a doctor accepts bookings in.
// A doctor's availability is always replaced as a whole set.
type Availability struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DoctorID  uint      `gorm:"index;not null" json:"doctor_id"`
	Day       string    `gorm:"size:16;not null" json:"day"`
	StartTime string    `gorm:"size:8;not null" json:"start_time"`
	EndTime   string    `gorm:"size:8;not null" json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
}
