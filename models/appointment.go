package models

import "time"

// Appointment status lifecycle. A booking starts pending; the doctor moves
// it from there.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment is a booking of a doctor's slot by a user.
type Appointment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	DoctorID    uint      `gorm:"index;not null" json:"doctor_id"`
	ScheduledAt time.Time `gorm:"not null" json:"scheduled_at"`
	Reason      string    `gorm:"size:255" json:"reason"`
	Status      string    `gorm:"size:16;default:'pending'" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Patient     *User     `gorm:"foreignKey:UserID" json:"patient,omitempty"`
	Doctor      *Doctor   `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

// ValidAppointmentStatus reports whether s is a known lifecycle value.
func ValidAppointmentStatus(s string) bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}
