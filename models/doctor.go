package models

import "time"

// Doctor is a practitioner profile users browse and book against.
type Doctor struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:64;not null" json:"name"`
	Email          string    `gorm:"size:255" json:"email"`
	Specialization string    `gorm:"size:64;index;not null" json:"specialization"`
	ExperienceYrs  int       `gorm:"default:0" json:"experience_years"`
	Fees           int       `gorm:"default:0" json:"fees"`
	About          string    `gorm:"size:512" json:"about"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
