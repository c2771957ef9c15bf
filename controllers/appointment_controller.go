package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/careloop/careboard/models"
	"github.com/careloop/careboard/utils"
)

// AppointmentController handles booking and appointment status management.
type AppointmentController struct {
	db *gorm.DB
}

// NewAppointmentController creates a new AppointmentController instance.
func NewAppointmentController(db *gorm.DB) *AppointmentController {
	return &AppointmentController{db: db}
}

// Book creates a pending appointment for the calling user.
func (a *AppointmentController) Book(ctx *gin.Context) {
	var req struct {
		DoctorID    uint      `json:"doctor_id" binding:"required"`
		ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
		Reason      string    `json:"reason"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}

	userID, _, ok := identityFrom(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var doctor models.Doctor
	if err := a.db.First(&doctor, req.DoctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40420, "doctor not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load doctor")
		return
	}

	appointment := models.Appointment{
		UserID:      userID,
		DoctorID:    doctor.ID,
		ScheduledAt: req.ScheduledAt,
		Reason:      utils.Sanitize(req.Reason),
		Status:      models.AppointmentPending,
	}
	if err := a.db.Create(&appointment).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to create appointment")
		return
	}

	utils.Created(ctx, gin.H{"appointment": appointment})
}

// List returns the caller's appointments: a user sees their bookings, a
// doctor sees their schedule.
func (a *AppointmentController) List(ctx *gin.Context) {
	id, role, ok := identityFrom(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	query := a.db.Order("scheduled_at DESC")
	if role == "doctor" {
		query = query.Where("doctor_id = ?", id).Preload("Patient")
	} else {
		query = query.Where("user_id = ?", id).Preload("Doctor")
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to list appointments")
		return
	}
	utils.Success(ctx, gin.H{"appointments": appointments})
}

// UpdateStatus moves an appointment through its lifecycle. Only the
// appointment's doctor may do this.
func (a *AppointmentController) UpdateStatus(ctx *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40041, "invalid request payload")
		return
	}
	if !models.ValidAppointmentStatus(req.Status) {
		utils.Error(ctx, http.StatusBadRequest, 40042, "unknown appointment status")
		return
	}

	doctorID, _, ok := identityFrom(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40430, "appointment not found")
		return
	}

	var appointment models.Appointment
	if err := a.db.First(&appointment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40430, "appointment not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to load appointment")
		return
	}
	if appointment.DoctorID != doctorID {
		utils.Error(ctx, http.StatusForbidden, 40320, "you can only manage your own appointments")
		return
	}

	appointment.Status = req.Status
	if err := a.db.Model(&appointment).Update("status", req.Status).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50044, "failed to update appointment")
		return
	}

	utils.Success(ctx, gin.H{"appointment": appointment})
}
