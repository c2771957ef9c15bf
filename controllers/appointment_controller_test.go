package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/careloop/careboard/middleware"
	"github.com/careloop/careboard/models"
)

// Request validation answers before any store is touched, so those paths run
// against a nil DB; booking and status flows run on an in-memory sqlite.

func newAppointmentRouter(t *testing.T) *gin.Engine {
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	controller := NewAppointmentController(nil)
	r := gin.New()
	r.POST("/appointments", controller.Book)
	r.PATCH("/appointments/:id/status", controller.UpdateStatus)
	return r
}

func newAppointmentDBRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	controller := NewAppointmentController(db)
	r := gin.New()
	auth := r.Group("", middleware.AuthRequired())
	auth.POST("/appointments", middleware.RequireRole("user"), controller.Book)
	auth.GET("/appointments", controller.List)
	auth.PATCH("/appointments/:id/status", middleware.RequireRole("doctor"), controller.UpdateStatus)
	return r
}

func seedAppointment(t *testing.T, db *gorm.DB, doctorID uint) models.Appointment {
	appointment := models.Appointment{
		UserID:      1,
		DoctorID:    doctorID,
		ScheduledAt: time.Now().Add(24 * time.Hour),
		Status:      models.AppointmentPending,
	}
	require.NoError(t, db.Create(&appointment).Error)
	return appointment
}

func TestBook_InvalidPayload(t *testing.T) {
	r := newAppointmentRouter(t)

	w := doJSON(t, r, http.MethodPost, "/appointments", "", gin.H{"doctor_id": 0})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBook_UnknownDoctor(t *testing.T) {
	db := newDirectoryDB(t)
	r := newAppointmentDBRouter(t, db)

	w := doJSON(t, r, http.MethodPost, "/appointments", userToken(t), gin.H{
		"doctor_id":    42,
		"scheduled_at": time.Now().Add(24 * time.Hour),
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBook_CreatesPending(t *testing.T) {
	db := newDirectoryDB(t)
	doctor := seedDoctor(t, db)
	r := newAppointmentDBRouter(t, db)

	w := doJSON(t, r, http.MethodPost, "/appointments", userToken(t), gin.H{
		"doctor_id":    doctor.ID,
		"scheduled_at": time.Now().Add(24 * time.Hour),
		"reason":       "checkup",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var stored models.Appointment
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, models.AppointmentPending, stored.Status)
	assert.Equal(t, uint(1), stored.UserID)
	assert.Equal(t, doctor.ID, stored.DoctorID)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	r := newAppointmentRouter(t)

	w := doJSON(t, r, http.MethodPatch, "/appointments/1/status", "", gin.H{"status": "postponed"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatus_UnknownAppointment(t *testing.T) {
	db := newDirectoryDB(t)
	r := newAppointmentDBRouter(t, db)

	w := doJSON(t, r, http.MethodPatch, "/appointments/999/status", doctorToken(t, 1),
		gin.H{"status": models.AppointmentConfirmed})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatus_NonNumericID(t *testing.T) {
	db := newDirectoryDB(t)
	seedAppointment(t, db, 1)
	r := newAppointmentDBRouter(t, db)

	// Decodes to "1 OR 1=1"; must 404 without reaching the database.
	w := doJSON(t, r, http.MethodPatch, "/appointments/1%20OR%201=1/status", doctorToken(t, 1),
		gin.H{"status": models.AppointmentConfirmed})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatus_ForeignAppointment(t *testing.T) {
	db := newDirectoryDB(t)
	appointment := seedAppointment(t, db, 2)
	r := newAppointmentDBRouter(t, db)

	w := doJSON(t, r, http.MethodPatch, "/appointments/1/status", doctorToken(t, 1),
		gin.H{"status": models.AppointmentConfirmed})

	assert.Equal(t, http.StatusForbidden, w.Code)

	var stored models.Appointment
	require.NoError(t, db.First(&stored, appointment.ID).Error)
	assert.Equal(t, models.AppointmentPending, stored.Status)
}

func TestUpdateStatus_Confirms(t *testing.T) {
	db := newDirectoryDB(t)
	appointment := seedAppointment(t, db, 1)
	r := newAppointmentDBRouter(t, db)

	w := doJSON(t, r, http.MethodPatch, "/appointments/1/status", doctorToken(t, 1),
		gin.H{"status": models.AppointmentConfirmed})

	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Appointment
	require.NoError(t, db.First(&stored, appointment.ID).Error)
	assert.Equal(t, models.AppointmentConfirmed, stored.Status)
}

func TestValidAppointmentStatus(t *testing.T) {
	assert.True(t, models.ValidAppointmentStatus(models.AppointmentPending))
	assert.True(t, models.ValidAppointmentStatus(models.AppointmentConfirmed))
	assert.True(t, models.ValidAppointmentStatus(models.AppointmentCompleted))
	assert.True(t, models.ValidAppointmentStatus(models.AppointmentCancelled))
	assert.False(t, models.ValidAppointmentStatus("postponed"))
	assert.False(t, models.ValidAppointmentStatus(""))
}
