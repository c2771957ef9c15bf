package controllers

import (
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/careloop/careboard/models"
	"github.com/careloop/careboard/utils"
)

// DoctorController serves doctor lookup and availability management.
type DoctorController struct {
	db *gorm.DB
}

// NewDoctorController creates a new DoctorController instance.
func NewDoctorController(db *gorm.DB) *DoctorController {
	return &DoctorController{db: db}
}

// ListDoctors returns all doctors, optionally filtered by specialization.
func (d *DoctorController) ListDoctors(ctx *gin.Context) {
	specialization := strings.TrimSpace(ctx.Query("specialization"))

	query := d.db.Order("name ASC")
	if specialization != "" {
		query = query.Where("specialization = ?", specialization)
	}

	var doctors []models.Doctor
	if err := query.Find(&doctors).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to list doctors")
		return
	}
	utils.Success(ctx, gin.H{"doctors": doctors})
}

// weekdayOrder positions availability slots by calendar day, not day name.
var weekdayOrder = map[string]int{
	"monday":    1,
	"tuesday":   2,
	"wednesday": 3,
	"thursday":  4,
	"friday":    5,
	"saturday":  6,
	"sunday":    7,
}

// GetDoctor returns a single doctor profile.
func (d *DoctorController) GetDoctor(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40420, "doctor not found")
		return
	}

	var doctor models.Doctor
	if err := d.db.First(&doctor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40420, "doctor not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to load doctor")
		return
	}
	utils.Success(ctx, gin.H{"doctor": doctor})
}

// GetAvailability returns a doctor's bookable slots, ordered by weekday
// then start time.
func (d *DoctorController) GetAvailability(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40420, "doctor not found")
		return
	}

	var doctor models.Doctor
	if err := d.db.First(&doctor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40420, "doctor not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to load doctor")
		return
	}

	var slots []models.Availability
	if err := d.db.Where("doctor_id = ?", doctor.ID).Find(&slots).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50033, "failed to load availability")
		return
	}
	sortSlots(slots)
	utils.Success(ctx, gin.H{"availability": slots})
}

func sortSlots(slots []models.Availability) {
	sort.SliceStable(slots, func(i, j int) bool {
		if weekdayOrder[slots[i].Day] != weekdayOrder[slots[j].Day] {
			return weekdayOrder[slots[i].Day] < weekdayOrder[slots[j].Day]
		}
		return slots[i].StartTime < slots[j].StartTime
	})
}

// UpdateAvailability replaces the calling doctor's slot list as a whole.
func (d *DoctorController) UpdateAvailability(ctx *gin.Context) {
	var req struct {
		Slots []struct {
			Day       string `json:"day" binding:"required"`
			StartTime string `json:"start_time" binding:"required"`
			EndTime   string `json:"end_time" binding:"required"`
		} `json:"slots"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}

	doctorID, _, ok := identityFrom(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	slots := make([]models.Availability, 0, len(req.Slots))
	for _, s := range req.Slots {
		day := strings.ToLower(strings.TrimSpace(s.Day))
		if _, known := weekdayOrder[day]; !known {
			utils.Error(ctx, http.StatusBadRequest, 40034, "unknown day of week")
			return
		}
		start, err := time.Parse("15:04", s.StartTime)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40031, "invalid start_time, expected HH:MM")
			return
		}
		end, err := time.Parse("15:04", s.EndTime)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40032, "invalid end_time, expected HH:MM")
			return
		}
		if !start.Before(end) {
			utils.Error(ctx, http.StatusBadRequest, 40033, "start_time must precede end_time")
			return
		}
		slots = append(slots, models.Availability{
			DoctorID:  doctorID,
			Day:       day,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}

	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", doctorID).Delete(&models.Availability{}).Error; err != nil {
			return err
		}
		if len(slots) == 0 {
			return nil
		}
		return tx.Create(&slots).Error
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50034, "failed to update availability")
		return
	}

	utils.Success(ctx, gin.H{"availability": slots})
}
