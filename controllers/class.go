package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Samilincoln/Study-Sync/models"
	"github.com/Samilincoln/Study-Sync/schedule"
	"github.com/Samilincoln/Study-Sync/utils"
)

// CreateClassInput defines the expected JSON structure for creating a class
type CreateClassInput struct {
	Subject     string `json:"subject" binding:"required"`
	StudentName string `json:"studentName" binding:"required"`
	DayOfWeek   string `json:"dayOfWeek" binding:"required"`
	StartTime   string `json:"startTime" binding:"required"`
	LeadMinutes *int   `json:"leadMinutes"`
}

// UpdateClassInput defines the expected JSON structure for updating a class
type UpdateClassInput struct {
	Subject     *string `json:"subject"`
	StudentName *string `json:"studentName"`
	DayOfWeek   *string `json:"dayOfWeek"`
	StartTime   *string `json:"startTime"`
	LeadMinutes *int    `json:"leadMinutes"`
	IsActive    *bool   `json:"isActive"`
}

type ClassController struct {
	DB          *gorm.DB
	Coordinator *schedule.Coordinator
}

// CreateClass creates a recurring class and schedules its reminder. An
// invalid schedule rejects the whole mutation; no row is written.
func (cc *ClassController) CreateClass(c *gin.Context) {
	phone, ok := phoneFromContext(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Phone not found in context")
		return
	}

	var input CreateClassInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	leadMinutes := 30
	if input.LeadMinutes != nil {
		leadMinutes = *input.LeadMinutes
	}

	// Store the canonical capitalized weekday so day filters (digest,
	// webhook "today") match records created in any case.
	dayOfWeek, err := schedule.CanonicalWeekday(input.DayOfWeek)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	class := models.Class{
		ID:            uuid.New(),
		GuardianPhone: phone,
		Subject:       input.Subject,
		StudentName:   input.StudentName,
		DayOfWeek:     dayOfWeek,
		StartTime:     input.StartTime,
		LeadMinutes:   leadMinutes,
		IsActive:      true,
	}

	err = cc.Coordinator.OnCreate(&class, func() error {
		return cc.DB.Create(&class).Error
	})
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidSchedule) {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create class")
		return
	}

	c.JSON(http.StatusCreated, class)
}

// GetClasses retrieves all classes for the authenticated guardian
func (cc *ClassController) GetClasses(c *gin.Context) {
	phone, ok := phoneFromContext(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Phone not found in context")
		return
	}

	var classes []models.Class
	if err := cc.DB.Where("guardian_phone = ?", phone).Find(&classes).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve classes")
		return
	}

	c.JSON(http.StatusOK, classes)
}

// GetClass retrieves a specific class by ID
func (cc *ClassController) GetClass(c *gin.Context) {
	phone, ok := phoneFromContext(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Phone not found in context")
		return
	}

	classID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid class ID format")
		return
	}

	var class models.Class
	if err := cc.DB.Where("guardian_phone = ? AND id = ?", phone, classID).
		First(&class).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Class not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, class)
}

// UpdateClass updates a class and replaces its scheduled reminder
func (cc *ClassController) UpdateClass(c *gin.Context) {
	phone, ok := phoneFromContext(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Phone not found in context")
		return
	}

	classID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid class ID format")
		return
	}

	var input UpdateClassInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var class models.Class
	if err := cc.DB.Where("guardian_phone = ? AND id = ?", phone, classID).
		First(&class).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Class not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Subject != nil {
		class.Subject = *input.Subject
	}
	if input.StudentName != nil {
		class.StudentName = *input.StudentName
	}
	if input.DayOfWeek != nil {
		dayOfWeek, err := schedule.CanonicalWeekday(*input.DayOfWeek)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		class.DayOfWeek = dayOfWeek
	}
	if input.StartTime != nil {
		class.StartTime = *input.StartTime
	}
	if input.LeadMinutes != nil {
		class.LeadMinutes = *input.LeadMinutes
	}
	if input.IsActive != nil {
		class.IsActive = *input.IsActive
	}

	// An invalid schedule aborts before the row is written; the stale
	// reminder stays in place.
	err = cc.Coordinator.OnUpdate(&class, func() error {
		return cc.DB.Save(&class).Error
	})
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidSchedule) {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update class")
		return
	}

	c.JSON(http.StatusOK, class)
}

// DeleteClass deletes a class and cancels its scheduled reminder
func (cc *ClassController) DeleteClass(c *gin.Context) {
	phone, ok := phoneFromContext(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Phone not found in context")
		return
	}

	classID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid class ID format")
		return
	}

	// The registry entry is only dropped once the row is actually gone;
	// an id scoped to another guardian must not unschedule their class.
	err = cc.Coordinator.OnDelete(classID, func() error {
		result := cc.DB.Where("guardian_phone = ? AND id = ?", phone, classID).
			Delete(&models.Class{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Class not found")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete class")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Class deleted successfully"})
}
