// controllers/health.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Samilincoln/Study-Sync/models"
	"github.com/Samilincoln/Study-Sync/schedule"
)

type HealthController struct {
	DB          *gorm.DB
	Coordinator *schedule.Coordinator
}

// Health reports record counts and the number of scheduled reminder jobs
func (hc *HealthController) Health(c *gin.Context) {
	var guardians, classes int64
	hc.DB.Model(&models.Guardian{}).Count(&guardians)
	hc.DB.Model(&models.Class{}).Count(&classes)

	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"timestamp":      time.Now(),
		"totalGuardians": guardians,
		"totalClasses":   classes,
		"scheduledJobs":  hc.Coordinator.ActiveJobCount(),
	})
}
