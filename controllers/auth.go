package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Samilincoln/Study-Sync/models"
	"github.com/Samilincoln/Study-Sync/utils"
)

type RegisterInput struct {
	Phone    string   `json:"phone" binding:"required"`
	Name     string   `json:"name" binding:"required"`
	Password string   `json:"password" binding:"required,min=8"`
	Children []string `json:"children"`
	Timezone string   `json:"timezone"`
}

type LoginInput struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	DB *gorm.DB
}

// Register creates a guardian account keyed by phone number
func (a *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	var existing models.Guardian
	result := a.DB.First(&existing, "phone = ?", input.Phone)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Phone already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	guardian := models.Guardian{
		Phone:    input.Phone,
		Name:     input.Name,
		Password: input.Password, // hashed in BeforeCreate hook
		Children: input.Children,
		Timezone: input.Timezone,
	}
	if guardian.Timezone == "" {
		guardian.Timezone = "UTC"
	}

	if err := a.DB.Create(&guardian).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create guardian")
		return
	}

	token, err := utils.GenerateToken(guardian.Phone)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Guardian registered successfully",
		"token":   token,
		"guardian": gin.H{
			"phone":    guardian.Phone,
			"name":     guardian.Name,
			"children": guardian.Children,
		},
	})
}

func (a *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	phone := strings.TrimSpace(input.Phone)

	var guardian models.Guardian
	if err := a.DB.First(&guardian, "phone = ?", phone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, guardian.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(guardian.Phone)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	now := time.Now()
	a.DB.Model(&guardian).Update("last_login", &now)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"guardian": gin.H{
			"phone":    guardian.Phone,
			"name":     guardian.Name,
			"children": guardian.Children,
		},
	})
}

func (a *AuthController) Me(c *gin.Context) {
	phone, ok := phoneFromContext(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Phone not found in context")
		return
	}

	var guardian models.Guardian
	if err := a.DB.First(&guardian, "phone = ?", phone).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Guardian not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"guardian": gin.H{
			"phone":    guardian.Phone,
			"name":     guardian.Name,
			"children": guardian.Children,
			"timezone": guardian.Timezone,
		},
	})
}

// phoneFromContext pulls the authenticated guardian's phone set by the
// auth middleware.
func phoneFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get("phone")
	if !exists {
		return "", false
	}
	phone, ok := value.(string)
	return phone, ok
}
