package routes

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Samilincoln/Study-Sync/config"
	"github.com/Samilincoln/Study-Sync/controllers"
	"github.com/Samilincoln/Study-Sync/schedule"
	"github.com/Samilincoln/Study-Sync/services"
	"github.com/Samilincoln/Study-Sync/utils"
)

func SetupRouter(db *gorm.DB, coord *schedule.Coordinator, store *services.Store, sender schedule.Sender, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())
	r.Use(config.RequestLogger(log))

	authController := &controllers.AuthController{DB: db}
	classController := &controllers.ClassController{DB: db, Coordinator: coord}
	reminderController := &controllers.ReminderController{Coordinator: coord}
	messageController := &controllers.MessageController{DB: db}
	webhookController := &controllers.WebhookController{Store: store, Sender: sender, Log: log}
	healthController := &controllers.HealthController{DB: db, Coordinator: coord}

	r.GET("/health", healthController.Health)
	r.POST("/webhook/whatsapp", webhookController.HandleWhatsApp)

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", authController.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		classes := api.Group("/classes")
		{
			classes.POST("", classController.CreateClass)
			classes.GET("", classController.GetClasses)
			classes.GET("/:id", classController.GetClass)
			classes.PUT("/:id", classController.UpdateClass)
			classes.DELETE("/:id", classController.DeleteClass)
		}

		api.POST("/reminders/send/:id", reminderController.SendReminder)
		api.GET("/messages", messageController.GetMessages)
	}

	return r
}

func corsMiddleware() gin.HandlerFunc {
	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		// Match the permissive setup the front-ends expect in development
		return cors.Default()
	}

	return cors.New(cors.Config{
		AllowOrigins:     strings.Split(origins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	})
}
