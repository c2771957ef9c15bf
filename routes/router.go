package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/careloop/careboard/config"
	"github.com/careloop/careboard/controllers"
	"github.com/careloop/careboard/forum"
	"github.com/careloop/careboard/middleware"
	"github.com/careloop/careboard/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB, engine *forum.Engine) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(utils.GinLogger())
	r.Use(utils.GinRecovery())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	forumController := controllers.NewForumController(engine)
	doctorController := controllers.NewDoctorController(db)
	appointmentController := controllers.NewAppointmentController(db)

	api := r.Group("/api/v1")

	// Public doctor directory
	api.GET("/doctors", doctorController.ListDoctors)
	api.GET("/doctors/:id", doctorController.GetDoctor)
	api.GET("/doctors/:id/availability", doctorController.GetAvailability)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired())

	protected.GET("/posts", forumController.ListPosts)
	protected.GET("/appointments", appointmentController.List)

	mutating := protected.Group("")
	mutating.Use(middleware.RateLimitMiddleware())
	mutating.POST("/posts", forumController.CreatePost)
	mutating.POST("/posts/:id/comments", forumController.CreateComment)
	mutating.POST("/appointments", middleware.RequireRole("user"), appointmentController.Book)
	mutating.PATCH("/appointments/:id/status", middleware.RequireRole("doctor"), appointmentController.UpdateStatus)
	mutating.PUT("/doctor/availability", middleware.RequireRole("doctor"), doctorController.UpdateAvailability)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
