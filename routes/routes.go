package routes

import (
	"database/sql"
	"net/http"
	"time"

	"grammar_master_backend/audit"
	"grammar_master_backend/cache"
	"grammar_master_backend/handlers"
	"grammar_master_backend/mailer"
	"grammar_master_backend/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(r *gin.Engine, db *sql.DB, store cache.Store, cacheTTL time.Duration, mail mailer.Mailer, jwtSecret []byte) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, mail, jwtSecret)
	lessonHandler := handlers.NewLessonHandler(db, store, cacheTTL, audit.NewLogger(db))
	classHandler := handlers.NewClassHandler(db)
	studentHandler := handlers.NewStudentHandler(db)
	healthHandler := handlers.NewHealthHandler(db)

	// Public routes
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Grammar Backend API is running")
	})
	r.GET("/health", healthHandler.HealthCheck)

	api := r.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/verify-otp", authHandler.VerifyOTP)
		api.POST("/resend-otp", authHandler.ResendOTP)
		api.POST("/forgot-password", authHandler.ForgotPassword)
		api.POST("/reset-password", authHandler.ResetPassword)
		api.POST("/login", authHandler.Login)
	}

	// Protected routes
	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(jwtSecret))
	{
		// Lesson routes
		protected.GET("/lessons", lessonHandler.GetLessons)
		protected.POST("/lessons", lessonHandler.CreateLesson)
		protected.PUT("/lessons/:id", lessonHandler.UpdateLesson)
		protected.DELETE("/lessons/:id", lessonHandler.DeleteLesson)

		// Class routes
		protected.GET("/classes", classHandler.GetClasses)
		protected.POST("/classes", classHandler.CreateClass)
		protected.DELETE("/classes/:id", classHandler.DeleteClass)

		// Student routes
		protected.GET("/students", studentHandler.GetStudents)
		protected.POST("/students", studentHandler.CreateStudent)
		protected.PUT("/students/:id", studentHandler.UpdateStudent)
	}
}
