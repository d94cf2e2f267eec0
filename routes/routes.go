package routes

import (
	"time"

	"careerpath/handlers"
	"careerpath/middleware"
	"careerpath/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.Users.RegisterUserHandler)
		api.POST("/registerCounselor", hb.Users.RegisterCounselorHandler)
		api.POST("/login", hb.Users.LoginHandler)

		// Protected routes (Require Authentication)
		api.POST("/logout", middleware.JWTAuthUserMiddleware(hb.UserRepo, hb.AuthCache), hb.Users.LogoutHandler)
	}
}

// RegisterAppointmentRoutes registers the counselor scheduling endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo, hb.AuthCache))
	{
		api.GET("/", hb.Appointments.GetAllCounselorsHandler)
		api.GET("/slots/:counselorId", hb.Appointments.GetAvailableSlotsHandler)
		api.GET("/my-appointments", hb.Appointments.GetMyAppointmentsHandler)
		api.PATCH("/cancel/:appointmentId", hb.Appointments.CancelAppointmentHandler)

		student := api.Group("", middleware.RequireRole(models.RoleStudent))
		student.POST("/book", hb.Appointments.BookAppointmentHandler)

		counselor := api.Group("", middleware.RequireRole(models.RoleCounselor))
		counselor.GET("/counselor", hb.Appointments.GetCounselorAppointmentsHandler)
		counselor.PATCH("/status/:appointmentId", hb.Appointments.UpdateAppointmentStatusHandler)
		counselor.PUT("/availability", hb.Appointments.SetAvailabilityHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if hb.MaxRequestsPerMin > 0 {
		r.Use(middleware.RateLimitMiddleware(hb.MaxRequestsPerMin))
	}

	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
}
