package routes

import (
	"net/http"
	"time"

	userRepo "busbook/database/repository/user"
	"busbook/handlers"
	"busbook/middleware"
	"busbook/models"
	"busbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// Register mounts every endpoint on the engine: public registration and
// login, then the authenticated API surface with role checks on the
// administrative routes.
func Register(r *gin.Engine, hb *handlers.HandlerBundle, users userRepo.UserRepository, authCache *redis.Client, maxRequestsPerMin int) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(maxRequestsPerMin))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": utils.GetHealthStatus()})
	})

	api := r.Group("/api")

	// Public endpoints.
	api.POST("/users", hb.Users.RegisterUserHandler)
	api.POST("/login", hb.Users.LoginHandler)

	auth := api.Group("")
	auth.Use(middleware.JWTAuthMiddleware(users, authCache))

	auth.POST("/logout", hb.Users.LogoutHandler)

	// Users. Listing and deletion are administrative.
	auth.GET("/users", middleware.Authorize(models.RoleAdmin), hb.Users.GetUsersHandler)
	auth.GET("/users/:id", hb.Users.GetUserByIDHandler)
	auth.PUT("/users/:id", hb.Users.UpdateUserHandler)
	auth.PUT("/users/reset-password/:id", hb.Users.UpdateUserPasswordHandler)
	auth.DELETE("/users/:id", middleware.Authorize(models.RoleAdmin), hb.Users.DeleteUserHandler)

	// Bus operators.
	operatorAdmin := middleware.Authorize(models.RoleAdmin)
	auth.POST("/bus-operators", operatorAdmin, hb.Operators.CreateOperatorHandler)
	auth.GET("/bus-operators", hb.Operators.GetOperatorsHandler)
	auth.PUT("/bus-operators/:id", operatorAdmin, hb.Operators.UpdateOperatorHandler)
	auth.DELETE("/bus-operators/:id", operatorAdmin, hb.Operators.DeleteOperatorHandler)

	// Fleet. Mutations need an operator or admin; reads are open to any
	// authenticated user.
	fleetWrite := middleware.Authorize(models.RoleAdmin, models.RoleBusOperator)
	auth.POST("/buses", fleetWrite, hb.Buses.CreateBusHandler)
	auth.GET("/buses", hb.Buses.GetBusesHandler)
	auth.PUT("/buses/:id", fleetWrite, hb.Buses.UpdateBusHandler)
	auth.DELETE("/buses/:id", fleetWrite, hb.Buses.DeleteBusHandler)

	// Routes.
	auth.POST("/routes", fleetWrite, hb.Routes.CreateRouteHandler)
	auth.GET("/routes", hb.Routes.GetRoutesHandler)
	auth.PUT("/routes/:id", fleetWrite, hb.Routes.UpdateRouteHandler)
	auth.DELETE("/routes/:id", fleetWrite, hb.Routes.DeleteRouteHandler)

	// Schedules.
	auth.POST("/schedules", fleetWrite, hb.Schedules.CreateScheduleHandler)
	auth.GET("/schedules", hb.Schedules.GetSchedulesHandler)
	auth.GET("/schedules/:id/available-seats", hb.Bookings.GetAvailableSeatsHandler)
	auth.PUT("/schedules/:id", fleetWrite, hb.Schedules.UpdateScheduleHandler)
	auth.DELETE("/schedules/:id", fleetWrite, hb.Schedules.DeleteScheduleHandler)

	// Bookings. Any authenticated user may book; hard delete is
	// administrative.
	auth.POST("/bookings", hb.Bookings.CreateBookingHandler)
	auth.GET("/bookings", hb.Bookings.GetBookingsHandler)
	auth.GET("/bookings/:id", hb.Bookings.GetBookingByIDHandler)
	auth.PUT("/bookings/:id", hb.Bookings.UpdateBookingHandler)
	auth.DELETE("/bookings/:id", middleware.Authorize(models.RoleAdmin), hb.Bookings.DeleteBookingHandler)

	// Permits. Status changes are the regulator's call, admin only.
	auth.POST("/permits", fleetWrite, hb.Permits.CreatePermitHandler)
	auth.GET("/permits", hb.Permits.GetPermitsHandler)
	auth.GET("/permits/:id", hb.Permits.GetPermitByIDHandler)
	auth.PUT("/permits/:id", middleware.Authorize(models.RoleAdmin), hb.Permits.UpdatePermitStatusHandler)
	auth.DELETE("/permits/:id", middleware.Authorize(models.RoleAdmin), hb.Permits.DeletePermitHandler)

	// Payments.
	auth.POST("/payments", hb.Payments.CreatePaymentHandler)
	auth.GET("/payments", hb.Payments.GetPaymentsHandler)
	auth.PUT("/payments/:id", middleware.Authorize(models.RoleAdmin), hb.Payments.UpdatePaymentHandler)
	auth.DELETE("/payments/:id", middleware.Authorize(models.RoleAdmin), hb.Payments.DeletePaymentHandler)
}
