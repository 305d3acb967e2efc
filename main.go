package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"busbook/config"
	"busbook/cron"
	"busbook/database"
	bookingRepoPkg "busbook/database/repository/booking"
	busRepoPkg "busbook/database/repository/bus"
	operatorRepoPkg "busbook/database/repository/operator"
	paymentRepoPkg "busbook/database/repository/payment"
	permitRepoPkg "busbook/database/repository/permit"
	routeRepoPkg "busbook/database/repository/route"
	scheduleRepoPkg "busbook/database/repository/schedule"
	userRepoPkg "busbook/database/repository/user"
	"busbook/handlers"
	"busbook/routes"
	"busbook/services/booking"
	"busbook/services/bus"
	"busbook/services/operator"
	"busbook/services/payment"
	"busbook/services/permit"
	"busbook/services/route"
	"busbook/services/schedule"
	"busbook/services/user"
	"busbook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	authCache := utils.GetAuthCacheClient()
	utils.StartHealthMonitor(authCache, database.MongoClient)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	operatorRepo := operatorRepoPkg.NewMongoOperatorRepo()
	busRepo := busRepoPkg.NewMongoBusRepo()
	routeRepo := routeRepoPkg.NewMongoRouteRepo()
	scheduleRepo := scheduleRepoPkg.NewMongoScheduleRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	permitRepo := permitRepoPkg.NewMongoPermitRepo()
	paymentRepo := paymentRepoPkg.NewMongoPaymentRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo:        userRepo,
		AuthCache:   authCache,
		TokenExpiry: 1,
	}
	operatorService := &operator.DefaultOperatorService{
		Repo:     operatorRepo,
		UserRepo: userRepo,
	}
	busService := &bus.DefaultBusService{
		Repo:         busRepo,
		OperatorRepo: operatorRepo,
	}
	routeService := &route.DefaultRouteService{
		Repo: routeRepo,
	}
	scheduleService := &schedule.DefaultScheduleService{
		Repo:      scheduleRepo,
		RouteRepo: routeRepo,
		BusRepo:   busRepo,
	}
	expiryClient := cron.NewExpiryClient()
	bookingService := &booking.DefaultBookingService{
		Repo:         bookingRepo,
		ScheduleRepo: scheduleRepo,
		BusRepo:      busRepo,
		Expiry:       expiryClient,
	}
	permitService := &permit.DefaultPermitService{
		Repo:         permitRepo,
		BusRepo:      busRepo,
		OperatorRepo: operatorRepo,
		RouteRepo:    routeRepo,
	}
	paymentService := &payment.DefaultPaymentService{
		Repo:        paymentRepo,
		BookingRepo: bookingRepo,
	}

	cron.InitExpiryWorker(bookingService)

	hb := &handlers.HandlerBundle{
		Users:     handlers.NewUserHandler(userService),
		Operators: handlers.NewOperatorHandler(operatorService),
		Buses:     handlers.NewBusHandler(busService),
		Routes:    handlers.NewRouteHandler(routeService),
		Schedules: handlers.NewScheduleHandler(scheduleService),
		Bookings:  handlers.NewBookingHandler(bookingService),
		Permits:   handlers.NewPermitHandler(permitService),
		Payments:  handlers.NewPaymentHandler(paymentService),
	}

	routes.Register(router, hb, userRepo, authCache, config.AppConfig.MaxRequestsPerMin)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if err := expiryClient.Close(); err != nil {
		logger.Sugar().Warnf("main: failed to close queue client: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
