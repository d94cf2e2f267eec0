package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"careerpath/config"
	"careerpath/database"
	appointmentRepoPkg "careerpath/database/repository/appointment"
	counselorRepoPkg "careerpath/database/repository/counselor"
	userRepoPkg "careerpath/database/repository/user"
	"careerpath/handlers"
	"careerpath/routes"
	"careerpath/services/scheduling"
	"careerpath/services/user"
	"careerpath/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	loc, err := config.SchedulingLocation()
	if err != nil {
		logger.Fatal("main: invalid scheduling timezone", zap.String("timezone", config.AppConfig.SchedulingTimezone), zap.Error(err))
	}

	database.InitDB()
	utils.InitRedis()

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	counselorRepo := counselorRepoPkg.NewMongoCounselorRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	for name, ensure := range map[string]func(context.Context) error{
		"users":        userRepo.EnsureIndexes,
		"counselors":   counselorRepo.EnsureIndexes,
		"appointments": appointmentRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			logger.Fatal("main: failed to ensure indexes", zap.String("collection", name), zap.Error(err))
		}
	}
	cancel()

	// services.
	slotCache := scheduling.NewRedisSlotCache(utils.GetCacheClient(), config.SlotCacheTTL(), logger.Named("slot-cache"))
	schedulingService := scheduling.NewDefaultSchedulingService(
		counselorRepo,
		appointmentRepo,
		userRepo,
		slotCache,
		loc,
		logger.Named("scheduling"),
	)
	userService := user.NewDefaultUserService(userRepo, counselorRepo, utils.GetAuthCacheClient(), config.TokenTTL())

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, 30*time.Second,
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()}, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	handlerBundle := &handlers.HandlerBundle{
		UserRepo:          userRepo,
		AuthCache:         utils.GetAuthCacheClient(),
		MaxRequestsPerMin: config.AppConfig.MaxRequestsPerMin,
		Appointments:      handlers.NewAppointmentHandler(schedulingService),
		Users:             handlers.NewUserHandler(userService),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Info("Starting server",
		zap.String("addr", srv.Addr),
		zap.String("env", config.GetEnv()),
		zap.String("timezone", loc.String()),
	)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	stopMonitor()
	utils.CloseRedis()
	if err := database.CloseDB(shutdownCtx); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
