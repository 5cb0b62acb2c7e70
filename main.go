// File: schedulit/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"schedulit/config"
	"schedulit/cron"
	"schedulit/database"
	userRepoPkg "schedulit/database/repository/user"
	"schedulit/handlers"
	"schedulit/routes"
	"schedulit/services/assistant"
	"schedulit/services/calendar"
	"schedulit/services/tasks"
	"schedulit/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()

	// services.
	gatewayProvider := &calendar.DefaultGatewayProvider{
		Users: userRepo,
		Cache: utils.GetCacheClient(),
	}

	extractor := &assistant.IntentExtractor{
		LLM: assistant.NewGeminiClient(config.AppConfig.GeminiAPIKey),
	}

	pendingStore := assistant.NewRedisPendingStore(utils.GetSessionCacheClient(), 30*time.Minute)
	disambiguator := &assistant.Disambiguator{Store: pendingStore}

	reminderScheduler := tasks.NewAsynqReminderScheduler(
		time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute,
	)

	assistantService := &assistant.DefaultAssistantService{
		Extractor:       extractor,
		Gateways:        gatewayProvider,
		Disambig:        disambiguator,
		Reminders:       reminderScheduler,
		DefaultDuration: time.Duration(config.AppConfig.DefaultEventMinutes) * time.Minute,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		AuthHandler:     handlers.NewAuthHandler(userRepo),
		CommandHandler:  handlers.NewCommandHandler(assistantService),
		CalendarHandler: handlers.NewCalendarHandler(gatewayProvider),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background reminder worker and health reporting.
	go cron.InitReminderWorker()
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetSessionCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
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

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
