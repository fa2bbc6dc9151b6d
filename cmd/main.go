package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skillconnect/internal/config"
	"skillconnect/internal/infrastructure/database/memory"
	"skillconnect/internal/infrastructure/database/postgres"
	"skillconnect/internal/infrastructure/otpstore"
	"skillconnect/internal/logger"
	"skillconnect/internal/notification"
	"skillconnect/internal/routes"
	"skillconnect/internal/sms"
	"skillconnect/pkg/mqtt"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	logger.Info("Starting application",
		zap.String("environment", env),
		zap.String("storage", cfg.Storage.Driver),
		zap.String("sms_provider", cfg.SMS.Provider),
	)

	deps := &routes.Dependencies{}
	var cleanups []func()

	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		db, err := postgres.NewDB(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		cleanups = append(cleanups, func() {
			if err := db.Close(); err != nil {
				logger.Error("Failed to close database connection", zap.Error(err))
			}
		})

		migrateCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err = db.Migrate(migrateCtx)
		cancel()
		if err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}

		deps.Users = postgres.NewUserRepository(db)
		deps.Bookings = postgres.NewBookingRepository(db)
		deps.Reviews = postgres.NewReviewRepository(db)
		deps.Health = db.Health
	default:
		store := memory.NewStore()
		deps.Users = store.Users
		deps.Bookings = store.Bookings
		deps.Reviews = store.Reviews
		logger.Warn("Using in-memory storage, data is lost on restart")
	}

	deps.SMS, err = sms.NewSender(&cfg.SMS)
	if err != nil {
		logger.Fatal("Failed to create SMS sender", zap.Error(err))
	}

	otps := otpstore.New()
	purger, err := otpstore.StartPurge(otps, cfg.OTP.PurgeSpec)
	if err != nil {
		logger.Fatal("Failed to schedule OTP purge", zap.Error(err))
	}
	deps.OTPs = otps

	notifiers := notification.NewMulti(notification.NewLogNotifier())
	notifiers.SetDeliveryTimeout(cfg.Notification.DeliveryTimeout)
	if cfg.Notification.WebSocket {
		deps.Hub = notification.NewHub(
			notification.WithAllowedOrigins(cfg.CORS.AllowedOrigins),
			notification.WithKeepAlive(cfg.Notification.SocketPongWait),
		)
		notifiers.Add(deps.Hub)
	}
	var mqttClient *mqtt.Client
	if cfg.Notification.MQTTEnabled {
		mqttCfg := mqtt.DefaultConfig(cfg.Notification.MQTTBroker, cfg.Notification.MQTTClientID)
		mqttCfg.Username = cfg.Notification.MQTTUsername
		mqttCfg.Password = cfg.Notification.MQTTPassword

		mqttClient = mqtt.NewClient(mqttCfg)
		if err := mqttClient.Connect(); err != nil {
			logger.Fatal("Failed to connect to MQTT broker", zap.Error(err))
		}
		notifiers.Add(notification.NewMQTTNotifier(mqttClient, cfg.Notification.TopicPrefix))
	}
	deps.Notifier = notifiers
	deps.Metrics = notifiers.Metrics()

	router := routes.SetupRoutes(cfg, deps)

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("address", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// open websockets are hijacked and would hold Shutdown until the deadline
	if deps.Hub != nil {
		deps.Hub.Close()
	}
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", zap.Error(err))
	}

	router.Close()
	purger.Stop(ctx)
	if mqttClient != nil {
		mqttClient.Disconnect()
	}
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	logger.Info("Server exited properly")
}
