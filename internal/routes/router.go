package routes

import (
	"skillconnect/internal/config"
	"skillconnect/internal/delivery/http/handler"
	domainBooking "skillconnect/internal/domain/booking"
	domainReview "skillconnect/internal/domain/review"
	domainUser "skillconnect/internal/domain/user"
	"skillconnect/internal/logger"
	"skillconnect/internal/middleware"
	"skillconnect/internal/notification"
	"skillconnect/internal/sms"
	"skillconnect/internal/usecase/auth"
	"skillconnect/internal/usecase/booking"
	"skillconnect/internal/usecase/review"
	"skillconnect/internal/usecase/user"
	"skillconnect/internal/usecase/worker"

	"github.com/gin-gonic/gin"
)

// Dependencies are the storage and delivery collaborators the API is built on
type Dependencies struct {
	Users    domainUser.Repository
	Bookings domainBooking.Repository
	Reviews  domainReview.Repository
	OTPs     auth.OTPStore
	SMS      sms.Sender
	Notifier notification.Notifier
	Hub      *notification.Hub // nil disables the websocket stream
	Health   handler.HealthChecker
	Metrics  *notification.MetricsTracker
}

// Router is the HTTP engine plus the background state its middleware owns
type Router struct {
	*gin.Engine
	limiters []*middleware.RateLimiter
}

// Close stops the rate limiter sweepers
func (r *Router) Close() {
	for _, l := range r.limiters {
		l.Stop()
	}
}

func SetupRoutes(cfg *config.Config, deps *Dependencies) *Router {
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	generalLimiter := middleware.NewRateLimiter("general", cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst)
	otpLimiter := middleware.NewRateLimiter("otp", cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst)

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.SecurityHeadersMiddleware(cfg.Server.IsProduction()))
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	engine.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	engine.Use(generalLimiter.Middleware())

	handler.NewHealthHandler(deps.Health, deps.Metrics).RegisterRoutes(engine)

	authHandler := handler.NewAuthHandler(auth.NewService(deps.Users, deps.OTPs, deps.SMS, cfg))
	userHandler := handler.NewUserHandler(user.NewService(deps.Users))
	bookingHandler := handler.NewBookingHandler(booking.NewService(deps.Bookings, deps.Users, deps.Notifier))
	workerHandler := handler.NewWorkerHandler(worker.NewService(deps.Users, deps.Reviews))
	reviewHandler := handler.NewReviewHandler(review.NewService(deps.Reviews, deps.Users))

	api := engine.Group("/api")
	{
		authHandler.RegisterRoutes(api, otpLimiter.Middleware())
		workerHandler.RegisterRoutes(api)
		reviewHandler.RegisterRoutes(api)

		if deps.Hub != nil {
			handler.NewNotificationHandler(deps.Hub, cfg.JWT.Secret).RegisterRoutes(api)
		}

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			userHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)

			workers := protected.Group("")
			workers.Use(middleware.WorkerOnly())
			{
				workerHandler.RegisterWorkerRoutes(workers)
			}
		}
	}

	logger.Info("All routes initialized")
	return &Router{Engine: engine, limiters: []*middleware.RateLimiter{generalLimiter, otpLimiter}}
}
