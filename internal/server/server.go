package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"boardcamp/internal/config"
	"boardcamp/internal/database"
	custommiddleware "boardcamp/internal/middleware"
	"boardcamp/internal/repository"
	"boardcamp/internal/service"
	"boardcamp/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config      *config.Config
	logger      *zap.Logger
	db          database.Service
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db database.Service) *Server {
	var redisClient *redis.Client
	if cfg.RateLimit.Requests > 0 {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      NewRouter(cfg, logger, db, redisClient),
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:      cfg,
		logger:      logger,
		db:          db,
		redisClient: redisClient,
	}

	return server
}

// NewRouter builds the HTTP handler. A nil redisClient disables rate limiting.
func NewRouter(cfg *config.Config, logger *zap.Logger, db database.Service, redisClient *redis.Client) http.Handler {
	router := chi.NewRouter()

	router.Use(custommiddleware.DefaultMiddlewareStack(logger)...)
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.Env == "development"))

	if redisClient != nil {
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "boardcamp:rate_limit",
		}, logger))
	}

	if cfg.Server.RequestTimeout > 0 {
		router.Use(custommiddleware.RequestTimeoutMiddleware(cfg.Server.RequestTimeout))
	}

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		health := db.Health(r.Context())
		status := http.StatusOK
		if health["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		custommiddleware.RespondWithJSON(w, status, health)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithError(w, http.StatusNotFound, "route not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Initialize store
	store := repository.NewStore(db.DB())

	// Initialize services
	clock := service.NewClock(cfg.Server.Location())
	maxLimit := cfg.Pagination.MaxLimit

	categoryService := service.NewCategoryService(store, maxLimit)
	gameService := service.NewGameService(store, maxLimit)
	customerService := service.NewCustomerService(store, maxLimit)
	rentalService := service.NewRentalService(store, clock, maxLimit)

	// Register routes
	transport.NewCategoryHandler(categoryService, logger).RegisterRoutes(router)
	transport.NewGameHandler(gameService, logger).RegisterRoutes(router)
	transport.NewCustomerHandler(customerService, logger).RegisterRoutes(router)
	transport.NewRentalHandler(rentalService, logger).RegisterRoutes(router)

	return router
}

// Close releases the database pool and the redis client
func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	_ = s.logger.Sync()
	return nil
}

// PingRedis checks the rate limiter backend; a nil client means rate
// limiting is disabled.
func (s *Server) PingRedis(ctx context.Context) error {
	if s.redisClient == nil {
		return nil
	}
	return s.redisClient.Ping(ctx).Err()
}
