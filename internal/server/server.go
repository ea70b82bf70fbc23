package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"attire-rental/internal/config"
	custommiddleware "attire-rental/internal/middleware"
	"attire-rental/internal/repository"
	"attire-rental/internal/service"
	"attire-rental/internal/session"
	"attire-rental/internal/storage"
	"attire-rental/internal/transport"
	"attire-rental/internal/view"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB, redisClient *redis.Client) (*Server, error) {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	// Session state rides a signed cookie and is threaded through context
	sessionManager := session.NewManager([]byte(cfg.Session.Secret), []byte(cfg.Session.EncryptionKey), cfg.Session.CookieSecure)
	router.Use(custommiddleware.SessionMiddleware(sessionManager))

	// CSRF protection across the whole form surface
	router.Use(csrf.Protect(
		[]byte(cfg.Session.CSRFKey),
		csrf.Secure(cfg.Session.CookieSecure),
	))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Static assets, uploaded images included
	fileServer := http.FileServer(http.Dir(cfg.Upload.Dir))
	router.Handle("/images/*", fileServer)
	router.Handle("/static/*", fileServer)

	// Initialize templates
	templates := view.NewCache()
	if err := templates.Load("templates"); err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	modelRepo := repository.NewModelRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	contactRepo := repository.NewContactRepository(db)

	// Initialize services
	images := storage.NewImageStore(cfg.Upload.Dir)
	authService := service.NewAuthService(userRepo)
	catalogService := service.NewCatalogService(modelRepo, productRepo)
	cartService := service.NewCartService(productRepo)
	checkoutService := service.NewCheckoutService(orderRepo)
	contactService := service.NewContactService(contactRepo)
	adminService := service.NewAdminService(productRepo, modelRepo, contactRepo, images)

	// Member-only pages redirect to sign-in instead of erroring
	guard := custommiddleware.RequireUser(logger)

	// Throttle public form submissions
	rateLimit := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 10,
		Window:            time.Minute,
		KeyPrefix:         "ratelimit:forms",
	}, logger)

	// Initialize handlers
	siteHandler := transport.NewSiteHandler(catalogService, contactService, templates, logger)
	authHandler := transport.NewAuthHandler(authService, templates, logger)
	orderHandler := transport.NewOrderHandler(cartService, checkoutService, templates, logger)
	adminHandler := transport.NewAdminHandler(adminService, templates, logger)

	// Register routes
	siteHandler.RegisterRoutes(router, rateLimit)
	authHandler.RegisterRoutes(router, guard, rateLimit)
	orderHandler.RegisterRoutes(router, guard)
	adminHandler.RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server, nil
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
