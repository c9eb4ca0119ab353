package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/learnhub/learnhub/infrastructure/http/handler"
	"github.com/learnhub/learnhub/infrastructure/http/middleware"
	"github.com/learnhub/learnhub/infrastructure/service/logger"
)

// Server represents the HTTP server
type Server struct {
	addr   string
	logger logger.Logger
	server *http.Server
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	CorrelationHeader string
	RequestLogging    bool
	CORSEnabled       bool
	CORSOrigins       []string
	CORSCredentials   bool
	PublicDir         string
	ImagesDir         string
}

// Handlers groups everything mounted on the router. Metrics may be nil.
type Handlers struct {
	Auth    *handler.AuthHandler
	Users   *handler.UserManagementHandler
	Courses *handler.CourseHandler
	AI      *handler.AIHandler
	Metrics http.Handler
}

// NewRouter mounts the API under /api/v1 plus health, metrics and static files.
func NewRouter(config ServerConfig, handlers Handlers, log logger.Logger, observer middleware.RequestObserver) *mux.Router {
	router := mux.NewRouter()

	router.Use(middleware.CorrelationID(config.CorrelationHeader))
	router.Use(middleware.RequestLogging(log, observer, config.RequestLogging))
	if config.CORSEnabled {
		router.Use(middleware.CORS(config.CORSOrigins, config.CORSCredentials))
	}
	router.Use(middleware.Recovery(log))

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	if handlers.Metrics != nil {
		router.Handle("/metrics", handlers.Metrics).Methods(http.MethodGet)
	}

	api := router.PathPrefix("/api/v1").Subrouter()
	handlers.Auth.RegisterRoutes(api)
	handlers.Users.RegisterRoutes(api)
	handlers.Courses.RegisterRoutes(api)
	handlers.AI.RegisterRoutes(api)

	if config.ImagesDir != "" {
		router.PathPrefix("/imgs/").Handler(http.StripPrefix("/imgs/", http.FileServer(http.Dir(config.ImagesDir))))
	}
	if config.PublicDir != "" {
		router.PathPrefix("/").Handler(http.FileServer(http.Dir(config.PublicDir)))
	}

	return router
}

// NewServer creates a new HTTP server
func NewServer(config ServerConfig, router http.Handler, log logger.Logger) *Server {
	addr := config.Host + ":" + config.Port
	return &Server{
		addr:   addr,
		logger: log,
		server: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
	}
}

// Start blocks until the server stops. A graceful shutdown is not an error.
func (s *Server) Start() error {
	s.logger.Info(context.Background(), "Starting HTTP server", map[string]interface{}{"addr": s.addr})
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "Shutting down HTTP server", nil)
	return s.server.Shutdown(ctx)
}
