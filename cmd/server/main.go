package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/learnhub/learnhub/application/port/outbound"
	"github.com/learnhub/learnhub/application/usecase"
	"github.com/learnhub/learnhub/application/usecase/user_management"
	"github.com/learnhub/learnhub/infrastructure/adapter/postgres"
	"github.com/learnhub/learnhub/infrastructure/config"
	"github.com/learnhub/learnhub/infrastructure/http/handler"
	"github.com/learnhub/learnhub/infrastructure/http/middleware"
	"github.com/learnhub/learnhub/infrastructure/http/server"
	"github.com/learnhub/learnhub/infrastructure/service/ai"
	"github.com/learnhub/learnhub/infrastructure/service/jwt"
	"github.com/learnhub/learnhub/infrastructure/service/logger"
	"github.com/learnhub/learnhub/infrastructure/service/metrics"
	"github.com/learnhub/learnhub/infrastructure/service/oauth"
	"github.com/learnhub/learnhub/infrastructure/service/password"
	"github.com/learnhub/learnhub/infrastructure/service/ratelimit"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.NewStructuredLogger(logger.LoggerConfig{Format: "text"}).Error(ctx, "Failed to load configuration", err, nil)
		os.Exit(1)
	}

	// Initialize structured logger
	structuredLogger := logger.NewStructuredLogger(logger.LoggerConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "learnhub",
		File:        cfg.LogFile,
		MaxSizeMB:   cfg.LogMaxSizeMB,
		MaxBackups:  cfg.LogMaxBackups,
		MaxAgeDays:  cfg.LogMaxAgeDays,
	})
	structuredLogger.Info(ctx, "Application starting", map[string]interface{}{
		"env": cfg.Environment,
	})

	// Connect to database
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		structuredLogger.Error(ctx, "Failed to connect to database", err, nil)
		os.Exit(1)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		structuredLogger.Error(ctx, "Failed to ping database", err, nil)
		os.Exit(1)
	}
	structuredLogger.Info(ctx, "Database connection established", nil)

	// Rate limiting (Redis-backed or noop based on config)
	rateLimitService, err := ratelimit.NewRateLimitService(ratelimit.RateLimitConfig{
		Enabled:  cfg.RateLimitEnabled,
		RedisURL: cfg.RedisURL,
	}, structuredLogger)
	if err != nil {
		structuredLogger.Warn(ctx, "Redis unavailable, falling back to no-op rate limiting", map[string]interface{}{
			"error": err.Error(),
		})
		rateLimitService = ratelimit.NoopRateLimitService{}
	}

	// Services
	tokenService, err := jwt.NewJWTService(jwt.Config{
		AccessSecret:    cfg.AccessTokenKey,
		RefreshSecret:   cfg.RefreshTokenKey,
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
		Issuer:          cfg.JWTIssuer,
	})
	if err != nil {
		structuredLogger.Error(ctx, "Failed to initialize token service", err, nil)
		os.Exit(1)
	}
	passwordService := password.NewBcryptPasswordService(password.DefaultCost)

	var oauthProvider outbound.OAuthProvider
	if cfg.GoogleOAuthEnabled() {
		oauthProvider = oauth.NewGoogleService(oauth.GoogleConfig{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.OAuthRedirectURL,
		})
	} else {
		structuredLogger.Warn(ctx, "Google sign-in disabled, CLIENT_ID/CLIENT_SECRET not set", nil)
	}

	aiConfig := outbound.AIConfig{
		Provider:        cfg.AIProvider,
		APIKey:          cfg.AIAPIKey,
		BaseURL:         cfg.AIBaseURL,
		Model:           cfg.AIModel,
		EmbeddingModel:  cfg.AIEmbeddingModel,
		TimeoutMs:       cfg.AITimeoutMs,
		MaxOutputTokens: cfg.AIMaxOutputTokens,
		Temperature:     cfg.AITemperature,
		TopP:            cfg.AITopP,
		TopK:            cfg.AITopK,
	}
	var aiFactory outbound.AIProviderFactory
	switch cfg.AIProvider {
	case "gemini":
		aiFactory = ai.NewGeminiAdapter(aiConfig)
	default:
		aiFactory = ai.NewMockAIProviderFactory(aiConfig)
	}
	structuredLogger.Info(ctx, "AI provider selected", map[string]interface{}{"provider": aiFactory.Provider()})

	// Repositories and use cases
	userRepo := postgres.NewUserRepositoryAdapter(db)
	courseRepo := postgres.NewCourseRepositoryAdapter(db)

	userManagementUseCase := user_management.NewUserManagementUseCase(userRepo, courseRepo, passwordService)
	authUseCase := usecase.NewAuthUseCase(userManagementUseCase, userRepo, passwordService, tokenService, oauthProvider, cfg.ClientURL)
	courseUseCase := usecase.NewCourseUseCase(courseRepo)
	aiUseCase := usecase.NewAIUseCase(aiFactory.Model(), ai.NewDocumentIndex(cfg.DatasetDir, aiFactory.Embeddings()))

	// HTTP
	var (
		recorder       metrics.Recorder = metrics.Noop{}
		metricsHandler http.Handler
	)
	if cfg.MetricsEnabled {
		prom := metrics.NewPrometheusMetrics()
		recorder = prom
		metricsHandler = prom.Handler()
	}

	cookies := middleware.CookieConfig{
		Secure:   cfg.CookieSecure,
		SameSite: cfg.CookieSameSite,
		Domain:   cfg.CookieDomain,
	}
	authMiddleware := middleware.NewAuthMiddleware(usecase.NewAccessGate(tokenService), cookies, recorder, structuredLogger)

	var limiter *middleware.RateLimitMiddleware
	if cfg.RateLimitEnabled {
		limiter = middleware.NewRateLimitMiddleware(rateLimitService, middleware.RateLimitPolicy{
			Attempts:          cfg.RateLimitIPAttempts,
			Window:            cfg.RateLimitIPWindow,
			BlockDuration:     cfg.RateLimitBlockDuration,
			TrustProxyHeaders: cfg.RateLimitTrustProxy,
		}, structuredLogger)
	}

	handlers := server.Handlers{
		Auth:    handler.NewAuthHandler(authUseCase, cookies, limiter, structuredLogger),
		Users:   handler.NewUserManagementHandler(userManagementUseCase, authMiddleware, structuredLogger),
		Courses: handler.NewCourseHandler(courseUseCase, authMiddleware, structuredLogger),
		AI:      handler.NewAIHandler(aiUseCase, authMiddleware, structuredLogger),
		Metrics: metricsHandler,
	}

	serverConfig := server.ServerConfig{
		Host:              cfg.ServerHost,
		Port:              cfg.ServerPort,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      time.Duration(cfg.AITimeoutMs)*time.Millisecond + 15*time.Second,
		IdleTimeout:       60 * time.Second,
		CorrelationHeader: cfg.LogCorrelationIDHeader,
		RequestLogging:    cfg.LogEnableRequestLog,
		CORSEnabled:       cfg.CORSEnabled,
		CORSOrigins:       cfg.CORSAllowedOrigins,
		CORSCredentials:   cfg.CORSAllowCredentials,
		PublicDir:         cfg.PublicDir,
		ImagesDir:         cfg.ImagesDir,
	}
	router := server.NewRouter(serverConfig, handlers, structuredLogger, recorder)
	srv := server.NewServer(serverConfig, router, structuredLogger)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			structuredLogger.Error(ctx, "Server failed", err, nil)
			os.Exit(1)
		}
	case sig := <-quit:
		structuredLogger.Info(ctx, "Shutdown signal received", map[string]interface{}{"signal": sig.String()})
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		structuredLogger.Error(ctx, "Server forced to shutdown", err, nil)
	}
	structuredLogger.Info(ctx, "Server exited", nil)
}
