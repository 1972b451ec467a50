package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"weatherscope/internal/config"
	"weatherscope/internal/weather"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/handlers"

	_ "weatherscope/docs" // Ensure docs are imported
)

const shutdownTimeout = 10 * time.Second

// App encapsulates application dependencies
type App struct {
	router         *gin.Engine
	logger         *slog.Logger
	weatherService weather.Service
	cfg            *config.Config
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Initialize weather service
	weatherSvc, err := weather.NewWeatherService(cfg, logger)
	if err != nil {
		return nil, err
	}

	return newAppWithService(cfg, logger, weatherSvc)
}

func newAppWithService(cfg *config.Config, logger *slog.Logger, weatherSvc weather.Service) (*App, error) {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	if err := registerValidators(); err != nil {
		return nil, err
	}

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	app := &App{
		router:         router,
		logger:         logger,
		weatherService: weatherSvc,
		cfg:            cfg,
	}

	// Register routes
	app.registerRoutes()

	logger.Info("application initialized")

	return app, nil
}

// Handler returns the router wrapped with CORS
func (app *App) Handler() http.Handler {
	origins := handlers.AllowedOrigins(app.cfg.Server.AllowedOrigins)
	methods := handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions})
	headers := handlers.AllowedHeaders([]string{"Content-Type"})

	return handlers.CORS(origins, methods, headers)(app.router)
}

// Run starts the HTTP server and shuts it down when ctx is cancelled
func (app *App) Run(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestLogger logs each request through slog
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "http")

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
