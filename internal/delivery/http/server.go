package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/bikeshare-loader/internal/config"
	"github.com/bikeshare-loader/internal/delivery/http/handler"
	"github.com/bikeshare-loader/internal/delivery/http/middleware"
	"github.com/bikeshare-loader/internal/pkg/errors"
	"github.com/bikeshare-loader/internal/pkg/utils"
)

// Server - read API over the loaded ride store
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	healthHandler   *handler.HealthHandler
	stationHandler  *handler.StationHandler
	statsHandler    *handler.StatsHandler
	pipelineHandler *handler.PipelineHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	healthHandler *handler.HealthHandler,
	stationHandler *handler.StationHandler,
	statsHandler *handler.StatsHandler,
	pipelineHandler *handler.PipelineHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Bikeshare Loader API",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		healthHandler:   healthHandler,
		stationHandler:  stationHandler,
		statsHandler:    statsHandler,
		pipelineHandler: pipelineHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.healthHandler.Health)

	// nearest before :id so it is not captured as an id
	api.Get("/stations", s.stationHandler.ListStations)
	api.Get("/stations/nearest", s.stationHandler.NearestStations)
	api.Get("/stations/:id", s.stationHandler.GetStation)

	api.Get("/stats", s.statsHandler.GetStatistics)
	api.Post("/stats/refresh", s.statsHandler.RefreshStatistics)

	api.Get("/pipeline/status", s.pipelineHandler.GetStatus)
}

// App exposes the fiber app, used by tests
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler renders fiber errors (unknown routes, bad methods) in the API error shape
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(utils.ErrorResponse{
			Error: errors.New("HTTP_ERROR", err.Error(), code),
		})
	}
}
