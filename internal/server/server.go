// Package server assembles the fiber application: global middleware, ops
// endpoints and the /api routes.
package server

import (
	"errors"
	"log/slog"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/helpdesk/internal/config"
	"github.com/localnerve/helpdesk/internal/handlers"
	"github.com/localnerve/helpdesk/internal/middleware"
	"github.com/localnerve/helpdesk/internal/services"
	"github.com/localnerve/helpdesk/internal/types"
	"github.com/localnerve/helpdesk/internal/utils"
	"gorm.io/gorm"

	_ "github.com/localnerve/helpdesk/docs/api" // Swagger docs
)

// New builds the application. A nil metrics skips /metrics.
func New(cfg *config.Config, db *gorm.DB, metrics *fiberprometheus.FiberPrometheus) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(compress.New())

	if metrics != nil {
		metrics.RegisterAt(app, "/metrics")
		app.Use(metrics.Middleware)
	}

	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		result := services.HealthCheck(c.UserContext(), cfg, db)
		status := fiber.StatusOK
		if !result.Healthy() {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(result)
	})

	api := app.Group("/api", middleware.ActorMiddleware())
	handlers.RegisterRoutes(api, db, cfg.BcryptCost)

	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "[404] Resource Not Found")
	})

	return app
}

// ErrorHandler renders errors that escape a handler in the standard envelope
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		errorType := "unknown"
		if fe.Code == fiber.StatusNotFound {
			errorType = types.ErrorTypeNotFound
		}
		return utils.ErrorResponse(c, fe.Message, fe.Code, errorType)
	}

	slog.ErrorContext(c.UserContext(), "unhandled error",
		"method", c.Method(), "url", c.OriginalURL(), "error", err)
	return utils.ServiceErrorResponse(c, err)
}
