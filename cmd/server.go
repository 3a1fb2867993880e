package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/Abraxas-365/reactx/pkg/config"
	"github.com/Abraxas-365/reactx/pkg/errx"
	"github.com/Abraxas-365/reactx/pkg/logx"
	"github.com/Abraxas-365/reactx/pkg/otelx"
)

func main() {
	// 1. Load configuration and initialize logger
	cfg, err := config.Load()
	if err != nil {
		logx.Fatalf("Invalid configuration: %v", err)
	}
	logx.SetDefaultLogger(logx.NewLogger(&cfg.Log))

	logx.Info("🚀 Starting reactx command server...")

	// 2. Tracing
	shutdownTracing, err := otelx.Setup(context.Background(), cfg.OTel)
	if err != nil {
		logx.Fatalf("Failed to set up tracing: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logx.Errorf("Tracing shutdown error: %v", err)
		}
	}()

	// 3. Initialize Dependency Container
	container := NewContainer(cfg)
	defer container.Cleanup()

	// 4. Create Fiber App
	app := newApp(container)

	// 5. Start Server with Graceful Shutdown
	startServer(app, cfg.Server.Port)
}

// newApp builds the fiber app with middleware and routes.
func newApp(container *Container) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "reactx command server",
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler(container.Config.Server.Debug),
		IdleTimeout:           120 * time.Second,
	})

	// Global Middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	app.Use(requestid.New(requestid.Config{
		Header:    "X-Request-ID",
		Generator: generateRequestID,
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:  container.Config.Server.CORSOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, X-Request-ID",
		AllowMethods:  "GET, POST, PUT, HEAD, OPTIONS",
		ExposeHeaders: "X-Request-ID",
	}))

	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path} | ${ip} | ${reqHeader:X-Request-ID}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
	}))

	// Health Check
	app.Get("/health", healthCheckHandler(container))

	// Command Routes
	api := app.Group("/api/v1/commands")
	api.Get("/", listCommandsHandler(container))
	api.Get("/:name", getCommandHandler(container))
	api.Post("/:name/execute", executeCommandHandler(container))
	api.Put("/:name/enabled", setEnabledHandler(container))

	// 404 Handler
	app.Use(notFoundHandler)

	return app
}

// ============================================================================
// Handler Functions
// ============================================================================

// healthCheckHandler returns a health check handler
func healthCheckHandler(container *Container) fiber.Handler {
	return func(c *fiber.Ctx) error {
		health := fiber.Map{
			"status":   "healthy",
			"service":  "reactx",
			"version":  container.Config.Server.AppVersion,
			"commands": len(container.Commands),
		}

		if container.Redis != nil {
			if err := container.Redis.Ping(c.UserContext()).Err(); err != nil {
				health["redis"] = "unhealthy"
				health["redis_error"] = err.Error()
				health["status"] = "degraded"
			} else {
				health["redis"] = "healthy"
			}
		}

		status := fiber.StatusOK
		if health["status"] == "degraded" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(health)
	}
}

func listCommandsHandler(container *Container) fiber.Handler {
	return func(c *fiber.Ctx) error {
		statuses := make([]commandStatus, 0, len(container.Commands))
		for _, name := range container.CommandNames() {
			statuses = append(statuses, container.Commands[name].Status())
		}
		return c.JSON(fiber.Map{"commands": statuses})
	}
}

func getCommandHandler(container *Container) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cmd, err := container.Command(c.Params("name"))
		if err != nil {
			return err
		}
		return c.JSON(cmd.Status())
	}
}

// executeCommandHandler starts an execution. By default it waits for the
// execution to finish; ?wait=false returns 202 with the execution id.
func executeCommandHandler(container *Container) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cmd, err := container.Command(c.Params("name"))
		if err != nil {
			return err
		}

		wait := c.QueryBool("wait", true)
		result, err := cmd.Execute(c.UserContext(), c.Body(), wait)
		if err != nil {
			return err
		}
		if result.Pending {
			return c.Status(fiber.StatusAccepted).JSON(result)
		}
		return c.JSON(result)
	}
}

type setEnabledRequest struct {
	Enabled *bool `json:"enabled"`
}

func setEnabledHandler(container *Container) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cmd, err := container.Command(c.Params("name"))
		if err != nil {
			return err
		}

		var req setEnabledRequest
		if err := c.BodyParser(&req); err != nil {
			return errx.Wrap(err, "invalid request body", errx.TypeValidation)
		}
		if req.Enabled == nil {
			return errx.Validation("enabled is required")
		}
		if err := cmd.SetEnabled(c.UserContext(), *req.Enabled); err != nil {
			return err
		}
		return c.JSON(cmd.Status())
	}
}

// notFoundHandler handles 404 errors
func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":      "Route not found",
		"code":       "NOT_FOUND",
		"path":       c.Path(),
		"method":     c.Method(),
		"message":    "The requested endpoint does not exist",
		"request_id": c.Get("X-Request-ID"),
	})
}

// ============================================================================
// Error Handler
// ============================================================================

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(debug bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		requestID := c.Get("X-Request-ID")
		if requestID == "" {
			requestID, _ = c.Locals("requestid").(string)
		}

		logx.WithFields(logx.Fields{
			"path":       c.Path(),
			"method":     c.Method(),
			"ip":         c.IP(),
			"request_id": requestID,
		}).Errorf("Request error: %v", err)

		// If it's a Fiber error
		var fe *fiber.Error
		if errx.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{
				"error":      fe.Message,
				"code":       "FIBER_ERROR",
				"status":     fe.Code,
				"request_id": requestID,
			})
		}

		// If it's our custom errx.Error
		var e *errx.Error
		if errx.As(err, &e) {
			response := e.ToHTTPResponse()
			body := fiber.Map{
				"error":      response.Message,
				"code":       response.Code,
				"type":       response.Type,
				"status":     e.HTTPStatus,
				"request_id": requestID,
			}
			if len(response.Details) > 0 {
				body["details"] = response.Details
			}
			if debug && e.Err != nil {
				body["underlying_error"] = e.Err.Error()
			}
			return c.Status(errx.StatusOf(err)).JSON(body)
		}

		// Default unknown error
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":      "Internal Server Error",
			"type":       "INTERNAL",
			"code":       "INTERNAL_ERROR",
			"message":    err.Error(),
			"request_id": requestID,
		})
	}
}

// ============================================================================
// Utility Functions
// ============================================================================

// generateRequestID generates a unique request ID
func generateRequestID() string {
	return "req-" + uuid.NewString()
}

// startServer starts the server with graceful shutdown
func startServer(app *fiber.App, port string) {
	go func() {
		logx.Info(strings.Repeat("=", 61))
		logx.Infof("🚀 Server listening on port %s", port)
		logx.Infof("💚 Health Check: http://localhost:%s/health", port)
		logx.Infof("📋 Commands: http://localhost:%s/api/v1/commands", port)
		logx.Info(strings.Repeat("=", 61))

		if err := app.Listen(":" + port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	gracefulShutdown(app)
}

// gracefulShutdown handles graceful server shutdown
func gracefulShutdown(app *fiber.App) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logx.Infof("🛑 Received signal: %v", sig)
	logx.Info("Shutting down gracefully...")

	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("✅ Server exited successfully")
}
