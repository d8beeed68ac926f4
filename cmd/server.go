package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abraxas-365/hiretrack/pkg/config"
	"github.com/Abraxas-365/hiretrack/pkg/errx/errxfiber"
	"github.com/Abraxas-365/hiretrack/pkg/logx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// 1. Configuration and logger
	cfg, err := config.Load()
	if err != nil {
		logx.Fatalf("Failed to load configuration: %v", err)
	}
	logx.Configure(logx.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	logx.Infof("Starting %s...", cfg.App.Name)

	// 2. Initialize Dependency Container
	container := NewContainer(cfg)
	defer container.Close()

	// 3. Background mail retries
	ctx, cancel := context.WithCancel(context.Background())
	container.MailWorker.Start(ctx)

	// 4. Create Fiber App with global middleware
	app := newApp(cfg.App)

	// 5. Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"db":     container.DB.PingContext(c.Context()) == nil,
			"redis":  container.RedisHealthy(c.Context()),
			"queue":  container.QueueStats(c.Context()),
		})
	})

	// 6. Register Routes

	// /api/auth/*, /api/users/*
	container.UserHandlers.RegisterRoutes(app, container.AuthMiddleware)

	// /api/resumes/*
	container.ResumeHandlers.RegisterRoutes(app, container.AuthMiddleware)

	// /api/employees/*
	container.EmployeeHandlers.RegisterRoutes(app, container.AuthMiddleware)

	// /api/leads/*
	container.LeadHandlers.RegisterRoutes(app, container.AuthMiddleware)

	// 7. Start Server with Graceful Shutdown
	go func() {
		logx.Infof("Server listening on %s", cfg.App.Addr())
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logx.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	cancel()
	container.MailWorker.Wait()

	logx.Info("Server exited")
}

// newApp builds the fiber app with the error handler and global middleware
func newApp(cfg config.AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.Name,
		DisableStartupMessage: true,
		ErrorHandler:          errxfiber.ErrorHandler,
		// room for multipart framing around a 10 MB upload
		BodyLimit: 11 << 20,
	})

	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.ClientOrigin,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: 15 * time.Minute,
	}))
	return app
}
