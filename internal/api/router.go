package api

import (
	"os"
	"path/filepath"

	"bankextract/internal/api/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func SetupRouter(stmtHandler *handlers.StatementHandler, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		// Statements can be multi-megabyte scans.
		BodyLimit: 32 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(logger.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Static single-page surface
	webStaticPath := findWebStaticPath(appLogger)
	if webStaticPath != "" {
		appLogger.Info("Serving static files", zap.String("path", webStaticPath))
		app.Static("/static", webStaticPath)
	} else {
		appLogger.Warn("Web static directory not found, static files will not be served")
	}

	app.Get("/", func(c *fiber.Ctx) error {
		if webStaticPath != "" {
			indexPath := filepath.Join(webStaticPath, "index.html")
			if fileExists(indexPath) {
				return c.SendFile(indexPath)
			}
		}
		return c.Status(fiber.StatusNotFound).SendString("Web interface not found. Please ensure web/static/index.html exists.")
	})

	// API routes
	v1 := app.Group("/api/v1")
	v1.Post("/statements/extract", stmtHandler.ExtractStatement)
	v1.Get("/runs", stmtHandler.ListRuns)
	v1.Get("/runs/:id", stmtHandler.GetRun)
	v1.Get("/runs/:id/download", stmtHandler.DownloadRun)

	return app
}

// findWebStaticPath locates the web/static directory relative to the working
// directory, so the binary works from the repo root and from cmd/bankextract.
func findWebStaticPath(logger *zap.Logger) string {
	paths := []string{
		"./web/static",
		"../web/static",
		"../../web/static",
	}

	for _, path := range paths {
		if fileExists(filepath.Join(path, "index.html")) {
			return path
		}
		logger.Debug("Tried static path", zap.String("path", path))
	}

	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
