package server

import (
	"context"
	"time"

	fiberprometheus "github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"quicknotes-server/controllers"
	middleware "quicknotes-server/middlewares"
	"quicknotes-server/routes"
	service "quicknotes-server/services"
)

// HealthFunc reports whether the note store is reachable.
type HealthFunc func(ctx context.Context) error

type AppOptions struct {
	CORSOrigin string
	// Metrics enables the Prometheus middleware and /metrics.
	Metrics bool
}

const healthTimeout = 5 * time.Second

// NewApp assembles the HTTP surface around a note service and event hub.
func NewApp(noteService *service.NoteService, hub *service.WebSocketService, health HealthFunc, opts AppOptions) *fiber.App {
	// Immutable because params and bodies outlive the request in the
	// memory store and in event payloads.
	app := fiber.New(fiber.Config{
		AppName:               "quicknotes",
		DisableStartupMessage: true,
		Immutable:             true,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(helmet.New())

	if opts.Metrics {
		p := fiberprometheus.New("quicknotes")
		p.RegisterAt(app, "/metrics")
		app.Use(p.Middleware)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: opts.CORSOrigin,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Content-Type",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("QuickNotes Backend is running")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()
		if err := health(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "DOWN",
				"error":  err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "UP"})
	})

	routes.WebSocketRoutes(app, controllers.NewWebSocketController(hub))
	routes.NoteRoutes(app, controllers.NewNoteController(noteService))

	return app
}
