package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/icebreaker/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
// authMW may be nil: the API is then open.
func Register(app *fiber.App, health *handlers.HealthHandler, ice *handlers.IceBreakerHandler, authMW fiber.Handler) {
	app.Get("/", handlers.Root)

	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	ig := v1.Group("/icebreakers")
	if authMW != nil {
		ig.Use(authMW)
	}
	ig.Post("/", ice.Generate)
	ig.Post("/async", ice.Submit)
	ig.Get("/status/:task_id", ice.Status)
}
