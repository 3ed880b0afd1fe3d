package interventions

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

// SetupInterventionsRoutes sets up intervention routes
func SetupInterventionsRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/interventions")
	api.Get("/", func(c *fiber.Ctx) error { return ListInterventions(c, db) })
	api.Post("/", func(c *fiber.Ctx) error { return CreateIntervention(c, db) })
	api.Put("/:id", func(c *fiber.Ctx) error { return UpdateIntervention(c, db) })
	api.Post("/:id/focus-areas", func(c *fiber.Ctx) error { return RecomputeFocusAreas(c, db) })
}
