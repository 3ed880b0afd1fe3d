package years

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

// SetupYearsRoutes sets up all academic-year routes
func SetupYearsRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/years")
	api.Get("/", func(c *fiber.Ctx) error { return ListYears(c, db) })
	api.Get("/current", func(c *fiber.Ctx) error { return GetCurrentYear(c, db) })
	api.Post("/", func(c *fiber.Ctx) error { return CreateYear(c, db) })
	api.Put("/:id/current", func(c *fiber.Ctx) error { return SetCurrentYear(c, db) })
}
