package templates

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

// SetupTemplatesRoutes sets up paper-template routes
func SetupTemplatesRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/templates")
	api.Get("/active", func(c *fiber.Ctx) error { return GetActive(c, db) })
	api.Post("/", func(c *fiber.Ctx) error { return CreateTemplate(c, db) })
	api.Get("/:id/questions", func(c *fiber.Ctx) error { return GetTemplateQuestions(c, db) })
	api.Put("/:id/questions", func(c *fiber.Ctx) error { return ReplaceQuestions(c, db) })
	api.Post("/:id/clone", func(c *fiber.Ctx) error { return Clone(c, db) })
	api.Post("/:id/publish", func(c *fiber.Ctx) error { return Publish(c, db) })
	api.Post("/:id/copy-to-next-year", func(c *fiber.Ctx) error { return CopyToNextYear(c, db) })
}
