package promotion

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

// SetupPromotionRoutes sets up year-end rollover routes
func SetupPromotionRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/promotion")
	api.Get("/preview", func(c *fiber.Ctx) error { return Preview(c, db) })
	api.Post("/commit", func(c *fiber.Ctx) error { return Commit(c, db) })
}
