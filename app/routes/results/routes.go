package results

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

// SetupResultsRoutes sets up termly result, writing and SATS routes
func SetupResultsRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/results")
	api.Get("/class/:id", func(c *fiber.Ctx) error { return GetClassResults(c, db) })
	api.Post("/direct", func(c *fiber.Ctx) error { return SaveDirectResult(c, db) })

	writingAPI := app.Group("/api/writing")
	writingAPI.Get("/:pupilID", func(c *fiber.Ctx) error { return GetWritingResult(c, db) })
	writingAPI.Post("/", func(c *fiber.Ctx) error { return SaveWritingResult(c, db) })

	satsAPI := app.Group("/api/sats")
	satsAPI.Get("/headers", func(c *fiber.Ctx) error { return GetSatsHeaders(c, db) })
	satsAPI.Get("/scores/:pupilID", func(c *fiber.Ctx) error { return GetSatsScores(c, db) })
	satsAPI.Post("/scores", func(c *fiber.Ctx) error { return SaveSatsScore(c, db) })
}
