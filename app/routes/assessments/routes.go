package assessments

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

// SetupAssessmentsRoutes sets up assessment, question and score routes
func SetupAssessmentsRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/assessments")
	api.Post("/resolve", func(c *fiber.Ctx) error { return ResolveAssessment(c, db) })
	api.Get("/:id/questions", func(c *fiber.Ctx) error { return GetQuestions(c, db) })
	api.Post("/:id/reconcile", func(c *fiber.Ctx) error { return ReconcileTotal(c, db) })
	api.Get("/:id/scores", func(c *fiber.Ctx) error { return GetScores(c, db) })
	api.Post("/:id/scores", func(c *fiber.Ctx) error { return BatchSaveScores(c, db) })
	api.Post("/:id/sync", func(c *fiber.Ctx) error { return SyncToResults(c, db) })

	classAPI := app.Group("/api/classes")
	classAPI.Post("/:id/sync-assessments", func(c *fiber.Ctx) error { return SyncClassYear(c, db) })
}
