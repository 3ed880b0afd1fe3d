package classes

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

// SetupClassesRoutes sets up all class and pupil routes
func SetupClassesRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/classes")
	api.Get("/", func(c *fiber.Ctx) error { return ListClasses(c, db) })
	api.Post("/", func(c *fiber.Ctx) error { return CreateClass(c, db) })
	api.Get("/:id/pupils", func(c *fiber.Ctx) error { return ListClassPupils(c, db) })
	api.Post("/ensure-archive", func(c *fiber.Ctx) error { return EnsureArchive(c, db) })

	pupilAPI := app.Group("/api/pupils")
	pupilAPI.Post("/", func(c *fiber.Ctx) error { return CreatePupil(c, db) })
	pupilAPI.Get("/:id/history", func(c *fiber.Ctx) error { return GetPupilHistory(c, db) })
	pupilAPI.Get("/:id/profile", func(c *fiber.Ctx) error { return GetPupilProfile(c, db) })
	pupilAPI.Put("/:id/profile", func(c *fiber.Ctx) error { return UpdatePupilProfile(c, db) })
}
