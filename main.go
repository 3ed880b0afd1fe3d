package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/nbri15/final-dream-tracker/app/config"
	"github.com/nbri15/final-dream-tracker/app/database"
	"github.com/nbri15/final-dream-tracker/app/routes/assessments"
	"github.com/nbri15/final-dream-tracker/app/routes/classes"
	"github.com/nbri15/final-dream-tracker/app/routes/interventions"
	"github.com/nbri15/final-dream-tracker/app/routes/promotion"
	"github.com/nbri15/final-dream-tracker/app/routes/results"
	"github.com/nbri15/final-dream-tracker/app/routes/templates"
	"github.com/nbri15/final-dream-tracker/app/routes/years"
	"github.com/nbri15/final-dream-tracker/app/services"
)

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	config.LoadEnv()

	// Initialize database
	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// First-boot repairs: a current academic year and the archive class
	// must exist before any request is served.
	if _, err := services.EnsureDefaultYear(db); err != nil {
		log.Fatal("Failed to ensure current academic year:", err)
	}
	if _, err := database.EnsureArchiveClass(db); err != nil {
		log.Fatal("Failed to ensure archive class:", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Setup years routes
	years.SetupYearsRoutes(app, db)

	// Setup classes and pupils routes
	classes.SetupClassesRoutes(app, db)

	// Setup templates routes
	templates.SetupTemplatesRoutes(app, db)

	// Setup assessments routes
	assessments.SetupAssessmentsRoutes(app, db)

	// Setup results routes
	results.SetupResultsRoutes(app, db)

	// Setup interventions routes
	interventions.SetupInterventionsRoutes(app, db)

	// Setup promotion routes
	promotion.SetupPromotionRoutes(app, db)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	// Start server
	log.Println("Server starting on :8080")
	log.Fatal(app.Listen(":8080"))
}
