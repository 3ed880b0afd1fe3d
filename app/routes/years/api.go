package years

import (
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/nbri15/final-dream-tracker/app/database"
	"github.com/nbri15/final-dream-tracker/app/models"
)

var validate = validator.New()

// ListYears returns every academic year, oldest first
func ListYears(c *fiber.Ctx, db *sql.DB) error {
	years, err := database.ListYears(db)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch academic years",
		})
	}
	return c.JSON(years)
}

// GetCurrentYear returns the year assessment currently runs against
func GetCurrentYear(c *fiber.Ctx, db *sql.DB) error {
	year, err := database.GetCurrentYear(db)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch current year",
		})
	}
	if year == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No academic year configured",
		})
	}
	return c.JSON(year)
}

// CreateYear adds a new academic year
func CreateYear(c *fiber.Ctx, db *sql.DB) error {
	var request struct {
		Label     string `json:"label" validate:"required"`
		IsCurrent bool   `json:"is_current"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "label is required",
		})
	}

	existing, err := database.GetYearByLabel(db, request.Label)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check year label",
		})
	}
	if existing != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "A year with that label already exists",
		})
	}

	year := &models.AcademicYear{Label: request.Label}
	if err := database.CreateYear(db, year); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create academic year",
		})
	}
	if request.IsCurrent {
		if err := database.SetCurrentYear(db, year.ID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to set current year",
			})
		}
		year.IsCurrent = true
	}
	return c.Status(fiber.StatusCreated).JSON(year)
}

// SetCurrentYear makes one year the sole current year
func SetCurrentYear(c *fiber.Ctx, db *sql.DB) error {
	yearID := c.Params("id")
	year, err := database.GetYearByID(db, yearID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch academic year",
		})
	}
	if year == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Academic year not found",
		})
	}

	if err := database.SetCurrentYear(db, yearID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to set current year",
		})
	}
	year.IsCurrent = true
	return c.JSON(year)
}
