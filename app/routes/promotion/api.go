package promotion

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/nbri15/final-dream-tracker/app/services"
)

// Preview reports where every class's pupils would go at rollover,
// without writing anything.
func Preview(c *fiber.Ctx, db *sql.DB) error {
	preview, err := services.PreviewPromotion(db)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build promotion preview",
		})
	}
	return c.JSON(preview)
}

// Commit performs the year-end rollover. Callers are expected to have shown
// the preview and obtained explicit confirmation; a missing destination class
// aborts with no changes.
func Commit(c *fiber.Ctx, db *sql.DB) error {
	preview, err := services.PreviewPromotion(db)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to validate promotion",
		})
	}
	if len(preview.MissingYearGroups) > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":               "Cannot promote while year groups are missing classes",
			"missing_year_groups": preview.MissingYearGroups,
		})
	}

	outcome, err := services.CommitPromotion(db)
	if err != nil {
		var precondition *services.PromotionPreconditionError
		if errors.As(err, &precondition) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":               "Promotion aborted, no changes were made",
				"missing_year_groups": []int{precondition.YearGroup},
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to commit promotion",
		})
	}
	return c.JSON(outcome)
}
