package interventions

import (
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/nbri15/final-dream-tracker/app/database"
	"github.com/nbri15/final-dream-tracker/app/models"
	"github.com/nbri15/final-dream-tracker/app/services"
)

var validate = validator.New()

// ListInterventions returns a class's interventions for one (year, term, paper)
func ListInterventions(c *fiber.Ctx, db *sql.DB) error {
	classID := c.Query("class_id")
	yearID := c.Query("year_id")
	term := models.Term(c.Query("term"))
	paper := models.Paper(c.Query("paper"))
	if classID == "" || yearID == "" || !term.Valid() || paper == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "class_id, year_id, term and paper are required",
		})
	}

	items, err := database.ListInterventionsByClass(db, classID, yearID, term, paper)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch interventions",
		})
	}
	return c.JSON(items)
}

// CreateIntervention opens a support record for one pupil on one paper
func CreateIntervention(c *fiber.Ctx, db *sql.DB) error {
	var request struct {
		PupilID     string   `json:"pupil_id" validate:"required"`
		ClassID     string   `json:"class_id" validate:"required"`
		YearID      string   `json:"year_id" validate:"required"`
		Term        string   `json:"term" validate:"required"`
		Paper       string   `json:"paper" validate:"required"`
		Pct         *float64 `json:"pct"`
		SelectedBy  *string  `json:"selected_by"`
		SupportPlan *string  `json:"support_plan"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "pupil_id, class_id, year_id, term and paper are required",
		})
	}
	term := models.Term(request.Term)
	if !term.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown term",
		})
	}
	paper := models.Paper(request.Paper)
	if _, ok := models.SubjectForPaper(paper); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown paper",
		})
	}

	existing, err := database.FindIntervention(db, request.PupilID, request.YearID, term, paper)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check existing intervention",
		})
	}
	if existing != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "An intervention already exists for this pupil, term and paper",
		})
	}

	it := &models.Intervention{
		PupilID:        request.PupilID,
		ClassID:        request.ClassID,
		AcademicYearID: request.YearID,
		Term:           term,
		Paper:          paper,
		Pct:            request.Pct,
		SelectedBy:     request.SelectedBy,
		SupportPlan:    request.SupportPlan,
	}
	if err := database.CreateIntervention(db, it); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create intervention",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(it)
}

// UpdateIntervention rewrites an intervention's teacher-facing fields
func UpdateIntervention(c *fiber.Ctx, db *sql.DB) error {
	it, err := database.GetInterventionByID(db, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch intervention",
		})
	}
	if it == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Intervention not found",
		})
	}

	var request struct {
		Status        *string    `json:"status" validate:"omitempty,oneof=proposed active closed"`
		SupportPlan   *string    `json:"support_plan"`
		TeacherNote   *string    `json:"teacher_note"`
		PreResult     *string    `json:"pre_result"`
		PostResult    *string    `json:"post_result"`
		ReviewDueDate *time.Time `json:"review_due_date"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "status must be proposed, active or closed",
		})
	}

	if request.Status != nil {
		it.Status = *request.Status
	}
	if request.SupportPlan != nil {
		it.SupportPlan = request.SupportPlan
	}
	if request.TeacherNote != nil {
		it.TeacherNote = request.TeacherNote
		now := time.Now()
		it.TeacherUpdatedAt = &now
	}
	if request.PreResult != nil {
		it.PreResult = request.PreResult
	}
	if request.PostResult != nil {
		it.PostResult = request.PostResult
	}
	if request.ReviewDueDate != nil {
		it.ReviewDueDate = request.ReviewDueDate
	}

	if err := database.UpdateIntervention(db, it); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update intervention",
		})
	}
	return c.JSON(it)
}

// RecomputeFocusAreas rebuilds the weakest-bucket list from question scores
func RecomputeFocusAreas(c *fiber.Ctx, db *sql.DB) error {
	interventionID := c.Params("id")
	if err := services.RecomputeFocusAreas(db, interventionID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to recompute focus areas",
		})
	}
	it, err := database.GetInterventionByID(db, interventionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch intervention",
		})
	}
	return c.JSON(it)
}
