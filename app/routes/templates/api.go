package templates

import (
	"database/sql"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/nbri15/final-dream-tracker/app/database"
	"github.com/nbri15/final-dream-tracker/app/models"
	"github.com/nbri15/final-dream-tracker/app/services"
)

var validate = validator.New()

// GetActive resolves the active template for a scope tuple
func GetActive(c *fiber.Ctx, db *sql.DB) error {
	subject, ok := models.NormalizeSubject(c.Query("subject"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown subject",
		})
	}
	paper := models.Paper(c.Query("paper"))
	yearID := c.Query("year_id")
	term := models.Term(c.Query("term"))
	yearGroup, err := strconv.Atoi(c.Query("year_group"))
	if err != nil || yearID == "" || !term.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "subject, paper, year_id, year_group and term are required",
		})
	}

	t, err := services.ActiveTemplate(db, subject, paper, yearID, yearGroup, term)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve template",
		})
	}
	if t == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No active template in scope",
		})
	}
	return c.JSON(t)
}

// CreateTemplate adds the first version of a template in a scope
func CreateTemplate(c *fiber.Ctx, db *sql.DB) error {
	var request struct {
		Subject   string  `json:"subject" validate:"required"`
		Paper     string  `json:"paper" validate:"required"`
		YearID    string  `json:"year_id" validate:"required"`
		YearGroup int     `json:"year_group" validate:"required,min=1,max=6"`
		Term      string  `json:"term" validate:"required"`
		Title     *string `json:"title"`
		Activate  bool    `json:"activate"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "subject, paper, year_id, year_group and term are required",
		})
	}
	subject, ok := models.NormalizeSubject(request.Subject)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown subject",
		})
	}
	term := models.Term(request.Term)
	if !term.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown term",
		})
	}

	maxVersion, err := database.MaxTemplateVersion(db, subject, models.Paper(request.Paper), request.YearID, request.YearGroup, term)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check template versions",
		})
	}

	t := &models.PaperTemplate{
		Subject:        subject,
		Paper:          models.Paper(request.Paper),
		AcademicYearID: request.YearID,
		YearGroup:      request.YearGroup,
		Term:           term,
		Title:          request.Title,
		Version:        maxVersion + 1,
	}
	if err := database.CreateTemplate(db, t); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create template",
		})
	}
	if request.Activate {
		t, err = services.PublishTemplate(db, t.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to activate template",
			})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

// GetTemplateQuestions returns a template's questions in number order
func GetTemplateQuestions(c *fiber.Ctx, db *sql.DB) error {
	t, err := database.GetTemplateByID(db, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch template",
		})
	}
	if t == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Template not found",
		})
	}
	questions, err := database.ListTemplateQuestions(db, t.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch template questions",
		})
	}
	return c.JSON(questions)
}

// ReplaceQuestions swaps a template's question list wholesale
func ReplaceQuestions(c *fiber.Ctx, db *sql.DB) error {
	templateID := c.Params("id")
	t, err := database.GetTemplateByID(db, templateID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch template",
		})
	}
	if t == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Template not found",
		})
	}

	var request struct {
		Questions []struct {
			Number       int     `json:"number" validate:"required,min=1"`
			MaxMark      float64 `json:"max_mark" validate:"gte=0"`
			QuestionType *string `json:"question_type"`
			Strand       *string `json:"strand"`
			Notes        *string `json:"notes"`
		} `json:"questions" validate:"required,dive"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Each question needs a positive number and non-negative max_mark",
		})
	}

	questions := make([]*models.PaperTemplateQuestion, 0, len(request.Questions))
	for _, tq := range request.Questions {
		questions = append(questions, &models.PaperTemplateQuestion{
			Number:       tq.Number,
			MaxMark:      tq.MaxMark,
			QuestionType: tq.QuestionType,
			Strand:       tq.Strand,
			Notes:        tq.Notes,
		})
	}
	if err := database.ReplaceTemplateQuestions(db, templateID, questions); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to replace template questions",
		})
	}
	return c.JSON(fiber.Map{"replaced": len(questions)})
}

// Clone copies a template into the next version of its scope
func Clone(c *fiber.Ctx, db *sql.DB) error {
	var request struct {
		Activate bool `json:"activate"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	clone, err := services.CloneTemplate(db, c.Params("id"), request.Activate)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to clone template",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(clone)
}

// Publish makes one template the sole active version in its scope
func Publish(c *fiber.Ctx, db *sql.DB) error {
	t, err := services.PublishTemplate(db, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to publish template",
		})
	}
	return c.JSON(t)
}

// CopyToNextYear carries a template into the following academic year
func CopyToNextYear(c *fiber.Ctx, db *sql.DB) error {
	t, err := services.CopyTemplateToNextYear(db, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to copy template",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}
