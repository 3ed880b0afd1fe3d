package assessments

import (
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/nbri15/final-dream-tracker/app/database"
	"github.com/nbri15/final-dream-tracker/app/models"
	"github.com/nbri15/final-dream-tracker/app/services"
)

var validate = validator.New()

// ResolveAssessment gets or creates the working copy for a
// (class, year, term, subject, paper) tuple and returns it with its questions.
func ResolveAssessment(c *fiber.Ctx, db *sql.DB) error {
	var request struct {
		ClassID string `json:"class_id" validate:"required"`
		YearID  string `json:"year_id" validate:"required"`
		Term    string `json:"term" validate:"required"`
		Subject string `json:"subject" validate:"required"`
		Paper   string `json:"paper" validate:"required"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "class_id, year_id, term, subject and paper are required",
		})
	}

	term := models.Term(request.Term)
	if !term.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown term",
		})
	}
	subject, ok := models.NormalizeSubject(request.Subject)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown subject",
		})
	}
	paper := models.Paper(request.Paper)
	if _, ok := models.ResultFieldFor(subject, paper); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Paper does not belong to subject",
		})
	}

	a, err := services.GetOrCreateAssessment(db, request.ClassID, request.YearID, term, subject, paper)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve assessment",
		})
	}
	questions, err := database.ListAssessmentQuestions(db, a.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch questions",
		})
	}
	a.Questions = questions
	return c.JSON(a)
}

// GetQuestions returns an assessment's live questions in number order
func GetQuestions(c *fiber.Ctx, db *sql.DB) error {
	a, err := database.GetAssessmentByID(db, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch assessment",
		})
	}
	if a == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Assessment not found",
		})
	}
	questions, err := database.ListAssessmentQuestions(db, a.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch questions",
		})
	}
	return c.JSON(questions)
}

// ReconcileTotal makes the assessment's question maxima sum to the requested
// total, or to the resolved term maximum when no total is supplied.
func ReconcileTotal(c *fiber.Ctx, db *sql.DB) error {
	assessmentID := c.Params("id")
	a, err := database.GetAssessmentByID(db, assessmentID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch assessment",
		})
	}
	if a == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Assessment not found",
		})
	}

	var request struct {
		RequiredTotal *float64 `json:"required_total"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	total := 0.0
	if request.RequiredTotal != nil {
		total = *request.RequiredTotal
	} else {
		total, err = services.ResolveTermMax(db, a.ClassID, a.AcademicYearID, a.Term, a.Subject, a.Paper)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to resolve term maximum",
			})
		}
	}
	if total < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "required_total cannot be negative",
		})
	}

	if err := services.ReconcileQuestionTotal(db, assessmentID, total); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reconcile questions",
		})
	}
	questions, err := database.ListAssessmentQuestions(db, assessmentID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch questions",
		})
	}
	return c.JSON(questions)
}

// GetScores returns every pupil score row for an assessment
func GetScores(c *fiber.Ctx, db *sql.DB) error {
	scores, err := database.ListScoresByAssessment(db, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch scores",
		})
	}
	return c.JSON(scores)
}

// BatchSaveScores writes a page of pupil question marks, then folds the
// assessment into termly results in the same request.
func BatchSaveScores(c *fiber.Ctx, db *sql.DB) error {
	assessmentID := c.Params("id")
	a, err := database.GetAssessmentByID(db, assessmentID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch assessment",
		})
	}
	if a == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Assessment not found",
		})
	}

	var request struct {
		Scores []struct {
			PupilID    string  `json:"pupil_id" validate:"required"`
			QuestionID string  `json:"question_id" validate:"required"`
			Mark       float64 `json:"mark" validate:"gte=0"`
		} `json:"scores" validate:"required,dive"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Each score needs pupil_id, question_id and a non-negative mark",
		})
	}

	// Marks commit before the aggregation pass reads them.
	tx, err := db.Begin()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save scores",
		})
	}
	defer tx.Rollback()
	for _, s := range request.Scores {
		score := &models.PupilQuestionScore{
			AssessmentID: assessmentID,
			PupilID:      s.PupilID,
			QuestionID:   s.QuestionID,
			Mark:         s.Mark,
		}
		if err := database.UpsertScore(tx, score); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to save scores",
			})
		}
	}
	if err := tx.Commit(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save scores",
		})
	}

	if err := services.SyncAssessmentToResults(db, assessmentID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Scores saved but result sync failed",
		})
	}
	return c.JSON(fiber.Map{"saved": len(request.Scores)})
}

// SyncToResults folds an assessment's marks into termly results
func SyncToResults(c *fiber.Ctx, db *sql.DB) error {
	assessmentID := c.Params("id")
	a, err := database.GetAssessmentByID(db, assessmentID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch assessment",
		})
	}
	if a == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Assessment not found",
		})
	}
	if err := services.SyncAssessmentToResults(db, assessmentID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to sync results",
		})
	}
	return c.JSON(fiber.Map{"synced": true})
}

// SyncClassYear ensures a class has every termly assessment for a year,
// each reconciled to its configured maximum.
func SyncClassYear(c *fiber.Ctx, db *sql.DB) error {
	classID := c.Params("id")
	yearID := c.Query("year_id")
	if yearID == "" {
		year, err := database.GetCurrentYear(db)
		if err != nil || year == nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to resolve current year",
			})
		}
		yearID = year.ID
	}

	if err := services.SyncClassYearAssessments(db, classID, yearID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to sync class assessments",
		})
	}
	return c.JSON(fiber.Map{"synced": true})
}
