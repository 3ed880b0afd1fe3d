package results

import (
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/nbri15/final-dream-tracker/app/database"
	"github.com/nbri15/final-dream-tracker/app/models"
	"github.com/nbri15/final-dream-tracker/app/services"
)

var validate = validator.New()

// GetClassResults returns the termly result rows for a class's pupils,
// resolved through placement history for past years.
func GetClassResults(c *fiber.Ctx, db *sql.DB) error {
	classID := c.Params("id")
	yearID := c.Query("year_id")
	term := models.Term(c.Query("term"))
	subject, subjectOK := models.NormalizeSubject(c.Query("subject"))
	if yearID == "" || !term.Valid() || !subjectOK {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "year_id, term and subject are required",
		})
	}

	pupilIDs, err := database.EffectivePupilIDs(db, classID, yearID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve pupils",
		})
	}
	rows, err := database.ListResultsForPupils(db, pupilIDs, yearID, term, subject)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch results",
		})
	}
	return c.JSON(rows)
}

// SaveDirectResult records both paper scores for a pupil in one write
func SaveDirectResult(c *fiber.Ctx, db *sql.DB) error {
	var request struct {
		PupilID   string   `json:"pupil_id" validate:"required"`
		YearID    string   `json:"year_id" validate:"required"`
		Term      string   `json:"term" validate:"required"`
		Subject   string   `json:"subject" validate:"required"`
		ScoreA    *float64 `json:"score_a" validate:"omitempty,gte=0"`
		ScoreB    *float64 `json:"score_b" validate:"omitempty,gte=0"`
		Note      *string  `json:"note"`
		TeacherID *string  `json:"teacher_id"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "pupil_id, year_id, term and subject are required",
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

	r, err := services.UpsertDirectResult(db, request.PupilID, request.YearID, term, subject,
		request.ScoreA, request.ScoreB, request.Note, request.TeacherID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save result",
		})
	}
	return c.JSON(r)
}

// GetWritingResult returns a pupil's teacher-judgement writing band
func GetWritingResult(c *fiber.Ctx, db *sql.DB) error {
	yearID := c.Query("year_id")
	term := models.Term(c.Query("term"))
	if yearID == "" || !term.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "year_id and term are required",
		})
	}
	w, err := database.GetWritingResult(db, c.Params("pupilID"), yearID, term)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch writing result",
		})
	}
	if w == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No writing result recorded",
		})
	}
	return c.JSON(w)
}

// SaveWritingResult records a teacher-judgement writing band
func SaveWritingResult(c *fiber.Ctx, db *sql.DB) error {
	var request struct {
		PupilID string  `json:"pupil_id" validate:"required"`
		YearID  string  `json:"year_id" validate:"required"`
		Term    string  `json:"term" validate:"required"`
		Band    string  `json:"band" validate:"required"`
		Note    *string `json:"note"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "pupil_id, year_id, term and band are required",
		})
	}
	term := models.Term(request.Term)
	band := models.WritingBand(request.Band)
	if !term.Valid() || !band.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown term or writing band",
		})
	}

	w := &models.WritingResult{
		PupilID:        request.PupilID,
		AcademicYearID: request.YearID,
		Term:           term,
		Band:           band,
		Note:           request.Note,
	}
	if err := database.UpsertWritingResult(db, w); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save writing result",
		})
	}
	return c.JSON(w)
}

// GetSatsHeaders returns (seeding defaults if needed) the scaled-score
// column layout for one class/year.
func GetSatsHeaders(c *fiber.Ctx, db *sql.DB) error {
	classID := c.Query("class_id")
	yearID := c.Query("year_id")
	if classID == "" || yearID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "class_id and year_id are required",
		})
	}

	if err := database.EnsureSatsHeaders(db, classID, yearID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to prepare SATS headers",
		})
	}
	headers, err := database.ListSatsHeaders(db, classID, yearID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch SATS headers",
		})
	}
	return c.JSON(headers)
}

// GetSatsScores returns a pupil's scaled scores for one year
func GetSatsScores(c *fiber.Ctx, db *sql.DB) error {
	yearID := c.Query("year_id")
	if yearID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "year_id is required",
		})
	}
	scores, err := database.ListSatsScoresForPupil(db, c.Params("pupilID"), yearID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch SATS scores",
		})
	}
	return c.JSON(scores)
}

// SaveSatsScore writes one pupil's value in a scaled-score column
func SaveSatsScore(c *fiber.Ctx, db *sql.DB) error {
	var request struct {
		PupilID string   `json:"pupil_id" validate:"required"`
		YearID  string   `json:"year_id" validate:"required"`
		Key     string   `json:"key" validate:"required"`
		Value   *float64 `json:"value"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "pupil_id, year_id and key are required",
		})
	}

	s := &models.SatsScore{
		PupilID:        request.PupilID,
		AcademicYearID: request.YearID,
		Key:            request.Key,
		Value:          request.Value,
	}
	if err := database.UpsertSatsScore(db, s); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save SATS score",
		})
	}
	return c.JSON(s)
}
