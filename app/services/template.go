package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nbri15/final-dream-tracker/app/database"
	"github.com/nbri15/final-dream-tracker/app/models"
)

// ActiveTemplate resolves the template a new assessment in this scope would
// bind to, nil when the scope has none.
func ActiveTemplate(q database.Queryer, subject models.Subject, paper models.Paper, yearID string, yearGroup int, term models.Term) (*models.PaperTemplate, error) {
	return database.GetActiveTemplate(q, subject, paper, yearID, yearGroup, term)
}

// CloneTemplate copies a template into a new version in the same scope, deep
// copying its question list. When activate is set the clone becomes the
// scope's sole active version, the source included.
func CloneTemplate(db *sql.DB, sourceID string, activate bool) (*models.PaperTemplate, error) {
	src, err := database.GetTemplateByID(db, sourceID)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("template not found: %s", sourceID)
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Versions are unique per scope, so the clone takes the next free number
	// even when the source is not the latest version.
	maxVersion, err := database.MaxTemplateVersion(tx, src.Subject, src.Paper, src.AcademicYearID, src.YearGroup, src.Term)
	if err != nil {
		return nil, err
	}

	clone := &models.PaperTemplate{
		Subject:        src.Subject,
		Paper:          src.Paper,
		AcademicYearID: src.AcademicYearID,
		YearGroup:      src.YearGroup,
		Term:           src.Term,
		Title:          src.Title,
		Version:        maxVersion + 1,
		IsActive:       activate,
	}
	if err := database.CreateTemplate(tx, clone); err != nil {
		return nil, err
	}

	questions, err := database.ListTemplateQuestions(tx, src.ID)
	if err != nil {
		return nil, err
	}
	for _, tq := range questions {
		copied := &models.PaperTemplateQuestion{
			TemplateID:   clone.ID,
			Number:       tq.Number,
			MaxMark:      tq.MaxMark,
			QuestionType: tq.QuestionType,
			Strand:       tq.Strand,
			Notes:        tq.Notes,
		}
		if err := database.CreateTemplateQuestion(tx, copied); err != nil {
			return nil, err
		}
	}

	if activate {
		if err := database.DeactivateScopeSiblings(tx, clone); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit template clone: %w", err)
	}
	return clone, nil
}

// PublishTemplate makes one template the sole active version in its scope.
// Activation and sibling deactivation commit together or not at all.
func PublishTemplate(db *sql.DB, templateID string) (*models.PaperTemplate, error) {
	t, err := database.GetTemplateByID(db, templateID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("template not found: %s", templateID)
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := database.DeactivateScopeSiblings(tx, t); err != nil {
		return nil, err
	}
	if err := database.SetTemplateActive(tx, t.ID, true); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit template publish: %w", err)
	}
	t.IsActive = true
	return t, nil
}

// CopyTemplateToNextYear carries a template forward into the following
// academic year, creating that year when it does not exist yet. The copy
// takes the next free version in the destination scope and is activated
// there; templates in the source year are untouched.
func CopyTemplateToNextYear(db *sql.DB, sourceID string) (*models.PaperTemplate, error) {
	src, err := database.GetTemplateByID(db, sourceID)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("template not found: %s", sourceID)
	}

	srcYear, err := database.GetYearByID(db, src.AcademicYearID)
	if err != nil {
		return nil, err
	}
	if srcYear == nil {
		return nil, fmt.Errorf("academic year not found: %s", src.AcademicYearID)
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	nextLabel := NextYearLabel(srcYear.Label, time.Now())
	nextYear, err := GetOrCreateYearByLabel(tx, nextLabel)
	if err != nil {
		return nil, err
	}

	maxVersion, err := database.MaxTemplateVersion(tx, src.Subject, src.Paper, nextYear.ID, src.YearGroup, src.Term)
	if err != nil {
		return nil, err
	}

	dst := &models.PaperTemplate{
		Subject:        src.Subject,
		Paper:          src.Paper,
		AcademicYearID: nextYear.ID,
		YearGroup:      src.YearGroup,
		Term:           src.Term,
		Title:          src.Title,
		Version:        maxVersion + 1,
		IsActive:       true,
	}
	if err := database.CreateTemplate(tx, dst); err != nil {
		return nil, err
	}

	questions, err := database.ListTemplateQuestions(tx, src.ID)
	if err != nil {
		return nil, err
	}
	for _, tq := range questions {
		copied := &models.PaperTemplateQuestion{
			TemplateID:   dst.ID,
			Number:       tq.Number,
			MaxMark:      tq.MaxMark,
			QuestionType: tq.QuestionType,
			Strand:       tq.Strand,
			Notes:        tq.Notes,
		}
		if err := database.CreateTemplateQuestion(tx, copied); err != nil {
			return nil, err
		}
	}

	if err := database.DeactivateScopeSiblings(tx, dst); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit template copy: %w", err)
	}
	return dst, nil
}
