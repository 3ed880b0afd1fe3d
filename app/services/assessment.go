package services

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/nbri15/final-dream-tracker/app/database"
	"github.com/nbri15/final-dream-tracker/app/models"
)

func paperTitle(class *models.SchoolClass, subject models.Subject, term models.Term, paper models.Paper, yearLabel string) string {
	return fmt.Sprintf("%s %s %s %s %s", class.Name, strings.ToUpper(string(subject)), term, paper, yearLabel)
}

// GetOrCreateAssessment returns the working copy for one
// (class, year, term, subject, paper), creating it on first use. When the
// class has a year group and an active template exists for the scope, the
// assessment is bound to that template and its question list replaced with
// the template's whenever the bound snapshot is out of date.
func GetOrCreateAssessment(db *sql.DB, classID, yearID string, term models.Term, subject models.Subject, paper models.Paper) (*models.Assessment, error) {
	class, err := database.GetClassByID(db, classID)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, fmt.Errorf("class not found: %s", classID)
	}
	year, err := database.GetYearByID(db, yearID)
	if err != nil {
		return nil, err
	}
	if year == nil {
		return nil, fmt.Errorf("academic year not found: %s", yearID)
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	a, err := database.FindAssessment(tx, classID, yearID, term, subject, paper)
	if err != nil {
		return nil, err
	}
	if a == nil {
		a = &models.Assessment{
			ClassID:        classID,
			AcademicYearID: yearID,
			Term:           term,
			Subject:        subject,
			Paper:          paper,
			Title:          paperTitle(class, subject, term, paper, year.Label),
		}
		if err := database.CreateAssessment(tx, a); err != nil {
			return nil, err
		}
	}

	// Archive and otherwise ungrouped classes never bind templates.
	if class.YearGroup != nil {
		t, err := database.GetActiveTemplate(tx, subject, paper, yearID, *class.YearGroup, term)
		if err != nil {
			return nil, err
		}
		if t != nil && !boundTo(a, t) {
			a.TemplateID = &t.ID
			a.TemplateVersion = &t.Version
			if err := database.UpdateAssessmentTemplate(tx, a.ID, a.TemplateID, a.TemplateVersion, a.Title); err != nil {
				return nil, err
			}
			if err := copyTemplateQuestions(tx, a.ID, t.ID); err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit assessment: %w", err)
	}
	return a, nil
}

func boundTo(a *models.Assessment, t *models.PaperTemplate) bool {
	return a.TemplateID != nil && *a.TemplateID == t.ID &&
		a.TemplateVersion != nil && *a.TemplateVersion == t.Version
}

func copyTemplateQuestions(q database.Queryer, assessmentID, templateID string) error {
	if err := database.DeleteAssessmentQuestions(q, assessmentID); err != nil {
		return err
	}
	questions, err := database.ListTemplateQuestions(q, templateID)
	if err != nil {
		return err
	}
	for _, tq := range questions {
		aq := &models.AssessmentQuestion{
			AssessmentID: assessmentID,
			Number:       tq.Number,
			MaxMark:      tq.MaxMark,
			QuestionType: tq.QuestionType,
			Strand:       tq.Strand,
			Notes:        tq.Notes,
		}
		if err := database.CreateAssessmentQuestion(q, aq); err != nil {
			return err
		}
	}
	return nil
}

// SyncClassYearAssessments ensures a class has a working copy for every
// term and subject paper in a year, each reconciled to its resolved maximum.
func SyncClassYearAssessments(db *sql.DB, classID, yearID string) error {
	for _, term := range []models.Term{models.TermAutumn, models.TermSpring, models.TermSummer} {
		for _, subject := range []models.Subject{models.SubjectMaths, models.SubjectReading, models.SubjectSpag} {
			for _, paper := range models.PapersFor(subject) {
				a, err := GetOrCreateAssessment(db, classID, yearID, term, subject, paper)
				if err != nil {
					return err
				}
				max, err := ResolveTermMax(db, classID, yearID, term, subject, paper)
				if err != nil {
					return err
				}
				if err := ReconcileQuestionTotal(db, a.ID, max); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
