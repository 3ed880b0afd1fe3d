package services

import (
	"database/sql"
	"fmt"

	"github.com/nbri15/final-dream-tracker/app/database"
	"github.com/nbri15/final-dream-tracker/app/models"
)

// SyncAssessmentToResults folds an assessment's question marks into each
// pupil's termly Result row. Every pupil currently in the assessment's class
// gets a row; a pupil with no scored questions totals 0.0, which is distinct
// from "not assessed". Score rows referencing deleted questions are skipped
// as stale. The whole pass runs in one transaction.
func SyncAssessmentToResults(db *sql.DB, assessmentID string) error {
	a, err := database.GetAssessmentByID(db, assessmentID)
	if err != nil {
		return err
	}
	if a == nil {
		return fmt.Errorf("assessment not found: %s", assessmentID)
	}

	field, ok := models.ResultFieldFor(a.Subject, a.Paper)
	if !ok {
		return fmt.Errorf("no result field for subject %q paper %q", a.Subject, a.Paper)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	questions, err := database.ListAssessmentQuestions(tx, a.ID)
	if err != nil {
		return err
	}
	liveQuestions := make(map[string]bool, len(questions))
	for _, aq := range questions {
		liveQuestions[aq.ID] = true
	}

	pupils, err := database.ListPupilsByClass(tx, a.ClassID)
	if err != nil {
		return err
	}

	scores, err := database.ListScoresByAssessment(tx, a.ID)
	if err != nil {
		return err
	}

	totals := make(map[string]float64, len(pupils))
	for _, p := range pupils {
		totals[p.ID] = 0.0
	}
	for _, s := range scores {
		if _, inClass := totals[s.PupilID]; inClass && liveQuestions[s.QuestionID] {
			totals[s.PupilID] += s.Mark
		}
	}

	for _, p := range pupils {
		total := totals[p.ID]

		r, err := database.GetResult(tx, p.ID, a.AcademicYearID, a.Term, a.Subject)
		if err != nil {
			return err
		}
		if r == nil {
			classID := p.ClassID
			r = &models.Result{
				PupilID:         p.ID,
				AcademicYearID:  a.AcademicYearID,
				Term:            a.Term,
				Subject:         a.Subject,
				ClassIDSnapshot: &classID,
			}
			if err := database.CreateResult(tx, r); err != nil {
				return err
			}
		}

		r.SetField(field, &total)

		scoreA, scoreB := r.Scores(a.Subject)
		pct, band, err := CombinedAndBand(tx, scoreA, scoreB, p.ClassID, a.Term, a.AcademicYearID, a.Subject)
		if err != nil {
			return err
		}
		r.CombinedPct = pct
		r.Summary = band
		classID := p.ClassID
		r.ClassIDSnapshot = &classID

		if err := database.UpdateResult(tx, r); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit result sync: %w", err)
	}
	return nil
}

// UpsertDirectResult is the teacher-entry path: both paper scores written at
// once, with the same combined-percentage and band computation the aggregator
// uses for identical inputs.
func UpsertDirectResult(db *sql.DB, pupilID, yearID string, term models.Term, subject models.Subject, scoreA, scoreB *float64, note, teacherID *string) (*models.Result, error) {
	pupil, err := database.GetPupilByID(db, pupilID)
	if err != nil {
		return nil, err
	}
	if pupil == nil {
		return nil, fmt.Errorf("pupil not found: %s", pupilID)
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	r, err := database.GetResult(tx, pupilID, yearID, term, subject)
	if err != nil {
		return nil, err
	}
	if r == nil {
		classID := pupil.ClassID
		r = &models.Result{
			PupilID:         pupilID,
			AcademicYearID:  yearID,
			Term:            term,
			Subject:         subject,
			ClassIDSnapshot: &classID,
		}
		if err := database.CreateResult(tx, r); err != nil {
			return nil, err
		}
	}

	papers := models.PapersFor(subject)
	fieldA, _ := models.ResultFieldFor(subject, papers[0])
	fieldB, _ := models.ResultFieldFor(subject, papers[1])
	r.SetField(fieldA, scoreA)
	r.SetField(fieldB, scoreB)

	pct, band, err := CombinedAndBand(tx, scoreA, scoreB, pupil.ClassID, term, yearID, subject)
	if err != nil {
		return nil, err
	}
	r.CombinedPct = pct
	r.Summary = band
	if note != nil {
		r.Note = note
	}
	r.UpdatedBy = teacherID
	classID := pupil.ClassID
	r.ClassIDSnapshot = &classID

	if err := database.UpdateResult(tx, r); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit result: %w", err)
	}
	return r, nil
}
