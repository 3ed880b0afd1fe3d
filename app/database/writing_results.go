package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nbri15/final-dream-tracker/app/models"
)

// GetWritingResult fetches the writing band for (pupil, year, term), nil when absent
func GetWritingResult(q Queryer, pupilID, yearID string, term models.Term) (*models.WritingResult, error) {
	var w models.WritingResult
	var note sql.NullString
	err := q.QueryRow(
		`SELECT id, pupil_id, academic_year_id, term, band, note, created_at
		 FROM writing_results
		 WHERE pupil_id = $1 AND academic_year_id = $2 AND term = $3`,
		pupilID, yearID, term,
	).Scan(&w.ID, &w.PupilID, &w.AcademicYearID, &w.Term, &w.Band, &note, &w.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch writing result: %w", err)
	}
	w.Note = strPtr(note)
	return &w, nil
}

// UpsertWritingResult writes the teacher-judgement band for (pupil, year, term)
func UpsertWritingResult(q Queryer, w *models.WritingResult) error {
	existing, err := GetWritingResult(q, w.PupilID, w.AcademicYearID, w.Term)
	if err != nil {
		return err
	}

	if existing == nil {
		if w.ID == "" {
			w.ID = NewID()
		}
		w.CreatedAt = time.Now()
		_, err = q.Exec(
			`INSERT INTO writing_results (id, pupil_id, academic_year_id, term, band, note, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			w.ID, w.PupilID, w.AcademicYearID, w.Term, w.Band, nullStr(w.Note), w.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create writing result: %w", err)
		}
		return nil
	}

	w.ID = existing.ID
	_, err = q.Exec(
		`UPDATE writing_results SET band = $1, note = $2 WHERE id = $3`,
		w.Band, nullStr(w.Note), w.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update writing result: %w", err)
	}
	return nil
}
