package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nbri15/final-dream-tracker/app/models"
)

const resultColumns = `id, pupil_id, academic_year_id, class_id_snapshot, term, subject,
	arithmetic, reasoning, reading_p1, reading_p2, spelling, grammar,
	combined_pct, summary, note, created_at, updated_at, updated_by_teacher_id`

func scanResult(row interface{ Scan(...any) error }) (*models.Result, error) {
	var r models.Result
	var classSnap, summary, note, updatedBy sql.NullString
	var arith, reason, rp1, rp2, spell, gram, pct sql.NullFloat64
	if err := row.Scan(&r.ID, &r.PupilID, &r.AcademicYearID, &classSnap, &r.Term, &r.Subject,
		&arith, &reason, &rp1, &rp2, &spell, &gram,
		&pct, &summary, &note, &r.CreatedAt, &r.UpdatedAt, &updatedBy); err != nil {
		return nil, err
	}
	r.ClassIDSnapshot = strPtr(classSnap)
	r.Arithmetic = floatPtr(arith)
	r.Reasoning = floatPtr(reason)
	r.ReadingP1 = floatPtr(rp1)
	r.ReadingP2 = floatPtr(rp2)
	r.Spelling = floatPtr(spell)
	r.Grammar = floatPtr(gram)
	r.CombinedPct = floatPtr(pct)
	r.Note = strPtr(note)
	r.UpdatedBy = strPtr(updatedBy)
	if summary.Valid {
		band := models.Band(summary.String)
		r.Summary = &band
	}
	return &r, nil
}

// GetResult fetches the row for (pupil, year, term, subject), nil when absent
func GetResult(q Queryer, pupilID, yearID string, term models.Term, subject models.Subject) (*models.Result, error) {
	row := q.QueryRow(
		`SELECT `+resultColumns+` FROM results
		 WHERE pupil_id = $1 AND academic_year_id = $2 AND term = $3 AND subject = $4`,
		pupilID, yearID, term, subject)
	r, err := scanResult(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch result: %w", err)
	}
	return r, nil
}

// ListResultsForPupils returns the result rows for a set of pupils in one
// (year, term, subject) slice
func ListResultsForPupils(q Queryer, pupilIDs []string, yearID string, term models.Term, subject models.Subject) ([]*models.Result, error) {
	var results []*models.Result
	for _, pupilID := range pupilIDs {
		r, err := GetResult(q, pupilID, yearID, term, subject)
		if err != nil {
			return nil, err
		}
		if r != nil {
			results = append(results, r)
		}
	}
	return results, nil
}

// CreateResult inserts a new result row
func CreateResult(q Queryer, r *models.Result) error {
	if r.ID == "" {
		r.ID = NewID()
	}
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	var summary any
	if r.Summary != nil {
		summary = string(*r.Summary)
	}
	_, err := q.Exec(
		`INSERT INTO results (id, pupil_id, academic_year_id, class_id_snapshot, term, subject,
			arithmetic, reasoning, reading_p1, reading_p2, spelling, grammar,
			combined_pct, summary, note, created_at, updated_at, updated_by_teacher_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		r.ID, r.PupilID, r.AcademicYearID, nullStr(r.ClassIDSnapshot), r.Term, r.Subject,
		nullFloat(r.Arithmetic), nullFloat(r.Reasoning), nullFloat(r.ReadingP1), nullFloat(r.ReadingP2),
		nullFloat(r.Spelling), nullFloat(r.Grammar),
		nullFloat(r.CombinedPct), summary, nullStr(r.Note), r.CreatedAt, r.UpdatedAt, nullStr(r.UpdatedBy),
	)
	if err != nil {
		return fmt.Errorf("failed to create result: %w", err)
	}
	return nil
}

// UpdateResult rewrites the mutable columns of an existing result row
func UpdateResult(q Queryer, r *models.Result) error {
	r.UpdatedAt = time.Now()
	var summary any
	if r.Summary != nil {
		summary = string(*r.Summary)
	}
	_, err := q.Exec(
		`UPDATE results SET class_id_snapshot = $1,
			arithmetic = $2, reasoning = $3, reading_p1 = $4, reading_p2 = $5,
			spelling = $6, grammar = $7, combined_pct = $8, summary = $9, note = $10,
			updated_at = $11, updated_by_teacher_id = $12
		 WHERE id = $13`,
		nullStr(r.ClassIDSnapshot),
		nullFloat(r.Arithmetic), nullFloat(r.Reasoning), nullFloat(r.ReadingP1), nullFloat(r.ReadingP2),
		nullFloat(r.Spelling), nullFloat(r.Grammar), nullFloat(r.CombinedPct), summary, nullStr(r.Note),
		r.UpdatedAt, nullStr(r.UpdatedBy), r.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update result: %w", err)
	}
	return nil
}
