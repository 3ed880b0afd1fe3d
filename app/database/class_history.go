package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nbri15/final-dream-tracker/app/models"
)

// InsertHistoryIfMissing records a (pupil, class, year) placement fact.
// The triple is unique and append-only, so an existing row makes this a no-op.
func InsertHistoryIfMissing(q Queryer, pupilID, classID, yearID string) error {
	var existing string
	err := q.QueryRow(
		`SELECT id FROM pupil_class_history WHERE pupil_id = $1 AND class_id = $2 AND academic_year_id = $3`,
		pupilID, classID, yearID,
	).Scan(&existing)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to check class history: %w", err)
	}

	_, err = q.Exec(
		`INSERT INTO pupil_class_history (id, pupil_id, class_id, academic_year_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		NewID(), pupilID, classID, yearID, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert class history: %w", err)
	}
	return nil
}

// HistoryForPupil returns a pupil's placement trail, oldest year label first
func HistoryForPupil(q Queryer, pupilID string) ([]*models.PupilClassHistory, error) {
	rows, err := q.Query(`
		SELECT h.id, h.pupil_id, h.class_id, h.academic_year_id, h.created_at
		FROM pupil_class_history h
		JOIN academic_years y ON y.id = h.academic_year_id
		WHERE h.pupil_id = $1
		ORDER BY y.label ASC`, pupilID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pupil history: %w", err)
	}
	defer rows.Close()

	var history []*models.PupilClassHistory
	for rows.Next() {
		var h models.PupilClassHistory
		if err := rows.Scan(&h.ID, &h.PupilID, &h.ClassID, &h.AcademicYearID, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		history = append(history, &h)
	}
	return history, rows.Err()
}

// CountHistoryRows returns the number of placement facts for a pupil
func CountHistoryRows(q Queryer, pupilID string) (int, error) {
	var n int
	if err := q.QueryRow(`SELECT COUNT(*) FROM pupil_class_history WHERE pupil_id = $1`, pupilID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count history rows: %w", err)
	}
	return n, nil
}
