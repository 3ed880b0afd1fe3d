package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nbri15/final-dream-tracker/app/models"
)

// satsDefaultColumns is the default scaled-score grid layout:
// group name, key prefix, column count.
var satsDefaultColumns = []struct {
	Group  string
	Prefix string
	Count  int
}{
	{"Maths", "M", 18},
	{"Reading", "R", 12},
	{"SPaG", "S", 16},
}

// EnsureSatsHeaders seeds the default column layout for a class/year grid.
// Existing keys are left untouched.
func EnsureSatsHeaders(q Queryer, classID, yearID string) error {
	rows, err := q.Query(
		`SELECT key FROM sats_headers WHERE class_id = $1 AND academic_year_id = $2`,
		classID, yearID)
	if err != nil {
		return fmt.Errorf("failed to list sats headers: %w", err)
	}
	existing := map[string]bool{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan sats header: %w", err)
		}
		existing[key] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	order := 0
	for _, group := range satsDefaultColumns {
		for i := 1; i <= group.Count; i++ {
			key := fmt.Sprintf("%s%d", group.Prefix, i)
			order++
			if existing[key] {
				continue
			}
			_, err := q.Exec(
				`INSERT INTO sats_headers (id, class_id, academic_year_id, key, header, grp, ord)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				NewID(), classID, yearID, key, nil, group.Group, order,
			)
			if err != nil {
				return fmt.Errorf("failed to create sats header: %w", err)
			}
		}
	}
	return nil
}

// ListSatsHeaders returns a class/year grid layout in column order
func ListSatsHeaders(q Queryer, classID, yearID string) ([]*models.SatsHeader, error) {
	rows, err := q.Query(
		`SELECT id, class_id, academic_year_id, key, header, grp, ord
		 FROM sats_headers
		 WHERE class_id = $1 AND academic_year_id = $2
		 ORDER BY ord ASC`, classID, yearID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sats headers: %w", err)
	}
	defer rows.Close()

	var headers []*models.SatsHeader
	for rows.Next() {
		var h models.SatsHeader
		var header sql.NullString
		if err := rows.Scan(&h.ID, &h.ClassID, &h.AcademicYearID, &h.Key, &header, &h.Group, &h.Order); err != nil {
			return nil, fmt.Errorf("failed to scan sats header: %w", err)
		}
		h.Header = strPtr(header)
		headers = append(headers, &h)
	}
	return headers, rows.Err()
}

// UpsertSatsScore writes one pupil's value in a scaled-score column
func UpsertSatsScore(q Queryer, s *models.SatsScore) error {
	var existing string
	err := q.QueryRow(
		`SELECT id FROM sats_scores WHERE pupil_id = $1 AND academic_year_id = $2 AND key = $3`,
		s.PupilID, s.AcademicYearID, s.Key,
	).Scan(&existing)
	s.UpdatedAt = time.Now()

	if err == sql.ErrNoRows {
		if s.ID == "" {
			s.ID = NewID()
		}
		_, err = q.Exec(
			`INSERT INTO sats_scores (id, pupil_id, academic_year_id, key, value, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			s.ID, s.PupilID, s.AcademicYearID, s.Key, nullFloat(s.Value), s.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create sats score: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check sats score: %w", err)
	}

	s.ID = existing
	_, err = q.Exec(
		`UPDATE sats_scores SET value = $1, updated_at = $2 WHERE id = $3`,
		nullFloat(s.Value), s.UpdatedAt, s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update sats score: %w", err)
	}
	return nil
}

// ListSatsScoresForPupil returns a pupil's scaled scores for one year
func ListSatsScoresForPupil(q Queryer, pupilID, yearID string) ([]*models.SatsScore, error) {
	rows, err := q.Query(
		`SELECT id, pupil_id, academic_year_id, key, value, updated_at
		 FROM sats_scores
		 WHERE pupil_id = $1 AND academic_year_id = $2
		 ORDER BY key ASC`, pupilID, yearID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sats scores: %w", err)
	}
	defer rows.Close()

	var scores []*models.SatsScore
	for rows.Next() {
		var s models.SatsScore
		var value sql.NullFloat64
		if err := rows.Scan(&s.ID, &s.PupilID, &s.AcademicYearID, &s.Key, &value, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sats score: %w", err)
		}
		s.Value = floatPtr(value)
		scores = append(scores, &s)
	}
	return scores, rows.Err()
}
