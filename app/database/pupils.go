package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nbri15/final-dream-tracker/app/models"
)

const pupilColumns = `id, class_id, number, name, gender, pupil_premium, laps, service_child, updated_at`

func scanPupil(row interface{ Scan(...any) error }) (*models.Pupil, error) {
	var p models.Pupil
	var number sql.NullInt64
	var gender sql.NullString
	if err := row.Scan(&p.ID, &p.ClassID, &number, &p.Name, &gender,
		&p.PupilPremium, &p.Laps, &p.ServiceChild, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Number = intPtr(number)
	p.Gender = strPtr(gender)
	return &p, nil
}

// GetPupilByID fetches one pupil, nil when absent
func GetPupilByID(q Queryer, pupilID string) (*models.Pupil, error) {
	row := q.QueryRow(`SELECT `+pupilColumns+` FROM pupils WHERE id = $1`, pupilID)
	p, err := scanPupil(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pupil: %w", err)
	}
	return p, nil
}

// ListPupilsByClass returns pupils in register order (numbered first, then by name)
func ListPupilsByClass(q Queryer, classID string) ([]*models.Pupil, error) {
	rows, err := q.Query(`
		SELECT `+pupilColumns+`
		FROM pupils
		WHERE class_id = $1
		ORDER BY CASE WHEN number IS NULL THEN 1 ELSE 0 END, number, name`, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pupils: %w", err)
	}
	defer rows.Close()

	var pupils []*models.Pupil
	for rows.Next() {
		p, err := scanPupil(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pupil: %w", err)
		}
		pupils = append(pupils, p)
	}
	return pupils, rows.Err()
}

// ListAllPupils returns every pupil in the school
func ListAllPupils(q Queryer) ([]*models.Pupil, error) {
	rows, err := q.Query(`SELECT ` + pupilColumns + ` FROM pupils ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pupils: %w", err)
	}
	defer rows.Close()

	var pupils []*models.Pupil
	for rows.Next() {
		p, err := scanPupil(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pupil: %w", err)
		}
		pupils = append(pupils, p)
	}
	return pupils, rows.Err()
}

// CreatePupil inserts a new pupil row
func CreatePupil(q Queryer, pupil *models.Pupil) error {
	if pupil.ID == "" {
		pupil.ID = NewID()
	}
	pupil.UpdatedAt = time.Now()
	_, err := q.Exec(
		`INSERT INTO pupils (id, class_id, number, name, gender, pupil_premium, laps, service_child, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		pupil.ID, pupil.ClassID, nullInt(pupil.Number), pupil.Name, nullStr(pupil.Gender),
		pupil.PupilPremium, pupil.Laps, pupil.ServiceChild, pupil.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create pupil: %w", err)
	}
	return nil
}

// MovePupilToClass reassigns a pupil's current placement. Reserved for the
// promotion engine.
func MovePupilToClass(q Queryer, pupilID, classID string) error {
	res, err := q.Exec(`UPDATE pupils SET class_id = $1, updated_at = $2 WHERE id = $3`,
		classID, time.Now(), pupilID)
	if err != nil {
		return fmt.Errorf("failed to move pupil: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("pupil not found: %s", pupilID)
	}
	return nil
}

// EffectivePupilIDs resolves which pupils sat in a class for a given year.
// Past years go through the class history; the current year (or a year with
// no history rows) uses live placements.
func EffectivePupilIDs(q Queryer, classID, yearID string) ([]string, error) {
	current, err := GetCurrentYear(q)
	if err != nil {
		return nil, err
	}

	if current != nil && yearID != "" && yearID != current.ID {
		rows, err := q.Query(
			`SELECT pupil_id FROM pupil_class_history WHERE class_id = $1 AND academic_year_id = $2`,
			classID, yearID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch class history: %w", err)
		}
		var ids []string
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan history row: %w", err)
			}
			ids = append(ids, id)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}
		if len(ids) > 0 {
			return ids, nil
		}
	}

	rows, err := q.Query(`SELECT id FROM pupils WHERE class_id = $1`, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pupils: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan pupil id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
