package database

import (
	"database/sql"
	"fmt"

	"github.com/nbri15/final-dream-tracker/app/models"
)

const academicYearColumns = `id, label, start_date, end_date, is_current`

func scanAcademicYear(row interface{ Scan(...any) error }) (*models.AcademicYear, error) {
	var y models.AcademicYear
	var start, end sql.NullTime
	if err := row.Scan(&y.ID, &y.Label, &start, &end, &y.IsCurrent); err != nil {
		return nil, err
	}
	if start.Valid {
		y.StartDate = &start.Time
	}
	if end.Valid {
		y.EndDate = &end.Time
	}
	return &y, nil
}

// GetCurrentYear returns the year flagged current, falling back to the
// earliest-created year when the flag is missing.
func GetCurrentYear(q Queryer) (*models.AcademicYear, error) {
	row := q.QueryRow(`SELECT ` + academicYearColumns + ` FROM academic_years WHERE is_current = TRUE LIMIT 1`)
	y, err := scanAcademicYear(row)
	if err == nil {
		return y, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to fetch current year: %w", err)
	}

	row = q.QueryRow(`SELECT ` + academicYearColumns + ` FROM academic_years ORDER BY label ASC LIMIT 1`)
	y, err = scanAcademicYear(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fallback year: %w", err)
	}
	return y, nil
}

// GetYearByID fetches one academic year, nil when absent
func GetYearByID(q Queryer, yearID string) (*models.AcademicYear, error) {
	row := q.QueryRow(`SELECT `+academicYearColumns+` FROM academic_years WHERE id = $1`, yearID)
	y, err := scanAcademicYear(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch academic year: %w", err)
	}
	return y, nil
}

// GetYearByLabel fetches one academic year by its label, nil when absent
func GetYearByLabel(q Queryer, label string) (*models.AcademicYear, error) {
	row := q.QueryRow(`SELECT `+academicYearColumns+` FROM academic_years WHERE label = $1`, label)
	y, err := scanAcademicYear(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch academic year: %w", err)
	}
	return y, nil
}

// ListYears returns all academic years, oldest label first
func ListYears(q Queryer) ([]*models.AcademicYear, error) {
	rows, err := q.Query(`SELECT ` + academicYearColumns + ` FROM academic_years ORDER BY label ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list academic years: %w", err)
	}
	defer rows.Close()

	var years []*models.AcademicYear
	for rows.Next() {
		y, err := scanAcademicYear(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan academic year: %w", err)
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// CreateYear inserts a new academic year row
func CreateYear(q Queryer, year *models.AcademicYear) error {
	if year.ID == "" {
		year.ID = NewID()
	}
	_, err := q.Exec(
		`INSERT INTO academic_years (id, label, start_date, end_date, is_current) VALUES ($1, $2, $3, $4, $5)`,
		year.ID, year.Label, year.StartDate, year.EndDate, year.IsCurrent,
	)
	if err != nil {
		return fmt.Errorf("failed to create academic year: %w", err)
	}
	return nil
}

// SetCurrentYear makes yearID the sole current year. Both writes run inside
// the caller's transaction so no reader ever sees zero or two current years.
func SetCurrentYear(q Queryer, yearID string) error {
	if _, err := q.Exec(`UPDATE academic_years SET is_current = FALSE WHERE is_current = TRUE`); err != nil {
		return fmt.Errorf("failed to clear current year: %w", err)
	}
	res, err := q.Exec(`UPDATE academic_years SET is_current = TRUE WHERE id = $1`, yearID)
	if err != nil {
		return fmt.Errorf("failed to set current year: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("academic year not found: %s", yearID)
	}
	return nil
}
