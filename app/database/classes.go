package database

import (
	"database/sql"
	"fmt"

	"github.com/nbri15/final-dream-tracker/app/models"
)

const classColumns = `id, name, year_group, is_archived, is_archive`

func scanClass(row interface{ Scan(...any) error }) (*models.SchoolClass, error) {
	var c models.SchoolClass
	var yearGroup sql.NullInt64
	if err := row.Scan(&c.ID, &c.Name, &yearGroup, &c.IsArchived, &c.IsArchive); err != nil {
		return nil, err
	}
	c.YearGroup = intPtr(yearGroup)
	return &c, nil
}

// GetClassByID fetches one class, nil when absent
func GetClassByID(q Queryer, classID string) (*models.SchoolClass, error) {
	row := q.QueryRow(`SELECT `+classColumns+` FROM classes WHERE id = $1`, classID)
	c, err := scanClass(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch class: %w", err)
	}
	return c, nil
}

// ListLiveClasses returns non-archive classes ordered by year group then name
func ListLiveClasses(q Queryer) ([]*models.SchoolClass, error) {
	rows, err := q.Query(`
		SELECT ` + classColumns + `
		FROM classes
		WHERE is_archived = FALSE AND is_archive = FALSE
		ORDER BY year_group ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	defer rows.Close()

	var classes []*models.SchoolClass
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan class: %w", err)
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// ListAllClasses returns every class including the archive
func ListAllClasses(q Queryer) ([]*models.SchoolClass, error) {
	rows, err := q.Query(`SELECT ` + classColumns + ` FROM classes ORDER BY year_group ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	defer rows.Close()

	var classes []*models.SchoolClass
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan class: %w", err)
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// CreateClass inserts a new class row
func CreateClass(q Queryer, class *models.SchoolClass) error {
	if class.ID == "" {
		class.ID = NewID()
	}
	_, err := q.Exec(
		`INSERT INTO classes (id, name, year_group, is_archived, is_archive) VALUES ($1, $2, $3, $4, $5)`,
		class.ID, class.Name, nullInt(class.YearGroup), class.IsArchived, class.IsArchive,
	)
	if err != nil {
		return fmt.Errorf("failed to create class: %w", err)
	}
	return nil
}

// CountPupilsInClass returns the number of pupils currently placed in a class
func CountPupilsInClass(q Queryer, classID string) (int, error) {
	var n int
	if err := q.QueryRow(`SELECT COUNT(*) FROM pupils WHERE class_id = $1`, classID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count pupils: %w", err)
	}
	return n, nil
}

// EnsureArchiveClass guarantees exactly one archive class system-wide: one
// archive-like row is made canonical (name "Archive", no year group, both
// flags set), extras are demoted, and the row is created when missing.
func EnsureArchiveClass(q Queryer) (*models.SchoolClass, error) {
	rows, err := q.Query(`
		SELECT ` + classColumns + `
		FROM classes
		WHERE is_archive = TRUE OR LOWER(name) = 'archive'
		ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to find archive classes: %w", err)
	}
	var candidates []*models.SchoolClass
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan class: %w", err)
		}
		candidates = append(candidates, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		archive := &models.SchoolClass{Name: "Archive", IsArchived: true, IsArchive: true}
		if err := CreateClass(q, archive); err != nil {
			return nil, err
		}
		return archive, nil
	}

	archive := candidates[0]
	_, err = q.Exec(
		`UPDATE classes SET name = 'Archive', year_group = NULL, is_archived = TRUE, is_archive = TRUE WHERE id = $1`,
		archive.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to repair archive class: %w", err)
	}
	for _, extra := range candidates[1:] {
		if _, err := q.Exec(
			`UPDATE classes SET is_archive = FALSE, is_archived = FALSE WHERE id = $1`, extra.ID,
		); err != nil {
			return nil, fmt.Errorf("failed to demote extra archive class: %w", err)
		}
	}

	archive.Name = "Archive"
	archive.YearGroup = nil
	archive.IsArchived = true
	archive.IsArchive = true
	return archive, nil
}
