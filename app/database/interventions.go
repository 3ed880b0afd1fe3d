package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nbri15/final-dream-tracker/app/models"
)

const interventionColumns = `id, pupil_id, class_id, academic_year_id, term, paper,
	pct, status, selected_by, support_plan, teacher_note, teacher_updated_at,
	focus_areas, pre_result, post_result, review_due_date, created_at, updated_at`

func scanIntervention(row interface{ Scan(...any) error }) (*models.Intervention, error) {
	var it models.Intervention
	var pct sql.NullFloat64
	var selectedBy, supportPlan, teacherNote, focusAreas, pre, post sql.NullString
	var teacherUpdated, reviewDue sql.NullTime
	if err := row.Scan(&it.ID, &it.PupilID, &it.ClassID, &it.AcademicYearID, &it.Term, &it.Paper,
		&pct, &it.Status, &selectedBy, &supportPlan, &teacherNote, &teacherUpdated,
		&focusAreas, &pre, &post, &reviewDue, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	it.Pct = floatPtr(pct)
	it.SelectedBy = strPtr(selectedBy)
	it.SupportPlan = strPtr(supportPlan)
	it.TeacherNote = strPtr(teacherNote)
	it.FocusAreas = strPtr(focusAreas)
	it.PreResult = strPtr(pre)
	it.PostResult = strPtr(post)
	if teacherUpdated.Valid {
		it.TeacherUpdatedAt = &teacherUpdated.Time
	}
	if reviewDue.Valid {
		it.ReviewDueDate = &reviewDue.Time
	}
	return &it, nil
}

// GetInterventionByID fetches one intervention, nil when absent
func GetInterventionByID(q Queryer, interventionID string) (*models.Intervention, error) {
	row := q.QueryRow(`SELECT `+interventionColumns+` FROM interventions WHERE id = $1`, interventionID)
	it, err := scanIntervention(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch intervention: %w", err)
	}
	return it, nil
}

// FindIntervention fetches the row for (pupil, year, term, paper), nil when absent
func FindIntervention(q Queryer, pupilID, yearID string, term models.Term, paper models.Paper) (*models.Intervention, error) {
	row := q.QueryRow(
		`SELECT `+interventionColumns+` FROM interventions
		 WHERE pupil_id = $1 AND academic_year_id = $2 AND term = $3 AND paper = $4`,
		pupilID, yearID, term, paper)
	it, err := scanIntervention(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch intervention: %w", err)
	}
	return it, nil
}

// ListInterventionsByClass returns a class's interventions for one (year, term, paper)
func ListInterventionsByClass(q Queryer, classID, yearID string, term models.Term, paper models.Paper) ([]*models.Intervention, error) {
	rows, err := q.Query(
		`SELECT `+interventionColumns+` FROM interventions
		 WHERE class_id = $1 AND academic_year_id = $2 AND term = $3 AND paper = $4`,
		classID, yearID, term, paper)
	if err != nil {
		return nil, fmt.Errorf("failed to list interventions: %w", err)
	}
	defer rows.Close()

	var items []*models.Intervention
	for rows.Next() {
		it, err := scanIntervention(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan intervention: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// CreateIntervention inserts a new intervention row
func CreateIntervention(q Queryer, it *models.Intervention) error {
	if it.ID == "" {
		it.ID = NewID()
	}
	now := time.Now()
	it.CreatedAt = now
	it.UpdatedAt = now
	if it.Status == "" {
		it.Status = "proposed"
	}
	_, err := q.Exec(
		`INSERT INTO interventions (id, pupil_id, class_id, academic_year_id, term, paper,
			pct, status, selected_by, support_plan, teacher_note, teacher_updated_at,
			focus_areas, pre_result, post_result, review_due_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		it.ID, it.PupilID, it.ClassID, it.AcademicYearID, it.Term, it.Paper,
		nullFloat(it.Pct), it.Status, nullStr(it.SelectedBy), nullStr(it.SupportPlan),
		nullStr(it.TeacherNote), it.TeacherUpdatedAt,
		nullStr(it.FocusAreas), nullStr(it.PreResult), nullStr(it.PostResult),
		it.ReviewDueDate, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create intervention: %w", err)
	}
	return nil
}

// UpdateIntervention rewrites the mutable columns of an intervention
func UpdateIntervention(q Queryer, it *models.Intervention) error {
	it.UpdatedAt = time.Now()
	_, err := q.Exec(
		`UPDATE interventions SET pct = $1, status = $2, selected_by = $3, support_plan = $4,
			teacher_note = $5, teacher_updated_at = $6, focus_areas = $7,
			pre_result = $8, post_result = $9, review_due_date = $10, updated_at = $11
		 WHERE id = $12`,
		nullFloat(it.Pct), it.Status, nullStr(it.SelectedBy), nullStr(it.SupportPlan),
		nullStr(it.TeacherNote), it.TeacherUpdatedAt, nullStr(it.FocusAreas),
		nullStr(it.PreResult), nullStr(it.PostResult), it.ReviewDueDate, it.UpdatedAt, it.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update intervention: %w", err)
	}
	return nil
}
