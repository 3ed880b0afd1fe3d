package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nbri15/final-dream-tracker/app/models"
)

const templateColumns = `id, subject, paper, academic_year_id, year_group, term,
	title, is_active, version, created_at, updated_at`

func scanTemplate(row interface{ Scan(...any) error }) (*models.PaperTemplate, error) {
	var t models.PaperTemplate
	var title sql.NullString
	if err := row.Scan(&t.ID, &t.Subject, &t.Paper, &t.AcademicYearID, &t.YearGroup, &t.Term,
		&title, &t.IsActive, &t.Version, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Title = strPtr(title)
	return &t, nil
}

// GetTemplateByID fetches one template, nil when absent
func GetTemplateByID(q Queryer, templateID string) (*models.PaperTemplate, error) {
	row := q.QueryRow(`SELECT `+templateColumns+` FROM paper_templates WHERE id = $1`, templateID)
	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch template: %w", err)
	}
	return t, nil
}

// GetActiveTemplate returns the highest active version in a scope, nil when none
func GetActiveTemplate(q Queryer, subject models.Subject, paper models.Paper, yearID string, yearGroup int, term models.Term) (*models.PaperTemplate, error) {
	row := q.QueryRow(`
		SELECT `+templateColumns+`
		FROM paper_templates
		WHERE subject = $1 AND paper = $2 AND academic_year_id = $3 AND year_group = $4 AND term = $5
			AND is_active = TRUE
		ORDER BY version DESC
		LIMIT 1`,
		subject, paper, yearID, yearGroup, term)
	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active template: %w", err)
	}
	return t, nil
}

// ListTemplatesInScope returns every version in a scope, newest version first
func ListTemplatesInScope(q Queryer, subject models.Subject, paper models.Paper, yearID string, yearGroup int, term models.Term) ([]*models.PaperTemplate, error) {
	rows, err := q.Query(`
		SELECT `+templateColumns+`
		FROM paper_templates
		WHERE subject = $1 AND paper = $2 AND academic_year_id = $3 AND year_group = $4 AND term = $5
		ORDER BY version DESC`,
		subject, paper, yearID, yearGroup, term)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []*models.PaperTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// MaxTemplateVersion returns the highest version number in a scope, 0 when empty
func MaxTemplateVersion(q Queryer, subject models.Subject, paper models.Paper, yearID string, yearGroup int, term models.Term) (int, error) {
	var v sql.NullInt64
	err := q.QueryRow(`
		SELECT MAX(version)
		FROM paper_templates
		WHERE subject = $1 AND paper = $2 AND academic_year_id = $3 AND year_group = $4 AND term = $5`,
		subject, paper, yearID, yearGroup, term).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch max template version: %w", err)
	}
	return int(v.Int64), nil
}

// CreateTemplate inserts a new template row
func CreateTemplate(q Queryer, t *models.PaperTemplate) error {
	if t.ID == "" {
		t.ID = NewID()
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	_, err := q.Exec(
		`INSERT INTO paper_templates (id, subject, paper, academic_year_id, year_group, term,
			title, is_active, version, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		t.ID, t.Subject, t.Paper, t.AcademicYearID, t.YearGroup, t.Term,
		nullStr(t.Title), t.IsActive, t.Version, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

// SetTemplateActive flips one template's active flag
func SetTemplateActive(q Queryer, templateID string, active bool) error {
	_, err := q.Exec(`UPDATE paper_templates SET is_active = $1, updated_at = $2 WHERE id = $3`,
		active, time.Now(), templateID)
	if err != nil {
		return fmt.Errorf("failed to set template active flag: %w", err)
	}
	return nil
}

// DeactivateScopeSiblings clears the active flag on every other template in
// the same scope as t. Callers run this with the activation in one transaction.
func DeactivateScopeSiblings(q Queryer, t *models.PaperTemplate) error {
	_, err := q.Exec(`
		UPDATE paper_templates SET is_active = FALSE, updated_at = $1
		WHERE id <> $2 AND subject = $3 AND paper = $4 AND academic_year_id = $5
			AND year_group = $6 AND term = $7`,
		time.Now(), t.ID, t.Subject, t.Paper, t.AcademicYearID, t.YearGroup, t.Term)
	if err != nil {
		return fmt.Errorf("failed to deactivate sibling templates: %w", err)
	}
	return nil
}

// ListTemplateQuestions returns a template's questions in number order
func ListTemplateQuestions(q Queryer, templateID string) ([]*models.PaperTemplateQuestion, error) {
	rows, err := q.Query(`
		SELECT id, template_id, number, max_mark, question_type, strand, notes
		FROM paper_template_questions
		WHERE template_id = $1
		ORDER BY number ASC`, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list template questions: %w", err)
	}
	defer rows.Close()

	var questions []*models.PaperTemplateQuestion
	for rows.Next() {
		var tq models.PaperTemplateQuestion
		var qtype, strand, notes sql.NullString
		if err := rows.Scan(&tq.ID, &tq.TemplateID, &tq.Number, &tq.MaxMark, &qtype, &strand, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan template question: %w", err)
		}
		tq.QuestionType = strPtr(qtype)
		tq.Strand = strPtr(strand)
		tq.Notes = strPtr(notes)
		questions = append(questions, &tq)
	}
	return questions, rows.Err()
}

// CreateTemplateQuestion inserts one question slot into a template
func CreateTemplateQuestion(q Queryer, tq *models.PaperTemplateQuestion) error {
	if tq.ID == "" {
		tq.ID = NewID()
	}
	_, err := q.Exec(
		`INSERT INTO paper_template_questions (id, template_id, number, max_mark, question_type, strand, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		tq.ID, tq.TemplateID, tq.Number, tq.MaxMark,
		nullStr(tq.QuestionType), nullStr(tq.Strand), nullStr(tq.Notes),
	)
	if err != nil {
		return fmt.Errorf("failed to create template question: %w", err)
	}
	return nil
}

// ReplaceTemplateQuestions swaps a template's whole question list
func ReplaceTemplateQuestions(q Queryer, templateID string, questions []*models.PaperTemplateQuestion) error {
	if _, err := q.Exec(`DELETE FROM paper_template_questions WHERE template_id = $1`, templateID); err != nil {
		return fmt.Errorf("failed to clear template questions: %w", err)
	}
	for _, tq := range questions {
		tq.TemplateID = templateID
		if err := CreateTemplateQuestion(q, tq); err != nil {
			return err
		}
	}
	_, err := q.Exec(`UPDATE paper_templates SET updated_at = $1 WHERE id = $2`, time.Now(), templateID)
	if err != nil {
		return fmt.Errorf("failed to touch template: %w", err)
	}
	return nil
}
