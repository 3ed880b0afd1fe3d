package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nbri15/final-dream-tracker/app/models"
)

const assessmentColumns = `id, class_id, academic_year_id, term, subject, paper,
	title, template_id, template_version, created_at`

func scanAssessment(row interface{ Scan(...any) error }) (*models.Assessment, error) {
	var a models.Assessment
	var templateID sql.NullString
	var templateVersion sql.NullInt64
	if err := row.Scan(&a.ID, &a.ClassID, &a.AcademicYearID, &a.Term, &a.Subject, &a.Paper,
		&a.Title, &templateID, &templateVersion, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.TemplateID = strPtr(templateID)
	a.TemplateVersion = intPtr(templateVersion)
	return &a, nil
}

// GetAssessmentByID fetches one assessment, nil when absent
func GetAssessmentByID(q Queryer, assessmentID string) (*models.Assessment, error) {
	row := q.QueryRow(`SELECT `+assessmentColumns+` FROM assessments WHERE id = $1`, assessmentID)
	a, err := scanAssessment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assessment: %w", err)
	}
	return a, nil
}

// FindAssessment fetches the working copy for one (class, year, term, subject, paper)
func FindAssessment(q Queryer, classID, yearID string, term models.Term, subject models.Subject, paper models.Paper) (*models.Assessment, error) {
	row := q.QueryRow(`
		SELECT `+assessmentColumns+`
		FROM assessments
		WHERE class_id = $1 AND academic_year_id = $2 AND term = $3 AND subject = $4 AND paper = $5`,
		classID, yearID, term, subject, paper)
	a, err := scanAssessment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assessment: %w", err)
	}
	return a, nil
}

// CreateAssessment inserts a new assessment row
func CreateAssessment(q Queryer, a *models.Assessment) error {
	if a.ID == "" {
		a.ID = NewID()
	}
	a.CreatedAt = time.Now()
	_, err := q.Exec(
		`INSERT INTO assessments (id, class_id, academic_year_id, term, subject, paper,
			title, template_id, template_version, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.ClassID, a.AcademicYearID, a.Term, a.Subject, a.Paper,
		a.Title, nullStr(a.TemplateID), nullInt(a.TemplateVersion), a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create assessment: %w", err)
	}
	return nil
}

// UpdateAssessmentTemplate rebinds an assessment to a template snapshot
func UpdateAssessmentTemplate(q Queryer, assessmentID string, templateID *string, templateVersion *int, title string) error {
	_, err := q.Exec(
		`UPDATE assessments SET template_id = $1, template_version = $2, title = $3 WHERE id = $4`,
		nullStr(templateID), nullInt(templateVersion), title, assessmentID,
	)
	if err != nil {
		return fmt.Errorf("failed to update assessment template: %w", err)
	}
	return nil
}

// ListAssessmentQuestions returns an assessment's live questions in number order
func ListAssessmentQuestions(q Queryer, assessmentID string) ([]*models.AssessmentQuestion, error) {
	rows, err := q.Query(`
		SELECT id, assessment_id, number, max_mark, strand, question_type, notes
		FROM assessment_questions
		WHERE assessment_id = $1
		ORDER BY number ASC`, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessment questions: %w", err)
	}
	defer rows.Close()

	var questions []*models.AssessmentQuestion
	for rows.Next() {
		var aq models.AssessmentQuestion
		var strand, qtype, notes sql.NullString
		if err := rows.Scan(&aq.ID, &aq.AssessmentID, &aq.Number, &aq.MaxMark, &strand, &qtype, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan assessment question: %w", err)
		}
		aq.Strand = strPtr(strand)
		aq.QuestionType = strPtr(qtype)
		aq.Notes = strPtr(notes)
		questions = append(questions, &aq)
	}
	return questions, rows.Err()
}

// CreateAssessmentQuestion inserts one live question slot
func CreateAssessmentQuestion(q Queryer, aq *models.AssessmentQuestion) error {
	if aq.ID == "" {
		aq.ID = NewID()
	}
	_, err := q.Exec(
		`INSERT INTO assessment_questions (id, assessment_id, number, max_mark, strand, question_type, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		aq.ID, aq.AssessmentID, aq.Number, aq.MaxMark,
		nullStr(aq.Strand), nullStr(aq.QuestionType), nullStr(aq.Notes),
	)
	if err != nil {
		return fmt.Errorf("failed to create assessment question: %w", err)
	}
	return nil
}

// UpdateQuestionMaxMark sets one question's mark ceiling
func UpdateQuestionMaxMark(q Queryer, questionID string, maxMark float64) error {
	_, err := q.Exec(`UPDATE assessment_questions SET max_mark = $1 WHERE id = $2`, maxMark, questionID)
	if err != nil {
		return fmt.Errorf("failed to update question max mark: %w", err)
	}
	return nil
}

// UpdateQuestionNumber renumbers one question slot
func UpdateQuestionNumber(q Queryer, questionID string, number int) error {
	_, err := q.Exec(`UPDATE assessment_questions SET number = $1 WHERE id = $2`, number, questionID)
	if err != nil {
		return fmt.Errorf("failed to renumber question: %w", err)
	}
	return nil
}

// DeleteAssessmentQuestion removes one question slot
func DeleteAssessmentQuestion(q Queryer, questionID string) error {
	_, err := q.Exec(`DELETE FROM assessment_questions WHERE id = $1`, questionID)
	if err != nil {
		return fmt.Errorf("failed to delete assessment question: %w", err)
	}
	return nil
}

// DeleteAssessmentQuestions clears an assessment's whole question list
func DeleteAssessmentQuestions(q Queryer, assessmentID string) error {
	_, err := q.Exec(`DELETE FROM assessment_questions WHERE assessment_id = $1`, assessmentID)
	if err != nil {
		return fmt.Errorf("failed to clear assessment questions: %w", err)
	}
	return nil
}

// ListScoresByAssessment returns every pupil score row for an assessment,
// including rows that reference since-deleted questions.
func ListScoresByAssessment(q Queryer, assessmentID string) ([]*models.PupilQuestionScore, error) {
	rows, err := q.Query(`
		SELECT id, assessment_id, pupil_id, question_id, mark, updated_at, updated_by_teacher_id
		FROM pupil_question_scores
		WHERE assessment_id = $1`, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	defer rows.Close()

	var scores []*models.PupilQuestionScore
	for rows.Next() {
		var s models.PupilQuestionScore
		var updatedBy sql.NullString
		if err := rows.Scan(&s.ID, &s.AssessmentID, &s.PupilID, &s.QuestionID, &s.Mark, &s.UpdatedAt, &updatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		s.UpdatedBy = strPtr(updatedBy)
		scores = append(scores, &s)
	}
	return scores, rows.Err()
}

// UpsertScore writes one pupil's mark for one question
func UpsertScore(q Queryer, s *models.PupilQuestionScore) error {
	var existing string
	err := q.QueryRow(
		`SELECT id FROM pupil_question_scores WHERE pupil_id = $1 AND question_id = $2`,
		s.PupilID, s.QuestionID,
	).Scan(&existing)
	s.UpdatedAt = time.Now()

	if err == sql.ErrNoRows {
		if s.ID == "" {
			s.ID = NewID()
		}
		_, err = q.Exec(
			`INSERT INTO pupil_question_scores (id, assessment_id, pupil_id, question_id, mark, updated_at, updated_by_teacher_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			s.ID, s.AssessmentID, s.PupilID, s.QuestionID, s.Mark, s.UpdatedAt, nullStr(s.UpdatedBy),
		)
		if err != nil {
			return fmt.Errorf("failed to create score: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check score: %w", err)
	}

	s.ID = existing
	_, err = q.Exec(
		`UPDATE pupil_question_scores SET mark = $1, updated_at = $2, updated_by_teacher_id = $3 WHERE id = $4`,
		s.Mark, s.UpdatedAt, nullStr(s.UpdatedBy), s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update score: %w", err)
	}
	return nil
}
