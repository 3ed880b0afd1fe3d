package models

import "time"

// Result stores a pupil's termly attainment for one subject: the two paper
// scores, the combined percentage, and the assigned band. One row per
// (pupil, academic year, term, subject).
type Result struct {
	ID              string     `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	PupilID         string     `json:"pupil_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AcademicYearID  string     `json:"academic_year_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	ClassIDSnapshot *string    `json:"class_id_snapshot,omitempty" gorm:"index;type:uuid"`
	Term            Term       `json:"term" gorm:"not null" validate:"required"`
	Subject         Subject    `json:"subject" gorm:"not null;index" validate:"required"`
	Arithmetic      *float64   `json:"arithmetic,omitempty"`
	Reasoning       *float64   `json:"reasoning,omitempty"`
	ReadingP1       *float64   `json:"reading_p1,omitempty"`
	ReadingP2       *float64   `json:"reading_p2,omitempty"`
	Spelling        *float64   `json:"spelling,omitempty"`
	Grammar         *float64   `json:"grammar,omitempty"`
	CombinedPct     *float64   `json:"combined_pct,omitempty"`
	Summary         *Band      `json:"summary,omitempty"`
	Note            *string    `json:"note,omitempty"`
	CreatedAt       time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	UpdatedBy       *string    `json:"updated_by_teacher_id,omitempty" gorm:"type:uuid"`

	Pupil *Pupil `json:"pupil,omitempty" gorm:"foreignKey:PupilID;references:ID"`
}

// Scores returns the pair of paper scores for a subject, in paper order
func (r *Result) Scores(subject Subject) (*float64, *float64) {
	switch subject {
	case SubjectReading:
		return r.ReadingP1, r.ReadingP2
	case SubjectSpag:
		return r.Spelling, r.Grammar
	default:
		return r.Arithmetic, r.Reasoning
	}
}

// SetField writes one paper score by result field
func (r *Result) SetField(field ResultField, value *float64) {
	switch field {
	case FieldArithmetic:
		r.Arithmetic = value
	case FieldReasoning:
		r.Reasoning = value
	case FieldReadingP1:
		r.ReadingP1 = value
	case FieldReadingP2:
		r.ReadingP2 = value
	case FieldSpelling:
		r.Spelling = value
	case FieldGrammar:
		r.Grammar = value
	}
}

// Field reads one paper score by result field
func (r *Result) Field(field ResultField) *float64 {
	switch field {
	case FieldArithmetic:
		return r.Arithmetic
	case FieldReasoning:
		return r.Reasoning
	case FieldReadingP1:
		return r.ReadingP1
	case FieldReadingP2:
		return r.ReadingP2
	case FieldSpelling:
		return r.Spelling
	case FieldGrammar:
		return r.Grammar
	}
	return nil
}
