package models

import "time"

// Assessment is a class's live working copy of scored questions for one
// subject/paper in one term. One row per (class, year, term, subject, paper),
// optionally snapshotting the template it was seeded from.
type Assessment struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	ClassID         string    `json:"class_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AcademicYearID  string    `json:"academic_year_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Term            Term      `json:"term" gorm:"not null" validate:"required"`
	Subject         Subject   `json:"subject" gorm:"not null;index" validate:"required"`
	Paper           Paper     `json:"paper" gorm:"not null;index" validate:"required"`
	Title           string    `json:"title" gorm:"not null"`
	TemplateID      *string   `json:"template_id,omitempty" gorm:"index;type:uuid"`
	TemplateVersion *int      `json:"template_version,omitempty"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`

	Questions []*AssessmentQuestion `json:"questions,omitempty" gorm:"foreignKey:AssessmentID;references:ID"`
}

// AssessmentQuestion is one live question slot. Unlike template questions it
// is mutable after copy-in; the reconciler owns its numbering.
type AssessmentQuestion struct {
	ID           string  `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	AssessmentID string  `json:"assessment_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Number       int     `json:"number" gorm:"not null" validate:"required,min=1"`
	MaxMark      float64 `json:"max_mark" gorm:"not null;default:1.0" validate:"gte=0"`
	Strand       *string `json:"strand,omitempty"`
	QuestionType *string `json:"question_type,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// PupilQuestionScore is one pupil's mark on one question, unique per
// (pupil, question)
type PupilQuestionScore struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	AssessmentID string    `json:"assessment_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	PupilID      string    `json:"pupil_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	QuestionID   string    `json:"question_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Mark         float64   `json:"mark" gorm:"not null;default:0.0" validate:"gte=0"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
	UpdatedBy    *string   `json:"updated_by_teacher_id,omitempty" gorm:"type:uuid"`
}
