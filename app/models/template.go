package models

import "time"

// PaperTemplate is a versioned, reusable question structure for one
// (subject, paper, academic year, year group, term) scope. Versions are
// append-only; at most one version per scope is active.
type PaperTemplate struct {
	ID             string    `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	Subject        Subject   `json:"subject" gorm:"not null;index" validate:"required"`
	Paper          Paper     `json:"paper" gorm:"not null;index" validate:"required"`
	AcademicYearID string    `json:"academic_year_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	YearGroup      int       `json:"year_group" gorm:"not null;index" validate:"required,min=1,max=6"`
	Term           Term      `json:"term" gorm:"not null;index" validate:"required"`
	Title          *string   `json:"title,omitempty"`
	IsActive       bool      `json:"is_active" gorm:"default:false"`
	Version        int       `json:"version" gorm:"not null;default:1"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Questions []*PaperTemplateQuestion `json:"questions,omitempty" gorm:"foreignKey:TemplateID;references:ID"`
}

// PaperTemplateQuestion is one question slot within a template
type PaperTemplateQuestion struct {
	ID           string   `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	TemplateID   string   `json:"template_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Number       int      `json:"number" gorm:"not null" validate:"required,min=1"`
	MaxMark      float64  `json:"max_mark" gorm:"not null;default:1.0" validate:"gt=0"`
	QuestionType *string  `json:"question_type,omitempty"`
	Strand       *string  `json:"strand,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
}
