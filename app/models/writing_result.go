package models

import "time"

// WritingResult is a teacher-judgement writing band for one pupil in one
// term. Writing has no papers, so there is nothing to aggregate.
type WritingResult struct {
	ID             string      `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	PupilID        string      `json:"pupil_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AcademicYearID string      `json:"academic_year_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Term           Term        `json:"term" gorm:"not null" validate:"required"`
	Band           WritingBand `json:"band" gorm:"not null" validate:"required,oneof=working_towards working_at exceeding"`
	Note           *string     `json:"note,omitempty"`
	CreatedAt      time.Time   `json:"created_at" gorm:"autoCreateTime"`
}
