package models

import "time"

// SatsHeader defines one scaled-score column for a class/year grid
type SatsHeader struct {
	ID             string  `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	ClassID        string  `json:"class_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AcademicYearID string  `json:"academic_year_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Key            string  `json:"key" gorm:"not null" validate:"required"`
	Header         *string `json:"header,omitempty"`
	Group          string  `json:"group" gorm:"not null;index" validate:"required"`
	Order          int     `json:"order" gorm:"not null;default:0"`
}

// SatsScore is one pupil's value in a scaled-score column, unique per
// (pupil, year, key)
type SatsScore struct {
	ID             string    `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	PupilID        string    `json:"pupil_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AcademicYearID string    `json:"academic_year_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Key            string    `json:"key" gorm:"not null;index" validate:"required"`
	Value          *float64  `json:"value,omitempty"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
