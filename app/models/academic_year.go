package models

import "time"

// AcademicYear represents a school calendar year such as "2025/26".
// Exactly one year is current at a time; the database layer enforces it.
type AcademicYear struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	Label     string     `json:"label" gorm:"uniqueIndex;not null" validate:"required"`
	StartDate *time.Time `json:"start_date,omitempty" gorm:"type:date"`
	EndDate   *time.Time `json:"end_date,omitempty" gorm:"type:date"`
	IsCurrent bool       `json:"is_current" gorm:"default:false;index"`
}

// PupilClassHistory is the append-only record of where a pupil sat in a year.
// Rows are unique per (pupil, class, year) and are never updated.
type PupilClassHistory struct {
	ID             string    `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	PupilID        string    `json:"pupil_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	ClassID        string    `json:"class_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AcademicYearID string    `json:"academic_year_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`

	Pupil        *Pupil        `json:"pupil,omitempty" gorm:"foreignKey:PupilID;references:ID"`
	Class        *SchoolClass  `json:"class,omitempty" gorm:"foreignKey:ClassID;references:ID"`
	AcademicYear *AcademicYear `json:"academic_year,omitempty" gorm:"foreignKey:AcademicYearID;references:ID"`
}
