package models

import "time"

// Pupil belongs to exactly one class at a time. Only the promotion engine
// reassigns pupils between classes.
type Pupil struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	ClassID      string    `json:"class_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Number       *int      `json:"number,omitempty"`
	Name         string    `json:"name" gorm:"not null;index" validate:"required"`
	Gender       *string   `json:"gender,omitempty" validate:"omitempty,oneof=M F"`
	PupilPremium bool      `json:"pupil_premium" gorm:"default:false"`
	Laps         bool      `json:"laps" gorm:"default:false"`
	ServiceChild bool      `json:"service_child" gorm:"default:false"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Class *SchoolClass `json:"class,omitempty" gorm:"foreignKey:ClassID;references:ID"`
}

// PupilProfile carries per-pupil cohort flags used for filtering
type PupilProfile struct {
	ID              string  `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	PupilID         string  `json:"pupil_id" gorm:"uniqueIndex;not null;type:uuid" validate:"required,uuid"`
	YearGroup       *int    `json:"year_group,omitempty"`
	LacPla          bool    `json:"lac_pla" gorm:"default:false"`
	Send            bool    `json:"send" gorm:"default:false"`
	Ehcp            bool    `json:"ehcp" gorm:"default:false"`
	Vulnerable      bool    `json:"vulnerable" gorm:"default:false"`
	EyfsGld         *bool   `json:"eyfs_gld,omitempty"`
	Y1Phonics       *int    `json:"y1_phonics,omitempty"`
	Y2PhonicsRetake *int    `json:"y2_phonics_retake,omitempty"`
	Enrichment      *string `json:"enrichment,omitempty"`
}
