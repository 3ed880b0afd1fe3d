package models

import (
	"strconv"
	"time"
)

// Intervention is a targeted support record for one pupil on one paper in
// one term. FocusAreas holds a JSON array of the pupil's weakest question
// types, maintained by the focus-area recompute.
type Intervention struct {
	ID               string     `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	PupilID          string     `json:"pupil_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	ClassID          string     `json:"class_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AcademicYearID   string     `json:"academic_year_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Term             Term       `json:"term" gorm:"not null" validate:"required"`
	Paper            Paper      `json:"paper" gorm:"not null" validate:"required"`
	Pct              *float64   `json:"pct,omitempty"`
	Status           string     `json:"status" gorm:"not null;default:proposed" validate:"oneof=proposed active closed"`
	SelectedBy       *string    `json:"selected_by,omitempty" gorm:"type:uuid"`
	SupportPlan      *string    `json:"support_plan,omitempty"`
	TeacherNote      *string    `json:"teacher_note,omitempty"`
	TeacherUpdatedAt *time.Time `json:"teacher_updated_at,omitempty"`
	FocusAreas       *string    `json:"focus_areas,omitempty"`
	PreResult        *string    `json:"pre_result,omitempty"`
	PostResult       *string    `json:"post_result,omitempty"`
	ReviewDueDate    *time.Time `json:"review_due_date,omitempty"`
	CreatedAt        time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func parseScore(raw *string) *float64 {
	if raw == nil || *raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(*raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// PreScoreValue parses the free-text pre-intervention result, nil when unusable
func (i *Intervention) PreScoreValue() *float64 {
	return parseScore(i.PreResult)
}

// PostScoreValue parses the free-text post-intervention result, nil when unusable
func (i *Intervention) PostScoreValue() *float64 {
	return parseScore(i.PostResult)
}

// Impact is the raw pre/post score movement, nil until both ends are recorded
func (i *Intervention) Impact() *float64 {
	pre, post := i.PreScoreValue(), i.PostScoreValue()
	if pre == nil || post == nil {
		return nil
	}
	d := round2(*post - *pre)
	return &d
}

// ImpactPct is the pre/post movement relative to the pre score
func (i *Intervention) ImpactPct() *float64 {
	pre, post := i.PreScoreValue(), i.PostScoreValue()
	if pre == nil || post == nil {
		return nil
	}
	base := *pre
	if base < 1.0 {
		base = 1.0
	}
	d := round1((*post - *pre) / base * 100.0)
	return &d
}
