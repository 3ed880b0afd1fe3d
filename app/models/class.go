package models

// SchoolClass is a teaching class. YearGroup is 1..6 for live classes and
// nil for the single designated Archive class.
type SchoolClass struct {
	ID         string `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	Name       string `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	YearGroup  *int   `json:"year_group,omitempty" gorm:"index" validate:"omitempty,min=1,max=6"`
	IsArchived bool   `json:"is_archived" gorm:"default:false"`
	IsArchive  bool   `json:"is_archive" gorm:"default:false"`
	PupilCount int    `json:"pupil_count,omitempty" gorm:"-"`
}

// Live reports whether the class takes part in day-to-day assessment
func (c *SchoolClass) Live() bool {
	return !c.IsArchived && !c.IsArchive
}
