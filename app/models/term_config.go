package models

// TermConfig overrides the paper mark ceilings for one (class, year, term).
// Nil slots fall back to the system defaults.
type TermConfig struct {
	ID             string   `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	ClassID        string   `json:"class_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AcademicYearID string   `json:"academic_year_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Term           Term     `json:"term" gorm:"not null" validate:"required"`
	ArithMax       *float64 `json:"arith_max,omitempty" validate:"omitempty,gt=0"`
	ReasonMax      *float64 `json:"reason_max,omitempty" validate:"omitempty,gt=0"`
	ReadingP1Max   *float64 `json:"reading_p1_max,omitempty" validate:"omitempty,gt=0"`
	ReadingP2Max   *float64 `json:"reading_p2_max,omitempty" validate:"omitempty,gt=0"`
	SpellingMax    *float64 `json:"spelling_max,omitempty" validate:"omitempty,gt=0"`
	GrammarMax     *float64 `json:"grammar_max,omitempty" validate:"omitempty,gt=0"`
}

// SlotFor returns the override slot for a result field, nil when unset
func (c *TermConfig) SlotFor(field ResultField) *float64 {
	switch field {
	case FieldArithmetic:
		return c.ArithMax
	case FieldReasoning:
		return c.ReasonMax
	case FieldReadingP1:
		return c.ReadingP1Max
	case FieldReadingP2:
		return c.ReadingP2Max
	case FieldSpelling:
		return c.SpellingMax
	case FieldGrammar:
		return c.GrammarMax
	}
	return nil
}

// SetSlot writes one override slot by result field
func (c *TermConfig) SetSlot(field ResultField, value *float64) {
	switch field {
	case FieldArithmetic:
		c.ArithMax = value
	case FieldReasoning:
		c.ReasonMax = value
	case FieldReadingP1:
		c.ReadingP1Max = value
	case FieldReadingP2:
		c.ReadingP2Max = value
	case FieldSpelling:
		c.SpellingMax = value
	case FieldGrammar:
		c.GrammarMax = value
	}
}
