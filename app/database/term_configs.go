package database

import (
	"database/sql"
	"fmt"

	"github.com/nbri15/final-dream-tracker/app/models"
)

const termConfigColumns = `id, class_id, academic_year_id, term,
	arith_max, reason_max, reading_p1_max, reading_p2_max, spelling_max, grammar_max`

func scanTermConfig(row interface{ Scan(...any) error }) (*models.TermConfig, error) {
	var c models.TermConfig
	var arith, reason, rp1, rp2, spell, gram sql.NullFloat64
	if err := row.Scan(&c.ID, &c.ClassID, &c.AcademicYearID, &c.Term,
		&arith, &reason, &rp1, &rp2, &spell, &gram); err != nil {
		return nil, err
	}
	c.ArithMax = floatPtr(arith)
	c.ReasonMax = floatPtr(reason)
	c.ReadingP1Max = floatPtr(rp1)
	c.ReadingP2Max = floatPtr(rp2)
	c.SpellingMax = floatPtr(spell)
	c.GrammarMax = floatPtr(gram)
	return &c, nil
}

// GetTermConfig fetches the override row for (class, year, term), nil when absent
func GetTermConfig(q Queryer, classID, yearID string, term models.Term) (*models.TermConfig, error) {
	row := q.QueryRow(
		`SELECT `+termConfigColumns+` FROM term_configs WHERE class_id = $1 AND academic_year_id = $2 AND term = $3`,
		classID, yearID, term,
	)
	c, err := scanTermConfig(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch term config: %w", err)
	}
	return c, nil
}

// UpsertTermConfig creates or replaces the override row for (class, year, term)
func UpsertTermConfig(q Queryer, cfg *models.TermConfig) error {
	existing, err := GetTermConfig(q, cfg.ClassID, cfg.AcademicYearID, cfg.Term)
	if err != nil {
		return err
	}

	if existing == nil {
		if cfg.ID == "" {
			cfg.ID = NewID()
		}
		_, err = q.Exec(
			`INSERT INTO term_configs (id, class_id, academic_year_id, term,
				arith_max, reason_max, reading_p1_max, reading_p2_max, spelling_max, grammar_max)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			cfg.ID, cfg.ClassID, cfg.AcademicYearID, cfg.Term,
			nullFloat(cfg.ArithMax), nullFloat(cfg.ReasonMax),
			nullFloat(cfg.ReadingP1Max), nullFloat(cfg.ReadingP2Max),
			nullFloat(cfg.SpellingMax), nullFloat(cfg.GrammarMax),
		)
		if err != nil {
			return fmt.Errorf("failed to create term config: %w", err)
		}
		return nil
	}

	cfg.ID = existing.ID
	_, err = q.Exec(
		`UPDATE term_configs SET arith_max = $1, reason_max = $2, reading_p1_max = $3,
			reading_p2_max = $4, spelling_max = $5, grammar_max = $6
		 WHERE id = $7`,
		nullFloat(cfg.ArithMax), nullFloat(cfg.ReasonMax),
		nullFloat(cfg.ReadingP1Max), nullFloat(cfg.ReadingP2Max),
		nullFloat(cfg.SpellingMax), nullFloat(cfg.GrammarMax),
		cfg.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update term config: %w", err)
	}
	return nil
}
