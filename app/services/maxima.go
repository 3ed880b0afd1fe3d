package services

import (
	"github.com/nbri15/final-dream-tracker/app/config"
	"github.com/nbri15/final-dream-tracker/app/database"
	"github.com/nbri15/final-dream-tracker/app/models"
)

// ResolveTermMax returns the mark ceiling for one paper of a class's termly
// assessment. A non-null TermConfig slot for (class, year, term) wins over
// the system default. Unknown (subject, paper) pairs resolve to 0.0, which
// callers treat as "no ceiling configured".
func ResolveTermMax(q database.Queryer, classID, yearID string, term models.Term, subject models.Subject, paper models.Paper) (float64, error) {
	field, ok := models.ResultFieldFor(subject, paper)
	if !ok {
		return 0.0, nil
	}

	cfg, err := database.GetTermConfig(q, classID, yearID, term)
	if err != nil {
		return 0, err
	}
	if cfg != nil {
		if v := cfg.SlotFor(field); v != nil {
			return *v, nil
		}
	}

	return config.DefaultMaxima[field], nil
}
