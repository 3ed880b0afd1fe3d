package services

import (
	"github.com/nbri15/final-dream-tracker/app/config"
	"github.com/nbri15/final-dream-tracker/app/database"
	"github.com/nbri15/final-dream-tracker/app/models"
)

// ClassifyBand maps a combined percentage to an attainment band using the
// subject's thresholds. The percentage is not clamped; values over 100 from
// data-entry quirks classify as exceeding.
func ClassifyBand(pct float64, subject models.Subject) models.Band {
	t := config.ThresholdsFor(subject)
	if pct < t.WTSMax {
		return models.BandWorkingTowards
	}
	if pct < t.OTMax {
		return models.BandWorkingAt
	}
	return models.BandExceeding
}

// CombinedAndBand computes the combined percentage and band for a pair of
// paper scores. Both scores nil means "not assessed" and yields (nil, nil);
// a nil alongside a value counts the nil as zero. When the summed maxima are
// zero (nothing configured) the percentage is 0.0.
func CombinedAndBand(q database.Queryer, scoreA, scoreB *float64, classID string, term models.Term, yearID string, subject models.Subject) (*float64, *models.Band, error) {
	if scoreA == nil && scoreB == nil {
		return nil, nil, nil
	}

	var a, b float64
	if scoreA != nil {
		a = *scoreA
	}
	if scoreB != nil {
		b = *scoreB
	}

	papers := models.PapersFor(subject)
	maxA, err := ResolveTermMax(q, classID, yearID, term, subject, papers[0])
	if err != nil {
		return nil, nil, err
	}
	maxB, err := ResolveTermMax(q, classID, yearID, term, subject, papers[1])
	if err != nil {
		return nil, nil, err
	}

	pct := 0.0
	if totalMax := maxA + maxB; totalMax > 0 {
		pct = round1((a + b) / totalMax * 100.0)
	}
	band := ClassifyBand(pct, subject)
	return &pct, &band, nil
}
