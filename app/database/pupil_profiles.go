package database

import (
	"database/sql"
	"fmt"

	"github.com/nbri15/final-dream-tracker/app/models"
)

// GetOrCreatePupilProfile returns the pupil's profile, creating an empty one
// on first access.
func GetOrCreatePupilProfile(q Queryer, pupilID string) (*models.PupilProfile, error) {
	var p models.PupilProfile
	var yearGroup, y1, y2 sql.NullInt64
	var eyfs sql.NullBool
	var enrichment sql.NullString
	err := q.QueryRow(
		`SELECT id, pupil_id, year_group, lac_pla, send, ehcp, vulnerable,
			eyfs_gld, y1_phonics, y2_phonics_retake, enrichment
		 FROM pupil_profiles WHERE pupil_id = $1`, pupilID,
	).Scan(&p.ID, &p.PupilID, &yearGroup, &p.LacPla, &p.Send, &p.Ehcp, &p.Vulnerable,
		&eyfs, &y1, &y2, &enrichment)
	if err == nil {
		p.YearGroup = intPtr(yearGroup)
		p.Y1Phonics = intPtr(y1)
		p.Y2PhonicsRetake = intPtr(y2)
		p.Enrichment = strPtr(enrichment)
		if eyfs.Valid {
			v := eyfs.Bool
			p.EyfsGld = &v
		}
		return &p, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to fetch pupil profile: %w", err)
	}

	p = models.PupilProfile{ID: NewID(), PupilID: pupilID}
	_, err = q.Exec(
		`INSERT INTO pupil_profiles (id, pupil_id, lac_pla, send, ehcp, vulnerable)
		 VALUES ($1, $2, FALSE, FALSE, FALSE, FALSE)`,
		p.ID, p.PupilID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pupil profile: %w", err)
	}
	return &p, nil
}

// UpdatePupilProfile rewrites a profile's flag columns
func UpdatePupilProfile(q Queryer, p *models.PupilProfile) error {
	var eyfs any
	if p.EyfsGld != nil {
		eyfs = *p.EyfsGld
	}
	_, err := q.Exec(
		`UPDATE pupil_profiles SET year_group = $1, lac_pla = $2, send = $3, ehcp = $4,
			vulnerable = $5, eyfs_gld = $6, y1_phonics = $7, y2_phonics_retake = $8, enrichment = $9
		 WHERE id = $10`,
		nullInt(p.YearGroup), p.LacPla, p.Send, p.Ehcp,
		p.Vulnerable, eyfs, nullInt(p.Y1Phonics), nullInt(p.Y2PhonicsRetake), nullStr(p.Enrichment),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update pupil profile: %w", err)
	}
	return nil
}
