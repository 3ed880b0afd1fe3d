package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nbri15/final-dream-tracker/app/database"
	"github.com/nbri15/final-dream-tracker/app/models"
)

// PromotionRow describes what will happen to one class's pupils when the
// academic year rolls over.
type PromotionRow struct {
	ClassID     string `json:"class_id"`
	ClassName   string `json:"class_name"`
	YearGroup   int    `json:"year_group"`
	PupilCount  int    `json:"pupil_count"`
	Destination string `json:"destination"`
	Archiving   bool   `json:"archiving"`
}

// PromotionPreview is the dry-run output shown before a commit
type PromotionPreview struct {
	CurrentLabel      string          `json:"current_label"`
	NextLabel         string          `json:"next_label"`
	Rows              []*PromotionRow `json:"rows"`
	MissingYearGroups []int           `json:"missing_year_groups"`
}

// PromotionOutcome summarises a committed rollover
type PromotionOutcome struct {
	NewLabel string `json:"new_label"`
	Moved    int    `json:"moved"`
	Archived int    `json:"archived"`
}

// PromotionPreconditionError reports a year group with no live class, which
// blocks the whole rollover.
type PromotionPreconditionError struct {
	YearGroup int
}

func (e *PromotionPreconditionError) Error() string {
	return fmt.Sprintf("no live class for year group %d", e.YearGroup)
}

// PreviewPromotion reports, without writing anything, where every live class's
// pupils would go at rollover and which year groups have no live class.
func PreviewPromotion(db *sql.DB) (*PromotionPreview, error) {
	current, err := database.GetCurrentYear(db)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("no current academic year")
	}

	classes, err := database.ListLiveClasses(db)
	if err != nil {
		return nil, err
	}

	byGroup := make(map[int]*models.SchoolClass)
	for _, c := range classes {
		if c.YearGroup != nil {
			byGroup[*c.YearGroup] = c
		}
	}

	preview := &PromotionPreview{
		CurrentLabel: current.Label,
		NextLabel:    NextYearLabel(current.Label, time.Now()),
	}
	for g := 1; g <= 6; g++ {
		if byGroup[g] == nil {
			preview.MissingYearGroups = append(preview.MissingYearGroups, g)
		}
	}

	for _, c := range classes {
		if c.YearGroup == nil {
			continue
		}
		count, err := database.CountPupilsInClass(db, c.ID)
		if err != nil {
			return nil, err
		}
		row := &PromotionRow{
			ClassID:    c.ID,
			ClassName:  c.Name,
			YearGroup:  *c.YearGroup,
			PupilCount: count,
		}
		if *c.YearGroup >= 6 {
			row.Destination = "Archive"
			row.Archiving = true
		} else if dst := byGroup[*c.YearGroup+1]; dst != nil {
			row.Destination = dst.Name
		} else {
			row.Destination = fmt.Sprintf("(no Year %d class)", *c.YearGroup+1)
		}
		preview.Rows = append(preview.Rows, row)
	}
	return preview, nil
}

// CommitPromotion rolls the school into the next academic year: the next year
// becomes the sole current year, every pupil's current placement is recorded
// against the ending year, Year 6 pupils move to the archive class and
// everyone else moves up one year group. A year group 1 to 6 with no live
// class aborts the rollover before anything is written.
func CommitPromotion(db *sql.DB) (*PromotionOutcome, error) {
	current, err := database.GetCurrentYear(db)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("no current academic year")
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	classes, err := database.ListLiveClasses(tx)
	if err != nil {
		return nil, err
	}
	byGroup := make(map[int]*models.SchoolClass)
	for _, c := range classes {
		if c.YearGroup != nil {
			byGroup[*c.YearGroup] = c
		}
	}
	for g := 1; g <= 6; g++ {
		if byGroup[g] == nil {
			return nil, &PromotionPreconditionError{YearGroup: g}
		}
	}

	nextLabel := NextYearLabel(current.Label, time.Now())
	nextYear, err := GetOrCreateYearByLabel(tx, nextLabel)
	if err != nil {
		return nil, err
	}
	if err := database.SetCurrentYear(tx, nextYear.ID); err != nil {
		return nil, err
	}

	archive, err := database.EnsureArchiveClass(tx)
	if err != nil {
		return nil, err
	}

	// Snapshot every roster before the first move so a pupil promoted into
	// the Year 6 class is not archived in the same pass.
	rosters := make(map[string][]*models.Pupil, len(classes))
	for _, c := range classes {
		if c.YearGroup == nil {
			continue
		}
		pupils, err := database.ListPupilsByClass(tx, c.ID)
		if err != nil {
			return nil, err
		}
		rosters[c.ID] = pupils
	}

	outcome := &PromotionOutcome{NewLabel: nextYear.Label}
	for _, c := range classes {
		if c.YearGroup == nil {
			continue
		}
		pupils := rosters[c.ID]

		var dst *models.SchoolClass
		archiving := *c.YearGroup >= 6
		if archiving {
			dst = archive
		} else {
			dst = byGroup[*c.YearGroup+1]
		}

		for _, p := range pupils {
			if err := database.InsertHistoryIfMissing(tx, p.ID, c.ID, current.ID); err != nil {
				return nil, err
			}
			if err := database.MovePupilToClass(tx, p.ID, dst.ID); err != nil {
				return nil, err
			}
			if err := database.InsertHistoryIfMissing(tx, p.ID, dst.ID, nextYear.ID); err != nil {
				return nil, err
			}
			if archiving {
				outcome.Archived++
			} else {
				outcome.Moved++
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit promotion: %w", err)
	}
	return outcome, nil
}
