package services

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/nbri15/final-dream-tracker/app/database"
	"github.com/nbri15/final-dream-tracker/app/models"
	"github.com/nbri15/final-dream-tracker/app/testutil"
)

func seedSchool(t *testing.T, db *sql.DB) (year *models.AcademicYear, classes map[int]*models.SchoolClass, pupils map[int][]*models.Pupil) {
	t.Helper()
	year = seedYear(t, db, "2025/26", true)
	classes = make(map[int]*models.SchoolClass)
	pupils = make(map[int][]*models.Pupil)
	names := []string{"Alder", "Beech", "Cedar", "Damson", "Elm", "Fir"}
	for g := 1; g <= 6; g++ {
		classes[g] = seedClass(t, db, names[g-1], g)
		for i := 0; i < 2; i++ {
			p := seedPupil(t, db, classes[g].ID, names[g-1]+" pupil")
			pupils[g] = append(pupils[g], p)
		}
	}
	return year, classes, pupils
}

func TestPreviewPromotion(t *testing.T) {
	db := testutil.NewDB(t)
	seedSchool(t, db)

	preview, err := PreviewPromotion(db)
	if err != nil {
		t.Fatalf("PreviewPromotion: %v", err)
	}
	if preview.CurrentLabel != "2025/26" || preview.NextLabel != "2026/27" {
		t.Errorf("labels = %q -> %q, want 2025/26 -> 2026/27", preview.CurrentLabel, preview.NextLabel)
	}
	if len(preview.MissingYearGroups) != 0 {
		t.Errorf("missing year groups = %v, want none", preview.MissingYearGroups)
	}
	if len(preview.Rows) != 6 {
		t.Fatalf("rows = %d, want 6", len(preview.Rows))
	}
	for _, row := range preview.Rows {
		if row.PupilCount != 2 {
			t.Errorf("%s pupil count = %d, want 2", row.ClassName, row.PupilCount)
		}
		if (row.YearGroup == 6) != row.Archiving {
			t.Errorf("%s archiving = %v at year group %d", row.ClassName, row.Archiving, row.YearGroup)
		}
	}
}

func TestPreviewPromotionReportsMissingGroups(t *testing.T) {
	db := testutil.NewDB(t)
	seedYear(t, db, "2025/26", true)
	seedClass(t, db, "Cedar", 3)

	preview, err := PreviewPromotion(db)
	if err != nil {
		t.Fatalf("PreviewPromotion: %v", err)
	}
	if len(preview.MissingYearGroups) != 5 {
		t.Errorf("missing year groups = %v, want the five without classes", preview.MissingYearGroups)
	}
}

func TestCommitPromotion(t *testing.T) {
	db := testutil.NewDB(t)
	endingYear, classes, pupils := seedSchool(t, db)

	outcome, err := CommitPromotion(db)
	if err != nil {
		t.Fatalf("CommitPromotion: %v", err)
	}
	if outcome.NewLabel != "2026/27" {
		t.Errorf("new label = %q, want 2026/27", outcome.NewLabel)
	}
	if outcome.Moved != 10 || outcome.Archived != 2 {
		t.Errorf("moved/archived = %d/%d, want 10/2", outcome.Moved, outcome.Archived)
	}

	current, err := database.GetCurrentYear(db)
	if err != nil {
		t.Fatalf("GetCurrentYear: %v", err)
	}
	if current.Label != "2026/27" {
		t.Errorf("current year = %q, want 2026/27", current.Label)
	}
	old, err := database.GetYearByID(db, endingYear.ID)
	if err != nil {
		t.Fatalf("GetYearByID: %v", err)
	}
	if old.IsCurrent {
		t.Error("ending year is still flagged current")
	}

	// Year 1 pupils moved up into the year 2 class.
	for _, p := range pupils[1] {
		moved, err := database.GetPupilByID(db, p.ID)
		if err != nil {
			t.Fatalf("GetPupilByID: %v", err)
		}
		if moved.ClassID != classes[2].ID {
			t.Errorf("year 1 pupil in class %s, want %s", moved.ClassID, classes[2].ID)
		}
	}

	// Year 6 pupils went to the archive class.
	archive, err := database.EnsureArchiveClass(db)
	if err != nil {
		t.Fatalf("EnsureArchiveClass: %v", err)
	}
	for _, p := range pupils[6] {
		archived, err := database.GetPupilByID(db, p.ID)
		if err != nil {
			t.Fatalf("GetPupilByID: %v", err)
		}
		if archived.ClassID != archive.ID {
			t.Errorf("year 6 pupil in class %s, want archive %s", archived.ClassID, archive.ID)
		}
	}

	// One history row against the ending year, one against the new year.
	p := pupils[3][0]
	history, err := database.HistoryForPupil(db, p.ID)
	if err != nil {
		t.Fatalf("HistoryForPupil: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history rows = %d, want 2", len(history))
	}
	byYear := make(map[string]string)
	for _, h := range history {
		byYear[h.AcademicYearID] = h.ClassID
	}
	if byYear[endingYear.ID] != classes[3].ID {
		t.Errorf("ending-year history class = %s, want %s", byYear[endingYear.ID], classes[3].ID)
	}
	if byYear[current.ID] != classes[4].ID {
		t.Errorf("new-year history class = %s, want %s", byYear[current.ID], classes[4].ID)
	}
}

func TestCommitPromotionMissingDestinationRollsBack(t *testing.T) {
	db := testutil.NewDB(t)
	seedYear(t, db, "2025/26", true)
	names := map[int]string{1: "Alder", 2: "Beech", 3: "Cedar", 5: "Elm", 6: "Fir"}
	var c3 *models.SchoolClass
	for g, name := range names {
		c := seedClass(t, db, name, g)
		if g == 3 {
			c3 = c
		}
	}
	pupil := seedPupil(t, db, c3.ID, "Rowan pupil")

	_, err := CommitPromotion(db)
	if err == nil {
		t.Fatal("expected promotion to fail without a year 4 class")
	}
	var precondition *PromotionPreconditionError
	if !errors.As(err, &precondition) {
		t.Fatalf("error = %v, want PromotionPreconditionError", err)
	}
	if precondition.YearGroup != 4 {
		t.Errorf("missing year group = %d, want 4", precondition.YearGroup)
	}

	// Nothing committed: year, placement and history are untouched.
	current, err := database.GetCurrentYear(db)
	if err != nil {
		t.Fatalf("GetCurrentYear: %v", err)
	}
	if current.Label != "2025/26" {
		t.Errorf("current year = %q, want 2025/26 after rollback", current.Label)
	}
	unmoved, err := database.GetPupilByID(db, pupil.ID)
	if err != nil {
		t.Fatalf("GetPupilByID: %v", err)
	}
	if unmoved.ClassID != c3.ID {
		t.Error("pupil moved despite rollback")
	}
	n, err := database.CountHistoryRows(db, pupil.ID)
	if err != nil {
		t.Fatalf("CountHistoryRows: %v", err)
	}
	if n != 0 {
		t.Errorf("history rows = %d, want 0 after rollback", n)
	}
}

func TestCommitPromotionMissingYearOneAborts(t *testing.T) {
	db := testutil.NewDB(t)
	seedYear(t, db, "2025/26", true)
	names := map[int]string{2: "Beech", 3: "Cedar", 4: "Damson", 5: "Elm", 6: "Fir"}
	var c2 *models.SchoolClass
	for g, name := range names {
		c := seedClass(t, db, name, g)
		if g == 2 {
			c2 = c
		}
	}
	pupil := seedPupil(t, db, c2.ID, "Willow pupil")

	// Year 1 is nobody's destination, but a gap there must still block the
	// rollover entirely.
	_, err := CommitPromotion(db)
	if err == nil {
		t.Fatal("expected promotion to fail without a year 1 class")
	}
	var precondition *PromotionPreconditionError
	if !errors.As(err, &precondition) {
		t.Fatalf("error = %v, want PromotionPreconditionError", err)
	}
	if precondition.YearGroup != 1 {
		t.Errorf("missing year group = %d, want 1", precondition.YearGroup)
	}

	current, err := database.GetCurrentYear(db)
	if err != nil {
		t.Fatalf("GetCurrentYear: %v", err)
	}
	if current.Label != "2025/26" {
		t.Errorf("current year = %q, want 2025/26 after abort", current.Label)
	}
	unmoved, err := database.GetPupilByID(db, pupil.ID)
	if err != nil {
		t.Fatalf("GetPupilByID: %v", err)
	}
	if unmoved.ClassID != c2.ID {
		t.Error("pupil moved despite abort")
	}
}

func TestCommitPromotionHistoryIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	year, classes, pupils := seedSchool(t, db)
	p := pupils[2][0]

	// A pre-existing row for the ending year must not duplicate.
	if err := database.InsertHistoryIfMissing(db, p.ID, classes[2].ID, year.ID); err != nil {
		t.Fatalf("InsertHistoryIfMissing: %v", err)
	}

	if _, err := CommitPromotion(db); err != nil {
		t.Fatalf("CommitPromotion: %v", err)
	}

	history, err := database.HistoryForPupil(db, p.ID)
	if err != nil {
		t.Fatalf("HistoryForPupil: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("history rows = %d, want 2 (no duplicate for the ending year)", len(history))
	}
}
