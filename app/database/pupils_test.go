package database_test

import (
	"testing"

	"github.com/nbri15/final-dream-tracker/app/database"
	"github.com/nbri15/final-dream-tracker/app/models"
	"github.com/nbri15/final-dream-tracker/app/testutil"
)

func TestListPupilsByClassRegisterOrder(t *testing.T) {
	db := testutil.NewDB(t)
	class := &models.SchoolClass{Name: "Maple", YearGroup: intP(4)}
	if err := database.CreateClass(db, class); err != nil {
		t.Fatalf("CreateClass: %v", err)
	}

	// Unnumbered pupils sort after numbered ones, each group by name.
	seed := []*models.Pupil{
		{ClassID: class.ID, Name: "Zara", Number: intP(1)},
		{ClassID: class.ID, Name: "Ben"},
		{ClassID: class.ID, Name: "Amy", Number: intP(2)},
		{ClassID: class.ID, Name: "Alfie"},
	}
	for _, p := range seed {
		if err := database.CreatePupil(db, p); err != nil {
			t.Fatalf("CreatePupil: %v", err)
		}
	}

	pupils, err := database.ListPupilsByClass(db, class.ID)
	if err != nil {
		t.Fatalf("ListPupilsByClass: %v", err)
	}
	var got []string
	for _, p := range pupils {
		got = append(got, p.Name)
	}
	want := []string{"Zara", "Amy", "Alfie", "Ben"}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestEffectivePupilIDs(t *testing.T) {
	db := testutil.NewDB(t)

	past := &models.AcademicYear{Label: "2024/25"}
	current := &models.AcademicYear{Label: "2025/26", IsCurrent: true}
	for _, y := range []*models.AcademicYear{past, current} {
		if err := database.CreateYear(db, y); err != nil {
			t.Fatalf("CreateYear: %v", err)
		}
	}

	class := &models.SchoolClass{Name: "Oak", YearGroup: intP(3)}
	if err := database.CreateClass(db, class); err != nil {
		t.Fatalf("CreateClass: %v", err)
	}
	stays := &models.Pupil{ClassID: class.ID, Name: "Stays"}
	joined := &models.Pupil{ClassID: class.ID, Name: "Joined"}
	for _, p := range []*models.Pupil{stays, joined} {
		if err := database.CreatePupil(db, p); err != nil {
			t.Fatalf("CreatePupil: %v", err)
		}
	}
	// Only one of the two sat in this class last year.
	if err := database.InsertHistoryIfMissing(db, stays.ID, class.ID, past.ID); err != nil {
		t.Fatalf("InsertHistoryIfMissing: %v", err)
	}

	ids, err := database.EffectivePupilIDs(db, class.ID, past.ID)
	if err != nil {
		t.Fatalf("EffectivePupilIDs past year: %v", err)
	}
	if len(ids) != 1 || ids[0] != stays.ID {
		t.Errorf("past year ids = %v, want just the history pupil", ids)
	}

	ids, err = database.EffectivePupilIDs(db, class.ID, current.ID)
	if err != nil {
		t.Fatalf("EffectivePupilIDs current year: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("current year ids = %v, want both live pupils", ids)
	}
}

func TestInsertHistoryIfMissingIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	year := &models.AcademicYear{Label: "2025/26", IsCurrent: true}
	if err := database.CreateYear(db, year); err != nil {
		t.Fatalf("CreateYear: %v", err)
	}
	class := &models.SchoolClass{Name: "Hazel", YearGroup: intP(1)}
	if err := database.CreateClass(db, class); err != nil {
		t.Fatalf("CreateClass: %v", err)
	}
	pupil := &models.Pupil{ClassID: class.ID, Name: "Pat"}
	if err := database.CreatePupil(db, pupil); err != nil {
		t.Fatalf("CreatePupil: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := database.InsertHistoryIfMissing(db, pupil.ID, class.ID, year.ID); err != nil {
			t.Fatalf("InsertHistoryIfMissing run %d: %v", i+1, err)
		}
	}
	n, err := database.CountHistoryRows(db, pupil.ID)
	if err != nil {
		t.Fatalf("CountHistoryRows: %v", err)
	}
	if n != 1 {
		t.Errorf("history rows = %d, want 1", n)
	}
}
