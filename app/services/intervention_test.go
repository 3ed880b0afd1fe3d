package services

import (
	"database/sql"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/nbri15/final-dream-tracker/app/database"
	"github.com/nbri15/final-dream-tracker/app/models"
	"github.com/nbri15/final-dream-tracker/app/testutil"
)

func decodeFocusAreas(t *testing.T, db *sql.DB, interventionID string) []string {
	t.Helper()
	got, err := database.GetInterventionByID(db, interventionID)
	if err != nil {
		t.Fatalf("GetInterventionByID: %v", err)
	}
	if got.FocusAreas == nil {
		t.Fatal("focus areas not written")
	}
	var areas []string
	if err := json.Unmarshal([]byte(*got.FocusAreas), &areas); err != nil {
		t.Fatalf("decode focus areas: %v", err)
	}
	return areas
}

func TestRecomputeFocusAreas(t *testing.T) {
	db := testutil.NewDB(t)
	year := seedYear(t, db, "2025/26", true)
	class := seedClass(t, db, "Class 5", 5)
	pupil := seedPupil(t, db, class.ID, "Rosalind Franklin")

	a := seedAssessment(t, db, class.ID, year.ID, models.TermAutumn, models.SubjectMaths, models.PaperArithmetic)

	place := "Place value"
	fractions := "Fractions"
	calc := "Calculation"
	algebra := "Algebra"
	questions := []*models.AssessmentQuestion{
		{AssessmentID: a.ID, Number: 1, MaxMark: 10, QuestionType: &place},
		{AssessmentID: a.ID, Number: 2, MaxMark: 10, QuestionType: &fractions},
		{AssessmentID: a.ID, Number: 3, MaxMark: 10, QuestionType: &calc},
		{AssessmentID: a.ID, Number: 4, MaxMark: 10, Strand: &calc},    // falls back to strand
		{AssessmentID: a.ID, Number: 5, MaxMark: 10},                   // falls back to General
		{AssessmentID: a.ID, Number: 6, MaxMark: 10, QuestionType: &algebra}, // never scored
	}
	for _, aq := range questions {
		if err := database.CreateAssessmentQuestion(db, aq); err != nil {
			t.Fatalf("seed question: %v", err)
		}
	}

	// Question 6 gets no score row, so Algebra never forms a bucket.
	marks := []float64{9, 2, 5, 5, 7}
	for i, aq := range questions[:5] {
		s := &models.PupilQuestionScore{AssessmentID: a.ID, PupilID: pupil.ID, QuestionID: aq.ID, Mark: marks[i]}
		if err := database.UpsertScore(db, s); err != nil {
			t.Fatalf("UpsertScore: %v", err)
		}
	}

	it := &models.Intervention{
		PupilID:        pupil.ID,
		ClassID:        class.ID,
		AcademicYearID: year.ID,
		Term:           models.TermAutumn,
		Paper:          models.PaperArithmetic,
	}
	if err := database.CreateIntervention(db, it); err != nil {
		t.Fatalf("CreateIntervention: %v", err)
	}

	if err := RecomputeFocusAreas(db, it.ID); err != nil {
		t.Fatalf("RecomputeFocusAreas: %v", err)
	}

	// Fractions 20%, Calculation 50% over both its questions, General 70%;
	// Place value at 90% drops off and unscored Algebra never appears.
	areas := decodeFocusAreas(t, db, it.ID)
	want := []string{"Fractions", "Calculation", "General"}
	if !reflect.DeepEqual(areas, want) {
		t.Errorf("focus areas = %v, want %v", areas, want)
	}
}

func TestRecomputeFocusAreasNothingScored(t *testing.T) {
	db := testutil.NewDB(t)
	year := seedYear(t, db, "2025/26", true)
	class := seedClass(t, db, "Class 4", 4)
	pupil := seedPupil(t, db, class.ID, "Mary Anning")

	a := seedAssessment(t, db, class.ID, year.ID, models.TermSpring, models.SubjectMaths, models.PaperReasoning)
	place := "Place value"
	q := &models.AssessmentQuestion{AssessmentID: a.ID, Number: 1, MaxMark: 10, QuestionType: &place}
	if err := database.CreateAssessmentQuestion(db, q); err != nil {
		t.Fatalf("seed question: %v", err)
	}

	it := &models.Intervention{
		PupilID:        pupil.ID,
		ClassID:        class.ID,
		AcademicYearID: year.ID,
		Term:           models.TermSpring,
		Paper:          models.PaperReasoning,
	}
	if err := database.CreateIntervention(db, it); err != nil {
		t.Fatalf("CreateIntervention: %v", err)
	}

	if err := RecomputeFocusAreas(db, it.ID); err != nil {
		t.Fatalf("RecomputeFocusAreas: %v", err)
	}
	areas := decodeFocusAreas(t, db, it.ID)
	if !reflect.DeepEqual(areas, []string{"General"}) {
		t.Errorf("focus areas = %v, want the General fallback when nothing is scored", areas)
	}
}

func TestRecomputeFocusAreasWithoutAssessment(t *testing.T) {
	db := testutil.NewDB(t)
	year := seedYear(t, db, "2025/26", true)
	class := seedClass(t, db, "Class 1", 1)
	pupil := seedPupil(t, db, class.ID, "Dorothy Hodgkin")

	it := &models.Intervention{
		PupilID:        pupil.ID,
		ClassID:        class.ID,
		AcademicYearID: year.ID,
		Term:           models.TermSummer,
		Paper:          models.PaperGrammar,
	}
	if err := database.CreateIntervention(db, it); err != nil {
		t.Fatalf("CreateIntervention: %v", err)
	}

	if err := RecomputeFocusAreas(db, it.ID); err != nil {
		t.Fatalf("RecomputeFocusAreas: %v", err)
	}
	got, err := database.GetInterventionByID(db, it.ID)
	if err != nil {
		t.Fatalf("GetInterventionByID: %v", err)
	}
	if got.FocusAreas == nil || *got.FocusAreas != "[]" {
		t.Errorf("focus areas = %v, want an empty list when no assessment exists", got.FocusAreas)
	}
}
