package services

import (
	"testing"

	"github.com/nbri15/final-dream-tracker/app/database"
	"github.com/nbri15/final-dream-tracker/app/models"
	"github.com/nbri15/final-dream-tracker/app/testutil"
)

func TestSyncAssessmentToResults(t *testing.T) {
	db := testutil.NewDB(t)
	year := seedYear(t, db, "2025/26", true)
	class := seedClass(t, db, "Class 6", 6)
	scored := seedPupil(t, db, class.ID, "Ada Byron")
	unscored := seedPupil(t, db, class.ID, "Grace Murray")

	a := seedAssessment(t, db, class.ID, year.ID, models.TermAutumn, models.SubjectMaths, models.PaperArithmetic)
	q1 := seedQuestion(t, db, a.ID, 1, 10.0)
	q2 := seedQuestion(t, db, a.ID, 2, 10.0)
	stale := seedQuestion(t, db, a.ID, 3, 10.0)

	for _, s := range []*models.PupilQuestionScore{
		{AssessmentID: a.ID, PupilID: scored.ID, QuestionID: q1.ID, Mark: 8},
		{AssessmentID: a.ID, PupilID: scored.ID, QuestionID: q2.ID, Mark: 12},
		{AssessmentID: a.ID, PupilID: scored.ID, QuestionID: stale.ID, Mark: 5},
	} {
		if err := database.UpsertScore(db, s); err != nil {
			t.Fatalf("UpsertScore: %v", err)
		}
	}
	// The scored row for this question must not count once the question is gone.
	if err := database.DeleteAssessmentQuestion(db, stale.ID); err != nil {
		t.Fatalf("DeleteAssessmentQuestion: %v", err)
	}

	if err := SyncAssessmentToResults(db, a.ID); err != nil {
		t.Fatalf("SyncAssessmentToResults: %v", err)
	}

	r, err := database.GetResult(db, scored.ID, year.ID, models.TermAutumn, models.SubjectMaths)
	if err != nil {
		t.Fatalf("GetResult: %v", err)
	}
	if r == nil {
		t.Fatal("no result row for scored pupil")
	}
	if r.Arithmetic == nil || *r.Arithmetic != 20.0 {
		t.Errorf("arithmetic = %v, want 20.0 (stale score excluded)", r.Arithmetic)
	}
	// 20 over 38 + 35 is 27.397..., rounded to 27.4
	if r.CombinedPct == nil || *r.CombinedPct != 27.4 {
		t.Errorf("combined pct = %v, want 27.4", r.CombinedPct)
	}
	if r.Summary == nil || *r.Summary != models.BandWorkingTowards {
		t.Errorf("summary = %v, want %q", r.Summary, models.BandWorkingTowards)
	}
	if r.ClassIDSnapshot == nil || *r.ClassIDSnapshot != class.ID {
		t.Errorf("class snapshot = %v, want %s", r.ClassIDSnapshot, class.ID)
	}

	// A pupil with no scores still gets a row totalling zero.
	r, err = database.GetResult(db, unscored.ID, year.ID, models.TermAutumn, models.SubjectMaths)
	if err != nil {
		t.Fatalf("GetResult: %v", err)
	}
	if r == nil {
		t.Fatal("no result row for unscored pupil")
	}
	if r.Arithmetic == nil || *r.Arithmetic != 0.0 {
		t.Errorf("arithmetic = %v, want 0.0", r.Arithmetic)
	}
}

func TestSyncAssessmentIsRerunnable(t *testing.T) {
	db := testutil.NewDB(t)
	year := seedYear(t, db, "2025/26", true)
	class := seedClass(t, db, "Class 1", 1)
	pupil := seedPupil(t, db, class.ID, "Mary Somerville")

	a := seedAssessment(t, db, class.ID, year.ID, models.TermSpring, models.SubjectReading, models.PaperReading1)
	q1 := seedQuestion(t, db, a.ID, 1, 20.0)

	score := &models.PupilQuestionScore{AssessmentID: a.ID, PupilID: pupil.ID, QuestionID: q1.ID, Mark: 10}
	if err := database.UpsertScore(db, score); err != nil {
		t.Fatalf("UpsertScore: %v", err)
	}
	if err := SyncAssessmentToResults(db, a.ID); err != nil {
		t.Fatalf("first sync: %v", err)
	}

	score.Mark = 18
	if err := database.UpsertScore(db, score); err != nil {
		t.Fatalf("UpsertScore: %v", err)
	}
	if err := SyncAssessmentToResults(db, a.ID); err != nil {
		t.Fatalf("second sync: %v", err)
	}

	r, err := database.GetResult(db, pupil.ID, year.ID, models.TermSpring, models.SubjectReading)
	if err != nil {
		t.Fatalf("GetResult: %v", err)
	}
	if r.ReadingP1 == nil || *r.ReadingP1 != 18.0 {
		t.Errorf("reading p1 = %v, want 18.0 after resync", r.ReadingP1)
	}
}

func TestUpsertDirectResultMatchesAggregator(t *testing.T) {
	db := testutil.NewDB(t)
	year := seedYear(t, db, "2025/26", true)
	class := seedClass(t, db, "Class 3", 3)
	pupil := seedPupil(t, db, class.ID, "Joan Clarke")

	r, err := UpsertDirectResult(db, pupil.ID, year.ID, models.TermAutumn, models.SubjectMaths, fp(20), fp(15), nil, nil)
	if err != nil {
		t.Fatalf("UpsertDirectResult: %v", err)
	}
	if r.CombinedPct == nil || *r.CombinedPct != 47.9 {
		t.Errorf("combined pct = %v, want 47.9", r.CombinedPct)
	}
	if r.Summary == nil || *r.Summary != models.BandWorkingTowards {
		t.Errorf("summary = %v, want %q", r.Summary, models.BandWorkingTowards)
	}

	// A second write for the same slot updates in place.
	note := "post moderation"
	r2, err := UpsertDirectResult(db, pupil.ID, year.ID, models.TermAutumn, models.SubjectMaths, fp(30), fp(30), &note, nil)
	if err != nil {
		t.Fatalf("UpsertDirectResult update: %v", err)
	}
	if r2.ID != r.ID {
		t.Error("update created a second result row")
	}
	if r2.CombinedPct == nil || *r2.CombinedPct != 82.2 {
		t.Errorf("combined pct = %v, want 82.2", r2.CombinedPct)
	}
	if r2.Summary == nil || *r2.Summary != models.BandExceeding {
		t.Errorf("summary = %v, want %q", r2.Summary, models.BandExceeding)
	}
}
