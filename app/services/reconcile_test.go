package services

import (
	"database/sql"
	"math"
	"testing"

	"github.com/nbri15/final-dream-tracker/app/models"
	"github.com/nbri15/final-dream-tracker/app/testutil"
)

func reconcileFixture(t *testing.T) (*sql.DB, *models.Assessment) {
	t.Helper()
	db := testutil.NewDB(t)
	year := seedYear(t, db, "2025/26", true)
	class := seedClass(t, db, "Class 5", 5)
	a := seedAssessment(t, db, class.ID, year.ID, models.TermAutumn, models.SubjectMaths, models.PaperArithmetic)
	return db, a
}

func assertReconciled(t *testing.T, db *sql.DB, assessmentID string, wantCount int, wantTotal float64) {
	t.Helper()
	count, total, numbers := questionState(t, db, assessmentID)
	if count != wantCount {
		t.Errorf("question count = %d, want %d", count, wantCount)
	}
	if math.Abs(total-wantTotal) > 1e-4 {
		t.Errorf("total = %v, want %v", total, wantTotal)
	}
	for i, n := range numbers {
		if n != i+1 {
			t.Errorf("numbers = %v, want contiguous 1..%d", numbers, count)
			break
		}
	}
}

func TestReconcileEmptySet(t *testing.T) {
	db, a := reconcileFixture(t)

	if err := ReconcileQuestionTotal(db, a.ID, 7.5); err != nil {
		t.Fatalf("ReconcileQuestionTotal: %v", err)
	}
	// 7 whole-mark questions plus a 0.5 tail.
	assertReconciled(t, db, a.ID, 8, 7.5)
}

func TestReconcileShortfallAbsorbed(t *testing.T) {
	db, a := reconcileFixture(t)
	for i := 1; i <= 9; i++ {
		seedQuestion(t, db, a.ID, i, 1.0)
	}

	if err := ReconcileQuestionTotal(db, a.ID, 9.5); err != nil {
		t.Fatalf("ReconcileQuestionTotal: %v", err)
	}
	count, total, _ := questionState(t, db, a.ID)
	if count != 9 {
		t.Errorf("count = %d, want 9 (shortfall within 1.0 absorbs, not appends)", count)
	}
	if math.Abs(total-9.5) > 1e-4 {
		t.Errorf("total = %v, want 9.5", total)
	}
}

func TestReconcileShortfallAppends(t *testing.T) {
	db, a := reconcileFixture(t)
	for i := 1; i <= 5; i++ {
		seedQuestion(t, db, a.ID, i, 1.0)
	}

	if err := ReconcileQuestionTotal(db, a.ID, 8.5); err != nil {
		t.Fatalf("ReconcileQuestionTotal: %v", err)
	}
	assertReconciled(t, db, a.ID, 9, 8.5)
}

func TestReconcileExcessTrimsTail(t *testing.T) {
	db, a := reconcileFixture(t)
	for i := 1; i <= 10; i++ {
		seedQuestion(t, db, a.ID, i, 1.0)
	}

	if err := ReconcileQuestionTotal(db, a.ID, 7.5); err != nil {
		t.Fatalf("ReconcileQuestionTotal: %v", err)
	}
	// Two whole deletions, then the boundary question shrinks to 0.5.
	assertReconciled(t, db, a.ID, 8, 7.5)
}

func TestReconcileToZeroRemovesEverything(t *testing.T) {
	db, a := reconcileFixture(t)
	for i := 1; i <= 4; i++ {
		seedQuestion(t, db, a.ID, i, 2.0)
	}

	if err := ReconcileQuestionTotal(db, a.ID, 0); err != nil {
		t.Fatalf("ReconcileQuestionTotal: %v", err)
	}
	count, total, _ := questionState(t, db, a.ID)
	if count != 0 || total != 0 {
		t.Errorf("got %d questions totalling %v, want none", count, total)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	db, a := reconcileFixture(t)
	seedQuestion(t, db, a.ID, 1, 2.0)
	seedQuestion(t, db, a.ID, 2, 3.25)

	if err := ReconcileQuestionTotal(db, a.ID, 12.75); err != nil {
		t.Fatalf("first run: %v", err)
	}
	count1, total1, _ := questionState(t, db, a.ID)

	if err := ReconcileQuestionTotal(db, a.ID, 12.75); err != nil {
		t.Fatalf("second run: %v", err)
	}
	count2, total2, _ := questionState(t, db, a.ID)

	if count1 != count2 || math.Abs(total1-total2) > 1e-4 {
		t.Errorf("second run changed the set: (%d, %v) vs (%d, %v)", count1, total1, count2, total2)
	}
	if math.Abs(total2-12.75) > 1e-4 {
		t.Errorf("total = %v, want 12.75", total2)
	}
}

func TestReconcileRejectsNegativeTotal(t *testing.T) {
	db, a := reconcileFixture(t)
	seedQuestion(t, db, a.ID, 1, 4.0)

	if err := ReconcileQuestionTotal(db, a.ID, -1); err == nil {
		t.Fatal("expected error for negative total")
	}
	count, total, _ := questionState(t, db, a.ID)
	if count != 1 || total != 4.0 {
		t.Errorf("question set changed on rejected call: %d questions totalling %v", count, total)
	}
}

func TestReconcileMissingAssessment(t *testing.T) {
	db := testutil.NewDB(t)
	if err := ReconcileQuestionTotal(db, "no-such-id", 10); err == nil {
		t.Fatal("expected error for unknown assessment")
	}
}
