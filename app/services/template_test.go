package services

import (
	"database/sql"
	"testing"

	"github.com/nbri15/final-dream-tracker/app/database"
	"github.com/nbri15/final-dream-tracker/app/models"
	"github.com/nbri15/final-dream-tracker/app/testutil"
)

func seedTemplate(t *testing.T, db *sql.DB, yearID string, yearGroup, version int, active bool) *models.PaperTemplate {
	t.Helper()
	tpl := &models.PaperTemplate{
		Subject:        models.SubjectMaths,
		Paper:          models.PaperArithmetic,
		AcademicYearID: yearID,
		YearGroup:      yearGroup,
		Term:           models.TermAutumn,
		Version:        version,
		IsActive:       active,
	}
	if err := database.CreateTemplate(db, tpl); err != nil {
		t.Fatalf("seed template v%d: %v", version, err)
	}
	return tpl
}

func activeCount(t *testing.T, db *sql.DB, tpl *models.PaperTemplate) (int, string) {
	t.Helper()
	templates, err := database.ListTemplatesInScope(db, tpl.Subject, tpl.Paper, tpl.AcademicYearID, tpl.YearGroup, tpl.Term)
	if err != nil {
		t.Fatalf("ListTemplatesInScope: %v", err)
	}
	count := 0
	id := ""
	for _, cand := range templates {
		if cand.IsActive {
			count++
			id = cand.ID
		}
	}
	return count, id
}

func TestCloneTemplate(t *testing.T) {
	db := testutil.NewDB(t)
	year := seedYear(t, db, "2025/26", true)
	src := seedTemplate(t, db, year.ID, 4, 1, true)
	for i := 1; i <= 3; i++ {
		tq := &models.PaperTemplateQuestion{TemplateID: src.ID, Number: i, MaxMark: 2.0}
		if err := database.CreateTemplateQuestion(db, tq); err != nil {
			t.Fatalf("seed template question: %v", err)
		}
	}

	clone, err := CloneTemplate(db, src.ID, true)
	if err != nil {
		t.Fatalf("CloneTemplate: %v", err)
	}
	if clone.Version != 2 {
		t.Errorf("clone version = %d, want 2", clone.Version)
	}

	questions, err := database.ListTemplateQuestions(db, clone.ID)
	if err != nil {
		t.Fatalf("ListTemplateQuestions: %v", err)
	}
	if len(questions) != 3 {
		t.Errorf("clone question count = %d, want 3", len(questions))
	}

	count, id := activeCount(t, db, src)
	if count != 1 || id != clone.ID {
		t.Errorf("active in scope = (%d, %s), want exactly the clone", count, id)
	}
}

func TestCloneTemplateWithoutActivation(t *testing.T) {
	db := testutil.NewDB(t)
	year := seedYear(t, db, "2025/26", true)
	src := seedTemplate(t, db, year.ID, 4, 1, true)

	clone, err := CloneTemplate(db, src.ID, false)
	if err != nil {
		t.Fatalf("CloneTemplate: %v", err)
	}
	if clone.IsActive {
		t.Error("clone should start inactive")
	}
	count, id := activeCount(t, db, src)
	if count != 1 || id != src.ID {
		t.Errorf("active in scope = (%d, %s), want the source untouched", count, id)
	}
}

func TestCloneTemplateOfOlderVersion(t *testing.T) {
	db := testutil.NewDB(t)
	year := seedYear(t, db, "2025/26", true)
	v1 := seedTemplate(t, db, year.ID, 4, 1, false)
	seedTemplate(t, db, year.ID, 4, 2, true)

	// Cloning a superseded version must not collide with the version that
	// replaced it.
	clone, err := CloneTemplate(db, v1.ID, false)
	if err != nil {
		t.Fatalf("CloneTemplate: %v", err)
	}
	if clone.Version != 3 {
		t.Errorf("clone version = %d, want 3", clone.Version)
	}
}

func TestPublishTemplateSingleActive(t *testing.T) {
	db := testutil.NewDB(t)
	year := seedYear(t, db, "2025/26", true)
	v1 := seedTemplate(t, db, year.ID, 5, 1, true)
	seedTemplate(t, db, year.ID, 5, 2, true)
	v3 := seedTemplate(t, db, year.ID, 5, 3, false)

	published, err := PublishTemplate(db, v3.ID)
	if err != nil {
		t.Fatalf("PublishTemplate: %v", err)
	}
	if !published.IsActive {
		t.Error("published template not active")
	}

	count, id := activeCount(t, db, v1)
	if count != 1 || id != v3.ID {
		t.Errorf("active in scope = (%d, %s), want only v3", count, id)
	}

	// Resolution picks the published one.
	got, err := ActiveTemplate(db, v1.Subject, v1.Paper, year.ID, 5, v1.Term)
	if err != nil {
		t.Fatalf("ActiveTemplate: %v", err)
	}
	if got == nil || got.ID != v3.ID {
		t.Errorf("ActiveTemplate = %v, want v3", got)
	}
}

func TestCopyTemplateToNextYear(t *testing.T) {
	db := testutil.NewDB(t)
	year := seedYear(t, db, "2025/26", true)
	src := seedTemplate(t, db, year.ID, 6, 3, true)
	tq := &models.PaperTemplateQuestion{TemplateID: src.ID, Number: 1, MaxMark: 5.0}
	if err := database.CreateTemplateQuestion(db, tq); err != nil {
		t.Fatalf("seed template question: %v", err)
	}

	dst, err := CopyTemplateToNextYear(db, src.ID)
	if err != nil {
		t.Fatalf("CopyTemplateToNextYear: %v", err)
	}

	nextYear, err := database.GetYearByLabel(db, "2026/27")
	if err != nil {
		t.Fatalf("GetYearByLabel: %v", err)
	}
	if nextYear == nil {
		t.Fatal("next year was not created")
	}
	if nextYear.IsCurrent {
		t.Error("copying a template must not change the current year")
	}
	if dst.AcademicYearID != nextYear.ID {
		t.Errorf("copy year = %s, want %s", dst.AcademicYearID, nextYear.ID)
	}
	if dst.Version != 1 {
		t.Errorf("copy version = %d, want 1 (fresh scope)", dst.Version)
	}
	if !dst.IsActive {
		t.Error("copy should be active in the destination scope")
	}

	questions, err := database.ListTemplateQuestions(db, dst.ID)
	if err != nil {
		t.Fatalf("ListTemplateQuestions: %v", err)
	}
	if len(questions) != 1 || questions[0].MaxMark != 5.0 {
		t.Errorf("copied questions = %v, want the source's single question", questions)
	}

	// Source scope untouched.
	count, id := activeCount(t, db, src)
	if count != 1 || id != src.ID {
		t.Errorf("source scope active = (%d, %s), want the source", count, id)
	}
}
