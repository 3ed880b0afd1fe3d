package services

import (
	"database/sql"
	"testing"

	"github.com/nbri15/final-dream-tracker/app/database"
	"github.com/nbri15/final-dream-tracker/app/models"
)

func fp(v float64) *float64 { return &v }

func ip(v int) *int { return &v }

func seedYear(t *testing.T, db *sql.DB, label string, current bool) *models.AcademicYear {
	t.Helper()
	year := &models.AcademicYear{Label: label, IsCurrent: current}
	if err := database.CreateYear(db, year); err != nil {
		t.Fatalf("seed year %s: %v", label, err)
	}
	return year
}

func seedClass(t *testing.T, db *sql.DB, name string, yearGroup int) *models.SchoolClass {
	t.Helper()
	class := &models.SchoolClass{Name: name, YearGroup: ip(yearGroup)}
	if err := database.CreateClass(db, class); err != nil {
		t.Fatalf("seed class %s: %v", name, err)
	}
	return class
}

func seedPupil(t *testing.T, db *sql.DB, classID, name string) *models.Pupil {
	t.Helper()
	pupil := &models.Pupil{ClassID: classID, Name: name}
	if err := database.CreatePupil(db, pupil); err != nil {
		t.Fatalf("seed pupil %s: %v", name, err)
	}
	return pupil
}

func seedAssessment(t *testing.T, db *sql.DB, classID, yearID string, term models.Term, subject models.Subject, paper models.Paper) *models.Assessment {
	t.Helper()
	a := &models.Assessment{
		ClassID:        classID,
		AcademicYearID: yearID,
		Term:           term,
		Subject:        subject,
		Paper:          paper,
		Title:          "seeded",
	}
	if err := database.CreateAssessment(db, a); err != nil {
		t.Fatalf("seed assessment: %v", err)
	}
	return a
}

func seedQuestion(t *testing.T, db *sql.DB, assessmentID string, number int, maxMark float64) *models.AssessmentQuestion {
	t.Helper()
	aq := &models.AssessmentQuestion{AssessmentID: assessmentID, Number: number, MaxMark: maxMark}
	if err := database.CreateAssessmentQuestion(db, aq); err != nil {
		t.Fatalf("seed question %d: %v", number, err)
	}
	return aq
}

func questionState(t *testing.T, db *sql.DB, assessmentID string) (count int, total float64, numbers []int) {
	t.Helper()
	questions, err := database.ListAssessmentQuestions(db, assessmentID)
	if err != nil {
		t.Fatalf("list questions: %v", err)
	}
	for _, aq := range questions {
		total += aq.MaxMark
		numbers = append(numbers, aq.Number)
	}
	return len(questions), total, numbers
}
