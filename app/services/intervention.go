package services

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/nbri15/final-dream-tracker/app/database"
	"github.com/nbri15/final-dream-tracker/app/models"
)

// RecomputeFocusAreas rebuilds an intervention's focus areas from the pupil's
// scored questions on the matching assessment: each scored question buckets by
// question type, falling back to strand, then to "General", and the three
// bucket names with the lowest percentage are stored as a JSON list. Questions
// the pupil never scored do not form buckets.
func RecomputeFocusAreas(db *sql.DB, interventionID string) error {
	it, err := database.GetInterventionByID(db, interventionID)
	if err != nil {
		return err
	}
	if it == nil {
		return fmt.Errorf("intervention not found: %s", interventionID)
	}

	subject, ok := models.SubjectForPaper(it.Paper)
	if !ok {
		return fmt.Errorf("unknown paper %q", it.Paper)
	}

	a, err := database.FindAssessment(db, it.ClassID, it.AcademicYearID, it.Term, subject, it.Paper)
	if err != nil {
		return err
	}
	if a == nil {
		empty := "[]"
		it.FocusAreas = &empty
		return database.UpdateIntervention(db, it)
	}

	questions, err := database.ListAssessmentQuestions(db, a.ID)
	if err != nil {
		return err
	}
	qByID := make(map[string]*models.AssessmentQuestion, len(questions))
	for _, q := range questions {
		qByID[q.ID] = q
	}
	scores, err := database.ListScoresByAssessment(db, a.ID)
	if err != nil {
		return err
	}

	type bucket struct {
		achieved float64
		max      float64
	}
	buckets := make(map[string]*bucket)
	for _, s := range scores {
		if s.PupilID != it.PupilID {
			continue
		}
		q := qByID[s.QuestionID]
		if q == nil {
			continue
		}
		name := "General"
		if q.QuestionType != nil && strings.TrimSpace(*q.QuestionType) != "" {
			name = strings.TrimSpace(*q.QuestionType)
		} else if q.Strand != nil && strings.TrimSpace(*q.Strand) != "" {
			name = strings.TrimSpace(*q.Strand)
		}
		b := buckets[name]
		if b == nil {
			b = &bucket{}
			buckets[name] = b
		}
		b.achieved += s.Mark
		b.max += q.MaxMark
	}

	type scoredArea struct {
		name string
		pct  float64
	}
	var areas []scoredArea
	for name, b := range buckets {
		pct := 0.0
		if b.max > 0 {
			pct = round1(b.achieved / b.max * 100.0)
		}
		areas = append(areas, scoredArea{name: name, pct: pct})
	}
	sort.Slice(areas, func(i, j int) bool {
		if areas[i].pct != areas[j].pct {
			return areas[i].pct < areas[j].pct
		}
		return areas[i].name < areas[j].name
	})

	focus := make([]string, 0, 3)
	for _, area := range areas {
		if len(focus) == 3 {
			break
		}
		focus = append(focus, area.name)
	}
	if len(focus) == 0 {
		focus = []string{"General"}
	}

	raw, err := json.Marshal(focus)
	if err != nil {
		return fmt.Errorf("failed to encode focus areas: %w", err)
	}
	encoded := string(raw)
	it.FocusAreas = &encoded
	return database.UpdateIntervention(db, it)
}
