package services

import (
	"database/sql"
	"fmt"

	"github.com/nbri15/final-dream-tracker/app/database"
	"github.com/nbri15/final-dream-tracker/app/models"
)

// ReconcileQuestionTotal makes the sum of an assessment's question maxima
// equal requiredTotal, minimising structural churn, then renumbers questions
// 1..N. The whole effect is one transaction and re-running with the same
// total is a no-op.
func ReconcileQuestionTotal(db *sql.DB, assessmentID string, requiredTotal float64) error {
	if requiredTotal < 0 {
		return fmt.Errorf("required total cannot be negative: %v", requiredTotal)
	}

	a, err := database.GetAssessmentByID(db, assessmentID)
	if err != nil {
		return err
	}
	if a == nil {
		return fmt.Errorf("assessment not found: %s", assessmentID)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := reconcileQuestions(tx, assessmentID, requiredTotal); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reconciliation: %w", err)
	}
	return nil
}

func reconcileQuestions(q database.Queryer, assessmentID string, requiredTotal float64) error {
	questions, err := database.ListAssessmentQuestions(q, assessmentID)
	if err != nil {
		return err
	}

	// Empty set: synthesise whole-mark questions plus a fractional tail.
	if len(questions) == 0 {
		whole := int(requiredTotal)
		for i := 1; i <= whole; i++ {
			aq := &models.AssessmentQuestion{AssessmentID: assessmentID, Number: i, MaxMark: 1.0}
			if err := database.CreateAssessmentQuestion(q, aq); err != nil {
				return err
			}
		}
		if remainder := round4(requiredTotal - float64(whole)); remainder > 0 {
			aq := &models.AssessmentQuestion{AssessmentID: assessmentID, Number: whole + 1, MaxMark: remainder}
			if err := database.CreateAssessmentQuestion(q, aq); err != nil {
				return err
			}
		}
		return nil
	}

	total := 0.0
	for _, aq := range questions {
		total += aq.MaxMark
	}

	switch {
	case total < requiredTotal:
		remaining := round4(requiredTotal - total)
		if remaining <= 1.0 {
			// Small shortfall: absorb into the last question.
			last := questions[len(questions)-1]
			if err := database.UpdateQuestionMaxMark(q, last.ID, round4(last.MaxMark+remaining)); err != nil {
				return err
			}
		} else {
			lastNo := questions[len(questions)-1].Number
			for remaining > 1.0 {
				lastNo++
				aq := &models.AssessmentQuestion{AssessmentID: assessmentID, Number: lastNo, MaxMark: 1.0}
				if err := database.CreateAssessmentQuestion(q, aq); err != nil {
					return err
				}
				remaining = round4(remaining - 1.0)
			}
			if remaining > 0 {
				aq := &models.AssessmentQuestion{AssessmentID: assessmentID, Number: lastNo + 1, MaxMark: remaining}
				if err := database.CreateAssessmentQuestion(q, aq); err != nil {
					return err
				}
			}
		}

	case total > requiredTotal:
		// Delete from the tail until the next deletion would overshoot,
		// then shrink exactly one boundary question to close the gap.
		running := total
		for idx := len(questions) - 1; idx >= 0 && running > requiredTotal; idx-- {
			aq := questions[idx]
			if running-aq.MaxMark >= requiredTotal {
				running = round4(running - aq.MaxMark)
				if err := database.DeleteAssessmentQuestion(q, aq.ID); err != nil {
					return err
				}
			} else {
				newMax := round4(requiredTotal - (running - aq.MaxMark))
				if err := database.UpdateQuestionMaxMark(q, aq.ID, newMax); err != nil {
					return err
				}
				break
			}
		}
	}

	// Renumber 1..N regardless of which branch ran.
	remaining, err := database.ListAssessmentQuestions(q, assessmentID)
	if err != nil {
		return err
	}
	for i, aq := range remaining {
		if aq.Number != i+1 {
			if err := database.UpdateQuestionNumber(q, aq.ID, i+1); err != nil {
				return err
			}
		}
	}
	return nil
}
