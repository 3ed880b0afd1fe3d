package services

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/nbri15/final-dream-tracker/app/config"
	"github.com/nbri15/final-dream-tracker/app/database"
	"github.com/nbri15/final-dream-tracker/app/models"
)

var yearLabelPattern = regexp.MustCompile(`^(\d{4})/(\d{2})$`)

// NextYearLabel rolls an academic-year label forward, "2025/26" becoming
// "2026/27". A label that does not match the YYYY/YY shape falls back to
// the calendar year pair derived from now.
func NextYearLabel(label string, now time.Time) string {
	m := yearLabelPattern.FindStringSubmatch(label)
	if m != nil {
		start, err := strconv.Atoi(m[1])
		if err == nil {
			next := start + 1
			return fmt.Sprintf("%d/%02d", next, (next+1)%100)
		}
	}
	y := now.Year()
	return fmt.Sprintf("%d/%02d", y, (y+1)%100)
}

// EnsureDefaultYear guarantees a current academic year exists, creating the
// configured default label on first boot. Returns the current year.
func EnsureDefaultYear(q database.Queryer) (*models.AcademicYear, error) {
	year, err := database.GetCurrentYear(q)
	if err != nil {
		return nil, err
	}
	if year != nil {
		return year, nil
	}

	year = &models.AcademicYear{
		Label:     config.DefaultYearLabel,
		IsCurrent: true,
	}
	if err := database.CreateYear(q, year); err != nil {
		return nil, fmt.Errorf("failed to create default academic year: %w", err)
	}
	return year, nil
}

// GetOrCreateYearByLabel returns the year with the given label, creating a
// non-current one when absent.
func GetOrCreateYearByLabel(q database.Queryer, label string) (*models.AcademicYear, error) {
	year, err := database.GetYearByLabel(q, label)
	if err != nil {
		return nil, err
	}
	if year != nil {
		return year, nil
	}
	year = &models.AcademicYear{Label: label}
	if err := database.CreateYear(q, year); err != nil {
		return nil, fmt.Errorf("failed to create academic year %q: %w", label, err)
	}
	return year, nil
}
