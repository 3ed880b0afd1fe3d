package services

import (
	"testing"
	"time"

	"github.com/nbri15/final-dream-tracker/app/config"
	"github.com/nbri15/final-dream-tracker/app/database"
	"github.com/nbri15/final-dream-tracker/app/testutil"
)

func TestNextYearLabel(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		label string
		want  string
	}{
		{"2025/26", "2026/27"},
		{"2026/27", "2027/28"},
		{"1998/99", "1999/00"},
		{"1999/00", "2000/01"},
		{"Year 2025", "2026/27"}, // malformed, calendar fallback
		{"", "2026/27"},
	}
	for _, tt := range tests {
		if got := NextYearLabel(tt.label, now); got != tt.want {
			t.Errorf("NextYearLabel(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestEnsureDefaultYear(t *testing.T) {
	db := testutil.NewDB(t)

	year, err := EnsureDefaultYear(db)
	if err != nil {
		t.Fatalf("EnsureDefaultYear: %v", err)
	}
	if year.Label != config.DefaultYearLabel {
		t.Errorf("label = %q, want %q", year.Label, config.DefaultYearLabel)
	}
	if !year.IsCurrent {
		t.Error("default year should be current")
	}

	again, err := EnsureDefaultYear(db)
	if err != nil {
		t.Fatalf("EnsureDefaultYear second call: %v", err)
	}
	if again.ID != year.ID {
		t.Error("second call created a new year")
	}

	years, err := database.ListYears(db)
	if err != nil {
		t.Fatalf("ListYears: %v", err)
	}
	if len(years) != 1 {
		t.Errorf("year count = %d, want 1", len(years))
	}
}
