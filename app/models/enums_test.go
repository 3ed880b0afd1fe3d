package models

import "testing"

func TestNormalizeSubject(t *testing.T) {
	tests := []struct {
		raw  string
		want Subject
		ok   bool
	}{
		{"maths", SubjectMaths, true},
		{" MATHS ", SubjectMaths, true},
		{"Reading", SubjectReading, true},
		{"SPaG", SubjectSpag, true},
		{"science", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeSubject(tt.raw)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NormalizeSubject(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestResultFieldFor(t *testing.T) {
	tests := []struct {
		subject Subject
		paper   Paper
		want    ResultField
		ok      bool
	}{
		{SubjectMaths, PaperArithmetic, FieldArithmetic, true},
		{SubjectMaths, PaperReasoning, FieldReasoning, true},
		{SubjectReading, PaperReading1, FieldReadingP1, true},
		{SubjectReading, PaperReading2, FieldReadingP2, true},
		{SubjectSpag, PaperSpelling, FieldSpelling, true},
		{SubjectSpag, PaperGrammar, FieldGrammar, true},
		{SubjectMaths, PaperSpelling, "", false},
		{SubjectReading, PaperArithmetic, "", false},
	}
	for _, tt := range tests {
		got, ok := ResultFieldFor(tt.subject, tt.paper)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ResultFieldFor(%s, %s) = (%q, %v), want (%q, %v)",
				tt.subject, tt.paper, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSubjectForPaper(t *testing.T) {
	for _, subject := range Subjects {
		for _, paper := range PapersFor(subject) {
			got, ok := SubjectForPaper(paper)
			if !ok || got != subject {
				t.Errorf("SubjectForPaper(%s) = (%q, %v), want (%q, true)", paper, got, ok, subject)
			}
		}
	}
	if _, ok := SubjectForPaper("Essay"); ok {
		t.Error("unknown paper should not resolve")
	}
}

func TestBandOnTrack(t *testing.T) {
	if BandWorkingTowards.OnTrack() {
		t.Error("working towards should not count as on track")
	}
	if !BandWorkingAt.OnTrack() || !BandExceeding.OnTrack() {
		t.Error("working at and exceeding should count as on track")
	}
	// Matching is on the canonical value, never substrings.
	if Band("working at are").OnTrack() {
		t.Error("non-canonical casing must not match")
	}
}
