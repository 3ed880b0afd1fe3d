package models

import "strings"

// Term is one of the three assessment windows in an academic year
type Term string

const (
	TermAutumn Term = "Autumn"
	TermSpring Term = "Spring"
	TermSummer Term = "Summer"
)

// Terms lists the terms in calendar order
var Terms = []Term{TermAutumn, TermSpring, TermSummer}

// Valid reports whether t is a recognised term
func (t Term) Valid() bool {
	return t == TermAutumn || t == TermSpring || t == TermSummer
}

// Subject is an assessed subject key (stored lowercase)
type Subject string

const (
	SubjectMaths   Subject = "maths"
	SubjectReading Subject = "reading"
	SubjectSpag    Subject = "spag"
)

// Subjects lists all assessed subjects
var Subjects = []Subject{SubjectMaths, SubjectReading, SubjectSpag}

// NormalizeSubject lowercases and validates a raw subject value
func NormalizeSubject(raw string) (Subject, bool) {
	s := Subject(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Subjects {
		if s == known {
			return s, true
		}
	}
	return "", false
}

// DisplayName returns the human-facing subject label
func (s Subject) DisplayName() string {
	switch s {
	case SubjectMaths:
		return "Maths"
	case SubjectReading:
		return "Reading"
	case SubjectSpag:
		return "SPaG"
	}
	return string(s)
}

// Paper is one of the two components of a subject's termly assessment
type Paper string

const (
	PaperArithmetic Paper = "Arithmetic"
	PaperReasoning  Paper = "Reasoning"
	PaperReading1   Paper = "Paper 1"
	PaperReading2   Paper = "Paper 2"
	PaperSpelling   Paper = "Spelling"
	PaperGrammar    Paper = "Grammar"
)

// PapersFor returns the two papers that make up a subject's termly assessment
func PapersFor(subject Subject) [2]Paper {
	switch subject {
	case SubjectReading:
		return [2]Paper{PaperReading1, PaperReading2}
	case SubjectSpag:
		return [2]Paper{PaperSpelling, PaperGrammar}
	default:
		return [2]Paper{PaperArithmetic, PaperReasoning}
	}
}

// ResultField names the Result score column a (subject, paper) pair feeds
type ResultField string

const (
	FieldArithmetic ResultField = "arithmetic"
	FieldReasoning  ResultField = "reasoning"
	FieldReadingP1  ResultField = "reading_p1"
	FieldReadingP2  ResultField = "reading_p2"
	FieldSpelling   ResultField = "spelling"
	FieldGrammar    ResultField = "grammar"
)

// SubjectPaper keys the single shared (subject, paper) lookup table
type SubjectPaper struct {
	Subject Subject
	Paper   Paper
}

// resultFields is the one place the (subject, paper) -> column mapping is defined
var resultFields = map[SubjectPaper]ResultField{
	{SubjectMaths, PaperArithmetic}: FieldArithmetic,
	{SubjectMaths, PaperReasoning}:  FieldReasoning,
	{SubjectReading, PaperReading1}: FieldReadingP1,
	{SubjectReading, PaperReading2}: FieldReadingP2,
	{SubjectSpag, PaperSpelling}:    FieldSpelling,
	{SubjectSpag, PaperGrammar}:     FieldGrammar,
}

// ResultFieldFor resolves the Result column for a (subject, paper) pair
func ResultFieldFor(subject Subject, paper Paper) (ResultField, bool) {
	f, ok := resultFields[SubjectPaper{subject, paper}]
	return f, ok
}

// SubjectForPaper resolves which subject a paper belongs to
func SubjectForPaper(paper Paper) (Subject, bool) {
	for sp := range resultFields {
		if sp.Paper == paper {
			return sp.Subject, true
		}
	}
	return "", false
}

// Band is one of the three ordered attainment categories.
// Consumers compare against these canonical values, never substrings.
type Band string

const (
	BandWorkingTowards Band = "Working towards ARE"
	BandWorkingAt      Band = "Working at ARE"
	BandExceeding      Band = "Exceeding ARE"
)

// OnTrack reports whether the band counts as at-or-above age related expectations
func (b Band) OnTrack() bool {
	return b == BandWorkingAt || b == BandExceeding
}

// WritingBand is a teacher-judgement writing band
type WritingBand string

const (
	WritingWorkingTowards WritingBand = "working_towards"
	WritingWorkingAt      WritingBand = "working_at"
	WritingExceeding      WritingBand = "exceeding"
)

// Valid reports whether w is a recognised writing band
func (w WritingBand) Valid() bool {
	return w == WritingWorkingTowards || w == WritingWorkingAt || w == WritingExceeding
}
