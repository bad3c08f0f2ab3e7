// Package entities contains domain entities used across the application.
package entities

// EntryKind is the type of a course row.
type EntryKind string

const (
	KindWord        EntryKind = "word"        // vocabulary item
	KindSentence    EntryKind = "sentence"    // example sentence with blanks and decompositions
	KindExplanation EntryKind = "explanation" // lesson text of a step
)

// CourseEntry is one row of course content.
// Entries of the same (unit, step) are stored contiguously and their order is meaningful.
type CourseEntry struct {
	Unit string    `json:"unit"`
	Step string    `json:"step"`
	Kind EntryKind `json:"kind"`

	// Word fields.
	Term    string `json:"term,omitempty"`    // word in the target language
	Meaning string `json:"meaning,omitempty"` // meaning in the source language

	// Sentence fields.
	SourceText          string `json:"source_text,omitempty"`
	TargetText          string `json:"target_text,omitempty"`
	SourceTextBlanked   string `json:"source_text_blanked,omitempty"`   // bracket-marked blank-able spans
	TargetTextBlanked   string `json:"target_text_blanked,omitempty"`   // bracket-marked blank-able spans
	SourceDecomposition string `json:"source_decomposition,omitempty"` // pipe-delimited pieces
	TargetDecomposition string `json:"target_decomposition,omitempty"` // pipe-delimited pieces

	// Explanation fields.
	Explanation string `json:"explanation,omitempty"`
}

// Key returns the step the entry belongs to.
func (e CourseEntry) Key() StepKey {
	return StepKey{Unit: e.Unit, Step: e.Step}
}

// StepKey identifies a step inside a course.
type StepKey struct {
	Unit string `json:"unit"`
	Step string `json:"step"`
}

// String returns the "unit-step" form used in titles and logs.
func (k StepKey) String() string {
	return k.Unit + "-" + k.Step
}

// Steps returns the ordered list of distinct steps.
// A new step begins whenever the unit or the step differs from the previous row.
func Steps(entries []CourseEntry) []StepKey {
	var keys []StepKey
	for i, e := range entries {
		if i == 0 || e.Key() != entries[i-1].Key() {
			keys = append(keys, e.Key())
		}
	}
	return keys
}

// StepIndex returns the position of key in the ordered step list of entries, or -1.
func StepIndex(entries []CourseEntry, key StepKey) int {
	for i, k := range Steps(entries) {
		if k == key {
			return i
		}
	}
	return -1
}

// Explanation returns the lesson text of the step, if any.
func Explanation(entries []CourseEntry, key StepKey) (string, bool) {
	for _, e := range entries {
		if e.Kind == KindExplanation && e.Key() == key {
			return e.Explanation, true
		}
	}
	return "", false
}

// Course describes one catalog row.
type Course struct {
	Code           string    `json:"code"`            // e.g. "ko-fr"
	SourceLanguage string    `json:"source_language"` // language the learner already speaks
	TargetLanguage string    `json:"target_language"` // language being learned
	Link           string    `json:"link"`            // Sheets values URL of the course rows
	UIStrings      UIStrings `json:"ui_strings,omitempty"`
}
