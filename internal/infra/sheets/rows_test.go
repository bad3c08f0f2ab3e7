package sheets

import (
	"errors"
	"testing"

	"github.com/aliskhannn/stepquiz-bot/internal/domain/entities"
)

func TestToRecords(t *testing.T) {
	values := [][]any{
		{"코드", " 출발어 ", "도착어"},
		{"ko-fr", "한국어"},
		{"ko-en", "한국어", "영어", "extra"},
	}

	records := toRecords(values)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0]["출발어"] != "한국어" {
		t.Errorf("expected trimmed header lookup, got %q", records[0]["출발어"])
	}
	if records[0]["도착어"] != "" {
		t.Errorf("expected missing cell to be empty, got %q", records[0]["도착어"])
	}
	if len(records[1]) != 3 {
		t.Errorf("expected cells beyond header to be dropped, got %v", records[1])
	}
}

func TestToRecords_Empty(t *testing.T) {
	if got := toRecords(nil); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestParseCatalog(t *testing.T) {
	records := []record{
		{colCode: "ko-fr", colSource: "한국어", colTarget: "프랑스어", colLink: "https://x", string(entities.PromptCheck): "Vérifier"},
		{colCode: " ", colSource: "한국어"},
	}

	courses := parseCatalog(records)
	if len(courses) != 1 {
		t.Fatalf("expected 1 course, got %d", len(courses))
	}

	c := courses[0]
	if c.Code != "ko-fr" || c.TargetLanguage != "프랑스어" || c.Link != "https://x" {
		t.Errorf("unexpected course: %+v", c)
	}
	if got := c.UIStrings.Get(entities.PromptCheck); got != "Vérifier" {
		t.Errorf("expected overridden prompt, got %q", got)
	}
	if _, ok := c.UIStrings[entities.PromptNext]; ok {
		t.Error("expected empty prompt column to be left unset")
	}
}

func TestParseCourse(t *testing.T) {
	records := []record{
		{colUnit: "1", colStep: "1", colKind: "설명", colExplanation: "인사"},
		{colUnit: "1", colStep: "1", colKind: "단어", colTerm: "bonjour", colMeaning: "안녕하세요"},
		{colUnit: "1", colStep: "1", colKind: "문장", colSourceText: "안녕하세요.", colTargetText: "Bonjour.", colTargetDecomposition: "Bon|jour"},
		{colUnit: "1", colStep: "1", colKind: "메모"},
	}

	entries := parseCourse(records)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	kinds := []entities.EntryKind{entities.KindExplanation, entities.KindWord, entities.KindSentence}
	for i, want := range kinds {
		if entries[i].Kind != want {
			t.Errorf("entry %d: expected kind %v, got %v", i, want, entries[i].Kind)
		}
	}
	if entries[2].TargetDecomposition != "Bon|jour" {
		t.Errorf("unexpected decomposition %q", entries[2].TargetDecomposition)
	}
	if entries[1].Key() != (entities.StepKey{Unit: "1", Step: "1"}) {
		t.Errorf("unexpected key %v", entries[1].Key())
	}
}

func TestParseValuesLink(t *testing.T) {
	tests := []struct {
		name      string
		link      string
		wantID    string
		wantRange string
		wantErr   bool
	}{
		{
			name:      "encoded range",
			link:      "https://sheets.googleapis.com/v4/spreadsheets/abc123/values/%ED%94%84%EB%9E%91%EC%8A%A4%EC%96%B4?key=k",
			wantID:    "abc123",
			wantRange: "프랑스어",
		},
		{
			name:      "plain range",
			link:      "https://sheets.googleapis.com/v4/spreadsheets/abc123/values/Sheet1!A1:Z",
			wantID:    "abc123",
			wantRange: "Sheet1!A1:Z",
		},
		{
			name:    "missing values segment",
			link:    "https://sheets.googleapis.com/v4/spreadsheets/abc123",
			wantErr: true,
		},
		{
			name:    "not a url",
			link:    "://",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, rng, err := parseValuesLink(tt.link)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidLink) {
					t.Fatalf("expected ErrInvalidLink, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tt.wantID || rng != tt.wantRange {
				t.Errorf("got (%q, %q), want (%q, %q)", id, rng, tt.wantID, tt.wantRange)
			}
		})
	}
}
