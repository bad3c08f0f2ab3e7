package service

import (
	"errors"
	"testing"

	"github.com/aliskhannn/stepquiz-bot/internal/domain/entities"
)

var testStep = entities.StepKey{Unit: "1", Step: "1"}

func newTestSession(t *testing.T, words, sentences int, seed int64) *Session {
	t.Helper()

	course := stepEntries("1", "1", words, sentences)
	rng := newTestRand(seed)
	items := NewSessionBuilder(rng).Build(course, testStep, nil)

	s, err := NewSession("sid", testStep, items, course, NewQuestionGenerator(rng), NewAnswerGrader())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func TestSession_CompletesAfterAllItems(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		s := newTestSession(t, 5, 12, seed)
		if s.Total() != MaxSessionItems || s.WordCount() != 5 {
			t.Fatalf("seed %d: expected 15 items with 5 words, got %d/%d", seed, s.Total(), s.WordCount())
		}

		for i := 0; i < s.Total(); i++ {
			if s.Position() != i || s.Status() != StatusAwaitingInput {
				t.Fatalf("seed %d: expected awaiting input at %d, got %s at %d", seed, i, s.Status(), s.Position())
			}

			q, err := s.Current()
			if err != nil {
				t.Fatalf("seed %d: current: %v", seed, err)
			}

			if s.InFlashcardRegion() {
				if q.Variant != entities.VariantFlashcard {
					t.Fatalf("seed %d: expected flashcard at %d, got %s", seed, i, q.Variant)
				}
			} else {
				if err := s.Submit(correctInput(q)); err != nil {
					t.Fatalf("seed %d: submit: %v", seed, err)
				}
				res, err := s.Check()
				if err != nil {
					t.Fatalf("seed %d: check: %v", seed, err)
				}
				if !res.IsCorrect {
					t.Fatalf("seed %d: correct input graded wrong for %s: %+v", seed, q.Variant, q)
				}
				if s.Status() != StatusRevealed {
					t.Fatalf("seed %d: expected revealed, got %s", seed, s.Status())
				}
			}

			if err := s.Advance(); err != nil {
				t.Fatalf("seed %d: advance: %v", seed, err)
			}
		}

		if s.Status() != StatusComplete {
			t.Fatalf("seed %d: expected complete, got %s", seed, s.Status())
		}

		res, err := s.Result()
		if err != nil {
			t.Fatalf("seed %d: result: %v", seed, err)
		}
		if res.CorrectCount != 10 || res.TotalItems != 15 || res.Step != testStep {
			t.Errorf("seed %d: unexpected result %+v", seed, res)
		}
	}
}

func TestSession_WrongAnswersAreNotCounted(t *testing.T) {
	s := newTestSession(t, 0, 3, 1)

	for i := 0; i < s.Total(); i++ {
		if err := s.Submit(entities.Input{Text: "wrong"}); err != nil {
			t.Fatalf("submit: %v", err)
		}
		res, err := s.Check()
		if err != nil {
			t.Fatalf("check: %v", err)
		}
		if res.IsCorrect {
			t.Fatalf("wrong input graded correct at %d", i)
		}
		if s.LastGrade().IsCorrect {
			t.Fatalf("last grade reports correct")
		}
		if err := s.Advance(); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}

	res, _ := s.Result()
	if res.CorrectCount != 0 {
		t.Errorf("expected 0 correct, got %d", res.CorrectCount)
	}
}

func TestSession_InvalidTransitions(t *testing.T) {
	t.Run("check on flashcard", func(t *testing.T) {
		s := newTestSession(t, 1, 1, 1)
		if _, err := s.Check(); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("expected ErrInvalidTransition, got %v", err)
		}
		if err := s.Submit(entities.Input{Text: "x"}); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("advance before check", func(t *testing.T) {
		s := newTestSession(t, 0, 2, 1)
		if err := s.Advance(); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("expected ErrInvalidTransition, got %v", err)
		}
		if s.Position() != 0 {
			t.Errorf("position moved to %d", s.Position())
		}
	})

	t.Run("check twice", func(t *testing.T) {
		s := newTestSession(t, 0, 2, 1)
		if _, err := s.Check(); err != nil {
			t.Fatalf("check: %v", err)
		}
		if _, err := s.Check(); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("expected ErrInvalidTransition, got %v", err)
		}
		if s.CorrectCount() != 0 {
			t.Errorf("expected no correct answers, got %d", s.CorrectCount())
		}
	})

	t.Run("result before complete", func(t *testing.T) {
		s := newTestSession(t, 1, 0, 1)
		if _, err := s.Result(); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("anything after complete", func(t *testing.T) {
		s := newTestSession(t, 1, 0, 1)
		if err := s.Advance(); err != nil {
			t.Fatalf("advance: %v", err)
		}
		if s.Status() != StatusComplete {
			t.Fatalf("expected complete, got %s", s.Status())
		}
		if err := s.Advance(); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("advance: expected ErrInvalidTransition, got %v", err)
		}
		if _, err := s.Current(); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("current: expected ErrInvalidTransition, got %v", err)
		}
	})
}

func TestSession_EmptyItems(t *testing.T) {
	_, err := NewSession("sid", testStep, nil, nil, NewQuestionGenerator(newTestRand(1)), NewAnswerGrader())
	if !errors.Is(err, ErrEmptyStep) {
		t.Errorf("expected ErrEmptyStep, got %v", err)
	}
}

type scriptedGenerator struct {
	questions []entities.Question
	errAt     int
	calls     int
}

func (g *scriptedGenerator) Generate(item entities.TestItem, _ []entities.CourseEntry) (entities.Question, error) {
	g.calls++
	if item.Rank == g.errAt {
		return entities.Question{}, ErrMalformedContent
	}
	return g.questions[item.Rank], nil
}

func reassemblyItems(n int) []entities.TestItem {
	items := make([]entities.TestItem, n)
	for i := range items {
		items[i] = entities.TestItem{Entry: sentence("1", "1", i), Rank: i}
	}
	return items
}

func TestSession_ReassemblySelection(t *testing.T) {
	q := entities.Question{
		Variant:      entities.VariantTargetSentenceReassembly,
		Pieces:       []string{"here", "I", "am"},
		AnswerPieces: []string{"I", "am", "here"},
	}
	gen := &scriptedGenerator{questions: []entities.Question{q}, errAt: -1}

	s, err := NewSession("sid", testStep, reassemblyItems(1), nil, gen, NewAnswerGrader())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	for _, i := range []int{1, 0} {
		if err := s.SelectPiece(i); err != nil {
			t.Fatalf("select %d: %v", i, err)
		}
	}
	if err := s.SelectPiece(1); !errors.Is(err, ErrPieceUsed) {
		t.Errorf("expected ErrPieceUsed, got %v", err)
	}
	if err := s.SelectPiece(3); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition for out of range piece, got %v", err)
	}

	if err := s.UndoPiece(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got := s.Selected().Pieces; len(got) != 1 || got[0].Text != "I" {
		t.Fatalf("unexpected selection after undo: %+v", got)
	}

	_ = s.SelectPiece(2)
	_ = s.SelectPiece(0)

	res, err := s.Check()
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !res.IsCorrect {
		t.Errorf("expected correct, got %+v", res)
	}

	if err := s.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if len(s.Selected().Pieces) != 0 {
		t.Error("selection not cleared on advance")
	}
}

func TestSession_QuestionsAreGeneratedOnce(t *testing.T) {
	qs := []entities.Question{
		{Variant: entities.VariantTargetSentenceFreeResponse, Answer: "a"},
		{Variant: entities.VariantTargetSentenceFreeResponse, Answer: "b"},
	}
	gen := &scriptedGenerator{questions: qs, errAt: -1}

	s, err := NewSession("sid", testStep, reassemblyItems(2), nil, gen, NewAnswerGrader())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := s.Current(); err != nil {
			t.Fatalf("current: %v", err)
		}
	}
	if gen.calls != 1 {
		t.Errorf("expected 1 generation, got %d", gen.calls)
	}
}

func TestSession_GenerationErrorKeepsState(t *testing.T) {
	qs := []entities.Question{
		{Variant: entities.VariantTargetSentenceFreeResponse, Answer: "a"},
		{},
	}
	gen := &scriptedGenerator{questions: qs, errAt: 1}

	s, err := NewSession("sid", testStep, reassemblyItems(2), nil, gen, NewAnswerGrader())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	_ = s.Submit(entities.Input{Text: "a"})
	if _, err := s.Check(); err != nil {
		t.Fatalf("check: %v", err)
	}

	if err := s.Advance(); !errors.Is(err, ErrMalformedContent) {
		t.Fatalf("expected ErrMalformedContent, got %v", err)
	}
	if s.Position() != 0 || s.Status() != StatusRevealed {
		t.Errorf("state changed to %s at %d", s.Status(), s.Position())
	}
	if s.CorrectCount() != 1 {
		t.Errorf("expected 1 correct, got %d", s.CorrectCount())
	}
}
