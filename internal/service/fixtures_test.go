package service

import (
	"fmt"
	"math/rand"

	"github.com/aliskhannn/stepquiz-bot/internal/domain/entities"
)

func newTestRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func word(unit, step, term, meaning string) entities.CourseEntry {
	return entities.CourseEntry{Unit: unit, Step: step, Kind: entities.KindWord, Term: term, Meaning: meaning}
}

// sentence builds a well-formed sentence row whose answers are easy to derive.
func sentence(unit, step string, n int) entities.CourseEntry {
	return entities.CourseEntry{
		Unit:                unit,
		Step:                step,
		Kind:                entities.KindSentence,
		SourceText:          fmt.Sprintf("원문 %d.", n),
		TargetText:          fmt.Sprintf("Phrase %d.", n),
		SourceTextBlanked:   fmt.Sprintf("[원문] %d.", n),
		TargetTextBlanked:   fmt.Sprintf("[Phrase] %d.", n),
		SourceDecomposition: fmt.Sprintf("원문|%d.", n),
		TargetDecomposition: fmt.Sprintf("Phrase|%d.", n),
	}
}

func explanation(unit, step, text string) entities.CourseEntry {
	return entities.CourseEntry{Unit: unit, Step: step, Kind: entities.KindExplanation, Explanation: text}
}

// stepEntries returns w words and s sentences of one step, preceded by its explanation.
func stepEntries(unit, step string, w, s int) []entities.CourseEntry {
	entries := []entities.CourseEntry{explanation(unit, step, "lesson "+unit+"-"+step)}
	for i := 0; i < w; i++ {
		entries = append(entries, word(unit, step, fmt.Sprintf("mot%d", i), fmt.Sprintf("단어%d", i)))
	}
	for i := 0; i < s; i++ {
		entries = append(entries, sentence(unit, step, i))
	}
	return entries
}

// correctInput returns a submission that grades correct for q.
func correctInput(q entities.Question) entities.Input {
	if !q.Variant.IsReassembly() {
		return entities.Input{Text: q.Answer}
	}

	used := make(map[int]bool)
	var pieces []entities.PieceRef
	for _, want := range q.AnswerPieces {
		for i, p := range q.Pieces {
			if !used[i] && p == want {
				used[i] = true
				pieces = append(pieces, entities.PieceRef{Index: i, Text: p})
				break
			}
		}
	}
	return entities.Input{Pieces: pieces}
}
