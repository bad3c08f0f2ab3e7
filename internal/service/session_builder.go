package service

import (
	"math/rand"

	"github.com/aliskhannn/stepquiz-bot/internal/domain/entities"
)

// MaxSessionItems is the upper bound of items in one step test.
const MaxSessionItems = 15

// SessionBuilder selects the items of a step test.
type SessionBuilder struct {
	rng *rand.Rand
}

// NewSessionBuilder creates a new SessionBuilder.
func NewSessionBuilder(rng *rand.Rand) *SessionBuilder {
	return &SessionBuilder{rng: rng}
}

// Build returns the ordered items for step: shuffled words first, then shuffled sentences.
// Words are skipped when step is not strictly after lastCompleted in course order.
// An empty result means there is nothing to test.
func (b *SessionBuilder) Build(
	entries []entities.CourseEntry,
	step entities.StepKey,
	lastCompleted *entities.StepKey,
) []entities.TestItem {
	var words, sentences []entities.CourseEntry
	for _, e := range entries {
		if e.Key() != step {
			continue
		}
		switch e.Kind {
		case entities.KindWord:
			words = append(words, e)
		case entities.KindSentence:
			sentences = append(sentences, e)
		}
	}

	if !isUnreviewed(entries, step, lastCompleted) {
		words = nil
	}

	words = takeFirst(b.shuffled(words), MaxSessionItems)
	sentences = takeFirst(b.shuffled(sentences), MaxSessionItems-len(words))

	items := make([]entities.TestItem, 0, len(words)+len(sentences))
	for _, e := range words {
		items = append(items, entities.TestItem{Entry: e, Rank: len(items)})
	}
	for _, e := range sentences {
		items = append(items, entities.TestItem{Entry: e, Rank: len(items)})
	}

	return items
}

// isUnreviewed reports whether step comes strictly after lastCompleted.
// A nil or unknown lastCompleted counts as "before the first step".
func isUnreviewed(entries []entities.CourseEntry, step entities.StepKey, lastCompleted *entities.StepKey) bool {
	last := -1
	if lastCompleted != nil {
		last = entities.StepIndex(entries, *lastCompleted)
	}
	return entities.StepIndex(entries, step) > last
}

// shuffled returns a shuffled copy of the input slice.
func (b *SessionBuilder) shuffled(in []entities.CourseEntry) []entities.CourseEntry {
	out := append([]entities.CourseEntry(nil), in...)
	b.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// takeFirst returns the first n elements of s, or the whole slice if it is shorter.
func takeFirst[T any](s []T, n int) []T {
	if n <= 0 {
		return nil
	}
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// wordCount returns the number of leading word items.
func wordCount(items []entities.TestItem) int {
	n := 0
	for _, it := range items {
		if it.Entry.Kind != entities.KindWord {
			break
		}
		n++
	}
	return n
}
