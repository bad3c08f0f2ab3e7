package service

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/aliskhannn/stepquiz-bot/internal/domain/entities"
)

const (
	rangeRollLimit = MaxSessionItems
	maxDistractors = 2
	blankMarker    = "____"
	pieceSeparator = "|"
)

var blankPattern = regexp.MustCompile(`\[([^\[\]]+)\]`)

// QuestionGenerator builds the question shown at one session position.
type QuestionGenerator struct {
	rng *rand.Rand
}

// NewQuestionGenerator creates a new QuestionGenerator.
func NewQuestionGenerator(rng *rand.Rand) *QuestionGenerator {
	return &QuestionGenerator{rng: rng}
}

// Generate returns the question for item. Word items become flashcards; sentence items
// draw a range, a language and a format roll to pick one of six variants.
// course is the full ordered course, used for multiple choice distractors.
//
// The range roll is compared with the item's session position, so later positions
// lean towards whole-sentence questions.
func (g *QuestionGenerator) Generate(item entities.TestItem, course []entities.CourseEntry) (entities.Question, error) {
	e := item.Entry
	if e.Kind == entities.KindWord {
		return flashcard(e), nil
	}

	rangeRoll := g.rng.Intn(rangeRollLimit)
	languageRoll := g.rng.Intn(3) // 0 source, 1 and 2 target
	formatRoll := g.rng.Intn(2)

	source := languageRoll == 0

	if rangeRoll > item.Rank {
		switch {
		case source:
			return g.wordBlank(e, entities.VariantSourceWordFreeResponse)
		case formatRoll == 0:
			return g.wordMultipleChoice(e, course)
		default:
			return g.wordBlank(e, entities.VariantTargetWordFreeResponse)
		}
	}

	if formatRoll == 0 {
		if source {
			return g.reassembly(e, entities.VariantSourceSentenceReassembly)
		}
		return g.reassembly(e, entities.VariantTargetSentenceReassembly)
	}

	if source {
		return sentenceFreeResponse(e, entities.VariantSourceSentenceFreeResponse), nil
	}
	return sentenceFreeResponse(e, entities.VariantTargetSentenceFreeResponse), nil
}

func flashcard(e entities.CourseEntry) entities.Question {
	return entities.Question{
		Variant:   entities.VariantFlashcard,
		PromptKey: entities.VariantFlashcard.Prompt(),
		Term:      e.Term,
		Meaning:   e.Meaning,
		Answer:    e.Term,
	}
}

// wordBlank blanks one bracketed span of the source or target blanked text.
func (g *QuestionGenerator) wordBlank(e entities.CourseEntry, v entities.Variant) (entities.Question, error) {
	field, hint, name := e.TargetTextBlanked, e.SourceText, "target blanked text"
	if v == entities.VariantSourceWordFreeResponse {
		field, hint, name = e.SourceTextBlanked, e.TargetText, "source blanked text"
	}

	blanked, answer, err := g.extractBlank(field)
	if err != nil {
		return entities.Question{}, fmt.Errorf("%s of step %s: %w", name, e.Key(), err)
	}

	return entities.Question{
		Variant:     v,
		PromptKey:   v.Prompt(),
		BlankedText: blanked,
		Context:     hint,
		Answer:      answer,
	}, nil
}

func (g *QuestionGenerator) wordMultipleChoice(e entities.CourseEntry, course []entities.CourseEntry) (entities.Question, error) {
	q, err := g.wordBlank(e, entities.VariantTargetWordMultipleChoice)
	if err != nil {
		return entities.Question{}, err
	}

	distractors := g.pickDistractors(stepTerms(course, e.Key(), q.Answer), maxDistractors)
	q.Options = buildOptions(g.rng, q.Answer, distractors)

	return q, nil
}

func (g *QuestionGenerator) reassembly(e entities.CourseEntry, v entities.Variant) (entities.Question, error) {
	decomposition, hint, name := e.TargetDecomposition, e.SourceText, "target decomposition"
	if v == entities.VariantSourceSentenceReassembly {
		decomposition, hint, name = e.SourceDecomposition, e.TargetText, "source decomposition"
	}

	answer := splitPieces(decomposition)
	if len(answer) == 0 {
		return entities.Question{}, fmt.Errorf("%s of step %s is empty: %w", name, e.Key(), ErrMalformedContent)
	}

	pieces := append([]string(nil), answer...)
	g.rng.Shuffle(len(pieces), func(i, j int) { pieces[i], pieces[j] = pieces[j], pieces[i] })

	return entities.Question{
		Variant:      v,
		PromptKey:    v.Prompt(),
		Context:      hint,
		Pieces:       pieces,
		Answer:       strings.Join(answer, " "),
		AnswerPieces: answer,
	}, nil
}

func sentenceFreeResponse(e entities.CourseEntry, v entities.Variant) entities.Question {
	answer, hint := e.TargetText, e.SourceText
	if v == entities.VariantSourceSentenceFreeResponse {
		answer, hint = e.SourceText, e.TargetText
	}

	return entities.Question{
		Variant:   v,
		PromptKey: v.Prompt(),
		Context:   hint,
		Answer:    answer,
	}
}

// extractBlank picks one bracketed span uniformly. The chosen span is replaced by the
// blank marker; the other spans keep their contents without brackets.
func (g *QuestionGenerator) extractBlank(text string) (string, string, error) {
	spans := blankPattern.FindAllStringSubmatchIndex(text, -1)
	if len(spans) == 0 {
		return "", "", fmt.Errorf("no bracketed span: %w", ErrMalformedContent)
	}

	chosen := g.rng.Intn(len(spans))

	var (
		sb     strings.Builder
		answer string
		last   int
	)
	for i, sp := range spans {
		sb.WriteString(text[last:sp[0]])
		contents := text[sp[2]:sp[3]]
		if i == chosen {
			answer = contents
			sb.WriteString(blankMarker)
		} else {
			sb.WriteString(contents)
		}
		last = sp[1]
	}
	sb.WriteString(text[last:])

	return sb.String(), answer, nil
}

// stepTerms returns the unique terms of word entries in the contiguous block of step,
// excluding answer. Scanning stops at the first row after the block.
func stepTerms(course []entities.CourseEntry, step entities.StepKey, answer string) []string {
	seen := map[string]struct{}{answer: {}}
	var terms []string
	entered := false

	for _, e := range course {
		if e.Key() != step {
			if entered {
				break
			}
			continue
		}
		entered = true

		if e.Kind != entities.KindWord {
			continue
		}
		if _, ok := seen[e.Term]; ok {
			continue
		}
		seen[e.Term] = struct{}{}
		terms = append(terms, e.Term)
	}

	return terms
}

// pickDistractors draws up to count candidates uniformly without replacement.
func (g *QuestionGenerator) pickDistractors(candidates []string, count int) []string {
	if len(candidates) <= count {
		return candidates
	}

	out := append([]string(nil), candidates...)
	g.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })

	return out[:count]
}

// buildOptions combines the correct answer with distractors and shuffles them.
func buildOptions(rng *rand.Rand, correct string, distractors []string) []string {
	options := make([]string, 0, 1+len(distractors))
	options = append(options, correct)
	options = append(options, distractors...)

	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return options
}

// splitPieces splits a pipe-delimited decomposition, dropping empty pieces.
func splitPieces(s string) []string {
	var pieces []string
	for _, p := range strings.Split(s, pieceSeparator) {
		p = strings.TrimSpace(p)
		if p != "" {
			pieces = append(pieces, p)
		}
	}
	return pieces
}
