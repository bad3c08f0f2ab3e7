package service

import (
	"strings"

	"github.com/aliskhannn/stepquiz-bot/internal/domain/entities"
)

// sentencePunctuation is ignored when grading typed sentences.
const sentencePunctuation = `-‐.,?!:~"'‘’“”«»`

// AnswerGrader validates submissions against a question's canonical answer.
// Grading is case-sensitive and has no side effects.
type AnswerGrader struct{}

// NewAnswerGrader creates a new AnswerGrader.
func NewAnswerGrader() *AnswerGrader {
	return &AnswerGrader{}
}

// Grade checks in against q.
func (g *AnswerGrader) Grade(q entities.Question, in entities.Input) (entities.GradeResult, error) {
	switch q.Variant {
	case entities.VariantSourceWordFreeResponse, entities.VariantTargetWordFreeResponse:
		return entities.GradeResult{IsCorrect: gradeWord(q.Answer, in.Text)}, nil

	case entities.VariantSourceSentenceFreeResponse, entities.VariantTargetSentenceFreeResponse:
		return entities.GradeResult{IsCorrect: gradeSentence(q.Answer, in.Text)}, nil

	case entities.VariantTargetWordMultipleChoice:
		return entities.GradeResult{IsCorrect: in.Text == q.Answer}, nil

	case entities.VariantSourceSentenceReassembly, entities.VariantTargetSentenceReassembly:
		return gradeReassembly(q.AnswerPieces, in.Pieces), nil

	default:
		return entities.GradeResult{}, ErrNotGradable
	}
}

func gradeWord(answer, submitted string) bool {
	return strings.TrimSpace(submitted) == strings.TrimSpace(answer)
}

func gradeSentence(answer, submitted string) bool {
	return normalizeSentence(submitted) == normalizeSentence(answer)
}

// normalizeSentence drops the punctuation set and surrounding whitespace.
func normalizeSentence(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(sentencePunctuation, r) {
			return -1
		}
		return r
	}, s)

	return strings.TrimSpace(s)
}

// gradeReassembly compares submitted pieces with answer position by position.
// Positions without a submitted piece are wrong; an empty submission is never correct.
func gradeReassembly(answer []string, submitted []entities.PieceRef) entities.GradeResult {
	perPiece := make([]bool, len(answer))
	allCorrect := len(submitted) > 0 && len(submitted) <= len(answer)

	for i, want := range answer {
		perPiece[i] = i < len(submitted) && submitted[i].Text == want
		if !perPiece[i] {
			allCorrect = false
		}
	}

	return entities.GradeResult{IsCorrect: allCorrect, PerPiece: perPiece}
}
