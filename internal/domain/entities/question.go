package entities

// Variant is the presentation/grading kind of a question.
type Variant int

const (
	VariantFlashcard Variant = iota
	VariantSourceWordFreeResponse
	VariantTargetWordMultipleChoice
	VariantTargetWordFreeResponse
	VariantSourceSentenceReassembly
	VariantSourceSentenceFreeResponse
	VariantTargetSentenceReassembly
	VariantTargetSentenceFreeResponse
)

var variantNames = map[Variant]string{
	VariantFlashcard:                  "flashcard",
	VariantSourceWordFreeResponse:     "source-word-freeresponse",
	VariantTargetWordMultipleChoice:   "target-word-multiplechoice",
	VariantTargetWordFreeResponse:     "target-word-freeresponse",
	VariantSourceSentenceReassembly:   "source-sentence-reassembly",
	VariantSourceSentenceFreeResponse: "source-sentence-freeresponse",
	VariantTargetSentenceReassembly:   "target-sentence-reassembly",
	VariantTargetSentenceFreeResponse: "target-sentence-freeresponse",
}

func (v Variant) String() string {
	if s, ok := variantNames[v]; ok {
		return s
	}
	return "unknown"
}

// Prompt returns the instruction string key shown with the question.
func (v Variant) Prompt() PromptKey {
	switch v {
	case VariantSourceWordFreeResponse, VariantTargetWordFreeResponse:
		return PromptWriteWord
	case VariantTargetWordMultipleChoice:
		return PromptSelectWord
	case VariantSourceSentenceReassembly:
		return PromptMakeSentenceSource
	case VariantTargetSentenceReassembly:
		return PromptMakeSentenceTarget
	case VariantSourceSentenceFreeResponse, VariantTargetSentenceFreeResponse:
		return PromptWriteSentence
	default:
		return PromptFlashcard
	}
}

// Gradable reports whether the variant goes through a check step.
func (v Variant) Gradable() bool {
	return v != VariantFlashcard
}

// IsReassembly reports whether the answer is an ordered piece sequence.
func (v Variant) IsReassembly() bool {
	return v == VariantSourceSentenceReassembly || v == VariantTargetSentenceReassembly
}

// IsFreeResponse reports whether the answer is typed text.
func (v Variant) IsFreeResponse() bool {
	switch v {
	case VariantSourceWordFreeResponse, VariantTargetWordFreeResponse,
		VariantSourceSentenceFreeResponse, VariantTargetSentenceFreeResponse:
		return true
	}
	return false
}

// TestItem is a course entry selected into a quiz session.
type TestItem struct {
	Entry CourseEntry
	Rank  int // 0-based position within the session
}

// Question is the generated presentation of one session position.
type Question struct {
	Variant     Variant
	PromptKey   PromptKey
	BlankedText string   // sentence with the chosen span blanked, empty for non-blank variants
	Context     string   // sentence in the other language shown as a hint
	Term        string   // flashcard only
	Meaning     string   // flashcard only
	Options     []string // multiple choice only, 1-3 entries containing Answer once
	Pieces      []string // reassembly only, shuffled copy of AnswerPieces

	Answer       string   // canonical text answer
	AnswerPieces []string // canonical order for reassembly
}

// PieceRef is one chosen reassembly piece.
type PieceRef struct {
	Index int    // index into Question.Pieces
	Text  string // text of the piece
}

// Input is the learner's selection for the current question.
type Input struct {
	Text   string     // typed text or chosen option
	Pieces []PieceRef // reassembly order
}

// IsEmpty reports whether nothing has been selected.
func (in Input) IsEmpty() bool {
	return in.Text == "" && len(in.Pieces) == 0
}

// GradeResult is the verdict for one submission.
type GradeResult struct {
	IsCorrect bool
	PerPiece  []bool // reassembly only
}
