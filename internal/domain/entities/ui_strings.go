package entities

// PromptKey names a localized instruction string.
type PromptKey string

const (
	PromptFlashcard          PromptKey = "flashcard"
	PromptWriteWord          PromptKey = "write-word"
	PromptSelectWord         PromptKey = "select-word"
	PromptMakeSentenceSource PromptKey = "make-sentence-source"
	PromptMakeSentenceTarget PromptKey = "make-sentence-target"
	PromptWriteSentence      PromptKey = "write-sentence"
	PromptCheck              PromptKey = "check"
	PromptNext               PromptKey = "next"
)

// PromptKeys lists every key a course may localize.
var PromptKeys = []PromptKey{
	PromptFlashcard,
	PromptWriteWord,
	PromptSelectWord,
	PromptMakeSentenceSource,
	PromptMakeSentenceTarget,
	PromptWriteSentence,
	PromptCheck,
	PromptNext,
}

var defaultUIStrings = UIStrings{
	PromptFlashcard:          "단어를 익히세요.",
	PromptWriteWord:          "빈칸에 들어갈 단어를 쓰세요.",
	PromptSelectWord:         "빈칸에 들어갈 단어를 고르세요.",
	PromptMakeSentenceSource: "조각을 순서대로 골라 문장을 만드세요.",
	PromptMakeSentenceTarget: "조각을 순서대로 골라 문장을 만드세요.",
	PromptWriteSentence:      "문장을 번역해서 쓰세요.",
	PromptCheck:              "확인",
	PromptNext:               "다음",
}

// UIStrings is a per-course table of localized UI strings.
type UIStrings map[PromptKey]string

// Get returns the localized string for key, falling back to the built-in default.
func (u UIStrings) Get(key PromptKey) string {
	if s, ok := u[key]; ok && s != "" {
		return s
	}
	return defaultUIStrings[key]
}
