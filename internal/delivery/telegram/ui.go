package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/stepquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/stepquiz-bot/internal/service"
)

const piecesPerRow = 3

// buildCatalogKeyboard lists courses, one per row.
func buildCatalogKeyboard(courses []entities.Course) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(formatCourseTitle(c), buildCourseCallback(c.Code)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildStepsKeyboard lists steps with lesson and test buttons. Completed steps are ticked.
func buildStepsKeyboard(steps []entities.StepKey, last *entities.StepKey) tgbotapi.InlineKeyboardMarkup {
	lastIdx := -1
	if last != nil {
		for i, k := range steps {
			if k == *last {
				lastIdx = i
				break
			}
		}
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(steps))
	for i, k := range steps {
		label := "📖 " + k.String()
		if i <= lastIdx {
			label = "✅ " + k.String()
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildLessonCallback(i)),
			tgbotapi.NewInlineKeyboardButtonData("📝 테스트", buildTestCallback(i)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func buildLessonKeyboard(stepIdx int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 테스트 시작", buildTestCallback(stepIdx)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« 단계 목록", buildStepsCallback()),
		),
	)
}

// buildQuizKeyboard builds the buttons of the current session position.
// Free response questions awaiting input have no buttons.
func buildQuizKeyboard(s *service.Session, q entities.Question, ui entities.UIStrings) *tgbotapi.InlineKeyboardMarkup {
	next := tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(ui.Get(entities.PromptNext)+" ▶️", buildQuizActionCallback(s.ID, quizNext)),
	)

	if s.Status() == service.StatusRevealed || q.Variant == entities.VariantFlashcard {
		kb := tgbotapi.NewInlineKeyboardMarkup(next)
		return &kb
	}

	var rows [][]tgbotapi.InlineKeyboardButton

	switch {
	case q.Variant == entities.VariantTargetWordMultipleChoice:
		for i, option := range q.Options {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(option, buildQuizOptionCallback(s.ID, i)),
			))
		}

	case q.Variant.IsReassembly():
		used := make(map[int]bool, len(s.Selected().Pieces))
		for _, p := range s.Selected().Pieces {
			used[p.Index] = true
		}

		var row []tgbotapi.InlineKeyboardButton
		for i, piece := range q.Pieces {
			if used[i] {
				continue
			}
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(piece, buildQuizPieceCallback(s.ID, i)))
			if len(row) == piecesPerRow {
				rows = append(rows, row)
				row = nil
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}

		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("↩️", buildQuizActionCallback(s.ID, quizUndo)),
			tgbotapi.NewInlineKeyboardButtonData(ui.Get(entities.PromptCheck), buildQuizActionCallback(s.ID, quizCheck)),
		))

	default:
		return nil
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

// buildResultKeyboard builds keyboard for the test results screen.
func buildResultKeyboard(stepIdx int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 다시 풀기", buildTestCallback(stepIdx)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗂 단계 목록", buildStepsCallback()),
			tgbotapi.NewInlineKeyboardButtonData("📊 진행 상황", buildProgressCallback()),
		),
	)
}

// buildProgressKeyboard builds keyboard for progress screen.
func buildProgressKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 새로고침", buildProgressCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗂 단계 목록", buildStepsCallback()),
		),
	)
}

func buildResetConfirmKeyboard(courseCode string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 초기화", buildResetConfirmCallback(courseCode)),
			tgbotapi.NewInlineKeyboardButtonData("취소", buildResetCancelCallback()),
		),
	)
}
