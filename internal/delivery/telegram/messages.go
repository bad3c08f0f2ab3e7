// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/stepquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/stepquiz-bot/internal/service"
)

// Error messages.
const (
	msgInternalError     = "문제가 발생했습니다. 잠시 후 다시 시도해 주세요."
	msgCourseNotFound    = "코스를 찾을 수 없습니다. /courses 에서 다시 골라 주세요."
	msgStepNotFound      = "단계를 찾을 수 없습니다. /steps 에서 다시 골라 주세요."
	msgEmptyStep         = "이 단계에는 테스트할 내용이 없습니다."
	msgMalformedContent  = "이 단계의 문제를 만들 수 없습니다. 코스 내용을 확인해 주세요."
	msgSessionExpired    = "이 테스트는 이미 끝났습니다. /steps 에서 새로 시작해 주세요."
	msgActionUnavailable = "지금은 할 수 없는 동작입니다."
	msgChooseCourseFirst = "먼저 /courses 에서 코스를 골라 주세요."
	msgUnknownCommand    = "알 수 없는 명령입니다. /help 로 명령 목록을 확인하세요."
	msgUseButtons        = "아래 버튼으로 답해 주세요."
	msgNoActiveTest      = "진행 중인 테스트가 없습니다. /steps 에서 단계를 고르세요."
	msgNoCourses         = "아직 등록된 코스가 없습니다."
)

// Informational messages.
const (
	msgNoLesson      = "이 단계는 설명이 없습니다."
	msgTypeAnswer    = "답을 입력해 주세요."
	msgCorrect       = "✅ 정답입니다!"
	msgIncorrect     = "❌ 틀렸습니다."
	msgResetDone     = "진행 상황을 초기화했습니다."
	msgResetCanceled = "초기화를 취소했습니다."
)

const msgHelp = `/courses — 코스 고르기
/steps — 현재 코스의 단계 보기
/progress — 진행 상황 보기
/reset — 현재 코스 진행 상황 초기화
/help — 도움말`

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

func formatWelcome() string {
	return fmt.Sprintf(
		"%s\n\n%s\n\n%s",
		bold("👋 안녕하세요!"),
		md("단계별로 단어와 문장을 익히고 테스트로 확인하는 봇입니다."),
		md(msgHelp),
	)
}

func formatCourseTitle(c entities.Course) string {
	return fmt.Sprintf("%s → %s", c.SourceLanguage, c.TargetLanguage)
}

func formatCatalog() string {
	return bold("📚 코스 목록") + "\n\n" + md("공부할 코스를 고르세요.")
}

func formatSteps(course *entities.Course, steps []entities.StepKey, last *entities.StepKey) string {
	var sb strings.Builder
	sb.WriteString(bold("🗂 " + formatCourseTitle(*course)))
	sb.WriteString("\n\n")

	if last == nil {
		sb.WriteString(md("아직 완료한 단계가 없습니다."))
	} else {
		sb.WriteString(md(fmt.Sprintf("마지막으로 완료한 단계: %s", last.String())))
	}
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("전체 단계: %d", len(steps))))

	return sb.String()
}

func formatLesson(step entities.StepKey, text string, ok bool) string {
	if !ok || strings.TrimSpace(text) == "" {
		text = msgNoLesson
	}
	return fmt.Sprintf("%s\n\n%s", bold("📖 "+step.String()), md(text))
}

// formatQuestion renders the current position of a session, with feedback once the
// answer is revealed.
func formatQuestion(s *service.Session, q entities.Question, ui entities.UIStrings) string {
	var sb strings.Builder

	sb.WriteString(md(fmt.Sprintf("%s · %d / %d", s.Step.String(), s.Position()+1, s.Total())))
	sb.WriteString("\n")
	sb.WriteString(bold(ui.Get(q.PromptKey)))
	sb.WriteString("\n\n")

	switch {
	case q.Variant == entities.VariantFlashcard:
		sb.WriteString(bold(q.Term))
		sb.WriteString("\n")
		sb.WriteString(md(q.Meaning))

	case q.Variant.IsReassembly():
		sb.WriteString(italic(q.Context))
		sb.WriteString("\n\n")
		sb.WriteString(md("▶ " + joinPieces(s.Selected().Pieces)))

	case q.BlankedText != "":
		sb.WriteString(md(q.BlankedText))
		if q.Context != "" {
			sb.WriteString("\n")
			sb.WriteString(italic(q.Context))
		}

	default:
		sb.WriteString(md(q.Context))
	}

	if s.Status() == service.StatusRevealed {
		sb.WriteString("\n\n")
		sb.WriteString(formatFeedback(q, s.Selected(), s.LastGrade()))
	} else if q.Variant.IsFreeResponse() {
		sb.WriteString("\n\n")
		sb.WriteString(italic(msgTypeAnswer))
	}

	return sb.String()
}

// formatFeedback renders the verdict. Reassembly answers are marked piece by piece.
func formatFeedback(q entities.Question, in entities.Input, res entities.GradeResult) string {
	var sb strings.Builder

	if res.IsCorrect {
		sb.WriteString(md(msgCorrect))
	} else {
		sb.WriteString(md(msgIncorrect))
	}

	if q.Variant.IsReassembly() && len(res.PerPiece) > 0 {
		sb.WriteString("\n")
		marks := make([]string, len(in.Pieces))
		for i, p := range in.Pieces {
			mark := "❌"
			if i < len(res.PerPiece) && res.PerPiece[i] {
				mark = "✅"
			}
			marks[i] = mark + p.Text
		}
		sb.WriteString(md(strings.Join(marks, " ")))
	}

	if !res.IsCorrect {
		sb.WriteString("\n")
		sb.WriteString(md("정답: "))
		sb.WriteString(bold(q.Answer))
	}

	return sb.String()
}

func formatResult(s *service.Session, result *entities.QuizResult) string {
	graded := s.Total() - s.WordCount()

	lines := []string{
		bold("🏁 테스트 완료: " + result.Step.String()),
		"",
	}
	if graded > 0 {
		percentage := float64(result.CorrectCount) / float64(graded) * 100
		lines = append(lines,
			md("맞힌 문제:"),
			bold(fmt.Sprintf("%d/%d (%.0f%%)", result.CorrectCount, graded, percentage)),
			md(buildProgressBar(result.CorrectCount, graded, 10)),
		)
	} else {
		lines = append(lines, md(fmt.Sprintf("단어 %d개를 모두 살펴봤습니다.", s.WordCount())))
	}

	return strings.Join(lines, "\n")
}

func formatProgress(course *entities.Course, summary *service.ProgressSummary) string {
	percentage := 0.0
	if summary.TotalSteps > 0 {
		percentage = float64(summary.CompletedSteps) / float64(summary.TotalSteps) * 100
	}

	var sb strings.Builder
	sb.WriteString(bold("📊 " + formatCourseTitle(*course)))
	sb.WriteString("\n\n")
	sb.WriteString(md(buildProgressBar(summary.CompletedSteps, summary.TotalSteps, 20)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("✅ 완료: %d / %d (%.1f%%)", summary.CompletedSteps, summary.TotalSteps, percentage)))

	if summary.LastCompleted != nil {
		sb.WriteString("\n")
		sb.WriteString(md("📍 마지막 단계: " + summary.LastCompleted.String()))
	}

	if len(summary.Recent) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(bold("최근 테스트"))
		for _, r := range summary.Recent {
			sb.WriteString("\n")
			sb.WriteString(md(fmt.Sprintf("• %s  %d/%d  %s",
				r.Step.String(), r.CorrectCount, r.TotalItems, r.CompletedAt.Format("2006-01-02"))))
		}
	}

	return sb.String()
}

func formatResetConfirm(course *entities.Course) string {
	return fmt.Sprintf(
		"%s\n\n%s",
		bold("⚠️ "+formatCourseTitle(*course)),
		md("이 코스의 진행 상황과 테스트 기록을 모두 지울까요?"),
	)
}

// buildProgressBar renders current/total as a bar of the given length.
func buildProgressBar(current, total, length int) string {
	if total <= 0 {
		return strings.Repeat("░", length)
	}
	filled := current * length / total
	if filled > length {
		filled = length
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

func joinPieces(pieces []entities.PieceRef) string {
	texts := make([]string, len(pieces))
	for i, p := range pieces {
		texts[i] = p.Text
	}
	return strings.Join(texts, " ")
}
