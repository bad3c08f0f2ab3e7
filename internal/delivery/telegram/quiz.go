package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/stepquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/stepquiz-bot/internal/service"
)

// renderQuiz renders the session's current position.
func (h *Handler) renderQuiz(ctx context.Context, s *service.Session) (string, *tgbotapi.InlineKeyboardMarkup, error) {
	q, err := s.Current()
	if err != nil {
		return "", nil, err
	}

	ui := h.uiStrings(ctx, s.CourseCode)
	return formatQuestion(s, q, ui), buildQuizKeyboard(s, q, ui), nil
}

// renderResult renders the completion screen of a session.
func (h *Handler) renderResult(ctx context.Context, s *service.Session, result *entities.QuizResult) (string, tgbotapi.InlineKeyboardMarkup) {
	idx := 0
	if steps, err := h.courseService.Steps(ctx, s.CourseCode); err == nil {
		for i, k := range steps {
			if k == result.Step {
				idx = i
				break
			}
		}
	}
	return formatResult(s, result), buildResultKeyboard(idx)
}

// uiStrings returns the localized strings of a course. Defaults are used when the
// course cannot be loaded.
func (h *Handler) uiStrings(ctx context.Context, courseCode string) entities.UIStrings {
	course, err := h.courseService.Course(ctx, courseCode)
	if err != nil {
		h.logger.Warn("failed to load course ui strings",
			zap.String("course", courseCode),
			zap.Error(err),
		)
		return nil
	}
	return course.UIStrings
}

// startTest begins a test of the step with ordinal stepIdx in the current course.
func (h *Handler) startTest(userID int64, stepIdx int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		course, err := h.currentCourse(ctx, userID)
		if err != nil {
			return err
		}

		step, err := h.courseService.StepAt(ctx, course.Code, stepIdx)
		if err != nil {
			return err
		}

		session, err := h.quizService.StartTest(ctx, userID, course.Code, step)
		if err != nil {
			return err
		}

		text, kb, err := h.renderQuiz(ctx, session)
		if err != nil {
			return err
		}

		msg := newMessage(chatID, text)
		if kb != nil {
			msg.ReplyMarkup = *kb
		}
		return h.send(msg)
	}
}

// handleQuizAction applies a quiz button press and redraws the question message.
func (h *Handler) handleQuizAction(userID int64, messageID int, qc quizCallback) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		var (
			session *service.Session
			result  *entities.QuizResult
			err     error
		)

		switch qc.Op {
		case quizOption:
			session, err = h.answerOption(userID, qc)
		case quizPiece:
			session, err = h.quizService.SelectPiece(userID, qc.SessionID, qc.Index)
		case quizUndo:
			session, err = h.quizService.UndoPiece(userID, qc.SessionID)
		case quizCheck:
			session, _, err = h.quizService.Check(userID, qc.SessionID)
		case quizNext:
			session, result, err = h.quizService.Advance(ctx, userID, qc.SessionID)
		}
		if err != nil {
			return err
		}

		if result != nil {
			text, kb := h.renderResult(ctx, session, result)
			edit := newEdit(chatID, messageID, text)
			edit.ReplyMarkup = &kb
			h.edit(edit)
			return nil
		}

		text, kb, err := h.renderQuiz(ctx, session)
		if err != nil {
			return err
		}

		edit := newEdit(chatID, messageID, text)
		edit.ReplyMarkup = kb
		h.edit(edit)
		return nil
	}
}

func (h *Handler) answerOption(userID int64, qc quizCallback) (*service.Session, error) {
	session, err := h.quizService.Active(userID, qc.SessionID)
	if err != nil {
		return nil, err
	}

	q, err := session.Current()
	if err != nil {
		return nil, err
	}
	if qc.Index >= len(q.Options) {
		return nil, errBadCallback
	}

	session, _, err = h.quizService.Answer(userID, qc.SessionID, entities.Input{Text: q.Options[qc.Index]})
	return session, err
}
