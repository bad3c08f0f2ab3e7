package telegram

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/stepquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/stepquiz-bot/internal/service"
)

var errNoCurrentCourse = errors.New("no current course selected")

// handleStart greets the user and shows the catalog.
func (h *Handler) handleStart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := h.send(newMessage(chatID, formatWelcome())); err != nil {
			return err
		}
		return h.handleCourses()(ctx, chatID)
	}
}

// handleCourses lists the catalog.
func (h *Handler) handleCourses() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		courses, err := h.courseService.Catalog(ctx)
		if err != nil {
			return err
		}

		if len(courses) == 0 {
			return h.send(newPlainMessage(chatID, msgNoCourses))
		}

		msg := newMessage(chatID, formatCatalog())
		msg.ReplyMarkup = buildCatalogKeyboard(courses)
		return h.send(msg)
	}
}

// handleSteps lists the steps of the current course.
func (h *Handler) handleSteps(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		text, kb, err := h.renderSteps(ctx, userID)
		if err != nil {
			return err
		}

		msg := newMessage(chatID, text)
		msg.ReplyMarkup = kb
		return h.send(msg)
	}
}

// handleProgress displays user progress in the current course.
func (h *Handler) handleProgress(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.logger.Debug("rendering progress", zap.Int64("user_id", userID))

		text, kb, err := h.renderProgress(ctx, userID)
		if err != nil {
			return err
		}

		msg := newMessage(chatID, text)
		msg.ReplyMarkup = kb
		return h.send(msg)
	}
}

// handleReset asks to confirm resetting the current course.
func (h *Handler) handleReset(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		course, err := h.currentCourse(ctx, userID)
		if err != nil {
			return err
		}

		msg := newMessage(chatID, formatResetConfirm(course))
		msg.ReplyMarkup = buildResetConfirmKeyboard(course.Code)
		return h.send(msg)
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newPlainMessage(chatID, msgHelp))
	}
}

func (h *Handler) handleUnknown() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

// handleText treats plain text as the answer to a free response question.
func (h *Handler) handleText(userID int64, text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		session, err := h.quizService.Active(userID, "")
		if errors.Is(err, service.ErrNoActiveSession) {
			return h.send(newPlainMessage(chatID, msgNoActiveTest))
		}
		if err != nil {
			return err
		}

		q, err := session.Current()
		if err != nil {
			return err
		}
		if !q.Variant.IsFreeResponse() || session.Status() != service.StatusAwaitingInput {
			return h.send(newPlainMessage(chatID, msgUseButtons))
		}

		session, _, err = h.quizService.Answer(userID, session.ID, entities.Input{Text: strings.TrimSpace(text)})
		if err != nil {
			return err
		}

		out, kb, err := h.renderQuiz(ctx, session)
		if err != nil {
			return err
		}

		msg := newMessage(chatID, out)
		if kb != nil {
			msg.ReplyMarkup = *kb
		}
		return h.send(msg)
	}
}

// currentCourse returns the course selected in the user's settings.
func (h *Handler) currentCourse(ctx context.Context, userID int64) (*entities.Course, error) {
	settings, err := h.settingsService.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !settings.HasCourse() {
		return nil, errNoCurrentCourse
	}
	return h.courseService.Course(ctx, *settings.CurrentCourse)
}

func (h *Handler) renderSteps(ctx context.Context, userID int64) (string, tgbotapi.InlineKeyboardMarkup, error) {
	course, err := h.currentCourse(ctx, userID)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, err
	}

	summary, err := h.progressService.GetProgressSummary(ctx, userID, course.Code)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, err
	}

	steps, err := h.courseService.Steps(ctx, course.Code)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, err
	}

	return formatSteps(course, steps, summary.LastCompleted), buildStepsKeyboard(steps, summary.LastCompleted), nil
}

func (h *Handler) renderProgress(ctx context.Context, userID int64) (string, tgbotapi.InlineKeyboardMarkup, error) {
	course, err := h.currentCourse(ctx, userID)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, err
	}

	summary, err := h.progressService.GetProgressSummary(ctx, userID, course.Code)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, err
	}

	return formatProgress(course, summary), buildProgressKeyboard(), nil
}
