package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Remove the user's "clock".
	defer h.answerCallback(cb.ID, "")

	if cb.Message == nil {
		return
	}

	userID := cb.From.ID
	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID
	cd := decodeCallback(cb.Data)

	if _, err := h.userService.EnsureUser(ctx, userID, chatID, cb.From.LanguageCode); err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	var fn HandlerFunc
	switch cd.Action {
	case actionCourse:
		fn = h.handleCourseCallback(userID, messageID, strings.Join(cd.Params, ":"))
	case actionSteps:
		fn = h.handleStepsCallback(userID, messageID)
	case actionLesson:
		fn = h.handleLessonCallback(userID, messageID, cd)
	case actionTest:
		idx, err := cd.intParam(0)
		if err != nil {
			h.logger.Warn("invalid test callback", zap.String("data", cb.Data))
			return
		}
		fn = h.startTest(userID, idx)
	case actionQuiz:
		qc, err := parseQuizCallback(cd)
		if err != nil {
			h.logger.Warn("invalid quiz callback", zap.String("data", cb.Data))
			return
		}
		fn = h.handleQuizAction(userID, messageID, qc)
	case actionProgress:
		fn = h.handleProgressCallback(userID, messageID)
	case actionReset:
		fn = h.handleResetCallback(userID, messageID, cd)
	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
		return
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}

// handleCourseCallback selects a course and shows its steps.
func (h *Handler) handleCourseCallback(userID int64, messageID int, code string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		course, err := h.courseService.Course(ctx, code)
		if err != nil {
			return err
		}

		if err := h.settingsService.SetCurrentCourse(ctx, userID, course.Code); err != nil {
			return err
		}

		h.logger.Info("course selected",
			zap.Int64("user_id", userID),
			zap.String("course", course.Code),
		)

		return h.handleStepsCallback(userID, messageID)(ctx, chatID)
	}
}

func (h *Handler) handleStepsCallback(userID int64, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		text, kb, err := h.renderSteps(ctx, userID)
		if err != nil {
			return err
		}

		edit := newEdit(chatID, messageID, text)
		edit.ReplyMarkup = &kb
		h.edit(edit)
		return nil
	}
}

// handleLessonCallback shows the explanation of a step.
func (h *Handler) handleLessonCallback(userID int64, messageID int, cd callbackData) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		idx, err := cd.intParam(0)
		if err != nil {
			return err
		}

		course, err := h.currentCourse(ctx, userID)
		if err != nil {
			return err
		}

		step, err := h.courseService.StepAt(ctx, course.Code, idx)
		if err != nil {
			return err
		}

		text, ok, err := h.courseService.Lesson(ctx, course.Code, step)
		if err != nil {
			return err
		}

		kb := buildLessonKeyboard(idx)
		edit := newEdit(chatID, messageID, formatLesson(step, text, ok))
		edit.ReplyMarkup = &kb
		h.edit(edit)
		return nil
	}
}

func (h *Handler) handleProgressCallback(userID int64, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		text, kb, err := h.renderProgress(ctx, userID)
		if err != nil {
			return err
		}

		edit := newEdit(chatID, messageID, text)
		edit.ReplyMarkup = &kb
		h.edit(edit)
		return nil
	}
}

func (h *Handler) handleResetCallback(userID int64, messageID int, cd callbackData) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if len(cd.Params) == 0 {
			return errBadCallback
		}

		switch cd.Params[0] {
		case resetCancel:
			h.edit(tgbotapi.NewEditMessageText(chatID, messageID, msgResetCanceled))
			return nil

		case resetConfirm:
			code := strings.Join(cd.Params[1:], ":")
			if code == "" {
				return errBadCallback
			}

			if err := h.resetService.ResetCourse(ctx, userID, code); err != nil {
				return err
			}

			h.logger.Info("course progress reset",
				zap.Int64("user_id", userID),
				zap.String("course", code),
			)

			h.edit(tgbotapi.NewEditMessageText(chatID, messageID, msgResetDone))
			return nil
		}

		return errBadCallback
	}
}

// edit applies a message edit. Failures are logged only, since an unchanged
// message is reported as an error by Telegram.
func (h *Handler) edit(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Warn("failed to edit telegram message", zap.Error(err))
	}
}
