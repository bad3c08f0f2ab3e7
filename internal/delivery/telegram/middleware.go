package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/stepquiz-bot/internal/service"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling logs a failed handler and tells the user. Errors with a
// user-facing explanation get that text instead of the generic one.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		if err == nil {
			return nil
		}

		if text, ok := userMessage(err); ok {
			h.logger.Debug("handler rejected request",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, text)
			return nil
		}

		h.logger.Error("handle error",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return nil
	}
}

// userMessage maps expected service errors to the text shown to the user.
func userMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		return msgCourseNotFound, true
	case errors.Is(err, service.ErrStepNotFound):
		return msgStepNotFound, true
	case errors.Is(err, service.ErrEmptyStep):
		return msgEmptyStep, true
	case errors.Is(err, service.ErrMalformedContent):
		return msgMalformedContent, true
	case errors.Is(err, service.ErrNoActiveSession), errors.Is(err, service.ErrSessionMismatch):
		return msgSessionExpired, true
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, service.ErrPieceUsed), errors.Is(err, errBadCallback):
		return msgActionUnavailable, true
	case errors.Is(err, errNoCurrentCourse):
		return msgChooseCourseFirst, true
	}
	return "", false
}
