package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot             *tgbotapi.BotAPI
	logger          *zap.Logger
	userService     UserService
	settingsService SettingsService
	courseService   CourseService
	quizService     QuizService
	progressService ProgressService
	resetService    ResetService
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	userService UserService,
	settingsService SettingsService,
	courseService CourseService,
	quizService QuizService,
	progressService ProgressService,
	resetService ResetService,
) *Handler {
	return &Handler{
		bot:             bot,
		logger:          logger,
		userService:     userService,
		settingsService: settingsService,
		courseService:   courseService,
		quizService:     quizService,
		progressService: progressService,
		resetService:    resetService,
	}
}

// Run consumes updates until ctx is done. Updates are handled one at a time.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	from := update.Message.From
	chatID := update.Message.Chat.ID

	isNew, err := h.userService.EnsureUser(ctx, from.ID, chatID, from.LanguageCode)
	if err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", from.ID),
			zap.Error(err),
		)
	}
	if isNew {
		h.logger.Info("new user registered", zap.Int64("user_id", from.ID))
	}

	if update.Message.IsCommand() {
		var fn HandlerFunc
		switch update.Message.Command() {
		case "start":
			fn = h.handleStart()
		case "courses":
			fn = h.handleCourses()
		case "steps":
			fn = h.handleSteps(from.ID)
		case "progress":
			fn = h.handleProgress(from.ID)
		case "reset":
			fn = h.handleReset(from.ID)
		case "help":
			fn = h.handleHelp()
		default:
			fn = h.handleUnknown()
		}

		_ = h.withErrorHandling(fn)(ctx, chatID)
		return
	}

	_ = h.withErrorHandling(h.handleText(from.ID, update.Message.Text))(ctx, chatID)
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

// answerCallback removes the loading indicator of a pressed button.
func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}
