package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/stepquiz-bot/internal/config"
	"github.com/aliskhannn/stepquiz-bot/internal/delivery/telegram"
	"github.com/aliskhannn/stepquiz-bot/internal/infra/cache"
	"github.com/aliskhannn/stepquiz-bot/internal/infra/postgres"
	"github.com/aliskhannn/stepquiz-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/stepquiz-bot/internal/infra/sheets"
	"github.com/aliskhannn/stepquiz-bot/internal/logger"
	"github.com/aliskhannn/stepquiz-bot/internal/service"
	"github.com/aliskhannn/stepquiz-bot/internal/storage"
)

const cacheKeyPrefix = "stepquiz:"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "봇 시작"},
		{Command: "courses", Description: "코스 고르기"},
		{Command: "steps", Description: "단계 목록"},
		{Command: "progress", Description: "진행 상황"},
		{Command: "reset", Description: "진행 상황 초기화"},
		{Command: "help", Description: "도움말"},
	}

	if _, err = bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	bot.Debug = cfg.Telegram.Debug
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB.URL, postgres.PoolConfig{
		MaxConns:        cfg.DB.MaxConnections,
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		lg.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		lg.Fatal("failed to apply migrations", zap.Error(err))
	}

	redisClient, err := cache.NewClient(ctx, cache.ClientConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		lg.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()

	sheetsClient, err := sheets.NewClient(ctx, sheets.Config{
		APIKey:             cfg.Sheets.APIKey,
		CatalogSpreadsheet: cfg.Sheets.CatalogSpreadsheetID,
		CatalogRange:       cfg.Sheets.CatalogRange,
	})
	if err != nil {
		lg.Fatal("failed to create sheets client", zap.Error(err))
	}

	// Initialize repositories.
	transactor := postgres.NewTransactor(pool)
	userRepo := repository.NewUserRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)
	progressRepo := repository.NewProgressRepository(pool, transactor)
	resultRepo := repository.NewQuizResultRepository(pool)

	courseCache := cache.NewCourseCache(redisClient, cacheKeyPrefix, cfg.Redis.CourseTTL)
	quizStorage := storage.NewQuizStorage()

	// Updates are handled sequentially, so one source drives all quiz randomness.
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// Initialize services.
	userService := service.NewUserService(userRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	courseService := service.NewCourseService(sheetsClient, courseCache, lg)
	progressService := service.NewProgressService(progressRepo, resultRepo, courseService)
	resetService := service.NewResetService(transactor, quizStorage)
	quizService := service.NewQuizService(
		courseService,
		progressRepo,
		quizStorage,
		service.NewSessionBuilder(rng),
		service.NewQuestionGenerator(rng),
		service.NewAnswerGrader(),
		lg,
	)

	refresher := service.NewCatalogRefresher(courseService, cfg.Catalog.RefreshSpec, lg)

	handler := telegram.NewHandler(
		bot,
		lg,
		userService,
		settingsService,
		courseService,
		quizService,
		progressService,
		resetService,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return refresher.Start(gctx) })
	g.Go(func() error { return handler.Run(gctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("bot stopped with error", zap.Error(err))
		return
	}

	lg.Info("shutdown complete")
}
