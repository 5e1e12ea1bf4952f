package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/semaphore"

	"github.com/planetoftheweb/bananabrand/internal/brand"
	"github.com/planetoftheweb/bananabrand/internal/config"
	"github.com/planetoftheweb/bananabrand/internal/gemini"
	"github.com/planetoftheweb/bananabrand/internal/handlers"
	"github.com/planetoftheweb/bananabrand/internal/httpclient"
	"github.com/planetoftheweb/bananabrand/internal/session"
	"github.com/planetoftheweb/bananabrand/internal/telegram"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg)

	httpClient := httpclient.New(httpclient.Options{
		PreferIPv4: cfg.PreferIPv4,
		Timeout:    cfg.HTTPTimeout,
	})

	tg, err := telegram.New(telegram.Options{
		Token:      cfg.TelegramToken,
		HTTPClient: httpClient,
		Logger:     logger,
		Debug:      cfg.Debug,
	})
	if err != nil {
		logger.Error("telegram init failed", "err", err)
		os.Exit(1)
	}

	gem := gemini.New(gemini.Options{
		APIKey:     cfg.GeminiAPIKey,
		BaseURL:    cfg.GeminiBaseURL,
		APIVersion: cfg.GeminiAPIVersion,
		Model:      cfg.GeminiModel,
		HTTPClient: httpClient,
		Logger:     logger,
	})

	handler := handlers.New(handlers.Options{
		Telegram: tg,
		Gemini:   gem,
		Sessions: session.NewStore(),
		Catalogs: brand.DefaultCatalogs(),
		Logger:   logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sem := semaphore.NewWeighted(int64(cfg.MaxConcurrent))

	logger.Info("bot started", "username", tg.Username())

	updates := tg.Updates(telegram.UpdatesOptions{
		Timeout: 30 * time.Second,
	})
	defer tg.StopUpdates()

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return
		case update, ok := <-updates:
			if !ok {
				logger.Info("updates channel closed")
				return
			}

			if err := sem.Acquire(ctx, 1); err != nil {
				return
			}

			go func(update telegram.Update) {
				defer sem.Release(1)

				reqCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
				defer cancel()

				if err := handler.HandleUpdate(reqCtx, update); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("handle update failed", "err", err)
				}
			}(update)
		}
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}
