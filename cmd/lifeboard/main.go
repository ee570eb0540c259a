package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/xaenox/lifeboard/internal/api"
	"github.com/xaenox/lifeboard/internal/assistant"
	"github.com/xaenox/lifeboard/internal/bot"
	"github.com/xaenox/lifeboard/internal/chat"
	"github.com/xaenox/lifeboard/internal/dashboard"
	"github.com/xaenox/lifeboard/internal/storage"
	"github.com/xaenox/lifeboard/pkg/config"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Initialize storage
	var store storage.Storage
	if cfg.Database.UseInMemory {
		logger.Info("Using in-memory storage")
		store = storage.NewMemoryStorage()
	} else {
		logger.Info("Using PostgreSQL storage")
		dbConfig := storage.DatabaseConfig{
			Host:        cfg.Database.Host,
			Port:        cfg.Database.Port,
			User:        cfg.Database.User,
			Password:    cfg.Database.Password,
			DBName:      cfg.Database.DBName,
			SSLMode:     cfg.Database.SSLMode,
			UseInMemory: cfg.Database.UseInMemory,
		}
		store, err = storage.NewPostgresStorage(dbConfig, logger)
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
	}
	defer store.Close()

	// Initialize the backend client with an injected credential provider
	client := api.NewClient(
		cfg.Backend.BaseURL,
		time.Duration(cfg.Backend.TimeoutSeconds)*time.Second,
		api.StaticTokenProvider(cfg.Backend.Token),
		logger,
	)

	// Pick the assistant responder
	var responder chat.Responder
	if cfg.Assistant.UseBackend {
		responder = client
	} else {
		responder = assistant.NewOpenAIResponder(
			cfg.Assistant.APIKey,
			cfg.Assistant.Model,
			cfg.Assistant.MaxTokens,
			cfg.Assistant.Temperature,
			logger,
		)
	}

	chats := chat.NewService(responder, store, logger)

	service := dashboard.NewService(
		client,
		store,
		nil,
		cfg.Dashboard.UserID,
		cfg.Dashboard.Verticals,
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional Telegram bridge: chat with the assistant and receive digests
	if cfg.Telegram.Enabled {
		b, err := bot.New(cfg.Telegram.Token, chats, service, logger)
		if err != nil {
			logger.Fatal("Failed to create bot", zap.Error(err))
		}
		service.SetNotifier(b.Notifier(cfg.Telegram.ChatID))

		go func() {
			if err := b.Start(ctx); err != nil {
				logger.Error("Bot error", zap.Error(err))
			}
		}()
	}

	logger.Info("Starting dashboard refresh loop",
		zap.Int("interval_minutes", cfg.Dashboard.RefreshIntervalMinutes))
	service.Run(ctx, time.Duration(cfg.Dashboard.RefreshIntervalMinutes)*time.Minute)
}
