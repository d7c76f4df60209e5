// Package app содержит фабрику компонентов приложения.
package app

import (
	"context"
	"fmt"
	"time"

	"spotifyetl/internal/config"
	"spotifyetl/internal/gateway/objectstore"
	"spotifyetl/internal/gateway/spotify"
	"spotifyetl/internal/gateway/telegram"
	"spotifyetl/internal/health"
	"spotifyetl/internal/model"
	"spotifyetl/internal/service"
	"spotifyetl/internal/storage"

	"go.uber.org/zap"
)

// ComponentFactory создает компоненты приложения
type ComponentFactory struct {
	config *config.Config
	logger *zap.Logger
}

// NewComponentFactory создает новую фабрику компонентов
func NewComponentFactory(config *config.Config, logger *zap.Logger) *ComponentFactory {
	if config == nil {
		logger.Fatal("Config cannot be nil")
	}
	if logger == nil {
		panic("Logger cannot be nil")
	}

	return &ComponentFactory{
		config: config,
		logger: logger,
	}
}

// CreateDatabase создает подключение к базе данных
func (f *ComponentFactory) CreateDatabase() (*storage.Postgres, error) {
	if f.config.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	db, err := storage.NewPostgres(f.config.DatabaseURL, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}

	return db, nil
}

// CreateSpotifyClient создает Spotify клиент
func (f *ComponentFactory) CreateSpotifyClient() (*spotify.Client, error) {
	client, err := spotify.NewClient(f.config.SpotifyClientID, f.config.SpotifyClientSecret, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create spotify client: %w", err)
	}

	return client, nil
}

// CreateObjectStore создает клиент объектного хранилища
func (f *ComponentFactory) CreateObjectStore() (*objectstore.Store, error) {
	storeConfig := objectstore.Config{
		Endpoint:  f.config.Storage.Endpoint,
		AccessKey: f.config.Storage.AccessKey,
		SecretKey: f.config.Storage.SecretKey,
		Region:    f.config.Storage.Region,
		UseSSL:    f.config.Storage.UseSSL,
		Bucket:    f.config.Storage.Bucket,
		KeyPrefix: f.config.Storage.KeyPrefix,
	}

	store, err := objectstore.NewStore(storeConfig, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create object store: %w", err)
	}

	// Создаем бакет при старте если он отсутствует
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.EnsureBucket(ctx); err != nil {
		f.logger.Warn("Failed to ensure bucket, continuing", zap.Error(err))
	}

	return store, nil
}

// CreateNotifier создает Telegram нотификатор если он настроен
func (f *ComponentFactory) CreateNotifier() (*telegram.Notifier, error) {
	if f.config.BotToken == "" || f.config.NotifyChatID == 0 {
		return nil, nil
	}

	notifier, err := telegram.NewNotifier(f.config.BotToken, f.config.NotifyChatID, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram notifier: %w", err)
	}

	return notifier, nil
}

// CreateExtractor создает приложение со всеми компонентами
func (f *ComponentFactory) CreateExtractor() (*Extractor, error) {
	extractor, err := NewExtractor(f.config, f.logger)
	if err != nil {
		return nil, err
	}

	spotifyClient, err := f.CreateSpotifyClient()
	if err != nil {
		return nil, err
	}

	store, err := f.CreateObjectStore()
	if err != nil {
		return nil, err
	}

	// Журнал выгрузок опционален
	var runs model.ExtractionRunRepository
	if f.config.DatabaseURL != "" {
		db, err := f.CreateDatabase()
		if err != nil {
			return nil, err
		}
		extractor.db = db
		runs = db.GetRunRepository()
	} else {
		f.logger.Info("Database URL not configured, extraction runs will not be recorded")
	}

	// Уведомления опциональны
	notifier, err := f.CreateNotifier()
	if err != nil {
		f.logger.Error("Failed to create notifier, continuing without notifications", zap.Error(err))
		notifier = nil
	}

	var serviceNotifier service.Notifier
	if notifier != nil {
		serviceNotifier = notifier
	}

	extractor.services = service.NewServices(f.config, spotifyClient, store, runs, serviceNotifier, f.logger)

	// Health check сервер
	if f.config.HealthCheckEnabled {
		var dbPinger health.Pinger
		if extractor.db != nil {
			dbPinger = extractor.db
		}
		extractor.health = health.NewServer(f.config.HealthPort, f.logger, dbPinger, store, extractor.services.Metrics)
	}

	return extractor, nil
}
