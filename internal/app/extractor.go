// Package app содержит основную логику приложения.
package app

import (
	"context"
	"fmt"
	"sync"

	"spotifyetl/internal/config"
	"spotifyetl/internal/health"
	"spotifyetl/internal/model"
	"spotifyetl/internal/service"
	"spotifyetl/internal/storage"

	"go.uber.org/zap"
)

// Extractor представляет приложение выгрузки плейлиста
type Extractor struct {
	config   *config.Config
	logger   *zap.Logger
	db       *storage.Postgres
	health   *health.Server
	services *service.Services
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewExtractor создает новый экземпляр приложения
func NewExtractor(cfg *config.Config, logger *zap.Logger) (*Extractor, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	// Создаем контекст для управления жизненным циклом
	ctx, cancel := context.WithCancel(context.Background())

	return &Extractor{
		config: cfg,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// NewExtractorWithFactory создает новый экземпляр приложения со всеми компонентами
func NewExtractorWithFactory(cfg *config.Config, logger *zap.Logger) (*Extractor, error) {
	factory := NewComponentFactory(cfg, logger)
	return factory.CreateExtractor()
}

// RunOnce выполняет одну выгрузку и завершается
func (e *Extractor) RunOnce(ctx context.Context) (*model.ExtractionRun, error) {
	if e.services == nil || e.services.Extract == nil {
		return nil, fmt.Errorf("extract service is not initialized")
	}

	runCtx, cancel := context.WithTimeout(ctx, e.config.RunTimeout)
	defer cancel()

	if e.db != nil {
		if err := e.db.Migrate(runCtx); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return e.services.Extract.Run(runCtx)
}

// Start запускает приложение в режиме демона
func (e *Extractor) Start(ctx context.Context) error {
	e.logger.Info("Starting extractor")

	// Применяем миграции журнала выгрузок
	if e.db != nil {
		if err := e.db.Migrate(e.ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Запускаем health check сервер
	if e.health != nil {
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			if err := e.health.Start(); err != nil {
				// Проверяем, является ли ошибка нормальной остановкой
				if err.Error() == "http: Server closed" {
					e.logger.Info("Health check server stopped normally")
				} else {
					e.logger.Error("Health check server failed", zap.Error(err))
				}
			}
		}()
	}

	// Запускаем планировщик выгрузок
	if err := e.services.Scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	e.logger.Info("Extractor started successfully")

	// Ожидаем сигнал остановки
	select {
	case <-ctx.Done():
	case <-e.ctx.Done():
	}

	e.Stop()
	return nil
}

// Stop останавливает приложение
func (e *Extractor) Stop() {
	e.logger.Info("Stopping extractor")

	e.cancel()

	if e.services != nil && e.services.Scheduler != nil {
		e.services.Scheduler.Stop()
	}

	if e.health != nil {
		if err := e.health.Stop(); err != nil {
			e.logger.Error("Failed to stop health check server", zap.Error(err))
		}
	}

	e.wg.Wait()

	if e.db != nil {
		if err := e.db.Close(); err != nil {
			e.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	e.logger.Info("Extractor stopped")
}
