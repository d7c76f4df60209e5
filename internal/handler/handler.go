// Package handler содержит вход для бессерверной платформы.
package handler

import (
	"context"
	"encoding/json"

	"spotifyetl/internal/app"
	"spotifyetl/internal/config"
	"spotifyetl/pkg/logger"

	"go.uber.org/zap"
)

// Handle выполняет одну выгрузку по вызову платформы.
// Тело события принимается и игнорируется, контракт на него не
// накладывается. Любая ошибка возвращается платформе как ошибка
// вызова.
func Handle(ctx context.Context, event json.RawMessage) error {
	log := logger.New()
	defer func() {
		// Ошибка Sync на stdout игнорируется
		_ = log.Sync()
	}()

	_ = event

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load configuration", zap.Error(err))
		return err
	}

	extractor, err := app.NewExtractorWithFactory(cfg, log)
	if err != nil {
		log.Error("Failed to create extractor", zap.Error(err))
		return err
	}
	defer extractor.Stop()

	if _, err := extractor.RunOnce(ctx); err != nil {
		return err
	}

	return nil
}
