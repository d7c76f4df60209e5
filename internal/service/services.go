// Package service содержит бизнес-логику приложения.
package service

import (
	"spotifyetl/internal/config"
	"spotifyetl/internal/gateway/objectstore"
	"spotifyetl/internal/gateway/spotify"
	"spotifyetl/internal/infrastructure/metrics"
	"spotifyetl/internal/model"

	"go.uber.org/zap"
)

// Services содержит все сервисы приложения
type Services struct {
	Extract   *ExtractService
	Scheduler *Scheduler
	Metrics   *metrics.Metrics
}

// NewServices создает все сервисы.
// runs и notifier могут быть nil если соответствующие компоненты отключены.
func NewServices(
	cfg *config.Config,
	spotifyClient spotify.Interface,
	store objectstore.Interface,
	runs model.ExtractionRunRepository,
	notifier Notifier,
	logger *zap.Logger,
) *Services {
	m := metrics.NewMetrics(logger)

	extract := NewExtractService(
		spotifyClient,
		store,
		runs,
		notifier,
		m,
		cfg.PlaylistURL,
		cfg.Storage.KeyPrefix,
		cfg.ExtractAllPages,
		logger,
	)

	scheduler := NewScheduler(extract, cfg.ExtractSchedule, cfg.RunTimeout, logger)

	return &Services{
		Extract:   extract,
		Scheduler: scheduler,
		Metrics:   m,
	}
}
