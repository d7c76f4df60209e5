// Package service содержит бизнес-логику приложения.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"spotifyetl/internal/gateway/objectstore"
	"spotifyetl/internal/gateway/spotify"
	"spotifyetl/internal/infrastructure/metrics"
	"spotifyetl/internal/model"

	"go.uber.org/zap"
)

// timestampLayout повторяет формат ключей исходного пайплайна:
// человекочитаемое время с пробелом и двоеточиями. Формат намеренно
// не нормализуется, существующие объекты в бакете зависят от него.
const timestampLayout = "2006-01-02 15:04:05.000000"

// Notifier определяет интерфейс для уведомлений о выгрузках
type Notifier interface {
	NotifyRun(ctx context.Context, run *model.ExtractionRun)
}

// ExtractService выполняет выгрузку плейлиста в объектное хранилище
type ExtractService struct {
	spotifyClient spotify.Interface
	store         objectstore.Interface
	runs          model.ExtractionRunRepository
	notifier      Notifier
	metrics       *metrics.Metrics
	playlistURL   string
	keyPrefix     string
	allPages      bool
	logger        *zap.Logger
	now           func() time.Time
}

// NewExtractService создает новый сервис выгрузки
func NewExtractService(
	spotifyClient spotify.Interface,
	store objectstore.Interface,
	runs model.ExtractionRunRepository,
	notifier Notifier,
	m *metrics.Metrics,
	playlistURL, keyPrefix string,
	allPages bool,
	logger *zap.Logger,
) *ExtractService {
	return &ExtractService{
		spotifyClient: spotifyClient,
		store:         store,
		runs:          runs,
		notifier:      notifier,
		metrics:       m,
		playlistURL:   playlistURL,
		keyPrefix:     keyPrefix,
		allPages:      allPages,
		logger:        logger,
		now:           time.Now,
	}
}

// BuildObjectKey строит ключ объекта для момента времени
func BuildObjectKey(keyPrefix string, t time.Time) string {
	return keyPrefix + "spotify_raw_" + t.Format(timestampLayout) + ".json"
}

// Run выполняет одну выгрузку: получает треки плейлиста, сериализует
// ответ и записывает один объект в хранилище
func (s *ExtractService) Run(ctx context.Context) (*model.ExtractionRun, error) {
	startedAt := s.now()

	playlistID, err := s.spotifyClient.ExtractPlaylistID(s.playlistURL)
	if err != nil {
		return nil, s.finishRun(ctx, &model.ExtractionRun{
			PlaylistID: s.playlistURL,
			Bucket:     s.store.Bucket(),
			StartedAt:  startedAt,
		}, fmt.Errorf("failed to extract playlist ID: %w", err))
	}

	run := &model.ExtractionRun{
		PlaylistID: playlistID,
		Bucket:     s.store.Bucket(),
		StartedAt:  startedAt,
	}

	s.logger.Info("Starting playlist extraction",
		zap.String("playlist_id", playlistID),
		zap.Bool("all_pages", s.allPages))

	payload, err := s.spotifyClient.GetRawPlaylistTracks(ctx, s.playlistURL, s.allPages)
	if err != nil {
		return nil, s.finishRun(ctx, run, fmt.Errorf("failed to get playlist tracks: %w", err))
	}

	// Ответ сериализуется без изменений
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, s.finishRun(ctx, run, fmt.Errorf("failed to serialize payload: %w", err))
	}

	run.ObjectKey = BuildObjectKey(s.keyPrefix, s.now())
	run.PayloadBytes = int64(len(body))
	run.ItemCount = countItems(payload)

	// Тип содержимого не устанавливается, как в исходном пайплайне
	if err := s.store.Put(ctx, run.ObjectKey, bytes.NewReader(body), run.PayloadBytes, ""); err != nil {
		return nil, s.finishRun(ctx, run, fmt.Errorf("failed to upload payload: %w", err))
	}

	if err := s.finishRun(ctx, run, nil); err != nil {
		return nil, err
	}

	s.logger.Info("Playlist extraction completed",
		zap.String("playlist_id", playlistID),
		zap.String("object_key", run.ObjectKey),
		zap.Int64("payload_bytes", run.PayloadBytes),
		zap.Int("items", run.ItemCount),
		zap.Duration("duration", run.Duration()))

	return run, nil
}

// finishRun завершает запись о выгрузке, сохраняет ее в журнал и
// отправляет уведомление. Ошибка журнала или уведомления не
// прерывает выгрузку.
func (s *ExtractService) finishRun(ctx context.Context, run *model.ExtractionRun, runErr error) error {
	run.FinishedAt = s.now()

	if runErr != nil {
		run.Status = model.RunStatusFailed
		run.Error = runErr.Error()
		s.logger.Error("Playlist extraction failed",
			zap.String("playlist_id", run.PlaylistID),
			zap.Error(runErr))
	} else {
		run.Status = model.RunStatusSucceeded
	}

	if s.metrics != nil {
		s.metrics.RecordRun(runErr == nil, run.PayloadBytes, run.FinishedAt)
	}

	if s.runs != nil {
		if err := s.runs.Create(run); err != nil {
			s.logger.Error("Failed to record extraction run", zap.Error(err))
		}
	}

	if s.notifier != nil {
		s.notifier.NotifyRun(ctx, run)
	}

	return runErr
}

// countItems возвращает размер массива items в сыром ответе
func countItems(payload spotify.RawPage) int {
	items, ok := payload["items"].([]interface{})
	if !ok {
		return 0
	}
	return len(items)
}
