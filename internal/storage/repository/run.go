// Package repository содержит репозитории для работы с базой данных.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"spotifyetl/internal/model"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ExtractionRunRepository реализует интерфейс для работы с журналом выгрузок
type ExtractionRunRepository struct {
	db     *bun.DB
	logger *zap.Logger
}

var _ model.ExtractionRunRepository = (*ExtractionRunRepository)(nil)

// NewExtractionRunRepository создает новый репозиторий журнала выгрузок
func NewExtractionRunRepository(db *bun.DB, logger *zap.Logger) *ExtractionRunRepository {
	return &ExtractionRunRepository{
		db:     db,
		logger: logger,
	}
}

// Create создает новую запись о выгрузке
func (r *ExtractionRunRepository) Create(run *model.ExtractionRun) error {
	ctx := context.Background()

	if !run.Status.IsValid() {
		return fmt.Errorf("invalid run status: %s", run.Status)
	}

	_, err := r.db.NewInsert().
		Model(run).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to create extraction run: %w", err)
	}

	return nil
}

// GetRecent возвращает последние выгрузки
func (r *ExtractionRunRepository) GetRecent(limit int) ([]model.ExtractionRun, error) {
	ctx := context.Background()
	var runs []model.ExtractionRun

	err := r.db.NewSelect().
		Model(&runs).
		Order("started_at DESC").
		Limit(limit).
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to get recent extraction runs: %w", err)
	}

	return runs, nil
}

// GetLastSucceeded возвращает последнюю успешную выгрузку плейлиста
func (r *ExtractionRunRepository) GetLastSucceeded(playlistID string) (*model.ExtractionRun, error) {
	ctx := context.Background()
	run := new(model.ExtractionRun)

	err := r.db.NewSelect().
		Model(run).
		Where("playlist_id = ?", playlistID).
		Where("status = ?", model.RunStatusSucceeded).
		Order("finished_at DESC").
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get last succeeded run", zap.Error(err))
		return nil, fmt.Errorf("failed to get last succeeded run: %w", err)
	}

	return run, nil
}
