// Package model содержит модели данных приложения.
package model

import (
	"time"

	"github.com/uptrace/bun"
)

// RunStatus представляет статус выгрузки
type RunStatus string

const (
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

// IsValid проверяет валидность статуса
func (s RunStatus) IsValid() bool {
	switch s {
	case RunStatusSucceeded, RunStatusFailed:
		return true
	default:
		return false
	}
}

// String возвращает строковое представление статуса
func (s RunStatus) String() string {
	return string(s)
}

// ExtractionRun представляет одну выгрузку плейлиста в хранилище
type ExtractionRun struct {
	bun.BaseModel `bun:"table:extraction_runs"`

	ID           int       `bun:"id,pk,autoincrement" json:"id"`
	PlaylistID   string    `bun:"playlist_id,notnull" json:"playlist_id"`
	Bucket       string    `bun:"bucket,notnull" json:"bucket"`
	ObjectKey    string    `bun:"object_key" json:"object_key"`
	PayloadBytes int64     `bun:"payload_bytes,notnull,default:0" json:"payload_bytes"`
	ItemCount    int       `bun:"item_count,notnull,default:0" json:"item_count"`
	Status       RunStatus `bun:"status,notnull" json:"status"`
	Error        string    `bun:"error" json:"error"`
	StartedAt    time.Time `bun:"started_at,notnull" json:"started_at"`
	FinishedAt   time.Time `bun:"finished_at,notnull" json:"finished_at"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// Duration возвращает длительность выгрузки
func (r *ExtractionRun) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// ExtractionRunRepository определяет интерфейс для работы с журналом выгрузок
type ExtractionRunRepository interface {
	Create(run *ExtractionRun) error
	GetRecent(limit int) ([]ExtractionRun, error)
	GetLastSucceeded(playlistID string) (*ExtractionRun, error)
}
