// Package metrics содержит метрики выгрузок.
package metrics

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// notSet используется для времени, которое еще не было установлено
const notSet = "Не установлено"

// Metrics содержит счетчики выгрузок
type Metrics struct {
	mu               sync.RWMutex
	totalRuns        int64
	succeededRuns    int64
	failedRuns       int64
	lastRun          time.Time
	nextRun          time.Time
	lastPayloadBytes int64
	startTime        time.Time
	logger           *zap.Logger
}

var _ Interface = (*Metrics)(nil)

// NewMetrics создает новую систему метрик
func NewMetrics(logger *zap.Logger) *Metrics {
	return &Metrics{
		startTime: time.Now(),
		logger:    logger,
	}
}

// RecordRun записывает завершение выгрузки
func (m *Metrics) RecordRun(success bool, payloadBytes int64, finishedAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalRuns++
	if success {
		m.succeededRuns++
		m.lastPayloadBytes = payloadBytes
	} else {
		m.failedRuns++
	}
	m.lastRun = finishedAt
}

// SetNextRun устанавливает время следующей выгрузки по расписанию
func (m *Metrics) SetNextRun(nextRun time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextRun = nextRun
}

// GetStats возвращает все метрики в виде map
func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"runs": map[string]interface{}{
			"total":              m.totalRuns,
			"succeeded":          m.succeededRuns,
			"failed":             m.failedRuns,
			"last_run":           m.formatTime(m.lastRun),
			"next_run":           m.formatTime(m.nextRun),
			"last_payload_bytes": m.lastPayloadBytes,
		},
		"system": map[string]interface{}{
			"uptime": m.formatDuration(time.Since(m.startTime)),
		},
	}
}

// formatTime форматирует время в читаемый формат
func (m *Metrics) formatTime(t time.Time) string {
	if t.IsZero() {
		return notSet
	}
	return t.Format("02.01.06 15:04")
}

// formatDuration форматирует длительность в читаемый формат
func (m *Metrics) formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%d мин %d сек", minutes, seconds)
}
