package metrics

import "time"

// Interface определяет интерфейс для системы метрик
type Interface interface {
	// RecordRun записывает завершение выгрузки
	RecordRun(success bool, payloadBytes int64, finishedAt time.Time)

	// SetNextRun устанавливает время следующей выгрузки по расписанию
	SetNextRun(nextRun time.Time)

	// GetStats возвращает все метрики в виде map
	GetStats() map[string]interface{}
}
