package metrics

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestMetrics_RecordRun(t *testing.T) {
	logger := zap.NewNop()
	metrics := NewMetrics(logger)

	// Тестируем начальное состояние
	stats := metrics.GetStats()
	runs := stats["runs"].(map[string]interface{})

	if runs["total"] != int64(0) {
		t.Errorf("Expected 0 total runs, got %v", runs["total"])
	}

	if runs["last_run"] != "Не установлено" {
		t.Errorf("Expected 'Не установлено', got %v", runs["last_run"])
	}

	// Успешная выгрузка
	finishedAt := time.Date(2024, 12, 25, 15, 30, 0, 0, time.UTC)
	metrics.RecordRun(true, 2048, finishedAt)

	stats = metrics.GetStats()
	runs = stats["runs"].(map[string]interface{})

	if runs["total"] != int64(1) || runs["succeeded"] != int64(1) || runs["failed"] != int64(0) {
		t.Errorf("Unexpected counters after success: %v", runs)
	}

	if runs["last_payload_bytes"] != int64(2048) {
		t.Errorf("Expected 2048 payload bytes, got %v", runs["last_payload_bytes"])
	}

	if runs["last_run"] != "25.12.24 15:30" {
		t.Errorf("Expected '25.12.24 15:30', got %v", runs["last_run"])
	}

	// Неуспешная выгрузка не трогает last_payload_bytes
	metrics.RecordRun(false, 0, finishedAt.Add(time.Hour))

	stats = metrics.GetStats()
	runs = stats["runs"].(map[string]interface{})

	if runs["total"] != int64(2) || runs["failed"] != int64(1) {
		t.Errorf("Unexpected counters after failure: %v", runs)
	}

	if runs["last_payload_bytes"] != int64(2048) {
		t.Errorf("Expected payload bytes to stay 2048, got %v", runs["last_payload_bytes"])
	}
}

func TestMetrics_SetNextRun(t *testing.T) {
	logger := zap.NewNop()
	metrics := NewMetrics(logger)

	stats := metrics.GetStats()
	runs := stats["runs"].(map[string]interface{})
	if runs["next_run"] != "Не установлено" {
		t.Errorf("Expected 'Не установлено', got %v", runs["next_run"])
	}

	next := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	metrics.SetNextRun(next)

	stats = metrics.GetStats()
	runs = stats["runs"].(map[string]interface{})

	expected := next.Format("02.01.06 15:04")
	if runs["next_run"] != expected {
		t.Errorf("Expected %s, got %v", expected, runs["next_run"])
	}
}

func TestMetrics_FormatDuration(t *testing.T) {
	logger := zap.NewNop()
	metrics := NewMetrics(logger)

	result := metrics.formatDuration(115556550 * time.Nanosecond)
	if result != "0.12s" {
		t.Errorf("Expected 0.12s, got %s", result)
	}

	result = metrics.formatDuration(2*time.Minute + 6*time.Second)
	if result != "2 мин 6 сек" {
		t.Errorf("Expected '2 мин 6 сек', got %s", result)
	}
}
