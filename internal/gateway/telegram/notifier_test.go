package telegram

import (
	"context"
	"strings"
	"testing"
	"time"

	"spotifyetl/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// fakeBot записывает отправленные сообщения
type fakeBot struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func TestNotifier_NotifyRun(t *testing.T) {
	bot := &fakeBot{}
	notifier := NewNotifierWithBot(bot, 42, zap.NewNop())

	started := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	run := &model.ExtractionRun{
		PlaylistID:   "37i9dQZEVXbNG2KDcFcKOF",
		Bucket:       "spotify-etl-project-tasneem",
		ObjectKey:    "raw_data/to_processed/spotify_raw_2025-06-01 12:00:00.000000.json",
		PayloadBytes: 1024,
		ItemCount:    50,
		Status:       model.RunStatusSucceeded,
		StartedAt:    started,
		FinishedAt:   started.Add(3 * time.Second),
	}

	notifier.NotifyRun(context.Background(), run)

	if len(bot.sent) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(bot.sent))
	}

	msg, ok := bot.sent[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("Expected MessageConfig, got %T", bot.sent[0])
	}

	if msg.ChatID != 42 {
		t.Errorf("Expected chat ID 42, got %d", msg.ChatID)
	}

	if !strings.Contains(msg.Text, run.ObjectKey) {
		t.Errorf("Expected message to contain object key, got %q", msg.Text)
	}
}

func TestNotifier_NotifyRunFailure(t *testing.T) {
	bot := &fakeBot{}
	notifier := NewNotifierWithBot(bot, 42, zap.NewNop())

	run := &model.ExtractionRun{
		PlaylistID: "37i9dQZEVXbNG2KDcFcKOF",
		Status:     model.RunStatusFailed,
		Error:      "failed to get playlist tracks: status 502",
	}

	notifier.NotifyRun(context.Background(), run)

	if len(bot.sent) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(bot.sent))
	}

	msg := bot.sent[0].(tgbotapi.MessageConfig)
	if !strings.Contains(msg.Text, "не удалась") || !strings.Contains(msg.Text, "502") {
		t.Errorf("Unexpected failure message: %q", msg.Text)
	}
}
