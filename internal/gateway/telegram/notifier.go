// Package telegram содержит отправку уведомлений о выгрузках.
package telegram

import (
	"context"
	"fmt"
	"time"

	"spotifyetl/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// BotAPI определяет используемую часть Telegram Bot API
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier отправляет уведомления о выгрузках в Telegram чат
type Notifier struct {
	bot    BotAPI
	chatID int64
	logger *zap.Logger
}

// NewNotifier создает новый Telegram нотификатор
func NewNotifier(botToken string, chatID int64, logger *zap.Logger) (*Notifier, error) {
	if botToken == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	if chatID == 0 {
		return nil, fmt.Errorf("chat ID is required")
	}

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	logger.Info("Telegram notifier created", zap.String("username", bot.Self.UserName))

	return &Notifier{
		bot:    bot,
		chatID: chatID,
		logger: logger,
	}, nil
}

// NewNotifierWithBot создает нотификатор с готовым Bot API
func NewNotifierWithBot(bot BotAPI, chatID int64, logger *zap.Logger) *Notifier {
	return &Notifier{
		bot:    bot,
		chatID: chatID,
		logger: logger,
	}
}

// NotifyRun отправляет уведомление о завершении выгрузки.
// Ошибка отправки логируется и не влияет на выгрузку.
func (n *Notifier) NotifyRun(_ context.Context, run *model.ExtractionRun) {
	msg := tgbotapi.NewMessage(n.chatID, formatRunMessage(run))

	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("Failed to send run notification", zap.Error(err))
		return
	}

	n.logger.Debug("Run notification sent", zap.Int64("chat_id", n.chatID))
}

// formatRunMessage форматирует сообщение о выгрузке
func formatRunMessage(run *model.ExtractionRun) string {
	if run.Status == model.RunStatusFailed {
		return fmt.Sprintf("❌ Выгрузка плейлиста %s не удалась:\n%s", run.PlaylistID, run.Error)
	}

	return fmt.Sprintf("✅ Плейлист %s выгружен\nОбъект: %s\nТреков: %d, размер: %d байт, длительность: %s",
		run.PlaylistID, run.ObjectKey, run.ItemCount, run.PayloadBytes, run.Duration().Round(time.Millisecond))
}
