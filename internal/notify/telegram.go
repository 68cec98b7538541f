// Package notify отправляет учителям уведомления о созданных занятиях.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/tutor_sessions/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// MessageSender часть API бота, нужная для уведомлений
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// TelegramNotifier шлёт учителю сводку по созданной серии
type TelegramNotifier struct {
	bot    MessageSender
	logger *zap.Logger
}

// NewTelegramNotifier создаёт бота только для исходящих сообщений
func NewTelegramNotifier(token string, logger *zap.Logger) (*TelegramNotifier, error) {
	b, err := bot.New(token, bot.WithSkipGetMe())
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return NewNotifier(b, logger), nil
}

// NewNotifier создаёт уведомитель поверх готового отправителя
func NewNotifier(sender MessageSender, logger *zap.Logger) *TelegramNotifier {
	return &TelegramNotifier{bot: sender, logger: logger}
}

// SessionsCreated отправляет уведомление; учителя без Telegram пропускаются
func (n *TelegramNotifier) SessionsCreated(ctx context.Context, tutor *model.User, meta model.SessionMeta, result model.SubmissionResult) error {
	chatID, ok := tutor.TelegramID.Get()
	if !ok {
		n.logger.Debug("Tutor has no telegram id, skipping notification",
			zap.Int64("tutor_id", tutor.ID))
		return nil
	}

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   FormatSessionsCreated(meta, result),
	})
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}

	n.logger.Info("Tutor notified about new sessions",
		zap.Int64("tutor_id", tutor.ID),
		zap.String("group_id", result.GroupID.String()),
		zap.Int("created", result.CreatedCount))

	return nil
}

// FormatSessionsCreated текст уведомления о серии
func FormatSessionsCreated(meta model.SessionMeta, result model.SubmissionResult) string {
	var b strings.Builder

	if result.CreatedCount == result.TotalCount {
		fmt.Fprintf(&b, "✅ New sessions scheduled\n\n")
	} else {
		fmt.Fprintf(&b, "⚠️ Sessions partially scheduled\n\n")
	}

	fmt.Fprintf(&b, "📚 %s\n", meta.Title)
	fmt.Fprintf(&b, "🗓 Created: %d of %d\n", result.CreatedCount, result.TotalCount)
	fmt.Fprintf(&b, "🌍 Timezone: %s", result.Timezone.Name)

	if msg, ok := result.FirstError.Get(); ok {
		fmt.Fprintf(&b, "\n\n❌ %s", msg)
	}

	return b.String()
}
