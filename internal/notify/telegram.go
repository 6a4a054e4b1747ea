package notify

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"wordbook/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Sender is the part of *tele.Bot used for reports
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// TelegramReporter sends a session summary to a fixed chat
type TelegramReporter struct {
	sender Sender
	chat   tele.Recipient
	logger *zap.Logger
}

// NewTelegramReporter creates an offline bot (no getMe call) bound to chatID
func NewTelegramReporter(token string, chatID int64, logger *zap.Logger) (*TelegramReporter, error) {
	bot, err := tele.NewBot(tele.Settings{
		Token:   token,
		Offline: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	return NewTelegramReporterWithSender(bot, chatID, logger), nil
}

// NewTelegramReporterWithSender creates a reporter over any Sender
func NewTelegramReporterWithSender(sender Sender, chatID int64, logger *zap.Logger) *TelegramReporter {
	return &TelegramReporter{
		sender: sender,
		chat:   &tele.Chat{ID: chatID},
		logger: logger,
	}
}

// Report sends the summary of s
func (r *TelegramReporter) Report(ctx context.Context, s domain.SessionResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := r.sender.Send(r.chat, FormatReport(s)); err != nil {
		r.logger.Warn("Failed to send session report", zap.String("session_id", s.ID), zap.Error(err))
		return fmt.Errorf("failed to send report: %w", err)
	}

	r.logger.Info("Session report sent", zap.String("session_id", s.ID))
	return nil
}

// FormatReport renders a session summary for chat
func FormatReport(s domain.SessionResult) string {
	var b strings.Builder

	switch s.Mode {
	case domain.ModeExam:
		b.WriteString("📝 测试结束")
	default:
		b.WriteString("🔁 错题本练习")
	}
	switch s.Status {
	case domain.StatusInterrupted:
		b.WriteString("（中断）")
	case domain.StatusStopped:
		b.WriteString("（已退出）")
	}
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "答题：%d\n答对：%d\n答错：%d\n", s.Asked, s.Correct, s.Wrong())
	if !s.FinishedAt.IsZero() && !s.StartedAt.IsZero() {
		fmt.Fprintf(&b, "用时：%s\n", s.FinishedAt.Sub(s.StartedAt).Round(time.Second))
	}

	if s.Mode == domain.ModeDrill {
		if s.BookRemaining == 0 && s.Status == domain.StatusDone {
			b.WriteString("🎉 错题本已清空！\n")
		} else {
			fmt.Fprintf(&b, "错题本剩余：%d\n", s.BookRemaining)
		}
	}
	if s.MistakeFile != "" {
		fmt.Fprintf(&b, "错题文件：%s\n", filepath.Base(s.MistakeFile))
	}

	return strings.TrimRight(b.String(), "\n")
}
