// Package mail описывает отправку писем пользователям.
// Реальная доставка (SMTP, SES) подключается через интерфейс Mailer.
package mail

import (
	"context"
	"log/slog"
)

// Message представляет исходящее письмо
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Mailer отправляет письма
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer пишет письма в лог вместо отправки
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer создает новый LogMailer
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send логирует письмо
func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.logger.InfoContext(ctx, "Mail sent",
		"from", msg.From,
		"to", msg.To,
		"subject", msg.Subject,
		"html", msg.HTML,
	)
	return nil
}
