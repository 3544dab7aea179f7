package email

import (
	"context"
	"fmt"
	"log/slog"

	"contact-relay/config"
	"contact-relay/pkg/logger"
)

// Charset is used for subject and both body parts.
const Charset = "UTF-8"

// Message is one outbound email with a plain-text and an HTML body.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers a fully composed Message. Implementations must not retry.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewSender builds the Sender selected by cfg.EmailProvider.
func NewSender(ctx context.Context, cfg *config.Config) (Sender, error) {
	switch cfg.EmailProvider {
	case config.ProviderSES, "":
		return NewSESSender(ctx, cfg.AWSRegion)
	case config.ProviderSMTP:
		if cfg.SMTPHost == "" {
			return nil, fmt.Errorf("email provider %q requires SMTP_HOST", cfg.EmailProvider)
		}
		return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword), nil
	case config.ProviderLog:
		return NewLogSender(logger.Log), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.EmailProvider)
	}
}

// LogSender logs messages instead of sending them. Used for local runs.
type LogSender struct {
	log *slog.Logger
}

// NewLogSender creates a LogSender; a nil logger means slog.Default().
func NewLogSender(log *slog.Logger) *LogSender {
	if log == nil {
		log = slog.Default()
	}
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.log.InfoContext(ctx, "sending email (log only)",
		"from", msg.From,
		"to", msg.To,
		"reply_to", msg.ReplyTo,
		"subject", msg.Subject,
		"text_bytes", len(msg.Text),
		"html_bytes", len(msg.HTML),
	)
	return nil
}
