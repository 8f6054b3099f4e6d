package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/invest/pkg/config"
	"github.com/amirasaad/invest/pkg/mail"
	"gopkg.in/gomail.v2"
)

// SMTPMailer delivers mail through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	logger *slog.Logger
}

func NewSMTPMailer(cfg *config.SMTP, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger.With("mailer", "smtp"),
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg mail.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)

	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	m.logger.Debug("email sent", "to", msg.To, "subject", msg.Subject)
	return nil
}

// LogMailer only logs messages. Used when SMTP is not configured.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger.With("mailer", "log")}
}

func (m *LogMailer) Send(_ context.Context, msg mail.Message) error {
	m.logger.Info("📧 email not sent (smtp disabled)", "to", msg.To, "subject", msg.Subject)
	return nil
}

// New picks the SMTP mailer when a host is configured.
func New(cfg *config.SMTP, logger *slog.Logger) mail.Mailer {
	if cfg == nil || cfg.Host == "" {
		return NewLogMailer(logger)
	}
	return NewSMTPMailer(cfg, logger)
}

var (
	_ mail.Mailer = (*SMTPMailer)(nil)
	_ mail.Mailer = (*LogMailer)(nil)
)
