package notify

import (
	"context"
	"fmt"

	"github.com/livinglux/coliving-site/internal/config"
	"gopkg.in/gomail.v2"
)

// ChannelEmail names the SMTP channel in metrics and failure records.
const ChannelEmail = "email"

type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends HTML mail to the operator over SMTP.
type Mailer struct {
	cfg    config.SMTPConfig
	sender mailSender
}

// NewMailer returns a mailer for cfg. An incomplete cfg yields a mailer
// whose Send fails with ErrNotConfigured.
func NewMailer(cfg config.SMTPConfig) *Mailer {
	m := &Mailer{cfg: cfg}
	if cfg.Configured() {
		dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
		dialer.SSL = cfg.Port == 465
		m.sender = dialer
	}
	return m
}

func (m *Mailer) Name() string { return ChannelEmail }

// Configured reports whether SMTP credentials are present.
func (m *Mailer) Configured() bool { return m.sender != nil }

// Send delivers msg to the configured operator address.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if m.sender == nil {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	mail := gomail.NewMessage()
	mail.SetHeader("From", m.cfg.From)
	mail.SetHeader("To", m.cfg.To)
	if msg.ReplyTo != "" {
		mail.SetHeader("Reply-To", msg.ReplyTo)
	}
	mail.SetHeader("Subject", msg.Subject)
	mail.SetBody("text/plain", msg.Text)
	mail.AddAlternative("text/html", msg.HTML)

	if err := m.sender.DialAndSend(mail); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
