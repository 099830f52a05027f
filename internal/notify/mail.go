package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/pagewatch/pagewatch/internal/config"
)

// Mailer delivers alerts over SMTP. The configured account address is used as
// both sender and recipient, so alerts land in the operator's own inbox.
type Mailer struct {
	client  *mail.Client
	address string
}

// NewMailer builds an SMTP client for the given endpoint and credentials.
// The connection itself is not established here; call Verify for that.
func NewMailer(cfg config.MailConfig, creds config.Credentials) (*Mailer, error) {
	client, err := mail.NewClient(cfg.SMTPHost,
		mail.WithPort(cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(creds.Account),
		mail.WithPassword(creds.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &Mailer{client: client, address: creds.Account}, nil
}

// Verify dials the SMTP server and authenticates, then disconnects. It sends
// no mail; it only proves that alerts could be delivered later.
func (m *Mailer) Verify(ctx context.Context) error {
	if err := m.client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("verify smtp transport: %w", err)
	}
	if err := m.client.Close(); err != nil {
		return fmt.Errorf("close smtp connection: %w", err)
	}
	return nil
}

// Send delivers one alert to the fixed recipient.
func (m *Mailer) Send(ctx context.Context, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.address); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(m.address); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
