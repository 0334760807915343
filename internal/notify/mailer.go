package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/wneessen/go-mail"
)

// SMTPMailer sends plain-text mail through one SMTP account. It implements
// the notifier contract the question lifecycle depends on; any dial or send
// problem surfaces as a plain error, bounded by the client timeout.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	timeout  time.Duration
}

type SMTPOption func(*SMTPMailer)

func WithTimeout(d time.Duration) SMTPOption {
	return func(m *SMTPMailer) { m.timeout = d }
}

func NewSMTPMailer(host string, port int, username, password string, opts ...SMTPOption) *SMTPMailer {
	m := &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		timeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *SMTPMailer) Send(ctx context.Context, subject, body, from string, to []string) error {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return fmt.Errorf("invalid from address %q: %w", from, err)
	}
	if err := msg.To(to...); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(m.timeout),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}

// LogMailer writes mail to the log instead of sending it. Used when SMTP is
// not configured, so local runs still show what would have gone out.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, subject, body, from string, to []string) error {
	log.Printf("mail (not sent, smtp disabled): from=%s to=%v subject=%q\n%s", from, to, subject, body)
	return nil
}
