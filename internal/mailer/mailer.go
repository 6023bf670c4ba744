// Package mailer sends contact form messages over SMTP.
package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/Rrens/shopchat/internal/config"
)

// ErrNotConfigured is returned when no SMTP transport is set up
var ErrNotConfigured = errors.New("email transport not configured")

// Message is a plain-text email
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Sender delivers a message
type Sender interface {
	Enabled() bool
	Send(ctx context.Context, msg Message) error
}

// ContactMessage builds the notification for a contact form submission
func ContactMessage(from, to, nombre, email, mensaje string) Message {
	return Message{
		From:    from,
		To:      to,
		Subject: "Nueva solicitud de Contacto de: " + nombre,
		Body:    fmt.Sprintf("Nombre: %s\nEmail: %s\nMensaje: %s", nombre, email, mensaje),
	}
}

// SMTPSender sends through an authenticated SMTP relay
type SMTPSender struct {
	cfg config.SMTPConfig
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Enabled reports whether a host and a user are configured
func (s *SMTPSender) Enabled() bool {
	return s.cfg.Enabled()
}

// Send opens a connection per message; contact traffic is low.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if !s.Enabled() {
		return ErrNotConfigured
	}

	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return fmt.Errorf("invalid sender %q: %w", msg.From, err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)

	client, err := s.client()
	if err != nil {
		return err
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *SMTPSender) client() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.User),
		mail.WithPassword(s.cfg.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if s.cfg.Port > 0 {
		opts = append(opts, mail.WithPort(s.cfg.Port))
	}
	// implicit TLS on the SMTPS port
	if s.cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	return client, nil
}

var _ Sender = (*SMTPSender)(nil)
