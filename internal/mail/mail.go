// Package mail delivers password reset codes over SMTP.
package mail

import (
	"context"
	"fmt"

	"file_vault/internal/config"

	gomail "github.com/wneessen/go-mail"
)

const resetSubject = "Password Reset Code"

// Sender delivers reset codes to a user's mailbox.
type Sender interface {
	SendResetCode(ctx context.Context, to, code string) error
}

type smtpClient interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

type SMTPSender struct {
	client smtpClient
	from   string
}

var _ Sender = (*SMTPSender)(nil)

// NewSMTPSender creates a sender authenticating with PLAIN over mandatory STARTTLS.
func NewSMTPSender(cfg config.MailConfig) (*SMTPSender, error) {
	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("create smtp client for %s: %w", cfg.Host, err)
	}
	return &SMTPSender{client: client, from: cfg.From}, nil
}

func (s *SMTPSender) SendResetCode(ctx context.Context, to, code string) error {
	msg, err := resetMessage(s.from, to, code)
	if err != nil {
		return err
	}
	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send reset code: %w", err)
	}
	return nil
}

func resetMessage(from, to, code string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("set sender %q: %w", from, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(resetSubject)
	msg.SetBodyString(gomail.TypeTextPlain, "Your password reset code is: "+code)
	return msg, nil
}
