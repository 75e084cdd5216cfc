package mailer

import (
	"context"

	"gopkg.in/gomail.v2"
)

// smtpSender delivers mail over STARTTLS via gomail. It is the
// highest-priority channel when SMTP credentials are configured.
type smtpSender struct {
	dialer *gomail.Dialer
	from   string
}

func newSMTPSender(cfg Config) *smtpSender {
	return &smtpSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.From,
	}
}

func (s *smtpSender) name() Channel {
	return ChannelSMTP
}

func (s *smtpSender) send(ctx context.Context, email Email) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", email.To...)
	msg.SetHeader("Subject", email.Subject)
	msg.SetBody("text/plain", email.Body)
	if email.HTMLBody != "" {
		msg.AddAlternative("text/html", email.HTMLBody)
	}

	// gomail's dialer has no context support, so the blocking send runs in a
	// goroutine and the context deadline converts a hung provider into a
	// channel failure.
	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
