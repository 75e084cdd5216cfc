package mailer

import (
	"context"

	"github.com/resend/resend-go/v2"
)

// resendSender delivers mail through the Resend transactional email API. It
// sits between SMTP and the console fallback in the chain.
type resendSender struct {
	client *resend.Client
	from   string
}

func newResendSender(cfg Config) *resendSender {
	return &resendSender{
		client: resend.NewClient(cfg.ResendAPIKey),
		from:   cfg.From,
	}
}

func (s *resendSender) name() Channel {
	return ChannelAPI
}

func (s *resendSender) send(ctx context.Context, email Email) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.Body,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	return err
}
