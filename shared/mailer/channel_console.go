package mailer

import (
	"context"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// consoleSender writes the notification to the process log instead of
// delivering it. It terminates the fallback chain and never fails, which is
// what lets Send report success even with no email provider configured.
type consoleSender struct {
	logger *zerolog.Logger
}

const consoleBodyLimit = 256

func (s *consoleSender) name() Channel {
	return ChannelConsole
}

func (s *consoleSender) send(_ context.Context, email Email) error {
	body := email.Body
	if len(body) > consoleBodyLimit {
		// Back up to a rune boundary so the log line stays valid UTF-8.
		cut := consoleBodyLimit
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = body[:cut] + "..."
	}

	s.logger.Info().
		Strs("to", email.To).
		Str("subject", email.Subject).
		Str("body", body).
		Msg("email delivery not configured, writing notification to log")

	return nil
}
