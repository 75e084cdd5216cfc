// Package mailer delivers account notifications through the first working
// channel of a fixed priority chain: SMTP, then the Resend transactional API,
// then the process log. The chain is decided once at construction from the
// supplied configuration; the log channel is always present and cannot fail,
// so Send never surfaces a delivery error to its caller.
package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Channel identifies a delivery channel in the fallback chain.
type Channel string

const (
	ChannelSMTP    Channel = "smtp"
	ChannelAPI     Channel = "api"
	ChannelConsole Channel = "console"
)

// Config selects and parameterizes the delivery channels. It is constructed
// once at startup and passed into New; channel selection does not change at
// runtime.
type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	ResendAPIKey string
	From         string
	SendTimeout  time.Duration
}

// Email represents a notification message with an HTML body and a plain-text
// alternative.
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	Body     string
}

// Outcome reports how a notification left the process. The caller never sees
// a delivery failure; the outcome exists so operational logging can tell real
// delivery apart from the console fallback.
type Outcome struct {
	// Channel is the channel that accepted the message.
	Channel Channel

	// AttemptErrors holds the failures from higher-priority channels tried
	// before Channel accepted the message, in attempt order.
	AttemptErrors []error
}

// Delivered reports whether the message left through a real channel rather
// than the console fallback.
func (o Outcome) Delivered() bool {
	return o.Channel != ChannelConsole
}

type sender interface {
	name() Channel
	send(ctx context.Context, email Email) error
}

// Mailer sends notifications through a priority-ordered channel chain.
type Mailer struct {
	chain   []sender
	timeout time.Duration
	logger  *zerolog.Logger
}

const defaultSendTimeout = 10 * time.Second

// New creates a Mailer with its channel chain selected from the configuration.
// SMTP is included when both a username and password are present, the Resend
// channel when an API key is present, and the console channel unconditionally
// as the terminal fallback.
func New(cfg Config, logger *zerolog.Logger) *Mailer {
	var chain []sender

	if cfg.SMTPUsername != "" && cfg.SMTPPassword != "" {
		chain = append(chain, newSMTPSender(cfg))
	}
	if cfg.ResendAPIKey != "" {
		chain = append(chain, newResendSender(cfg))
	}
	chain = append(chain, &consoleSender{logger: logger})

	timeout := cfg.SendTimeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}

	logger.Info().
		Str("channel", string(chain[0].name())).
		Msg("selected primary email delivery channel")

	return &Mailer{
		chain:   chain,
		timeout: timeout,
		logger:  logger,
	}
}

// Send delivers the email through the first channel in the chain that accepts
// it. A failing channel is logged and the next one is tried; the console
// channel at the end of the chain cannot fail, so every call yields an
// outcome rather than an error. Each outbound attempt is bounded by the
// configured timeout so a hung provider cannot stall the caller.
func (m *Mailer) Send(ctx context.Context, email Email) Outcome {
	var attemptErrors []error

	for _, s := range m.chain {
		sendCtx, cancel := context.WithTimeout(ctx, m.timeout)
		err := s.send(sendCtx, email)
		cancel()

		if err == nil {
			outcome := Outcome{Channel: s.name(), AttemptErrors: attemptErrors}
			if !outcome.Delivered() && len(attemptErrors) > 0 {
				m.logger.Warn().
					Strs("to", email.To).
					Str("subject", email.Subject).
					Msg("all configured email channels failed, message written to log only")
			}
			return outcome
		}

		m.logger.Error().
			Err(err).
			Str("channel", string(s.name())).
			Strs("to", email.To).
			Msg("email delivery channel failed, falling through")

		attemptErrors = append(attemptErrors, fmt.Errorf("%s: %w", s.name(), err))
	}

	// Unreachable: the console channel never returns an error.
	return Outcome{Channel: ChannelConsole, AttemptErrors: attemptErrors}
}
