package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"

	"github.com/onlymentors/account-recovery-api/shared/mailer"
)

// RecoveryServiceConfig holds the configuration for the account recovery
// service. It is parsed once at startup and passed by handle into the
// components that need it; there is no module-level singleton.
type RecoveryServiceConfig struct {
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:":8080"`

	MongoURI      string `env:"MONGO_URI"      envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"onlymentors"`

	// FrontendBaseURL is the base of the reset deep link sent in emails.
	FrontendBaseURL string `env:"FRONTEND_BASE_URL" envDefault:"https://onlymentors.ai"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	ResendAPIKey string `env:"RESEND_API_KEY"`
	SenderEmail  string `env:"SENDER_EMAIL" envDefault:"noreply@onlymentors.ai"`

	SendTimeout time.Duration `env:"EMAIL_SEND_TIMEOUT" envDefault:"10s"`

	ResetTokenTTL       time.Duration `env:"RESET_TOKEN_TTL"            envDefault:"1h"`
	ResetTokenRetention time.Duration `env:"RESET_TOKEN_RETENTION"      envDefault:"24h"`
	SweepInterval       time.Duration `env:"RESET_TOKEN_SWEEP_INTERVAL" envDefault:"1h"`

	RateLimitWindow  time.Duration `env:"RESET_RATE_LIMIT_WINDOW" envDefault:"1h"`
	RateLimitMaximum int           `env:"RESET_RATE_LIMIT_MAX"    envDefault:"3"`
	AdminTokenSecret string        `env:"ADMIN_TOKEN_SECRET"`
	TokenIssuer      string        `env:"TOKEN_ISSUER" envDefault:"onlymentors.ai"`
}

// Load parses the service configuration from environment variables.
func Load(logger *zerolog.Logger) *RecoveryServiceConfig {
	cfg, err := env.ParseAs[RecoveryServiceConfig]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate recovery service configuration")
	}

	return &cfg
}

// Mailer builds the delivery chain configuration from the service configuration.
func (c *RecoveryServiceConfig) Mailer() mailer.Config {
	return mailer.Config{
		SMTPHost:     c.SMTPHost,
		SMTPPort:     c.SMTPPort,
		SMTPUsername: c.SMTPUsername,
		SMTPPassword: c.SMTPPassword,
		ResendAPIKey: c.ResendAPIKey,
		From:         c.SenderEmail,
		SendTimeout:  c.SendTimeout,
	}
}

func (c *RecoveryServiceConfig) validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("missing MONGO_URI environment variable")
	}
	if c.FrontendBaseURL == "" {
		return fmt.Errorf("missing FRONTEND_BASE_URL environment variable")
	}
	if c.SenderEmail == "" {
		return fmt.Errorf("missing SENDER_EMAIL environment variable")
	}
	if c.ResetTokenTTL <= 0 {
		return fmt.Errorf("RESET_TOKEN_TTL must be positive")
	}
	if c.ResetTokenRetention < c.ResetTokenTTL {
		return fmt.Errorf("RESET_TOKEN_RETENTION must not be shorter than RESET_TOKEN_TTL")
	}
	if c.RateLimitMaximum <= 0 {
		return fmt.Errorf("RESET_RATE_LIMIT_MAX must be positive")
	}
	// The admin routes are always mounted; an empty secret would let anyone
	// mint a passing token against the empty HS256 key.
	if c.AdminTokenSecret == "" {
		return fmt.Errorf("missing ADMIN_TOKEN_SECRET environment variable")
	}

	return nil
}
