package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *RecoveryServiceConfig {
	return &RecoveryServiceConfig{
		MongoURI:            "mongodb://localhost:27017",
		FrontendBaseURL:     "https://onlymentors.ai",
		SenderEmail:         "noreply@onlymentors.ai",
		ResetTokenTTL:       time.Hour,
		ResetTokenRetention: 24 * time.Hour,
		RateLimitMaximum:    3,
		AdminTokenSecret:    "admin-secret",
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	require.NoError(t, validConfig().validate())
}

func TestValidateRejectsMissingRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RecoveryServiceConfig)
		wantIn string
	}{
		{
			name:   "missing mongo uri",
			mutate: func(c *RecoveryServiceConfig) { c.MongoURI = "" },
			wantIn: "MONGO_URI",
		},
		{
			name:   "retention shorter than ttl",
			mutate: func(c *RecoveryServiceConfig) { c.ResetTokenRetention = time.Minute },
			wantIn: "RESET_TOKEN_RETENTION",
		},
		{
			// The admin routes are always mounted, so an empty signing secret
			// must fail startup rather than accept forgeable tokens.
			name:   "missing admin token secret",
			mutate: func(c *RecoveryServiceConfig) { c.AdminTokenSecret = "" },
			wantIn: "ADMIN_TOKEN_SECRET",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantIn)
		})
	}
}
