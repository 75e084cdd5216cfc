package usecase

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/onlymentors/account-recovery-api/services/recovery-service/internal/config"
	"github.com/onlymentors/account-recovery-api/services/recovery-service/internal/model"
	"github.com/onlymentors/account-recovery-api/services/recovery-service/internal/repository"
	"github.com/onlymentors/account-recovery-api/shared/mailer"
	"github.com/onlymentors/account-recovery-api/shared/security"
)

// PasswordResetUsecase defines the business logic for the password reset flow.
type PasswordResetUsecase interface {
	// RequestReset initiates a reset for the given email: it checks the
	// trailing-window attempt count, issues a token, and sends the reset
	// notification. It never reveals whether an account exists for the email.
	RequestReset(ctx context.Context, email string, kind model.SubjectKind, sourceAddr string) error

	// RequestAdminReset issues a token and sends the administrator-initiated
	// reset notification. Not subject to the per-email rate limit.
	RequestAdminReset(ctx context.Context, email string, kind model.SubjectKind) error

	// ValidateToken is the read-only pre-validation used before showing the
	// reset form. It reports ErrTokenNotFound for absent, used, expired, or
	// kind-mismatched tokens without distinguishing why.
	ValidateToken(ctx context.Context, secret string, kind model.SubjectKind) (*model.ResetToken, error)

	// ResetPassword redeems a token exactly once and stores the new password
	// hash. Redemption is a single atomic conditional update, so concurrent
	// redemptions of the same secret cannot both succeed.
	ResetPassword(ctx context.Context, secret string, kind model.SubjectKind, newPassword string) error

	// SweepTokens deletes tokens past the retention window, used or not.
	SweepTokens(ctx context.Context) (int64, error)
}

var (
	// ErrTokenNotFound covers every invalid-token case. The caller is never
	// told whether the token expired, was used, or never existed.
	ErrTokenNotFound = errors.New("invalid or expired password reset token")

	// ErrTooManyAttempts is returned when the trailing-window attempt count
	// for an email exceeds the configured maximum.
	ErrTooManyAttempts = errors.New("too many password reset attempts")
)

// WeakPasswordError reports the first unmet password policy rule. The reason
// is user-facing guidance and is surfaced verbatim.
type WeakPasswordError struct {
	Reason string
}

func (e *WeakPasswordError) Error() string {
	return e.Reason
}

// NotificationSender is the part of the delivery chain the usecase depends on.
type NotificationSender interface {
	Send(ctx context.Context, email mailer.Email) mailer.Outcome
}

type passwordResetUsecase struct {
	tokenRepo   repository.ResetTokenRepository
	attemptRepo repository.ResetAttemptRepository
	accountRepo repository.AccountRepository
	sender      NotificationSender
	cfg         *config.RecoveryServiceConfig
	logger      *zerolog.Logger
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	tokenRepo repository.ResetTokenRepository,
	attemptRepo repository.ResetAttemptRepository,
	accountRepo repository.AccountRepository,
	sender NotificationSender,
	cfg *config.RecoveryServiceConfig,
	logger *zerolog.Logger,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		tokenRepo:   tokenRepo,
		attemptRepo: attemptRepo,
		accountRepo: accountRepo,
		sender:      sender,
		cfg:         cfg,
		logger:      logger,
	}
}

func (u *passwordResetUsecase) RequestReset(
	ctx context.Context,
	email string,
	kind model.SubjectKind,
	sourceAddr string,
) error {
	count, err := u.attemptRepo.CountAttemptsSince(ctx, email, time.Now().Add(-u.cfg.RateLimitWindow))
	if err != nil {
		// Fail open: a broken attempt log must not block the reset flow.
		u.logger.Error().Err(err).Msg("failed to count recent reset attempts")
		count = 0
	}

	if count >= int64(u.cfg.RateLimitMaximum) {
		u.recordAttempt(ctx, email, kind, false, sourceAddr)
		return ErrTooManyAttempts
	}

	u.recordAttempt(ctx, email, kind, true, sourceAddr)

	secret, err := u.issueToken(ctx, email, kind)
	if err != nil {
		return err
	}

	subject, html, text := mailer.ResetEmail(u.cfg.FrontendBaseURL, secret, string(kind), u.cfg.ResetTokenTTL)
	u.deliver(ctx, email, subject, html, text)

	return nil
}

func (u *passwordResetUsecase) RequestAdminReset(ctx context.Context, email string, kind model.SubjectKind) error {
	u.recordAttempt(ctx, email, kind, true, "")

	secret, err := u.issueToken(ctx, email, kind)
	if err != nil {
		return err
	}

	subject, html, text := mailer.AdminResetEmail(u.cfg.FrontendBaseURL, secret, string(kind), u.cfg.ResetTokenTTL)
	u.deliver(ctx, email, subject, html, text)

	return nil
}

func (u *passwordResetUsecase) ValidateToken(
	ctx context.Context,
	secret string,
	kind model.SubjectKind,
) (*model.ResetToken, error) {
	token, err := u.tokenRepo.GetActiveToken(ctx, secret, kind)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			u.logger.Error().Err(err).Msg("failed to look up reset token")
		}
		return nil, ErrTokenNotFound
	}

	return token, nil
}

func (u *passwordResetUsecase) ResetPassword(
	ctx context.Context,
	secret string,
	kind model.SubjectKind,
	newPassword string,
) error {
	if ok, reason := security.ValidateStrength(newPassword); !ok {
		return &WeakPasswordError{Reason: reason}
	}

	token, err := u.tokenRepo.ConsumeToken(ctx, secret, kind)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			u.logger.Error().Err(err).Msg("failed to consume reset token")
		}
		return ErrTokenNotFound
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	account, err := u.accountRepo.GetAccountByEmail(ctx, token.Email, kind)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// A token can outlive its account. The token is already consumed,
			// so report success and leave nothing to change.
			u.logger.Warn().Str("email", token.Email).Msg("reset token redeemed for a missing account")
			return nil
		}
		return err
	}

	// No attempt record here: the log counts reset requests, and a redemption
	// must not consume the requester's rate-limit quota.
	return u.accountRepo.UpdatePasswordHash(ctx, account.ID.Hex(), passwordHash)
}

func (u *passwordResetUsecase) SweepTokens(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-u.cfg.ResetTokenRetention)

	deleted, err := u.tokenRepo.DeleteTokensCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	return deleted, nil
}

// issueToken generates and persists a new reset token, returning its secret.
// Persistence failures are logged and swallowed: the reset flow reports
// success even when the token could not be stored.
func (u *passwordResetUsecase) issueToken(ctx context.Context, email string, kind model.SubjectKind) (string, error) {
	secret, err := generateSecret()
	if err != nil {
		return "", err
	}

	token := &model.ResetToken{
		TokenID:     uuid.NewString(),
		Secret:      secret,
		Email:       email,
		SubjectKind: kind,
		ExpiresAt:   time.Now().Add(u.cfg.ResetTokenTTL),
	}

	if _, err := u.tokenRepo.CreateToken(ctx, token); err != nil {
		u.logger.Error().Err(err).Str("email", email).Msg("failed to persist reset token")
	}

	return secret, nil
}

// recordAttempt appends to the reset attempt log. Log-and-continue on
// failure: the audit trail is best effort and never fails the caller.
func (u *passwordResetUsecase) recordAttempt(
	ctx context.Context,
	email string,
	kind model.SubjectKind,
	success bool,
	sourceAddr string,
) {
	attempt := &model.ResetAttempt{
		Email:         email,
		SubjectKind:   kind,
		Success:       success,
		SourceAddress: sourceAddr,
	}

	if err := u.attemptRepo.AppendAttempt(ctx, attempt); err != nil {
		u.logger.Error().Err(err).Str("email", email).Msg("failed to record reset attempt")
	}
}

// deliver sends a notification through the delivery chain and logs the
// outcome. Delivery failures never propagate to the caller.
func (u *passwordResetUsecase) deliver(ctx context.Context, email, subject, html, text string) {
	outcome := u.sender.Send(ctx, mailer.Email{
		To:       []string{email},
		Subject:  subject,
		HTMLBody: html,
		Body:     text,
	})

	event := u.logger.Info()
	if !outcome.Delivered() {
		event = u.logger.Warn()
	}
	event.
		Str("channel", string(outcome.Channel)).
		Int("failed_attempts", len(outcome.AttemptErrors)).
		Msg("password reset notification dispatched")
}

// generateSecret returns a 256-bit cryptographically random, URL-safe secret.
func generateSecret() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
