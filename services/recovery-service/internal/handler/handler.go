package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/rs/zerolog"

	"github.com/onlymentors/account-recovery-api/services/recovery-service/internal/config"
	"github.com/onlymentors/account-recovery-api/services/recovery-service/internal/payload"
	"github.com/onlymentors/account-recovery-api/services/recovery-service/internal/usecase"
	"github.com/onlymentors/account-recovery-api/shared/auth"
)

// RecoveryHandler exposes the account recovery flows over HTTP.
type RecoveryHandler struct {
	passwordResetUsecase usecase.PasswordResetUsecase
	notificationUsecase  usecase.AccountNotificationUsecase
	jwtAuth              auth.JWTAuthenticator
	cfg                  *config.RecoveryServiceConfig
	logger               *zerolog.Logger
	validate             *validator.Validate
	translator           ut.Translator
}

// NewRecoveryHandler creates a new RecoveryHandler instance.
func NewRecoveryHandler(
	passwordResetUsecase usecase.PasswordResetUsecase,
	notificationUsecase usecase.AccountNotificationUsecase,
	jwtAuth auth.JWTAuthenticator,
	cfg *config.RecoveryServiceConfig,
	logger *zerolog.Logger,
) *RecoveryHandler {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator("en")
	if err := entranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		logger.Fatal().Err(err).Msg("failed to register validator translations")
	}

	return &RecoveryHandler{
		passwordResetUsecase: passwordResetUsecase,
		notificationUsecase:  notificationUsecase,
		jwtAuth:              jwtAuth,
		cfg:                  cfg,
		logger:               logger,
		validate:             validate,
		translator:           translator,
	}
}

// Routes builds the HTTP router for the recovery service.
func (h *RecoveryHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/forgot-password", h.ForgotPassword)
		r.Get("/validate-reset-token", h.ValidateResetToken)
		r.Post("/reset-password", h.ResetPassword)
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(auth.RequireAdmin(h.jwtAuth, h.cfg.AdminTokenSecret))
		r.Post("/users/{email}/reset-password", h.AdminResetPassword)
		r.Post("/users/{email}/notify", h.NotifyAccount)
	})

	return r
}

// decodeAndValidate parses the JSON body into dst and applies the payload
// validation rules, returning a user-facing message on failure.
func (h *RecoveryHandler) decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("invalid request body")
	}

	if err := h.validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			return errors.New(validationErrors[0].Translate(h.translator))
		}
		return err
	}

	return nil
}

func (h *RecoveryHandler) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response body")
	}
}

func (h *RecoveryHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, payload.ErrorResponse{Error: message})
}
