package handler

import (
	"errors"
	"net/http"

	"github.com/onlymentors/account-recovery-api/services/recovery-service/internal/model"
	"github.com/onlymentors/account-recovery-api/services/recovery-service/internal/payload"
	"github.com/onlymentors/account-recovery-api/services/recovery-service/internal/usecase"
	"github.com/onlymentors/account-recovery-api/shared/utilities"
)

// forgotPasswordMessage is returned for every accepted reset request,
// whether or not an account exists for the email.
const forgotPasswordMessage = "If an account exists for that address, a password reset link has been sent."

func (h *RecoveryHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ForgotPasswordRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.passwordResetUsecase.RequestReset(
		r.Context(),
		req.Email,
		model.SubjectKind(req.Type),
		utilities.ClientIP(r),
	)
	if err != nil {
		if errors.Is(err, usecase.ErrTooManyAttempts) {
			h.respondError(w, http.StatusTooManyRequests, "too many reset attempts, please try again later")
			return
		}

		h.logger.Error().Err(err).Msg("failed to request password reset")
		h.respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	h.respondJSON(w, http.StatusOK, payload.MessageResponse{Message: forgotPasswordMessage})
}

func (h *RecoveryHandler) ValidateResetToken(w http.ResponseWriter, r *http.Request) {
	secret := r.URL.Query().Get("token")
	kind := model.SubjectKind(r.URL.Query().Get("type"))

	if secret == "" || !kind.Valid() {
		h.respondError(w, http.StatusBadRequest, "token and type query parameters are required")
		return
	}

	if _, err := h.passwordResetUsecase.ValidateToken(r.Context(), secret, kind); err != nil {
		h.respondJSON(w, http.StatusNotFound, payload.ValidateTokenResponse{Valid: false})
		return
	}

	h.respondJSON(w, http.StatusOK, payload.ValidateTokenResponse{Valid: true})
}

func (h *RecoveryHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ResetPasswordRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.passwordResetUsecase.ResetPassword(
		r.Context(),
		req.Token,
		model.SubjectKind(req.Type),
		req.NewPassword,
	)
	if err != nil {
		var weakErr *usecase.WeakPasswordError
		switch {
		case errors.As(err, &weakErr):
			h.respondError(w, http.StatusBadRequest, weakErr.Reason)
		case errors.Is(err, usecase.ErrTokenNotFound):
			h.respondError(w, http.StatusBadRequest, usecase.ErrTokenNotFound.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to reset password")
			h.respondError(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, payload.MessageResponse{Message: "password has been reset"})
}
