package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/onlymentors/account-recovery-api/services/recovery-service/internal/model"
	"github.com/onlymentors/account-recovery-api/services/recovery-service/internal/payload"
	"github.com/onlymentors/account-recovery-api/services/recovery-service/internal/usecase"
)

func (h *RecoveryHandler) AdminResetPassword(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	var req payload.AdminResetRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.passwordResetUsecase.RequestAdminReset(r.Context(), email, model.SubjectKind(req.Type))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to request admin password reset")
		h.respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	h.respondJSON(w, http.StatusOK, payload.MessageResponse{Message: "password reset initiated"})
}

func (h *RecoveryHandler) NotifyAccount(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	var req payload.NotifyAccountRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.notificationUsecase.NotifyAccountStatus(
		r.Context(),
		email,
		model.SubjectKind(req.Type),
		usecase.Notice(req.Notice),
		req.Reason,
	)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAccountNotFound):
			h.respondError(w, http.StatusNotFound, usecase.ErrAccountNotFound.Error())
		case errors.Is(err, usecase.ErrUnknownNotice):
			h.respondError(w, http.StatusBadRequest, usecase.ErrUnknownNotice.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to send account notification")
			h.respondError(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, payload.MessageResponse{Message: "notification sent"})
}
