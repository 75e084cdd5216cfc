package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onlymentors/account-recovery-api/services/recovery-service/internal/config"
	"github.com/onlymentors/account-recovery-api/services/recovery-service/internal/model"
	"github.com/onlymentors/account-recovery-api/services/recovery-service/internal/usecase"
	"github.com/onlymentors/account-recovery-api/shared/auth"
)

type resetCall struct {
	email string
	kind  model.SubjectKind
}

type fakeResetUsecase struct {
	requestErr  error
	validateErr error
	resetErr    error
	requests    []resetCall
	adminResets []resetCall
}

func (f *fakeResetUsecase) RequestReset(_ context.Context, email string, kind model.SubjectKind, _ string) error {
	if f.requestErr != nil {
		return f.requestErr
	}
	f.requests = append(f.requests, resetCall{email: email, kind: kind})
	return nil
}

func (f *fakeResetUsecase) RequestAdminReset(_ context.Context, email string, kind model.SubjectKind) error {
	f.adminResets = append(f.adminResets, resetCall{email: email, kind: kind})
	return nil
}

func (f *fakeResetUsecase) ValidateToken(
	_ context.Context,
	secret string,
	kind model.SubjectKind,
) (*model.ResetToken, error) {
	if f.validateErr != nil {
		return nil, f.validateErr
	}
	return &model.ResetToken{Secret: secret, SubjectKind: kind}, nil
}

func (f *fakeResetUsecase) ResetPassword(context.Context, string, model.SubjectKind, string) error {
	return f.resetErr
}

func (f *fakeResetUsecase) SweepTokens(context.Context) (int64, error) {
	return 0, nil
}

type notifyCall struct {
	email  string
	notice usecase.Notice
}

type fakeNotificationUsecase struct {
	err     error
	notices []notifyCall
}

func (f *fakeNotificationUsecase) NotifyAccountStatus(
	_ context.Context,
	email string,
	_ model.SubjectKind,
	notice usecase.Notice,
	_ string,
) error {
	if f.err != nil {
		return f.err
	}
	f.notices = append(f.notices, notifyCall{email: email, notice: notice})
	return nil
}

const adminSecret = "admin-secret"

func newTestHandler(reset *fakeResetUsecase, notify *fakeNotificationUsecase) *RecoveryHandler {
	logger := zerolog.Nop()
	cfg := &config.RecoveryServiceConfig{
		TokenIssuer:      "onlymentors.ai",
		AdminTokenSecret: adminSecret,
	}
	jwtAuth := auth.NewJWTAuthenticator(cfg.TokenIssuer, cfg.TokenIssuer)

	return NewRecoveryHandler(reset, notify, jwtAuth, cfg, &logger)
}

func adminToken(t *testing.T, jwtAuth auth.JWTAuthenticator) string {
	t.Helper()
	now := time.Now()
	token, err := jwtAuth.GenerateToken(jwt.MapClaims{
		"role": "admin",
		"iss":  "onlymentors.ai",
		"aud":  "onlymentors.ai",
		"iat":  jwt.NewNumericDate(now),
		"exp":  jwt.NewNumericDate(now.Add(time.Hour)),
	}, adminSecret)
	require.NoError(t, err)
	return token
}

func TestForgotPassword(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		requestErr error
		wantStatus int
	}{
		{
			name:       "accepted",
			body:       `{"email":"a@example.com","type":"user"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid email",
			body:       `{"email":"not-an-email","type":"user"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid subject kind",
			body:       `{"email":"a@example.com","type":"admin"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "rate limited",
			body:       `{"email":"a@example.com","type":"user"}`,
			requestErr: usecase.ErrTooManyAttempts,
			wantStatus: http.StatusTooManyRequests,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reset := &fakeResetUsecase{requestErr: tt.requestErr}
			h := newTestHandler(reset, &fakeNotificationUsecase{})

			r := httptest.NewRequest(http.MethodPost, "/api/auth/forgot-password", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.Routes().ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				require.Len(t, reset.requests, 1)
				assert.Equal(t, "a@example.com", reset.requests[0].email)
				assert.Equal(t, model.SubjectUser, reset.requests[0].kind)
				assert.Contains(t, w.Body.String(), "If an account exists")
			}
		})
	}
}

func TestValidateResetToken(t *testing.T) {
	h := newTestHandler(&fakeResetUsecase{}, &fakeNotificationUsecase{})

	r := httptest.NewRequest(http.MethodGet, "/api/auth/validate-reset-token?token=s3cr3t&type=user", nil)
	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"valid":true`)
}

func TestValidateResetTokenNotFound(t *testing.T) {
	h := newTestHandler(&fakeResetUsecase{validateErr: usecase.ErrTokenNotFound}, &fakeNotificationUsecase{})

	r := httptest.NewRequest(http.MethodGet, "/api/auth/validate-reset-token?token=nope&type=user", nil)
	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"valid":false`)
}

func TestValidateResetTokenMissingParams(t *testing.T) {
	h := newTestHandler(&fakeResetUsecase{}, &fakeNotificationUsecase{})

	r := httptest.NewRequest(http.MethodGet, "/api/auth/validate-reset-token?token=s3cr3t", nil)
	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetPassword(t *testing.T) {
	tests := []struct {
		name       string
		resetErr   error
		wantStatus int
		wantInBody string
	}{
		{
			name:       "success",
			wantStatus: http.StatusOK,
			wantInBody: "password has been reset",
		},
		{
			name:       "weak password reason surfaced verbatim",
			resetErr:   &usecase.WeakPasswordError{Reason: "password must contain a digit"},
			wantStatus: http.StatusBadRequest,
			wantInBody: "password must contain a digit",
		},
		{
			name:       "invalid token is opaque",
			resetErr:   usecase.ErrTokenNotFound,
			wantStatus: http.StatusBadRequest,
			wantInBody: "invalid or expired password reset token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&fakeResetUsecase{resetErr: tt.resetErr}, &fakeNotificationUsecase{})

			body := `{"token":"s3cr3t","type":"user","new_password":"NewPassword1!"}`
			r := httptest.NewRequest(http.MethodPost, "/api/auth/reset-password", strings.NewReader(body))
			w := httptest.NewRecorder()
			h.Routes().ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantInBody)
		})
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	reset := &fakeResetUsecase{}
	h := newTestHandler(reset, &fakeNotificationUsecase{})

	body := `{"type":"mentor"}`
	r := httptest.NewRequest(
		http.MethodPost,
		"/api/admin/users/m@example.com/reset-password",
		strings.NewReader(body),
	)
	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, reset.adminResets)
}

func TestAdminResetPassword(t *testing.T) {
	reset := &fakeResetUsecase{}
	h := newTestHandler(reset, &fakeNotificationUsecase{})

	body := `{"type":"mentor"}`
	r := httptest.NewRequest(
		http.MethodPost,
		"/api/admin/users/m@example.com/reset-password",
		strings.NewReader(body),
	)
	r.Header.Set("Authorization", "Bearer "+adminToken(t, h.jwtAuth))
	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, reset.adminResets, 1)
	assert.Equal(t, "m@example.com", reset.adminResets[0].email)
	assert.Equal(t, model.SubjectMentor, reset.adminResets[0].kind)
}

func TestNotifyAccount(t *testing.T) {
	notify := &fakeNotificationUsecase{}
	h := newTestHandler(&fakeResetUsecase{}, notify)

	body := `{"type":"user","notice":"suspension","reason":"chargeback abuse"}`
	r := httptest.NewRequest(http.MethodPost, "/api/admin/users/a@example.com/notify", strings.NewReader(body))
	r.Header.Set("Authorization", "Bearer "+adminToken(t, h.jwtAuth))
	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, notify.notices, 1)
	assert.Equal(t, "a@example.com", notify.notices[0].email)
	assert.Equal(t, usecase.NoticeSuspension, notify.notices[0].notice)
}

func TestNotifyAccountUnknownAccount(t *testing.T) {
	notify := &fakeNotificationUsecase{err: usecase.ErrAccountNotFound}
	h := newTestHandler(&fakeResetUsecase{}, notify)

	body := `{"type":"user","notice":"deletion"}`
	r := httptest.NewRequest(http.MethodPost, "/api/admin/users/a@example.com/notify", strings.NewReader(body))
	r.Header.Set("Authorization", "Bearer "+adminToken(t, h.jwtAuth))
	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
