package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	errMissingAuthorization = errors.New("missing authorization header")
	errInvalidAuthorization = errors.New("invalid authorization header format")
)

type contextKey struct{}

// AdminClaimsKey is the context key under which validated admin claims are stored.
var AdminClaimsKey = contextKey{}

// RequireAdmin returns middleware that authenticates requests with an HS256
// bearer token and requires an "admin" role claim. Validated claims are
// placed on the request context under AdminClaimsKey.
func RequireAdmin(jwtAuth JWTAuthenticator, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := extractBearerToken(r)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			claims := jwt.MapClaims{}
			if _, err := jwtAuth.ValidateTokenWithClaims(tokenString, secret, claims); err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			if role, _ := claims["role"].(string); role != "admin" {
				http.Error(w, "admin access required", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), AdminClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errMissingAuthorization
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errInvalidAuthorization
	}

	return parts[1], nil
}
