package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jobsapi/jobs-api-go/internal/apperr"
	"github.com/jobsapi/jobs-api-go/internal/crypto"
)

type contextKey string

const identityKey contextKey = "identity"

const (
	msgNoToken     = "No token provided"
	msgInvalidAuth = "Authentication invalid"
)

// Identity is the authenticated caller, taken from the verified token.
type Identity struct {
	UserID string
	Name   string
}

// UserChecker confirms that a token's user is still stored.
type UserChecker interface {
	UserExists(ctx context.Context, userID string) (bool, error)
}

// JWTAuth returns middleware that validates a Bearer token from the
// Authorization header and stores the caller's Identity in the request
// context. With a nil checker the token is trusted until it expires; otherwise
// the user must also still exist.
func JWTAuth(secret string, checker UserChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				writeJSONError(w, apperr.Unauthenticated(msgNoToken))
				return
			}

			claims, err := crypto.ValidateToken(strings.TrimSpace(token), secret)
			if err != nil {
				writeJSONError(w, apperr.Unauthenticated(msgInvalidAuth))
				return
			}

			if checker != nil {
				ok, err := checker.UserExists(r.Context(), claims.UserID)
				if err != nil {
					slog.ErrorContext(r.Context(), "checking token user failed", "error", err)
					writeJSONError(w, apperr.Internal(err))
					return
				}
				if !ok {
					writeJSONError(w, apperr.Unauthenticated(msgInvalidAuth))
					return
				}
			}

			ctx := WithIdentity(r.Context(), Identity{UserID: claims.UserID, Name: claims.Name})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext extracts the authenticated caller from the request context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func writeJSONError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperr.StatusCode(err))
	json.NewEncoder(w).Encode(map[string]string{"msg": apperr.Message(err)})
}
