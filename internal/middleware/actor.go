// Package middleware provides HTTP middleware components for the negotiation API.
package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// UserIDHeader carries the authenticated user id set by the gateway
const UserIDHeader = "X-User-ID"

const apiPathPrefix = "/api/"

type actorKey struct{}

// WithActor returns a copy of ctx carrying actorID.
func WithActor(ctx context.Context, actorID uuid.UUID) context.Context {
	return context.WithValue(ctx, actorKey{}, actorID)
}

// ActorFromContext returns the acting user id stored by Actor.
func ActorFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(actorKey{}).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// Actor resolves the acting user from the X-User-ID header. Requests under
// /api/ without a valid id are rejected with 401; other paths pass through.
func Actor(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, apiPathPrefix) {
				next.ServeHTTP(w, r)
				return
			}

			raw := strings.TrimSpace(r.Header.Get(UserIDHeader))
			actorID, err := uuid.Parse(raw)
			if raw == "" || err != nil || actorID == uuid.Nil {
				logger.Debug("rejecting request without valid actor", "path", r.URL.Path)
				writeError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid "+UserIDHeader+" header")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actorID)))
		})
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Best effort response writing
	json.NewEncoder(w).Encode(errorBody{Error: code, Message: message})
}
