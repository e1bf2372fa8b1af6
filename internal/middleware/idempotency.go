package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/campusmarket/negotiation/internal/models"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"

	// maxFingerprintBytes bounds how much of a request body is hashed.
	maxFingerprintBytes = 64 << 10
)

// IdempotencyRepository defines the interface for idempotency storage
type IdempotencyRepository interface {
	Get(ctx context.Context, key, requestPath string) (*models.IdempotencyKey, error)
	Store(ctx context.Context, idemKey *models.IdempotencyKey) error
}

type responseCapture struct {
	http.ResponseWriter
	body       bytes.Buffer
	statusCode int
}

func newResponseCapture(w http.ResponseWriter) *responseCapture {
	return &responseCapture{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // Default if WriteHeader not called
	}
}

func (rc *responseCapture) WriteHeader(code int) {
	rc.statusCode = code
	rc.ResponseWriter.WriteHeader(code)
}

func (rc *responseCapture) Write(b []byte) (int, error) {
	rc.body.Write(b) // Capture for caching
	return rc.ResponseWriter.Write(b)
}

// Idempotency replays the first successful response of a mutating API request
// retried with the same Idempotency-Key. Keys are scoped to the acting user,
// so Actor must run first. A key reused with a different body is rejected
// with 422 instead of replaying a response to another request.
func Idempotency(repo IdempotencyRepository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requiresIdempotency(r) {
				next.ServeHTTP(w, r)
				return
			}

			idempotencyKey := strings.TrimSpace(r.Header.Get(idempotencyKeyHeader))
			if idempotencyKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			actorID, ok := ActorFromContext(ctx)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			scopedKey := actorID.String() + ":" + idempotencyKey
			requestPath := normalizeRequestPath(r.URL.Path)

			requestHash, err := fingerprintBody(r)
			if err != nil {
				writeError(w, http.StatusBadRequest, "validation_failed", "failed to read request body")
				return
			}

			cached, err := repo.Get(ctx, scopedKey, requestPath)
			if err != nil {
				logger.Error("failed to check idempotency cache", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if cached != nil && cached.RequestHash != "" && cached.RequestHash != requestHash {
				logger.Warn("idempotency key reused with a different request",
					"key", idempotencyKey,
					"path", requestPath,
				)
				writeError(w, http.StatusUnprocessableEntity, "idempotency_key_reused",
					"Idempotency-Key was already used with a different request body")
				return
			}

			if cached != nil {
				logger.Debug("returning cached idempotent response",
					"key", idempotencyKey,
					"path", requestPath,
					"status", cached.ResponseStatus,
				)
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Idempotent-Replayed", "true")
				w.WriteHeader(cached.ResponseStatus)
				//nolint:errcheck // Best effort response writing
				w.Write([]byte(cached.ResponseBody))
				return
			}

			capture := newResponseCapture(w)
			next.ServeHTTP(capture, r)

			if shouldCacheResponse(capture.statusCode) {
				idemKey := &models.IdempotencyKey{
					Key:            scopedKey,
					RequestPath:    requestPath,
					RequestHash:    requestHash,
					ResponseStatus: capture.statusCode,
					ResponseBody:   capture.body.String(),
					CreatedAt:      time.Now(),
				}

				if err := repo.Store(context.WithoutCancel(ctx), idemKey); err != nil {
					logger.Error("failed to store idempotency key",
						"error", err,
						"key", idempotencyKey,
					)
				}
			}
		})
	}
}

// fingerprintBody hashes the request body and puts it back for the next handler.
func fingerprintBody(r *http.Request) (string, error) {
	h := sha256.New()
	if r.Body == nil || r.Body == http.NoBody {
		return hex.EncodeToString(h.Sum(nil)), nil
	}

	head, err := io.ReadAll(io.LimitReader(r.Body, maxFingerprintBytes))
	if err != nil {
		return "", err
	}
	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(head), r.Body), r.Body}

	h.Write(head)
	return hex.EncodeToString(h.Sum(nil)), nil
}

func requiresIdempotency(r *http.Request) bool {
	return r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/api/v1/")
}

func normalizeRequestPath(urlPath string) string {
	return strings.TrimSuffix(urlPath, "/")
}

func shouldCacheResponse(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
