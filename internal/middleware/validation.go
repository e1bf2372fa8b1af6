package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

// RequestValidator checks /api/ requests against the OpenAPI document before
// they reach a handler. Requests the document does not describe pass through
// so the mux can answer 404 or 405 itself.
func RequestValidator(doc *openapi3.T, logger *slog.Logger) (func(http.Handler) http.Handler, error) {
	// Match on path only; the document's servers describe deployment, not routing.
	doc.Servers = nil

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build openapi router: %w", err)
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		MultiError:         false,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, apiPathPrefix) {
				next.ServeHTTP(w, r)
				return
			}

			route, pathParams, err := router.FindRoute(r)
			if err != nil {
				if !errors.Is(err, routers.ErrPathNotFound) && !errors.Is(err, routers.ErrMethodNotAllowed) {
					logger.Warn("openapi route lookup failed", "error", err, "path", r.URL.Path)
				}
				next.ServeHTTP(w, r)
				return
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				logger.Debug("request failed openapi validation",
					"operation", route.Operation.OperationID,
					"error", err,
				)
				writeError(w, http.StatusBadRequest, "validation_failed", validationMessage(err))
				return
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Parameter != nil {
			return fmt.Sprintf("invalid parameter %s: %s", reqErr.Parameter.Name, reqErr.Reason)
		}
		if reqErr.RequestBody != nil {
			var schemaErr *openapi3.SchemaError
			if errors.As(reqErr.Err, &schemaErr) {
				return "invalid request body: " + schemaErr.Reason
			}
			return "invalid request body"
		}
		if reqErr.Reason != "" {
			return reqErr.Reason
		}
	}
	return "request does not match the API schema"
}
