package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/campusmarket/negotiation/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) func(http.Handler) http.Handler {
	t.Helper()
	doc, err := api.LoadSwagger()
	require.NoError(t, err)
	mw, err := RequestValidator(doc, testLogger())
	require.NoError(t, err)
	return mw
}

func TestRequestValidator(t *testing.T) {
	proposalsPath := "/api/v1/transactions/0b8f1c2e-7d0a-4f3e-9a6b-1c2d3e4f5a6b/proposals"

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		withUser   bool
		wantStatus int
	}{
		{
			name:       "valid proposal",
			method:     http.MethodPost,
			path:       proposalsPath,
			body:       `{"payment_method":"VENMO","delivery_method":"PICKUP"}`,
			withUser:   true,
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown payment method",
			method:     http.MethodPost,
			path:       proposalsPath,
			body:       `{"payment_method":"BITCOIN","delivery_method":"PICKUP"}`,
			withUser:   true,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing delivery method",
			method:     http.MethodPost,
			path:       proposalsPath,
			body:       `{"payment_method":"CASH"}`,
			withUser:   true,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unexpected field",
			method:     http.MethodPost,
			path:       proposalsPath,
			body:       `{"delivery_method":"PICKUP","price":"1.00"}`,
			withUser:   true,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed json",
			method:     http.MethodPost,
			path:       proposalsPath,
			body:       `{"delivery_method":`,
			withUser:   true,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing user header",
			method:     http.MethodGet,
			path:       "/api/v1/transactions",
			withUser:   false,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "undocumented path passes through",
			method:     http.MethodGet,
			path:       "/api/v1/unknown",
			withUser:   true,
			wantStatus: http.StatusOK,
		},
		{
			name:       "non api path passes through",
			method:     http.MethodGet,
			path:       "/metrics",
			wantStatus: http.StatusOK,
		},
	}

	validator := newValidator(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := validator(testHandler(http.StatusOK, `{}`))

			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			if tt.withUser {
				req.Header.Set(UserIDHeader, testActor.String())
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusBadRequest {
				var body errorBody
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "validation_failed", body.Error)
				assert.NotEmpty(t, body.Message)
			}
		})
	}
}

func TestRequestValidator_BodyStillReadable(t *testing.T) {
	validator := newValidator(t)
	payload := `{"delivery_method":"PICKUP","payment_method":"ZELLE"}`

	var seen map[string]string
	handler := validator(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&seen))
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/transactions/0b8f1c2e-7d0a-4f3e-9a6b-1c2d3e4f5a6b/proposals", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(UserIDHeader, testActor.String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ZELLE", seen["payment_method"])
}
