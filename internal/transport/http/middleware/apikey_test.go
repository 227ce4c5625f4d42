package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func denyAll(http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
}

func TestAPIKeyOr(t *testing.T) {
	h := APIKeyOr("k3y", denyAll)(RequireRole("admin")(http.HandlerFunc(okHandler)))

	cases := []struct {
		name, header string
		want         int
	}{
		{"matching key", "k3y", http.StatusOK},
		{"wrong key", "nope", http.StatusUnauthorized},
		{"no key", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/proxy/scan", nil)
			if tc.header != "" {
				req.Header.Set("x-api-key", tc.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, tc.want, rr.Code)
		})
	}
}

func TestAPIKeyOr_EmptyKeyDisabled(t *testing.T) {
	h := APIKeyOr("", denyAll)(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("x-api-key", "")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
