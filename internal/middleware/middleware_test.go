package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"shodan-inspector/internal/logger"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		origins    []string
		origin     string
		method     string
		preflight  bool
		wantStatus int
		wantAllow  string
	}{
		{"allowed origin", []string{"http://a.test"}, "http://a.test", http.MethodPost, false, http.StatusOK, "http://a.test"},
		{"unknown origin", []string{"http://a.test"}, "http://evil.test", http.MethodPost, false, http.StatusOK, ""},
		{"wildcard", []string{"*"}, "http://any.test", http.MethodGet, false, http.StatusOK, "*"},
		{"preflight", []string{"http://a.test"}, "http://a.test", http.MethodOptions, true, http.StatusNoContent, "http://a.test"},
		{"plain options passes through", []string{"http://a.test"}, "http://a.test", http.MethodOptions, false, http.StatusOK, "http://a.test"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/query", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rr := httptest.NewRecorder()
			CORS(tt.origins)(okHandler).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantAllow, rr.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestWrapWithoutCORS(t *testing.T) {
	var buf bytes.Buffer
	l := logger.SetupWriter(&buf, "debug", "text")
	h := Wrap(okHandler, Options{Logger: l})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://a.test")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, buf.String(), "http_access")
}
