package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		config     CORSConfig
		method     string
		origin     string
		wantOrigin string
		wantStatus int
	}{
		{
			name:       "allow all",
			config:     CORSConfig{AllowAll: true},
			method:     http.MethodGet,
			origin:     "https://example.com",
			wantOrigin: "*",
			wantStatus: http.StatusOK,
		},
		{
			name:       "listed origin is echoed",
			config:     CORSConfig{AllowedOrigins: []string{"https://a.example", "https://b.example"}},
			method:     http.MethodPost,
			origin:     "https://b.example",
			wantOrigin: "https://b.example",
			wantStatus: http.StatusOK,
		},
		{
			name:       "unlisted origin gets no header",
			config:     CORSConfig{AllowedOrigins: []string{"https://a.example"}},
			method:     http.MethodGet,
			origin:     "https://evil.example",
			wantOrigin: "",
			wantStatus: http.StatusOK,
		},
		{
			name:       "preflight short-circuits",
			config:     DefaultCORSConfig(),
			method:     http.MethodOptions,
			origin:     "https://a.example",
			wantOrigin: "https://a.example",
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/v1/runs", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()

			CORS(tt.config)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestDefaultCORSConfigExposesDownloadName(t *testing.T) {
	cfg := DefaultCORSConfig()
	assert.Contains(t, cfg.ExposedHeaders, "Content-Disposition")
	assert.Contains(t, cfg.AllowedMethods, http.MethodPost)
}

func TestIsOriginAllowed(t *testing.T) {
	assert.True(t, isOriginAllowed("https://a.example", []string{"*"}))
	assert.True(t, isOriginAllowed("https://a.example", []string{"https://a.example"}))
	assert.False(t, isOriginAllowed("https://a.example", []string{"https://b.example"}))
	assert.False(t, isOriginAllowed("https://a.example", nil))
}
