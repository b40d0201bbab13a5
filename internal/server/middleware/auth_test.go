package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

// TestDefaultAuthConfig tests default configuration.
func TestDefaultAuthConfig(t *testing.T) {
	config := DefaultAuthConfig()

	if config.Enabled {
		t.Error("expected Enabled=false by default")
	}
	if config.HeaderName != "X-API-Key" {
		t.Errorf("expected HeaderName=X-API-Key, got %s", config.HeaderName)
	}
	if len(config.PublicPaths) != 3 {
		t.Errorf("expected 3 public paths, got %v", config.PublicPaths)
	}
}

// TestAuth tests the Auth middleware with various scenarios.
func TestAuth(t *testing.T) {
	logger := zerolog.Nop()
	enabled := AuthConfig{
		Enabled:     true,
		APIKey:      "secret-key",
		HeaderName:  "X-API-Key",
		PublicPaths: []string{"/health", "/api/products"},
	}

	tests := []struct {
		name           string
		config         AuthConfig
		method         string
		path           string
		headers        map[string]string
		expectedStatus int
	}{
		{
			name:           "auth disabled - always pass",
			config:         AuthConfig{Enabled: false, APIKey: "secret-key", HeaderName: "X-API-Key"},
			path:           "/api/cart",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "public path - always pass",
			config:         enabled,
			path:           "/api/products",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "valid API key in custom header",
			config:         enabled,
			path:           "/api/cart",
			headers:        map[string]string{"X-API-Key": "secret-key"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "valid bearer token",
			config:         enabled,
			path:           "/api/receipt",
			headers:        map[string]string{"Authorization": "Bearer secret-key"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "valid key in query",
			config:         enabled,
			path:           "/api/cart?key=secret-key",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong key",
			config:         enabled,
			path:           "/api/cart",
			headers:        map[string]string{"X-API-Key": "nope"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing key",
			config:         enabled,
			path:           "/api/cart",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "preflight passes without key",
			config:         enabled,
			method:         http.MethodOptions,
			path:           "/api/cart",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Auth(tt.config, &logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			method := tt.method
			if method == "" {
				method = http.MethodPost
			}
			req := httptest.NewRequest(method, tt.path, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}
