package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/stockly/pkg/middleware"
)

func corsHandler(opts middleware.CORSOptions) http.Handler {
	return middleware.CORS(opts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func corsRequest(method, origin string) *http.Request {
	req := httptest.NewRequest(method, "/products", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	return req
}

func TestCORSEchoesOriginWhenCredentialed(t *testing.T) {
	handler := corsHandler(middleware.DefaultCORSOptions([]string{"http://localhost:3000"}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, corsRequest(http.MethodGet, "http://localhost:3000"))

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, rec.Header().Values("Vary"), "Origin")
}

func TestCORSWildcardNeverEchoedWithCredentials(t *testing.T) {
	opts := middleware.DefaultCORSOptions([]string{"*"})
	handler := corsHandler(opts)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, corsRequest(http.MethodGet, "http://evil.example"))

	// Wildcard matches, but the credentialed response carries the request
	// origin, not "*".
	assert.Equal(t, "http://evil.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSUnknownOriginGetsNoHeaders(t *testing.T) {
	handler := corsHandler(middleware.DefaultCORSOptions([]string{"http://localhost:3000"}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, corsRequest(http.MethodGet, "http://other.example"))

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	handler := corsHandler(middleware.DefaultCORSOptions([]string{"http://localhost:3000"}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, corsRequest(http.MethodOptions, "http://localhost:3000"))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "300", rec.Header().Get("Access-Control-Max-Age"))
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Methods"))
}
