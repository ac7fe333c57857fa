package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShutdownHandler(t *testing.T) {
	t.Parallel()

	srv := &http.Server{}
	h := shutdownHandler("secret", srv)

	call := func(method, remote, token string) int {
		req := httptest.NewRequest(method, "/shutdown", nil)
		req.RemoteAddr = remote
		if token != "" {
			req.Header.Set("X-Shutdown-Token", token)
		}
		rec := httptest.NewRecorder()
		h(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusMethodNotAllowed, call(http.MethodGet, "127.0.0.1:1", "secret"))
	assert.Equal(t, http.StatusForbidden, call(http.MethodPost, "10.0.0.5:1", "secret"))
	assert.Equal(t, http.StatusUnauthorized, call(http.MethodPost, "127.0.0.1:1", ""))
	assert.Equal(t, http.StatusUnauthorized, call(http.MethodPost, "[::1]:1", "wrong"))
	assert.Equal(t, http.StatusOK, call(http.MethodPost, "127.0.0.1:1", "secret"))
}

func TestLogLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "DEBUG", logLevel(" Debug ").String())
	assert.Equal(t, "INFO", logLevel("").String())
	assert.Equal(t, "ERROR", logLevel("error").String())
}
