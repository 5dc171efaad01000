package common

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lucasgio/gam/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingTransportRedactsAuthorization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "[]")
	}))
	defer srv.Close()

	client := &http.Client{Transport: NewLoggingTransport(nil)}
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/user/keys", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer ghp_secret")

	resp, err := client.Do(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "[]", string(body))

	var joined strings.Builder
	for _, entry := range logger.GetLogs() {
		joined.WriteString(entry.Message)
		joined.WriteString("\n")
	}
	out := joined.String()
	assert.Contains(t, out, "GET "+srv.URL+"/user/keys")
	assert.Contains(t, out, "Authorization: [REDACTED]")
	assert.NotContains(t, out, "ghp_secret")
}

func TestLoggingTransportKeepsErrorBodyReadable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"message":"Validation Failed"}`)
	}))
	defer srv.Close()

	client := &http.Client{Transport: NewLoggingTransport(http.DefaultTransport)}
	resp, err := client.Post(srv.URL+"/user/keys", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"message":"Validation Failed"}`, string(body))
}
