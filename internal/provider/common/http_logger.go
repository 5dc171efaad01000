package common

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lucasgio/gam/internal/logger"
)

const maxLoggedBody = 4096

var sensitiveHeaders = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"set-cookie":    true,
	"x-api-key":     true,
	"x-auth-token":  true,
}

// LoggingTransport records every API call in the session log. Credentials
// are redacted.
type LoggingTransport struct {
	Transport http.RoundTripper
}

func NewLoggingTransport(transport http.RoundTripper) *LoggingTransport {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &LoggingTransport{Transport: transport}
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	logger.Log("HTTP %s %s%s", req.Method, req.URL.String(), formatHeaders(req.Header))

	resp, err := t.Transport.RoundTrip(req)
	elapsed := time.Since(start)
	if err != nil {
		logger.LogError("HTTP_REQUEST", fmt.Sprintf("%s %s", req.Method, req.URL.String()), err)
		return nil, err
	}

	if resp.StatusCode >= 400 {
		logger.LogWarn("HTTP %s %s - %s (%v)%s", req.Method, req.URL.Path, resp.Status, elapsed, peekBody(resp))
	} else {
		logger.Log("HTTP %s %s - %s (%v)", req.Method, req.URL.Path, resp.Status, elapsed)
	}
	return resp, nil
}

func formatHeaders(h http.Header) string {
	var b strings.Builder
	for name, values := range h {
		if sensitiveHeaders[strings.ToLower(name)] {
			fmt.Fprintf(&b, "\n  %s: [REDACTED]", name)
			continue
		}
		for _, v := range values {
			fmt.Fprintf(&b, "\n  %s: %s", name, v)
		}
	}
	return b.String()
}

// peekBody reads a bounded error body and puts it back for the caller.
func peekBody(resp *http.Response) string {
	if resp.Body == nil {
		return ""
	}
	data, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(data))
	if err != nil || len(data) == 0 {
		return ""
	}
	if len(data) > maxLoggedBody {
		return fmt.Sprintf("\n  body: (%d bytes, truncated) %s", len(data), data[:maxLoggedBody])
	}
	return "\n  body: " + string(data)
}
