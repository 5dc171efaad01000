package common

import (
	"errors"
	"testing"
)

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantUser string
		wantHost string
		wantPort int
		wantErr  bool
	}{
		{
			name:     "user and host",
			input:    "git@github.com",
			wantUser: "git",
			wantHost: "github.com",
			wantPort: 22,
		},
		{
			name:     "host only uses default user",
			input:    "gitlab.com",
			wantUser: "deploy",
			wantHost: "gitlab.com",
			wantPort: 22,
		},
		{
			name:     "host with port",
			input:    "git@ssh.github.com:443",
			wantUser: "git",
			wantHost: "ssh.github.com",
			wantPort: 443,
		},
		{
			name:     "bracketed IPv6 with port",
			input:    "git@[::1]:2222",
			wantUser: "git",
			wantHost: "::1",
			wantPort: 2222,
		},
		{
			name:     "surrounding whitespace",
			input:    "  git@host  ",
			wantUser: "git",
			wantHost: "host",
			wantPort: 22,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "empty user",
			input:   "@github.com",
			wantErr: true,
		},
		{
			name:    "empty host",
			input:   "git@",
			wantErr: true,
		},
		{
			name:    "non-numeric port",
			input:   "git@host:ssh",
			wantErr: true,
		},
		{
			name:    "port out of range",
			input:   "git@host:70000",
			wantErr: true,
		},
		{
			name:    "trailing colon",
			input:   "git@host:",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEndpoint(tt.input, "deploy")
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseEndpoint() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidEndpoint) {
					t.Errorf("ParseEndpoint() error should wrap ErrInvalidEndpoint, got %v", err)
				}
				return
			}
			if got.User != tt.wantUser {
				t.Errorf("ParseEndpoint() user = %v, want %v", got.User, tt.wantUser)
			}
			if got.Host != tt.wantHost {
				t.Errorf("ParseEndpoint() host = %v, want %v", got.Host, tt.wantHost)
			}
			if got.Port != tt.wantPort {
				t.Errorf("ParseEndpoint() port = %v, want %v", got.Port, tt.wantPort)
			}
		})
	}
}

func TestEndpointFormatting(t *testing.T) {
	tests := []struct {
		name        string
		ep          Endpoint
		wantString  string
		wantAddress string
	}{
		{
			name:        "default port",
			ep:          Endpoint{User: "git", Host: "github.com", Port: 22},
			wantString:  "git@github.com",
			wantAddress: "github.com:22",
		},
		{
			name:        "custom port",
			ep:          Endpoint{User: "git", Host: "ssh.github.com", Port: 443},
			wantString:  "git@ssh.github.com:443",
			wantAddress: "ssh.github.com:443",
		},
		{
			name:        "IPv6",
			ep:          Endpoint{User: "git", Host: "::1", Port: 2222},
			wantString:  "git@[::1]:2222",
			wantAddress: "[::1]:2222",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ep.String(); got != tt.wantString {
				t.Errorf("String() = %q, want %q", got, tt.wantString)
			}
			if got := tt.ep.Address(); got != tt.wantAddress {
				t.Errorf("Address() = %q, want %q", got, tt.wantAddress)
			}
		})
	}
}
