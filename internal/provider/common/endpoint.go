package common

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

const DefaultSSHPort = 22

// Endpoint is an SSH destination in user@host[:port] form.
type Endpoint struct {
	User string
	Host string
	Port int
}

// ParseEndpoint accepts "host", "user@host", "host:port" and
// "user@host:port". defaultUser fills a missing user part.
func ParseEndpoint(s, defaultUser string) (Endpoint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Endpoint{}, fmt.Errorf("%w: empty", ErrInvalidEndpoint)
	}

	ep := Endpoint{User: defaultUser, Port: DefaultSSHPort}
	rest := s
	if user, host, ok := strings.Cut(s, "@"); ok {
		if user == "" {
			return Endpoint{}, fmt.Errorf("%w: empty user in '%s'", ErrInvalidEndpoint, s)
		}
		ep.User = user
		rest = host
	}

	if host, port, err := net.SplitHostPort(rest); err == nil {
		n, err := strconv.Atoi(port)
		if err != nil || n <= 0 || n > 65535 {
			return Endpoint{}, fmt.Errorf("%w: invalid port '%s'", ErrInvalidEndpoint, port)
		}
		ep.Host = host
		ep.Port = n
	} else if strings.Contains(rest, ":") && !strings.HasPrefix(rest, "[") {
		return Endpoint{}, fmt.Errorf("%w: '%s'", ErrInvalidEndpoint, s)
	} else {
		ep.Host = rest
	}

	if ep.Host == "" || strings.ContainsAny(ep.Host, "@/ ") {
		return Endpoint{}, fmt.Errorf("%w: invalid host in '%s'", ErrInvalidEndpoint, s)
	}
	if ep.User == "" {
		return Endpoint{}, fmt.Errorf("%w: no user for '%s'", ErrInvalidEndpoint, s)
	}
	return ep, nil
}

// Address is the host:port pair to dial.
func (e Endpoint) Address() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

func (e Endpoint) String() string {
	if e.Port == DefaultSSHPort {
		return e.User + "@" + e.Host
	}
	return e.User + "@" + e.Address()
}
