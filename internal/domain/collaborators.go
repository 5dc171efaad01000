package domain

import (
	"context"
	"strings"
)

type KeySpec struct {
	Algorithm  string
	Comment    string
	Path       string
	Passphrase string
}

// KeyGenerator writes a private key at spec.Path and its public half at
// spec.Path + ".pub".
type KeyGenerator interface {
	Generate(ctx context.Context, spec KeySpec) error
}

type Agent interface {
	Add(ctx context.Context, keyPath, passphrase string) error

	Remove(ctx context.Context, keyPath string) error
}

// Prober returns raw diagnostic text from an authentication attempt against
// endpoint (user@host[:port]).
type Prober interface {
	Probe(ctx context.Context, keyPath, endpoint string) (string, error)
}

type PublishedKey struct {
	ID             int64
	Title          string
	Key            string
	URL            string
	AlreadyPresent bool
}

type KeyPublisher interface {
	PublishKey(ctx context.Context, title, publicKey string) (*PublishedKey, error)
}

type ProbeOutcome string

const (
	ProbeAuthenticated    ProbeOutcome = "authenticated"
	ProbePermissionDenied ProbeOutcome = "permission_denied"
	ProbeOther            ProbeOutcome = "other"
)

func ClassifyProbe(output string) ProbeOutcome {
	switch {
	case strings.Contains(output, "successfully authenticated"):
		return ProbeAuthenticated
	case strings.Contains(output, "Permission denied"), strings.Contains(output, "unable to authenticate"):
		return ProbePermissionDenied
	default:
		return ProbeOther
	}
}
