package sshkeys

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/lucasgio/gam/internal/logger"
	"github.com/lucasgio/gam/internal/provider/common"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

const defaultProbeTimeout = 10 * time.Second

// Prober performs the equivalent of `ssh -T user@host` in process and
// returns whatever the server or the handshake had to say.
type Prober struct {
	KnownHostsPath string
	Timeout        time.Duration
	DefaultUser    string
	Agent          *AgentClient
}

func NewProber(knownHostsPath string, timeout time.Duration, agentClient *AgentClient) *Prober {
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	return &Prober{
		KnownHostsPath: knownHostsPath,
		Timeout:        timeout,
		DefaultUser:    "git",
		Agent:          agentClient,
	}
}

// Probe returns an error only when the attempt could not be made at all.
// Network, host-key and authentication failures come back as diagnostic
// text.
func (p *Prober) Probe(ctx context.Context, keyPath, endpoint string) (string, error) {
	ep, err := common.ParseEndpoint(endpoint, p.DefaultUser)
	if err != nil {
		return "", err
	}

	signers, release, diag, err := p.signers(ctx, keyPath)
	if err != nil {
		return "", err
	}
	if diag != "" {
		return diag, nil
	}
	defer release()

	hostKeyCallback, err := p.hostKeyCallback()
	if err != nil {
		return "", err
	}

	cfg := &ssh.ClientConfig{
		User:            ep.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signers...)},
		HostKeyCallback: hostKeyCallback,
		Timeout:         p.Timeout,
	}

	logger.Log("Probing %s with %s", ep, keyPath)
	dialer := net.Dialer{Timeout: p.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", ep.Address())
	if err != nil {
		return err.Error(), nil
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()
	_ = conn.SetDeadline(time.Now().Add(p.Timeout))

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, ep.Address(), cfg)
	if err != nil {
		conn.Close()
		return err.Error(), nil
	}
	client := ssh.NewClient(sshConn, chans, reqs)
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return fmt.Sprintf("authenticated to %s but could not open a session: %v", ep, err), nil
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr
	if err := session.Shell(); err != nil {
		return fmt.Sprintf("authenticated to %s but shell request failed: %v", ep, err), nil
	}

	var trailer string
	if err := session.Wait(); err != nil {
		var exitErr *ssh.ExitError
		var missing *ssh.ExitMissingError
		if !errors.As(err, &exitErr) && !errors.As(err, &missing) {
			trailer = err.Error()
		}
	}

	out := stderr.String() + stdout.String()
	if trailer != "" {
		if out != "" && out[len(out)-1] != '\n' {
			out += "\n"
		}
		out += trailer
	}
	return out, nil
}

// signers loads the account key. Passphrase-protected keys are looked up in
// the agent; when that is impossible a diagnostic is returned instead.
func (p *Prober) signers(ctx context.Context, keyPath string) ([]ssh.Signer, func(), string, error) {
	data, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, nil, "", fmt.Errorf("read private key: %w", err)
	}

	signer, err := ssh.ParsePrivateKey(data)
	if err == nil {
		return []ssh.Signer{signer}, func() {}, "", nil
	}

	var missing *ssh.PassphraseMissingError
	if !errors.As(err, &missing) {
		return nil, nil, "", fmt.Errorf("parse private key %s: %w", keyPath, err)
	}

	pub := missing.PublicKey
	if pub == nil {
		if pub, _, err = ReadPublicKey(keyPath); err != nil {
			return nil, nil, "", err
		}
	}
	if p.Agent == nil {
		return nil, nil, fmt.Sprintf("%s is passphrase protected and no ssh-agent is configured", keyPath), nil
	}

	signers, release, err := p.Agent.Signers(ctx, pub)
	if err != nil {
		return nil, nil, fmt.Sprintf("%s is passphrase protected and the ssh-agent could not be used: %v", keyPath, err), nil
	}
	if len(signers) == 0 {
		release()
		return nil, nil, fmt.Sprintf("%s is passphrase protected and not loaded in ssh-agent", keyPath), nil
	}
	return signers, release, "", nil
}

func (p *Prober) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if p.KnownHostsPath != "" {
		if _, err := os.Stat(p.KnownHostsPath); err == nil {
			cb, err := knownhosts.New(p.KnownHostsPath)
			if err != nil {
				return nil, fmt.Errorf("load known_hosts %s: %w", p.KnownHostsPath, err)
			}
			return cb, nil
		}
	}
	logger.LogWarn("No known_hosts at %s, host key will not be verified", p.KnownHostsPath)
	return ssh.InsecureIgnoreHostKey(), nil
}
