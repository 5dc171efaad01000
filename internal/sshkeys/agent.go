package sshkeys

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os"

	"github.com/lucasgio/gam/internal/domain"
	"github.com/lucasgio/gam/internal/logger"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
)

const AuthSockEnv = "SSH_AUTH_SOCK"

// AgentClient talks to a running ssh-agent over its unix socket. Each call
// opens its own connection.
type AgentClient struct {
	socket string
}

func NewAgentClient(socket string) *AgentClient {
	return &AgentClient{socket: socket}
}

// NewAgentClientFromEnv uses $SSH_AUTH_SOCK.
func NewAgentClientFromEnv() *AgentClient {
	return NewAgentClient(os.Getenv(AuthSockEnv))
}

func (a *AgentClient) connect(ctx context.Context) (agent.ExtendedAgent, net.Conn, error) {
	if a.socket == "" {
		return nil, nil, domain.ErrAgentUnavailable
	}
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", a.socket)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrAgentUnavailable, err)
	}
	return agent.NewClient(conn), conn, nil
}

func (a *AgentClient) Add(ctx context.Context, keyPath, passphrase string) error {
	data, err := os.ReadFile(keyPath)
	if err != nil {
		return fmt.Errorf("read private key: %w", err)
	}

	var raw interface{}
	if passphrase != "" {
		raw, err = ssh.ParseRawPrivateKeyWithPassphrase(data, []byte(passphrase))
	} else {
		raw, err = ssh.ParseRawPrivateKey(data)
	}
	if err != nil {
		return fmt.Errorf("parse private key %s: %w", keyPath, err)
	}

	comment := keyPath
	if _, c, err := ReadPublicKey(keyPath); err == nil && c != "" {
		comment = c
	}

	client, conn, err := a.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := client.Add(agent.AddedKey{PrivateKey: raw, Comment: comment}); err != nil {
		return fmt.Errorf("agent add %s: %w", keyPath, err)
	}
	logger.Log("Added %s to ssh-agent", keyPath)
	return nil
}

// Remove drops the identity matching keyPath + ".pub" from the agent.
func (a *AgentClient) Remove(ctx context.Context, keyPath string) error {
	pub, _, err := ReadPublicKey(keyPath)
	if err != nil {
		return err
	}

	client, conn, err := a.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := client.Remove(pub); err != nil {
		return fmt.Errorf("agent remove %s: %w", keyPath, err)
	}
	logger.Log("Removed %s from ssh-agent", keyPath)
	return nil
}

// Signers returns the agent's signers for want, or all of them when want is
// nil. The returned close func releases the agent connection and must be
// called once the signers are no longer used.
func (a *AgentClient) Signers(ctx context.Context, want ssh.PublicKey) ([]ssh.Signer, func(), error) {
	client, conn, err := a.connect(ctx)
	if err != nil {
		return nil, nil, err
	}

	signers, err := client.Signers()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("agent signers: %w", err)
	}

	if want != nil {
		filtered := signers[:0]
		for _, s := range signers {
			if bytes.Equal(s.PublicKey().Marshal(), want.Marshal()) {
				filtered = append(filtered, s)
			}
		}
		signers = filtered
	}
	return signers, func() { conn.Close() }, nil
}
