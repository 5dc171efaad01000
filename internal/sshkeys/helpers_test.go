package sshkeys

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/lucasgio/gam/internal/domain"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
)

const githubGreeting = "Hi %s! You've successfully authenticated, but GitHub does not provide shell access.\n"

// newKey writes a fresh key pair into dir and returns its path.
func newKey(t *testing.T, dir, name, passphrase string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, NewGenerator().Generate(context.Background(), domain.KeySpec{
		Comment:    name + "@example.com",
		Path:       path,
		Passphrase: passphrase,
	}))
	return path
}

func publicKeyOf(t *testing.T, keyPath string) ssh.PublicKey {
	t.Helper()
	pub, _, err := ReadPublicKey(keyPath)
	require.NoError(t, err)
	return pub
}

// testSSHServer accepts authorizedKey only and answers shell requests the
// way GitHub does. It returns the listen address and the host public key.
func testSSHServer(t *testing.T, authorizedKey ssh.PublicKey) (string, ssh.PublicKey) {
	t.Helper()

	_, hostKeyPEM, err := GenerateKeyPair("host", "")
	require.NoError(t, err)
	hostSigner, err := ssh.ParsePrivateKey(hostKeyPEM)
	require.NoError(t, err)

	cfg := &ssh.ServerConfig{
		PublicKeyCallback: func(conn ssh.ConnMetadata, key ssh.PublicKey) (*ssh.Permissions, error) {
			if ssh.FingerprintSHA256(key) == ssh.FingerprintSHA256(authorizedKey) {
				return &ssh.Permissions{}, nil
			}
			return nil, fmt.Errorf("unknown public key")
		},
	}
	cfg.AddHostKey(hostSigner)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			netConn, err := listener.Accept()
			if err != nil {
				return
			}
			go handleTestConn(netConn, cfg)
		}
	}()

	t.Cleanup(func() {
		listener.Close()
		<-done
	})
	return listener.Addr().String(), hostSigner.PublicKey()
}

func handleTestConn(netConn net.Conn, cfg *ssh.ServerConfig) {
	sshConn, chans, reqs, err := ssh.NewServerConn(netConn, cfg)
	if err != nil {
		netConn.Close()
		return
	}
	defer sshConn.Close()
	go ssh.DiscardRequests(reqs)

	for newChan := range chans {
		if newChan.ChannelType() != "session" {
			newChan.Reject(ssh.UnknownChannelType, "unknown channel type")
			continue
		}
		ch, requests, err := newChan.Accept()
		if err != nil {
			continue
		}
		go func() {
			defer ch.Close()
			for req := range requests {
				if req.Type != "shell" {
					if req.WantReply {
						req.Reply(false, nil)
					}
					continue
				}
				if req.WantReply {
					req.Reply(true, nil)
				}
				fmt.Fprintf(ch.Stderr(), githubGreeting, sshConn.User())
				ch.SendRequest("exit-status", false, []byte{0, 0, 0, 1})
				return
			}
		}()
	}
}

// testAgent serves an in-memory keyring on a unix socket.
func testAgent(t *testing.T) (string, agent.Agent) {
	t.Helper()

	dir, err := os.MkdirTemp("", "gam-agent")
	require.NoError(t, err)
	socket := filepath.Join(dir, "agent.sock")

	listener, err := net.Listen("unix", socket)
	require.NoError(t, err)

	keyring := agent.NewKeyring()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go func() {
				defer conn.Close()
				_ = agent.ServeAgent(keyring, conn)
			}()
		}
	}()

	t.Cleanup(func() {
		listener.Close()
		<-done
		os.RemoveAll(dir)
	})
	return socket, keyring
}
