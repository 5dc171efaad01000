package sshkeys

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasgio/gam/internal/domain"
	"github.com/lucasgio/gam/internal/logger"
	"golang.org/x/crypto/ssh"
)

const (
	AlgorithmEd25519 = "ed25519"

	privateKeyMode os.FileMode = 0600
	publicKeyMode  os.FileMode = 0644
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes an OpenSSH private key at spec.Path, encrypted when a
// passphrase is given, and the authorized_keys line at spec.Path + ".pub".
func (g *Generator) Generate(ctx context.Context, spec domain.KeySpec) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if spec.Algorithm != "" && spec.Algorithm != AlgorithmEd25519 {
		return fmt.Errorf("unsupported key algorithm %q", spec.Algorithm)
	}

	publicKey, privateKeyPEM, err := GenerateKeyPair(spec.Comment, spec.Passphrase)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(spec.Path), 0700); err != nil {
		return fmt.Errorf("create key directory: %w", err)
	}
	if err := writeKeyFile(spec.Path, privateKeyPEM, privateKeyMode); err != nil {
		return fmt.Errorf("write private key: %w", err)
	}
	if err := writeKeyFile(spec.Path+".pub", publicKey, publicKeyMode); err != nil {
		return fmt.Errorf("write public key: %w", err)
	}

	logger.Log("Generated %s key pair at %s", AlgorithmEd25519, spec.Path)
	return nil
}

// GenerateKeyPair returns the authorized_keys line (with comment) and the
// PEM-encoded OpenSSH private key.
func GenerateKeyPair(comment, passphrase string) (publicKey, privateKeyPEM []byte, err error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("generate ed25519 key: %w", err)
	}

	var block *pem.Block
	if passphrase != "" {
		block, err = ssh.MarshalPrivateKeyWithPassphrase(priv, comment, []byte(passphrase))
	} else {
		block, err = ssh.MarshalPrivateKey(priv, comment)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("marshal private key: %w", err)
	}

	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		return nil, nil, fmt.Errorf("create ssh public key: %w", err)
	}
	line := strings.TrimSpace(string(ssh.MarshalAuthorizedKey(sshPub)))
	if comment != "" {
		line += " " + comment
	}

	return []byte(line + "\n"), pem.EncodeToMemory(block), nil
}

func writeKeyFile(path string, data []byte, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if err := f.Chmod(perm); err != nil {
		f.Close()
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadPublicKey parses keyPath + ".pub" and returns the key and its comment.
func ReadPublicKey(keyPath string) (ssh.PublicKey, string, error) {
	data, err := os.ReadFile(keyPath + ".pub")
	if err != nil {
		return nil, "", fmt.Errorf("read public key: %w", err)
	}
	pub, comment, _, _, err := ssh.ParseAuthorizedKey(data)
	if err != nil {
		return nil, "", fmt.Errorf("parse public key %s.pub: %w", keyPath, err)
	}
	return pub, comment, nil
}
