// Package sshkeys implements the SSH collaborators used by the account
// manager: ed25519 key generation, an ssh-agent client and a connectivity
// probe built on golang.org/x/crypto/ssh.
package sshkeys
