package domain

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.[a-zA-Z]{2,}$`)

// Alias derives the routing label used as the Host entry of a named section,
// e.g. ("github.com", "work") -> "github-work". Collisions between different
// (host, identity) pairs are not detected.
func Alias(host, identity string) string {
	prefix, _, _ := strings.Cut(host, ".")
	return prefix + "-" + strings.ReplaceAll(identity, " ", "-")
}

// KeyFileName is the file-name token of the private key inside the SSH
// directory; the public key lives next to it with a .pub suffix.
func KeyFileName(identity, host string) string {
	return "id_" + strings.ReplaceAll(identity, " ", "_") + "_" + strings.ReplaceAll(host, ".", "_")
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
