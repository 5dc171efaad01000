package blockedit

import (
	"fmt"
	"strings"
)

const defaultUser = "git"

type StanzaOptions struct {
	User string
	// UseKeychain emits the macOS-only UseKeychain directive. Other OpenSSH
	// builds reject it, so it is off unless the platform supports it.
	UseKeychain bool
}

// HostStanza renders a "Host" entry with its indented options.
func HostStanza(pattern, hostName, identityFile string, opts StanzaOptions) string {
	user := opts.User
	if user == "" {
		user = defaultUser
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Host %s\n", pattern)
	fmt.Fprintf(&b, "    HostName %s\n", hostName)
	fmt.Fprintf(&b, "    User %s\n", user)
	fmt.Fprintf(&b, "    IdentityFile %s\n", identityFile)
	b.WriteString("    AddKeysToAgent yes\n")
	if opts.UseKeychain {
		b.WriteString("    UseKeychain yes\n")
	}
	b.WriteString("    IdentitiesOnly yes\n")
	return b.String()
}

// Section is a per-identity static entry routed through its alias.
type Section struct {
	Identity     string
	Label        string
	Alias        string
	HostName     string
	IdentityFile string
}

func (s Section) Render(opts StanzaOptions) string {
	return headerPrefix(s.Identity) + s.Label + "\n" + HostStanza(s.Alias, s.HostName, s.IdentityFile, opts)
}

// ActiveBody is the body of the marker block that routes host itself to
// identityFile.
func ActiveBody(host, identityFile string, opts StanzaOptions) string {
	return HostStanza(host, host, identityFile, opts)
}
