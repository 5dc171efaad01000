package blockedit

import (
	"regexp"
	"strings"
)

// The optional leading "\n" after ^ swallows one blank separator line so
// that removing a section written by AppendNamedSection restores the
// original text.
const stanzaTail = `[ \t]*(?:\n|\z)(?:[ \t][^\n]*(?:\n|\z))*`

func headerPrefix(identity string) string {
	return "# " + identity + " - "
}

func sectionPattern(identity, alias string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^\n?` + regexp.QuoteMeta(headerPrefix(identity)) + `[^\n]*\nHost ` + regexp.QuoteMeta(alias) + stanzaTail)
}

func bareStanzaPattern(alias string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^\n?Host ` + regexp.QuoteMeta(alias) + stanzaTail)
}

// HasNamedSection reports whether a section header for identity exists.
func HasNamedSection(text, identity string) bool {
	pattern := regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(headerPrefix(identity)))
	return pattern.MatchString(text)
}

// AppendNamedSection appends section after a blank separator line.
func AppendNamedSection(text, section string) string {
	switch {
	case text == "":
		return section
	case strings.HasSuffix(text, "\n"):
		return text + "\n" + section
	default:
		return text + "\n\n" + section
	}
}

// RemoveNamedSection deletes every header+stanza occurrence for identity and
// alias. When none exists it falls back to deleting bare "Host <alias>"
// stanzas whose header was stripped by hand. found is false, and text is
// returned unchanged, when neither form matched.
func RemoveNamedSection(text, identity, alias string) (result string, found bool) {
	if out := sectionPattern(identity, alias).ReplaceAllLiteralString(text, ""); out != text {
		return out, true
	}
	if out := bareStanzaPattern(alias).ReplaceAllLiteralString(text, ""); out != text {
		return out, true
	}
	return text, false
}
