// Package blockedit rewrites regions of a shared, line-oriented text file
// (an OpenSSH client config) that this tool owns, leaving every byte outside
// those regions untouched.
//
// Two kinds of region exist. Marker blocks are delimited by an explicit
// START/END comment pair keyed by host and are overwritten on every switch.
// Named sections are a "# <identity> - <label>" header followed by a Host
// stanza; they are written once and located by pattern so that hand-edited
// files are still recognised.
//
// All functions take the full file text and return the full new text. Offsets
// are byte offsets into valid UTF-8; markers are matched as whole strings so
// a splice never lands inside a multi-byte rune.
package blockedit
