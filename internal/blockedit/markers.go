package blockedit

import "strings"

const markerPrefix = "# ssh-manager ACTIVE "

// BlockState reports whether a host's marker block is present and closed.
type BlockState int

const (
	BlockAbsent BlockState = iota
	BlockComplete
	// BlockUnterminated means a start marker exists with no matching end
	// marker after it.
	BlockUnterminated
)

func (s BlockState) String() string {
	switch s {
	case BlockComplete:
		return "complete"
	case BlockUnterminated:
		return "unterminated"
	default:
		return "absent"
	}
}

// Region is the half-open byte range [Start, End) of a marker block,
// markers included. For BlockUnterminated, End is the end of the text.
type Region struct {
	Start int
	End   int
	State BlockState
}

// StartMarker is the line, newline included, that opens the block for host.
func StartMarker(host string) string {
	return markerLine("START", host) + "\n"
}

// EndMarker is the line, newline included, that closes the block for host.
func EndMarker(host string) string {
	return markerLine("END", host) + "\n"
}

func markerLine(kind, host string) string {
	return markerPrefix + kind + " [" + host + "]"
}

// BuildBlock renders a complete marker block for host around body.
func BuildBlock(host, body string) string {
	var b strings.Builder
	b.WriteString(StartMarker(host))
	b.WriteString(body)
	if body != "" && !strings.HasSuffix(body, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(EndMarker(host))
	return b.String()
}

// FindMarkerBlock locates the first marker block for host. Markers only
// count when they fill a whole line; the last line of the text may lack its
// newline.
func FindMarkerBlock(text, host string) Region {
	start, startLen := findMarkerLine(text, markerLine("START", host), 0)
	if start < 0 {
		return Region{State: BlockAbsent}
	}

	end, endLen := findMarkerLine(text, markerLine("END", host), start+startLen)
	if end < 0 {
		return Region{Start: start, End: len(text), State: BlockUnterminated}
	}

	return Region{Start: start, End: end + endLen, State: BlockComplete}
}

// UpsertMarkerBlock replaces the block for host with a freshly built one, or
// appends it when absent. An unterminated block is replaced through to the
// end of the text. Calling it twice with the same body is a no-op the second
// time.
func UpsertMarkerBlock(text, host, body string) string {
	block := BuildBlock(host, body)

	region := FindMarkerBlock(text, host)
	switch region.State {
	case BlockComplete, BlockUnterminated:
		return text[:region.Start] + block + text[region.End:]
	}

	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text + block
}

// RemoveMarkerBlock deletes the block for host. The text is returned
// unchanged, with removed=false, when the block is absent or unterminated:
// without an end marker there is no safe boundary to delete up to.
func RemoveMarkerBlock(text, host string) (result string, removed bool) {
	region := FindMarkerBlock(text, host)
	if region.State != BlockComplete {
		return text, false
	}
	return text[:region.Start] + text[region.End:], true
}

// findMarkerLine returns the offset of the first line at or after from whose
// content is exactly line, and that line's length including its newline.
func findMarkerLine(text, line string, from int) (int, int) {
	for from <= len(text) {
		i := strings.Index(text[from:], line)
		if i < 0 {
			return -1, 0
		}
		i += from
		after := i + len(line)
		if i == 0 || text[i-1] == '\n' {
			if after == len(text) {
				return i, len(line)
			}
			if text[after] == '\n' {
				return i, len(line) + 1
			}
		}
		from = i + 1
	}
	return -1, 0
}
