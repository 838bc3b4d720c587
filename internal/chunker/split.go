package chunker

import (
	"strings"
	"unicode/utf8"
)

// cutSeparators is the layered cut preference: paragraph break, then line
// break, then whitespace. If none appears in the window, the cut is a hard
// character cut at the size limit.
var cutSeparators = []string{"\n\n", "\n", " "}

// splitText cuts text into pieces of at most size characters. Each cut is
// placed just after the last occurrence of the coarsest separator found in
// the current window, so a piece never ends mid-unit once a separator is
// available. Consecutive pieces share the last overlap characters of the
// prior piece, and together the pieces cover the whole input with no gaps.
// Size and overlap count runes, not bytes, so a hard cut never lands inside
// a multi-byte character.
func splitText(text string, size, overlap int) []string {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}

	var pieces []string
	start := 0
	for start < len(runes) {
		end := cutPoint(runes, start, size)
		pieces = append(pieces, string(runes[start:end]))
		if end >= len(runes) {
			break
		}

		next := end - overlap
		if next <= start {
			// Overlap would stall progress; advance without it.
			next = end
		}
		start = next
	}
	return pieces
}

// cutPoint returns the end index, in runes, for a piece starting at start.
// It prefers the latest separator inside the window, falling back to a hard
// cut at the size limit.
func cutPoint(runes []rune, start, size int) int {
	end := start + size
	if end >= len(runes) {
		return len(runes)
	}

	window := string(runes[start:end])
	for _, sep := range cutSeparators {
		if i := strings.LastIndex(window, sep); i > 0 {
			// Separators are ASCII, so their byte and rune lengths agree.
			return start + utf8.RuneCountInString(window[:i]) + len(sep)
		}
	}
	return end
}
