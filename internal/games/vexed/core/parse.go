package core

import "strings"

// ParseLevel converts level text into a board. The text is trimmed and split
// into lines; row r uses line r when present. Each character is read as a
// single digit type. Missing lines, missing characters and anything that is
// not a digit become Empty, so parsing never fails.
func ParseLevel(text string) Board {
	text = strings.TrimSpace(text)
	if text == "" {
		return Board{}
	}
	return ParseRows(strings.Split(text, "\n"))
}

// ParseRows builds a board from one string per row, as used on the wire.
// The same defaulting rules as ParseLevel apply.
func ParseRows(rows []string) Board {
	var b Board
	for r := 0; r < Height && r < len(rows); r++ {
		// columns count characters, not bytes
		line := []rune(strings.TrimSuffix(rows[r], "\r"))
		for c := 0; c < Width && c < len(line); c++ {
			ch := line[c]
			if ch < '0' || ch > '9' {
				continue
			}
			b.cells[r*Width+c] = BlockType(ch - '0')
		}
	}
	return b
}
