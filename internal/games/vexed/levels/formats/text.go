package formats

import "strings"

// ParseText reads the plain level format: up to eight lines of ten digits
// with no header. The board rows are kept as written; the engine parser
// decides how short or malformed rows degrade, so an empty file is an
// empty board.
func ParseText(data []byte) (Level, error) {
	text := strings.TrimSpace(strings.ReplaceAll(string(data), "\r\n", "\n"))
	return Level{Text: text}, nil
}
