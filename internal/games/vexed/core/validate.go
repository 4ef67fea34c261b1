package core

import (
	"fmt"
	"strings"
)

// ValidationError contains details about a level that fails strict checks.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// ValidateLevel performs strict validation of level text.
// ParseLevel accepts anything; this is for authoring and pack verification.
// Checks:
//   - Exactly Height rows of exactly Width digits
//   - At least one movable block
//   - No movable type appears exactly once (it could never be matched)
//   - The board is already stable (no floating blocks, no pending matches)
func ValidateLevel(text string) error {
	text = strings.TrimRight(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := strings.Split(text, "\n")

	if len(lines) > Height {
		return ValidationError{
			Code:    "EXTRA_ROWS",
			Message: fmt.Sprintf("level has %d rows, want %d", len(lines), Height),
		}
	}
	if len(lines) < Height {
		return ValidationError{
			Code:    "MISSING_ROWS",
			Message: fmt.Sprintf("level has %d rows, want %d", len(lines), Height),
		}
	}

	for r, row := range lines {
		line := []rune(row)
		switch {
		case len(line) < Width:
			return ValidationError{
				Code:    "SHORT_ROW",
				Message: fmt.Sprintf("row %d has %d cells, want %d", r, len(line), Width),
			}
		case len(line) > Width:
			return ValidationError{
				Code:    "LONG_ROW",
				Message: fmt.Sprintf("row %d has %d cells, want %d", r, len(line), Width),
			}
		}
		for c := range Width {
			if line[c] < '0' || line[c] > '9' {
				return ValidationError{
					Code:    "BAD_CHAR",
					Message: fmt.Sprintf("row %d col %d: %q is not a block digit", r, c, line[c]),
				}
			}
		}
	}

	b := ParseRows(lines)
	counts := b.CountByType()
	if len(counts) == 0 {
		return ValidationError{Code: "NO_MOVABLE", Message: "level has no movable blocks"}
	}
	for t := Movable1; t <= Movable8; t++ {
		if counts[t] == 1 {
			return ValidationError{
				Code:    "LONE_BLOCK",
				Message: fmt.Sprintf("%s appears once and can never be matched", t),
			}
		}
	}
	if !IsStable(b) {
		return ValidationError{Code: "UNSTABLE", Message: "level changes when settled"}
	}
	return nil
}
