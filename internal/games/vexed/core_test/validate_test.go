package core_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/vexed/internal/games/vexed/core"
)

func TestValidateLevel(t *testing.T) {
	valid := levelText("1010000000", "9999999999")
	rows := strings.Split(valid, "\n")

	replaceRow := func(i int, row string) string {
		out := append([]string(nil), rows...)
		out[i] = row
		return strings.Join(out, "\n")
	}

	testCases := []struct {
		name string
		text string
		code string
	}{
		{"valid level", valid, ""},
		{"valid with trailing newline", valid + "\n", ""},
		{"missing rows", strings.Join(rows[1:], "\n"), "MISSING_ROWS"},
		{"extra rows", valid + "\n" + emptyRow, "EXTRA_ROWS"},
		{"short row", replaceRow(0, "000"), "SHORT_ROW"},
		{"long row", replaceRow(0, "00000000000"), "LONG_ROW"},
		{"bad character", replaceRow(0, "00000x0000"), "BAD_CHAR"},
		{"multi-byte character", replaceRow(0, "0000é00000"), "BAD_CHAR"},
		{"no movable blocks", levelText("9999999999"), "NO_MOVABLE"},
		{"lone block", levelText("1010300000", "9999999999"), "LONE_BLOCK"},
		{"floating block", levelText("1010000000", "0000000000", "9999999999"), "UNSTABLE"},
		{"pending match", levelText("1100000000", "9999999999"), "UNSTABLE"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := core.ValidateLevel(tc.text)
			if tc.code == "" {
				if err != nil {
					t.Fatalf("expected valid level, got %v", err)
				}
				return
			}
			var ve core.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Code != tc.code {
				t.Errorf("expected code %s, got %s (%s)", tc.code, ve.Code, ve.Message)
			}
		})
	}
}
