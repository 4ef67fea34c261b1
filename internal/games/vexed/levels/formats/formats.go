// Package formats provides pluggable level file format parsers.
package formats

import (
	"path"
	"strconv"
	"strings"
)

// Level represents a parsed level file before it is placed in a pack.
// Number is 0 when neither the file name nor the file content names one.
type Level struct {
	Number int
	Name   string
	Author string
	Text   string
}

// Kind identifies a level file format.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindText
	KindYAML
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Detect picks a format from a file name. Plain level files are named
// "level.N" (the extension is the level number), "N.txt" or "name.txt".
func Detect(name string) Kind {
	ext := strings.ToLower(path.Ext(name))
	switch ext {
	case ".yaml", ".yml":
		return KindYAML
	case ".txt", ".lvl":
		return KindText
	}
	if _, err := strconv.Atoi(strings.TrimPrefix(ext, ".")); err == nil && ext != "" {
		return KindText
	}
	return KindUnknown
}

// NumberFromName extracts the level number from a file name: the numeric
// extension of "level.12", or the trailing digits of the base name in
// "12.txt" and "level-12.yaml". Returns 0 when there is none.
func NumberFromName(name string) int {
	base := path.Base(name)
	ext := path.Ext(base)
	if n, err := strconv.Atoi(strings.TrimPrefix(ext, ".")); err == nil && ext != "" {
		return n
	}
	stem := strings.TrimSuffix(base, ext)
	i := len(stem)
	for i > 0 && stem[i-1] >= '0' && stem[i-1] <= '9' {
		i--
	}
	n, err := strconv.Atoi(stem[i:])
	if err != nil {
		return 0
	}
	return n
}

// Parse routes data to the parser for kind.
func Parse(kind Kind, data []byte) (Level, error) {
	switch kind {
	case KindYAML:
		return ParseYAML(data)
	default:
		return ParseText(data)
	}
}
