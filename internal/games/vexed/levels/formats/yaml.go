package formats

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	Number int      `yaml:"number,omitempty"`
	Name   string   `yaml:"name"`
	Author string   `yaml:"author,omitempty"`
	Rows   []string `yaml:"rows"`
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return Level{
		Number: yl.Number,
		Name:   yl.Name,
		Author: yl.Author,
		Text:   strings.Join(yl.Rows, "\n"),
	}, nil
}

// MarshalYAML renders a level in the YAML format.
func MarshalYAML(l Level) ([]byte, error) {
	yl := YAMLLevel{
		Number: l.Number,
		Name:   l.Name,
		Author: l.Author,
		Rows:   strings.Split(l.Text, "\n"),
	}
	return yaml.Marshal(yl)
}
