package config

import "fmt"

// SpeedPreset represents a named animation speed.
type SpeedPreset string

const (
	SpeedSlow    SpeedPreset = "slow"
	SpeedNormal  SpeedPreset = "normal"
	SpeedFast    SpeedPreset = "fast"
	SpeedInstant SpeedPreset = "instant"
)

// Scale returns the multiplier applied to animation timings.
func (p SpeedPreset) Scale() float64 {
	switch p {
	case SpeedSlow:
		return 1.5
	case SpeedFast:
		return 0.5
	case SpeedInstant:
		return 0
	default:
		return 1
	}
}

// ParseSpeedPreset validates a preset name. An empty name means normal.
func ParseSpeedPreset(s string) (SpeedPreset, error) {
	switch p := SpeedPreset(s); p {
	case "":
		return SpeedNormal, nil
	case SpeedSlow, SpeedNormal, SpeedFast, SpeedInstant:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown speed %q (want slow, normal, fast or instant)", s)
	}
}

// IsInstant returns true if the preset skips animation entirely.
func (p SpeedPreset) IsInstant() bool {
	return p == SpeedInstant
}
