package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in each search location.
const FileName = "vexed.yaml"

// Load loads the Vexed configuration.
// Search order: customPath -> ~/.vexed/configs/vexed.yaml -> ./configs/vexed.yaml -> embedded default
// Files are decoded over DefaultConfig, so a partial file only overrides
// the keys it sets. The result is validated.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultVexedYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if _, err := ParseSpeedPreset(string(cfg.Animation.Speed)); err != nil {
		return Config{}, err
	}
	cfg.Validate()
	return cfg, nil
}

// Validate clamps nonsensical values to usable ones.
func (c *Config) Validate() {
	d := DefaultConfig()

	if c.Campaign.MaxLevel < 1 {
		c.Campaign.MaxLevel = d.Campaign.MaxLevel
	}
	c.Campaign.InitialLevel = clamp(c.Campaign.InitialLevel, 1, c.Campaign.MaxLevel)
	c.Campaign.AutoAdvanceSeconds = max(c.Campaign.AutoAdvanceSeconds, 0)

	if c.Animation.Speed == "" {
		c.Animation.Speed = SpeedNormal
	}
	c.Animation.GravityStepMS = max(c.Animation.GravityStepMS, 0)
	c.Animation.EliminationHighlightMS = max(c.Animation.EliminationHighlightMS, 0)
	c.Animation.EliminationMS = max(c.Animation.EliminationMS, 0)
	c.Animation.EliminationStaggerMS = max(c.Animation.EliminationStaggerMS, 0)
	c.Animation.MoveDelayMS = max(c.Animation.MoveDelayMS, 0)

	if c.Solver.MaxNodes <= 0 {
		c.Solver.MaxNodes = d.Solver.MaxNodes
	}
	if c.Solver.MaxDepth <= 0 {
		c.Solver.MaxDepth = d.Solver.MaxDepth
	}

	if c.Server.IdleTimeoutMinutes <= 0 {
		c.Server.IdleTimeoutMinutes = d.Server.IdleTimeoutMinutes
	}
}

// Marshal renders the configuration as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".vexed", "configs", filename)
}

// clamp restricts a value to [lo, hi].
func clamp(val, lo, hi int) int {
	return max(lo, min(hi, val))
}
