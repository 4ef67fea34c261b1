// Package config provides YAML-based configuration loading for Vexed:
// campaign bounds, animation pacing, solver limits and server addresses.
package config

import "time"

// Config is the complete Vexed configuration.
type Config struct {
	Campaign  CampaignConfig  `yaml:"campaign"`
	Animation AnimationConfig `yaml:"animation"`
	Solver    SolverConfig    `yaml:"solver"`
	Server    ServerConfig    `yaml:"server"`
}

// CampaignConfig defines level progression.
type CampaignConfig struct {
	InitialLevel       int `yaml:"initial_level"`
	MaxLevel           int `yaml:"max_level"`
	AutoAdvanceSeconds int `yaml:"auto_advance_seconds"` // 0 disables auto-advance
}

// AnimationConfig defines how settlement steps are paced on screen.
// Timings are in milliseconds before the speed preset is applied.
type AnimationConfig struct {
	Speed                  SpeedPreset `yaml:"speed"`
	GravityStepMS          int         `yaml:"gravity_step_ms"`
	EliminationHighlightMS int         `yaml:"elimination_highlight_ms"`
	EliminationMS          int         `yaml:"elimination_ms"`
	EliminationStaggerMS   int         `yaml:"elimination_stagger_ms"`
	MoveDelayMS            int         `yaml:"move_delay_ms"`
}

// SolverConfig bounds hint and verification searches.
type SolverConfig struct {
	MaxNodes int `yaml:"max_nodes"`
	MaxDepth int `yaml:"max_depth"`
}

// ServerConfig defines network listeners.
type ServerConfig struct {
	SSHAddress         string `yaml:"ssh_address"`
	HostKeyPath        string `yaml:"host_key_path"`
	HTTPAddress        string `yaml:"http_address"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// Pacing is AnimationConfig resolved to durations with the speed preset
// applied.
type Pacing struct {
	GravityStep          time.Duration
	EliminationHighlight time.Duration
	Elimination          time.Duration
	EliminationStagger   time.Duration
	MoveDelay            time.Duration
}

// Pacing resolves the animation timings.
func (a AnimationConfig) Pacing() Pacing {
	scale := a.Speed.Scale()
	ms := func(v int) time.Duration {
		return time.Duration(float64(v)*scale) * time.Millisecond
	}
	return Pacing{
		GravityStep:          ms(a.GravityStepMS),
		EliminationHighlight: ms(a.EliminationHighlightMS),
		Elimination:          ms(a.EliminationMS),
		EliminationStagger:   ms(a.EliminationStaggerMS),
		MoveDelay:            ms(a.MoveDelayMS),
	}
}

// AutoAdvance returns the delay before the next level loads after a win.
func (c CampaignConfig) AutoAdvance() time.Duration {
	return time.Duration(c.AutoAdvanceSeconds) * time.Second
}

// IdleTimeout returns the SSH idle timeout.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}
