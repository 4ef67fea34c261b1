package config

import (
	_ "embed"
)

//go:embed defaults/vexed.yaml
var defaultVexedYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Campaign: CampaignConfig{
			InitialLevel:       1,
			MaxLevel:           59,
			AutoAdvanceSeconds: 5,
		},
		Animation: AnimationConfig{
			Speed:                  SpeedNormal,
			GravityStepMS:          400,
			EliminationHighlightMS: 300,
			EliminationMS:          600,
			EliminationStaggerMS:   80,
			MoveDelayMS:            300,
		},
		Solver: SolverConfig{
			MaxNodes: 250000,
			MaxDepth: 40,
		},
		Server: ServerConfig{
			SSHAddress:         ":23234",
			HostKeyPath:        ".ssh/vexed_ed25519",
			HTTPAddress:        ":8080",
			IdleTimeoutMinutes: 30,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultVexedYAML
}
