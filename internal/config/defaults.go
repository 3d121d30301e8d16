package config

import (
	_ "embed"
)

//go:embed defaults/invaders.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in game configuration. Used as the last
// fallback when the embedded YAML cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Player: PlayerConfig{
			Speed:        28,
			Lives:        3,
			FireCooldown: 0.45,
			BoltSpeed:    35,
		},
		Fleet: FleetConfig{
			Rows:            5,
			Cols:            11,
			HSpacing:        5,
			VSpacing:        2,
			StepInterval:    0.8,
			MinStepInterval: 0.08,
			StepX:           1,
			Descent:         1,
			BombChance:      0.02,
			BombSpeed:       14,
			MaxBombs:        3,
		},
		Bunkers: BunkerConfig{
			Count: 4,
			Width: 7,
			Hits:  4,
		},
		Scoring: ScoringConfig{
			RowPoints: []int{30, 20, 20, 10, 10},
			WaveBonus: 100,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "wave",
				MaxAt: 8,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.5,
				BombMultiplier:  2.0,
			},
		},
	}
}
