// Package config provides YAML-based game configuration loading and
// difficulty management for the invaders game.
package config

// Config contains all tunables for a game session.
type Config struct {
	Player     PlayerConfig     `yaml:"player"`
	Fleet      FleetConfig      `yaml:"fleet"`
	Bunkers    BunkerConfig     `yaml:"bunkers"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`

	// Keys maps key names to action names ("left", "fire", ...) and is
	// merged over the default bindings.
	Keys map[string]string `yaml:"keys"`
}

// PlayerConfig defines cannon parameters.
type PlayerConfig struct {
	Speed        float64 `yaml:"speed"`         // Cells per second
	Lives        int     `yaml:"lives"`
	FireCooldown float64 `yaml:"fire_cooldown"` // Seconds between shots
	BoltSpeed    float64 `yaml:"bolt_speed"`    // Cells per second, upward
}

// FleetConfig defines the invader formation and its behavior.
type FleetConfig struct {
	Rows            int     `yaml:"rows"`
	Cols            int     `yaml:"cols"`
	HSpacing        int     `yaml:"h_spacing"`         // Cells between columns
	VSpacing        int     `yaml:"v_spacing"`         // Cells between rows
	StepInterval    float64 `yaml:"step_interval"`     // Seconds per march step at full strength
	MinStepInterval float64 `yaml:"min_step_interval"` // Floor as ranks thin
	StepX           float64 `yaml:"step_x"`            // Cells moved per horizontal step
	Descent         float64 `yaml:"descent"`           // Cells dropped at an edge
	BombChance      float64 `yaml:"bomb_chance"`       // Per bottom shooter per step
	BombSpeed       float64 `yaml:"bomb_speed"`        // Cells per second, downward
	MaxBombs        int     `yaml:"max_bombs"`         // In-flight bombs cap
}

// BunkerConfig defines the destructible shields.
type BunkerConfig struct {
	Count int `yaml:"count"`
	Width int `yaml:"width"` // Cells per bunker
	Hits  int `yaml:"hits"`  // Hits each segment absorbs
}

// ScoringConfig defines point values.
type ScoringConfig struct {
	// RowPoints awards by formation row, top row first. Rows beyond the
	// slice reuse the last value.
	RowPoints []int `yaml:"row_points"`

	// WaveBonus is awarded for clearing a full wave.
	WaveBonus int `yaml:"wave_bonus"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "wave", "score", or "none"
	MaxAt int    `yaml:"max_at"` // Wave/score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // March speed gain at max difficulty
	BombMultiplier  float64 `yaml:"bomb_multiplier"`  // Bomb chance gain at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// The "fixed" preset disables progression and keeps the config's level.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
}
