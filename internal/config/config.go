// Package config provides YAML-based game configuration loading and
// difficulty management for Falldown.
package config

// FalldownConfig contains all tunables of the game.
type FalldownConfig struct {
	Physics    Physics          `yaml:"physics"`
	Lines      Lines            `yaml:"lines"`
	Ball       Ball             `yaml:"ball"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// Physics defines ball movement parameters, in cells per tick.
type Physics struct {
	Gravity         float64 `yaml:"gravity"`
	MaxFallSpeed    float64 `yaml:"max_fall_speed"`
	MoveImpulse     float64 `yaml:"move_impulse"`     // Horizontal kick per button press
	MaxMoveSpeed    float64 `yaml:"max_move_speed"`   // Horizontal speed cap
	Friction        float64 `yaml:"friction"`         // Horizontal velocity kept per tick (0..1)
	TiltSensitivity float64 `yaml:"tilt_sensitivity"` // Horizontal speed at full tilt
}

// Lines defines the rising platforms.
type Lines struct {
	Spacing   int     `yaml:"spacing"`    // Rows between consecutive lines
	GapWidth  int     `yaml:"gap_width"`  // Width of the hole in each line
	RiseSpeed float64 `yaml:"rise_speed"` // Rows per tick at difficulty 0
	TopMargin int     `yaml:"top_margin"` // HUD rows above the playfield
}

// Ball defines the player ball.
type Ball struct {
	StartRow int `yaml:"start_row"` // Initial row inside the playfield
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
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Added to rise speed at max difficulty
	GapReduction     int     `yaml:"gap_reduction"`     // Gap width reduction at max difficulty
	SpacingReduction int     `yaml:"spacing_reduction"` // Line spacing reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
