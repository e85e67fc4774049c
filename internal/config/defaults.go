package config

import (
	_ "embed"
)

//go:embed defaults/falldown.yaml
var defaultFalldownYAML []byte

// DefaultFalldownConfig returns the hardcoded default configuration.
// Kept in sync with defaults/falldown.yaml.
func DefaultFalldownConfig() FalldownConfig {
	return FalldownConfig{
		Physics: Physics{
			Gravity:         0.04,
			MaxFallSpeed:    0.6,
			MoveImpulse:     0.35,
			MaxMoveSpeed:    1.2,
			Friction:        0.85,
			TiltSensitivity: 1.0,
		},
		Lines: Lines{
			Spacing:   4,
			GapWidth:  6,
			RiseSpeed: 0.05,
			TopMargin: 1,
		},
		Ball: Ball{
			StartRow: 2,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 100,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  1.5,
				GapReduction:     2,
				SpacingReduction: 1,
			},
		},
	}
}
