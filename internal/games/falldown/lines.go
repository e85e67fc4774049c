package falldown

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/falldown/internal/config"
)

// Line is a rising platform with a single hole the ball can drop through.
type Line struct {
	Y      float64 // Vertical position in rows (fractional while rising)
	GapX   int     // Left edge of the hole
	GapW   int     // Width of the hole
	passed bool    // Ball has dropped below this line
}

// Row returns the screen row the line is drawn on.
func (l Line) Row() int {
	return int(math.Floor(l.Y))
}

// InGap reports whether column x is inside the hole.
func (l Line) InGap(x int) bool {
	return x >= l.GapX && x < l.GapX+l.GapW
}

// LineManager spawns, raises and removes lines.
type LineManager struct {
	lines      []Line
	rng        *rand.Rand
	screenW    int
	top        int // First playfield row
	bottom     int // Last playfield row
	cfg        *config.FalldownConfig
	difficulty *config.DifficultyManager
}

// NewLineManager creates a line manager and fills the playfield below startRow.
func NewLineManager(seed int64, screenW, top, bottom, startRow int, cfg *config.FalldownConfig, diff *config.DifficultyManager) *LineManager {
	lm := &LineManager{
		lines:      make([]Line, 0, 16),
		rng:        rand.New(rand.NewSource(seed)),
		screenW:    screenW,
		top:        top,
		bottom:     bottom,
		cfg:        cfg,
		difficulty: diff,
	}

	spacing := diff.Spacing(cfg.Lines.Spacing, 0, 0)
	for y := startRow + spacing; y <= bottom; y += spacing {
		lm.spawn(float64(y), 0, 0)
	}
	return lm
}

// Lines returns the active lines ordered top to bottom.
func (lm *LineManager) Lines() []Line {
	return lm.lines
}

// Update raises every line, drops those that left the playfield and spawns
// new ones at the bottom.
func (lm *LineManager) Update(score int, ticks int) {
	speed := lm.difficulty.RiseSpeed(lm.cfg.Lines.RiseSpeed, score, ticks)

	for i := range lm.lines {
		lm.lines[i].Y -= speed
	}

	kept := lm.lines[:0]
	for _, l := range lm.lines {
		if l.Row() >= lm.top {
			kept = append(kept, l)
		}
	}
	lm.lines = kept

	spacing := lm.difficulty.Spacing(lm.cfg.Lines.Spacing, score, ticks)
	if len(lm.lines) == 0 || lm.lines[len(lm.lines)-1].Row() <= lm.bottom-spacing {
		lm.spawn(float64(lm.bottom), score, ticks)
	}
}

func (lm *LineManager) spawn(y float64, score, ticks int) {
	gapW := lm.difficulty.GapWidth(lm.cfg.Lines.GapWidth, score, ticks)
	gapW = min(gapW, lm.screenW)

	gapX := 0
	if span := lm.screenW - gapW; span > 0 {
		gapX = lm.rng.Intn(span + 1)
	}

	lm.lines = append(lm.lines, Line{Y: y, GapX: gapX, GapW: gapW})
}
