// Package falldown implements the Falldown game: a ball drops through holes
// in lines that keep rising. The ball is steered with buttons or, when the
// accelerometer setting is on, with the motion sensor.
package falldown

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/vovakirdan/falldown/internal/config"
	"github.com/vovakirdan/falldown/internal/core"
	"github.com/vovakirdan/falldown/internal/settings"
)

// Visual characters for rendering
const (
	BallChar = '●'
	LineChar = '▀'
)

// GameID identifies Falldown in logs and on online leaderboards.
const GameID = "falldown"

// Control names recorded with scores.
const (
	ControlTilt    = "tilt"
	ControlButtons = "buttons"
)

// ControlName returns the score label for the control mode in s.
func ControlName(s settings.Settings) string {
	if s.AccelerometerControl {
		return ControlTilt
	}
	return ControlButtons
}

// Game implements the Falldown game logic.
type Game struct {
	app *settings.App

	ballX, ballY float64 // Ball position in cells
	velX, velY   float64

	lines      *LineManager
	score      int
	gameOver   bool
	paused     bool
	tickCount  int
	runtime    core.RuntimeConfig
	cfg        config.FalldownConfig
	difficulty *config.DifficultyManager

	controlChanged atomic.Bool
	unsubscribe    func()
}

// New creates a game bound to the application context, tuned by cfg.
// The game follows control-mode changes until Close is called.
func New(app *settings.App, cfg config.FalldownConfig) *Game {
	g := &Game{app: app, cfg: cfg}
	g.unsubscribe = app.Store.Subscribe(func(settings.Settings) {
		g.controlChanged.Store(true)
	})
	return g
}

// Close stops listening for settings changes.
func (g *Game) Close() {
	if g.unsubscribe != nil {
		g.unsubscribe()
		g.unsubscribe = nil
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Falldown"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	top := g.top()
	startRow := top + g.cfg.Ball.StartRow

	g.ballX = float64(runtime.ScreenW / 2)
	g.ballY = float64(startRow)
	g.velX = 0
	g.velY = 0
	g.score = 0
	g.gameOver = false
	g.paused = false
	g.tickCount = 0
	g.controlChanged.Store(false)

	g.lines = NewLineManager(runtime.Seed, runtime.ScreenW, top, g.bottom(), startRow, &g.cfg, g.difficulty)
}

func (g *Game) top() int {
	return g.cfg.Lines.TopMargin
}

func (g *Game) bottom() int {
	return g.runtime.ScreenH - 1
}

// Step advances the game by one tick.
// Nothing moves while the settings screen is open.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver || g.app.Mode.InMenu() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++

	g.steer(in)
	g.lines.Update(g.score, g.tickCount)
	g.carry()
	g.fall()
	g.roll()

	if g.ballRow() < g.top() {
		g.gameOver = true
	}

	return core.StepResult{State: g.State()}
}

// steer updates horizontal velocity from the current input source.
func (g *Game) steer(in core.InputFrame) {
	if g.controlChanged.Swap(false) {
		g.velX = 0
	}

	p := g.cfg.Physics
	if g.app.Store.Settings().AccelerometerControl {
		g.velX = core.ClampF(in.Tilt, -1, 1) * p.TiltSensitivity
	} else {
		if in.Has(core.ActionLeft) {
			g.velX -= p.MoveImpulse
		}
		if in.Has(core.ActionRight) {
			g.velX += p.MoveImpulse
		}
		g.velX *= p.Friction
	}
	g.velX = core.ClampF(g.velX, -p.MaxMoveSpeed, p.MaxMoveSpeed)
}

// carry pushes the ball up with any line that rose into it,
// or scores the line when the ball sits in its hole.
func (g *Game) carry() {
	col := g.ballCol()
	lines := g.lines.lines
	for i := range lines {
		l := &lines[i]
		if l.passed || l.Row() > g.ballRow() {
			continue
		}
		if l.InGap(col) {
			g.pass(l)
			continue
		}
		g.ballY = float64(l.Row() - 1)
		g.velY = 0
	}
}

// fall applies gravity and lands the ball on the first solid line below.
func (g *Game) fall() {
	p := g.cfg.Physics
	g.velY = math.Min(g.velY+p.Gravity, p.MaxFallSpeed)
	target := g.ballY + g.velY

	col := g.ballCol()
	lines := g.lines.lines
	for i := range lines {
		l := &lines[i]
		if l.passed {
			continue
		}
		if int(math.Floor(target)) < l.Row() {
			break
		}
		if l.InGap(col) {
			g.pass(l)
			continue
		}
		target = float64(l.Row() - 1)
		g.velY = 0
		break
	}

	if floor := float64(g.bottom()); target >= floor {
		target = floor
		g.velY = 0
	}
	g.ballY = target
}

// roll moves the ball horizontally, keeping it inside the screen and
// inside the hole of any line it is passing through.
func (g *Game) roll() {
	lo, hi := 0.0, float64(g.runtime.ScreenW-1)
	row := g.ballRow()
	for _, l := range g.lines.lines {
		if l.Row() == row {
			lo = math.Max(lo, float64(l.GapX))
			hi = math.Min(hi, float64(l.GapX+l.GapW-1))
		}
	}

	g.ballX = core.ClampF(g.ballX+g.velX, lo, hi)
	if g.ballX == lo || g.ballX == hi {
		g.velX = 0
	}
}

func (g *Game) pass(l *Line) {
	l.passed = true
	g.score++
}

func (g *Game) ballRow() int {
	return int(math.Floor(g.ballY))
}

func (g *Game) ballCol() int {
	return int(math.Round(g.ballX))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	for _, l := range g.lines.Lines() {
		row := l.Row()
		dst.DrawHLine(0, row, l.GapX, LineChar, core.ColorGreen)
		dst.DrawHLine(l.GapX+l.GapW, row, dst.Width()-l.GapX-l.GapW, LineChar, core.ColorGreen)
	}

	dst.SetColored(g.ballCol(), g.ballRow(), BallChar, core.ColorBrightYellow)

	// HUD
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", g.score))
	control := fmt.Sprintf(" [%s] Tab: settings ", ControlName(g.app.Store.Settings()))
	dst.DrawText(dst.Width()-len(control)-2, 0, control)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.gameOver {
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2
	box := core.NewRect(boxX, boxY, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}
