//go:build ebiten

package app

import (
	"fmt"
	"image/color"
	"time"

	"github.com/lisp-ceo/gol/internal/render"
	"github.com/lisp-ceo/gol/internal/ui"
	"github.com/lisp-ceo/gol/pkg/core"
	"github.com/lisp-ceo/gol/pkg/life"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a life.Universe to the ebiten.Game interface. The universe is
// only ever touched from Update and Draw, which ebiten serialises, so the
// buffer can be blitted without copying.
type Game struct {
	u       *life.Universe
	painter *render.Painter
	stepper *core.FixedStep
	hud     *ui.HUD

	onColor  color.Color
	offColor color.Color

	scale      int
	seed       int64
	paused     bool
	tickOnce   bool
	generation int
	reseeds    int
}

// New constructs a Game around the provided universe. tps sets how many
// generations pass per second, independent of the display frame rate.
func New(u *life.Universe, scale, tps int, seed int64) *Game {
	if scale <= 0 {
		scale = 1
	}
	return &Game{
		u:        u,
		painter:  render.NewPainter(u.Size()),
		stepper:  core.NewFixedStep(tps),
		hud:      ui.NewHUD(),
		onColor:  color.White,
		offColor: color.Black,
		scale:    scale,
		seed:     seed,
	}
}

// Reset restarts the universe from the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.u.Reset(seed)
	g.generation = 0
	g.reseeds = 0
	g.tickOnce = false
}

// Update handles input and advances the universe at the configured rate.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		if !g.paused {
			g.stepper.Reset()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
		g.stepper.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.u.Clear()
		g.generation = 0
		g.reseeds = 0
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		// Clicks outside the grid are ignored.
		_ = g.u.ToggleCell(y/g.scale, x/g.scale)
	}

	g.hud.Update()

	if g.tickOnce {
		g.tick()
		g.tickOnce = false
	} else if !g.paused {
		for g.stepper.ShouldStep() {
			g.tick()
		}
	}
	return nil
}

func (g *Game) tick() {
	if g.u.Tick().Reseeded {
		g.reseeds++
	}
	g.generation++
}

// Draw renders the current universe state with the HUD on top.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.u.Cells(), g.onColor, g.offColor, g.scale)

	lines := []string{
		fmt.Sprintf("gen %d", g.generation),
		fmt.Sprintf("pop %d", g.u.Population()),
		fmt.Sprintf("reseeds %d", g.reseeds),
	}
	if g.paused {
		lines = append(lines, "paused")
	}
	g.hud.Draw(screen, lines)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.u.Size()
	return s.W * g.scale, s.H * g.scale
}
