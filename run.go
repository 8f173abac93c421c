package touch

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window and game loop started by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// Draw renders a frame. When nil, Scene.DrawDebug is used.
	Draw func(screen *ebiten.Image)
	// OnUpdate, if set, runs after the scene has processed the frame's input.
	OnUpdate func(dt float64) error
}

type game struct {
	scene *Scene
	cfg   RunConfig
}

func (g *game) Update() error {
	g.scene.Update()
	if g.cfg.OnUpdate != nil {
		return g.cfg.OnUpdate(1.0 / float64(ebiten.TPS()))
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.cfg.Draw != nil {
		g.cfg.Draw(screen)
	} else {
		g.scene.DrawDebug(screen)
	}
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and drives the scene from ebiten's game loop. The mouse
// acts as a touch contact so gestures can be tried on desktop. It blocks
// until the window closes.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("run: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	scene.SetMouseAsTouch(true)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if err := ebiten.RunGame(&game{scene: scene, cfg: cfg}); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

var (
	debugFill    = color.RGBA{R: 0x3a, G: 0x6e, B: 0xa5, A: 0xff}
	debugCapture = color.RGBA{R: 0xe0, G: 0x9f, B: 0x3e, A: 0xff}
)

// DrawDebug fills the world-space box of every visible node that has a size,
// highlighting nodes that currently hold contacts.
func (s *Scene) DrawDebug(screen *ebiten.Image) {
	held := make(map[*Node]bool, len(s.captures))
	for _, c := range s.captures {
		held[c.target] = true
	}
	s.drawDebugNode(screen, s.root, held)
}

func (s *Scene) drawDebugNode(screen *ebiten.Image, n *Node, held map[*Node]bool) {
	if !n.Visible {
		return
	}
	if n.Width > 0 && n.Height > 0 {
		x0, y0 := n.LocalToWorld(0, 0)
		x1, y1 := n.LocalToWorld(n.Width, n.Height)
		r := image.Rect(int(x0), int(y0), int(x1), int(y1)).Canon().Intersect(screen.Bounds())
		if !r.Empty() {
			c := debugFill
			if held[n] {
				c = debugCapture
			}
			// color.RGBA is alpha-premultiplied.
			a := clamp01(n.Alpha)
			c = color.RGBA{
				R: uint8(float64(c.R) * a),
				G: uint8(float64(c.G) * a),
				B: uint8(float64(c.B) * a),
				A: uint8(255 * a),
			}
			screen.SubImage(r).(*ebiten.Image).Fill(c)
		}
	}
	for _, child := range n.sortedChildList() {
		s.drawDebugNode(screen, child, held)
	}
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
