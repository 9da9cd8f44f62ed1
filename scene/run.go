package scene

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool

	// WindowScale scales the window relative to the logical Width and
	// Height. Zero means 1.
	WindowScale float64

	// Update runs after Scene.Update every tick. A non-nil error stops the
	// game loop; ebiten.Termination ends it cleanly.
	Update func() error
}

// loop adapts a Scene to ebiten.Game with a fixed logical size.
type loop struct {
	scene  *Scene
	cfg    RunConfig
	update func() error
}

func (l *loop) Update() error {
	l.scene.Update()
	if l.update != nil {
		return l.update()
	}
	return nil
}

func (l *loop) Draw(screen *ebiten.Image) {
	l.scene.Draw(screen)
}

func (l *loop) Layout(_, _ int) (int, int) {
	return l.cfg.Width, l.cfg.Height
}

// NewGame wraps s as an ebiten.Game with the logical size from cfg.
func NewGame(s *Scene, cfg RunConfig) ebiten.Game {
	if cfg.ShowFPS {
		s.Root().AddChild(NewFPSWidget())
	}
	return &loop{scene: s, cfg: cfg, update: cfg.Update}
}

// Run opens a window and runs s until the window closes or the update hook
// returns an error.
func Run(s *Scene, cfg RunConfig) error {
	scale := cfg.WindowScale
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(int(float64(cfg.Width)*scale), int(float64(cfg.Height)*scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(NewGame(s, cfg))
}
