package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/cupcake"
	"github.com/phanxgames/cupcake/config"
	"github.com/phanxgames/cupcake/ecs"
	"github.com/phanxgames/cupcake/scene"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
)

// DefaultGoalScore is the score that switches the banner to its success text.
const DefaultGoalScore = 120

// scriptExitFrames is how many frames run after a play script finishes so
// its last screenshots are written.
const scriptExitFrames = 2

// Cues is the audio surface the game drives. *audio.Cues implements it.
type Cues interface {
	cupcake.AudioCues
	Finish()
	Restart()
}

// Options configures a Game. Zero gameplay values select the core defaults.
type Options struct {
	Layout Layout
	// Assets defaults to placeholders only.
	Assets *Assets
	Cues   Cues

	BaselineScore int
	PointValue    int
	Tolerance     float64
	GoalScore     int
	StoreURL      string

	// OpenURL handles play button clicks. The default logs the URL.
	OpenURL func(url string)

	// ExitAfterScript ends the loop shortly after an attached play script
	// finishes.
	ExitAfterScript bool

	Logger zerolog.Logger
}

// NewOptions fills Options from the loaded configuration. Assets and Cues
// are left for the caller.
func NewOptions(c config.Config, log zerolog.Logger) Options {
	return Options{
		Layout:        Layout{W: float64(c.Window.Width), H: float64(c.Window.Height)},
		BaselineScore: c.Gameplay.BaselineScore,
		PointValue:    c.Gameplay.PointValue,
		Tolerance:     c.Gameplay.Tolerance,
		GoalScore:     c.Gameplay.GoalScore,
		StoreURL:      c.Gameplay.StoreURL,
		Logger:        log,
	}
}

// Game owns the scene, the puzzle session and the presentation around it.
type Game struct {
	opts    Options
	log     zerolog.Logger
	scene   *scene.Scene
	world   donburi.World
	session *cupcake.Session

	tweens scene.Tweens
	seq    cupcake.Sequencer

	board    *board
	feedback *feedback
	result   *resultScreen

	// dragPointer is the pointer that started the active drag, or -1.
	dragPointer int
	afterScript int
}

// New builds the board and result screen and starts a session.
func New(opts Options) (*Game, error) {
	if opts.Layout.W <= 0 || opts.Layout.H <= 0 {
		return nil, fmt.Errorf("new game: invalid layout %vx%v", opts.Layout.W, opts.Layout.H)
	}
	if opts.Assets == nil {
		a, err := NewAssets()
		if err != nil {
			return nil, fmt.Errorf("new game: %w", err)
		}
		opts.Assets = a
	}
	if opts.GoalScore == 0 {
		opts.GoalScore = DefaultGoalScore
	}

	g := &Game{
		opts:        opts,
		log:         opts.Logger.With().Str("component", "game").Logger(),
		scene:       scene.NewScene(),
		world:       donburi.NewWorld(),
		dragPointer: -1,
	}
	if opts.OpenURL == nil {
		g.opts.OpenURL = func(url string) {
			g.log.Info().Str("url", url).Msg("open store page")
		}
	}
	g.scene.SetLogger(opts.Logger)
	g.scene.SetEntityStore(ecs.NewDonburiStore(g.world))

	origins := opts.Layout.PieceOrigins()
	g.board = buildBoard(opts.Layout, opts.Assets, pointValue(opts.PointValue), len(origins))
	g.scene.Root().AddChild(g.board.layer)
	g.result = buildResult(opts.Layout, opts.Assets, g.board.layer, &g.tweens, &g.seq, g.log)
	g.scene.Root().AddChild(g.result.layer)
	g.feedback = newFeedback(g.board, opts.Assets, &g.tweens, &g.seq, opts.GoalScore, g.log)

	ecs.SessionEventType.Subscribe(g.world, g.onSessionEvent)
	ecs.InteractionEventType.Subscribe(g.world, g.onInteraction)

	r := newNodeRenderer()
	r.hint = g.board.hint
	for id, n := range g.board.pieces {
		r.pieces[id] = n
		g.attachPiece(id, n)
	}

	var cues cupcake.AudioCues
	if opts.Cues != nil {
		cues = opts.Cues
	}
	session, err := cupcake.NewSession(cupcake.Options{
		Origins:       origins,
		PointValue:    opts.PointValue,
		BaselineScore: opts.BaselineScore,
		Tolerance:     opts.Tolerance,
		Renderer:      r,
		Audio:         cues,
		Result:        g.result,
		Transform:     gridTransform{grid: g.board.grid},
		Events:        ecs.NewSessionSink(g.world),
		Logger:        &opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	g.session = session

	// Any press counts as the first interaction, not only presses on pieces.
	g.scene.OnPointerDown(func(scene.PointerContext) { g.session.Interact() })

	ecs.ProcessEvents(g.world)
	return g, nil
}

func pointValue(v int) int {
	if v == 0 {
		return cupcake.DefaultPointValue
	}
	return v
}

// attachPiece routes pointer input on a piece node to the session. Only the
// pointer that picked the piece up can move or drop it.
func (g *Game) attachPiece(id int, n *scene.Node) {
	n.OnPointerDown = func(ctx scene.PointerContext) {
		if g.session.BeginDrag(id, cupcake.Point{X: ctx.GlobalX, Y: ctx.GlobalY}) {
			g.dragPointer = ctx.PointerID
		}
	}
	n.OnDrag = func(ctx scene.DragContext) {
		if ctx.PointerID != g.dragPointer {
			return
		}
		g.session.UpdateDrag(id, cupcake.Point{X: ctx.GlobalX, Y: ctx.GlobalY})
	}
	n.OnPointerUp = func(ctx scene.PointerContext) {
		if ctx.PointerID != g.dragPointer {
			return
		}
		if _, ok := g.session.EndDrag(id, cupcake.Point{X: ctx.GlobalX, Y: ctx.GlobalY}); ok {
			g.dragPointer = -1
		}
	}
}

func (g *Game) onSessionEvent(_ donburi.World, e cupcake.Event) {
	g.log.Debug().Stringer("kind", e.Kind).Int("piece", e.PieceID).Int("score", e.Score).Msg("session event")
	g.feedback.handle(e)
	if e.Kind == cupcake.EventSessionCompleted && g.opts.Cues != nil {
		g.opts.Cues.Finish()
	}
}

func (g *Game) onInteraction(_ donburi.World, e scene.InteractionEvent) {
	if e.Type == scene.EventClick && e.EntityID == playButtonEntity && g.result.Shown() {
		g.opts.OpenURL(g.opts.StoreURL)
	}
}

// Update is the per-tick hook run after the scene has dispatched input.
func (g *Game) Update() error {
	g.step(float32(1.0 / float64(ebiten.TPS())))

	if sc := g.scene.Script(); g.opts.ExitAfterScript && sc != nil && sc.Done() {
		g.afterScript++
		if g.afterScript > scriptExitFrames {
			g.log.Info().Uint64("frame", g.scene.Frame()).Msg("play script finished")
			return ebiten.Termination
		}
	}
	return nil
}

// step advances the game by dt seconds.
func (g *Game) step(dt float32) {
	if g.scene.AnyKeyJustPressed() {
		g.session.Interact()
	}
	if g.scene.KeyJustPressed(ebiten.KeyM) {
		g.session.ToggleMute()
	}
	if g.scene.KeyJustPressed(ebiten.KeyR) {
		g.Restart()
	}
	g.session.Update(dt)
	g.seq.Update(dt)
	g.tweens.Update(dt)
	ecs.ProcessEvents(g.world)
}

// Restart drops every running effect, returns to the board and starts a new
// session.
func (g *Game) Restart() {
	g.seq.Clear()
	g.tweens.Clear()
	g.result.hide()
	g.dragPointer = -1
	if g.opts.Cues != nil {
		g.opts.Cues.Restart()
	}
	g.session.Restart()
}

// RunConfig returns the window settings with the game's Update hook.
func (g *Game) RunConfig(w config.WindowConfig) scene.RunConfig {
	return scene.RunConfig{
		Title:       w.Title,
		Width:       w.Width,
		Height:      w.Height,
		ShowFPS:     w.ShowFPS,
		WindowScale: w.Scale,
		Update:      g.Update,
	}
}

// Scene returns the scene the game draws into.
func (g *Game) Scene() *scene.Scene { return g.scene }

// Session returns the running puzzle session.
func (g *Game) Session() *cupcake.Session { return g.session }
