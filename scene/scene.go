package scene

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type     EventType
	EntityID uint32
	GlobalX  float64
	GlobalY  float64
	LocalX   float64
	LocalY   float64
	Button   MouseButton
	// Drag fields (valid for EventDragStart, EventDrag, EventDragEnd)
	StartX float64
	StartY float64
	DeltaX float64
	DeltaY float64
}

const defaultCommandCap = 256

// Scene is the top-level object that owns the node tree, input state and
// draw buffers.
type Scene struct {
	root  *Node
	store EntityStore
	debug bool
	log   zerolog.Logger

	// ClearColor fills the screen before the tree is drawn when its alpha
	// is non-zero.
	ClearColor Color

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	// Render state
	commands []drawCommand
	circles  map[int]*ebiten.Image
	frame    uint64

	// Input state
	pointerDown  []func(PointerContext)
	pointers     [maxPointers]pointerState
	hitBuf       []*Node
	dragDeadZone float64
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID

	// Injected input and scripted playthroughs
	injectQueue     []syntheticPointerEvent
	pendingKeys     []ebiten.Key
	frameKeys       []ebiten.Key
	keyBuf          []ebiten.Key
	injectOnly      bool
	script          *Script
	screenshotQueue []string
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{
		root:          root,
		log:           zerolog.Nop(),
		commands:      make([]drawCommand, 0, defaultCommandCap),
		dragDeadZone:  defaultDragDeadZone,
		ScreenshotDir: "screenshots",
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// SetLogger sets the logger used for debug stats and screenshot failures.
func (s *Scene) SetLogger(l zerolog.Logger) {
	s.log = l.With().Str("component", "scene").Logger()
	treeLog = s.log
}

// Update runs the play script, processes input and runs per-node update
// callbacks. dt is one tick at the current TPS.
func (s *Scene) Update() {
	dt := 1.0 / float64(ebiten.TPS())
	s.frame++

	// Refresh world transforms first so hit testing sees this frame's layout.
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	s.rotateKeys()
	if s.script != nil {
		s.script.step(s)
	}
	s.processInput()
	updateNodes(s.root, dt)
}

// updateNodes calls OnUpdate on every visible node, depth first.
func updateNodes(n *Node, dt float64) {
	if !n.Visible {
		return
	}
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	for _, child := range n.children {
		updateNodes(child, dt)
	}
}

// Draw traverses the scene tree in painter order and draws it to screen.
// Queued screenshots are captured after the tree is drawn.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}

	s.commands = s.commands[:0]

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.traverse(s.root, identityTransform, 1.0, false)

	if s.debug {
		stats.traverseTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		t0 = time.Now()
	}

	s.submit(screen)

	if s.debug {
		stats.submitTime = time.Since(t0)
		s.debugLog(stats)
	}

	s.flushScreenshots(screen)
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, deep trees are warned about, and per-frame timing stats are
// logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool

// Script returns the attached play script, or nil.
func (s *Scene) Script() *Script {
	return s.script
}

// Frame returns the number of Update calls so far.
func (s *Scene) Frame() uint64 {
	return s.frame
}
