package scene

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	maxPointers         = 10  // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone = 0.0 // pixels; any movement of a held pointer drags
)

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Per-pointer state ---

type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	hitNode  *Node // node under the pointer at press time; receives the rest of the gesture
	dragging bool
	button   MouseButton // button captured at press time
}

// --- Scene-level event registration ---

// OnPointerDown registers a scene-level callback for pointer down events. It
// fires for every press, including presses over empty space, before the
// pressed node's own callback.
func (s *Scene) OnPointerDown(fn func(PointerContext)) {
	s.pointerDown = append(s.pointerDown, fn)
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the node's visual bounds. Containers and
// text without a HitShape are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	switch n.Type {
	case NodeTypeRect, NodeTypeImage:
		w, h := n.Size()
		if w == 0 && h == 0 {
			return false
		}
		return lx >= 0 && lx <= w && ly >= 0 && ly <= h
	case NodeTypeCircle:
		return lx*lx+ly*ly <= n.Radius*n.Radius
	}
	return false
}

// collectInteractable walks the tree in painter order (DFS, ZIndex-sorted),
// appending interactable nodes to buf. Skips Visible=false or
// Interactable=false subtrees.
func (s *Scene) collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.HitShape != nil || n.Type != NodeTypeContainer {
		buf = append(buf, n)
	}
	if len(n.children) == 0 {
		return buf
	}
	children := n.children
	if !n.childrenSorted {
		s.rebuildSortedChildren(n)
	}
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, child := range children {
		buf = s.collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (worldX, worldY).
// Returns nil if nothing is hit.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = s.collectInteractable(s.root, s.hitBuf[:0])
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// processInput handles mouse, touch and injected input. World transforms are
// already refreshed at the start of Scene.Update. Screen and world space
// coincide: the game's Layout fixes the logical resolution.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	if s.injectOnly {
		return
	}
	s.processMousePointer()
	s.processTouchPointers()
}

// processMousePointer handles mouse input (pointer 0).
func (s *Scene) processMousePointer() {
	mx, my := ebiten.CursorPosition()

	// If the pointer is already down, the stored button wins.
	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		switch {
		case left:
			button = MouseButtonLeft
		case right:
			button = MouseButtonRight
		default:
			button = MouseButtonMiddle
		}
	}

	s.processPointer(0, float64(mx), float64(my), pressed, button)
}

// processTouchPointers handles touch input (pointers 1-9).
func (s *Scene) processTouchPointers() {
	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		s.processPointer(slot, float64(tx), float64(ty), true, MouseButtonLeft)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !activeSlots[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *Scene) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the pointer state machine for a single pointer. The
// node under the pointer at press time captures the gesture: drag and release
// events go to it wherever the pointer ends up.
func (s *Scene) processPointer(pointerID int, wx, wy float64, pressed bool, button MouseButton) {
	ps := &s.pointers[pointerID]

	switch {
	case pressed && !ps.down:
		target := s.hitTest(wx, wy)
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = wx, wy
		ps.lastX, ps.lastY = wx, wy
		ps.hitNode = target
		ps.dragging = false
		s.firePointerDown(target, pointerID, wx, wy, button)

	case !pressed && ps.down:
		target := s.hitTest(wx, wy)
		pressedNode := ps.hitNode
		if ps.dragging {
			s.fireDrag(EventDragEnd, pressedNode, pointerID, wx, wy, ps, wx-ps.lastX, wy-ps.lastY)
		} else if pressedNode != nil && pressedNode == target {
			s.fireClick(pressedNode, pointerID, wx, wy, ps.button)
		}
		outside := pressedNode != nil && pressedNode != target
		s.firePointerUp(pressedNode, pointerID, wx, wy, ps.button, outside)

		ps.down = false
		ps.hitNode = nil
		ps.dragging = false
		ps.lastX, ps.lastY = wx, wy

	case pressed && ps.down:
		if wx != ps.lastX || wy != ps.lastY {
			if !ps.dragging {
				dx := wx - ps.startX
				dy := wy - ps.startY
				if math.Sqrt(dx*dx+dy*dy) > s.dragDeadZone {
					ps.dragging = true
					s.fireDrag(EventDragStart, ps.hitNode, pointerID, wx, wy, ps, wx-ps.startX, wy-ps.startY)
				}
			}
			if ps.dragging {
				s.fireDrag(EventDrag, ps.hitNode, pointerID, wx, wy, ps, wx-ps.lastX, wy-ps.lastY)
			}
		}
		ps.lastX, ps.lastY = wx, wy

	default:
		ps.lastX, ps.lastY = wx, wy
	}
}

// --- Event dispatch ---

func nodeInfo(node *Node, wx, wy float64) (lx, ly float64, entityID uint32, userData any) {
	if node == nil {
		return 0, 0, 0, nil
	}
	lx, ly = node.WorldToLocal(wx, wy)
	return lx, ly, node.EntityID, node.UserData
}

func (s *Scene) firePointerDown(node *Node, pointerID int, wx, wy float64, button MouseButton) {
	lx, ly, entityID, userData := nodeInfo(node, wx, wy)
	ctx := PointerContext{
		Node: node, EntityID: entityID, UserData: userData,
		GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		Button: button, PointerID: pointerID,
	}
	// Scene-level handlers first.
	for _, fn := range s.pointerDown {
		fn(ctx)
	}
	if node != nil && node.OnPointerDown != nil {
		node.OnPointerDown(ctx)
	}
	s.emitInteractionEvent(EventPointerDown, node, wx, wy, lx, ly, button, DragContext{})
}

func (s *Scene) firePointerUp(node *Node, pointerID int, wx, wy float64, button MouseButton, outside bool) {
	lx, ly, entityID, userData := nodeInfo(node, wx, wy)
	ctx := PointerContext{
		Node: node, EntityID: entityID, UserData: userData,
		GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		Button: button, PointerID: pointerID, Outside: outside,
	}
	if node != nil && node.OnPointerUp != nil {
		node.OnPointerUp(ctx)
	}
	s.emitInteractionEvent(EventPointerUp, node, wx, wy, lx, ly, button, DragContext{})
}

func (s *Scene) fireClick(node *Node, pointerID int, wx, wy float64, button MouseButton) {
	lx, ly, entityID, userData := nodeInfo(node, wx, wy)
	ctx := ClickContext{
		Node: node, EntityID: entityID, UserData: userData,
		GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		Button: button, PointerID: pointerID,
	}
	if node != nil && node.OnClick != nil {
		node.OnClick(ctx)
	}
	s.emitInteractionEvent(EventClick, node, wx, wy, lx, ly, button, DragContext{})
}

// fireDrag dispatches one of the three drag events to the matching per-node
// callback.
func (s *Scene) fireDrag(ev EventType, node *Node, pointerID int, wx, wy float64, ps *pointerState, dx, dy float64) {
	lx, ly, entityID, userData := nodeInfo(node, wx, wy)
	ctx := DragContext{
		Node: node, EntityID: entityID, UserData: userData,
		GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		StartX: ps.startX, StartY: ps.startY, DeltaX: dx, DeltaY: dy,
		Button: ps.button, PointerID: pointerID,
	}
	if node != nil {
		var cb func(DragContext)
		switch ev {
		case EventDragStart:
			cb = node.OnDragStart
		case EventDrag:
			cb = node.OnDrag
		case EventDragEnd:
			cb = node.OnDragEnd
		}
		if cb != nil {
			cb(ctx)
		}
	}
	s.emitInteractionEvent(ev, node, wx, wy, lx, ly, ps.button, ctx)
}

// --- ECS bridge ---

func (s *Scene) emitInteractionEvent(eventType EventType, node *Node, wx, wy, lx, ly float64,
	button MouseButton, drag DragContext) {
	if s.store == nil || node == nil || node.EntityID == 0 {
		return
	}
	s.store.EmitEvent(InteractionEvent{
		Type:     eventType,
		EntityID: node.EntityID,
		GlobalX:  wx,
		GlobalY:  wy,
		LocalX:   lx,
		LocalY:   ly,
		Button:   button,
		StartX:   drag.StartX,
		StartY:   drag.StartY,
		DeltaX:   drag.DeltaX,
		DeltaY:   drag.DeltaY,
	})
}
