package scene

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node together.
// Create one with TweenPosition, TweenScale, TweenColor, TweenAlpha or
// TweenRotation and call Update(dt) each frame, or hand it to a Tweens set.
// A disposed target stops the group without writing.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool

	// OnDone runs once, on the Update that finishes the group.
	OnDone func()
}

// Update advances all tweens by dt seconds and writes the values to the
// target fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}

	if g.target != nil {
		g.target.MarkDirty()
	}

	if allDone {
		g.Done = true
		if g.OnDone != nil {
			g.OnDone()
		}
	}
}

// Then sets OnDone and returns g.
func (g *TweenGroup) Then(fn func()) *TweenGroup {
	g.OnDone = fn
	return g
}

func newGroup(node *Node, fn ease.TweenFunc, duration float32, pairs ...any) *TweenGroup {
	g := &TweenGroup{target: node}
	for i := 0; i+1 < len(pairs); i += 2 {
		field := pairs[i].(*float64)
		to := pairs[i+1].(float64)
		g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
		g.fields[g.count] = field
		g.count++
	}
	return g
}

// TweenPosition animates node.X and node.Y to (toX, toY).
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newGroup(node, fn, duration, &node.X, toX, &node.Y, toY)
}

// TweenScale animates node.ScaleX and node.ScaleY.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newGroup(node, fn, duration, &node.ScaleX, toSX, &node.ScaleY, toSY)
}

// TweenColor animates all four components of node.Color to the target color.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	c := &node.Color
	return newGroup(node, fn, duration, &c.R, to.R, &c.G, to.G, &c.B, to.B, &c.A, to.A)
}

// TweenAlpha animates node.Alpha.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newGroup(node, fn, duration, &node.Alpha, to)
}

// TweenRotation animates node.Rotation.
func TweenRotation(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newGroup(node, fn, duration, &node.Rotation, to)
}

// Tweens is a set of running groups updated together. Finished groups are
// dropped on the Update that completes them. Stop and Clear may be called
// from an OnDone callback.
type Tweens struct {
	groups   []*TweenGroup
	updating bool
}

// Add starts g and returns it.
func (t *Tweens) Add(g *TweenGroup) *TweenGroup {
	t.groups = append(t.groups, g)
	return g
}

// Update advances every group by dt seconds. Groups added from an OnDone
// callback start on the next Update.
func (t *Tweens) Update(dt float32) {
	t.updating = true
	n := len(t.groups)
	for i := 0; i < n; i++ {
		t.groups[i].Update(dt)
	}
	t.updating = false
	t.compact()
}

// Stop drops every running group on node without finishing it.
func (t *Tweens) Stop(node *Node) {
	for _, g := range t.groups {
		if g.target == node {
			g.Done = true
		}
	}
	if !t.updating {
		t.compact()
	}
}

// Clear drops every running group without finishing it.
func (t *Tweens) Clear() {
	for _, g := range t.groups {
		g.Done = true
	}
	if !t.updating {
		t.compact()
	}
}

func (t *Tweens) compact() {
	live := t.groups[:0]
	for _, g := range t.groups {
		if !g.Done {
			live = append(live, g)
		}
	}
	clear(t.groups[len(live):])
	t.groups = live
}

// Len returns the number of running groups.
func (t *Tweens) Len() int {
	return len(t.groups)
}
