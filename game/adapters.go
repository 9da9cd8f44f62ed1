package game

import (
	"github.com/phanxgames/cupcake"
	"github.com/phanxgames/cupcake/scene"
)

// nodeRenderer applies the session's visual requests to scene nodes.
// Unknown entities are ignored.
type nodeRenderer struct {
	pieces map[int]*scene.Node
	hint   *scene.Node
}

func newNodeRenderer() *nodeRenderer {
	return &nodeRenderer{pieces: make(map[int]*scene.Node)}
}

func (r *nodeRenderer) node(e cupcake.Entity) *scene.Node {
	switch e.Kind {
	case cupcake.EntityPiece:
		return r.pieces[e.ID]
	case cupcake.EntityHint:
		return r.hint
	}
	return nil
}

func (r *nodeRenderer) SetPosition(e cupcake.Entity, x, y float64) {
	if n := r.node(e); n != nil {
		n.SetPosition(x, y)
	}
}

func (r *nodeRenderer) SetVisible(e cupcake.Entity, visible bool) {
	if n := r.node(e); n != nil {
		n.SetVisible(visible)
	}
}

func (r *nodeRenderer) SetScale(e cupcake.Entity, s float64) {
	if n := r.node(e); n != nil {
		n.SetScale(s, s)
	}
}

func (r *nodeRenderer) SetAlpha(e cupcake.Entity, a float64) {
	if n := r.node(e); n != nil {
		n.SetAlpha(a)
	}
}

func (r *nodeRenderer) SetZIndex(e cupcake.Entity, z int) {
	if n := r.node(e); n != nil {
		n.SetZIndex(z)
	}
}

// gridTransform maps between world space and the grid container's local
// space.
type gridTransform struct {
	grid *scene.Node
}

func (t gridTransform) ToLocal(p cupcake.Point) (cupcake.Point, bool) {
	if t.grid == nil {
		return cupcake.Point{}, false
	}
	x, y, ok := t.grid.ToLocal(p.X, p.Y)
	return cupcake.Point{X: x, Y: y}, ok
}

func (t gridTransform) ToWorld(p cupcake.Point) (cupcake.Point, bool) {
	if t.grid == nil {
		return cupcake.Point{}, false
	}
	x, y, ok := t.grid.ToWorld(p.X, p.Y)
	return cupcake.Point{X: x, Y: y}, ok
}
