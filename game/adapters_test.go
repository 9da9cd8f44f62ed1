package game

import (
	"math"
	"testing"

	"github.com/phanxgames/cupcake"
	"github.com/phanxgames/cupcake/scene"
)

func TestNodeRendererRoutesEntities(t *testing.T) {
	r := newNodeRenderer()
	piece := scene.NewContainer("piece")
	r.pieces[3] = piece
	r.hint = scene.NewCircle("hint", 10, scene.ColorWhite)

	r.SetPosition(cupcake.PieceEntity(3), 12, 34)
	r.SetScale(cupcake.PieceEntity(3), 1.1)
	r.SetZIndex(cupcake.PieceEntity(3), 100)
	r.SetAlpha(cupcake.PieceEntity(3), 0.5)
	r.SetVisible(cupcake.HintEntity, false)

	if piece.X != 12 || piece.Y != 34 {
		t.Errorf("position = (%v,%v)", piece.X, piece.Y)
	}
	if piece.ScaleX != 1.1 || piece.ScaleY != 1.1 {
		t.Errorf("scale = (%v,%v)", piece.ScaleX, piece.ScaleY)
	}
	if piece.ZIndex != 100 || piece.Alpha != 0.5 {
		t.Errorf("z = %d alpha = %v", piece.ZIndex, piece.Alpha)
	}
	if r.hint.Visible {
		t.Error("hint still visible")
	}

	// Unknown entities are ignored.
	r.SetPosition(cupcake.PieceEntity(9), 1, 1)
	r.SetVisible(cupcake.Entity{Kind: 42}, false)
}

func TestGridTransform(t *testing.T) {
	parent := scene.NewContainer("cupcake")
	parent.SetPosition(360, 640)
	grid := scene.NewContainer("grid")
	parent.AddChild(grid)
	xf := gridTransform{grid: grid}

	w, ok := xf.ToWorld(cupcake.Point{X: -20, Y: -192})
	if !ok || w.X != 340 || w.Y != 448 {
		t.Fatalf("ToWorld = %+v %v, want (340,448)", w, ok)
	}
	l, ok := xf.ToLocal(w)
	if !ok || math.Abs(l.X+20) > 1e-9 || math.Abs(l.Y+192) > 1e-9 {
		t.Fatalf("ToLocal = %+v %v, want (-20,-192)", l, ok)
	}

	// Moving the cupcake moves the grid with it.
	parent.SetPosition(0, 0)
	if l, _ := xf.ToLocal(cupcake.Point{X: 5, Y: 6}); l.X != 5 || l.Y != 6 {
		t.Errorf("ToLocal after move = %+v", l)
	}

	grid.Dispose()
	if _, ok := xf.ToLocal(cupcake.Point{}); ok {
		t.Error("ToLocal on a disposed grid succeeded")
	}
}

func TestGridTransformNil(t *testing.T) {
	var xf gridTransform
	if _, ok := xf.ToLocal(cupcake.Point{}); ok {
		t.Error("ToLocal without a grid succeeded")
	}
	if _, ok := xf.ToWorld(cupcake.Point{}); ok {
		t.Error("ToWorld without a grid succeeded")
	}
}

func TestSingularGridRejectsDrop(t *testing.T) {
	g, _ := newTestGame(t)
	g.board.cupcake.SetScale(0, 0)
	drop(g, 1, cellWorld(t, g, 1))
	if g.Session().Piece(1).Placed() {
		t.Fatal("piece placed through a singular transform")
	}
}
