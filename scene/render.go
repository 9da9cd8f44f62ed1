package scene

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// drawCommand is a visible leaf collected during traversal, in painter order.
type drawCommand struct {
	node *Node
}

// traverse walks the node tree depth-first, updating transforms and emitting
// draw commands for visible nodes with a visual.
func (s *Scene) traverse(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	if !n.Visible {
		return
	}

	recompute := n.transformDirty || parentRecomputed
	if recompute {
		local := computeLocalTransform(n)
		n.worldTransform = multiplyAffine(parentTransform, local)
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	if n.Type != NodeTypeContainer && n.worldAlpha > 0 {
		s.commands = append(s.commands, drawCommand{node: n})
	}

	if len(n.children) == 0 {
		return
	}
	children := n.children
	if !n.childrenSorted {
		s.rebuildSortedChildren(n)
	}
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, child := range children {
		s.traverse(child, n.worldTransform, n.worldAlpha, recompute)
	}
}

// rebuildSortedChildren rebuilds the ZIndex-sorted traversal order for a node.
// Uses insertion sort: stable, and O(n) for the usual nearly sorted case.
func (s *Scene) rebuildSortedChildren(n *Node) {
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
}

// geoM converts an affine matrix to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// applyColorScale tints with c and multiplies in the inherited alpha, with
// premultiplied color channels.
func applyColorScale(cs *ebiten.ColorScale, c Color, alpha float64) {
	a := float32(c.A * alpha)
	cs.Scale(float32(c.R)*a, float32(c.G)*a, float32(c.B)*a, a)
}

// submit draws the collected commands in order.
func (s *Scene) submit(dst *ebiten.Image) {
	for i := range s.commands {
		s.drawNode(dst, s.commands[i].node)
	}
}

func (s *Scene) drawNode(dst *ebiten.Image, n *Node) {
	geo := geoM(n.worldTransform)
	alpha := n.worldAlpha

	switch n.Type {
	case NodeTypeRect:
		if n.Width <= 0 || n.Height <= 0 {
			return
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(n.Width, n.Height)
		op.GeoM.Concat(geo)
		applyColorScale(&op.ColorScale, n.Color, alpha)
		dst.DrawImage(whitePixel(), op)

	case NodeTypeCircle:
		if n.Radius <= 0 {
			return
		}
		img, pad := s.circleImage(n.Radius)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-n.Radius-pad, -n.Radius-pad)
		op.GeoM.Concat(geo)
		op.Filter = ebiten.FilterLinear
		applyColorScale(&op.ColorScale, n.Color, alpha)
		dst.DrawImage(img, op)

	case NodeTypeImage:
		if n.Image == nil {
			return
		}
		b := n.Image.Bounds()
		op := &ebiten.DrawImageOptions{}
		if (n.Width != 0 || n.Height != 0) && b.Dx() > 0 && b.Dy() > 0 {
			op.GeoM.Scale(n.Width/float64(b.Dx()), n.Height/float64(b.Dy()))
		}
		op.GeoM.Concat(geo)
		op.Filter = ebiten.FilterLinear
		applyColorScale(&op.ColorScale, n.Color, alpha)
		dst.DrawImage(n.Image, op)

	case NodeTypeText:
		drawText(dst, n, geo, alpha)
	}
}

// circleImage returns a cached white disc for radius r and the transparent
// padding around it.
func (s *Scene) circleImage(r float64) (*ebiten.Image, float64) {
	const pad = 1.0
	key := int(math.Ceil(r * 4)) // quarter-pixel buckets
	if img, ok := s.circles[key]; ok {
		return img, pad
	}
	size := int(math.Ceil(2*r + 2*pad))
	img := ebiten.NewImage(size, size)
	c := float32(r + pad)
	vector.DrawFilledCircle(img, c, c, float32(r), color.White, true)
	if s.circles == nil {
		s.circles = make(map[int]*ebiten.Image)
	}
	s.circles[key] = img
	return img, pad
}

// CenterPivot moves the pivot to the center of the node's visual so position,
// scale and rotation act around the middle.
func (n *Node) CenterPivot() {
	if n.Type == NodeTypeCircle || n.Type == NodeTypeText {
		n.SetPivot(0, 0)
		return
	}
	w, h := n.Size()
	n.SetPivot(w/2, h/2)
}
