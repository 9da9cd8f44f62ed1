package cupcake

import "math"

// DefaultTolerance is the half-size of the per-axis acceptance box around a
// cell, in grid-local units.
const DefaultTolerance = 50.0

// RejectReason explains why a drop was not accepted.
type RejectReason uint8

const (
	RejectNone                 RejectReason = iota // the verdict is an accept
	RejectOccupied                                 // the piece's cell is already filled
	RejectOutOfRange                               // outside the tolerance box
	RejectTransformUnavailable                     // the drop point could not be mapped into grid space
	RejectUnknownCell                              // no cell shares the piece's id
)

func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "none"
	case RejectOccupied:
		return "occupied"
	case RejectOutOfRange:
		return "out_of_range"
	case RejectTransformUnavailable:
		return "transform_unavailable"
	case RejectUnknownCell:
		return "unknown_cell"
	default:
		return "unknown"
	}
}

// Verdict is the outcome of evaluating a drop.
type Verdict struct {
	Accepted bool
	CellID   int // valid when Accepted
	Reason   RejectReason
}

func accept(cellID int) Verdict { return Verdict{Accepted: true, CellID: cellID} }
func reject(r RejectReason) Verdict { return Verdict{Reason: r} }

// CoordinateTransform maps between world space and the grid's local space.
// Either direction may be unavailable, for example before the grid is
// attached to a scene.
type CoordinateTransform interface {
	ToLocal(world Point) (Point, bool)
	ToWorld(local Point) (Point, bool)
}

// Placement judges drops. It holds no mutable state.
type Placement struct {
	// Tolerance is the half-size of the acceptance box on each axis.
	Tolerance float64
}

// Evaluate judges a drop at dropLocal (grid-local space) for piece using the
// default tolerance.
func Evaluate(piece *Piece, grid *Grid, dropLocal Point) Verdict {
	return Placement{Tolerance: DefaultTolerance}.Evaluate(piece, grid, dropLocal)
}

// Evaluate judges a drop at dropLocal (grid-local space). Only the cell that
// shares the piece's id is ever considered.
func (pl Placement) Evaluate(piece *Piece, grid *Grid, dropLocal Point) Verdict {
	target, ok := grid.CellFor(piece.ID)
	if !ok {
		return reject(RejectUnknownCell)
	}
	if target.Filled {
		return reject(RejectOccupied)
	}
	dx := math.Abs(dropLocal.X - target.X)
	dy := math.Abs(dropLocal.Y - target.Y)
	if dx <= pl.Tolerance && dy <= pl.Tolerance {
		return accept(target.ID)
	}
	return reject(RejectOutOfRange)
}

// EvaluateGlobal converts a world-space drop point into grid space through xf
// and evaluates it. A nil transform or a failed conversion rejects with
// RejectTransformUnavailable.
func (pl Placement) EvaluateGlobal(piece *Piece, grid *Grid, xf CoordinateTransform, dropWorld Point) Verdict {
	if xf == nil {
		return reject(RejectTransformUnavailable)
	}
	local, ok := xf.ToLocal(dropWorld)
	if !ok || math.IsNaN(local.X) || math.IsNaN(local.Y) {
		return reject(RejectTransformUnavailable)
	}
	return pl.Evaluate(piece, grid, local)
}
