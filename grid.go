package cupcake

import "fmt"

// Point is a 2D position. Whether it is in world or grid-local space depends
// on where it came from; the names of fields and parameters say which.
type Point struct {
	X, Y float64
}

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// lerpPoint interpolates between a and b by k in [0, 1].
func lerpPoint(a, b Point, k float64) Point {
	return Point{a.X + (b.X-a.X)*k, a.Y + (b.Y-a.Y)*k}
}

// Cell is one target slot on the puzzle shape. X and Y are relative to the
// grid's local origin.
type Cell struct {
	ID     int
	X, Y   float64
	Filled bool
}

// Pos returns the cell's grid-local position.
func (c Cell) Pos() Point { return Point{c.X, c.Y} }

// DefaultCells returns the six cupcake cells in id order.
func DefaultCells() []Cell {
	return []Cell{
		{ID: 1, X: -20, Y: -192},
		{ID: 2, X: 50, Y: -47},
		{ID: 3, X: 106, Y: -108},
		{ID: 4, X: -85, Y: -46},
		{ID: 5, X: -84, Y: 138},
		{ID: 6, X: 82, Y: 137},
	}
}

// Grid owns the fixed set of target cells and their fill state.
type Grid struct {
	cells []Cell
}

// NewGrid creates a grid from the given cells. The slice is copied and every
// cell starts unfilled.
func NewGrid(cells []Cell) (*Grid, error) {
	g := &Grid{cells: make([]Cell, len(cells))}
	seen := make(map[int]bool, len(cells))
	for i, c := range cells {
		if seen[c.ID] {
			return nil, fmt.Errorf("new grid: cell %d: %w", c.ID, ErrDuplicateCell)
		}
		seen[c.ID] = true
		c.Filled = false
		g.cells[i] = c
	}
	return g, nil
}

func (g *Grid) clone() *Grid {
	c := &Grid{cells: make([]Cell, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

func (g *Grid) index(id int) int {
	for i := range g.cells {
		if g.cells[i].ID == id {
			return i
		}
	}
	return -1
}

// CellFor returns the one cell whose id equals pieceID. The mapping is fixed;
// there is no nearest-cell search.
func (g *Grid) CellFor(pieceID int) (Cell, bool) {
	i := g.index(pieceID)
	if i < 0 {
		return Cell{}, false
	}
	return g.cells[i], true
}

// MarkFilled fills the cell with the given id. Filling an already filled
// cell returns an *AlreadyFilledError and leaves the grid unchanged.
func (g *Grid) MarkFilled(cellID int) error {
	i := g.index(cellID)
	if i < 0 {
		return fmt.Errorf("mark filled %d: %w", cellID, ErrUnknownCell)
	}
	if g.cells[i].Filled {
		return &AlreadyFilledError{CellID: cellID}
	}
	g.cells[i].Filled = true
	return nil
}

// ClearAll marks every cell unfilled.
func (g *Grid) ClearAll() {
	for i := range g.cells {
		g.cells[i].Filled = false
	}
}

// IsComplete reports whether every cell is filled. An empty grid is never
// complete.
func (g *Grid) IsComplete() bool {
	if len(g.cells) == 0 {
		return false
	}
	return g.FilledCount() == len(g.cells)
}

// FilledCount returns the number of filled cells.
func (g *Grid) FilledCount() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].Filled {
			n++
		}
	}
	return n
}

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// Cells returns a copy of the cells in construction order.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}
