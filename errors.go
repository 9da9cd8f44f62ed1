package cupcake

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCell is returned when a cell id is not part of the grid.
	ErrUnknownCell = errors.New("cupcake: unknown cell")
	// ErrDuplicateCell is returned by NewGrid when two cells share an id.
	ErrDuplicateCell = errors.New("cupcake: duplicate cell id")
	// ErrPieceCount is returned by NewSession when the number of piece
	// origins does not match the number of cells.
	ErrPieceCount = errors.New("cupcake: piece count does not match cell count")
)

// AlreadyFilledError reports an attempt to fill a cell that is already filled.
type AlreadyFilledError struct {
	CellID int
}

func (e *AlreadyFilledError) Error() string {
	return fmt.Sprintf("cupcake: cell %d already filled", e.CellID)
}
