package rules

import "github.com/pkg/errors"

const (
	Dead  = 0
	Alive = 1
)

// ErrMalformedBoard is returned when a raw neighborhood is not at least 3x3.
var ErrMalformedBoard = errors.New("malformed board")

// Neighborhood is a 3x3 window of cells with the subject cell at [1][1].
type Neighborhood [3][3]bool

// LivingNeighbors counts the living cells around the center, excluding it.
func (n Neighborhood) LivingNeighbors() (count int) {
	for r := range 3 {
		for c := range 3 {
			if r == 1 && c == 1 {
				continue
			}
			if n[r][c] {
				count++
			}
		}
	}
	return
}

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

Conway's Game of Life rules: (alive && neighbors == 2) || neighbors == 3
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	return (alive && neighbors == 2) || neighbors == 3
}

// NextState returns Alive or Dead for the center cell of n.
func NextState(n Neighborhood) int {
	if ApplyConwayRules(n.LivingNeighbors(), n[1][1]) {
		return Alive
	}
	return Dead
}

// NeighborhoodFromRows converts a raw grid into a Neighborhood using its top-left
// 3x3 corner. Any non-zero value is alive.
func NeighborhoodFromRows(rows [][]int) (Neighborhood, error) {
	var n Neighborhood
	if rows == nil {
		return n, errors.Wrap(ErrMalformedBoard, "[NeighborhoodFromRows] board is nil")
	}
	if len(rows) < 3 {
		return n, errors.Wrapf(ErrMalformedBoard, "[NeighborhoodFromRows] not 3x3: %d rows", len(rows))
	}
	for r := range 3 {
		if len(rows[r]) < 3 {
			return n, errors.Wrapf(ErrMalformedBoard,
				"[NeighborhoodFromRows] not 3x3: row %d has %d columns", r, len(rows[r]))
		}
		for c := range 3 {
			n[r][c] = rows[r][c] != 0
		}
	}
	return n, nil
}

// NextStateOf is NextState for an unvalidated grid.
func NextStateOf(rows [][]int) (int, error) {
	n, err := NeighborhoodFromRows(rows)
	if err != nil {
		return Dead, err
	}
	return NextState(n), nil
}
