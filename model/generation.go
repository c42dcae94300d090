package model

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/gol-engine/rules"
)

// Generation is a raw board of cell values indexed [row][column].
// Any non-zero value is alive; rows may differ in length.
type Generation [][]int

// NewGame returns a size x size generation of dead cells.
// A non-positive size yields an empty generation.
func NewGame(size int) Generation {
	if size <= 0 {
		return Generation{}
	}
	board := make(Generation, size)
	for i := range board {
		board[i] = make([]int, size)
	}
	return board
}

// GetCellAt returns board[x][y], or 0 when the coordinate falls outside the board
// or the indexed row is missing or too short.
func GetCellAt(board Generation, x, y int) int {
	if len(board) == 0 || x < 0 || y < 0 || x >= len(board) {
		return 0
	}
	row := board[x]
	if y >= len(row) {
		return 0
	}
	return row[y]
}

// neighborhoodAt builds the 3x3 window centered on (x, y), treating
// everything beyond the board as dead.
func neighborhoodAt(board Generation, x, y int) (n rules.Neighborhood) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			n[dr+1][dc+1] = GetCellAt(board, x+dr, y+dc) != 0
		}
	}
	return
}

// allocNext allocates an output generation with the same shape as board.
func allocNext(board Generation) Generation {
	next := make(Generation, len(board))
	for x, row := range board {
		next[x] = make([]int, len(row))
	}
	return next
}

func tickRows(board, next Generation, startRow, endRow int) {
	for x := startRow; x < endRow; x++ {
		for y := range board[x] {
			next[x][y] = rules.NextState(neighborhoodAt(board, x, y))
		}
	}
}

// Tick returns the next generation of board. The result has the same number
// of rows as board and each row keeps its own length. board is not modified.
func Tick(board Generation) Generation {
	if len(board) == 0 {
		return Generation{}
	}
	next := allocNext(board)
	tickRows(board, next, 0, len(board))
	return next
}

// TickParallel computes the same result as Tick, splitting rows into bands
// processed concurrently. workers <= 0 uses one worker per CPU.
func TickParallel(ctx context.Context, board Generation, workers int) (Generation, error) {
	if len(board) == 0 {
		return Generation{}, nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var (
		next          = allocNext(board)
		eg, egCtx     = errgroup.WithContext(ctx)
		height        = len(board)
		rowsPerWorker = (height + workers - 1) / workers // Ceiling division
	)

	for i := range workers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, height)
		)
		if startRow >= height {
			break
		}

		eg.Go(func() error {
			for x := startRow; x < endRow; x++ {
				if err := egCtx.Err(); err != nil {
					return err
				}
				tickRows(board, next, x, x+1)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, errors.Wrapf(err, "[TickParallel] failed to compute %d rows", height)
	}
	return next, nil
}
