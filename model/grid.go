package model

import (
	"crypto/md5"
	"fmt"
	"math/rand"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/gol-engine/rules"
	"github.com/sheikhrachel/gol-engine/utils"
)

// historySize is how many recent grid hashes are kept for cycle detection.
const historySize = 5

// ErrRaggedBoard is returned when a generation's rows differ in length.
var ErrRaggedBoard = errors.New("ragged board")

// Grid is a rectangular board with boolean cells indexed [row][column]
type Grid struct {
	width   int
	height  int
	cells   [][]bool
	history []string // Store recent grid states for cycle detection

	// Optional bounded grid optimization
	activeBounds struct {
		minRow, maxRow, minCol, maxCol int
		valid                          bool
	}
}

// NewGrid creates a new grid with the specified dimensions
func NewGrid(width, height int) *Grid {
	cells := make([][]bool, height)
	for i := range cells {
		cells[i] = make([]bool, width)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}
}

// FromGeneration converts a raw generation into a Grid. Non-zero cells are alive.
func FromGeneration(gen Generation) (*Grid, error) {
	if len(gen) == 0 {
		return NewGrid(0, 0), nil
	}

	width := len(gen[0])
	g := NewGrid(width, len(gen))
	for row, cells := range gen {
		if len(cells) != width {
			return nil, errors.Wrapf(ErrRaggedBoard,
				"[FromGeneration] row %d has %d columns, expected %d", row, len(cells), width)
		}
		for col, v := range cells {
			g.cells[row][col] = v != 0
		}
	}
	return g, nil
}

// Generation exports the grid as 0/1 values
func (g *Grid) Generation() Generation {
	gen := make(Generation, g.height)
	for row := range g.height {
		gen[row] = make([]int, g.width)
		for col := range g.width {
			if g.cells[row][col] {
				gen[row][col] = rules.Alive
			}
		}
	}
	return gen
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// Reset resets the grid to new dimensions
func (g *Grid) Reset(width, height int) {
	g.width = width
	g.height = height
	g.history = nil
	g.activeBounds.valid = false

	// Resize cells if needed
	if len(g.cells) != height {
		g.cells = make([][]bool, height)
	}
	for i := range g.cells {
		if len(g.cells[i]) != width {
			g.cells[i] = make([]bool, width)
		} else {
			clear(g.cells[i])
		}
	}
}

// Clear clears all cells
func (g *Grid) Clear() {
	for row := range g.height {
		clear(g.cells[row])
	}
	g.history = nil
	g.activeBounds.valid = false
}

// Set sets a cell to alive (true) or dead (false). Out-of-range writes are ignored.
func (g *Grid) Set(row, col int, alive bool) {
	if row >= 0 && row < g.height && col >= 0 && col < g.width {
		g.cells[row][col] = alive
		g.activeBounds.valid = false
	}
}

// Get returns the state of a cell; anything off the grid is dead
func (g *Grid) Get(row, col int) bool {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return false
	}
	return g.cells[row][col]
}

// Neighborhood returns the 3x3 window centered on (row, col)
func (g *Grid) Neighborhood(row, col int) (n rules.Neighborhood) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			n[dr+1][dc+1] = g.Get(row+dr, col+dc)
		}
	}
	return
}

// nextCell reports whether (row, col) is alive in the next generation
func (g *Grid) nextCell(row, col int) bool {
	return rules.NextState(g.Neighborhood(row, col)) == rules.Alive
}

// calculateActiveBounds calculates the bounding box of living cells
func (g *Grid) calculateActiveBounds() {
	g.activeBounds.valid = false

	for row := range g.height {
		for col := range g.width {
			if !g.cells[row][col] {
				continue
			}
			if !g.activeBounds.valid {
				g.activeBounds.minRow, g.activeBounds.maxRow = row, row
				g.activeBounds.minCol, g.activeBounds.maxCol = col, col
				g.activeBounds.valid = true
				continue
			}
			g.activeBounds.minRow = min(g.activeBounds.minRow, row)
			g.activeBounds.maxRow = max(g.activeBounds.maxRow, row)
			g.activeBounds.minCol = min(g.activeBounds.minCol, col)
			g.activeBounds.maxCol = max(g.activeBounds.maxCol, col)
		}
	}
}

// GetBoundingBoxSize returns the size of the active region
func (g *Grid) GetBoundingBoxSize() int {
	if !g.activeBounds.valid {
		g.calculateActiveBounds()
	}
	if !g.activeBounds.valid {
		return 0
	}
	return (g.activeBounds.maxRow - g.activeBounds.minRow + 1) *
		(g.activeBounds.maxCol - g.activeBounds.minCol + 1)
}

func (g *Grid) allocNext(pool *GridPool) *Grid {
	if pool != nil {
		return pool.Get(g.width, g.height)
	}
	return NewGrid(g.width, g.height)
}

// NextGenerationParallel calculates the next generation using parallel processing.
// workers <= 0 uses one worker per CPU.
func (g *Grid) NextGenerationParallel(workers int, pool *GridPool) *Grid {
	next := g.allocNext(pool)
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var (
		eg            errgroup.Group
		rowsPerWorker = (g.height + workers - 1) / workers // Ceiling division
	)

	for i := range workers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.height)
		)
		if startRow >= g.height {
			break
		}

		eg.Go(func() error {
			for row := startRow; row < endRow; row++ {
				for col := range g.width {
					next.cells[row][col] = g.nextCell(row, col)
				}
			}
			return nil
		})
	}

	// bands never fail
	_ = eg.Wait()

	return next
}

// NextGenerationBounded calculates next generation only in active region
func (g *Grid) NextGenerationBounded(pool *GridPool) *Grid {
	if !g.activeBounds.valid {
		g.calculateActiveBounds()
	}

	next := g.allocNext(pool)

	// If no active cells, return empty grid
	if !g.activeBounds.valid {
		return next
	}

	// Process only the active region + 1 margin
	minRow := max(0, g.activeBounds.minRow-1)
	maxRow := min(g.height-1, g.activeBounds.maxRow+1)
	minCol := max(0, g.activeBounds.minCol-1)
	maxCol := min(g.width-1, g.activeBounds.maxCol+1)

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			next.cells[row][col] = g.nextCell(row, col)
		}
	}

	next.calculateActiveBounds()
	return next
}

// NextGeneration calculates the next generation based on configuration
func (g *Grid) NextGeneration(config utils.Config, pool *GridPool) *Grid {
	if config.UseBoundedGrid {
		return g.NextGenerationBounded(pool)
	}
	if config.UseParallel {
		return g.NextGenerationParallel(config.Workers, pool)
	}
	return g.NextGenerationParallel(1, pool)
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for row := range g.height {
		for col := range g.width {
			if g.cells[row][col] {
				count++
			}
		}
	}
	return
}

// GetGridHash returns an MD5 hash of the grid dimensions and cell states
func (g *Grid) GetGridHash() string {
	h := md5.New()
	fmt.Fprintf(h, "%dx%d:", g.width, g.height)
	for row := range g.height {
		for col := range g.width {
			if g.cells[row][col] {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// UpdateHistory adds current state to history and maintains size
func (g *Grid) UpdateHistory() {
	g.history = append(g.history, g.GetGridHash())

	if len(g.history) > historySize {
		g.history = g.history[1:]
	}
}

// InheritHistory copies the recorded history of prev onto g
func (g *Grid) InheritHistory(prev *Grid) {
	g.history = append([]string(nil), prev.history...)
}

// IsStagnant reports whether the current state matches one of the last three
// recorded states, i.e. the grid is static or cycling with period <= 3.
// Call it before UpdateHistory records the current state.
func (g *Grid) IsStagnant() bool {
	currentHash := g.GetGridHash()

	for i := 1; i <= 3 && i <= len(g.history); i++ {
		if g.history[len(g.history)-i] == currentHash {
			return true
		}
	}
	return false
}

// Randomize fills the grid with random living cells
func (g *Grid) Randomize(rng *rand.Rand, density float64) {
	for row := range g.height {
		for col := range g.width {
			g.cells[row][col] = rng.Float64() < density
		}
	}
	g.activeBounds.valid = false
}
