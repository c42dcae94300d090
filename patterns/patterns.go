// Package patterns holds well-known Game of Life seeds.
package patterns

import (
	"math/rand"
	"slices"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-engine/model"
)

// Random is the pattern name that seeds a grid with random cells instead of a fixed shape.
const Random = "random"

// ErrUnknownPattern is returned by Lookup for names not in the catalog.
var ErrUnknownPattern = errors.New("unknown pattern")

var catalog = map[string]model.Generation{
	// still lifes
	"block": {
		{1, 1},
		{1, 1},
	},
	"beehive": {
		{0, 1, 1, 0},
		{1, 0, 0, 1},
		{0, 1, 1, 0},
	},
	"loaf": {
		{0, 1, 1, 0},
		{1, 0, 0, 1},
		{0, 1, 0, 1},
		{0, 0, 1, 0},
	},
	"boat": {
		{1, 1, 0},
		{1, 0, 1},
		{0, 1, 0},
	},

	// period 2 oscillators
	"blinker": {
		{0, 1, 0},
		{0, 1, 0},
		{0, 1, 0},
	},
	"toad": {
		{0, 0, 0, 0},
		{0, 1, 1, 1},
		{1, 1, 1, 0},
		{0, 0, 0, 0},
	},
	"beacon": {
		{1, 1, 0, 0},
		{1, 1, 0, 0},
		{0, 0, 1, 1},
		{0, 0, 1, 1},
	},

	// spaceships
	"glider": {
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{1, 1, 1, 0},
		{0, 0, 0, 0},
	},
}

// Names returns the catalog's pattern names in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Known reports whether name can seed a grid, including Random.
func Known(name string) bool {
	if name == Random {
		return true
	}
	_, ok := catalog[name]
	return ok
}

// Lookup returns a copy of the named pattern.
func Lookup(name string) (model.Generation, error) {
	p, ok := catalog[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPattern, "[Lookup] %q", name)
	}
	out := make(model.Generation, len(p))
	for i, row := range p {
		out[i] = slices.Clone(row)
	}
	return out, nil
}

// Place stamps p onto g with its top-left corner at (row, col). Cells falling
// outside g are dropped.
func Place(g *model.Grid, p model.Generation, row, col int) {
	for r, cells := range p {
		for c, v := range cells {
			g.Set(row+r, col+c, v != 0)
		}
	}
}

// PlaceCentered stamps p in the middle of g.
func PlaceCentered(g *model.Grid, p model.Generation) {
	width := 0
	for _, cells := range p {
		width = max(width, len(cells))
	}
	Place(g, p, (g.GetHeight()-len(p))/2, (g.GetWidth()-width)/2)
}

// Seed builds a size x size grid seeded with the named pattern. Random fills the
// grid from rng at the given density.
func Seed(name string, size int, rng *rand.Rand, density float64) (*model.Grid, error) {
	g := model.NewGrid(size, size)
	if name == Random {
		g.Randomize(rng, density)
		return g, nil
	}

	p, err := Lookup(name)
	if err != nil {
		return nil, errors.Wrapf(err, "[Seed] failed to seed %dx%d grid", size, size)
	}
	PlaceCentered(g, p)
	return g, nil
}
