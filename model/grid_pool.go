package model

import "sync"

// GridToPool returns a grid to the pool for reuse. A nil pool is a no-op.
func GridToPool(grid *Grid, pool *GridPool) {
	if pool == nil || grid == nil {
		return
	}

	pool.Put(grid)
}

// GridPool recycles grids between generations
type GridPool struct {
	pool sync.Pool
}

func NewGridPool() *GridPool {
	return &GridPool{
		pool: sync.Pool{
			New: func() any {
				return &Grid{}
			},
		},
	}
}

// Get retrieves a dead grid from the pool sized to width x height
func (p *GridPool) Get(width, height int) *Grid {
	g := p.pool.Get().(*Grid)
	g.Reset(width, height)
	return g
}

// Put clears g and returns it to the pool
func (p *GridPool) Put(g *Grid) {
	g.Clear()
	p.pool.Put(g)
}
