package main

import (
	"context"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-engine/model"
	"github.com/sheikhrachel/gol-engine/patterns"
	"github.com/sheikhrachel/gol-engine/utils"
)

const (
	stopExtinction  = "extinction"
	stopStagnation  = "stagnation detected"
	stopLimit       = "generation limit"
	stopInterrupted = "interrupted"
)

// runResult describes how a simulation ended
type runResult struct {
	Generation int
	Living     int
	Reason     string
	Final      model.Generation
}

// initializeGame sets up the initial game state
func initializeGame(config utils.Config) (*model.Grid, *model.GridPool, *utils.Stats, error) {
	var pool *model.GridPool
	if config.UseMemoryPool {
		pool = model.NewGridPool()
	}

	rng := rand.New(rand.NewSource(config.Seed))
	grid, err := patterns.Seed(config.Pattern, config.Size, rng, config.RandomDensity)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "[initializeGame] failed to seed grid")
	}

	return grid, pool, utils.NewStats(), nil
}

// checkStopConditions returns a non-empty reason when the simulation should end
func checkStopConditions(livingCells int, stagnant bool, generation int, config utils.Config) string {
	if livingCells == 0 {
		return stopExtinction
	}
	if stagnant && config.StopOnStagnation {
		return stopStagnation
	}
	if generation >= config.Generations {
		return stopLimit
	}
	return ""
}

// simulate advances grid until a stop condition is met or ctx is cancelled
func simulate(
	ctx context.Context,
	config utils.Config,
	grid *model.Grid,
	pool *model.GridPool,
	stats *utils.Stats,
) runResult {
	logger := utils.LoggerFrom(ctx)

	var result runResult
	for generation := 0; ; generation++ {
		livingCells := grid.CountLivingCells()
		result = runResult{Generation: generation, Living: livingCells}

		if ctx.Err() != nil {
			result.Reason = stopInterrupted
			break
		}

		// Compare against history before recording the current state
		stagnant := grid.IsStagnant()
		grid.UpdateHistory()

		logger.Debug("generation",
			"gen", generation,
			"living", livingCells,
			"bounding_box", grid.GetBoundingBoxSize(),
			"stagnant", stagnant,
		)

		if result.Reason = checkStopConditions(livingCells, stagnant, generation, config); result.Reason != "" {
			break
		}

		tickStart := time.Now()
		next := grid.NextGeneration(config, pool)
		next.InheritHistory(grid)

		// Return old grid to pool if using memory pooling
		model.GridToPool(grid, pool)
		grid = next

		stats.Update(generation+1, grid.CountLivingCells(), grid.GetBoundingBoxSize(), time.Since(tickStart))
	}

	result.Final = grid.Generation()
	model.GridToPool(grid, pool)
	return result
}

// logSummary reports the final state of a run
func logSummary(ctx context.Context, result runResult, stats *utils.Stats) {
	utils.LoggerFrom(ctx).Info("simulation finished",
		"reason", result.Reason,
		"generations", result.Generation,
		"living", result.Living,
		"avg_population", stats.AveragePopulation,
		"gen_per_sec", stats.GenerationsPerSecond,
		"runtime", stats.Runtime().Round(time.Millisecond),
	)
}
