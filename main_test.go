package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/gol-engine/model"
	"github.com/sheikhrachel/gol-engine/utils"
)

func testConfig(pattern string, size, generations int) utils.Config {
	config := utils.DefaultConfig()
	config.Pattern = pattern
	config.Size = size
	config.Generations = generations
	return config
}

func simulateConfig(t *testing.T, ctx context.Context, config utils.Config) runResult {
	t.Helper()
	grid, pool, stats, err := initializeGame(config)
	require.NoError(t, err)
	return simulate(ctx, config, grid, pool, stats)
}

func TestSimulate_StopConditions(t *testing.T) {
	ctx := context.Background()

	t.Run("still life stagnates", func(t *testing.T) {
		result := simulateConfig(t, ctx, testConfig("block", 6, 50))
		assert.Equal(t, stopStagnation, result.Reason)
		assert.Equal(t, 1, result.Generation)
		assert.Equal(t, 4, result.Living)
	})

	t.Run("oscillator stagnates after its period", func(t *testing.T) {
		config := testConfig("blinker", 5, 50)
		config.UseBoundedGrid = false
		result := simulateConfig(t, ctx, config)
		assert.Equal(t, stopStagnation, result.Reason)
		assert.Equal(t, 2, result.Generation)
	})

	t.Run("stagnation ignored when disabled", func(t *testing.T) {
		config := testConfig("blinker", 5, 7)
		config.StopOnStagnation = false
		config.UseMemoryPool = false
		result := simulateConfig(t, ctx, config)
		assert.Equal(t, stopLimit, result.Reason)
		assert.Equal(t, 7, result.Generation)
		assert.Equal(t, model.Generation{
			{0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0},
			{0, 1, 1, 1, 0},
			{0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0},
		}, result.Final)
	})

	t.Run("glider travels until the limit", func(t *testing.T) {
		result := simulateConfig(t, ctx, testConfig("glider", 32, 8))
		assert.Equal(t, stopLimit, result.Reason)
		assert.Equal(t, 8, result.Generation)
		assert.Equal(t, 5, result.Living)
	})

	t.Run("empty random board goes extinct", func(t *testing.T) {
		config := testConfig("random", 10, 5)
		config.RandomDensity = 0
		result := simulateConfig(t, ctx, config)
		assert.Equal(t, stopExtinction, result.Reason)
		assert.Zero(t, result.Generation)
	})

	t.Run("zero generations", func(t *testing.T) {
		result := simulateConfig(t, ctx, testConfig("glider", 8, 0))
		assert.Equal(t, stopLimit, result.Reason)
		assert.Zero(t, result.Generation)
	})

	t.Run("cancelled", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		result := simulateConfig(t, cancelled, testConfig("glider", 8, 10))
		assert.Equal(t, stopInterrupted, result.Reason)
		assert.Zero(t, result.Generation)
	})
}

func TestCheckStopConditions(t *testing.T) {
	config := testConfig("glider", 8, 10)
	assert.Equal(t, stopExtinction, checkStopConditions(0, true, 3, config))
	assert.Equal(t, stopStagnation, checkStopConditions(4, true, 3, config))
	assert.Equal(t, stopLimit, checkStopConditions(4, false, 10, config))
	assert.Empty(t, checkStopConditions(4, false, 9, config))

	config.StopOnStagnation = false
	assert.Empty(t, checkStopConditions(4, true, 3, config))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()

	t.Run("config file", func(t *testing.T) {
		path := filepath.Join(dir, "config.json")
		body := `{"size": 16, "pattern": "toad", "generations": 20, "log_level": "debug"}`
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

		var stderr bytes.Buffer
		require.NoError(t, run(context.Background(), []string{"-config", path}, &stderr))
		assert.Contains(t, stderr.String(), "msg=\"simulation starting\" pattern=toad")
		assert.Contains(t, stderr.String(), "msg=generation gen=0")
		assert.Contains(t, stderr.String(), "reason=\"stagnation detected\"")
	})

	t.Run("missing config uses defaults", func(t *testing.T) {
		var stderr bytes.Buffer
		require.NoError(t, run(context.Background(), []string{"-config", filepath.Join(dir, "absent.json")}, &stderr))
		assert.Contains(t, stderr.String(), "using default configuration")
		assert.Contains(t, stderr.String(), "msg=\"simulation finished\"")
	})

	t.Run("invalid config", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"pattern": "pulsar"}`), 0o600))

		err := run(context.Background(), []string{"-config", path}, &bytes.Buffer{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, utils.ErrInvalidConfig))
	})

	t.Run("bad flag", func(t *testing.T) {
		require.Error(t, run(context.Background(), []string{"-nope"}, &bytes.Buffer{}))
	})
}
