package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/meal-planner/internal/config"
	"github.com/iliyamo/meal-planner/internal/database/dbtest"
)

func TestRemaining(t *testing.T) {
	assert.Zero(t, remaining(time.Now().Add(-time.Second)))
	assert.Zero(t, remaining(time.Time{}))

	left := remaining(time.Now().Add(time.Minute))
	assert.Greater(t, left, 59*time.Second)
	assert.LessOrEqual(t, left, time.Minute)
}

func TestRunServeStopsWithinGrace(t *testing.T) {
	saved := cfg
	t.Cleanup(func() { cfg = saved })
	cfg = config.Config{
		Env:           "test",
		Port:          "0",
		ShutdownGrace: 2 * time.Second,
		DB:            dbtest.Config(t, 2),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServe(ctx) }()

	time.Sleep(200 * time.Millisecond)
	start := time.Now()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
		assert.Less(t, time.Since(start), cfg.ShutdownGrace)
	case <-time.After(2 * cfg.ShutdownGrace):
		t.Fatal("runServe did not return after cancel")
	}
}
