package cycle_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertof/go-beacon-radar/cycle"
	"github.com/robertof/go-beacon-radar/radio"
)

func TestRunner_FreshStateEveryCycle(t *testing.T) {
	r := &fakeRadio{
		adverts: []advertisement{{radio.Identity{0x03}, -60, target()}},
	}
	p := &fakeRestarter{}
	runner := cycle.NewRunner(r, &fakeDisplay{radio: r}, p)

	_, ok := runner.Latest()
	require.False(t, ok)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var results []cycle.Result
	runner.OnResult = func(res cycle.Result) {
		results = append(results, res)
		if len(results) == 3 {
			cancel()
		}
	}

	err := runner.Start(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 3)
	assert.Equal(t, 3, runner.Cycles())
	assert.Equal(t, 3, p.restarts)
	assert.Equal(t, 3, r.enabled)

	// one detection per cycle: nothing carries over between cycles
	for _, res := range results {
		assert.Equal(t, 1, res.Count)
		assert.Equal(t, 1, res.Strong)
	}

	latest, ok := runner.Latest()
	require.True(t, ok)
	assert.Equal(t, 1, latest.Count)
}

func TestRunner_KeepsRestartingAfterFailures(t *testing.T) {
	r := &fakeRadio{enableErr: radio.ErrRadioInit}
	p := &fakeRestarter{}
	runner := cycle.NewRunner(r, &fakeDisplay{radio: r}, p)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner.OnResult = func(res cycle.Result) {
		assert.Equal(t, "init_failed", res.Label())
		if runner.Cycles() == 2 {
			cancel()
		}
	}

	require.ErrorIs(t, runner.Start(ctx), context.Canceled)
	assert.Equal(t, 2, p.restarts)
	assert.Zero(t, r.scansStarted)
}

func TestRunner_StartTwicePanics(t *testing.T) {
	r := &fakeRadio{}
	runner := cycle.NewRunner(r, &fakeDisplay{radio: r}, &fakeRestarter{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_ = runner.Start(ctx)
	assert.Panics(t, func() { _ = runner.Start(ctx) })
}
