package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertof/go-beacon-radar/platform"
)

func TestInitRestarter_ExecReleasesPanel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	closed := 0
	cfg := config{Restart: restartModeExec}

	r := initRestarter(cfg, ctx, func() {}, func() { closed += 1 })

	exec, ok := r.(platform.Exec)
	require.True(t, ok, "got %T, wanted platform.Exec", r)
	require.NotNil(t, exec.Release)

	exec.Release()
	assert.Equal(t, 1, closed)
}

func TestInitRestarter_WarmKeepsPanel(t *testing.T) {
	closed := 0
	cfg := config{Restart: restartModeWarm}

	r := initRestarter(cfg, context.Background(), func() {}, func() { closed += 1 })

	_, ok := r.(platform.InProcess)
	require.True(t, ok, "got %T, wanted platform.InProcess", r)

	r.RestartWarm()
	assert.Zero(t, closed)
}

func TestInitPanel_LogCloseIsIdempotent(t *testing.T) {
	panel, closePanel := initPanel(config{Display: displayBackendLog}, nil)

	require.NotNil(t, panel)
	closePanel()
	closePanel()
}
