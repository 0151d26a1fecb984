package main

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	return screen
}

func TestPollKeysForwardsAndQuits(t *testing.T) {
	screen := newSimScreen(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	inputs := make(chan tetris.Input, 1)
	done := make(chan struct{})
	go func() {
		pollKeys(ctx, screen, inputs, cancel)
		close(done)
	}()

	screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	select {
	case in := <-inputs:
		assert.Equal(t, tetris.HardDrop, in)
	case <-time.After(time.Second):
		t.Fatal("key was not forwarded")
	}

	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("escape did not stop polling")
	}
	assert.Error(t, ctx.Err(), "quitting cancels the run context")
}

func TestPollKeysStopsWhenNobodyReads(t *testing.T) {
	screen := newSimScreen(t)
	ctx, cancel := context.WithCancel(context.Background())

	inputs := make(chan tetris.Input)
	done := make(chan struct{})
	go func() {
		pollKeys(ctx, screen, inputs, cancel)
		close(done)
	}()

	cancel()
	screen.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pollKeys blocked on a send after the runner stopped")
	}
}

func TestExecuteLogsErrors(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Default()
	log.SetDefault(log.New(&buf))
	t.Cleanup(func() { log.SetDefault(prev) })

	rootCmd.SetArgs([]string{"--rows=0"})
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	assert.Equal(t, 1, execute())
	assert.Contains(t, buf.String(), "blockfall-term exited")
	assert.Contains(t, buf.String(), "invalid")
}
