package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardRestoresTerminal(t *testing.T) {
	var out bytes.Buffer
	code := -1
	crashOut = &out
	crashExit = func(c int) { code = c }
	defer func() {
		crashOut = os.Stderr
		crashExit = os.Exit
		setCrashScreen(nil)
	}()

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	setCrashScreen(screen)

	err := guard(func() error { panic("poller exploded") })()
	assert.NoError(t, err)
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "ARGON-HUD CRASHED: poller exploded")
	assert.Contains(t, out.String(), "Stack Trace:")
}

func TestHandleCrashNil(t *testing.T) {
	called := false
	crashExit = func(int) { called = true }
	defer func() { crashExit = os.Exit }()

	handleCrash(nil)
	assert.False(t, called)
}
