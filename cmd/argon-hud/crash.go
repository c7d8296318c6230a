package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/gdamore/tcell/v2"
)

var (
	crashMu     sync.Mutex
	crashScreen tcell.Screen
	crashOut    io.Writer = os.Stderr
	crashExit             = os.Exit
)

// setCrashScreen registers the screen restored before a crash report is printed
func setCrashScreen(s tcell.Screen) {
	crashMu.Lock()
	crashScreen = s
	crashMu.Unlock()
}

// handleCrash restores the terminal, prints r with its stack trace and exits
func handleCrash(r any) {
	if r == nil {
		return
	}
	crashMu.Lock()
	s := crashScreen
	crashMu.Unlock()
	if s != nil {
		s.Fini()
	}

	fmt.Fprintf(crashOut, "\n\x1b[31mARGON-HUD CRASHED: %v\x1b[0m\n", r)
	fmt.Fprintf(crashOut, "Stack Trace:\n%s\n", debug.Stack())
	crashExit(1)
}

// guard wraps a goroutine body so a panic still restores the terminal
func guard(fn func() error) func() error {
	return func() error {
		defer func() {
			if r := recover(); r != nil {
				handleCrash(r)
			}
		}()
		return fn()
	}
}
