package core

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"
)

func TestGoRecoversAndRunsResetHook(t *testing.T) {
	var buf bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(1)

	var resetCalled bool
	var exitCode int

	crashOut = &buf
	exit = func(code int) {
		exitCode = code
		wg.Done()
	}
	SetResetHook(func() { resetCalled = true })
	defer func() {
		crashOut = os.Stderr
		exit = os.Exit
		SetResetHook(nil)
	}()

	Go(func() { panic("engine stalled") })
	wg.Wait()

	if !resetCalled {
		t.Error("Expected reset hook to run before crash report")
	}
	if exitCode != 1 {
		t.Errorf("Expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "engine stalled") {
		t.Errorf("Crash report missing panic value: %q", buf.String())
	}
}

func TestHandleCrashNil(t *testing.T) {
	called := false
	exit = func(int) { called = true }
	defer func() { exit = os.Exit }()

	HandleCrash(nil)
	if called {
		t.Error("HandleCrash(nil) must not exit")
	}
}
