// Package launcher spawns the chosen application detached from this
// process, so the short-lived resolver exiting never kills the app.
package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// DebugMode enables debug logging
var DebugMode = false

func debugLog(format string, args ...interface{}) {
	if DebugMode {
		fmt.Fprintf(os.Stderr, "[LAUNCH] "+format+"\n", args...)
	}
}

// ErrEmptyCommand is returned when there is no argv to spawn.
var ErrEmptyCommand = errors.New("empty command")

// Spawn starts argv in its own session with stdio detached. It returns as
// soon as the process has started; the child keeps running after we exit.
func Spawn(argv []string, workdir string) error {
	if len(argv) == 0 {
		return ErrEmptyCommand
	}

	debugLog("spawning: %v", argv)
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = workdir
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", argv[0], err)
	}
	// Reap the child if it exits before us; after we exit init adopts it.
	go cmd.Wait()
	return nil
}

// Run starts argv attached to our terminal and waits for it to finish.
// Used for terminal applications launched in the foreground.
func Run(argv []string, workdir string) error {
	if len(argv) == 0 {
		return ErrEmptyCommand
	}

	debugLog("running: %v", argv)
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = workdir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", argv[0], err)
	}
	return nil
}
