package app

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// Relaunch starts a new copy of the running executable with the same
// arguments. It does not wait for it.
func Relaunch() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", exe, err)
	}
	slog.Info("relaunched", "pid", cmd.Process.Pid)
	return cmd.Process.Release()
}
