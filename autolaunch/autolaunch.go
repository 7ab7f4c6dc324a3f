// Package autolaunch registers the application as an OS login item.
package autolaunch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/emersion/go-autostart"
)

// hiddenFlag is appended to the login command so the window starts in the tray.
const hiddenFlag = "--hidden"

// Launcher manages the login item for the running executable.
type Launcher struct {
	app *autostart.App
}

// New creates a Launcher for the current executable.
func New(name, displayName string) (*Launcher, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolve executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return &Launcher{app: &autostart.App{
		Name:        name,
		DisplayName: displayName,
		Exec:        []string{exe, hiddenFlag},
	}}, nil
}

// Set enables or disables the login item. It is a no-op when the
// registration already matches.
func (l *Launcher) Set(enable bool) error {
	if l.app.IsEnabled() == enable {
		return nil
	}

	if enable {
		if err := l.app.Enable(); err != nil {
			return fmt.Errorf("enable login item: %w", err)
		}
		slog.Info("login item enabled", "exec", l.app.Exec)
		return nil
	}

	if err := l.app.Disable(); err != nil {
		return fmt.Errorf("disable login item: %w", err)
	}
	slog.Info("login item disabled")
	return nil
}

// Enabled reports whether the login item is registered.
func (l *Launcher) Enabled() bool {
	return l.app.IsEnabled()
}

// StartedHidden reports whether args contain the flag added to the login
// command.
func StartedHidden(args []string) bool {
	for _, a := range args {
		if a == hiddenFlag {
			return true
		}
	}
	return false
}
