// Package app wires the desktop shell together and adapts the Wails runtime
// to the controllers.
package app

import (
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/figochat/desktop/config"
	"github.com/figochat/desktop/internal/types"
)

// Settings is the config store as seen by the bridge.
type Settings interface {
	Get(key string) any
	Set(key string, value any) error
	Bool(key string) bool
}

// Window is the main window as seen by the bridge.
type Window interface {
	Show()
	Hide()
	Navigate(url string) bool
	OpenWindow(url string)
}

// Notifier posts native notifications.
type Notifier interface {
	Notify(id string, req types.NotificationRequest) error
}

// Badge sets the dock badge or taskbar overlay.
type Badge interface {
	SetBadge(label string) error
	RemoveBadge() error
}

// Hooks connect the shell to components created after it.
type Hooks struct {
	Window   Window
	Notifier Notifier
	// Badge may be nil on platforms without badge support.
	Badge Badge
	// ConfigChanged runs after the page writes a key.
	ConfigChanged func(key string)
	// Terminate stops the application run loop.
	Terminate func()
}

// Shell is the per-process application context. It owns the quitting flag
// and implements the native side of the bridge.
type Shell struct {
	version  string
	settings Settings
	quitting atomic.Bool
	relaunch atomic.Bool

	mu    sync.RWMutex
	hooks Hooks
}

// NewShell creates the application context.
func NewShell(version string, settings Settings) *Shell {
	return &Shell{version: version, settings: settings}
}

// Attach installs the hooks. It is called once, after the window and the
// platform services exist.
func (s *Shell) Attach(h Hooks) {
	s.mu.Lock()
	s.hooks = h
	s.mu.Unlock()
}

func (s *Shell) current() Hooks {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hooks
}

// Quitting reports whether the process is shutting down.
func (s *Shell) Quitting() bool {
	return s.quitting.Load()
}

// MarkQuitting records that the process is shutting down. Window close
// requests are no longer intercepted afterwards.
func (s *Shell) MarkQuitting() {
	s.quitting.Store(true)
}

// Restart quits and asks main to start the executable again.
func (s *Shell) Restart() {
	s.relaunch.Store(true)
	s.Quit()
}

// RelaunchRequested reports whether Restart was called.
func (s *Shell) RelaunchRequested() bool {
	return s.relaunch.Load()
}

// Version returns the application version.
func (s *Shell) Version() string {
	return s.version
}

// Config returns the stored value for key or its default.
func (s *Shell) Config(key string) any {
	return s.settings.Get(key)
}

// SetConfig persists a value written by the page.
func (s *Shell) SetConfig(key string, value any) bool {
	if err := s.settings.Set(key, value); err != nil {
		slog.Error("set config", "key", key, "error", err)
		return false
	}
	if fn := s.current().ConfigChanged; fn != nil {
		fn(key)
	}
	return true
}

// ShowNotification posts a native notification unless the user turned
// notifications off.
func (s *Shell) ShowNotification(req types.NotificationRequest) bool {
	if !s.settings.Bool(config.KeyNotifications) {
		slog.Debug("notification suppressed", "title", req.Title)
		return false
	}
	n := s.current().Notifier
	if n == nil {
		return false
	}
	if err := n.Notify(uuid.NewString(), req); err != nil {
		slog.Error("show notification", "error", err)
		return false
	}
	return true
}

// NotificationClicked brings the main window forward.
func (s *Shell) NotificationClicked(id string) {
	slog.Debug("notification clicked", "id", id)
	if w := s.current().Window; w != nil {
		w.Show()
	}
}

// SetBadge shows count on the dock or taskbar. Zero or less clears it.
// Failures are logged only.
func (s *Shell) SetBadge(count int) bool {
	b := s.current().Badge
	if b == nil {
		slog.Debug("badge unsupported", "count", count)
		return true
	}

	var err error
	if count > 0 {
		err = b.SetBadge(strconv.Itoa(count))
	} else {
		err = b.RemoveBadge()
	}
	if err != nil {
		slog.Warn("set badge", "count", count, "error", err)
	}
	return true
}

// MinimizeToTray hides the main window.
func (s *Shell) MinimizeToTray() bool {
	if w := s.current().Window; w != nil {
		w.Hide()
	}
	return true
}

// Quit marks the process as quitting and stops the application.
func (s *Shell) Quit() {
	s.MarkQuitting()
	if fn := s.current().Terminate; fn != nil {
		fn()
	}
}

// Navigate applies the window's navigation policy.
func (s *Shell) Navigate(url string) bool {
	w := s.current().Window
	if w == nil {
		return false
	}
	return w.Navigate(url)
}

// OpenWindow opens url in the external browser.
func (s *Shell) OpenWindow(url string) {
	if w := s.current().Window; w != nil {
		w.OpenWindow(url)
	}
}
