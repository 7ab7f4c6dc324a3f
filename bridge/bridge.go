// Package bridge exposes a fixed set of native capabilities to the page
// loaded in the main window.
package bridge

import (
	"log/slog"
	"runtime"

	"github.com/figochat/desktop/internal/types"
)

// Capabilities is the native side of the bridge, one method per channel.
type Capabilities interface {
	// Version returns the application's semantic version.
	Version() string
	// Config returns the stored value for key or its default.
	Config(key string) any
	// SetConfig persists value under key and reports success.
	SetConfig(key string, value any) bool
	// ShowNotification displays a native notification. It returns false
	// without displaying anything when notifications are disabled.
	ShowNotification(req types.NotificationRequest) bool
	// SetBadge updates the dock badge or taskbar overlay. Best effort.
	SetBadge(count int) bool
	// MinimizeToTray hides the main window without closing it.
	MinimizeToTray() bool
	// Quit marks the process as quitting and terminates it.
	Quit()

	// Navigate applies the navigation policy to url and reports whether
	// the page may load it in place.
	Navigate(url string) bool
	// OpenWindow handles a new-window request; the target always opens
	// in the external browser.
	OpenWindow(url string)
}

// Service is bound to the webview. Each exported method serves one channel.
type Service struct {
	caps     Capabilities
	platform string
}

// NewService creates a Service forwarding to caps.
func NewService(caps Capabilities) *Service {
	return &Service{caps: caps, platform: runtime.GOOS}
}

// GetVersion serves get-version.
func (s *Service) GetVersion() string {
	return s.caps.Version()
}

// GetConfig serves get-config.
func (s *Service) GetConfig(key string) any {
	return s.caps.Config(key)
}

// SetConfig serves set-config.
func (s *Service) SetConfig(key string, value any) bool {
	slog.Debug("bridge set-config", "key", key)
	return s.caps.SetConfig(key, value)
}

// ShowNotification serves show-notification.
func (s *Service) ShowNotification(req types.NotificationRequest) bool {
	return s.caps.ShowNotification(req)
}

// SetBadge serves set-badge.
func (s *Service) SetBadge(count int) bool {
	return s.caps.SetBadge(count)
}

// MinimizeToTray serves minimize-to-tray.
func (s *Service) MinimizeToTray() bool {
	return s.caps.MinimizeToTray()
}

// QuitApp serves quit-app. It does not return a value; the process exits.
func (s *Service) QuitApp() {
	slog.Info("bridge quit-app")
	s.caps.Quit()
}

// Platform returns the host operating system as reported by Go.
func (s *Service) Platform() string {
	return s.platform
}

// Navigate is called by the preload script before an in-page navigation.
func (s *Service) Navigate(url string) bool {
	return s.caps.Navigate(url)
}

// OpenWindow is called by the preload script for window.open and
// target=_blank links.
func (s *Service) OpenWindow(url string) {
	s.caps.OpenWindow(url)
}
