// Package tray owns the system tray icon's menu and click behaviour.
package tray

import (
	"log/slog"

	"github.com/figochat/desktop/bridge"
	"github.com/figochat/desktop/config"
	"github.com/figochat/desktop/i18n"
	"github.com/figochat/desktop/menu"
)

// Window is the part of the window controller the tray drives.
type Window interface {
	Show()
	Toggle()
}

// Settings is the part of the config store the tray reads and writes.
type Settings interface {
	Bool(key string) bool
	Set(key string, value any) error
}

// LoginItem registers the application to start at login.
type LoginItem interface {
	Set(enable bool) error
}

// Actions are the application-level callbacks reachable from the tray.
type Actions struct {
	Emit            func(name string, data any)
	CheckForUpdates func()
	About           func()
	// Quit must mark the process as quitting before terminating it.
	Quit func()
}

// Controller builds the tray menu and handles tray clicks.
type Controller struct {
	appName  string
	p        *i18n.Printer
	win      Window
	settings Settings
	login    LoginItem
	actions  Actions
}

// New creates a tray Controller.
func New(appName string, p *i18n.Printer, win Window, settings Settings, login LoginItem, actions Actions) *Controller {
	return &Controller{
		appName:  appName,
		p:        p,
		win:      win,
		settings: settings,
		login:    login,
		actions:  actions,
	}
}

// Tooltip is shown when hovering the tray icon.
func (c *Controller) Tooltip() string {
	return c.appName
}

// Items returns the context menu. Checkbox states are read from the config
// store each time, so rebuilding the menu re-syncs them.
func (c *Controller) Items() []menu.Item {
	return []menu.Item{
		menu.Action(c.p.T("Open %s", c.appName), c.win.Show),
		menu.Separator(),
		menu.Checkbox(c.p.T("Notifications for new messages"), c.settings.Bool(config.KeyNotifications), c.SetNotifications),
		menu.Checkbox(c.p.T("Launch at login"), c.settings.Bool(config.KeyAutoLaunch), c.SetAutoLaunch),
		menu.Separator(),
		menu.Action(c.p.T("Server settings..."), c.OpenSettings),
		menu.Separator(),
		menu.Action(c.p.T("Check for Updates..."), c.actions.CheckForUpdates),
		menu.Action(c.p.T("About %s", c.appName), c.actions.About),
		menu.Action(c.p.T("Quit"), c.Quit),
	}
}

// Watches reports whether a change to key requires rebuilding the menu.
func (c *Controller) Watches(key string) bool {
	return key == config.KeyNotifications || key == config.KeyAutoLaunch
}

// Click toggles the main window.
func (c *Controller) Click() {
	c.win.Toggle()
}

// DoubleClick always shows and focuses the main window.
func (c *Controller) DoubleClick() {
	c.win.Show()
}

// SetNotifications writes the notifications flag through to the store.
func (c *Controller) SetNotifications(enabled bool) {
	if err := c.settings.Set(config.KeyNotifications, enabled); err != nil {
		slog.Error("save notifications flag", "error", err)
	}
}

// SetAutoLaunch writes the auto-launch flag and updates the login item.
func (c *Controller) SetAutoLaunch(enabled bool) {
	if err := c.settings.Set(config.KeyAutoLaunch, enabled); err != nil {
		slog.Error("save auto-launch flag", "error", err)
	}
	if err := c.login.Set(enabled); err != nil {
		slog.Error("update login item", "enabled", enabled, "error", err)
	}
}

// OpenSettings shows the window and asks the page to open its settings.
func (c *Controller) OpenSettings() {
	c.win.Show()
	if c.actions.Emit != nil {
		c.actions.Emit(bridge.EventOpenSettings, nil)
	}
}

// Quit terminates the application.
func (c *Controller) Quit() {
	slog.Info("quit from tray")
	c.actions.Quit()
}
