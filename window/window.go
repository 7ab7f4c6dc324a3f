// Package window owns the lifecycle of the single main window.
package window

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/figochat/desktop/config"
	"github.com/figochat/desktop/internal/types"
)

// DevURL is loaded instead of the server in development mode.
const DevURL = "http://localhost:3000"

// Window is the native window handle the controller drives.
type Window interface {
	Show()
	Hide()
	Focus()
	Restore()
	Close()
	IsVisible() bool
	IsMinimised() bool
	IsMaximised() bool
	Size() (width, height int)
	Position() (x, y int)
	SetTitle(title string)
	ExecJS(js string)
	OpenDevTools()
}

// Options describe the window to create.
type Options struct {
	Title    string
	URL      string
	Bounds   types.Bounds
	DevTools bool
}

// Factory creates the native window. The window must start hidden.
type Factory func(Options) Window

// Settings is the slice of the config store the controller needs.
type Settings interface {
	Bool(key string) bool
	String(key string) string
	Bounds() types.Bounds
	SetBounds(b types.Bounds) error
}

// Opener hands a URL to the platform's default handler.
type Opener interface {
	OpenURL(url string) error
}

// State of the main window.
type State int

const (
	StateNone State = iota
	StateHidden
	StateShown
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateHidden:
		return "hidden"
	case StateShown:
		return "shown"
	case StateClosed:
		return "closed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Config holds the fixed parameters of the controller.
type Config struct {
	Title   string
	Version string
	Dev     bool
	// StartHidden keeps the first window hidden regardless of settings,
	// used when launched as a login item.
	StartHidden bool
	// Script returns extra JavaScript evaluated after every page load.
	Script func() (string, error)
}

// Controller drives the main window through
// none → hidden → shown ⇄ hidden → closed.
type Controller struct {
	cfg      Config
	settings Settings
	factory  Factory
	opener   Opener
	quitting func() bool
	policy   *Policy

	mu       sync.Mutex
	win      Window
	state    State
	progress float64
}

// New creates a Controller. quitting reports whether the process is on its
// way out, in which case close requests are never intercepted.
func New(cfg Config, settings Settings, factory Factory, opener Opener, quitting func() bool) (*Controller, error) {
	policy, err := NewPolicy(settings.String(config.KeyServerURL))
	if err != nil {
		return nil, err
	}
	return &Controller{
		cfg:      cfg,
		settings: settings,
		factory:  factory,
		opener:   opener,
		quitting: quitting,
		policy:   policy,
		progress: -1,
	}, nil
}

// URL returns the address the window loads.
func (c *Controller) URL() string {
	if c.cfg.Dev {
		return DevURL
	}
	return c.settings.String(config.KeyServerURL)
}

// State returns the current window state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Create opens the main window if none exists. It restores the persisted
// bounds and shows the window unless start-minimized applies.
func (c *Controller) Create() {
	c.mu.Lock()
	if c.state != StateNone && c.state != StateClosed {
		c.mu.Unlock()
		return
	}

	opts := Options{
		Title:    c.cfg.Title,
		URL:      c.URL(),
		Bounds:   c.settings.Bounds().Clamp(),
		DevTools: c.cfg.Dev,
	}
	c.win = c.factory(opts)
	c.state = StateHidden
	startHidden := c.cfg.StartHidden
	c.cfg.StartHidden = false
	c.mu.Unlock()

	slog.Info("window created", "url", opts.URL, "width", opts.Bounds.Width, "height", opts.Bounds.Height)

	if startHidden || c.settings.Bool(config.KeyStartMinimized) {
		return
	}
	c.Show()
}

// Show brings the window to the front, restoring it if minimised.
func (c *Controller) Show() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.win == nil {
		return
	}
	if c.win.IsMinimised() {
		c.win.Restore()
	}
	c.win.Show()
	c.win.Focus()
	c.state = StateShown
}

// Hide hides the window without closing it.
func (c *Controller) Hide() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.win == nil {
		return
	}
	c.win.Hide()
	c.state = StateHidden
}

// Toggle hides a visible window and shows a hidden one.
func (c *Controller) Toggle() {
	if c.Visible() {
		c.Hide()
		return
	}
	c.Show()
}

// Visible reports whether the window is on screen.
func (c *Controller) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.win != nil && c.win.IsVisible()
}

// Activate handles a reactivation request (dock click, second instance).
// A closed window is recreated; an existing one is shown.
func (c *Controller) Activate() {
	switch c.State() {
	case StateNone, StateClosed:
		c.Create()
		c.Show()
	default:
		c.Show()
	}
}

// HandleClose is called when the user asks to close the window. It returns
// true when the close must be cancelled because the window was hidden to
// the tray instead.
func (c *Controller) HandleClose() (cancel bool) {
	if !c.quitting() && c.settings.Bool(config.KeyMinimizeToTray) {
		c.Hide()
		return true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.win == nil {
		return false
	}
	c.saveBoundsLocked()
	c.win = nil
	c.state = StateClosed
	return false
}

// SaveBounds persists the current geometry. Minimised and maximised windows
// are skipped so the restored size stays meaningful.
func (c *Controller) SaveBounds() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.win == nil {
		return
	}
	c.saveBoundsLocked()
}

func (c *Controller) saveBoundsLocked() {
	if c.win.IsMinimised() || c.win.IsMaximised() {
		return
	}
	w, h := c.win.Size()
	x, y := c.win.Position()
	b := types.Bounds{Width: w, Height: h, X: &x, Y: &y}
	if err := c.settings.SetBounds(b); err != nil {
		slog.Error("save window bounds", "error", err)
	}
}

// HandlePageLoaded injects the desktop markers and the preload script.
// It runs after every completed page load.
func (c *Controller) HandlePageLoaded() {
	js, err := c.pageScript()
	if err != nil {
		slog.Error("build page script", "error", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.win == nil {
		return
	}
	c.win.ExecJS(js)
}

func (c *Controller) pageScript() (string, error) {
	js, err := MarkerScript(c.cfg.Version)
	if err != nil {
		return "", err
	}
	if c.cfg.Script == nil {
		return js, nil
	}
	extra, err := c.cfg.Script()
	if err != nil {
		return "", err
	}
	return js + "\n" + extra, nil
}

// Eval runs js in the current page. Scripts sent before the window exists
// are dropped.
func (c *Controller) Eval(js string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.win == nil {
		slog.Debug("drop page script, no window")
		return
	}
	c.win.ExecJS(js)
}

// Trusted reports whether a page served from origin may use the bridge.
func (c *Controller) Trusted(origin string) bool {
	return c.policy.Allowed(origin)
}

// MarkerScript returns the JavaScript that flags the page as running inside
// the desktop client.
func MarkerScript(version string) (string, error) {
	v, err := json.Marshal(version)
	if err != nil {
		return "", fmt.Errorf("marshal version: %w", err)
	}
	return fmt.Sprintf(
		"window.__FIGOCHAT_DESKTOP__ = true;\nwindow.__FIGOCHAT_VERSION__ = %s;\nconsole.log('[FigoChat Desktop] Running version ' + window.__FIGOCHAT_VERSION__);",
		v,
	), nil
}

// Navigate applies the navigation policy. Targets outside the allowed
// origins are opened externally and the in-window navigation is refused.
func (c *Controller) Navigate(target string) bool {
	if c.policy.Allowed(target) {
		return true
	}
	c.OpenExternal(target)
	return false
}

// OpenWindow handles a new-window request. The target always goes to the
// external handler.
func (c *Controller) OpenWindow(target string) {
	c.OpenExternal(target)
}

// OpenExternal passes target to the OS default handler.
func (c *Controller) OpenExternal(target string) {
	if !OpenableExternally(target) {
		slog.Warn("refuse external open", "url", target)
		return
	}
	if err := c.opener.OpenURL(target); err != nil {
		slog.Error("open external url", "url", target, "error", err)
	}
}

// SetProgress shows a download indicator in the window title. A negative
// fraction removes it.
func (c *Controller) SetProgress(fraction float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	title := c.cfg.Title
	if fraction >= 0 {
		pct := int(math.Round(math.Min(fraction, 1) * 100))
		title = fmt.Sprintf("%s (%d%%)", c.cfg.Title, pct)
	}
	c.progress = fraction
	if c.win != nil {
		c.win.SetTitle(title)
	}
}

// Progress returns the fraction last passed to SetProgress.
func (c *Controller) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progress
}

// OpenDevTools opens the web inspector.
func (c *Controller) OpenDevTools() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.win != nil {
		c.win.OpenDevTools()
	}
}

// Close closes the window for good. The caller is expected to have marked
// the process as quitting.
func (c *Controller) Close() {
	c.mu.Lock()
	win := c.win
	c.mu.Unlock()
	if win != nil {
		win.Close()
	}
}
