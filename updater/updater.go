// Package updater checks the release feed, downloads new versions and
// installs them, prompting the user at each step.
package updater

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/figochat/desktop/bridge"
	"github.com/figochat/desktop/i18n"
	"github.com/figochat/desktop/internal/types"
)

// ErrBusy is returned by Check while another session is running.
var ErrBusy = errors.New("update session already running")

// Check schedule.
const (
	StartupDelay  = 10 * time.Second
	CheckInterval = 6 * time.Hour
)

// Feed returns the newest published release.
type Feed interface {
	Latest(ctx context.Context) (*Release, error)
}

// Downloader stages an artifact locally.
type Downloader interface {
	Download(ctx context.Context, f File, progress func(types.DownloadProgress)) (string, error)
}

// Installer replaces the application with a staged artifact.
type Installer interface {
	Install(path string, checksum []byte) error
}

// DialogKind selects the dialog icon.
type DialogKind int

const (
	DialogInfo DialogKind = iota
	DialogQuestion
	DialogError
)

// Dialog describes a native message box.
type Dialog struct {
	Kind    DialogKind
	Title   string
	Message string
	Detail  string
	Buttons []string
	Default int
	Cancel  int
}

// Prompter shows dialogs to the user.
type Prompter interface {
	// Ask blocks until a button is chosen and returns its index. A dismissed
	// dialog or a cancelled ctx returns the Cancel index.
	Ask(ctx context.Context, d Dialog) int
	// Inform shows a single-button dialog.
	Inform(d Dialog)
}

// Options configures a Controller.
type Options struct {
	AppName        string
	CurrentVersion string
	GOOS           string
	GOARCH         string
	Printer        *i18n.Printer

	Feed       Feed
	Downloader Downloader
	Installer  Installer
	Prompter   Prompter

	// Progress drives the window's progress indicator; negative clears it.
	Progress func(fraction float64)
	// Emit sends an event to the page.
	Emit func(name string, data any)
	// Restart quits the application and starts the new version.
	Restart func()
}

type pendingUpdate struct {
	version  string
	path     string
	checksum []byte
}

// Controller runs update sessions one at a time.
type Controller struct {
	opts Options
	p    *i18n.Printer

	mu      sync.Mutex
	active  bool
	state   types.UpdateState
	version string
	pending *pendingUpdate
}

// New creates an update Controller.
func New(opts Options) *Controller {
	p := opts.Printer
	if p == nil {
		p = i18n.Default()
	}
	return &Controller{opts: opts, p: p, state: types.UpdateIdle}
}

// Status returns the current session state.
func (c *Controller) Status() types.UpdateStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return types.UpdateStatus{State: c.state, CurrentVersion: c.opts.CurrentVersion, Version: c.version}
}

// PendingVersion returns the version downloaded but not yet installed.
func (c *Controller) PendingVersion() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return ""
	}
	return c.pending.version
}

// Check runs one update session. It blocks through every prompt, so
// callers on the UI thread should run it on a goroutine. Silent sessions
// report failures and "no update" only to the log.
func (c *Controller) Check(ctx context.Context, silent bool) error {
	c.mu.Lock()
	if c.active {
		state := c.state
		c.mu.Unlock()
		slog.Debug("update check skipped", "state", state)
		return ErrBusy
	}
	c.active = true
	c.mu.Unlock()

	err := c.run(ctx, silent)
	if err != nil {
		slog.Error("update", "silent", silent, "error", err)
		c.setState(types.UpdateError, "", err)
		if !silent {
			c.opts.Prompter.Inform(Dialog{
				Kind:    DialogError,
				Title:   c.p.T("Update check failed"),
				Message: c.p.T("Unable to reach the update server, please try again later"),
				Detail:  err.Error(),
				Buttons: []string{c.p.T("OK")},
			})
		}
	}

	c.mu.Lock()
	installing := c.state == types.UpdateInstalling && err == nil
	c.mu.Unlock()
	if installing {
		// The process is about to exit; keep the session open.
		return nil
	}

	c.setState(types.UpdateIdle, "", nil)
	c.mu.Lock()
	c.active = false
	c.mu.Unlock()
	return err
}

func (c *Controller) run(ctx context.Context, silent bool) error {
	c.setState(types.UpdateChecking, "", nil)

	rel, err := c.opts.Feed.Latest(ctx)
	if err != nil {
		return fmt.Errorf("check for updates: %w", err)
	}
	newer, err := IsNewer(c.opts.CurrentVersion, rel.Version)
	if err != nil {
		return fmt.Errorf("compare versions: %w", err)
	}

	if !newer {
		slog.Info("no update available", "current", c.opts.CurrentVersion, "latest", rel.Version)
		c.setState(types.UpdateNotAvailable, rel.Version, nil)
		if !silent {
			c.opts.Prompter.Inform(Dialog{
				Kind:    DialogInfo,
				Title:   c.p.T("Check for Updates"),
				Message: c.p.T("You are running the latest version"),
				Buttons: []string{c.p.T("OK")},
			})
		}
		return nil
	}

	slog.Info("update available", "current", c.opts.CurrentVersion, "latest", rel.Version)
	c.setState(types.UpdateAvailable, rel.Version, nil)

	pending := c.pendingFor(rel.Version)
	if pending == nil {
		choice := c.opts.Prompter.Ask(ctx, Dialog{
			Kind:    DialogQuestion,
			Title:   c.p.T("New version available"),
			Message: c.p.T("%s %s has been released", c.opts.AppName, rel.Version),
			Detail:  c.p.T("Current version: %s\nNew version: %s\n\nDownload the update now?", c.opts.CurrentVersion, rel.Version),
			Buttons: []string{c.p.T("Download Now"), c.p.T("Remind Me Later")},
			Default: 0,
			Cancel:  1,
		})
		if choice != 0 {
			slog.Info("update download postponed", "version", rel.Version)
			return nil
		}

		if pending, err = c.download(ctx, rel); err != nil {
			return err
		}
		c.replacePending(pending)
	}

	c.setState(types.UpdateDownloaded, rel.Version, nil)
	choice := c.opts.Prompter.Ask(ctx, Dialog{
		Kind:    DialogQuestion,
		Title:   c.p.T("Update ready"),
		Message: c.p.T("The new version has been downloaded"),
		Detail:  c.p.T("Restart the application to finish installing the update"),
		Buttons: []string{c.p.T("Restart Now"), c.p.T("Restart Later")},
		Default: 0,
		Cancel:  1,
	})
	if choice != 0 {
		slog.Info("update install deferred to quit", "version", rel.Version)
		return nil
	}

	c.setState(types.UpdateInstalling, rel.Version, nil)
	if err := c.InstallPending(); err != nil {
		return err
	}
	if c.opts.Restart != nil {
		c.opts.Restart()
	}
	return nil
}

func (c *Controller) download(ctx context.Context, rel *Release) (*pendingUpdate, error) {
	art, err := rel.Artifact(c.opts.GOOS, c.opts.GOARCH)
	if err != nil {
		return nil, fmt.Errorf("select artifact: %w", err)
	}
	sum, err := DecodeChecksum(art.SHA512)
	if err != nil {
		return nil, err
	}

	c.setState(types.UpdateDownloading, rel.Version, nil)
	path, err := c.opts.Downloader.Download(ctx, art, c.onProgress)
	c.setProgress(-1)
	if err != nil {
		return nil, fmt.Errorf("download update: %w", err)
	}
	slog.Info("update downloaded", "version", rel.Version, "path", path)
	return &pendingUpdate{version: rel.Version, path: path, checksum: sum}, nil
}

// InstallPending applies a downloaded update that the user chose to
// install later. It is a no-op when nothing is pending.
func (c *Controller) InstallPending() error {
	c.mu.Lock()
	p := c.pending
	c.pending = nil
	c.mu.Unlock()
	if p == nil {
		return nil
	}

	slog.Info("install update", "version", p.version)
	err := c.opts.Installer.Install(p.path, p.checksum)
	if rerr := os.Remove(p.path); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
		slog.Warn("remove staged update", "path", p.path, "error", rerr)
	}
	if err != nil {
		return fmt.Errorf("install update %s: %w", p.version, err)
	}
	return nil
}

// Run checks silently after delay and then every interval until ctx is
// done. Sessions already running are skipped.
func (c *Controller) Run(ctx context.Context, delay, interval time.Duration) {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		_ = c.Check(ctx, true)
		timer.Reset(interval)
	}
}

func (c *Controller) pendingFor(version string) *pendingUpdate {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil && c.pending.version == version {
		return c.pending
	}
	return nil
}

func (c *Controller) replacePending(p *pendingUpdate) {
	c.mu.Lock()
	old := c.pending
	c.pending = p
	c.mu.Unlock()
	if old != nil && old.path != p.path {
		if err := os.Remove(old.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("remove stale update", "path", old.path, "error", err)
		}
	}
}

func (c *Controller) onProgress(p types.DownloadProgress) {
	c.setProgress(p.Percent / 100)
	c.emit(bridge.EventUpdateProgress, p)
}

func (c *Controller) setProgress(fraction float64) {
	if c.opts.Progress != nil {
		c.opts.Progress(fraction)
	}
}

func (c *Controller) setState(state types.UpdateState, version string, err error) {
	c.mu.Lock()
	if c.state == state && c.version == version && err == nil {
		c.mu.Unlock()
		return
	}
	c.state = state
	c.version = version
	status := types.UpdateStatus{State: state, CurrentVersion: c.opts.CurrentVersion, Version: version}
	c.mu.Unlock()

	if err != nil {
		status.Error = err.Error()
	}
	c.emit(bridge.EventUpdateState, status)
}

func (c *Controller) emit(name string, data any) {
	if c.opts.Emit != nil {
		c.opts.Emit(name, data)
	}
}
