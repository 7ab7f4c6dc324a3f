package app

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/wailsapp/wails/v3/pkg/application"
	"github.com/wailsapp/wails/v3/pkg/events"
	"github.com/wailsapp/wails/v3/pkg/services/notifications"

	"github.com/figochat/desktop/bridge"
	"github.com/figochat/desktop/config"
	"github.com/figochat/desktop/i18n"
	"github.com/figochat/desktop/menu"
	"github.com/figochat/desktop/tray"
	"github.com/figochat/desktop/updater"
	"github.com/figochat/desktop/window"
)

//go:embed icons/appicon.png
var appIcon []byte

//go:embed icons/tray.png
var trayIcon []byte

// uniqueID keys the single-instance lock.
const uniqueID = "com.figochat.desktop"

// Options configures the application.
type Options struct {
	Name    string
	Version string
	// Dev loads the local development server and skips update checks.
	Dev bool
	// StartHidden keeps the first window in the tray (login item launch).
	StartHidden bool
	FeedURL     string

	Store     *config.Store
	Printer   *i18n.Printer
	Logger    *slog.Logger
	LoginItem tray.LoginItem
}

// App owns the Wails application and the controllers around it.
type App struct {
	opts   Options
	shell  *Shell
	wails  *application.App
	events eventSink

	window   *window.Controller
	tray     *tray.Controller
	systray  *application.SystemTray
	updater  *updater.Controller
	menus    menuRenderer
	prompter DialogPrompter
	notifier NotifyAdapter

	ctx    context.Context
	cancel context.CancelFunc
}

// New builds the application. Nothing is shown until Run.
func New(opts Options) (*App, error) {
	if opts.Printer == nil {
		opts.Printer = i18n.Default()
	}
	if opts.LoginItem == nil {
		opts.LoginItem = noLoginItem{}
	}

	a := &App{opts: opts}
	a.ctx, a.cancel = context.WithCancel(context.Background())
	a.shell = NewShell(opts.Version, opts.Store)

	bridgeSvc := bridge.NewService(a.shell)
	notifySvc := notifications.New()
	a.notifier = NotifyAdapter{svc: notifySvc}
	badge, badgeServices := newBadge()

	services := []application.Service{
		application.NewService(notifySvc),
	}
	services = append(services, badgeServices...)

	raw := rawHandler{bridge: bridgeSvc, trusted: func(origin string) bool {
		return a.window.Trusted(origin)
	}}

	a.wails = application.New(application.Options{
		Name:        opts.Name,
		Description: "Elegant real-time chat",
		Icon:        appIcon,
		Logger:      opts.Logger,
		Services:    services,

		// The remote page has no bundled runtime; the preload script posts
		// bridge requests as raw messages.
		RawMessageHandler: raw.handle,
		Mac: application.MacOptions{
			// Keep running in the tray when the window is closed
			ApplicationShouldTerminateAfterLastWindowClosed: false,
		},
		SingleInstance: &application.SingleInstanceOptions{
			UniqueID: uniqueID,
			OnSecondInstanceLaunch: func(data application.SecondInstanceData) {
				slog.Info("second instance launched", "args", data.Args)
				a.window.Activate()
			},
		},
		ShouldQuit: func() bool {
			a.shell.MarkQuitting()
			return true
		},
		OnShutdown: a.shutdown,
	})
	a.prompter = DialogPrompter{app: a.wails}

	var err error
	a.window, err = window.New(window.Config{
		Title:       opts.Name,
		Version:     opts.Version,
		Dev:         opts.Dev,
		StartHidden: opts.StartHidden,
		Script:      bridgeSvc.Script,
	}, opts.Store, a.windowFactory(), browserOpener{app: a.wails}, a.shell.Quitting)
	if err != nil {
		return nil, fmt.Errorf("create window controller: %w", err)
	}
	a.events = eventSink{eval: a.window.Eval}
	a.menus = menuRenderer{app: a.wails, p: opts.Printer, front: a.window.Show}

	a.tray = tray.New(opts.Name, opts.Printer, a.window, opts.Store, opts.LoginItem, tray.Actions{
		Emit:            a.events.emit,
		CheckForUpdates: a.checkForUpdates,
		About:           a.showAbout,
		Quit:            a.shell.Quit,
	})

	a.updater = newUpdater(opts, a.prompter, a.window.SetProgress, a.events.emit, a.shell.Restart)

	a.shell.Attach(Hooks{
		Window:        a.window,
		Notifier:      a.notifier,
		Badge:         badge,
		ConfigChanged: a.configChanged,
		Terminate:     a.wails.Quit,
	})
	a.notifier.listen(a.shell)

	return a, nil
}

func newUpdater(opts Options, prompter updater.Prompter, progress func(float64), emit func(string, any), restart func()) *updater.Controller {
	client := updater.NewHTTPClient(opts.Dev)
	ua := "FigoChat-Desktop/" + opts.Version

	return updater.New(updater.Options{
		AppName:        opts.Name,
		CurrentVersion: opts.Version,
		GOOS:           runtime.GOOS,
		GOARCH:         runtime.GOARCH,
		Printer:        opts.Printer,
		Feed: &updater.HTTPFeed{
			BaseURL:   opts.FeedURL,
			GOOS:      runtime.GOOS,
			UserAgent: ua,
			Client:    client,
		},
		Downloader: &updater.HTTPDownloader{
			Client:    client,
			Dir:       stagingDir(),
			UserAgent: ua,
		},
		Installer: updater.ExecutableInstaller{},
		Prompter:  prompter,
		Progress:  progress,
		Emit:      emit,
		Restart:   restart,
	})
}

func stagingDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "FigoChat", "updates")
}

// Run shows the UI and blocks until the application exits.
func (a *App) Run() error {
	a.window.Create()
	a.setupTray()
	a.setupMenu()

	a.wails.Event.OnApplicationEvent(events.Mac.ApplicationShouldHandleReopen, func(*application.ApplicationEvent) {
		a.window.Activate()
	})
	a.wails.Event.OnApplicationEvent(events.Common.ApplicationStarted, func(*application.ApplicationEvent) {
		go a.notifier.authorize()
		if a.opts.Dev {
			slog.Info("development mode, update checks disabled")
			return
		}
		go a.updater.Run(a.ctx, updater.StartupDelay, updater.CheckInterval)
	})

	slog.Info("starting app", "url", a.window.URL(), "dev", a.opts.Dev)
	err := a.wails.Run()
	a.cancel()
	if err != nil {
		return fmt.Errorf("run app: %w", err)
	}
	return nil
}

// RelaunchRequested reports whether the updater asked for a restart.
func (a *App) RelaunchRequested() bool {
	return a.shell.RelaunchRequested()
}

func (a *App) shutdown() {
	a.shell.MarkQuitting()
	a.cancel()
	a.window.SaveBounds()

	if err := a.updater.InstallPending(); err != nil {
		slog.Error("install pending update", "error", err)
	}
}

func (a *App) setupTray() {
	a.systray = a.wails.SystemTray.New()
	a.systray.SetIcon(trayIcon)
	a.systray.SetTooltip(a.tray.Tooltip())
	a.systray.OnClick(a.tray.Click)
	a.systray.OnDoubleClick(a.tray.DoubleClick)
	a.refreshTray()
}

// refreshTray rebuilds the tray menu so checkboxes match the store.
func (a *App) refreshTray() {
	if a.systray == nil {
		return
	}
	a.systray.SetMenu(a.menus.render(a.tray.Items()))
}

func (a *App) setupMenu() {
	items := menu.Build(runtime.GOOS, a.opts.Name, a.opts.Printer, menu.Actions{
		OpenExternal:    a.window.OpenExternal,
		CheckForUpdates: a.checkForUpdates,
		OpenDevTools:    a.window.OpenDevTools,
	})
	a.wails.Menu.Set(a.menus.render(items))
}

func (a *App) configChanged(key string) {
	if a.tray.Watches(key) {
		a.refreshTray()
	}
}

// checkForUpdates starts a user-requested update session.
func (a *App) checkForUpdates() {
	go func() {
		if err := a.updater.Check(a.ctx, false); errors.Is(err, updater.ErrBusy) {
			slog.Info("update check already running")
		}
	}()
}

func (a *App) showAbout() {
	p := a.opts.Printer
	a.prompter.Inform(updater.Dialog{
		Kind:    updater.DialogInfo,
		Title:   p.T("About %s", a.opts.Name),
		Message: p.T("%s Desktop", a.opts.Name),
		Detail:  p.T("Version: %s\n\nElegant real-time chat\n\n© 2024 FigoChat Team", a.opts.Version),
		Buttons: []string{p.T("OK")},
	})
}

// noLoginItem stands in when the login item could not be set up.
type noLoginItem struct{}

func (noLoginItem) Set(bool) error {
	return errors.New("login item unavailable")
}
