package app

import (
	"log/slog"
	"runtime"
	"sync"

	"github.com/wailsapp/wails/v3/pkg/application"
	"github.com/wailsapp/wails/v3/pkg/events"

	"github.com/figochat/desktop/internal/types"
	"github.com/figochat/desktop/window"
)

// mainWindowName identifies the single webview window.
const mainWindowName = "main"

// WindowAdapter exposes a Wails webview window to the window controller.
type WindowAdapter struct {
	w *application.WebviewWindow
}

func (a WindowAdapter) Show()                { a.w.Show() }
func (a WindowAdapter) Hide()                { a.w.Hide() }
func (a WindowAdapter) Focus()               { a.w.Focus() }
func (a WindowAdapter) Restore()             { a.w.Restore() }
func (a WindowAdapter) Close()               { a.w.Close() }
func (a WindowAdapter) IsVisible() bool      { return a.w.IsVisible() }
func (a WindowAdapter) IsMinimised() bool    { return a.w.IsMinimised() }
func (a WindowAdapter) IsMaximised() bool    { return a.w.IsMaximised() }
func (a WindowAdapter) Size() (int, int)     { return a.w.Size() }
func (a WindowAdapter) Position() (int, int) { return a.w.Position() }
func (a WindowAdapter) SetTitle(t string)    { a.w.SetTitle(t) }
func (a WindowAdapter) ExecJS(js string)     { a.w.ExecJS(js) }
func (a WindowAdapter) OpenDevTools()        { a.w.OpenDevTools() }

// windowFactory creates the hidden main window and routes its close and
// navigation-finished events back to the controller.
func (a *App) windowFactory() window.Factory {
	return func(o window.Options) window.Window {
		w := a.wails.Window.NewWithOptions(application.WebviewWindowOptions{
			Name:            mainWindowName,
			Title:           o.Title,
			Width:           o.Bounds.Width,
			Height:          o.Bounds.Height,
			MinWidth:        types.MinWidth,
			MinHeight:       types.MinHeight,
			URL:             o.URL,
			Hidden:          true,
			DevToolsEnabled: true,
		})
		if o.Bounds.X != nil && o.Bounds.Y != nil {
			w.SetPosition(*o.Bounds.X, *o.Bounds.Y)
		}

		w.RegisterHook(events.Common.WindowClosing, func(e *application.WindowEvent) {
			if a.window.HandleClose() {
				e.Cancel()
			}
		})

		var devTools sync.Once
		if !watchPageLoads(w, runtime.GOOS, func() {
			a.window.HandlePageLoaded()
			if o.DevTools {
				devTools.Do(func() { w.OpenDevTools() })
			}
		}) {
			slog.Warn("no page load event on this platform, desktop bridge disabled", "os", runtime.GOOS)
		}

		return WindowAdapter{w: w}
	}
}

// pageLoadEvents fire after every finished navigation, once Wails has put
// its core script (window._wails.invoke) into the page.
var pageLoadEvents = map[string]events.WindowEventType{
	"darwin":  events.Mac.WebViewDidFinishNavigation,
	"windows": events.Windows.WebViewNavigationCompleted,
	"linux":   events.Linux.WindowLoadFinished,
}

// runtimeReady is the message the bundled Wails runtime sends on startup.
// The remote page does not ship that runtime, so it is sent on its behalf
// to let ExecJS through.
const runtimeReady = "wails:runtime:ready"

// pageWindow is the part of a webview window watchPageLoads needs.
type pageWindow interface {
	OnWindowEvent(events.WindowEventType, func(*application.WindowEvent)) func()
	HandleMessage(message string)
}

// watchPageLoads calls loaded after every finished navigation of w. It
// reports false when goos has no such event.
func watchPageLoads(w pageWindow, goos string, loaded func()) bool {
	ev, ok := pageLoadEvents[goos]
	if !ok {
		return false
	}
	var ready sync.Once
	w.OnWindowEvent(ev, func(*application.WindowEvent) {
		ready.Do(func() { w.HandleMessage(runtimeReady) })
		loaded()
	})
	return true
}

// browserOpener hands URLs to the default browser.
type browserOpener struct {
	app *application.App
}

func (o browserOpener) OpenURL(url string) error {
	return o.app.Browser.OpenURL(url)
}
