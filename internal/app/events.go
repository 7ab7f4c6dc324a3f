package app

import (
	"log/slog"

	"github.com/wailsapp/wails/v3/pkg/application"

	"github.com/figochat/desktop/bridge"
)

// eventSink forwards controller events to the page in the main window.
type eventSink struct {
	eval func(js string)
}

// emit delivers name to the listeners the preload script registered.
func (e eventSink) emit(name string, data any) {
	if e.eval == nil {
		slog.Debug("drop event", "name", name)
		return
	}
	js, err := bridge.EventScript(name, data)
	if err != nil {
		slog.Error("encode page event", "name", name, "error", err)
		return
	}
	e.eval(js)
}

// rawHandler answers bridge requests the page posts with
// window._wails.invoke.
type rawHandler struct {
	bridge  *bridge.Service
	trusted func(origin string) bool
}

func (h rawHandler) handle(w application.Window, message string, origin *application.OriginInfo) {
	if w.Name() != mainWindowName {
		return
	}
	if !h.allowed(origin) {
		slog.Warn("reject bridge message", "origin", origin.Origin)
		return
	}
	js, err := h.bridge.HandleMessage(message)
	if err != nil {
		slog.Warn("ignore raw message", "error", err)
		return
	}
	w.ExecJS(js)
}

// allowed checks the sender against the navigation policy. Platforms that
// report no origin are accepted; the policy already keeps foreign pages
// out of the window.
func (h rawHandler) allowed(origin *application.OriginInfo) bool {
	if origin == nil || origin.Origin == "" {
		return true
	}
	return h.trusted(origin.Origin)
}
