package app

import (
	"github.com/wailsapp/wails/v3/pkg/application"
	"github.com/wailsapp/wails/v3/pkg/services/dock"
)

// newBadge returns the dock/taskbar badge and the service to register.
// On Linux the dock service accepts badge calls and does nothing.
func newBadge() (Badge, []application.Service) {
	svc := dock.New()
	return svc, []application.Service{application.NewService(svc)}
}
