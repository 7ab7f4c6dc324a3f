package app

import (
	"log/slog"

	"github.com/wailsapp/wails/v3/pkg/services/notifications"

	"github.com/figochat/desktop/internal/types"
)

// NotifyAdapter posts notifications through the Wails notification service.
type NotifyAdapter struct {
	svc *notifications.NotificationService
}

func (n NotifyAdapter) Notify(id string, req types.NotificationRequest) error {
	if req.Icon != "" {
		slog.Debug("notification icon ignored", "icon", req.Icon)
	}
	return n.svc.SendNotification(notifications.NotificationOptions{
		ID:    id,
		Title: req.Title,
		Body:  req.Body,
	})
}

// listen routes notification clicks to the shell.
func (n NotifyAdapter) listen(s *Shell) {
	n.svc.OnNotificationResponse(func(result notifications.NotificationResult) {
		if result.Error != nil {
			slog.Error("notification response", "error", result.Error)
			return
		}
		s.NotificationClicked(result.Response.ID)
	})
}

// authorize asks the OS for permission to post notifications.
func (n NotifyAdapter) authorize() {
	granted, err := n.svc.RequestNotificationAuthorization()
	if err != nil {
		slog.Warn("request notification authorization", "error", err)
		return
	}
	if !granted {
		slog.Info("notifications not authorized")
	}
}
