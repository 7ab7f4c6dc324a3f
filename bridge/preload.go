package bridge

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

//go:embed preload.js
var preloadSource string

var preloadTmpl = template.Must(template.New("preload").Parse(preloadSource))

// Script renders the page-side shim exposing window.figochatDesktop.
// Every value is JSON encoded, so the output is safe to evaluate.
func (s *Service) Script() (string, error) {
	channels := map[string]string{
		"getVersion":       ChannelGetVersion,
		"getConfig":        ChannelGetConfig,
		"setConfig":        ChannelSetConfig,
		"showNotification": ChannelShowNotification,
		"setBadge":         ChannelSetBadge,
		"minimizeToTray":   ChannelMinimizeToTray,
		"quitApp":          ChannelQuitApp,
		"navigate":         ChannelNavigate,
		"openWindow":       ChannelOpenWindow,
	}
	events := map[string]string{
		"openSettings":   EventOpenSettings,
		"newMessage":     EventNewMessage,
		"updateState":    EventUpdateState,
		"updateProgress": EventUpdateProgress,
	}

	data := map[string]string{}
	for name, v := range map[string]any{
		"Prefix":   MessagePrefix,
		"Channels": channels,
		"Events":   events,
		"Platform": s.platform,
	} {
		b, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("marshal %s: %w", name, err)
		}
		data[name] = string(b)
	}

	var sb strings.Builder
	if err := preloadTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render preload: %w", err)
	}
	return sb.String(), nil
}
