package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/figochat/desktop/internal/types"
)

// MessagePrefix marks bridge requests among the raw messages a page posts
// through window._wails.invoke.
const MessagePrefix = "figochat:"

// ErrNotBridge is returned for raw messages that carry no bridge request.
var ErrNotBridge = errors.New("not a bridge message")

type request struct {
	ID      uint64            `json:"id"`
	Channel string            `json:"channel"`
	Args    []json.RawMessage `json:"args"`
}

type reply struct {
	ID     uint64 `json:"id"`
	Result any    `json:"result"`
	Error  string `json:"error,omitempty"`
}

// HandleMessage serves one raw message posted by the preload script and
// returns the JavaScript that settles the matching promise in the page.
func (s *Service) HandleMessage(message string) (string, error) {
	body, ok := strings.CutPrefix(message, MessagePrefix)
	if !ok {
		return "", ErrNotBridge
	}

	var req request
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return "", fmt.Errorf("decode bridge request: %w", err)
	}

	res := reply{ID: req.ID}
	result, err := s.dispatch(req.Channel, req.Args)
	if err != nil {
		slog.Warn("bridge request failed", "channel", req.Channel, "error", err)
		res.Error = err.Error()
	} else {
		res.Result = result
	}

	b, err := json.Marshal(res)
	if err != nil {
		b, _ = json.Marshal(reply{ID: req.ID, Error: "encode result: " + err.Error()})
	}
	return "window.figochatDesktop&&window.figochatDesktop.__settle(" + string(b) + ");", nil
}

func (s *Service) dispatch(channel string, args []json.RawMessage) (any, error) {
	switch channel {
	case ChannelGetVersion:
		return s.GetVersion(), nil
	case ChannelGetConfig:
		var key string
		if err := decodeArgs(args, &key); err != nil {
			return nil, err
		}
		return s.GetConfig(key), nil
	case ChannelSetConfig:
		var (
			key   string
			value any
		)
		if err := decodeArgs(args, &key, &value); err != nil {
			return nil, err
		}
		return s.SetConfig(key, value), nil
	case ChannelShowNotification:
		var req types.NotificationRequest
		if err := decodeArgs(args, &req); err != nil {
			return nil, err
		}
		return s.ShowNotification(req), nil
	case ChannelSetBadge:
		var count float64
		if err := decodeArgs(args, &count); err != nil {
			return nil, err
		}
		return s.SetBadge(int(count)), nil
	case ChannelMinimizeToTray:
		return s.MinimizeToTray(), nil
	case ChannelQuitApp:
		s.QuitApp()
		return nil, nil
	case ChannelNavigate:
		var url string
		if err := decodeArgs(args, &url); err != nil {
			return nil, err
		}
		return s.Navigate(url), nil
	case ChannelOpenWindow:
		var url string
		if err := decodeArgs(args, &url); err != nil {
			return nil, err
		}
		s.OpenWindow(url)
		return nil, nil
	}
	return nil, fmt.Errorf("unknown channel %q", channel)
}

// decodeArgs fills dst from the positional arguments. Missing trailing
// arguments leave their targets at the zero value.
func decodeArgs(args []json.RawMessage, dst ...any) error {
	if len(args) > len(dst) {
		return fmt.Errorf("expected at most %d arguments, got %d", len(dst), len(args))
	}
	for i, raw := range args {
		if err := json.Unmarshal(raw, dst[i]); err != nil {
			return fmt.Errorf("argument %d: %w", i, err)
		}
	}
	return nil
}

// EventScript returns the JavaScript that delivers event name with data to
// the listeners registered through window.figochatDesktop.
func EventScript(name string, data any) (string, error) {
	n, err := json.Marshal(name)
	if err != nil {
		return "", fmt.Errorf("marshal event name: %w", err)
	}
	d, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal %s payload: %w", name, err)
	}
	return fmt.Sprintf("window.figochatDesktop&&window.figochatDesktop.__emit(%s,%s);", n, d), nil
}
