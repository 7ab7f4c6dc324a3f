package config

import (
	"errors"
	"reflect"
	"testing"

	"github.com/figochat/desktop/internal/types"
)

func openTemp(t *testing.T, dir string) *Store {
	t.Helper()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestGetReturnsDeclaredDefaults(t *testing.T) {
	s := openTemp(t, t.TempDir())
	defer s.Close()

	for key, want := range Defaults() {
		if got := s.Get(key); !reflect.DeepEqual(got, want) {
			t.Errorf("Get(%q) = %#v, want %#v", key, got, want)
		}
	}

	if got := s.Get("unknown"); got != nil {
		t.Errorf("Get(unknown) = %#v, want nil", got)
	}
}

func TestTypedAccessorDefaults(t *testing.T) {
	s := openTemp(t, t.TempDir())
	defer s.Close()

	if s.Bool(KeyStartMinimized) {
		t.Error("startMinimized should default to false")
	}
	if !s.Bool(KeyMinimizeToTray) {
		t.Error("minimizeToTray should default to true")
	}
	if !s.Bool(KeyNotifications) {
		t.Error("notifications should default to true")
	}
	if s.Bool(KeyAutoLaunch) {
		t.Error("autoLaunch should default to false")
	}
	if got := s.String(KeyServerURL); got != DefaultServerURL {
		t.Errorf("serverUrl = %q, want %q", got, DefaultServerURL)
	}
	if got := s.Bounds(); got.Width != 1200 || got.Height != 800 || got.X != nil || got.Y != nil {
		t.Errorf("Bounds() = %+v, want 1200x800 without position", got)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		want  any
	}{
		{name: "bool", key: KeyNotifications, value: false, want: false},
		{name: "string", key: KeyServerURL, value: "https://chat.example.com", want: "https://chat.example.com"},
		{name: "number", key: "zoom", value: 1.5, want: 1.5},
		{name: "object", key: "custom", value: map[string]any{"a": "b"}, want: map[string]any{"a": "b"}},
	}

	s := openTemp(t, t.TempDir())
	defer s.Close()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if got := s.Get(tt.key); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Get(%q) = %#v, want %#v", tt.key, got, tt.want)
			}
		})
	}
}

func TestValuesSurviveRestart(t *testing.T) {
	dir := t.TempDir()

	s := openTemp(t, dir)
	x, y := 40, 60
	if err := s.SetBounds(types.Bounds{Width: 900, Height: 700, X: &x, Y: &y}); err != nil {
		t.Fatalf("SetBounds: %v", err)
	}
	if err := s.Set(KeyMinimizeToTray, false); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s = openTemp(t, dir)
	defer s.Close()

	b := s.Bounds()
	if b.Width != 900 || b.Height != 700 {
		t.Errorf("Bounds size = %dx%d, want 900x700", b.Width, b.Height)
	}
	if b.X == nil || *b.X != 40 || b.Y == nil || *b.Y != 60 {
		t.Errorf("Bounds position = %v,%v, want 40,60", b.X, b.Y)
	}
	if s.Bool(KeyMinimizeToTray) {
		t.Error("minimizeToTray should still be false after restart")
	}
}

func TestWrongTypeFallsBackToDefault(t *testing.T) {
	s := openTemp(t, t.TempDir())
	defer s.Close()

	if err := s.Set(KeyNotifications, "yes"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !s.Bool(KeyNotifications) {
		t.Error("Bool should fall back to default for non-bool value")
	}
	// The raw value is still returned untouched.
	if got := s.Get(KeyNotifications); got != "yes" {
		t.Errorf("Get = %#v, want %q", got, "yes")
	}
}

func TestSetAfterClose(t *testing.T) {
	s := openTemp(t, t.TempDir())
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Set(KeyAutoLaunch, true); !errors.Is(err, ErrClosed) {
		t.Errorf("Set after Close = %v, want ErrClosed", err)
	}
	if got := s.Get(KeyAutoLaunch); got != false {
		t.Errorf("Get after Close = %#v, want default", got)
	}
}

func TestKeys(t *testing.T) {
	s := openTemp(t, t.TempDir())
	defer s.Close()

	keys, err := s.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("fresh store has keys %v", keys)
	}

	_ = s.Set("b", 1)
	_ = s.Set("a", 2)

	keys, err = s.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if want := []string{"a", "b"}; !reflect.DeepEqual(keys, want) {
		t.Errorf("Keys() = %v, want %v", keys, want)
	}
}
