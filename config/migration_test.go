package config

import (
	"os"
	"path/filepath"
	"testing"
)

const legacyJSON = `{
  "windowBounds": {"width": 1000, "height": 720, "x": 10, "y": 20},
  "minimizeToTray": false,
  "serverUrl": "https://staging.figochat.example",
  "notifications": false
}`

func TestImportLegacyConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, legacyFileName), []byte(legacyJSON), 0644); err != nil {
		t.Fatalf("write legacy: %v", err)
	}

	s := openTemp(t, dir)
	defer s.Close()

	if got := s.String(KeyServerURL); got != "https://staging.figochat.example" {
		t.Errorf("serverUrl = %q", got)
	}
	if s.Bool(KeyMinimizeToTray) {
		t.Error("minimizeToTray should be imported as false")
	}
	if s.Bool(KeyNotifications) {
		t.Error("notifications should be imported as false")
	}
	b := s.Bounds()
	if b.Width != 1000 || b.Height != 720 || b.X == nil || *b.X != 10 {
		t.Errorf("Bounds = %+v", b)
	}
	// Keys not in the legacy file keep their defaults.
	if s.Bool(KeyAutoLaunch) {
		t.Error("autoLaunch should keep its default")
	}

	if _, err := os.Stat(filepath.Join(dir, legacyFileName)); !os.IsNotExist(err) {
		t.Errorf("legacy file should be renamed, stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, migratedFileName)); err != nil {
		t.Errorf("migrated file missing: %v", err)
	}
}

func TestImportLegacySkipsPopulatedStore(t *testing.T) {
	dir := t.TempDir()

	s := openTemp(t, dir)
	if err := s.Set(KeyServerURL, "https://current.example"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	s.Close()

	if err := os.WriteFile(filepath.Join(dir, legacyFileName), []byte(legacyJSON), 0644); err != nil {
		t.Fatalf("write legacy: %v", err)
	}

	s = openTemp(t, dir)
	defer s.Close()

	if got := s.String(KeyServerURL); got != "https://current.example" {
		t.Errorf("serverUrl = %q, legacy import should not overwrite", got)
	}
	if _, err := os.Stat(filepath.Join(dir, legacyFileName)); err != nil {
		t.Errorf("legacy file should be left alone: %v", err)
	}
}

func TestImportLegacyInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, legacyFileName), []byte("{not json"), 0644); err != nil {
		t.Fatalf("write legacy: %v", err)
	}

	s := openTemp(t, dir)
	defer s.Close()

	if got := s.String(KeyServerURL); got != DefaultServerURL {
		t.Errorf("serverUrl = %q, want default", got)
	}
}
