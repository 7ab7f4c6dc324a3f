package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	legacyFileName   = "config.json"
	migratedFileName = "config.json.migrated"
)

// importLegacy copies the keys of a config.json written by the previous
// desktop client into an empty store, then renames the file so the import
// runs only once.
func (s *Store) importLegacy(dir string) error {
	path := filepath.Join(dir, legacyFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read legacy config: %w", err)
	}

	keys, err := s.Keys()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		// Store already populated, nothing to import
		return nil
	}

	var legacy map[string]json.RawMessage
	if err := json.Unmarshal(data, &legacy); err != nil {
		return fmt.Errorf("unmarshal legacy config: %w", err)
	}

	for key, raw := range legacy {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("unmarshal legacy %s: %w", key, err)
		}
		if err := s.Set(key, v); err != nil {
			return err
		}
	}

	if err := os.Rename(path, filepath.Join(dir, migratedFileName)); err != nil {
		return fmt.Errorf("rename legacy config: %w", err)
	}

	slog.Info("imported legacy config", "keys", len(legacy))
	return nil
}
