// Package config handles the persisted application configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/figochat/desktop/internal/types"
)

const (
	appName  = "FigoChat"
	storeDir = "store"

	keyPrefix = "config/"
)

// Keys with declared defaults.
const (
	KeyWindowBounds   = "windowBounds"
	KeyStartMinimized = "startMinimized"
	KeyMinimizeToTray = "minimizeToTray"
	KeyAutoLaunch     = "autoLaunch"
	KeyNotifications  = "notifications"
	KeyServerURL      = "serverUrl"
)

// DefaultServerURL is the production chat server.
const DefaultServerURL = "https://figochat.manus.space"

// ErrClosed is returned by Set after Close.
var ErrClosed = errors.New("config store closed")

// Defaults returns a fresh copy of the declared defaults.
func Defaults() map[string]any {
	return map[string]any{
		KeyWindowBounds:   types.DefaultBounds(),
		KeyStartMinimized: false,
		KeyMinimizeToTray: true,
		KeyAutoLaunch:     false,
		KeyNotifications:  true,
		KeyServerURL:      DefaultServerURL,
	}
}

// Store is a persisted key-value mapping with declared defaults.
// Every Set is synced to disk before it returns.
type Store struct {
	mu       sync.RWMutex
	db       *badger.DB
	defaults map[string]any
	closed   bool
}

// Dir returns the per-user data directory of the application.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(dir, appName), nil
}

// OpenDefault opens the store in the per-user data directory.
func OpenDefault() (*Store, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return Open(dir)
}

// Open opens (or creates) the store under dir. A legacy config.json in dir
// is imported the first time the store is created.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	opts := badger.DefaultOptions(filepath.Join(dir, storeDir)).
		WithSyncWrites(true).
		WithMemTableSize(8 << 20).
		WithValueLogFileSize(16 << 20).
		WithLogger(badgerLogger{slog.Default().With("component", "badger")})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	s := &Store{db: db, defaults: Defaults()}

	if err := s.importLegacy(dir); err != nil {
		// A broken legacy file should not keep the app from starting.
		slog.Warn("import legacy config", "error", err)
	}

	return s, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Default returns the declared default for key, or nil.
func (s *Store) Default(key string) any {
	return s.defaults[key]
}

// Get returns the stored value for key, or its declared default if unset.
// Stored values are decoded as generic JSON (numbers become float64).
func (s *Store) Get(key string) any {
	var v any
	found, err := s.load(key, &v)
	if err != nil {
		slog.Warn("read config", "key", key, "error", err)
	}
	if !found || err != nil {
		return s.Default(key)
	}
	return v
}

// Set stores value under key. Values are not validated.
func (s *Store) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+key), data)
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Bool returns a boolean setting, falling back to the default when the
// stored value is missing or not a boolean.
func (s *Store) Bool(key string) bool {
	var v bool
	if found, err := s.load(key, &v); found && err == nil {
		return v
	}
	def, _ := s.Default(key).(bool)
	return def
}

// String returns a string setting with the same fallback rules as Bool.
func (s *Store) String(key string) string {
	var v string
	if found, err := s.load(key, &v); found && err == nil {
		return v
	}
	def, _ := s.Default(key).(string)
	return def
}

// Bounds returns the persisted window bounds.
func (s *Store) Bounds() types.Bounds {
	var b types.Bounds
	if found, err := s.load(KeyWindowBounds, &b); found && err == nil && b.Width > 0 && b.Height > 0 {
		return b
	}
	return types.DefaultBounds()
}

// SetBounds persists the window bounds.
func (s *Store) SetBounds(b types.Bounds) error {
	return s.Set(KeyWindowBounds, b)
}

// Keys returns every key that has a stored value, sorted.
func (s *Store) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().Key()[len(keyPrefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// load decodes the stored value for key into dst.
func (s *Store) load(key string, dst any) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return false, ErrClosed
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return true, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}
