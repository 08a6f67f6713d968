package config

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultReloadDelay = 300 * time.Millisecond

// Manager owns config.json. It keeps two views of it: the values stored in
// the file, and the effective values after .env and STOCKINFO_* overrides.
type Manager struct {
	path        string
	reloadDelay time.Duration

	mu        sync.RWMutex
	stored    Config
	effective Config
	lastBytes []byte
}

type Option func(*Manager)

// WithReloadDelay sets how long Watch waits for file events to settle.
func WithReloadDelay(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.reloadDelay = d
		}
	}
}

// NewManager opens the config file at path, creating it with Defaults when
// missing. An empty path means <user config dir>/stockinfo/config.json.
func NewManager(path string, opts ...Option) (*Manager, error) {
	if path == "" {
		var err error
		if path, err = defaultConfigPath(); err != nil {
			return nil, err
		}
	}

	m := &Manager{
		path:        filepath.Clean(path),
		reloadDelay: defaultReloadDelay,
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	data, err := os.ReadFile(m.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := m.store(Defaults()); err != nil {
			return nil, err
		}
		return m, nil
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	}

	stored, err := parseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.path, err)
	}
	if err := stored.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", m.path, err)
	}
	m.adopt(stored, data)
	return m, nil
}

func (m *Manager) Path() string {
	return m.path
}

// Effective returns the file values with environment overrides applied.
func (m *Manager) Effective() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.effective.clone()
}

// Stored returns the values exactly as persisted in the file.
func (m *Manager) Stored() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stored.clone()
}

// Set changes one key in the file. The new file contents must validate on
// their own, without environment overrides.
func (m *Manager) Set(key, value string) error {
	next := m.Stored()
	if err := next.Set(key, value); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	if reflect.DeepEqual(next, m.Stored()) {
		return nil
	}
	return m.store(next)
}

// Watch calls onChange with the new effective config whenever another
// process edits the file. It stops when ctx is done.
func (m *Manager) Watch(ctx context.Context, onChange func(Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Editors replace files by rename, so watch the directory.
	if err := watcher.Add(filepath.Dir(m.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch config dir: %w", err)
	}
	go m.watch(ctx, watcher, onChange)
	return nil
}

func (m *Manager) watch(ctx context.Context, watcher *fsnotify.Watcher, onChange func(Config)) {
	defer watcher.Close()

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(evt.Name) != m.path {
				continue
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			settle = time.After(m.reloadDelay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[config] watcher: %v", err)
		case <-settle:
			settle = nil
			if cfg, changed := m.reload(); changed && onChange != nil {
				onChange(cfg)
			}
		}
	}
}

// reload rereads the file. Our own writes and unchanged bytes are ignored;
// an invalid file keeps the previous config.
func (m *Manager) reload() (Config, bool) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		log.Printf("[config] reload: %v", err)
		return Config{}, false
	}

	m.mu.RLock()
	same := bytes.Equal(data, m.lastBytes)
	m.mu.RUnlock()
	if same {
		return Config{}, false
	}

	stored, err := parseConfig(data)
	if err == nil {
		err = stored.Validate()
	}
	if err != nil {
		log.Printf("[config] keeping previous config: %v", err)
		return Config{}, false
	}

	m.adopt(stored, data)
	return m.Effective(), true
}

// store writes cfg to disk atomically and adopts it.
func (m *Manager) store(cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	data = append(data, '\n')

	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace config: %w", err)
	}

	m.adopt(cfg, data)
	return nil
}

func (m *Manager) adopt(stored Config, data []byte) {
	effective := stored.clone()
	effective.LoadFromEnv()

	m.mu.Lock()
	m.stored = stored
	m.effective = effective
	m.lastBytes = data
	m.mu.Unlock()
}

// parseConfig starts from Defaults so keys missing from older files keep sane values.
func parseConfig(data []byte) (Config, error) {
	cfg := Defaults()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func defaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		if dir, err = os.Getwd(); err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, "stockinfo", "config.json"), nil
}
