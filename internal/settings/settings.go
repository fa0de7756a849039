// Package settings manages user preferences persisted as a JSON file
// next to the history database.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	DefaultHotkey          = "CmdOrCtrl+Shift+Space"
	DefaultAutoLockMinutes = 5
)

type Settings struct {
	Hotkey          string `json:"hotkey"`
	AutoLockMinutes int    `json:"auto_lock_minutes"`
}

func Defaults() Settings {
	return Settings{
		Hotkey:          DefaultHotkey,
		AutoLockMinutes: DefaultAutoLockMinutes,
	}
}

// Manager loads settings on startup and writes the file back on every
// update. A missing file yields defaults.
type Manager struct {
	path string

	mu      sync.RWMutex
	current Settings
}

func NewManager(path string) (*Manager, error) {
	m := &Manager{path: path, current: Defaults()}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return m, nil
		}
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	s := Defaults()
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	s = normalize(s)

	m.current = s
	return m, nil
}

func normalize(s Settings) Settings {
	if s.Hotkey == "" {
		s.Hotkey = DefaultHotkey
	}
	if s.AutoLockMinutes < 0 {
		s.AutoLockMinutes = 0
	}
	return s
}

func (m *Manager) Get() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *Manager) Update(s Settings) error {
	s = normalize(s)

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	if dir := filepath.Dir(m.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating settings dir: %w", err)
		}
	}
	if err := os.WriteFile(m.path, data, 0o600); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}

	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
	return nil
}

// AutoLock returns the configured inactivity timeout. Zero disables
// auto-locking.
func (m *Manager) AutoLock() time.Duration {
	return time.Duration(m.Get().AutoLockMinutes) * time.Minute
}
