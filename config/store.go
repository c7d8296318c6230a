package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// Source is the read side of the settings store consumed by the HUD
type Source interface {
	Get() Settings
}

// Store holds the current settings snapshot
// Readers get a copy; writers replace the whole snapshot
type Store struct {
	mu       sync.RWMutex
	settings Settings
}

// NewStore creates a store seeded with s
func NewStore(s Settings) *Store {
	s.normalize()
	return &Store{settings: s}
}

// Get returns the current settings snapshot
func (st *Store) Get() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.settings
}

// Set replaces the settings snapshot
func (st *Store) Set(s Settings) {
	s.normalize()
	st.mu.Lock()
	st.settings = s
	st.mu.Unlock()
}

// Update applies fn to a copy of the current settings and stores the result
func (st *Store) Update(fn func(*Settings)) Settings {
	st.mu.Lock()
	defer st.mu.Unlock()
	s := st.settings
	fn(&s)
	s.normalize()
	st.settings = s
	return s
}

// Decode reads a settings file on top of the defaults
func Decode(path string) (Settings, error) {
	s := Default()
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return Settings{}, errors.Wrapf(err, "decode settings %s", path)
	}
	s.normalize()
	return s, nil
}

// Load decodes path into the store
// A missing file keeps the current snapshot and is not an error
func (st *Store) Load(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	s, err := Decode(path)
	if err != nil {
		return err
	}
	st.Set(s)
	return nil
}

// Watch reloads path on change until ctx is done, calling onChange with each new snapshot
// The parent directory is watched so editor rename-replace saves are seen
func (st *Store) Watch(ctx context.Context, path string, onChange func(Settings)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create settings watcher")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return errors.Wrapf(err, "resolve %s", path)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return errors.Wrapf(err, "watch %s", filepath.Dir(abs))
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if err := st.Load(abs); err != nil {
					slog.Error("settings reload failed", "path", abs, "error", err)
					continue
				}
				if onChange != nil {
					onChange(st.Get())
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Error("settings watcher error", "error", err)
			}
		}
	}()
	return nil
}
