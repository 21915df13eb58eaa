package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/futuretea/wordpress-mcp-server/pkg/core/logging"
)

// Store holds the current configuration snapshot. Snapshots are immutable;
// Reload swaps in a new one.
type Store struct {
	mu       sync.RWMutex
	v        *viper.Viper
	current  *StaticConfig
	onReload []func(*StaticConfig)
	onError  []func(error)
}

// NewStore builds a Store backed by v and loads the first snapshot.
func NewStore(v *viper.Viper) (*Store, error) {
	s := &Store{v: v}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStaticStore wraps a fixed configuration. Reload is a no-op.
func NewStaticStore(cfg *StaticConfig) *Store {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Store{current: cfg}
}

// Current returns the active configuration snapshot
func (s *Store) Current() *StaticConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// ConfigFile returns the config file path in use, if any
func (s *Store) ConfigFile() string {
	if s.v == nil {
		return ""
	}
	return s.v.ConfigFileUsed()
}

// OnReload registers fn to be called with every successfully reloaded snapshot
func (s *Store) OnReload(fn func(*StaticConfig)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReload = append(s.onReload, fn)
}

// OnReloadError registers fn to be called whenever a reload is rejected
func (s *Store) OnReloadError(fn func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onError = append(s.onError, fn)
}

// Reload re-reads the config file (if any) and the environment. On failure
// the previous snapshot stays active.
func (s *Store) Reload() error {
	if s.v == nil {
		return nil
	}
	if err := s.reload(); err != nil {
		s.mu.RLock()
		hooks := append([]func(error){}, s.onError...)
		s.mu.RUnlock()
		for _, fn := range hooks {
			fn(err)
		}
		return err
	}
	return nil
}

func (s *Store) reload() error {
	if path := s.v.ConfigFileUsed(); path != "" {
		if err := s.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := FromViper(s.v)
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = cfg
	hooks := append([]func(*StaticConfig){}, s.onReload...)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn(cfg)
	}
	return nil
}

// Watch reloads the configuration whenever the config file changes, until
// ctx is done. The parent directory is watched so editors that replace the
// file on save are handled.
func (s *Store) Watch(ctx context.Context) error {
	path := s.ConfigFile()
	if path == "" {
		return fmt.Errorf("no config file to watch")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to resolve config path %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer w.Close()

		// Debounce bursts of events from a single save
		const debounceWindow = 100 * time.Millisecond
		var timer *time.Timer
		fire := make(chan struct{}, 1)

		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounceWindow, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			case <-fire:
				if err := s.Reload(); err != nil {
					logging.Warn("Config reload failed, keeping previous configuration: %v", err)
					continue
				}
				logging.Info("Configuration reloaded from %s", abs)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logging.Warn("Config watcher error: %v", err)
			}
		}
	}()

	return nil
}
