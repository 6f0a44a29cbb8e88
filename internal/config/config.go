package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/runpad/internal/config/loader"
	"github.com/dshills/runpad/internal/config/notify"
	"github.com/dshills/runpad/internal/config/watcher"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "RUNPAD_"

// Config owns the current settings and reloads them from their sources.
type Config struct {
	mu       sync.RWMutex
	path     string
	settings Settings

	notifier *notify.Notifier
	watcher  *watcher.Watcher
}

// New creates a config holding the defaults.
// path names the config file; empty means defaults and environment only.
func New(path string) *Config {
	return &Config{
		path:     path,
		settings: Default(),
		notifier: notify.New(),
	}
}

// Load builds settings from all layers without touching any Config.
func Load(path string) (Settings, error) {
	merged, err := toMap(Default())
	if err != nil {
		return Settings{}, err
	}

	if path != "" {
		l, err := loader.ForPath(path)
		if err != nil {
			return Settings{}, err
		}
		fileMap, err := l.Load()
		if err != nil {
			return Settings{}, err
		}
		merged = loader.DeepMerge(merged, fileMap)
	}

	envMap, err := loader.NewEnvLoader(EnvPrefix).Load()
	if err != nil {
		return Settings{}, err
	}
	merged = loader.DeepMerge(merged, envMap)

	s, err := fromMap(merged)
	if err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Path returns the config file path.
func (c *Config) Path() string {
	return c.path
}

// Settings returns a copy of the current settings.
func (c *Config) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings.clone()
}

// Notifier returns the change notifier.
func (c *Config) Notifier() *notify.Notifier {
	return c.notifier
}

// Reload re-reads every layer. On failure the current settings are kept.
// Subscribers are told about each changed section, then about the reload.
func (c *Config) Reload() error {
	next, err := Load(c.path)
	if err != nil {
		return err
	}
	c.replace(next, "reload")
	return nil
}

// Update changes the current settings in memory after validating them.
func (c *Config) Update(fn func(*Settings)) error {
	next := c.Settings()
	fn(&next)
	if err := next.Validate(); err != nil {
		return err
	}
	c.replace(next, "update")
	return nil
}

func (c *Config) replace(next Settings, source string) {
	c.mu.Lock()
	prev := c.settings
	c.settings = next
	c.mu.Unlock()

	sections := []struct {
		name      string
		old, next any
	}{
		{"editor", prev.Editor, next.Editor},
		{"view", prev.View, next.View},
		{"run", prev.Run, next.Run},
		{"logging", prev.Logging, next.Logging},
	}
	for _, s := range sections {
		if !reflect.DeepEqual(s.old, s.next) {
			c.notifier.NotifySet(s.name, s.old, s.next, source)
		}
	}
	c.notifier.NotifyReload(source)
}

// Watch reloads the settings whenever the config file changes.
// onError receives reload failures; it may be nil.
func (c *Config) Watch(onError func(error)) error {
	if c.path == "" {
		return fmt.Errorf("watch: no config file")
	}

	w, err := watcher.New(c.path)
	if err != nil {
		return err
	}
	w.OnChange(func(watcher.Event) {
		if err := c.Reload(); err != nil && onError != nil {
			onError(err)
		}
	})
	w.OnError(onError)
	if err := w.Start(); err != nil {
		w.Close()
		return err
	}

	c.mu.Lock()
	old := c.watcher
	c.watcher = w
	c.mu.Unlock()
	if old != nil {
		old.Close()
	}
	return nil
}

// Close stops watching and shuts down the notifier.
func (c *Config) Close() error {
	c.mu.Lock()
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()

	var err error
	if w != nil {
		err = w.Close()
	}
	c.notifier.Close()
	return err
}

// Encode serializes settings in the format implied by path's extension.
func Encode(path string, s Settings) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Marshal(s)
	case ".yaml", ".yml":
		return yaml.Marshal(s)
	default:
		return nil, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
}

// WriteFile writes settings to path in the format implied by its extension.
func WriteFile(path string, s Settings) error {
	data, err := Encode(path, s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (s Settings) clone() Settings {
	s.Run.Args = append([]string(nil), s.Run.Args...)
	return s
}

// toMap converts settings to the nested map form the loaders produce.
func toMap(s Settings) (map[string]any, error) {
	data, err := toml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding defaults: %w", err)
	}
	return loader.ParseTOML("<defaults>", data)
}

// fromMap decodes a merged map back into settings.
func fromMap(m map[string]any) (Settings, error) {
	data, err := toml.Marshal(m)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}
	var s Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}
	return s, nil
}
