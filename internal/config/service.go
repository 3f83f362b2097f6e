package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"clock-overlay/internal/hotkey"
)

const (
	appDirName     = "clockor"
	configFileName = "config.toml"
)

// Service manages the applied configuration and its on-disk document.
// The applied value is replaced wholesale; callers never mutate it in place.
type Service struct {
	mu       sync.RWMutex
	config   Config
	filePath string
}

// New resolves the per-user config path, loads the existing document (or
// writes the defaults if none exists) and returns the service. A corrupt or
// unreadable file is not an error: defaults are used and the file is
// rewritten on the next save.
func New() (*Service, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user config directory: %w", err)
	}

	dir := filepath.Join(base, appDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	service := &Service{
		filePath: filepath.Join(dir, configFileName),
		config:   Default(),
	}

	if _, err := os.Stat(service.filePath); err == nil {
		service.config = LoadFrom(service.filePath)
	} else {
		if err := service.Save(); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
	}

	return service, nil
}

// NewAt builds a service bound to an explicit file path. Used by tests.
func NewAt(path string) *Service {
	return &Service{filePath: path, config: Default()}
}

// Get returns the applied configuration.
func (s *Service) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Replace swaps the applied configuration atomically.
func (s *Service) Replace(cfg Config) {
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
}

// Dir returns the directory holding the configuration document.
func (s *Service) Dir() string {
	return filepath.Dir(s.filePath)
}

// Path returns the full path to the configuration document.
func (s *Service) Path() string {
	return s.filePath
}

// Load re-reads the document from disk into the applied configuration.
func (s *Service) Load() {
	cfg := LoadFrom(s.filePath)
	s.Replace(cfg)
}

// Save writes the applied configuration to disk.
func (s *Service) Save() error {
	return SaveTo(s.filePath, s.Get())
}

// LoadFrom reads a configuration document. It never fails: a missing or
// corrupt file yields defaults, out-of-range fields are clamped, and legacy
// font size names are translated.
func LoadFrom(path string) Config {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	// font_size is decoded loosely: old documents stored "small"/"medium"/
	// "large" where current ones store a pixel count.
	var raw struct {
		Position         *Position  `toml:"position"`
		Format24h        *bool      `toml:"format_24h"`
		ShowSeconds      *bool      `toml:"show_seconds"`
		FontSize         any        `toml:"font_size"`
		Opacity          *int       `toml:"opacity"`
		Hotkey           *string    `toml:"hotkey"`
		StartWithWindows *bool      `toml:"start_with_windows"`
		TextStyle        *TextStyle `toml:"text_style"`
		TextColor        *RGBA      `toml:"text_color"`
		AccentColor      *RGBA      `toml:"accent_color"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return cfg
	}

	if raw.Position != nil {
		cfg.Position = *raw.Position
	}
	if raw.Format24h != nil {
		cfg.Format24h = *raw.Format24h
	}
	if raw.ShowSeconds != nil {
		cfg.ShowSeconds = *raw.ShowSeconds
	}
	if size, ok := decodeFontSize(raw.FontSize); ok {
		cfg.FontSize = size
	}
	if raw.Opacity != nil {
		cfg.Opacity = *raw.Opacity
	}
	if raw.Hotkey != nil {
		cfg.Hotkey = *raw.Hotkey
	}
	if raw.StartWithWindows != nil {
		cfg.StartWithWindows = *raw.StartWithWindows
	}
	if raw.TextStyle != nil {
		cfg.TextStyle = *raw.TextStyle
	}
	if raw.TextColor != nil {
		cfg.TextColor = *raw.TextColor
	}
	if raw.AccentColor != nil {
		cfg.AccentColor = *raw.AccentColor
	}

	return cfg.Normalize()
}

// SaveTo writes cfg as a TOML document, creating parent directories.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func decodeFontSize(v any) (int, bool) {
	switch n := v.(type) {
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		switch n {
		case "small":
			return 16, true
		case "medium":
			return 22, true
		case "large":
			return 30, true
		}
	}
	return 0, false
}

func validateHotkey(s string) error {
	_, err := hotkey.ParseCombo(s)
	return err
}
