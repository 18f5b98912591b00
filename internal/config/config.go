package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/san-kum/aocviz/internal/style"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS          = 30.0
	DefaultHistoryDepth = 1000
	DefaultImageWidth   = 800
	DefaultAspectRatio  = 1.0

	appName  = "aocviz"
	fileName = "config.yaml"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	FPS          float64       `yaml:"fps"`
	Interactive  bool          `yaml:"interactive"`
	HistoryDepth int           `yaml:"history_depth"`
	Image        ImageConfig   `yaml:"image"`
	Styles       []StyleConfig `yaml:"styles,omitempty"`
}

type ImageConfig struct {
	// Output is the animation path; empty means print to the terminal.
	Output      string  `yaml:"output,omitempty"`
	Width       int     `yaml:"width"`
	AspectRatio float64 `yaml:"aspect_ratio"`
	Jitter      float64 `yaml:"jitter"`
	Dither      bool    `yaml:"dither"`
}

// StyleConfig overrides the look of one character. Color is "#rrggbb".
type StyleConfig struct {
	Char  string `yaml:"char"`
	Bold  bool   `yaml:"bold"`
	Color string `yaml:"color"`
}

func DefaultConfig() *Config {
	return &Config{
		FPS:          DefaultFPS,
		HistoryDepth: DefaultHistoryDepth,
		Image: ImageConfig{
			Width:       DefaultImageWidth,
			AspectRatio: DefaultAspectRatio,
		},
	}
}

// DefaultPath returns the config file location under the XDG config home.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, fileName)
}

// Load reads path on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads the file at DefaultPath, falling back to the defaults
// when it does not exist.
func LoadDefault() (*Config, string, error) {
	path := DefaultPath()
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), "", nil
	}
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps %v must be positive", ErrInvalidConfig, c.FPS)
	case c.HistoryDepth < 1 || c.HistoryDepth > DefaultHistoryDepth:
		return fmt.Errorf("%w: history_depth %d not in [1, %d]", ErrInvalidConfig, c.HistoryDepth, DefaultHistoryDepth)
	case c.Image.Width <= 0:
		return fmt.Errorf("%w: image.width %d must be positive", ErrInvalidConfig, c.Image.Width)
	case c.Image.AspectRatio <= 0:
		return fmt.Errorf("%w: image.aspect_ratio %v must be positive", ErrInvalidConfig, c.Image.AspectRatio)
	case c.Image.Jitter < 0:
		return fmt.Errorf("%w: image.jitter %v is negative", ErrInvalidConfig, c.Image.Jitter)
	}
	_, err := c.StyleOptions()
	return err
}

// StyleOptions converts the configured styles in file order.
func (c *Config) StyleOptions() ([]style.Option, error) {
	opts := make([]style.Option, 0, len(c.Styles))
	for i, s := range c.Styles {
		r := []rune(s.Char)
		if len(r) != 1 {
			return nil, fmt.Errorf("%w: styles[%d].char %q must be one character", ErrInvalidConfig, i, s.Char)
		}
		color, err := style.ParseHex(s.Color)
		if err != nil {
			return nil, fmt.Errorf("%w: styles[%d].color: %v", ErrInvalidConfig, i, err)
		}
		opts = append(opts, style.Option{Char: r[0], Bold: s.Bold, Color: color})
	}
	return opts, nil
}
