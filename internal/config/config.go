package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config represents the optional sparkline configuration file.
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	// Chart holds chart attributes by name. Values may be strings, numbers,
	// booleans or arrays of numbers.
	Chart map[string]any `toml:"chart"`
	Theme ThemeConfig    `toml:"theme"`
}

// DefaultsConfig holds persistent flag defaults.
type DefaultsConfig struct {
	Width    *int     `toml:"width"`
	Height   *int     `toml:"height"`
	Scale    *float64 `toml:"scale"`
	Format   *string  `toml:"format"`
	Interval *string  `toml:"interval"`
	Capacity *int     `toml:"capacity"`
}

// ThemeConfig holds optional color overrides for the terminal views.
type ThemeConfig struct {
	Green  *string `toml:"green"`
	Blue   *string `toml:"blue"`
	Yellow *string `toml:"yellow"`
	Red    *string `toml:"red"`
	Muted  *string `toml:"muted"`
	Dim    *string `toml:"dim"`
	Bright *string `toml:"bright"`
}

// Path returns the resolved path to the config file.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "sparkline", "config.toml")
}

// Load reads the config file from the XDG path. Returns a zero Config
// (no error) if the file does not exist. Config is always optional.
func Load() (Config, error) {
	path := Path()
	if path == "" {
		return Config{}, nil
	}
	return LoadFile(path)
}

// LoadFile reads the config file at path. A missing file yields a zero
// Config.
func LoadFile(path string) (Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, err
	}
	return cfg, nil
}

// ChartAttributes flattens the [chart] table into attribute strings.
// Arrays become comma-separated lists.
func (c Config) ChartAttributes() map[string]string {
	out := make(map[string]string, len(c.Chart))
	for k, v := range c.Chart {
		out[k] = attrString(v)
	}
	return out
}

func attrString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = attrString(e)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(t)
	}
}

// ParseSet parses repeated key=value flag values into an attribute map.
// Later values win.
func ParseSet(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("invalid --set %q: want key=value", p)
		}
		out[strings.TrimSpace(k)] = v
	}
	return out, nil
}

// Merge returns the union of attribute maps, later maps overriding earlier
// ones. Keys are compared case-insensitively.
func Merge(maps ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			out[strings.ToLower(strings.TrimSpace(k))] = v
		}
	}
	return out
}
