// Package config loads fileview settings from a TOML file and FILEVIEW_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds application configuration.
type Config struct {
	Tick  time.Duration `mapstructure:"tick"`
	Mouse bool          `mapstructure:"mouse"`
	Focus FocusConfig   `mapstructure:"focus"`
	Keys  KeysConfig    `mapstructure:"keys"`
	Log   LogConfig     `mapstructure:"log"`
	Trace TraceConfig   `mapstructure:"trace"`
}

// FocusConfig lists the focusable regions. The first navigation region has
// focus at startup.
type FocusConfig struct {
	Navigation []string `mapstructure:"navigation"`
	Entry      []string `mapstructure:"entry"`
}

// KeysConfig holds key names in Bubble Tea notation ("ctrl+n", "left", "enter").
// Jumps maps a navigation region to the keys that focus it; an empty list
// removes a default jump.
type KeysConfig struct {
	Quit      []string            `mapstructure:"quit"`
	Entry     []string            `mapstructure:"entry"`
	Commit    []string            `mapstructure:"commit"`
	Backspace []string            `mapstructure:"backspace"`
	Paste     []string            `mapstructure:"paste"`
	Jumps     map[string][]string `mapstructure:"jumps"`
}

// LogConfig controls the log file. The terminal belongs to the UI, so logs
// never go to stdout or stderr.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// TraceConfig enables OTLP/HTTP trace export when Endpoint is set. Endpoint
// defaults to OTEL_EXPORTER_OTLP_ENDPOINT.
type TraceConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Service  string `mapstructure:"service"`
	Insecure bool   `mapstructure:"insecure"`
}

// Load reads configuration from file and env. The file is FILEVIEW_CONFIG if
// set, otherwise config.toml under the user config directory; a missing file
// is not an error. Env var overrides use prefix FILEVIEW_.
func Load() (Config, error) {
	return LoadFile(os.Getenv("FILEVIEW_CONFIG"))
}

// LoadFile is Load with an explicit config file path. An empty path searches
// the default location.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(defaultDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FILEVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Default returns the built-in configuration without reading files or env.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tick", "16ms")
	v.SetDefault("mouse", true)
	v.SetDefault("focus.navigation", []string{"files", "view"})
	v.SetDefault("focus.entry", []string{"entry"})
	v.SetDefault("keys.quit", []string{"ctrl+q", "ctrl+c"})
	v.SetDefault("keys.entry", []string{"ctrl+n"})
	v.SetDefault("keys.commit", []string{"enter"})
	v.SetDefault("keys.backspace", []string{"backspace", "ctrl+h"})
	v.SetDefault("keys.paste", []string{"ctrl+v"})
	v.SetDefault("keys.jumps", map[string]any{
		"files": []string{"left"},
		"view":  []string{"right"},
	})
	v.SetDefault("log.file", filepath.Join(os.TempDir(), "fileview.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("trace.endpoint", os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	v.SetDefault("trace.service", "fileview")
	v.SetDefault("trace.insecure", true)
}

func defaultDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "fileview")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "fileview")
}

// Validate checks the settings the session cannot run without.
func (c Config) Validate() error {
	if c.Tick <= 0 {
		return fmt.Errorf("%w: tick must be positive, got %v", ErrInvalid, c.Tick)
	}
	if len(c.Focus.Navigation) == 0 {
		return fmt.Errorf("%w: focus.navigation is empty", ErrInvalid)
	}
	if len(c.Focus.Entry) == 0 {
		return fmt.Errorf("%w: focus.entry is empty", ErrInvalid)
	}
	if len(c.Keys.Quit) == 0 {
		return fmt.Errorf("%w: keys.quit is empty, the program could not be exited", ErrInvalid)
	}
	nav := make(map[string]bool, len(c.Focus.Navigation))
	for _, r := range c.Focus.Navigation {
		nav[r] = true
	}
	for region, keys := range c.Keys.Jumps {
		if len(keys) > 0 && !nav[region] {
			return fmt.Errorf("%w: keys.jumps.%s is not a navigation region", ErrInvalid, region)
		}
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}
