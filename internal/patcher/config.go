package patcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// CacheExtension is appended to the patcher identity to name the cache file.
const CacheExtension = ".dat"

// ConfigExtension names the configuration file looked up next to the patcher.
const ConfigExtension = ".yml"

// Configuration is the patcher configuration file.
type Configuration struct {
	Window   Window     `mapstructure:"window"`
	Play     Executable `mapstructure:"play"`
	Setup    Executable `mapstructure:"setup"`
	Web      Web        `mapstructure:"web"`
	Patching Patching   `mapstructure:"patching"`
}

type Window struct {
	Title     string `mapstructure:"title" validate:"required"`
	Width     int    `mapstructure:"width" validate:"gte=0"`
	Height    int    `mapstructure:"height" validate:"gte=0"`
	Resizable bool   `mapstructure:"resizable"`
}

// Executable describes a program started from the UI.
type Executable struct {
	Path          string   `mapstructure:"path"`
	Arguments     []string `mapstructure:"arguments"`
	ExitOnSuccess *bool    `mapstructure:"exit_on_success"`
}

// ExitOnSuccessOr returns the configured flag or fallback when unset.
func (e Executable) ExitOnSuccessOr(fallback bool) bool {
	if e.ExitOnSuccess == nil {
		return fallback
	}
	return *e.ExitOnSuccess
}

// Configured reports whether an executable path is present.
func (e Executable) Configured() bool {
	return strings.TrimSpace(e.Path) != ""
}

type Web struct {
	IndexURL string `mapstructure:"index_url" validate:"omitempty,url"`
	Links    []Link `mapstructure:"links" validate:"dive"`
}

type Link struct {
	Name string `mapstructure:"name" validate:"required"`
	URL  string `mapstructure:"url" validate:"required,url"`
}

type Patching struct {
	Directory string `mapstructure:"directory" validate:"required"`
}

var validate = validator.New()

// Identity returns the patcher name derived from the running executable.
func Identity() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}
	base := filepath.Base(exe)
	return strings.TrimSuffix(base, filepath.Ext(base)), nil
}

// CacheFileName returns the cache file name for identity.
func CacheFileName(identity string) string {
	return identity + CacheExtension
}

// ConfigFileName returns the default configuration file name for identity.
func ConfigFileName(identity string) string {
	return identity + ConfigExtension
}

// Load reads the configuration from path, or from <identity>.yml inside dir
// when path is empty. Values can be overridden through PATCHER_* variables
// (for example PATCHER_PLAY_PATH).
func Load(path, dir, identity string) (Configuration, error) {
	v := viper.New()
	setDefaults(v, identity)
	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
	} else {
		if dir == "" {
			dir = "."
		}
		v.SetConfigName(identity)
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}
	v.SetEnvPrefix("PATCHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Configuration{}, fmt.Errorf("read configuration: %w", err)
	}
	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return Configuration{}, fmt.Errorf("decode configuration: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, identity string) {
	title := identity
	if title == "" {
		title = "Patcher"
	}
	v.SetDefault("window.title", title)
	v.SetDefault("window.width", 780)
	v.SetDefault("window.height", 580)
	v.SetDefault("window.resizable", false)
	v.SetDefault("patching.directory", "patches")
}

// Validate checks the configuration for values the UI cannot work without.
func Validate(cfg Configuration) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if !cfg.Play.Configured() {
		return errors.New("invalid configuration: play.path is required")
	}
	return nil
}
