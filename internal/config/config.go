package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atomicstack/patcher-control/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose    bool
	AutoUpdate bool
}

const (
	envConfigPath   = "PATCHER_CONFIG"
	envWorkDir      = "PATCHER_WORKDIR"
	envWidth        = "PATCHER_WIDTH"
	envHeight       = "PATCHER_HEIGHT"
	envVerbose      = "PATCHER_VERBOSE"
	envNoAutoUpdate = "PATCHER_NO_AUTO_UPDATE"
	envTrace        = "PATCHER_TRACE"
	envLogFile      = "PATCHER_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("patcher", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	configPath := fs.String("config", envOrDefault(env, envConfigPath, ""), "path to the patcher configuration file (defaults to <name>.yml in the working directory)")
	workDir := fs.String("workdir", envOrDefault(env, envWorkDir, ""), "directory holding the configuration, cache and patches (defaults to the current directory)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	noAutoUpdate := fs.Bool("no-auto-update", envOrBool(env, envNoAutoUpdate, false), "do not start an update when the patcher opens")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "log every effect applied to the UI")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			ConfigPath: *configPath,
			WorkDir:    *workDir,
			Width:      *width,
			Height:     *height,
			Verbose:    *verbose,
			AutoUpdate: !*noAutoUpdate,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose:    *verbose,
			AutoUpdate: !*noAutoUpdate,
		},
		Flags: map[string]string{
			"config":       *configPath,
			"workdir":      *workDir,
			"width":        strconv.Itoa(*width),
			"height":       strconv.Itoa(*height),
			"noAutoUpdate": strconv.FormatBool(*noAutoUpdate),
			"trace":        strconv.FormatBool(*trace),
			"verbose":      strconv.FormatBool(*verbose),
			"logFile":      *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.WorkDir == "" {
		return nil
	}
	info, err := os.Stat(cfg.App.WorkDir)
	if err != nil {
		return fmt.Errorf("workdir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("workdir %s is not a directory", cfg.App.WorkDir)
	}
	return nil
}
