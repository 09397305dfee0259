package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atomicstack/patcher-control/internal/app"
	"github.com/atomicstack/patcher-control/internal/config"
	"github.com/atomicstack/patcher-control/internal/logging"
	"github.com/atomicstack/patcher-control/internal/logging/events"
	"github.com/atomicstack/patcher-control/internal/patcher"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	if err := requireTerminal(term.IsTerminal, standardDescriptors()); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	identity, err := patcher.Identity()
	if err != nil {
		fail(err)
	}
	runtimeCfg.App.Identity = identity
	if runtimeCfg.App.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			fail(fmt.Errorf("resolve working directory: %w", err))
		}
		runtimeCfg.App.WorkDir = wd
	}
	events.App.Start(startupInfo(runtimeCfg))

	err = app.Run(runtimeCfg.App)
	events.App.Exit(err)
	if err != nil {
		fail(err)
	}
}

func fail(err error) {
	logging.Error(err)
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

type descriptor struct {
	name string
	fd   int
}

func standardDescriptors() []descriptor {
	return []descriptor{
		{"stdin", int(os.Stdin.Fd())},
		{"stdout", int(os.Stdout.Fd())},
	}
}

// requireTerminal fails unless every descriptor is a terminal. The UI reads
// keys from stdin and draws on stdout.
func requireTerminal(isTerminal func(fd int) bool, fds []descriptor) error {
	var missing []string
	for _, d := range fds {
		if d.fd < 0 || !isTerminal(d.fd) {
			missing = append(missing, d.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("the patcher needs an interactive terminal (%s not a tty)", strings.Join(missing, ", "))
	}
	return nil
}

// startupInfo expects cfg.App.Identity and cfg.App.WorkDir to be resolved.
func startupInfo(cfg config.Config) events.Startup {
	configPath := cfg.App.ConfigPath
	if configPath == "" {
		configPath = filepath.Join(cfg.App.WorkDir, patcher.ConfigFileName(cfg.App.Identity))
	}
	flags := make(map[string]string, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	return events.Startup{
		Identity:   cfg.App.Identity,
		ConfigPath: configPath,
		WorkDir:    cfg.App.WorkDir,
		AutoUpdate: cfg.App.AutoUpdate,
		Flags:      flags,
		Args:       cfg.Args,
	}
}
