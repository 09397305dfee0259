package launch

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/atomicstack/patcher-control/internal/logging/events"
)

// Launcher starts external programs without waiting for them.
type Launcher interface {
	Start(path string, args []string) error
}

// ProcessLauncher starts executables as detached child processes.
type ProcessLauncher struct{}

func (ProcessLauncher) Start(path string, args []string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("no executable configured")
	}
	events.Launch.Executable(path, len(args))
	cmd := exec.Command(path, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", path, err)
	}
	go cmd.Wait()
	return nil
}
