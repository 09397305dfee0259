package launch

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atomicstack/patcher-control/internal/logging/events"
)

// URLOpener hands a URL to the platform handler.
type URLOpener interface {
	Open(url string) error
}

// ExitStatusError reports a handler that ran but exited unsuccessfully.
type ExitStatusError struct {
	Code int
}

func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("command returned non-zero exit status %d", e.Code)
}

// SystemOpener uses xdg-open, open or the Windows URL protocol handler.
type SystemOpener struct{}

func (SystemOpener) Open(url string) error {
	if strings.TrimSpace(url) == "" {
		return fmt.Errorf("empty url")
	}
	events.Launch.URL(url)
	name, args := urlCommand(runtime.GOOS, url)
	err := exec.Command(name, args...).Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitStatusError{Code: exitErr.ExitCode()}
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

func urlCommand(goos, url string) (string, []string) {
	switch goos {
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	case "darwin":
		return "open", []string{url}
	default:
		return "xdg-open", []string{url}
	}
}
