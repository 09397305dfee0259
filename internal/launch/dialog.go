package launch

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atomicstack/patcher-control/internal/logging/events"
)

// ErrNoDialog means no native file dialog helper is installed.
var ErrNoDialog = errors.New("no file dialog available")

// FileSelector asks the user for a patch file. An empty path with a nil
// error means the user dismissed the prompt.
type FileSelector interface {
	SelectPatch(ctx context.Context) (string, error)
}

// DialogSelector shows a native file dialog through zenity, kdialog or
// osascript, whichever is available first.
type DialogSelector struct {
	lookPath func(string) (string, error)
	goos     string
}

func NewDialogSelector() *DialogSelector {
	return &DialogSelector{lookPath: exec.LookPath, goos: runtime.GOOS}
}

func (d *DialogSelector) SelectPatch(ctx context.Context) (string, error) {
	name, args, ok := d.command()
	if !ok {
		return "", ErrNoDialog
	}
	events.Launch.Dialog(name)
	out, err := exec.CommandContext(ctx, name, args...).Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (d *DialogSelector) command() (string, []string, bool) {
	if d.goos == "darwin" {
		if _, err := d.lookPath("osascript"); err == nil {
			script := `POSIX path of (choose file with prompt "Select a file" of type {"thor"})`
			return "osascript", []string{"-e", script}, true
		}
		return "", nil, false
	}
	if _, err := d.lookPath("zenity"); err == nil {
		return "zenity", []string{"--file-selection", "--title=Select a file", "--file-filter=Patch Files (*.thor) | *.thor"}, true
	}
	if _, err := d.lookPath("kdialog"); err == nil {
		return "kdialog", []string{"--getopenfilename", ".", "*.thor|Patch Files (*.thor)"}, true
	}
	return "", nil, false
}
