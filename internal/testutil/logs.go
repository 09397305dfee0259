package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/patcher-control/internal/logging"
)

// LogCapture points the shared logger at a temporary file for the duration
// of a test. Tests using it must not run in parallel.
type LogCapture struct {
	t    *testing.T
	path string
}

// CaptureLog redirects logging into t.TempDir and restores the default on
// cleanup.
func CaptureLog(t *testing.T) *LogCapture {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patcher.log")
	logging.Configure(path)
	t.Cleanup(func() { logging.Configure("") })
	return &LogCapture{t: t, path: path}
}

// Lines returns every non-empty line written so far.
func (c *LogCapture) Lines() []string {
	c.t.Helper()
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		c.t.Fatalf("read log: %v", err)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Count returns how many plain lines were written at level.
func (c *LogCapture) Count(level string) int {
	c.t.Helper()
	marker := " " + level + " "
	n := 0
	for _, line := range c.Lines() {
		if strings.Contains(line, marker) {
			n++
		}
	}
	return n
}

// Contains reports whether any line includes substr.
func (c *LogCapture) Contains(substr string) bool {
	c.t.Helper()
	for _, line := range c.Lines() {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
