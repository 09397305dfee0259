package events

import "github.com/atomicstack/patcher-control/internal/logging"

type LaunchTracer struct{}

var Launch = LaunchTracer{}

// Executable records a process launch. Arguments are not logged since the
// login flow passes credentials through them.
func (LaunchTracer) Executable(path string, argc int) {
	logging.Trace("launch.executable", map[string]interface{}{"path": path, "argc": argc})
}

func (LaunchTracer) URL(url string) {
	logging.Trace("launch.url", map[string]interface{}{"url": url})
}

func (LaunchTracer) Dialog(tool string) {
	logging.Trace("launch.dialog", map[string]interface{}{"tool": tool})
}
