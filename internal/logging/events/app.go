package events

import "github.com/atomicstack/patcher-control/internal/logging"

// Startup is the resolved launch context recorded once per run.
type Startup struct {
	Identity   string            `json:"identity"`
	ConfigPath string            `json:"config_path"`
	WorkDir    string            `json:"workdir"`
	AutoUpdate bool              `json:"auto_update"`
	Flags      map[string]string `json:"flags,omitempty"`
	Args       []string          `json:"args,omitempty"`
}

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(info Startup) {
	logging.Trace("app.start", info)
}

func (AppTracer) Exit(err error) {
	payload := map[string]interface{}{"clean": err == nil}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.exit", payload)
}
