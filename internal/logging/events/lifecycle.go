package events

import "github.com/atomicstack/patcher-control/internal/logging"

type LifecycleTracer struct{}

var Lifecycle = LifecycleTracer{}

func (LifecycleTracer) Teardown(err error) {
	payload := map[string]interface{}{"sent": err == nil}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("lifecycle.teardown", payload)
}

func (LifecycleTracer) ForceStop(grace string) {
	logging.Trace("lifecycle.force-stop", map[string]interface{}{"grace": grace})
}
