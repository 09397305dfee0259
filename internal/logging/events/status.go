package events

import "github.com/atomicstack/patcher-control/internal/logging"

type StatusTracer struct{}

var Status = StatusTracer{}

func (StatusTracer) Schedule(effect string) {
	logging.Trace("status.schedule", map[string]interface{}{"effect": effect})
}

func (StatusTracer) Dropped(effect string, err error) {
	logging.Trace("status.dropped", map[string]interface{}{"effect": effect, "error": err.Error()})
}

func (StatusTracer) Apply(effect string) {
	logging.Trace("status.apply", map[string]interface{}{"effect": effect})
}
