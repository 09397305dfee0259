package events

import "github.com/atomicstack/patcher-control/internal/logging"

type RequestTracer struct{}

type dropReason string

const (
	DropMalformed       dropReason = "malformed"
	DropUnknownFunction dropReason = "unknown-function"
	DropInvalidParams   dropReason = "invalid-parameters"
)

var Request = RequestTracer{}

// Received records an inbound request by size only; JSON requests may carry
// credentials.
func (RequestTracer) Received(id string, size int) {
	logging.Trace("request.received", map[string]interface{}{"id": id, "size": size})
}

func (RequestTracer) Action(id, action string) {
	logging.Trace("request.action", map[string]interface{}{"id": id, "action": action})
}

func (RequestTracer) Function(id, function string) {
	logging.Trace("request.function", map[string]interface{}{"id": id, "function": function})
}

func (RequestTracer) Dropped(id string, reason dropReason) {
	logging.Trace("request.dropped", map[string]interface{}{"id": id, "reason": string(reason)})
}

func (RequestTracer) InProgress(id, action string) {
	logging.Trace("request.in-progress", map[string]interface{}{"id": id, "action": action})
}

func (RequestTracer) Sent(id, command string) {
	logging.Trace("request.sent", map[string]interface{}{"id": id, "command": command})
}
