package events

import "github.com/atomicstack/patcher-control/internal/logging"

type WorkerTracer struct{}

var Worker = WorkerTracer{}

func (WorkerTracer) Recv(command string) {
	logging.Trace("worker.recv", map[string]interface{}{"command": command})
}

func (WorkerTracer) Deferred(command string) {
	logging.Trace("worker.deferred", map[string]interface{}{"command": command})
}

func (WorkerTracer) Cancel(operation string) {
	logging.Trace("worker.cancel", map[string]interface{}{"operation": operation})
}

func (WorkerTracer) Start(operation string) {
	logging.Trace("worker.start", map[string]interface{}{"operation": operation})
}

func (WorkerTracer) Finish(operation string, err error) {
	payload := map[string]interface{}{"operation": operation}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("worker.finish", payload)
}

func (WorkerTracer) Stop(reason string) {
	logging.Trace("worker.stop", map[string]interface{}{"reason": reason})
}
