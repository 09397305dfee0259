package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/patcher-control/internal/logging"
	"github.com/atomicstack/patcher-control/internal/logging/events"
)

// ErrCanceled is returned by pipelines that stopped on a cancel request.
var ErrCanceled = errors.New("patching was canceled")

const progressInterval = 100 * time.Millisecond

// Reporter schedules effects on the UI event loop. Implementations must be
// safe to call from the worker goroutine.
type Reporter interface {
	DispatchStatus(Status) error
	SetPatchInProgress(bool) error
}

// Operation is the worker's view of a running pipeline step.
type Operation interface {
	// Canceled polls the command queue and reports whether the operation
	// should stop.
	Canceled() bool
	Download(downloaded, total, bytesPerSec uint64)
	Install(installed, total uint64)
}

// Pipeline performs the actual update work.
type Pipeline interface {
	Update(ctx context.Context, op Operation) error
	// Apply applies the patch at path and returns the name shown to the user.
	Apply(ctx context.Context, path string, op Operation) (string, error)
}

// Worker consumes commands in send order and runs one operation at a time.
type Worker struct {
	queue    *CommandQueue
	reporter Reporter
	pipeline Pipeline
	progress *throttle

	pending []Command
	quit    bool
}

// NewWorker wires a worker to its queue, reporter and pipeline.
func NewWorker(queue *CommandQueue, reporter Reporter, pipeline Pipeline) *Worker {
	return &Worker{
		queue:    queue,
		reporter: reporter,
		pipeline: pipeline,
		progress: newThrottle(progressInterval),
	}
}

// Run blocks until Quit is received, the queue is closed or ctx ends. The
// queue is disconnected on return so producers observe ErrDisconnected.
func (w *Worker) Run(ctx context.Context) error {
	defer w.queue.Close()
	for {
		cmd, err := w.next(ctx)
		if err != nil {
			events.Worker.Stop(err.Error())
			return nil
		}
		events.Worker.Recv(CommandName(cmd))
		w.handle(ctx, cmd)
		if w.quit {
			events.Worker.Stop("quit")
			return nil
		}
	}
}

func (w *Worker) next(ctx context.Context) (Command, error) {
	if len(w.pending) > 0 {
		cmd := w.pending[0]
		w.pending = w.pending[1:]
		return cmd, nil
	}
	return w.queue.Recv(ctx)
}

func (w *Worker) handle(ctx context.Context, cmd Command) {
	switch c := cmd.(type) {
	case StartUpdate:
		w.run(ctx, "update", func(op Operation) (Status, error) {
			if err := w.pipeline.Update(ctx, op); err != nil {
				return nil, err
			}
			return Ready{}, nil
		})
	case ApplyPatch:
		w.run(ctx, "apply", func(op Operation) (Status, error) {
			name, err := w.pipeline.Apply(ctx, c.Path, op)
			if err != nil {
				return nil, err
			}
			return PatchApplied{Name: name}, nil
		})
	case CancelUpdate:
		events.Worker.Cancel("idle")
	case Quit:
		w.quit = true
	}
}

// run brackets an operation with the in-progress flag so the UI only sees it
// cleared after the terminal status.
func (w *Worker) run(ctx context.Context, name string, fn func(Operation) (Status, error)) {
	events.Worker.Start(name)
	w.setInProgress(true)
	w.progress.reset()

	op := &operation{worker: w, ctx: ctx}
	status, err := fn(op)
	if err == nil && !IsTerminal(status) {
		err = fmt.Errorf("%s ended without a result", name)
	}
	if err != nil {
		logging.Warnf("%s failed: %v", name, err)
		status = Error{Message: err.Error()}
	}
	events.Worker.Finish(name, err)
	w.dispatch(status)
	w.setInProgress(false)
}

func (w *Worker) dispatch(status Status) {
	if err := w.reporter.DispatchStatus(status); err != nil {
		logging.Warnf("failed to dispatch patching status %s: %v", StatusName(status), err)
	}
}

func (w *Worker) setInProgress(value bool) {
	if err := w.reporter.SetPatchInProgress(value); err != nil {
		logging.Warnf("failed to dispatch patching flag: %v", err)
	}
}

type operation struct {
	worker   *Worker
	ctx      context.Context
	canceled bool
}

func (o *operation) Canceled() bool {
	if o.ctx.Err() != nil {
		return true
	}
	w := o.worker
	for !w.quit {
		cmd, ok := w.queue.TryRecv()
		if !ok {
			break
		}
		switch cmd.(type) {
		case CancelUpdate:
			events.Worker.Cancel("running")
			o.canceled = true
		case Quit:
			w.quit = true
		default:
			events.Worker.Deferred(CommandName(cmd))
			w.pending = append(w.pending, cmd)
		}
	}
	return o.canceled || w.quit
}

func (o *operation) Download(downloaded, total, bytesPerSec uint64) {
	if downloaded < total && !o.worker.progress.allow() {
		return
	}
	o.worker.dispatch(DownloadProgress{Downloaded: downloaded, Total: total, BytesPerSec: bytesPerSec})
}

func (o *operation) Install(installed, total uint64) {
	o.worker.dispatch(InstallProgress{Installed: installed, Total: total})
}
