package backend

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrDisconnected is returned by Send once the worker stopped receiving.
	ErrDisconnected = errors.New("worker disconnected")
	// ErrQueueFull is returned by Send when the buffer has no free slot.
	ErrQueueFull = errors.New("command queue full")
)

const defaultQueueSize = 32

// Sender is the producer side of the command queue.
type Sender interface {
	Send(Command) error
}

// CommandQueue carries commands from any number of producers to the single
// worker. Send never blocks; Recv blocks until a command arrives.
type CommandQueue struct {
	mu     sync.Mutex
	closed bool

	commands chan Command
	done     chan struct{}
}

// NewCommandQueue creates a queue holding up to size pending commands.
func NewCommandQueue(size int) *CommandQueue {
	if size <= 0 {
		size = defaultQueueSize
	}
	return &CommandQueue{
		commands: make(chan Command, size),
		done:     make(chan struct{}),
	}
}

// Send enqueues cmd without blocking.
func (q *CommandQueue) Send(cmd Command) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrDisconnected
	}
	select {
	case q.commands <- cmd:
		return nil
	default:
		return ErrQueueFull
	}
}

// Recv waits for the next command in send order.
func (q *CommandQueue) Recv(ctx context.Context) (Command, error) {
	select {
	case cmd := <-q.commands:
		return cmd, nil
	case <-q.done:
		return nil, ErrDisconnected
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TryRecv returns the next command if one is pending.
func (q *CommandQueue) TryRecv() (Command, bool) {
	select {
	case cmd := <-q.commands:
		return cmd, true
	default:
		return nil, false
	}
}

// Close disconnects the consumer. Later sends fail with ErrDisconnected and
// pending commands are discarded.
func (q *CommandQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.done)
	for {
		select {
		case <-q.commands:
		default:
			return
		}
	}
}
