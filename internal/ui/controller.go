package ui

import (
	"errors"
	"fmt"
	"sync"

	"github.com/atomicstack/patcher-control/internal/backend"
	"github.com/atomicstack/patcher-control/internal/data/dispatcher"
	"github.com/atomicstack/patcher-control/internal/logging/events"
	"github.com/atomicstack/patcher-control/internal/ui/effect"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrUIClosed is returned when effects are scheduled after the event loop
// has stopped consuming them.
var ErrUIClosed = errors.New("ui event loop closed")

const defaultEffectBuffer = 64

// Controller schedules effects onto the UI event loop from any goroutine.
// Effects are applied in the order they were scheduled.
type Controller struct {
	effects chan effect.Effect
	done    chan struct{}
	once    sync.Once

	// beforeSend runs between the closed check and the send. Tests use it to
	// land Close inside that window.
	beforeSend func()
}

// NewController creates a controller buffering up to size effects before
// Schedule starts blocking.
func NewController(size int) *Controller {
	if size <= 0 {
		size = defaultEffectBuffer
	}
	return &Controller{
		effects: make(chan effect.Effect, size),
		done:    make(chan struct{}),
	}
}

// Schedule queues e for the event loop. It blocks while the buffer is full
// and fails with ErrUIClosed once the loop is gone.
func (c *Controller) Schedule(e effect.Effect) error {
	if e == nil {
		return fmt.Errorf("schedule: nil effect")
	}
	if c.closed() {
		events.Status.Dropped(e.Function(), ErrUIClosed)
		return ErrUIClosed
	}
	if c.beforeSend != nil {
		c.beforeSend()
	}
	select {
	case c.effects <- e:
		// Close may have raced the send; the loop never drains the buffer
		// once it is closed.
		if c.closed() {
			events.Status.Dropped(e.Function(), ErrUIClosed)
			return ErrUIClosed
		}
		events.Status.Schedule(e.Function())
		return nil
	case <-c.done:
		events.Status.Dropped(e.Function(), ErrUIClosed)
		return ErrUIClosed
	}
}

func (c *Controller) closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// DispatchStatus translates a worker status and schedules its effect.
func (c *Controller) DispatchStatus(status backend.Status) error {
	e := dispatcher.Translate(status)
	if e == nil {
		return fmt.Errorf("no effect for status %s", backend.StatusName(status))
	}
	return c.Schedule(e)
}

// SetPatchInProgress schedules an update of the single-flight flag.
func (c *Controller) SetPatchInProgress(value bool) error {
	return c.Schedule(effect.SetPatching{InProgress: value})
}

// Close marks the event loop as gone. Pending effects are discarded.
func (c *Controller) Close() {
	c.once.Do(func() { close(c.done) })
}

type effectMsg struct {
	effect effect.Effect
}

type controllerClosedMsg struct{}

func waitForEffect(c *Controller) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-c.effects:
			return effectMsg{effect: e}
		case <-c.done:
			return controllerClosedMsg{}
		}
	}
}
