package lifecycle

import (
	"sync"

	"github.com/atomicstack/patcher-control/internal/backend"
	"github.com/atomicstack/patcher-control/internal/logging/events"
)

// Guard tells the worker to stop when the UI side is torn down.
type Guard struct {
	sender backend.Sender
	once   sync.Once
}

func NewGuard(sender backend.Sender) *Guard {
	return &Guard{sender: sender}
}

// Teardown sends Quit to the worker the first time it is called. The send is
// best effort: a worker that is already gone is not an error.
func (g *Guard) Teardown() {
	if g == nil {
		return
	}
	g.once.Do(func() {
		if g.sender == nil {
			return
		}
		err := g.sender.Send(backend.Quit{})
		events.Lifecycle.Teardown(err)
	})
}
