package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Harness drives the UI model programmatically for integration tests.
// Commands run synchronously and effects are polled instead of awaited.
type Harness struct {
	model *Model
	quit  bool
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	if model != nil {
		model.waitEffect = pollEffect
	}
	return &Harness{model: model}
}

// Init runs the model's Init command.
func (h *Harness) Init() {
	if h.model == nil {
		return
	}
	h.processCmd(h.model.Init())
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

// Key sends a key press described the way tea.KeyMsg.String reports it.
func (h *Harness) Key(key string) {
	switch key {
	case "enter":
		h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	case "tab":
		h.Send(tea.KeyMsg{Type: tea.KeyTab})
	case "up":
		h.Send(tea.KeyMsg{Type: tea.KeyUp})
	case "down":
		h.Send(tea.KeyMsg{Type: tea.KeyDown})
	case "ctrl+c":
		h.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	default:
		h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	}
}

// Select moves the cursor to the item with id and activates it.
func (h *Harness) Select(id string) bool {
	idx := h.model.menu.IndexOf(id)
	if idx < 0 {
		return false
	}
	h.model.menu.Cursor = idx
	h.Key("enter")
	return true
}

// Flush applies every effect currently queued on the controller.
func (h *Harness) Flush() {
	if h.model == nil || h.model.controller == nil {
		return
	}
	h.processCmd(pollEffect(h.model.controller))
}

// WaitFor applies effects as they arrive until cond holds or timeout passes.
func (h *Harness) WaitFor(cond func(*Model) bool, timeout time.Duration) bool {
	deadline := time.After(timeout)
	for {
		h.Flush()
		if cond(h.model) {
			return true
		}
		ctrl := h.model.controller
		if ctrl == nil {
			return false
		}
		select {
		case e := <-ctrl.effects:
			h.Send(effectMsg{effect: e})
		case <-deadline:
			return cond(h.model)
		}
	}
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	for cmd != nil && !h.quit {
		msg := cmd()
		switch v := msg.(type) {
		case nil:
			return
		case tea.QuitMsg:
			h.quit = true
			return
		case tea.BatchMsg:
			for _, c := range v {
				h.processCmd(c)
			}
			return
		}
		mdl, next := h.model.Update(msg)
		if updated, ok := mdl.(*Model); ok {
			h.model = updated
		}
		cmd = next
	}
}

// Quit reports whether the model asked the program to exit.
func (h *Harness) Quit() bool {
	return h.quit
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}

func pollEffect(c *Controller) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-c.effects:
			return effectMsg{effect: e}
		default:
		}
		select {
		case <-c.done:
			return controllerClosedMsg{}
		default:
			return nil
		}
	}
}
