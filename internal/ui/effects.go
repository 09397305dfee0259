package ui

import (
	"fmt"

	"github.com/atomicstack/patcher-control/internal/logging"
	"github.com/atomicstack/patcher-control/internal/logging/events"
	"github.com/atomicstack/patcher-control/internal/ui/effect"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

const inProgressNotice = "An operation is already in progress."

func (m *Model) handleEffectMsg(msg tea.Msg) tea.Cmd {
	wrapped, ok := msg.(effectMsg)
	if !ok {
		return nil
	}
	cmd := m.applyEffect(wrapped.effect)
	if m.controller != nil {
		waitCmd := m.waitEffect(m.controller)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

// handleDirectEffect applies effects produced on the event loop itself, such
// as the in-progress notification from a rejected request.
func (m *Model) handleDirectEffect(msg tea.Msg) tea.Cmd {
	e, ok := msg.(effect.Effect)
	if !ok {
		return nil
	}
	return m.applyEffect(e)
}

// applyEffect is the only place rendered patching state changes.
func (m *Model) applyEffect(e effect.Effect) tea.Cmd {
	events.Status.Apply(e.Function())
	if m.verbose {
		logging.Infof("applying %s", e.Function())
	}
	switch v := e.(type) {
	case effect.Ready:
		m.percent = 1
		m.statusErr = false
		m.status = "Ready"
		m.setReady(true)
	case effect.Error:
		m.statusErr = true
		m.status = v.Message
	case effect.Downloading:
		m.statusErr = false
		m.percent = fraction(v.Downloaded, v.Total)
		m.status = fmt.Sprintf("Downloading %d/%d (%s/s)", v.Downloaded, v.Total, humanize.Bytes(v.BytesPerSec))
	case effect.Installing:
		m.statusErr = false
		m.percent = fraction(v.Installed, v.Total)
		m.status = fmt.Sprintf("Installing %d/%d", v.Installed, v.Total)
	case effect.PatchApplied:
		m.statusErr = false
		m.percent = 1
		m.status = fmt.Sprintf("Patch '%s' applied", v.Name)
		m.setInfo(fmt.Sprintf("Successfully applied '%s'.", v.Name))
	case effect.InProgress:
		m.setInfo(inProgressNotice)
	case effect.SetPatching:
		m.state.SetPatchingInProgress(v.InProgress)
	}
	return nil
}

func (m *Model) setReady(ready bool) {
	m.ready = ready
	for _, id := range gatedItems {
		m.menu.SetDisabled(id, !ready)
	}
}

func fraction(done, total uint64) float64 {
	if total == 0 {
		return 0
	}
	if done >= total {
		return 1
	}
	return float64(done) / float64(total)
}
