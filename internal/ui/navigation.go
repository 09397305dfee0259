package ui

import (
	"errors"

	"github.com/atomicstack/patcher-control/internal/launch"
	"github.com/atomicstack/patcher-control/internal/logging"
	"github.com/atomicstack/patcher-control/internal/ui/request"
	tea "github.com/charmbracelet/bubbletea"
)

const waitingNotice = "Waiting for the update to finish."

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "up", "k", "shift+tab":
		m.menu.MoveCursorUp()
	case "down", "j", "tab":
		m.menu.MoveCursorDown()
	case "home", "g":
		m.menu.MoveCursorHome()
	case "end", "G":
		m.menu.MoveCursorEnd()
	case "pgup":
		m.menu.MoveCursorPageUp(m.maxVisibleItems())
	case "pgdown":
		m.menu.MoveCursorPageDown(m.maxVisibleItems())
	case "enter", " ":
		return m.activateCurrent()
	case "c":
		return m.dispatch(request.ActionCancelUpdate.String())
	case "q", "esc", "ctrl+c":
		return m.dispatch(request.ActionExit.String())
	default:
		return nil
	}
	m.menu.EnsureCursorVisible(m.maxVisibleItems())
	return nil
}

func (m *Model) activateCurrent() tea.Cmd {
	item, ok := m.menu.Current()
	if !ok {
		return nil
	}
	if item.Disabled {
		m.setInfo(waitingNotice)
		return nil
	}
	if item.ID == itemLogin {
		return m.startLoginForm()
	}
	if item.Request == "" {
		return nil
	}
	return m.dispatch(item.Request)
}

func (m *Model) handlePatchSelectionMsg(msg tea.Msg) tea.Cmd {
	sel, ok := msg.(request.PatchSelection)
	if !ok {
		return nil
	}
	if sel.Err != nil {
		if !errors.Is(sel.Err, launch.ErrNoDialog) {
			logging.Warnf("file dialog failed: %v", sel.Err)
		}
		return m.startPatchForm(sel.RequestID)
	}
	if sel.Path == "" || m.requests == nil {
		return nil
	}
	return m.requests.SubmitPatch(sel.RequestID, sel.Path)
}
