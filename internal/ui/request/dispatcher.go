package request

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/atomicstack/patcher-control/internal/backend"
	"github.com/atomicstack/patcher-control/internal/launch"
	"github.com/atomicstack/patcher-control/internal/logging"
	"github.com/atomicstack/patcher-control/internal/logging/events"
	"github.com/atomicstack/patcher-control/internal/patcher"
	"github.com/atomicstack/patcher-control/internal/state"
	"github.com/atomicstack/patcher-control/internal/ui/effect"
	tea "github.com/charmbracelet/bubbletea"
)

// PatchSelection carries the outcome of a manual patch prompt back to the
// event loop.
type PatchSelection struct {
	RequestID string
	Path      string
	Err       error
}

// Options wires a Dispatcher to the rest of the application.
type Options struct {
	State    state.UIState
	Sender   backend.Sender
	Launcher launch.Launcher
	Opener   launch.URLOpener
	Selector launch.FileSelector
	WorkDir  string
	Identity string
}

// Dispatcher routes UI requests to their handlers. It must only be used from
// the UI event loop; handlers that block are returned as tea.Cmds.
type Dispatcher struct {
	state    state.UIState
	sender   backend.Sender
	launcher launch.Launcher
	opener   launch.URLOpener
	selector launch.FileSelector
	workDir  string
	identity string
}

func NewDispatcher(opts Options) *Dispatcher {
	d := &Dispatcher{
		state:    opts.State,
		sender:   opts.Sender,
		launcher: opts.Launcher,
		opener:   opts.Opener,
		selector: opts.Selector,
		workDir:  opts.WorkDir,
		identity: opts.Identity,
	}
	if d.launcher == nil {
		d.launcher = launch.ProcessLauncher{}
	}
	if d.opener == nil {
		d.opener = launch.SystemOpener{}
	}
	if d.selector == nil {
		d.selector = launch.NewDialogSelector()
	}
	return d
}

// Dispatch handles one raw UI event. Malformed or unknown requests are logged
// once and otherwise ignored.
func (d *Dispatcher) Dispatch(raw string) tea.Cmd {
	req, err := Parse(raw)
	events.Request.Received(req.ID, len(raw))
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownFunction):
			events.Request.Dropped(req.ID, events.DropUnknownFunction)
		default:
			events.Request.Dropped(req.ID, events.DropMalformed)
		}
		logging.Error(err)
		return nil
	}
	if req.Action != ActionNone {
		events.Request.Action(req.ID, req.Action.String())
		return d.handleAction(req)
	}
	events.Request.Function(req.ID, req.Function.String())
	return d.handleFunction(req)
}

func (d *Dispatcher) handleAction(req Request) tea.Cmd {
	cfg := d.state.Config()
	switch req.Action {
	case ActionPlay:
		return d.start("game client", cfg.Play, cfg.Play.Arguments, true)
	case ActionSetup:
		return d.start("setup software", cfg.Setup, cfg.Setup.Arguments, false)
	case ActionExit:
		return tea.Quit
	case ActionStartUpdate:
		if cmd := d.guard(req); cmd != nil {
			return cmd
		}
		d.sendOperation(req.ID, backend.StartUpdate{})
	case ActionCancelUpdate:
		if err := d.sender.Send(backend.CancelUpdate{}); err != nil {
			logging.Warnf("failed to send cancel request: %v", err)
			return nil
		}
		events.Request.Sent(req.ID, backend.CommandName(backend.CancelUpdate{}))
	case ActionResetCache:
		d.resetCache()
	case ActionManualPatch:
		if cmd := d.guard(req); cmd != nil {
			return cmd
		}
		return d.selectPatch(req.ID)
	}
	return nil
}

func (d *Dispatcher) handleFunction(req Request) tea.Cmd {
	switch req.Function {
	case FunctionLogin:
		var params LoginParameters
		if err := decodeParameters(req.Parameters, &params); err != nil {
			events.Request.Dropped(req.ID, events.DropInvalidParams)
			logging.Errorf("invalid arguments given for 'login': %v", err)
			return nil
		}
		cfg := d.state.Config()
		args := LoginArguments(*params.Login, *params.Password, cfg.Play.Arguments)
		return d.start("game client", cfg.Play, args, true)
	case FunctionOpenURL:
		var params OpenURLParameters
		if err := decodeParameters(req.Parameters, &params); err != nil {
			events.Request.Dropped(req.ID, events.DropInvalidParams)
			logging.Errorf("invalid arguments given for 'open_url': %v", err)
			return nil
		}
		url := *params.URL
		opener := d.opener
		return func() tea.Msg {
			if err := opener.Open(url); err != nil {
				logging.Errorf("failed to open url: %v", err)
			}
			return nil
		}
	}
	return nil
}

// SubmitPatch sends an ApplyPatch for a path chosen outside the native
// dialog. The single-flight check runs again since an operation may have
// started while the user was choosing.
func (d *Dispatcher) SubmitPatch(requestID, path string) tea.Cmd {
	if path == "" {
		return nil
	}
	if cmd := d.guard(Request{ID: requestID, Action: ActionManualPatch}); cmd != nil {
		return cmd
	}
	logging.Infof("requesting manual patch '%s'", path)
	d.sendOperation(requestID, backend.ApplyPatch{Path: path})
	return nil
}

// guard enforces single-flight for operations started from the UI.
func (d *Dispatcher) guard(req Request) tea.Cmd {
	if !d.state.PatchingInProgress() {
		return nil
	}
	events.Request.InProgress(req.ID, req.Action.String())
	return func() tea.Msg { return effect.InProgress{} }
}

// sendOperation sets the flag as soon as the command is queued so a second
// request in the same frame is rejected.
func (d *Dispatcher) sendOperation(requestID string, cmd backend.Command) {
	if err := d.sender.Send(cmd); err != nil {
		logging.Warnf("failed to send %s: %v", backend.CommandName(cmd), err)
		return
	}
	d.state.SetPatchingInProgress(true)
	events.Request.Sent(requestID, backend.CommandName(cmd))
}

func (d *Dispatcher) start(label string, exe patcher.Executable, args []string, exitByDefault bool) tea.Cmd {
	if err := d.launcher.Start(exe.Path, args); err != nil {
		logging.Warnf("failed to start %s: %v", label, err)
		return nil
	}
	if exe.ExitOnSuccessOr(exitByDefault) {
		return tea.Quit
	}
	return nil
}

func (d *Dispatcher) resetCache() {
	path := filepath.Join(d.workDir, patcher.CacheFileName(d.identity))
	if err := os.Remove(path); err != nil {
		logging.Warnf("failed to remove the cache file: %v", err)
	}
}

func (d *Dispatcher) selectPatch(requestID string) tea.Cmd {
	selector := d.selector
	return func() tea.Msg {
		path, err := selector.SelectPatch(context.Background())
		return PatchSelection{RequestID: requestID, Path: path, Err: err}
	}
}
