package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/patcher-control/internal/state"
	"github.com/atomicstack/patcher-control/internal/theme"
	"github.com/atomicstack/patcher-control/internal/ui/effect"
	"github.com/atomicstack/patcher-control/internal/ui/request"
	uistate "github.com/atomicstack/patcher-control/internal/ui/state"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

type level = uistate.Level

type Mode int

const (
	ModeMenu Mode = iota
	ModeLoginForm
	ModePatchForm
)

const infoDuration = 5 * time.Second

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// RequestHandler receives raw UI events. *request.Dispatcher implements it.
type RequestHandler interface {
	Dispatch(raw string) tea.Cmd
	SubmitPatch(requestID, path string) tea.Cmd
}

// Options configures the terminal front end.
type Options struct {
	Width      int
	Height     int
	Verbose    bool
	AutoUpdate bool
}

// startupMsg is delivered once when the event loop starts.
type startupMsg struct{}

// Model implements the Bubble Tea model for the patcher front end.
type Model struct {
	menu        *level
	mode        Mode
	title       string
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	verbose     bool
	autoUpdate  bool

	state      state.UIState
	requests   RequestHandler
	controller *Controller
	waitEffect func(*Controller) tea.Cmd

	progress  progress.Model
	percent   float64
	status    string
	statusErr bool
	ready     bool

	infoMsg    string
	infoExpire time.Time

	loginForm *loginForm
	patchForm *patchForm

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the front end for the given state. Requests are routed to
// requests; effects scheduled on controller are applied in order.
func NewModel(opts Options, st state.UIState, requests RequestHandler, controller *Controller) *Model {
	cfg := st.Config()
	m := &Model{
		mode:       ModeMenu,
		title:      cfg.Window.Title,
		verbose:    opts.Verbose,
		autoUpdate: opts.AutoUpdate,
		state:      st,
		requests:   requests,
		controller: controller,
		waitEffect: waitForEffect,
		progress:   progress.New(progress.WithGradient(styles.ProgressStart, styles.ProgressEnd)),
		status:     "Waiting for update",
	}
	m.menu = uistate.NewLevel("root", cfg.Window.Title, menuItems(cfg, false))
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.resizeProgress()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.controller != nil {
		cmds = append(cmds, m.waitEffect(m.controller))
	}
	if m.autoUpdate {
		cmds = append(cmds, func() tea.Msg { return startupMsg{} })
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handled, cmd := m.handleActiveForm(msg); handled {
		return m, cmd
	}
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

// handleActiveForm routes input to the open form. Messages with a registered
// handler other than key presses still reach the model so effects keep
// applying while a form is shown.
func (m *Model) handleActiveForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.mode == ModeMenu {
		return false, nil
	}
	key, isKey := msg.(tea.KeyMsg)
	if !isKey && m.handlerFor(msg) != nil {
		return false, nil
	}
	if isKey && key.String() == "ctrl+c" {
		return true, m.dispatch(request.ActionExit.String())
	}
	switch m.mode {
	case ModeLoginForm:
		return m.handleLoginForm(msg)
	case ModePatchForm:
		return m.handlePatchForm(msg)
	default:
		return false, nil
	}
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):             m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):      m.handleWindowSizeMsg,
		reflect.TypeOf(startupMsg{}):             m.handleStartupMsg,
		reflect.TypeOf(effectMsg{}):              m.handleEffectMsg,
		reflect.TypeOf(controllerClosedMsg{}):    m.handleControllerClosedMsg,
		reflect.TypeOf(request.PatchSelection{}): m.handlePatchSelectionMsg,
		reflect.TypeOf(effect.Ready{}):           m.handleDirectEffect,
		reflect.TypeOf(effect.Error{}):           m.handleDirectEffect,
		reflect.TypeOf(effect.Downloading{}):     m.handleDirectEffect,
		reflect.TypeOf(effect.Installing{}):      m.handleDirectEffect,
		reflect.TypeOf(effect.PatchApplied{}):    m.handleDirectEffect,
		reflect.TypeOf(effect.InProgress{}):      m.handleDirectEffect,
		reflect.TypeOf(effect.SetPatching{}):     m.handleDirectEffect,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleStartupMsg(tea.Msg) tea.Cmd {
	return m.dispatch(request.ActionStartUpdate.String())
}

func (m *Model) handleControllerClosedMsg(tea.Msg) tea.Cmd {
	m.controller = nil
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.resizeProgress()
	m.menu.EnsureCursorVisible(m.maxVisibleItems())
	return nil
}

func (m *Model) dispatch(raw string) tea.Cmd {
	if m.requests == nil {
		return nil
	}
	return m.requests.Dispatch(raw)
}

func (m *Model) resizeProgress() {
	width := m.width - 4
	if width > 60 {
		width = 60
	}
	if width < 10 {
		width = 40
	}
	m.progress.Width = width
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(infoDuration)
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

// Ready reports whether the last update finished successfully.
func (m *Model) Ready() bool { return m.ready }

// Status returns the status line text and whether it is an error.
func (m *Model) Status() (string, bool) { return m.status, m.statusErr }

// Percent returns the progress indicator position between 0 and 1.
func (m *Model) Percent() float64 { return m.percent }

// Mode returns the active input mode.
func (m *Model) Mode() Mode { return m.mode }
