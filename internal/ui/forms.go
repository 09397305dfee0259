package ui

import (
	"strings"

	"github.com/atomicstack/patcher-control/internal/backend"
	"github.com/atomicstack/patcher-control/internal/logging"
	"github.com/atomicstack/patcher-control/internal/ui/request"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// loginForm collects the credentials passed to the game client.
type loginForm struct {
	login    textinput.Model
	password textinput.Model
	focus    int
	err      string
}

// newInput returns a text input with a steady cursor.
func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Cursor.SetMode(cursor.CursorStatic)
	if styles.FormLabel != nil {
		ti.PromptStyle = styles.FormLabel.Copy()
	}
	return ti
}

func newLoginForm() *loginForm {
	login := newInput("login", 64)
	login.Focus()

	password := newInput("password", 128)
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &loginForm{login: login, password: password}
}

func (f *loginForm) Login() string    { return strings.TrimSpace(f.login.Value()) }
func (f *loginForm) Password() string { return f.password.Value() }
func (f *loginForm) Error() string    { return f.err }

func (f *loginForm) setFocus(idx int) tea.Cmd {
	f.focus = idx
	if idx == 0 {
		f.password.Blur()
		return f.login.Focus()
	}
	f.login.Blur()
	return f.password.Focus()
}

// Update returns the command to run, whether the form was submitted and
// whether it was cancelled.
func (f *loginForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return nil, false, true
		case "tab", "shift+tab", "up", "down":
			return f.setFocus(1 - f.focus), false, false
		case "enter":
			if f.focus == 0 {
				return f.setFocus(1), false, false
			}
			if f.Login() == "" {
				f.err = "Login is required."
				return f.setFocus(0), false, false
			}
			return nil, true, false
		}
	}
	var cmd tea.Cmd
	if f.focus == 0 {
		f.login, cmd = f.login.Update(msg)
	} else {
		f.password, cmd = f.password.Update(msg)
	}
	return cmd, false, false
}

// patchForm asks for a patch path when no native dialog is available.
type patchForm struct {
	input     textinput.Model
	requestID string
	err       string
}

func newPatchForm(requestID string) *patchForm {
	ti := newInput("/path/to/patch"+backend.PatchExtension, 4096)
	ti.Focus()
	return &patchForm{input: ti, requestID: requestID}
}

func (f *patchForm) Value() string { return strings.TrimSpace(f.input.Value()) }
func (f *patchForm) Error() string { return f.err }

func (f *patchForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return nil, false, true
		case "enter":
			if f.Value() == "" {
				f.err = "Enter the path of a patch file."
				return nil, false, false
			}
			return nil, true, false
		}
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd, false, false
}

func (m *Model) startLoginForm() tea.Cmd {
	m.loginForm = newLoginForm()
	m.mode = ModeLoginForm
	return nil
}

func (m *Model) startPatchForm(requestID string) tea.Cmd {
	m.patchForm = newPatchForm(requestID)
	m.mode = ModePatchForm
	return nil
}

func (m *Model) closeForms() {
	m.loginForm = nil
	m.patchForm = nil
	m.mode = ModeMenu
}

func (m *Model) handleLoginForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.loginForm == nil {
		return false, nil
	}
	cmd, done, cancel := m.loginForm.Update(msg)
	if cancel {
		m.closeForms()
		return true, cmd
	}
	if done {
		login, password := m.loginForm.Login(), m.loginForm.Password()
		m.closeForms()
		raw, err := request.Encode(request.FunctionLogin, map[string]string{
			"login":    login,
			"password": password,
		})
		if err != nil {
			logging.Error(err)
			return true, nil
		}
		return true, m.dispatch(raw)
	}
	return true, cmd
}

func (m *Model) handlePatchForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.patchForm == nil {
		return false, nil
	}
	cmd, done, cancel := m.patchForm.Update(msg)
	if cancel {
		m.closeForms()
		return true, cmd
	}
	if done {
		requestID, path := m.patchForm.requestID, m.patchForm.Value()
		m.closeForms()
		if m.requests == nil {
			return true, nil
		}
		return true, m.requests.SubmitPatch(requestID, path)
	}
	return true, cmd
}

func (m *Model) viewLoginForm(header string) string {
	lines := []string{
		header,
		"",
		styles.FormLabel.Render("Login"),
		m.loginForm.login.View(),
		styles.FormLabel.Render("Password"),
		m.loginForm.password.View(),
	}
	if err := m.loginForm.Error(); err != "" {
		lines = append(lines, "", styles.Error.Render(err))
	}
	lines = append(lines, "", styles.Footer.Render("enter: next/submit  tab: switch field  esc: back"))
	return strings.Join(lines, "\n")
}

func (m *Model) viewPatchForm(header string) string {
	lines := []string{
		header,
		"",
		styles.FormLabel.Render("Patch file"),
		m.patchForm.input.View(),
	}
	if err := m.patchForm.Error(); err != "" {
		lines = append(lines, "", styles.Error.Render(err))
	}
	lines = append(lines, "", styles.Footer.Render("enter: apply  esc: back"))
	return strings.Join(lines, "\n")
}
