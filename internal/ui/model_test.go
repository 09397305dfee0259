package ui

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/atomicstack/patcher-control/internal/launch"
	"github.com/atomicstack/patcher-control/internal/patcher"
	"github.com/atomicstack/patcher-control/internal/state"
	"github.com/atomicstack/patcher-control/internal/ui/effect"
	"github.com/atomicstack/patcher-control/internal/ui/request"
	tea "github.com/charmbracelet/bubbletea"
)

type submission struct {
	id   string
	path string
}

type recordingRequests struct {
	raws      []string
	submitted []submission
}

func (r *recordingRequests) Dispatch(raw string) tea.Cmd {
	r.raws = append(r.raws, raw)
	if raw == request.ActionExit.String() {
		return tea.Quit
	}
	return nil
}

func (r *recordingRequests) SubmitPatch(id, path string) tea.Cmd {
	r.submitted = append(r.submitted, submission{id: id, path: path})
	return nil
}

func testConfig() patcher.Configuration {
	return patcher.Configuration{
		Window:   patcher.Window{Title: "Test Patcher"},
		Play:     patcher.Executable{Path: "/games/client"},
		Web:      patcher.Web{IndexURL: "https://example.com", Links: []patcher.Link{{Name: "Forum", URL: "https://forum.example.com"}}},
		Patching: patcher.Patching{Directory: "patches"},
	}
}

func newTestHarness(t *testing.T, opts Options) (*Harness, *recordingRequests, state.UIState, *Controller) {
	t.Helper()
	st := state.NewUIState(testConfig())
	reqs := &recordingRequests{}
	ctrl := NewController(16)
	t.Cleanup(ctrl.Close)
	return NewHarness(NewModel(opts, st, reqs, ctrl)), reqs, st, ctrl
}

func TestPlayGatedUntilReady(t *testing.T) {
	h, reqs, _, _ := newTestHarness(t, Options{})
	if !h.Select(itemPlay) {
		t.Fatalf("play item missing")
	}
	if len(reqs.raws) != 0 {
		t.Fatalf("expected no dispatch before ready, got %q", reqs.raws)
	}
	if !strings.Contains(h.View(), waitingNotice) {
		t.Fatalf("expected waiting notice in view:\n%s", h.View())
	}

	h.Send(effectMsg{effect: effect.Ready{}})
	if !h.Model().Ready() || h.Model().Percent() != 1 {
		t.Fatalf("expected ready with full progress")
	}
	h.Select(itemPlay)
	if !reflect.DeepEqual(reqs.raws, []string{"play"}) {
		t.Fatalf("expected play dispatched, got %q", reqs.raws)
	}
}

func TestErrorStylingClearedByReady(t *testing.T) {
	h, _, _, _ := newTestHarness(t, Options{})
	h.Send(effectMsg{effect: effect.Error{Message: "connection refused"}})
	status, isErr := h.Model().Status()
	if status != "connection refused" || !isErr {
		t.Fatalf("expected error status, got %q (%t)", status, isErr)
	}
	h.Send(effectMsg{effect: effect.Ready{}})
	status, isErr = h.Model().Status()
	if status != "Ready" || isErr {
		t.Fatalf("expected ready status, got %q (%t)", status, isErr)
	}
}

func TestProgressEffects(t *testing.T) {
	h, _, _, _ := newTestHarness(t, Options{})
	h.Send(effectMsg{effect: effect.Downloading{Downloaded: 3, Total: 10, BytesPerSec: 1024}})
	status, _ := h.Model().Status()
	if status != "Downloading 3/10 (1.0 kB/s)" {
		t.Fatalf("unexpected download status %q", status)
	}
	if got := h.Model().Percent(); got != 0.3 {
		t.Fatalf("expected 0.3 progress, got %v", got)
	}

	h.Send(effectMsg{effect: effect.Installing{Installed: 1, Total: 4}})
	status, _ = h.Model().Status()
	if status != "Installing 1/4" || h.Model().Percent() != 0.25 {
		t.Fatalf("unexpected install state %q %v", status, h.Model().Percent())
	}

	h.Send(effectMsg{effect: effect.Downloading{}})
	if h.Model().Percent() != 0 {
		t.Fatalf("expected zero progress for empty download")
	}
}

func TestPatchAppliedConfirmation(t *testing.T) {
	h, _, _, _ := newTestHarness(t, Options{})
	h.Send(effectMsg{effect: effect.PatchApplied{Name: "fix.thor"}})
	if !strings.Contains(h.View(), "Successfully applied 'fix.thor'.") {
		t.Fatalf("expected confirmation in view:\n%s", h.View())
	}
}

func TestSetPatchingEffectUpdatesState(t *testing.T) {
	h, _, st, ctrl := newTestHarness(t, Options{})
	if err := ctrl.SetPatchInProgress(true); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if st.PatchingInProgress() {
		t.Fatalf("flag must not change before the effect is applied")
	}
	h.Flush()
	if !st.PatchingInProgress() {
		t.Fatalf("expected flag set after flush")
	}
	ctrl.SetPatchInProgress(false)
	h.Flush()
	if st.PatchingInProgress() {
		t.Fatalf("expected flag cleared")
	}
}

func TestInProgressNotification(t *testing.T) {
	h, _, _, _ := newTestHarness(t, Options{})
	h.Send(effect.InProgress{})
	if !strings.Contains(h.View(), inProgressNotice) {
		t.Fatalf("expected in-progress notice:\n%s", h.View())
	}
}

func TestQuitKeysDispatchExit(t *testing.T) {
	for _, key := range []string{"q", "esc", "ctrl+c"} {
		t.Run(key, func(t *testing.T) {
			h, reqs, _, _ := newTestHarness(t, Options{})
			h.Key(key)
			if !reflect.DeepEqual(reqs.raws, []string{"exit"}) {
				t.Fatalf("expected exit dispatched, got %q", reqs.raws)
			}
			if !h.Quit() {
				t.Fatalf("expected quit")
			}
		})
	}
}

func TestCancelShortcut(t *testing.T) {
	h, reqs, _, _ := newTestHarness(t, Options{})
	h.Key("c")
	if !reflect.DeepEqual(reqs.raws, []string{"cancel_update"}) {
		t.Fatalf("expected cancel dispatched, got %q", reqs.raws)
	}
}

func TestNavigationWraps(t *testing.T) {
	h, _, _, _ := newTestHarness(t, Options{})
	h.Key("up")
	item, _ := h.Model().menu.Current()
	if item.ID != itemExit {
		t.Fatalf("expected wrap to exit, got %s", item.ID)
	}
	h.Key("j")
	item, _ = h.Model().menu.Current()
	if item.ID != itemPlay {
		t.Fatalf("expected wrap to play, got %s", item.ID)
	}
}

func TestLinkItemsDispatchOpenURL(t *testing.T) {
	h, reqs, _, _ := newTestHarness(t, Options{})
	h.Select("link:0")
	if len(reqs.raws) != 1 {
		t.Fatalf("expected one request, got %q", reqs.raws)
	}
	req, err := request.Parse(reqs.raws[0])
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if req.Function != request.FunctionOpenURL || !strings.Contains(string(req.Parameters), "forum.example.com") {
		t.Fatalf("unexpected request %s", reqs.raws[0])
	}
	if h.Model().menu.IndexOf(itemIndex) < 0 {
		t.Fatalf("expected index_url item")
	}
	if h.Model().menu.IndexOf(itemSetup) >= 0 {
		t.Fatalf("setup item must be hidden without a setup executable")
	}
}

func TestLoginFormDispatchesCredentials(t *testing.T) {
	h, reqs, _, _ := newTestHarness(t, Options{})
	h.Send(effect.Ready{})
	h.Select(itemLogin)
	if h.Model().Mode() != ModeLoginForm {
		t.Fatalf("expected login form")
	}
	h.Key("alice")
	h.Key("enter")
	h.Key("p@ss")
	if strings.Contains(h.View(), "p@ss") {
		t.Fatalf("password must be masked:\n%s", h.View())
	}
	h.Key("enter")

	if h.Model().Mode() != ModeMenu {
		t.Fatalf("expected menu after submit")
	}
	if len(reqs.raws) != 1 {
		t.Fatalf("expected one request, got %q", reqs.raws)
	}
	var payload struct {
		Function   string            `json:"function"`
		Parameters map[string]string `json:"parameters"`
	}
	if err := json.Unmarshal([]byte(reqs.raws[0]), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Function != "login" || payload.Parameters["login"] != "alice" || payload.Parameters["password"] != "p@ss" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestLoginFormRequiresLogin(t *testing.T) {
	h, reqs, _, _ := newTestHarness(t, Options{})
	h.Send(effect.Ready{})
	h.Select(itemLogin)
	h.Key("enter")
	h.Key("enter")
	if h.Model().Mode() != ModeLoginForm || len(reqs.raws) != 0 {
		t.Fatalf("expected form to stay open without a login")
	}
	h.Key("esc")
	if h.Model().Mode() != ModeMenu {
		t.Fatalf("expected esc to close the form")
	}
}

func TestPatchSelectionFallsBackToForm(t *testing.T) {
	h, reqs, _, _ := newTestHarness(t, Options{})
	h.Send(request.PatchSelection{RequestID: "r1", Err: launch.ErrNoDialog})
	if h.Model().Mode() != ModePatchForm {
		t.Fatalf("expected patch form")
	}
	h.Send(effectMsg{effect: effect.Downloading{Downloaded: 1, Total: 2}})
	if h.Model().Mode() != ModePatchForm || h.Model().Percent() != 0.5 {
		t.Fatalf("effects must apply while a form is open")
	}
	h.Key("/tmp/fix.thor")
	h.Key("enter")
	want := []submission{{id: "r1", path: "/tmp/fix.thor"}}
	if !reflect.DeepEqual(reqs.submitted, want) {
		t.Fatalf("expected %v, got %v", want, reqs.submitted)
	}
}

func TestPatchSelectionFromDialog(t *testing.T) {
	h, reqs, _, _ := newTestHarness(t, Options{})
	h.Send(request.PatchSelection{RequestID: "r2", Path: "/tmp/a.thor"})
	h.Send(request.PatchSelection{RequestID: "r3"})
	want := []submission{{id: "r2", path: "/tmp/a.thor"}}
	if !reflect.DeepEqual(reqs.submitted, want) {
		t.Fatalf("expected %v, got %v", want, reqs.submitted)
	}
	if h.Model().Mode() != ModeMenu {
		t.Fatalf("dismissed dialog must not open a form")
	}
}

func TestAutoUpdateOnInit(t *testing.T) {
	h, reqs, _, _ := newTestHarness(t, Options{AutoUpdate: true})
	h.Init()
	if !reflect.DeepEqual(reqs.raws, []string{"start_update"}) {
		t.Fatalf("expected start_update on init, got %q", reqs.raws)
	}

	h, reqs, _, _ = newTestHarness(t, Options{})
	h.Init()
	if len(reqs.raws) != 0 {
		t.Fatalf("expected no request without auto update, got %q", reqs.raws)
	}
}

func TestViewRespectsFixedSize(t *testing.T) {
	h, _, _, _ := newTestHarness(t, Options{Width: 30, Height: 9})
	h.Send(tea.WindowSizeMsg{Width: 200, Height: 200})
	lines := strings.Split(h.View(), "\n")
	if len(lines) > 9 {
		t.Fatalf("expected at most 9 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "Test Patcher") {
		t.Fatalf("expected title on first line, got %q", lines[0])
	}
}
