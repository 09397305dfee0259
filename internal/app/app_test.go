package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/patcher-control/internal/backend"
	"github.com/atomicstack/patcher-control/internal/lifecycle"
	"github.com/atomicstack/patcher-control/internal/testutil"
	"github.com/atomicstack/patcher-control/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

const testConfig = `
window:
  title: Test Patcher
play:
  path: /games/client
  arguments: ["-fast"]
web:
  index_url: https://example.com
`

type fakeProgram struct {
	err   error
	delay time.Duration
}

func (p fakeProgram) Run() (tea.Model, error) {
	time.Sleep(p.delay)
	return nil, p.err
}

type blockingPipeline struct {
	started chan struct{}
}

func (p blockingPipeline) Update(ctx context.Context, _ backend.Operation) error {
	close(p.started)
	<-ctx.Done()
	return ctx.Err()
}

func (p blockingPipeline) Apply(ctx context.Context, _ string, _ backend.Operation) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func writeConfig(t *testing.T, dir string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "patcher.yml"), []byte(testConfig), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestBuildLoadsConfiguration(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir)
	c, err := Build(Config{WorkDir: dir}, "patcher")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	cfg := c.State.Config()
	if cfg.Play.Path != "/games/client" || cfg.Window.Title != "Test Patcher" {
		t.Fatalf("unexpected configuration %#v", cfg)
	}
	if cfg.Patching.Directory != "patches" {
		t.Fatalf("expected default patch directory, got %q", cfg.Patching.Directory)
	}
	if c.State.PatchingInProgress() {
		t.Fatalf("expected flag clear at startup")
	}
}

func TestBuildFailsWithoutConfiguration(t *testing.T) {
	if _, err := Build(Config{WorkDir: t.TempDir()}, "patcher"); err == nil {
		t.Fatalf("expected error for missing configuration")
	}
}

func TestRunStopsWorkerWhenProgramEnds(t *testing.T) {
	testutil.CaptureLog(t)
	dir := t.TempDir()
	writeConfig(t, dir)
	c, err := Build(Config{WorkDir: dir}, "patcher")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := c.Run(context.Background(), fakeProgram{delay: 10 * time.Millisecond}, time.Second); err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := c.Queue.Send(backend.StartUpdate{}); !errors.Is(err, backend.ErrDisconnected) {
		t.Fatalf("expected worker disconnected, got %v", err)
	}
	if err := c.Controller.SetPatchInProgress(true); !errors.Is(err, ui.ErrUIClosed) {
		t.Fatalf("expected controller closed, got %v", err)
	}
}

func TestRunTreatsKilledProgramAsClean(t *testing.T) {
	testutil.CaptureLog(t)
	dir := t.TempDir()
	writeConfig(t, dir)
	c, err := Build(Config{WorkDir: dir}, "patcher")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := c.Run(context.Background(), fakeProgram{err: tea.ErrProgramKilled}, time.Second); err != nil {
		t.Fatalf("expected nil for killed program, got %v", err)
	}

	c, _ = Build(Config{WorkDir: dir}, "patcher")
	boom := errors.New("boom")
	if err := c.Run(context.Background(), fakeProgram{err: boom}, time.Second); !errors.Is(err, boom) {
		t.Fatalf("expected program error, got %v", err)
	}
}

func TestRunCancelsBusyWorkerAfterGrace(t *testing.T) {
	logs := testutil.CaptureLog(t)
	queue := backend.NewCommandQueue(0)
	controller := ui.NewController(0)
	pipeline := blockingPipeline{started: make(chan struct{})}
	c := &Components{
		Queue:      queue,
		Controller: controller,
		Worker:     backend.NewWorker(queue, controller, pipeline),
		Guard:      lifecycle.NewGuard(queue),
	}
	if err := queue.Send(backend.StartUpdate{}); err != nil {
		t.Fatalf("send: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- c.Run(context.Background(), waitingProgram{ready: pipeline.started}, 20*time.Millisecond)
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("run did not return after grace period")
	}
	if !logs.Contains("worker still running") {
		t.Fatalf("expected force-stop warning, got %q", logs.Lines())
	}
}

// waitingProgram ends once the worker is inside a long operation.
type waitingProgram struct {
	ready chan struct{}
}

func (p waitingProgram) Run() (tea.Model, error) {
	<-p.ready
	return nil, nil
}
