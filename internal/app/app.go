package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atomicstack/patcher-control/internal/backend"
	"github.com/atomicstack/patcher-control/internal/launch"
	"github.com/atomicstack/patcher-control/internal/lifecycle"
	"github.com/atomicstack/patcher-control/internal/logging"
	"github.com/atomicstack/patcher-control/internal/logging/events"
	"github.com/atomicstack/patcher-control/internal/patcher"
	"github.com/atomicstack/patcher-control/internal/state"
	"github.com/atomicstack/patcher-control/internal/ui"
	"github.com/atomicstack/patcher-control/internal/ui/request"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

const defaultShutdownGrace = 2 * time.Second

// Config describes user-provided application options.
type Config struct {
	Identity      string
	ConfigPath    string
	WorkDir       string
	Width         int
	Height        int
	Verbose       bool
	AutoUpdate    bool
	ShutdownGrace time.Duration
}

// Program is the part of *tea.Program used by Run.
type Program interface {
	Run() (tea.Model, error)
}

// Components is the wired application, exposed so tests can drive it without
// a terminal.
type Components struct {
	State      state.UIState
	Queue      *backend.CommandQueue
	Controller *ui.Controller
	Worker     *backend.Worker
	Guard      *lifecycle.Guard
	Model      *ui.Model
}

// Build loads the patcher configuration for identity and wires every
// component.
func Build(cfg Config, identity string) (*Components, error) {
	workDir := cfg.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		workDir = wd
	}
	patcherCfg, err := patcher.Load(cfg.ConfigPath, workDir, identity)
	if err != nil {
		return nil, err
	}

	patchDir := patcherCfg.Patching.Directory
	if !filepath.IsAbs(patchDir) {
		patchDir = filepath.Join(workDir, patchDir)
	}
	cachePath := filepath.Join(workDir, patcher.CacheFileName(identity))

	st := state.NewUIState(patcherCfg)
	queue := backend.NewCommandQueue(0)
	controller := ui.NewController(0)
	worker := backend.NewWorker(queue, controller, backend.NewCachePipeline(patchDir, cachePath))
	dispatcher := request.NewDispatcher(request.Options{
		State:    st,
		Sender:   queue,
		Launcher: launch.ProcessLauncher{},
		Opener:   launch.SystemOpener{},
		Selector: launch.NewDialogSelector(),
		WorkDir:  workDir,
		Identity: identity,
	})
	model := ui.NewModel(ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Verbose:    cfg.Verbose,
		AutoUpdate: cfg.AutoUpdate,
	}, st, dispatcher, controller)

	return &Components{
		State:      st,
		Queue:      queue,
		Controller: controller,
		Worker:     worker,
		Guard:      lifecycle.NewGuard(queue),
		Model:      model,
	}, nil
}

// Run bootstraps and executes the Bubble Tea program. The identity is derived
// from the executable when cfg leaves it empty.
func Run(cfg Config) error {
	identity := cfg.Identity
	if identity == "" {
		var err error
		if identity, err = patcher.Identity(); err != nil {
			return err
		}
	}
	c, err := Build(cfg, identity)
	if err != nil {
		return err
	}
	program := tea.NewProgram(c.Model, tea.WithAltScreen())
	return c.Run(context.Background(), program, cfg.ShutdownGrace)
}

// Run supervises the worker and the UI program. When the program ends the
// controller is closed, Quit is sent to the worker and, if the worker is
// still busy after grace, its context is cancelled.
func (c *Components) Run(ctx context.Context, program Program, grace time.Duration) error {
	if grace <= 0 {
		grace = defaultShutdownGrace
	}
	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	workerDone := make(chan struct{})
	g := new(errgroup.Group)
	g.Go(func() error {
		defer close(workerDone)
		return c.Worker.Run(workerCtx)
	})
	g.Go(func() error {
		defer func() {
			c.Controller.Close()
			c.Guard.Teardown()
			select {
			case <-workerDone:
			case <-time.After(grace):
				events.Lifecycle.ForceStop(grace.String())
				logging.Warnf("worker still running after %s; cancelling", grace)
				cancelWorker()
			}
		}()
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})
	err := g.Wait()
	cancelWorker()
	return err
}
