package backend

// Command is a request sent from the UI side to the worker. The set of
// implementations is closed; switch statements over Command must list every
// variant.
type Command interface {
	commandName() string
}

// StartUpdate asks the worker to run the update pipeline.
type StartUpdate struct{}

// CancelUpdate asks the worker to stop the running operation at its next
// cancellation check.
type CancelUpdate struct{}

// ApplyPatch asks the worker to apply a single, user-selected patch file.
type ApplyPatch struct {
	Path string
}

// Quit asks the worker to exit its receive loop.
type Quit struct{}

func (StartUpdate) commandName() string  { return "StartUpdate" }
func (CancelUpdate) commandName() string { return "CancelUpdate" }
func (ApplyPatch) commandName() string   { return "ApplyPatch" }
func (Quit) commandName() string         { return "Quit" }

// CommandName returns a stable label for logs and traces.
func CommandName(cmd Command) string {
	if cmd == nil {
		return ""
	}
	return cmd.commandName()
}
