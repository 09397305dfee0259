// Package effect defines the UI mutations scheduled onto the event loop.
// Effects are plain values so producers on other goroutines never touch UI
// state directly, and tests can inspect exactly what was scheduled.
package effect

// Effect is one unit of work for the UI event loop. The set is closed.
type Effect interface {
	// Function is the front-end function the effect corresponds to.
	Function() string
}

// Ready fills the progress indicator, clears error styling and enables the
// primary action.
type Ready struct{}

// Error shows a patching error.
type Error struct {
	Message string
}

// Downloading shows download progress.
type Downloading struct {
	Downloaded  uint64
	Total       uint64
	BytesPerSec uint64
}

// Installing shows installation progress.
type Installing struct {
	Installed uint64
	Total     uint64
}

// PatchApplied confirms a manually applied patch.
type PatchApplied struct {
	Name string
}

// InProgress tells the user an operation is already running.
type InProgress struct{}

// SetPatching updates the single-flight flag.
type SetPatching struct {
	InProgress bool
}

func (Ready) Function() string        { return "patchingStatusReady" }
func (Error) Function() string        { return "patchingStatusError" }
func (Downloading) Function() string  { return "patchingStatusDownloading" }
func (Installing) Function() string   { return "patchingStatusInstalling" }
func (PatchApplied) Function() string { return "patchingStatusPatchApplied" }
func (InProgress) Function() string   { return "notificationInProgress" }
func (SetPatching) Function() string  { return "setPatchingInProgress" }
