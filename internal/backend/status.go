package backend

// Status reports progress or an outcome from the worker. Each value is a
// point-in-time event.
type Status interface {
	statusName() string
}

// Ready means the client is up to date.
type Ready struct{}

// Error carries a failure message for display.
type Error struct {
	Message string
}

// DownloadProgress counts downloaded files and the current throughput.
type DownloadProgress struct {
	Downloaded  uint64
	Total       uint64
	BytesPerSec uint64
}

// InstallProgress counts installed patches.
type InstallProgress struct {
	Installed uint64
	Total     uint64
}

// PatchApplied reports a manually applied patch by file name.
type PatchApplied struct {
	Name string
}

func (Ready) statusName() string            { return "Ready" }
func (Error) statusName() string            { return "Error" }
func (DownloadProgress) statusName() string { return "DownloadProgress" }
func (InstallProgress) statusName() string  { return "InstallProgress" }
func (PatchApplied) statusName() string     { return "PatchApplied" }

// StatusName returns a stable label for logs and traces.
func StatusName(s Status) string {
	if s == nil {
		return ""
	}
	return s.statusName()
}

// IsTerminal reports whether s ends an operation.
func IsTerminal(s Status) bool {
	switch s.(type) {
	case Ready, Error, PatchApplied:
		return true
	default:
		return false
	}
}
