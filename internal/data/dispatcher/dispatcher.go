package dispatcher

import (
	"github.com/atomicstack/patcher-control/internal/backend"
	"github.com/atomicstack/patcher-control/internal/ui/effect"
)

// Translate maps a worker status onto the single UI effect that renders it.
// Arguments are carried over verbatim. Unknown statuses yield nil.
func Translate(status backend.Status) effect.Effect {
	switch s := status.(type) {
	case backend.Ready:
		return effect.Ready{}
	case backend.Error:
		return effect.Error{Message: s.Message}
	case backend.DownloadProgress:
		return effect.Downloading{Downloaded: s.Downloaded, Total: s.Total, BytesPerSec: s.BytesPerSec}
	case backend.InstallProgress:
		return effect.Installing{Installed: s.Installed, Total: s.Total}
	case backend.PatchApplied:
		return effect.PatchApplied{Name: s.Name}
	default:
		return nil
	}
}
