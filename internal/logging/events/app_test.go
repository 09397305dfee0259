package events

import (
	"errors"
	"testing"

	"github.com/atomicstack/patcher-control/internal/logging"
	"github.com/atomicstack/patcher-control/internal/testutil"
)

func TestAppTracerRecordsStartupAndExit(t *testing.T) {
	logs := testutil.CaptureLog(t)
	logging.SetTraceEnabled(true)
	t.Cleanup(func() { logging.SetTraceEnabled(false) })

	App.Start(Startup{Identity: "rpatcher", ConfigPath: "/games/rpatcher.yml", WorkDir: "/games"})
	App.Exit(errors.New("boom"))

	lines := logs.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected two trace lines, got %q", lines)
	}
	for _, want := range []string{`"event":"app.start"`, `"identity":"rpatcher"`, `"workdir":"/games"`} {
		if !logs.Contains(want) {
			t.Fatalf("expected %s in %q", want, lines[0])
		}
	}
	if !logs.Contains(`"clean":false`) || !logs.Contains(`"error":"boom"`) {
		t.Fatalf("unexpected exit trace %q", lines[1])
	}
}
