package ui

import (
	"fmt"

	"github.com/atomicstack/patcher-control/internal/patcher"
	"github.com/atomicstack/patcher-control/internal/ui/request"
	uistate "github.com/atomicstack/patcher-control/internal/ui/state"
)

const (
	itemPlay         = "play"
	itemLogin        = "login"
	itemSetup        = "setup"
	itemStartUpdate  = "start_update"
	itemCancelUpdate = "cancel_update"
	itemManualPatch  = "manual_patch"
	itemResetCache   = "reset_cache"
	itemIndex        = "index_url"
	itemExit         = "exit"
)

// gatedItems stay disabled until an update finished.
var gatedItems = []string{itemPlay, itemLogin}

func menuItems(cfg patcher.Configuration, ready bool) []uistate.Item {
	items := []uistate.Item{
		{ID: itemPlay, Label: "Play", Request: request.ActionPlay.String(), Disabled: !ready},
		{ID: itemLogin, Label: "Log in and play", Disabled: !ready},
	}
	if cfg.Setup.Configured() {
		items = append(items, uistate.Item{ID: itemSetup, Label: "Setup", Request: request.ActionSetup.String()})
	}
	items = append(items,
		uistate.Item{ID: itemStartUpdate, Label: "Check for updates", Request: request.ActionStartUpdate.String()},
		uistate.Item{ID: itemCancelUpdate, Label: "Cancel update", Request: request.ActionCancelUpdate.String()},
		uistate.Item{ID: itemManualPatch, Label: "Apply patch file", Request: request.ActionManualPatch.String()},
		uistate.Item{ID: itemResetCache, Label: "Reset cache", Request: request.ActionResetCache.String()},
	)
	if cfg.Web.IndexURL != "" {
		items = append(items, linkItem(itemIndex, "Open website", cfg.Web.IndexURL))
	}
	for i, link := range cfg.Web.Links {
		items = append(items, linkItem(fmt.Sprintf("link:%d", i), link.Name, link.URL))
	}
	return append(items, uistate.Item{ID: itemExit, Label: "Exit", Request: request.ActionExit.String()})
}

func linkItem(id, label, url string) uistate.Item {
	raw, err := request.Encode(request.FunctionOpenURL, map[string]string{"url": url})
	if err != nil {
		return uistate.Item{ID: id, Label: label, Disabled: true}
	}
	return uistate.Item{ID: id, Label: label, Request: raw}
}
