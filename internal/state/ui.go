package state

import "github.com/atomicstack/patcher-control/internal/patcher"

// UIState is owned by the UI event loop. It is not safe for concurrent use;
// other goroutines reach it only through scheduled effects.
type UIState interface {
	Config() patcher.Configuration
	PatchingInProgress() bool
	SetPatchingInProgress(bool)
}

type uiState struct {
	config             patcher.Configuration
	patchingInProgress bool
}

func NewUIState(cfg patcher.Configuration) UIState {
	return &uiState{config: cloneConfig(cfg)}
}

func (s *uiState) Config() patcher.Configuration {
	return cloneConfig(s.config)
}

func (s *uiState) PatchingInProgress() bool {
	return s.patchingInProgress
}

func (s *uiState) SetPatchingInProgress(value bool) {
	s.patchingInProgress = value
}

func cloneConfig(cfg patcher.Configuration) patcher.Configuration {
	dup := cfg
	dup.Play.Arguments = cloneStrings(cfg.Play.Arguments)
	dup.Setup.Arguments = cloneStrings(cfg.Setup.Arguments)
	if len(cfg.Web.Links) > 0 {
		dup.Web.Links = make([]patcher.Link, len(cfg.Web.Links))
		copy(dup.Web.Links, cfg.Web.Links)
	}
	return dup
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	dup := make([]string, len(values))
	copy(dup, values)
	return dup
}
