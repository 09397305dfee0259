// Package ui contains the Bubble Tea program that fronts the patcher. The
// Model type focuses on message orchestration while dedicated helpers own
// navigation, forms, rendering and effect application.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. Key presses go
//     to the open form (login or patch path) when there is one; everything
//     else is routed through a typed handler registry.
//   - Menu items carry the raw request they emit. Activating one hands that
//     request to the request dispatcher (internal/ui/request), which returns a
//     tea.Cmd for anything that must not run on the event loop.
//
// State ownership:
//   - The single-flight flag lives in internal/state.UIState and is only read
//     or written on the event loop.
//   - Rendered patching state (progress, status text, error styling, primary
//     action gating) is only changed by Model.applyEffect.
//
// Worker interactions:
//   - The worker never touches the model. It reports through a Controller,
//     which translates each backend.Status into one effect and queues it.
//     waitForEffect delivers queued effects to Update in submission order.
//   - When the event loop ends the controller is closed, so later reports fail
//     with ErrUIClosed instead of blocking the worker.
package ui
