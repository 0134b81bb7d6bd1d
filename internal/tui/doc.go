// Package tui implements the Hubdeck terminal interface with Bubble Tea:
// the dashboard list, the dashboard-creation modal, transient toast
// notifications, and the animated scroll-to-top shortcut.
//
// Widgets follow the Elm architecture. All side effects (HTTP calls,
// clipboard writes, timers) run as commands; widget state only changes in
// Update. Timers carry sequence numbers so a message from a superseded
// timer is ignored instead of acting on newer state.
package tui
