// Package topic implements the Topic ID lifecycle for the dashboard-creation
// flow: a pure state machine (Machine) covering generation, fallback, and
// clipboard-copy indication, an HTTP client for the topicd generation
// service, and the local fallback identifier derivation used when the
// service cannot be reached.
//
// The machine is deliberately free of I/O. Transitions return an Effect
// describing the side effect to run (remote call, clipboard write, timer);
// the TUI layer maps effects onto Bubble Tea commands and feeds the results
// back in as events. Sequence numbers on every effect make stale results
// harmless: closing or submitting the form resets the machine, and a remote
// call that resolves afterwards is discarded instead of resurrecting old
// state.
package topic
