package topic

// The Topic ID lifecycle is modeled as an explicit state machine with a pure
// transition function. The UI layer feeds events in and runs the returned
// effects (remote calls, clipboard writes, timers) as Bubble Tea commands;
// the machine itself never touches the clock, the network, or the terminal,
// so the whole lifecycle is testable without a rendering environment.

// Phase is the generation phase of the machine.
type Phase int

const (
	// PhaseIdle means no generation has ever been requested.
	PhaseIdle Phase = iota
	// PhaseGenerating means a remote generation call is in flight.
	PhaseGenerating
	// PhaseGenerated means the current ID came from the remote service.
	PhaseGenerated
	// PhaseFallback means the remote call failed and the current ID was
	// synthesized locally from the clock.
	PhaseFallback
)

// String returns a short name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseGenerating:
		return "generating"
	case PhaseGenerated:
		return "generated"
	case PhaseFallback:
		return "fallback"
	}
	return "unknown"
}

// Machine holds the Topic ID lifecycle state for one creation form.
//
// Every asynchronous effect carries the sequence number that was current
// when it was issued; results that come back tagged with a stale sequence
// are discarded. Reset bumps both sequences, so a generation that resolves
// after the form was closed or submitted can never write into fresh state.
type Machine struct {
	// Phase is the current generation phase.
	Phase Phase

	// ID is the current Topic ID, or "" if none has ever been produced.
	ID string

	// Copied is the transient "copied to clipboard" indicator.
	Copied bool

	// GenSeq is the sequence number of the most recent generation request.
	GenSeq int

	// CopySeq is the sequence number of the most recent copy request.
	CopySeq int
}

// Event is a machine input. One of the *Requested, *Succeeded, *Failed or
// *Expired types below.
type Event interface{}

// GenerateRequested asks for a new Topic ID from the remote service. Valid
// in any phase; a request while one is already in flight supersedes it.
type GenerateRequested struct{}

// GenerateSucceeded reports a remote generation result.
type GenerateSucceeded struct {
	Seq int
	ID  string
}

// GenerateFailed reports a failed remote generation. FallbackID is the
// locally synthesized identifier computed by the effect runner (which owns
// the clock).
type GenerateFailed struct {
	Seq        int
	FallbackID string
}

// CopyRequested asks for the current ID to be written to the clipboard.
// Ignored while generating or when no ID is held.
type CopyRequested struct{}

// CopySucceeded reports a successful clipboard write.
type CopySucceeded struct {
	Seq int
}

// CopyFailed reports a failed clipboard write. The copied indicator stays
// unset; the failure is the effect runner's to log.
type CopyFailed struct {
	Seq int
}

// CopyExpired reports that the copied-indicator timer fired.
type CopyExpired struct {
	Seq int
}

// ResetRequested returns the machine to its initial state and invalidates
// every outstanding effect.
type ResetRequested struct{}

// EffectKind identifies the side effect a transition asks for.
type EffectKind int

const (
	// EffectNone means no side effect.
	EffectNone EffectKind = iota
	// EffectGenerate means call the remote service, then feed back
	// GenerateSucceeded or GenerateFailed with Effect.Seq.
	EffectGenerate
	// EffectCopy means write Effect.ID to the clipboard, then feed back
	// CopySucceeded or CopyFailed with Effect.Seq.
	EffectCopy
	// EffectArmCopyTimer means arm a single-shot CopiedFlagDuration timer,
	// then feed back CopyExpired with Effect.Seq.
	EffectArmCopyTimer
)

// Effect describes the side effect requested by a transition.
type Effect struct {
	Kind EffectKind
	Seq  int
	ID   string // set for EffectCopy
}

// Step applies an event and returns the next state plus the effect to run.
// Stale events (sequence mismatch) leave the machine unchanged.
func (m Machine) Step(ev Event) (Machine, Effect) {
	switch ev := ev.(type) {
	case GenerateRequested:
		m.Phase = PhaseGenerating
		m.GenSeq++
		// A fresh ID invalidates the copied indicator and any pending
		// copy-flag timer.
		m.Copied = false
		m.CopySeq++
		return m, Effect{Kind: EffectGenerate, Seq: m.GenSeq}

	case GenerateSucceeded:
		if ev.Seq != m.GenSeq || m.Phase != PhaseGenerating {
			return m, Effect{}
		}
		m.Phase = PhaseGenerated
		m.ID = ev.ID
		return m, Effect{}

	case GenerateFailed:
		if ev.Seq != m.GenSeq || m.Phase != PhaseGenerating {
			return m, Effect{}
		}
		m.Phase = PhaseFallback
		m.ID = ev.FallbackID
		return m, Effect{}

	case CopyRequested:
		if m.ID == "" || m.Phase == PhaseGenerating {
			return m, Effect{}
		}
		m.CopySeq++
		return m, Effect{Kind: EffectCopy, Seq: m.CopySeq, ID: m.ID}

	case CopySucceeded:
		if ev.Seq != m.CopySeq {
			return m, Effect{}
		}
		m.Copied = true
		return m, Effect{Kind: EffectArmCopyTimer, Seq: m.CopySeq}

	case CopyFailed:
		// Indicator simply never appears.
		return m, Effect{}

	case CopyExpired:
		if ev.Seq != m.CopySeq {
			return m, Effect{}
		}
		m.Copied = false
		return m, Effect{}

	case ResetRequested:
		return Machine{
			Phase:   PhaseIdle,
			GenSeq:  m.GenSeq + 1,
			CopySeq: m.CopySeq + 1,
		}, Effect{}
	}

	return m, Effect{}
}
