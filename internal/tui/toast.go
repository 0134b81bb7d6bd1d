package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	// DefaultToastDuration is how long a toast stays visible before
	// auto-dismissing. A duration of 0 disables auto-dismiss entirely.
	DefaultToastDuration = 4000 * time.Millisecond

	// ToastExitDelay is the grace period between hiding a toast and
	// reporting it fully closed, matching the slide-out animation.
	ToastExitDelay = 300 * time.Millisecond
)

// ToastKind is the severity of a notification.
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastError
	ToastWarning
)

// String returns the kind's display label.
func (k ToastKind) String() string {
	switch k {
	case ToastSuccess:
		return "success"
	case ToastError:
		return "error"
	case ToastWarning:
		return "warning"
	default:
		return "info"
	}
}

// Icon returns the marker rendered in front of the message.
func (k ToastKind) Icon() string {
	switch k {
	case ToastSuccess:
		return "✓"
	case ToastError:
		return "✗"
	case ToastWarning:
		return "⚠"
	default:
		return "ℹ"
	}
}

// ToastKindFromString maps a severity name to a ToastKind. Unknown names
// fall back to ToastInfo.
func ToastKindFromString(s string) ToastKind {
	switch s {
	case "success":
		return ToastSuccess
	case "error":
		return ToastError
	case "warning":
		return ToastWarning
	default:
		return ToastInfo
	}
}

// ToastClosedMsg is emitted after a toast has fully left the screen,
// including the exit delay.
type ToastClosedMsg struct{}

// toastDismissMsg fires when the visible duration elapses. The sequence
// number ties it to a specific Show call so a timer armed for an earlier
// toast cannot dismiss a later one.
type toastDismissMsg struct{ seq int }

// toastExitMsg fires after the exit delay once a toast is hidden.
type toastExitMsg struct{ seq int }

// ToastModel renders transient notifications. Each Show supersedes the
// previous toast and invalidates its timers.
type ToastModel struct {
	visible  bool
	message  string
	kind     ToastKind
	duration time.Duration
	seq      int
	width    int
}

// NewToast creates a toast notifier with the default auto-dismiss duration.
func NewToast() ToastModel {
	return ToastModel{duration: DefaultToastDuration}
}

// SetDuration overrides the auto-dismiss duration. Zero disables
// auto-dismiss; such toasts stay until explicitly dismissed.
func (m ToastModel) SetDuration(d time.Duration) ToastModel {
	m.duration = d
	return m
}

// SetWidth sets the render width used to position the toast.
func (m ToastModel) SetWidth(w int) ToastModel {
	m.width = w
	return m
}

// Visible reports whether a toast is currently shown.
func (m ToastModel) Visible() bool {
	return m.visible
}

// Message returns the current toast text.
func (m ToastModel) Message() string {
	return m.message
}

// Kind returns the current toast severity.
func (m ToastModel) Kind() ToastKind {
	return m.kind
}

// Show displays a notification, replacing any toast already on screen.
// The returned command arms the auto-dismiss timer, or is nil when
// auto-dismiss is disabled.
func (m ToastModel) Show(message string, kind ToastKind) (ToastModel, tea.Cmd) {
	m.seq++
	m.visible = true
	m.message = message
	m.kind = kind

	if m.duration == 0 {
		return m, nil
	}

	seq := m.seq
	return m, tea.Tick(m.duration, func(time.Time) tea.Msg {
		return toastDismissMsg{seq: seq}
	})
}

// Dismiss hides the toast immediately and starts the exit delay.
func (m ToastModel) Dismiss() (ToastModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	return m.hide()
}

func (m ToastModel) hide() (ToastModel, tea.Cmd) {
	m.visible = false
	m.seq++

	seq := m.seq
	return m, tea.Tick(ToastExitDelay, func(time.Time) tea.Msg {
		return toastExitMsg{seq: seq}
	})
}

// Update handles toast timer messages.
func (m ToastModel) Update(msg tea.Msg) (ToastModel, tea.Cmd) {
	switch msg := msg.(type) {
	case toastDismissMsg:
		// Stale timer from a superseded toast
		if msg.seq != m.seq || !m.visible {
			return m, nil
		}
		return m.hide()

	case toastExitMsg:
		if msg.seq != m.seq || m.visible {
			return m, nil
		}
		return m, func() tea.Msg { return ToastClosedMsg{} }
	}

	return m, nil
}

// View renders the toast, or an empty string when nothing is shown.
func (m ToastModel) View() string {
	if !m.visible {
		return ""
	}

	var style lipgloss.Style
	switch m.kind {
	case ToastSuccess:
		style = toastSuccessStyle
	case ToastError:
		style = toastErrorStyle
	case ToastWarning:
		style = toastWarningStyle
	default:
		style = toastInfoStyle
	}

	rendered := style.Render(m.kind.Icon() + " " + m.message)
	if m.width > 0 {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, rendered)
	}
	return rendered
}
