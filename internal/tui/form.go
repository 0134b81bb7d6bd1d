package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/hubdeck/hubdeck/internal/dashboard"
	"github.com/hubdeck/hubdeck/internal/logging"
	"github.com/hubdeck/hubdeck/internal/topic"
)

// Form fields in focus order.
const (
	fieldName = iota
	fieldDevice
	fieldConnectivity
	fieldDescription
	fieldTopicID
	fieldCount
)

// DashboardCreatedMsg is emitted when the form is submitted successfully.
type DashboardCreatedMsg struct {
	Draft dashboard.Draft
}

// FormClosedMsg is emitted when the form closes, whether by submission
// or cancellation.
type FormClosedMsg struct{}

// generateResultMsg carries the outcome of a remote Topic ID request.
type generateResultMsg struct {
	seq int
	id  string
	err error
}

// copyResultMsg carries the outcome of a clipboard write.
type copyResultMsg struct {
	seq int
	err error
}

// copyExpiredMsg fires when the "copied" indicator should clear.
type copyExpiredMsg struct {
	seq int
}

// FormModel is the dashboard-creation modal: name and description inputs,
// device and connectivity selectors, and the auto-generated Topic ID.
type FormModel struct {
	open  bool
	focus int

	nameInput textinput.Model
	descInput textinput.Model

	deviceIdx int
	connIdx   int

	machine topic.Machine
	spinner spinner.Model

	generator topic.Generator
	clipboard Clipboard
	now       func() time.Time

	// RequireTopicID blocks submission until a Topic ID is present.
	// Off by default: a dashboard may be created before generation
	// finishes, leaving the Topic ID empty.
	RequireTopicID bool

	errMsg string
	width  int
}

// NewForm creates the creation form with its injected capabilities.
func NewForm(generator topic.Generator, clip Clipboard) FormModel {
	name := textinput.New()
	name.Placeholder = "My Sensor Hub"
	name.CharLimit = 64
	name.Width = 40

	desc := textinput.New()
	desc.Placeholder = "optional description"
	desc.CharLimit = 200
	desc.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle

	return FormModel{
		nameInput: name,
		descInput: desc,
		spinner:   sp,
		generator: generator,
		clipboard: clip,
		now:       time.Now,
	}
}

// Open reports whether the form is currently shown.
func (m FormModel) Open() bool {
	return m.open
}

// TopicMachine exposes the generation state for rendering and tests.
func (m FormModel) TopicMachine() topic.Machine {
	return m.machine
}

// SetWidth sets the modal render width.
func (m FormModel) SetWidth(w int) FormModel {
	m.width = w
	return m
}

// SetGenerator swaps the Topic ID source, e.g. once a service is
// discovered on the network.
func (m FormModel) SetGenerator(gen topic.Generator) FormModel {
	m.generator = gen
	return m
}

// SetOpen shows or hides the form. Opening kicks off Topic ID generation
// if none is present yet; closing resets nothing so a reopened form keeps
// its half-typed state. Use reset() on submit/cancel.
func (m FormModel) SetOpen(open bool) (FormModel, tea.Cmd) {
	m.open = open
	if !open {
		return m, nil
	}

	m.focus = fieldName
	m.nameInput.Focus()
	m.descInput.Blur()

	var cmds []tea.Cmd
	cmds = append(cmds, m.spinner.Tick)
	if m.machine.ID == "" && m.machine.Phase != topic.PhaseGenerating {
		var eff topic.Effect
		m.machine, eff = m.machine.Step(topic.GenerateRequested{})
		if cmd := m.runEffect(eff); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

// reset returns the form to its initial state and invalidates any
// in-flight generation or copy timers.
func (m FormModel) reset() FormModel {
	m.nameInput.SetValue("")
	m.descInput.SetValue("")
	m.deviceIdx = 0
	m.connIdx = 0
	m.focus = fieldName
	m.errMsg = ""
	m.machine, _ = m.machine.Step(topic.ResetRequested{})
	return m
}

// runEffect maps a machine effect onto a Bubble Tea command.
func (m FormModel) runEffect(eff topic.Effect) tea.Cmd {
	switch eff.Kind {
	case topic.EffectGenerate:
		gen := m.generator
		now := m.now
		seq := eff.Seq
		return func() tea.Msg {
			if gen == nil {
				return generateResultMsg{seq: seq, id: topic.FallbackID(now())}
			}
			ctx, cancel := context.WithTimeout(context.Background(), topic.DefaultTimeout)
			defer cancel()
			id, err := gen.Generate(ctx)
			if err != nil {
				return generateResultMsg{seq: seq, id: topic.FallbackID(now()), err: err}
			}
			return generateResultMsg{seq: seq, id: id}
		}

	case topic.EffectCopy:
		clip := m.clipboard
		seq := eff.Seq
		id := eff.ID
		return func() tea.Msg {
			if clip == nil {
				return copyResultMsg{seq: seq, err: errNoClipboard}
			}
			return copyResultMsg{seq: seq, err: clip.WriteString(id)}
		}

	case topic.EffectArmCopyTimer:
		seq := eff.Seq
		return tea.Tick(topic.CopiedFlagDuration, func(time.Time) tea.Msg {
			return copyExpiredMsg{seq: seq}
		})
	}

	return nil
}

// step feeds an event through the machine and schedules its effect.
func (m FormModel) step(ev topic.Event) (FormModel, tea.Cmd) {
	var eff topic.Effect
	m.machine, eff = m.machine.Step(ev)
	return m, m.runEffect(eff)
}

// Update handles form input and async results.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case generateResultMsg:
		if msg.err != nil {
			logging.Warn("topic id generation failed, using fallback", zap.Error(msg.err))
			return m.step(topic.GenerateFailed{Seq: msg.seq, FallbackID: msg.id})
		}
		return m.step(topic.GenerateSucceeded{Seq: msg.seq, ID: msg.id})

	case copyResultMsg:
		if msg.err != nil {
			logging.Warn("clipboard write failed", zap.Error(msg.err))
			return m.step(topic.CopyFailed{Seq: msg.seq})
		}
		return m.step(topic.CopySucceeded{Seq: msg.seq})

	case copyExpiredMsg:
		return m.step(topic.CopyExpired{Seq: msg.seq})

	case spinner.TickMsg:
		if !m.open || m.machine.Phase != topic.PhaseGenerating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if !m.open {
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m FormModel) handleKey(msg tea.KeyMsg) (FormModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.open = false
		m = m.reset()
		return m, func() tea.Msg { return FormClosedMsg{} }

	case "enter":
		return m.submit()

	case "tab", "down":
		return m.moveFocus(1), nil

	case "shift+tab", "up":
		return m.moveFocus(-1), nil
	}

	switch m.focus {
	case fieldName:
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd

	case fieldDescription:
		var cmd tea.Cmd
		m.descInput, cmd = m.descInput.Update(msg)
		return m, cmd

	case fieldDevice:
		switch msg.String() {
		case "left", "h":
			if m.deviceIdx > 0 {
				m.deviceIdx--
			}
		case "right", "l":
			if m.deviceIdx < len(dashboard.DeviceTypes)-1 {
				m.deviceIdx++
			}
		}
		return m, nil

	case fieldConnectivity:
		switch msg.String() {
		case "left", "h":
			if m.connIdx > 0 {
				m.connIdx--
			}
		case "right", "l":
			if m.connIdx < len(dashboard.Connectivities)-1 {
				m.connIdx++
			}
		}
		return m, nil

	case fieldTopicID:
		switch msg.String() {
		case "r":
			f, cmd := m.step(topic.GenerateRequested{})
			if f.machine.Phase == topic.PhaseGenerating {
				// SetOpen armed the spinner, but the tick chain stops
				// once generation finishes; a manual regenerate needs
				// a fresh tick.
				cmd = tea.Batch(cmd, f.spinner.Tick)
			}
			return f, cmd
		case "c":
			return m.step(topic.CopyRequested{})
		}
		return m, nil
	}

	return m, nil
}

func (m FormModel) moveFocus(delta int) FormModel {
	m.focus = (m.focus + delta + fieldCount) % fieldCount

	if m.focus == fieldName {
		m.nameInput.Focus()
	} else {
		m.nameInput.Blur()
	}
	if m.focus == fieldDescription {
		m.descInput.Focus()
	} else {
		m.descInput.Blur()
	}
	return m
}

// submit validates the form and emits DashboardCreatedMsg + FormClosedMsg.
// An empty name keeps the form open; everything else resets and closes it.
func (m FormModel) submit() (FormModel, tea.Cmd) {
	name := strings.TrimSpace(m.nameInput.Value())
	if name == "" {
		m.errMsg = "name is required"
		return m, nil
	}

	if m.RequireTopicID && m.machine.ID == "" {
		m.errMsg = "waiting for topic id"
		return m, nil
	}

	draft, err := dashboard.NewDraft(
		name,
		dashboard.DeviceTypes[m.deviceIdx],
		dashboard.Connectivities[m.connIdx],
		strings.TrimSpace(m.descInput.Value()),
		m.machine.ID,
		m.now(),
	)
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	m.open = false
	m = m.reset()
	return m, tea.Batch(
		func() tea.Msg { return DashboardCreatedMsg{Draft: draft} },
		func() tea.Msg { return FormClosedMsg{} },
	)
}

// View renders the creation modal content.
func (m FormModel) View() string {
	if !m.open {
		return ""
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render("New Dashboard"))
	b.WriteString("\n")

	b.WriteString(m.renderLabel("Name", fieldName))
	b.WriteString("\n")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n\n")

	b.WriteString(m.renderLabel("Device", fieldDevice))
	b.WriteString("\n")
	b.WriteString(m.renderChoices(deviceLabels(), m.deviceIdx, m.focus == fieldDevice))
	b.WriteString("\n\n")

	b.WriteString(m.renderLabel("Connectivity", fieldConnectivity))
	b.WriteString("\n")
	b.WriteString(m.renderChoices(connectivityLabels(), m.connIdx, m.focus == fieldConnectivity))
	b.WriteString("\n\n")

	b.WriteString(m.renderLabel("Description", fieldDescription))
	b.WriteString("\n")
	b.WriteString(m.descInput.View())
	b.WriteString("\n\n")

	b.WriteString(m.renderLabel("Topic ID", fieldTopicID))
	b.WriteString("\n")
	b.WriteString(m.renderTopicID())
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(ErrorColor).Render("✗ " + m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("tab: next field • enter: create • esc: cancel"))

	width := SafeModalWidth(56, m.width)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(1, 2).
		Width(width)

	return box.Render(b.String())
}

func (m FormModel) renderLabel(text string, field int) string {
	if m.focus == field {
		return FocusedInputStyle.Render("▸ " + text)
	}
	return FieldLabelStyle.Render("  " + text)
}

func (m FormModel) renderChoices(labels []string, selected int, focused bool) string {
	parts := make([]string, len(labels))
	for i, label := range labels {
		switch {
		case i == selected && focused:
			parts[i] = FocusedInputStyle.Render("[" + label + "]")
		case i == selected:
			parts[i] = TopicIDStyle.Render("[" + label + "]")
		default:
			parts[i] = BlurredInputStyle.Render(" " + label + " ")
		}
	}
	return "  " + strings.Join(parts, " ")
}

func (m FormModel) renderTopicID() string {
	switch m.machine.Phase {
	case topic.PhaseGenerating:
		return "  " + m.spinner.View() + " generating..."

	case topic.PhaseGenerated, topic.PhaseFallback:
		line := "  " + TopicIDStyle.Render(m.machine.ID)
		if m.machine.Copied {
			line += " " + CopiedStyle.Render("copied!")
		} else if m.focus == fieldTopicID {
			line += " " + HelpStyle.Render("(c: copy, r: regenerate)")
		}
		if m.machine.Phase == topic.PhaseFallback {
			line += "\n  " + FallbackNoticeStyle.Render("offline fallback id")
		}
		return line

	default:
		return "  " + BlurredInputStyle.Render("—")
	}
}

func deviceLabels() []string {
	labels := make([]string, len(dashboard.DeviceTypes))
	for i, d := range dashboard.DeviceTypes {
		labels[i] = d.Label()
	}
	return labels
}

func connectivityLabels() []string {
	labels := make([]string, len(dashboard.Connectivities))
	for i, c := range dashboard.Connectivities {
		labels[i] = c.Label()
	}
	return labels
}
