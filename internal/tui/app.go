package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/hubdeck/hubdeck/internal/config"
	"github.com/hubdeck/hubdeck/internal/dashboard"
	"github.com/hubdeck/hubdeck/internal/discovery"
	"github.com/hubdeck/hubdeck/internal/logging"
	"github.com/hubdeck/hubdeck/internal/topic"
)

// keyMap defines the application key bindings.
type keyMap struct {
	New     key.Binding
	Open    key.Binding
	Delete  key.Binding
	Top     key.Binding
	Up      key.Binding
	Down    key.Binding
	Dismiss key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Open, k.Top, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.New, k.Open, k.Delete},
		{k.Up, k.Down, k.Top},
		{k.Dismiss, k.Help, k.Quit},
	}
}

var defaultKeys = keyMap{
	New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new dashboard")),
	Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Top:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "scroll to top")),
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Dismiss: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss toast")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// serviceFoundMsg reports a topicd instance discovered over mDNS.
type serviceFoundMsg struct {
	service *discovery.Service
}

// saveResultMsg reports the outcome of persisting the registry. The note
// becomes the success toast text.
type saveResultMsg struct {
	note string
	err  error
}

// AppModel is the root Bubble Tea model: the dashboard list, the creation
// modal, the toast notifier, and the scroll-to-top widget.
type AppModel struct {
	registry *config.Registry

	viewport viewport.Model
	ready    bool
	cursor   int

	form      FormModel
	toast     ToastModel
	scrolltop ScrollTopModel

	keys keyMap
	help help.Model

	width  int
	height int
}

// NewApp assembles the application from its configuration.
func NewApp(registry *config.Registry) AppModel {
	prefs := registry.Preferences

	var gen topic.Generator
	if prefs.ServiceURL != "" {
		gen = topic.NewClient(prefs.ServiceURL)
	}

	toast := NewToast()
	if prefs.ToastDuration >= 0 {
		toast = toast.SetDuration(time.Duration(prefs.ToastDuration) * time.Millisecond)
	}

	scrolltop := NewScrollTop()
	if prefs.ScrollThreshold > 0 {
		scrolltop = scrolltop.SetThreshold(prefs.ScrollThreshold)
	}

	m := AppModel{
		registry:  registry,
		form:      NewForm(gen, SystemClipboard{}),
		toast:     toast,
		scrolltop: scrolltop,
		keys:      defaultKeys,
		help:      help.New(),
	}

	// Size the first frame from the terminal itself; Bubble Tea delivers
	// its WindowSizeMsg only after the first render.
	width, height := GetTerminalSize()
	return m.resize(width, height)
}

// resize recomputes the layout for a terminal size.
func (m AppModel) resize(width, height int) AppModel {
	m.width = width
	m.height = height
	m.toast = m.toast.SetWidth(width - 4)
	m.form = m.form.SetWidth(width)

	contentHeight := height - 7 // frame, header, footer
	if contentHeight < 3 {
		contentHeight = 3
	}
	if !m.ready {
		m.viewport = viewport.New(width-4, contentHeight)
		m.ready = true
	} else {
		m.viewport.Width = width - 4
		m.viewport.Height = contentHeight
	}
	m.viewport.SetContent(m.renderDashboards())
	return m
}

// Init starts service discovery when no service URL is configured.
func (m AppModel) Init() tea.Cmd {
	prefs := m.registry.Preferences
	if prefs.ServiceURL != "" || !prefs.AutoDiscover {
		return nil
	}

	timeout := time.Duration(prefs.DiscoverTimeout) * time.Second
	return discoverCmd(timeout)
}

func discoverCmd(timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		scanner := discovery.NewScanner()
		if timeout > 0 {
			scanner.Timeout = timeout
		}
		svc, err := scanner.First(context.Background())
		if err != nil {
			logging.Debug("service discovery found nothing", zap.Error(err))
			return serviceFoundMsg{}
		}
		if err := verifyService(context.Background(), svc.BaseURL()); err != nil {
			logging.Warn("discovered service failed health check",
				zap.String("url", svc.BaseURL()), zap.Error(err))
			return serviceFoundMsg{}
		}
		return serviceFoundMsg{service: svc}
	}
}

// verifyService health-checks a discovered instance before its URL is
// adopted; mDNS records can outlive the service behind them.
func verifyService(ctx context.Context, baseURL string) error {
	ctx, cancel := context.WithTimeout(ctx, topic.DefaultTimeout)
	defer cancel()
	return topic.NewClient(baseURL).Ping(ctx)
}

func saveCmd(registry *config.Registry, note string) tea.Cmd {
	return func() tea.Msg {
		return saveResultMsg{note: note, err: registry.Save()}
	}
}

// Update routes messages to the widgets.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil

	case serviceFoundMsg:
		if msg.service == nil {
			return m, nil
		}
		logging.Info("topic service discovered", zap.String("url", msg.service.BaseURL()))
		m.form = m.form.SetGenerator(topic.NewClient(msg.service.BaseURL()))
		var cmd tea.Cmd
		m.toast, cmd = m.toast.Show(fmt.Sprintf("topic service found at %s", msg.service.BaseURL()), ToastInfo)
		return m, cmd

	case DashboardCreatedMsg:
		m.registry.AddDashboard(msg.Draft)
		m.cursor = len(m.registry.Dashboards) - 1
		m.viewport.SetContent(m.renderDashboards())
		return m, saveCmd(m.registry, fmt.Sprintf("dashboard %q saved", msg.Draft.Name))

	case FormClosedMsg:
		return m, nil

	case saveResultMsg:
		var cmd tea.Cmd
		if msg.err != nil {
			logging.Error("failed to save configuration", zap.Error(msg.err))
			m.toast, cmd = m.toast.Show("failed to save: "+msg.err.Error(), ToastError)
		} else {
			m.toast, cmd = m.toast.Show(msg.note, ToastSuccess)
		}
		return m, cmd

	case scrollAnimMsg:
		var cmd tea.Cmd
		m.scrolltop, cmd = m.scrolltop.Update(msg)
		m.viewport.SetYOffset(m.scrolltop.Offset())
		return m, cmd

	case tea.KeyMsg:
		if m.form.Open() {
			var cmd tea.Cmd
			m.form, cmd = m.form.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)
	}

	// Everything else fans out to the widgets that own timers.
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	cmds = append(cmds, cmd)
	m.toast, cmd = m.toast.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.New):
		var cmd tea.Cmd
		m.form, cmd = m.form.SetOpen(true)
		return m, cmd

	case key.Matches(msg, m.keys.Open):
		if len(m.registry.Dashboards) == 0 {
			return m, nil
		}
		name := m.registry.Dashboards[m.cursor].Name
		m.registry.TouchDashboard(name, time.Now())
		m.viewport.SetContent(m.renderDashboards())
		return m, saveCmd(m.registry, fmt.Sprintf("opened %q", name))

	case key.Matches(msg, m.keys.Delete):
		if len(m.registry.Dashboards) == 0 {
			return m, nil
		}
		name := m.registry.Dashboards[m.cursor].Name
		m.registry.RemoveDashboard(name)
		if m.cursor >= len(m.registry.Dashboards) && m.cursor > 0 {
			m.cursor--
		}
		m.viewport.SetContent(m.renderDashboards())
		return m, saveCmd(m.registry, fmt.Sprintf("deleted %q", name))

	case key.Matches(msg, m.keys.Dismiss):
		var cmd tea.Cmd
		m.toast, cmd = m.toast.Dismiss()
		return m, cmd

	case key.Matches(msg, m.keys.Top):
		var cmd tea.Cmd
		m.scrolltop, cmd = m.scrolltop.ScrollToOrigin()
		return m, cmd

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.viewport.SetContent(m.renderDashboards())
		m.viewport.LineUp(3)
		m.scrolltop = m.scrolltop.SetOffset(m.viewport.YOffset)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.registry.Dashboards)-1 {
			m.cursor++
		}
		m.viewport.SetContent(m.renderDashboards())
		m.viewport.LineDown(3)
		m.scrolltop = m.scrolltop.SetOffset(m.viewport.YOffset)
		return m, nil
	}

	return m, nil
}

// renderDashboards builds the card list shown in the main viewport.
func (m AppModel) renderDashboards() string {
	if len(m.registry.Dashboards) == 0 {
		return SubtitleStyle.Render("No dashboards yet. Press 'n' to create one.")
	}

	var b strings.Builder
	for i, entry := range m.registry.Dashboards {
		style := CardStyle
		if i == m.cursor {
			style = SelectedCardStyle
		}

		device := dashboard.DeviceType(entry.Device).Label()
		conn := dashboard.Connectivity(entry.Connectivity).Label()

		var card strings.Builder
		card.WriteString(FieldLabelStyle.Render(entry.Name))
		card.WriteString("\n")
		card.WriteString(fmt.Sprintf("%s via %s", device, conn))
		if entry.TopicID != "" {
			card.WriteString("  ·  topic ")
			card.WriteString(TopicIDStyle.Render(entry.TopicID))
		}
		if entry.Description != "" {
			card.WriteString("\n")
			card.WriteString(SubtitleStyle.Render(entry.Description))
		}
		if entry.LastOpened != "" {
			card.WriteString("\n")
			card.WriteString(SubtitleStyle.Render("last opened " + entry.LastOpened))
		}

		b.WriteString(style.Render(card.String()))
		b.WriteString("\n")
	}
	return b.String()
}

// View renders the full application frame.
func (m AppModel) View() string {
	if !m.ready {
		return "loading..."
	}

	if m.form.Open() {
		return RenderModal(m.form.View(), m.width, m.height)
	}

	var b strings.Builder
	b.WriteString(m.viewport.View())

	if indicator := m.scrolltop.View(); indicator != "" {
		b.WriteString("\n")
		b.WriteString(indicator)
	}

	if toast := m.toast.View(); toast != "" {
		b.WriteString("\n")
		b.WriteString(toast)
	}

	footer := m.help.View(m.keys)
	return RenderApplicationContainer(b.String(), footer, m.width, m.height)
}
