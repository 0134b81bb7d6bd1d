package tui

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

// DefaultScrollThreshold is how far down the view must be scrolled before
// the back-to-top shortcut appears.
const DefaultScrollThreshold = 300

// scrollAnimMsg drives one frame of the scroll-to-top animation. The
// sequence number ties frames to a specific ScrollToOrigin call.
type scrollAnimMsg struct{ seq int }

// ScrollTopModel tracks the scroll offset of the main view, shows a
// back-to-top indicator once the offset passes a threshold, and animates
// the return to the origin with spring physics.
type ScrollTopModel struct {
	offset    float64
	velocity  float64
	threshold int
	spring    harmonica.Spring
	animating bool
	seq       int
}

// NewScrollTop creates the widget with the default visibility threshold.
func NewScrollTop() ScrollTopModel {
	return ScrollTopModel{
		threshold: DefaultScrollThreshold,
		spring:    harmonica.NewSpring(harmonica.FPS(60), 12.0, 0.9),
	}
}

// SetThreshold overrides the visibility threshold.
func (m ScrollTopModel) SetThreshold(threshold int) ScrollTopModel {
	m.threshold = threshold
	return m
}

// SetOffset records the current scroll offset. Any user scroll cancels a
// running return animation.
func (m ScrollTopModel) SetOffset(offset int) ScrollTopModel {
	m.offset = float64(offset)
	m.velocity = 0
	m.animating = false
	return m
}

// Offset returns the current scroll offset, rounded to whole rows.
func (m ScrollTopModel) Offset() int {
	return int(math.Round(m.offset))
}

// Visible reports whether the back-to-top shortcut should be shown:
// true once the offset strictly exceeds the threshold.
func (m ScrollTopModel) Visible() bool {
	return m.offset > float64(m.threshold)
}

// Animating reports whether a return-to-top animation is in flight.
func (m ScrollTopModel) Animating() bool {
	return m.animating
}

// ScrollToOrigin starts the animated return to offset zero. A no-op when
// already at the top.
func (m ScrollTopModel) ScrollToOrigin() (ScrollTopModel, tea.Cmd) {
	if m.offset == 0 {
		return m, nil
	}
	m.animating = true
	m.seq++
	return m, m.animFrame()
}

func (m ScrollTopModel) animFrame() tea.Cmd {
	seq := m.seq
	return tea.Tick(time.Millisecond*16, func(time.Time) tea.Msg {
		return scrollAnimMsg{seq: seq}
	})
}

// Update advances the animation one frame per scrollAnimMsg.
func (m ScrollTopModel) Update(msg tea.Msg) (ScrollTopModel, tea.Cmd) {
	anim, ok := msg.(scrollAnimMsg)
	if !ok || anim.seq != m.seq || !m.animating {
		return m, nil
	}

	m.offset, m.velocity = m.spring.Update(m.offset, m.velocity, 0)

	// Settled close enough to the top
	if math.Abs(m.offset) < 0.5 && math.Abs(m.velocity) < 0.5 {
		m.offset = 0
		m.velocity = 0
		m.animating = false
		return m, nil
	}

	return m, m.animFrame()
}

// View renders the back-to-top indicator, or nothing when hidden.
func (m ScrollTopModel) View() string {
	if !m.Visible() {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true).
		Render("↑ top (g)")
}
