package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hubdeck/hubdeck/internal/topic"
)

type fakeGenerator struct {
	id    string
	err   error
	calls int
}

func (g *fakeGenerator) Generate(ctx context.Context) (string, error) {
	g.calls++
	return g.id, g.err
}

type fakeClipboard struct {
	texts []string
	err   error
}

func (c *fakeClipboard) WriteString(text string) error {
	if c.err != nil {
		return c.err
	}
	c.texts = append(c.texts, text)
	return nil
}

// drain executes a command tree and collects the produced messages.
func drain(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, drain(t, c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func findGenerateResult(t *testing.T, msgs []tea.Msg) generateResultMsg {
	t.Helper()
	for _, msg := range msgs {
		if res, ok := msg.(generateResultMsg); ok {
			return res
		}
	}
	t.Fatal("no generateResultMsg produced")
	return generateResultMsg{}
}

func typeString(f FormModel, s string) FormModel {
	for _, r := range s {
		f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return f
}

func keyPress(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// openWithID opens the form and completes generation with the fake's ID.
func openWithID(t *testing.T, gen *fakeGenerator, clip *fakeClipboard) FormModel {
	t.Helper()
	f := NewForm(gen, clip)

	f, cmd := f.SetOpen(true)
	if f.TopicMachine().Phase != topic.PhaseGenerating {
		t.Fatalf("Phase after open = %v, want %v", f.TopicMachine().Phase, topic.PhaseGenerating)
	}

	res := findGenerateResult(t, drain(t, cmd))
	f, _ = f.Update(res)
	return f
}

func TestFormOpenGeneratesTopicID(t *testing.T) {
	gen := &fakeGenerator{id: "483920175648392"}
	f := openWithID(t, gen, &fakeClipboard{})

	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls)
	}
	if f.TopicMachine().Phase != topic.PhaseGenerated {
		t.Errorf("Phase = %v, want %v", f.TopicMachine().Phase, topic.PhaseGenerated)
	}
	if f.TopicMachine().ID != "483920175648392" {
		t.Errorf("ID = %q", f.TopicMachine().ID)
	}
}

func TestFormFallsBackWhenGeneratorFails(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("connection refused")}
	f := openWithID(t, gen, &fakeClipboard{})

	if f.TopicMachine().Phase != topic.PhaseFallback {
		t.Fatalf("Phase = %v, want %v", f.TopicMachine().Phase, topic.PhaseFallback)
	}
	if len(f.TopicMachine().ID) != topic.IDLength {
		t.Errorf("fallback ID length = %d, want %d", len(f.TopicMachine().ID), topic.IDLength)
	}
}

func TestFormReopenKeepsExistingID(t *testing.T) {
	gen := &fakeGenerator{id: "483920175648392"}
	f := openWithID(t, gen, &fakeClipboard{})

	// Hide and reopen without submitting; the ID must survive.
	f, _ = f.SetOpen(false)
	f, _ = f.SetOpen(true)

	if gen.calls != 1 {
		t.Errorf("reopen should not regenerate, generator called %d times", gen.calls)
	}
	if f.TopicMachine().ID != "483920175648392" {
		t.Errorf("ID = %q, want preserved value", f.TopicMachine().ID)
	}
}

func TestFormSubmitRequiresName(t *testing.T) {
	f := openWithID(t, &fakeGenerator{id: "483920175648392"}, &fakeClipboard{})

	f, cmd := f.Update(keyPress("enter"))
	if cmd != nil {
		t.Error("submit with empty name should produce no messages")
	}
	if !f.Open() {
		t.Error("form should stay open")
	}

	// Whitespace-only names are rejected too.
	f = typeString(f, "   ")
	f, cmd = f.Update(keyPress("enter"))
	if cmd != nil || !f.Open() {
		t.Error("whitespace-only name should not submit")
	}
}

func TestFormSubmitEmitsDraft(t *testing.T) {
	f := openWithID(t, &fakeGenerator{id: "483920175648392"}, &fakeClipboard{})

	f = typeString(f, "Sensor Hub")

	// Device: esp32 -> esp8266
	f, _ = f.Update(keyPress("tab"))
	f, _ = f.Update(keyPress("right"))

	// Connectivity: wifi -> ethernet -> mqtt
	f, _ = f.Update(keyPress("tab"))
	f, _ = f.Update(keyPress("right"))
	f, _ = f.Update(keyPress("right"))

	f, cmd := f.Update(keyPress("enter"))
	if f.Open() {
		t.Error("form should close after submit")
	}

	msgs := drain(t, cmd)

	var created *DashboardCreatedMsg
	var closed bool
	for _, msg := range msgs {
		switch msg := msg.(type) {
		case DashboardCreatedMsg:
			m := msg
			created = &m
		case FormClosedMsg:
			closed = true
		}
	}

	if created == nil {
		t.Fatal("no DashboardCreatedMsg emitted")
	}
	if !closed {
		t.Error("no FormClosedMsg emitted")
	}

	draft := created.Draft
	if draft.Name != "Sensor Hub" {
		t.Errorf("Name = %q", draft.Name)
	}
	if draft.Device != "esp8266" {
		t.Errorf("Device = %q, want esp8266", draft.Device)
	}
	if draft.Connectivity != "mqtt" {
		t.Errorf("Connectivity = %q, want mqtt", draft.Connectivity)
	}
	if draft.TopicID != "483920175648392" {
		t.Errorf("TopicID = %q", draft.TopicID)
	}
	if _, err := time.Parse(time.RFC3339, draft.CreatedAt); err != nil {
		t.Errorf("CreatedAt = %q, not RFC 3339: %v", draft.CreatedAt, err)
	}

	// Submission resets the machine for the next use.
	if f.TopicMachine().ID != "" {
		t.Errorf("machine ID after submit = %q, want empty", f.TopicMachine().ID)
	}
}

func TestFormSubmitWithoutTopicIDAllowedByDefault(t *testing.T) {
	f := NewForm(&fakeGenerator{id: "483920175648392"}, &fakeClipboard{})

	// Open but never deliver the generation result.
	f, _ = f.SetOpen(true)
	f = typeString(f, "Quick Board")

	f, cmd := f.Update(keyPress("enter"))
	if f.Open() {
		t.Fatal("form should close: empty Topic ID is allowed by default")
	}

	created := false
	for _, msg := range drain(t, cmd) {
		if c, ok := msg.(DashboardCreatedMsg); ok {
			created = true
			if c.Draft.TopicID != "" {
				t.Errorf("TopicID = %q, want empty", c.Draft.TopicID)
			}
		}
	}
	if !created {
		t.Error("no DashboardCreatedMsg emitted")
	}
}

func TestFormRequireTopicIDBlocksSubmit(t *testing.T) {
	f := NewForm(&fakeGenerator{id: "483920175648392"}, &fakeClipboard{})
	f.RequireTopicID = true

	f, _ = f.SetOpen(true)
	f = typeString(f, "Strict Board")

	f, cmd := f.Update(keyPress("enter"))
	if !f.Open() {
		t.Error("form should stay open until a Topic ID exists")
	}
	if cmd != nil {
		t.Error("blocked submit should produce no messages")
	}
}

func TestFormEscCancelsAndInvalidatesGeneration(t *testing.T) {
	gen := &fakeGenerator{id: "111111111111111"}
	f := NewForm(gen, &fakeClipboard{})

	f, cmd := f.SetOpen(true)
	res := findGenerateResult(t, drain(t, cmd))

	// Cancel while the request is conceptually still in flight.
	f, closeCmd := f.Update(keyPress("esc"))
	if f.Open() {
		t.Error("esc should close the form")
	}

	msgs := drain(t, closeCmd)
	if len(msgs) != 1 {
		t.Fatalf("esc produced %d messages, want 1", len(msgs))
	}
	if _, ok := msgs[0].(FormClosedMsg); !ok {
		t.Errorf("msg = %T, want FormClosedMsg", msgs[0])
	}

	// The late result targets a reset machine and must be discarded.
	f, _ = f.Update(res)
	if f.TopicMachine().ID != "" {
		t.Errorf("stale result applied after cancel: ID = %q", f.TopicMachine().ID)
	}
}

func TestFormCopyFlow(t *testing.T) {
	clip := &fakeClipboard{}
	f := openWithID(t, &fakeGenerator{id: "483920175648392"}, clip)

	// Tab to the Topic ID field: name -> device -> connectivity -> description -> topic.
	for i := 0; i < 4; i++ {
		f, _ = f.Update(keyPress("tab"))
	}

	f, cmd := f.Update(keyPress("c"))
	if cmd == nil {
		t.Fatal("copy should produce a clipboard command")
	}

	f, timerCmd := f.Update(cmd())
	if len(clip.texts) != 1 || clip.texts[0] != "483920175648392" {
		t.Fatalf("clipboard contents = %v", clip.texts)
	}
	if !f.TopicMachine().Copied {
		t.Error("Copied should be set after a successful copy")
	}
	if timerCmd == nil {
		t.Error("successful copy should arm the indicator timer")
	}

	f, _ = f.Update(copyExpiredMsg{seq: f.TopicMachine().CopySeq})
	if f.TopicMachine().Copied {
		t.Error("indicator should clear when the timer fires")
	}
}

func TestFormCopyFailureLeavesIndicatorUnset(t *testing.T) {
	clip := &fakeClipboard{err: errors.New("no display")}
	f := openWithID(t, &fakeGenerator{id: "483920175648392"}, clip)

	for i := 0; i < 4; i++ {
		f, _ = f.Update(keyPress("tab"))
	}

	f, cmd := f.Update(keyPress("c"))
	f, _ = f.Update(cmd())

	if f.TopicMachine().Copied {
		t.Error("Copied must stay unset when the clipboard write fails")
	}
}

func TestFormRegenerate(t *testing.T) {
	gen := &fakeGenerator{id: "111111111111111"}
	f := openWithID(t, gen, &fakeClipboard{})

	for i := 0; i < 4; i++ {
		f, _ = f.Update(keyPress("tab"))
	}

	gen.id = "222222222222222"
	f, cmd := f.Update(keyPress("r"))
	if f.TopicMachine().Phase != topic.PhaseGenerating {
		t.Fatalf("Phase = %v, want %v", f.TopicMachine().Phase, topic.PhaseGenerating)
	}

	res := findGenerateResult(t, drain(t, cmd))
	f, _ = f.Update(res)

	if f.TopicMachine().ID != "222222222222222" {
		t.Errorf("ID = %q, want regenerated value", f.TopicMachine().ID)
	}
}

func TestFormRegenerateRestartsSpinner(t *testing.T) {
	gen := &fakeGenerator{id: "111111111111111"}
	f := openWithID(t, gen, &fakeClipboard{})

	// Finish the first generation so the spinner tick chain has died.
	for i := 0; i < 4; i++ {
		f, _ = f.Update(keyPress("tab"))
	}

	f, cmd := f.Update(keyPress("r"))
	if f.TopicMachine().Phase != topic.PhaseGenerating {
		t.Fatalf("Phase = %v, want %v", f.TopicMachine().Phase, topic.PhaseGenerating)
	}

	var ticked bool
	for _, msg := range drain(t, cmd) {
		if _, ok := msg.(spinner.TickMsg); ok {
			ticked = true
		}
	}
	if !ticked {
		t.Error("regenerate did not re-arm the spinner tick")
	}
}

func TestFormIgnoresKeysWhenClosed(t *testing.T) {
	f := NewForm(&fakeGenerator{id: "483920175648392"}, &fakeClipboard{})

	f, cmd := f.Update(keyPress("enter"))
	if cmd != nil {
		t.Error("closed form should ignore key input")
	}
	if f.Open() {
		t.Error("form should remain closed")
	}
}
