package ui

import (
	"strings"
	"testing"

	"listik/internal/config"
	"listik/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestCapture(t *testing.T) (*Capture, *store.Store) {
	t.Helper()
	setupTest(t)
	st := createTestStore(t)
	c := NewCapture(createTestReconciler(st), st, createTestStyles(), config.Default())
	c.Focus()
	return c, st
}

// typeString feeds s to the capture one rune at a time, the way a
// terminal delivers keystrokes.
func typeString(c *Capture, s string) {
	for _, r := range s {
		c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestCapture_TypingDetectsDate(t *testing.T) {
	c, _ := newTestCapture(t)

	typeString(c, "appeler la banque demain")

	d := c.Draft()
	if d.DetectedDate == nil {
		t.Fatal("expected a detected date after typing 'demain'")
	}
	// testNow is Wednesday January 8, so tomorrow is the 9th.
	if got := store.DateOf(*d.DetectedDate).String(); got != "2025-01-09" {
		t.Errorf("detected date = %s, want 2025-01-09", got)
	}

	view := c.View()
	if !strings.Contains(view, "demain") {
		t.Errorf("expected echo of the buffer in view, got:\n%s", view)
	}
	if !strings.Contains(view, "📅 demain") {
		t.Errorf("expected date hint in view, got:\n%s", view)
	}
}

func TestCapture_SubmitCreatesTask(t *testing.T) {
	c, st := newTestCapture(t)

	typeString(c, "payer le loyer demain urgent")
	cmd := c.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a create command on enter")
	}

	msg := cmd()
	created, ok := msg.(taskCreatedMsg)
	if !ok {
		t.Fatalf("expected taskCreatedMsg, got %T", msg)
	}
	if created.err != nil {
		t.Fatalf("create error: %v", created.err)
	}
	if created.task.Priority != store.PriorityHigh {
		t.Errorf("priority = %q, want high", created.task.Priority)
	}
	if created.task.DueDate == nil || created.task.DueDate.String() != "2025-01-09" {
		t.Errorf("due date = %v, want 2025-01-09", created.task.DueDate)
	}

	// Feed the result back: the input resets for the next capture.
	c.Update(created)
	if c.input.Value() != "" {
		t.Errorf("input not reset after successful submit: %q", c.input.Value())
	}

	// The task is on disk.
	tasks, err := st.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task on disk, got %d", len(tasks))
	}
}

func TestCapture_SubmitEmptyDoesNothing(t *testing.T) {
	c, _ := newTestCapture(t)

	if cmd := c.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("expected no command when submitting an empty buffer")
	}
}

func TestCapture_DatelessSubmitLandsOnToday(t *testing.T) {
	c, _ := newTestCapture(t)

	typeString(c, "arroser les plantes")
	cmd := c.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a create command")
	}

	created := cmd().(taskCreatedMsg)
	if created.err != nil {
		t.Fatalf("create error: %v", created.err)
	}
	if created.task.ScheduledFor == nil || !created.task.ScheduledFor.Equal(store.DateOf(testNow)) {
		t.Errorf("scheduled for = %v, want today", created.task.ScheduledFor)
	}
	if created.task.DueDate != nil {
		t.Errorf("due date = %v, want nil", created.task.DueDate)
	}
}

func TestCapture_CtrlTAppendsTodayLabel(t *testing.T) {
	c, _ := newTestCapture(t)

	typeString(c, "relire le contrat")
	c.Update(tea.KeyMsg{Type: tea.KeyCtrlT})

	if got := c.input.Value(); got != "relire le contrat aujourd'hui" {
		t.Errorf("buffer = %q, want label appended", got)
	}
	d := c.Draft()
	if d.DetectedDate == nil || !store.DateOf(*d.DetectedDate).Equal(store.DateOf(testNow)) {
		t.Errorf("detected date = %v, want today", d.DetectedDate)
	}
}

func TestCapture_CtrlNThenCtrlDRoundTrip(t *testing.T) {
	c, _ := newTestCapture(t)

	typeString(c, "relancer le client")
	c.Update(tea.KeyMsg{Type: tea.KeyCtrlN})

	if got := c.input.Value(); got != "relancer le client demain" {
		t.Errorf("buffer after ctrl+n = %q", got)
	}

	c.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if got := c.input.Value(); got != "relancer le client" {
		t.Errorf("buffer after ctrl+d = %q, want original text", got)
	}
	if c.Draft().DetectedDate != nil {
		t.Error("expected no detected date after clearing")
	}
}

func TestCapture_DateShiftStartsFromDetected(t *testing.T) {
	c, _ := newTestCapture(t)

	typeString(c, "dentiste demain")

	// Shift forward one day: January 9 becomes January 10.
	c.Update(tea.KeyMsg{Type: tea.KeyCtrlRight})

	d := c.Draft()
	if d.DetectedDate == nil {
		t.Fatal("expected a detected date after shifting")
	}
	if got := store.DateOf(*d.DetectedDate).String(); got != "2025-01-10" {
		t.Errorf("detected date = %s, want 2025-01-10", got)
	}
	// The typed expression was replaced with the explicit label.
	if strings.Contains(c.input.Value(), "demain") {
		t.Errorf("buffer still contains the old expression: %q", c.input.Value())
	}
	if !strings.Contains(c.input.Value(), "vendredi 10 janvier") {
		t.Errorf("buffer = %q, want the shifted label", c.input.Value())
	}
}

func TestCapture_CyclePriority(t *testing.T) {
	c, _ := newTestCapture(t)

	typeString(c, "trier les photos")

	c.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	if got := c.Draft().Priority; got != store.PriorityHigh {
		t.Errorf("priority after one cycle = %q, want high", got)
	}

	c.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	if got := c.Draft().Priority; got != store.PriorityLow {
		t.Errorf("priority after two cycles = %q, want low", got)
	}

	c.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	if got := c.Draft().Priority; got != store.PriorityNormal {
		t.Errorf("priority after three cycles = %q, want normal", got)
	}
}

func TestCapture_ShortcutEchoDoesNotReparse(t *testing.T) {
	c, _ := newTestCapture(t)

	typeString(c, "reserver le restaurant")
	c.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	wantDate := store.DateOf(testNow).AddDays(1)

	// Keep typing after the pick; the appended label must not move the date.
	typeString(c, " pour quatre")

	d := c.Draft()
	if d.DetectedDate == nil {
		t.Fatal("expected the picked date to survive further typing")
	}
	if !store.DateOf(*d.DetectedDate).Equal(wantDate) {
		t.Errorf("detected date = %v, want %s", store.DateOf(*d.DetectedDate), wantDate)
	}
}

func TestCapture_BackspaceAfterManualPick(t *testing.T) {
	c, _ := newTestCapture(t)

	typeString(c, "acheter du lait")
	c.Update(tea.KeyMsg{Type: tea.KeyCtrlT})

	if got := c.input.Value(); got != "acheter du lait aujourd'hui" {
		t.Fatalf("buffer after ctrl+t = %q", got)
	}

	// Shortening the buffer right after the pick must shrink or clear the
	// highlighted span along with it.
	c.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	d := c.Draft()
	if d.DateSpan != nil {
		end := d.DateSpan.Offset + d.DateSpan.Length
		if end > len(d.Text) {
			t.Fatalf("span end %d beyond text length %d (%q)", end, len(d.Text), d.Text)
		}
	}
	if d.DetectedDate != nil {
		t.Errorf("truncated label still detected as %v", *d.DetectedDate)
	}

	view := c.View()
	if !strings.Contains(view, "aujourd'hu") {
		t.Errorf("expected the shortened buffer in view, got:\n%s", view)
	}
}

func TestCapture_BlurResetsDraft(t *testing.T) {
	c, _ := newTestCapture(t)

	typeString(c, "brouillon abandonné demain")
	c.Blur()

	if c.Focused() {
		t.Error("expected the input to lose focus")
	}
	if c.input.Value() != "" {
		t.Errorf("input value = %q, want empty after blur", c.input.Value())
	}
	if d := c.Draft(); d.Text != "" || d.DetectedDate != nil {
		t.Errorf("draft not reset after blur: %+v", d)
	}
}

func TestNextPriority(t *testing.T) {
	tests := []struct {
		in, want store.Priority
	}{
		{store.PriorityNormal, store.PriorityHigh},
		{store.PriorityHigh, store.PriorityLow},
		{store.PriorityLow, store.PriorityNormal},
	}
	for _, tc := range tests {
		if got := nextPriority(tc.in); got != tc.want {
			t.Errorf("nextPriority(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
