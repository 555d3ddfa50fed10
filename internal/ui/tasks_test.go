package ui

import (
	"strings"
	"testing"
	"time"

	"listik/internal/config"
	"listik/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestTaskPane(t *testing.T) (*TaskPane, *store.Store) {
	t.Helper()
	setupTest(t)
	st := createTestStore(t)
	pane := NewTaskPane(createTestReconciler(st), st, createTestStyles(), config.Default())
	pane.SetSize(60, 24)
	pane.SetFocused(true)
	return pane, st
}

// addToday creates a task scheduled for the fixed test day.
func addToday(t *testing.T, st *store.Store, text string) *store.Task {
	t.Helper()
	today := st.Today()
	task, err := st.Create(store.CreateTask{Text: text, ScheduledFor: &today})
	if err != nil {
		t.Fatalf("Create(%q): %v", text, err)
	}
	return task
}

func loadToday(t *testing.T, pane *TaskPane, st *store.Store) {
	t.Helper()
	tasks, err := st.ListToday()
	if err != nil {
		t.Fatalf("ListToday: %v", err)
	}
	pane.setTasks(tasks)
}

func TestTaskPaneView_Empty(t *testing.T) {
	pane, _ := newTestTaskPane(t)

	output := pane.View()
	if !strings.Contains(output, "AUJOURD'HUI") {
		t.Errorf("expected title in output, got:\n%s", output)
	}
	if !strings.Contains(output, "Rien pour aujourd'hui") {
		t.Errorf("expected empty state message, got:\n%s", output)
	}
}

func TestTaskPaneView_WithTasks(t *testing.T) {
	pane, st := newTestTaskPane(t)

	addToday(t, st, "Acheter du pain")
	addToday(t, st, "Appeler la banque")
	loadToday(t, pane, st)

	output := pane.View()
	if !strings.Contains(output, "Acheter du pain") {
		t.Errorf("expected first task in output, got:\n%s", output)
	}
	if !strings.Contains(output, "Appeler la banque") {
		t.Errorf("expected second task in output, got:\n%s", output)
	}
	if !strings.Contains(output, "0/2") {
		t.Errorf("expected stats line 0/2, got:\n%s", output)
	}
}

func TestTaskPaneView_CompletedTask(t *testing.T) {
	pane, st := newTestTaskPane(t)

	task := addToday(t, st, "Ranger le bureau")
	if _, err := st.ToggleStatus(task.ID); err != nil {
		t.Fatalf("ToggleStatus: %v", err)
	}
	loadToday(t, pane, st)

	output := pane.View()
	if !strings.Contains(output, "1/1") {
		t.Errorf("expected stats 1/1 after completion, got:\n%s", output)
	}
}

func TestTaskPane_Navigation(t *testing.T) {
	pane, st := newTestTaskPane(t)

	addToday(t, st, "un")
	addToday(t, st, "deux")
	addToday(t, st, "trois")
	loadToday(t, pane, st)

	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	up := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}

	pane.Update(down)
	pane.Update(down)
	if pane.cursor != 2 {
		t.Errorf("cursor = %d after two downs, want 2", pane.cursor)
	}

	// Cursor clamps at the bottom
	pane.Update(down)
	if pane.cursor != 2 {
		t.Errorf("cursor = %d after extra down, want 2", pane.cursor)
	}

	pane.Update(up)
	if pane.cursor != 1 {
		t.Errorf("cursor = %d after up, want 1", pane.cursor)
	}

	pane.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	if pane.cursor != 0 {
		t.Errorf("cursor = %d after g, want 0", pane.cursor)
	}

	pane.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	if pane.cursor != 2 {
		t.Errorf("cursor = %d after G, want 2", pane.cursor)
	}
}

func TestTaskPane_ToggleProducesCommand(t *testing.T) {
	pane, st := newTestTaskPane(t)

	addToday(t, st, "cocher moi")
	loadToday(t, pane, st)

	cmd := pane.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if cmd == nil {
		t.Fatal("expected a toggle command, got nil")
	}

	msg := cmd()
	toggled, ok := msg.(taskToggledMsg)
	if !ok {
		t.Fatalf("expected taskToggledMsg, got %T", msg)
	}
	if toggled.err != nil {
		t.Fatalf("toggle error: %v", toggled.err)
	}
	if toggled.task.Status != store.StatusCompleted {
		t.Errorf("status = %q, want completed", toggled.task.Status)
	}
}

func TestTaskPane_CaptureKeyOpensInput(t *testing.T) {
	pane, _ := newTestTaskPane(t)

	if pane.IsCapturing() {
		t.Fatal("pane should not start in capture mode")
	}

	pane.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	if !pane.IsCapturing() {
		t.Error("expected capture mode after 'a'")
	}
}

func TestTaskPane_EscCancelsCapture(t *testing.T) {
	pane, _ := newTestTaskPane(t)

	pane.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	pane.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if pane.IsCapturing() {
		t.Error("expected capture mode to end after esc")
	}
}

func TestTaskPane_UnfocusBlursCapture(t *testing.T) {
	pane, _ := newTestTaskPane(t)

	pane.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	pane.SetFocused(false)

	if pane.IsCapturing() {
		t.Error("expected capture mode to end when the pane loses focus")
	}
}

func TestTaskPane_Stats(t *testing.T) {
	pane, st := newTestTaskPane(t)

	addToday(t, st, "a")
	b := addToday(t, st, "b")
	addToday(t, st, "c")
	if _, err := st.ToggleStatus(b.ID); err != nil {
		t.Fatalf("ToggleStatus: %v", err)
	}
	loadToday(t, pane, st)

	done, total := pane.Stats()
	if done != 1 || total != 3 {
		t.Errorf("Stats() = (%d, %d), want (1, 3)", done, total)
	}
}

func TestFormatDueDate(t *testing.T) {
	pane, st := newTestTaskPane(t)
	today := st.Today()

	tests := []struct {
		name string
		due  *store.Date
		want string
	}{
		{"no due date", nil, ""},
		{"overdue", datePtrFrom(today.AddDays(-2)), "!"},
		{"today", &today, "T"},
		{"tomorrow", datePtrFrom(today.AddDays(1)), "+1"},
		{"this week", datePtrFrom(today.AddDays(5)), "5j"},
		{"two weeks", datePtrFrom(today.AddDays(14)), "2s"},
		{"far future", datePtrFrom(today.AddDays(90)), ">1m"},
	}

	// A completed task carries no late marker.
	lateDone := store.Task{Status: store.StatusCompleted, DueDate: datePtrFrom(today.AddDays(-2))}
	if got := pane.formatDueDate(&lateDone); got != "" {
		t.Errorf("formatDueDate for completed late task = %q, want empty", got)
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			task := store.Task{Status: store.StatusPending, DueDate: tc.due}
			got := pane.formatDueDate(&task)
			if tc.want == "" {
				if got != "" {
					t.Errorf("formatDueDate = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tc.want) {
				t.Errorf("formatDueDate = %q, want to contain %q", got, tc.want)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	a := store.DateOf(time.Date(2025, time.March, 29, 0, 0, 0, 0, time.UTC))

	// Spans the European DST switch on March 30.
	if got := daysBetween(a, a.AddDays(3)); got != 3 {
		t.Errorf("daysBetween across DST = %d, want 3", got)
	}
	if got := daysBetween(a, a); got != 0 {
		t.Errorf("daysBetween same day = %d, want 0", got)
	}
	if got := daysBetween(a, a.AddDays(-1)); got != -1 {
		t.Errorf("daysBetween backwards = %d, want -1", got)
	}
}

func datePtrFrom(d store.Date) *store.Date {
	return &d
}
