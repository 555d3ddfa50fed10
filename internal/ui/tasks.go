// Package ui provides terminal user interface components for the listik app.
package ui

import (
	"fmt"
	"strings"
	"time"

	"listik/internal/config"
	"listik/internal/draft"
	"listik/internal/store"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// TaskPane is the daily view: today's tasks plus the capture input.
type TaskPane struct {
	tasks   []store.Task
	cursor  int
	focused bool
	width   int
	height  int
	capture *Capture
	store   *store.Store
	styles  *Styles

	// Key bindings
	keys TaskKeyMap
}

// NewTaskPane creates the daily view.
func NewTaskPane(rec *draft.Reconciler, st *store.Store, styles *Styles, cfg *config.Config) *TaskPane {
	keyCfg := &config.KeysConfig{}
	if cfg != nil {
		keyCfg = &cfg.Keys
	}

	return &TaskPane{
		tasks:   []store.Task{},
		cursor:  0,
		focused: true,
		capture: NewCapture(rec, st, styles, cfg),
		store:   st,
		styles:  styles,
		keys:    NewTaskKeyMap(keyCfg),
	}
}

// LoadCmd returns a command that loads today's tasks asynchronously.
func (p *TaskPane) LoadCmd() tea.Cmd {
	return loadTodayCmd(p.store)
}

// setTasks updates the task list and adjusts cursor bounds. The store
// returns tasks already sorted.
func (p *TaskPane) setTasks(tasks []store.Task) {
	p.tasks = tasks
	if p.cursor >= len(p.tasks) {
		p.cursor = max(0, len(p.tasks)-1)
	}
}

// SetSize sets the pane dimensions.
func (p *TaskPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.capture.SetWidth(width)
}

// SetFocused sets whether this pane is focused.
func (p *TaskPane) SetFocused(focused bool) {
	p.focused = focused
	if !focused {
		p.capture.Blur()
	}
}

// IsFocused returns whether this pane is focused.
func (p *TaskPane) IsFocused() bool {
	return p.focused
}

// IsCapturing returns whether the capture input has focus.
func (p *TaskPane) IsCapturing() bool {
	return p.capture.Focused()
}

// Tick forwards the app tick to the capture flash timer.
func (p *TaskPane) Tick() {
	p.capture.Tick()
}

// Update handles messages for the daily view.
func (p *TaskPane) Update(msg tea.Msg) tea.Cmd {
	// Handle async messages first
	switch msg := msg.(type) {
	case todayLoadedMsg:
		if msg.tasks != nil {
			p.setTasks(msg.tasks)
		}
		return nil

	case taskCreatedMsg:
		cmd := p.capture.Update(msg)
		if msg.err == nil {
			// Reload to get the updated list with the new task
			return tea.Batch(cmd, p.LoadCmd())
		}
		return cmd

	case taskToggledMsg:
		// Reload to refresh task state
		return p.LoadCmd()
	}

	// While capturing, the input owns the keyboard.
	if p.capture.Focused() {
		return p.capture.Update(msg)
	}

	// Normal mode
	if !p.focused {
		return nil
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return p.handleMouse(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Down):
			if len(p.tasks) > 0 {
				p.cursor = min(p.cursor+1, len(p.tasks)-1)
			}

		case key.Matches(msg, p.keys.Up):
			if len(p.tasks) > 0 {
				p.cursor = max(p.cursor-1, 0)
			}

		case key.Matches(msg, p.keys.Top):
			p.cursor = 0

		case key.Matches(msg, p.keys.Bottom):
			if len(p.tasks) > 0 {
				p.cursor = len(p.tasks) - 1
			}

		case key.Matches(msg, p.keys.Capture):
			return p.capture.Focus()

		case key.Matches(msg, p.keys.Toggle):
			// Toggle done asynchronously
			if len(p.tasks) > 0 && p.cursor < len(p.tasks) {
				return toggleTaskCmd(p.store, p.tasks[p.cursor].ID)
			}
		}
	}

	return nil
}

// handleMouse processes mouse events for the daily view.
func (p *TaskPane) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if len(p.tasks) == 0 {
		return nil
	}

	// Content starts after title (1) + separator (1) = row 2
	const headerRows = 2

	// Mirror the view windowing logic so clicks map to the visible slice.
	maxTasks := p.visibleRows()
	startIdx := 0
	if p.cursor >= maxTasks {
		startIdx = p.cursor - maxTasks + 1
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		p.cursor = max(p.cursor-1, 0)
		return nil

	case tea.MouseButtonWheelDown:
		p.cursor = min(p.cursor+1, len(p.tasks)-1)
		return nil

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}

		// Calculate which task was clicked
		taskRow := msg.Y - headerRows
		if taskRow < 0 || taskRow >= maxTasks {
			return nil
		}

		taskIdx := startIdx + taskRow
		if taskIdx < 0 || taskIdx >= len(p.tasks) {
			return nil
		}

		// Move cursor to clicked task
		p.cursor = taskIdx

		// Checkbox area is the first few characters of the line.
		if msg.X < 5 {
			return toggleTaskCmd(p.store, p.tasks[taskIdx].ID)
		}
	}

	return nil
}

func (p *TaskPane) visibleRows() int {
	rows := p.height - 8 // title, separator, capture block, stats
	if rows < 3 {
		rows = 5
	}
	return rows
}

// View renders the daily view.
func (p *TaskPane) View() string {
	var b strings.Builder

	// Title
	title := p.styles.PaneTitleStyle.Render("☀ AUJOURD'HUI")
	b.WriteString(title)
	b.WriteString("\n")

	// Separator
	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorMuted).Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	// Tasks list
	if len(p.tasks) == 0 && !p.capture.Focused() {
		b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorTextMuted).Italic(true).Render("  Rien pour aujourd'hui. Appuyez sur 'a' pour ajouter."))
		b.WriteString("\n")
	} else {
		maxTasks := p.visibleRows()

		startIdx := 0
		if p.cursor >= maxTasks {
			startIdx = p.cursor - maxTasks + 1
		}

		doneCount := 0

		for i, task := range p.tasks {
			if task.Status == store.StatusCompleted {
				doneCount++
			}

			if i < startIdx || i >= startIdx+maxTasks {
				continue
			}

			selected := i == p.cursor && p.focused && !p.capture.Focused()
			b.WriteString(p.renderTaskLine(task, selected))
			b.WriteString("\n")
		}

		// Stats
		b.WriteString("\n")
		stats := p.styles.StatLabelStyle.Render(fmt.Sprintf("%d/%d terminées", doneCount, len(p.tasks)))
		b.WriteString("  " + stats)
		b.WriteString("\n")
	}

	// Capture input
	if p.capture.Focused() {
		b.WriteString("\n")
		b.WriteString(p.capture.View())
		b.WriteString("\n")
	}

	// Apply pane style
	content := b.String()
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}

	return style.Width(p.width).Height(p.height).Render(content)
}

// renderTaskLine renders one task row with badge, checkbox, and due marker.
func (p *TaskPane) renderTaskLine(task store.Task, selected bool) string {
	priorityBadge := p.formatPriorityBadge(task.Priority)

	var checkbox string
	if task.Status == store.StatusCompleted {
		checkbox = p.styles.TaskCheckboxDone
	} else {
		checkbox = p.styles.TaskCheckboxPending
	}

	dueIndicator := p.formatDueDate(&task)
	dueWidth := lipgloss.Width(dueIndicator)

	// Layout: [space][priority][checkbox][space][text][padding][due]
	fixedWidth := 6
	if dueWidth > 0 {
		fixedWidth += dueWidth + 1
	}
	availableTextWidth := p.width - 4 - fixedWidth
	if availableTextWidth < 5 {
		availableTextWidth = 5
	}

	taskText := runewidth.Truncate(task.Text, availableTextWidth, "..")
	taskTextWidth := runewidth.StringWidth(taskText)

	if selected {
		textPart := fmt.Sprintf("%s%s %s", priorityBadge, checkbox, taskText)
		if dueWidth > 0 {
			padding := availableTextWidth - taskTextWidth
			if padding < 1 {
				padding = 1
			}
			textPart += strings.Repeat(" ", padding) + dueIndicator
		}
		return p.styles.TaskSelectedStyle.Render(" " + textPart + " ")
	}

	var styledText string
	if task.Status == store.StatusCompleted {
		styledText = p.styles.TaskDoneStyle.Render(taskText)
	} else {
		styledText = p.styles.TaskPendingStyle.Render(taskText)
	}

	textPart := fmt.Sprintf(" %s%s %s", priorityBadge, checkbox, styledText)
	if dueWidth > 0 {
		padding := availableTextWidth - taskTextWidth
		if padding < 1 {
			padding = 1
		}
		textPart += strings.Repeat(" ", padding) + dueIndicator
	}
	return textPart
}

// Stats returns task statistics.
func (p *TaskPane) Stats() (done, total int) {
	for _, task := range p.tasks {
		if task.Status == store.StatusCompleted {
			done++
		}
	}
	return done, len(p.tasks)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// formatPriorityBadge returns a styled priority indicator.
// Returns: "!" for high, "·" for low, " " for normal.
func (p *TaskPane) formatPriorityBadge(priority store.Priority) string {
	switch priority {
	case store.PriorityHigh:
		return p.styles.PriorityHighStyle.Render("!")
	case store.PriorityLow:
		return p.styles.PriorityLowStyle.Render("·")
	default:
		return " " // space placeholder for alignment
	}
}

// formatDueDate returns a compact, styled due date indicator.
// Returns empty string if no due date, otherwise: "!" (overdue), "T" (today),
// "+1" (tomorrow), "3j" (days), "2s" (weeks), ">1m" (over a month).
func (p *TaskPane) formatDueDate(task *store.Task) string {
	if task.DueDate == nil {
		return ""
	}

	today := p.store.Today()
	days := daysBetween(today, *task.DueDate)

	switch {
	case days < 0:
		// Completed tasks carry no late marker.
		if !task.IsOverdue(today) {
			return ""
		}
		return p.styles.DueDateOverdueStyle.Render("!")
	case days == 0:
		return p.styles.DueDateTodayStyle.Render("T")
	case days == 1:
		return p.styles.DueDateFutureStyle.Render("+1")
	case days <= 7:
		return p.styles.DueDateFutureStyle.Render(fmt.Sprintf("%dj", days))
	case days <= 30:
		return p.styles.DueDateFutureStyle.Render(fmt.Sprintf("%ds", days/7))
	default:
		return p.styles.DueDateFutureStyle.Render(">1m")
	}
}

// daysBetween returns the whole calendar days from a to b. UTC midnights
// keep the arithmetic exact across DST transitions.
func daysBetween(a, b store.Date) int {
	return int(b.Time(time.UTC).Sub(a.Time(time.UTC)).Hours() / 24)
}
