// Package ui provides terminal user interface components for the listik app.
package ui

import (
	"fmt"
	"strings"

	"listik/internal/config"
	"listik/internal/store"
	"listik/internal/taskparse"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// plannerMode selects between the week grid and the full task listing.
type plannerMode int

const (
	plannerWeek plannerMode = iota
	plannerAll
)

// PlannerPane is the secondary view: a seven-day grid of scheduled tasks,
// or the complete task list.
type PlannerPane struct {
	mode      plannerMode
	weekStart store.Date
	tasks     []store.Task
	cursor    int
	focused   bool
	width     int
	height    int
	store     *store.Store
	styles    *Styles
	locale    *taskparse.Locale

	keys TaskKeyMap
}

// NewPlannerPane creates the planner view anchored on the current week.
func NewPlannerPane(st *store.Store, styles *Styles, locale *taskparse.Locale, cfg *config.Config) *PlannerPane {
	keyCfg := &config.KeysConfig{}
	mode := plannerWeek
	if cfg != nil {
		keyCfg = &cfg.Keys
		if cfg.UX.PlannerShowsAll {
			mode = plannerAll
		}
	}

	return &PlannerPane{
		mode:      mode,
		weekStart: weekStartOf(st.Today()),
		store:     st,
		styles:    styles,
		locale:    locale,
		keys:      NewTaskKeyMap(keyCfg),
	}
}

// weekStartOf returns the Monday of the week containing d.
func weekStartOf(d store.Date) store.Date {
	wd := d.Time(nil).Weekday()
	// Monday-based offset; Sunday sits at the end of the week.
	offset := (int(wd) + 6) % 7
	return d.AddDays(-offset)
}

// LoadCmd returns a command that loads the pane's current data set.
func (p *PlannerPane) LoadCmd() tea.Cmd {
	if p.mode == plannerAll {
		return loadAllCmd(p.store)
	}
	return loadWeekCmd(p.store, p.weekStart)
}

// SetSize sets the pane dimensions.
func (p *PlannerPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets whether this pane is focused.
func (p *PlannerPane) SetFocused(focused bool) {
	p.focused = focused
}

func (p *PlannerPane) setTasks(tasks []store.Task) {
	if p.mode == plannerWeek {
		tasks = weekDisplayOrder(tasks, p.weekStart)
	}
	p.tasks = tasks
	if p.cursor >= len(p.tasks) {
		p.cursor = max(0, len(p.tasks)-1)
	}
}

// weekDisplayOrder rearranges tasks into the grid's top-to-bottom order,
// grouped by day, so the cursor index names the same row everywhere: the
// highlight in renderWeek and the target of Toggle both read p.tasks.
func weekDisplayOrder(tasks []store.Task, start store.Date) []store.Task {
	ordered := make([]store.Task, 0, len(tasks))
	for day := 0; day < 7; day++ {
		date := start.AddDays(day)
		for _, task := range tasks {
			if task.ScheduledFor != nil && task.ScheduledFor.Equal(date) {
				ordered = append(ordered, task)
			}
		}
	}
	return ordered
}

// Update handles messages for the planner view.
func (p *PlannerPane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case weekLoadedMsg:
		if p.mode == plannerWeek && msg.start.Equal(p.weekStart) {
			p.setTasks(msg.tasks)
		}
		return nil

	case allLoadedMsg:
		if p.mode == plannerAll {
			p.setTasks(msg.tasks)
		}
		return nil

	case taskToggledMsg, taskCreatedMsg:
		return p.LoadCmd()
	}

	if !p.focused {
		return nil
	}

	switch msg := msg.(type) {
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

		case key.Matches(msg, p.keys.Toggle):
			if len(p.tasks) > 0 && p.cursor < len(p.tasks) {
				return toggleTaskCmd(p.store, p.tasks[p.cursor].ID)
			}

		default:
			switch msg.String() {
			case "v":
				// Switch between the week grid and the full listing.
				if p.mode == plannerWeek {
					p.mode = plannerAll
				} else {
					p.mode = plannerWeek
				}
				p.cursor = 0
				return p.LoadCmd()

			case "l", "right":
				if p.mode == plannerWeek {
					p.weekStart = p.weekStart.AddDays(7)
					p.cursor = 0
					return p.LoadCmd()
				}

			case "h", "left":
				if p.mode == plannerWeek {
					p.weekStart = p.weekStart.AddDays(-7)
					p.cursor = 0
					return p.LoadCmd()
				}

			case "t":
				if p.mode == plannerWeek {
					p.weekStart = weekStartOf(p.store.Today())
					p.cursor = 0
					return p.LoadCmd()
				}
			}
		}
	}

	return nil
}

// View renders the planner view.
func (p *PlannerPane) View() string {
	var b strings.Builder

	if p.mode == plannerAll {
		b.WriteString(p.styles.PaneTitleStyle.Render("≡ TOUTES LES TÂCHES"))
	} else {
		b.WriteString(p.styles.PaneTitleStyle.Render("📋 SEMAINE"))
	}
	b.WriteString("\n")

	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorMuted).Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	if p.mode == plannerAll {
		p.renderFlatList(&b)
	} else {
		p.renderWeek(&b)
	}

	content := b.String()
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}
	return style.Width(p.width).Height(p.height).Render(content)
}

// renderWeek writes the seven day sections with their scheduled tasks.
func (p *PlannerPane) renderWeek(b *strings.Builder) {
	today := p.store.Today()
	idx := 0

	for day := 0; day < 7; day++ {
		date := p.weekStart.AddDays(day)

		header := p.dayLabel(date)
		if date.Equal(today) {
			b.WriteString(p.styles.PlannerDayTodayStyle.Render(header))
		} else {
			b.WriteString(p.styles.PlannerDayStyle.Render(header))
		}
		b.WriteString("\n")

		dayHasTasks := false
		for _, task := range p.tasks {
			if task.ScheduledFor == nil || !task.ScheduledFor.Equal(date) {
				continue
			}
			dayHasTasks = true
			selected := idx == p.cursor && p.focused
			b.WriteString(p.renderRow(task, selected))
			b.WriteString("\n")
			idx++
		}
		if !dayHasTasks {
			b.WriteString(p.styles.StatLabelStyle.Render("    —"))
			b.WriteString("\n")
		}
	}
}

// renderFlatList writes every task with its schedule date.
func (p *PlannerPane) renderFlatList(b *strings.Builder) {
	if len(p.tasks) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorTextMuted).Italic(true).Render("  Aucune tâche."))
		b.WriteString("\n")
		return
	}

	maxRows := p.height - 5
	if maxRows < 3 {
		maxRows = 5
	}
	startIdx := 0
	if p.cursor >= maxRows {
		startIdx = p.cursor - maxRows + 1
	}

	for i, task := range p.tasks {
		if i < startIdx || i >= startIdx+maxRows {
			continue
		}
		selected := i == p.cursor && p.focused
		b.WriteString(p.renderRow(task, selected))
		if task.ScheduledFor != nil {
			b.WriteString(" " + p.styles.DateStyle.Render(task.ScheduledFor.String()))
		}
		b.WriteString("\n")
	}
}

// renderRow renders a compact task row for the planner.
func (p *PlannerPane) renderRow(task store.Task, selected bool) string {
	var checkbox string
	if task.Status == store.StatusCompleted {
		checkbox = p.styles.TaskCheckboxDone
	} else {
		checkbox = p.styles.TaskCheckboxPending
	}

	var badge string
	switch task.Priority {
	case store.PriorityHigh:
		badge = p.styles.PriorityHighStyle.Render("!")
	case store.PriorityLow:
		badge = p.styles.PriorityLowStyle.Render("·")
	default:
		badge = " "
	}

	textWidth := p.width - 12
	if textWidth < 5 {
		textWidth = 5
	}
	text := runewidth.Truncate(task.Text, textWidth, "..")

	if selected {
		return p.styles.TaskSelectedStyle.Render(fmt.Sprintf("  %s%s %s ", badge, checkbox, text))
	}
	if task.Status == store.StatusCompleted {
		text = p.styles.TaskDoneStyle.Render(text)
	} else {
		text = p.styles.TaskPendingStyle.Render(text)
	}
	return fmt.Sprintf("  %s%s %s", badge, checkbox, text)
}

// dayLabel renders a week day header like "lundi 6 janvier".
func (p *PlannerPane) dayLabel(d store.Date) string {
	t := d.Time(nil)
	wd := p.locale.WeekdayNames[int(t.Weekday())]
	month := p.locale.MonthNames[int(t.Month())]
	return fmt.Sprintf("%s %d %s", wd, t.Day(), month)
}
