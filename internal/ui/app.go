// Package ui provides terminal user interface components for the listik app.
// This file contains the main App model which coordinates the daily and
// planner views and routes messages using the Bubble Tea architecture.
package ui

import (
	"fmt"
	"strings"
	"time"

	"listik/internal/config"
	"listik/internal/draft"
	"listik/internal/store"
	"listik/internal/taskparse"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ViewID identifies each view in the application.
type ViewID int

const (
	ViewDaily ViewID = iota
	ViewPlanner
)

// LayoutMode determines how views are arranged based on terminal width.
type LayoutMode int

const (
	// LayoutWide shows the daily and planner views side-by-side.
	LayoutWide LayoutMode = iota
	// LayoutNarrow shows only the active view with a tab bar.
	LayoutNarrow
)

// App is the main application model that coordinates both views.
type App struct {
	store       *store.Store
	styles      *Styles
	config      *config.Config
	locale      *taskparse.Locale
	taskPane    *TaskPane
	planner     *PlannerPane
	helpOverlay *HelpOverlay
	activeView  ViewID
	layoutMode  LayoutMode
	showHelp    bool
	showWelcome bool
	width       int
	height      int
	status      string
	statusErr   bool
	statusUntil time.Time
	quitting    bool

	// Key bindings
	keys     GlobalKeyMap
	helpKeys HelpKeyMap

	// View positions for mouse click detection (x coordinates)
	dailyStart   int
	dailyEnd     int
	plannerStart int
	plannerEnd   int
	contentTop   int // Y coordinate where content starts
}

// NewApp creates a new application. Data loading is deferred to Init()
// to keep the constructor non-blocking.
func NewApp(st *store.Store, styles *Styles, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}

	locale := taskparse.ForLanguage(cfg.Locale.Language)
	parser := taskparse.New(locale, triggersFromConfig(&cfg.Locale))
	rec := draft.NewReconciler(parser)
	rec.SetNowFunc(st.Now)

	taskPane := NewTaskPane(rec, st, styles, cfg)
	planner := NewPlannerPane(st, styles, locale, cfg)
	helpOverlay := NewHelpOverlay(styles)

	activeView := ViewDaily
	if cfg.UX.StartView == "planner" {
		activeView = ViewPlanner
	}

	app := &App{
		store:       st,
		styles:      styles,
		config:      cfg,
		locale:      locale,
		taskPane:    taskPane,
		planner:     planner,
		helpOverlay: helpOverlay,
		activeView:  activeView,
		showWelcome: isFirstRun(st),
		keys:        NewGlobalKeyMap(&cfg.Keys),
		helpKeys:    DefaultHelpKeyMap(),
	}

	taskPane.SetFocused(activeView == ViewDaily)
	planner.SetFocused(activeView == ViewPlanner)

	return app
}

// triggersFromConfig builds the priority trigger table, appending user
// phrases after the built-in rules so the defaults keep precedence.
func triggersFromConfig(lc *config.LocaleConfig) []taskparse.Trigger {
	triggers := taskparse.DefaultTriggers()
	if len(lc.ExtraHighPhrases) > 0 {
		triggers = append(triggers, taskparse.Trigger{
			Phrases: lc.ExtraHighPhrases,
			Level:   store.PriorityHigh,
		})
	}
	if len(lc.ExtraLowPhrases) > 0 {
		triggers = append(triggers, taskparse.Trigger{
			Phrases: lc.ExtraLowPhrases,
			Level:   store.PriorityLow,
		})
	}
	return triggers
}

// isFirstRun checks if this appears to be the first time running the app.
func isFirstRun(st *store.Store) bool {
	list, err := st.Load()
	if err != nil {
		return false
	}
	return len(list.Tasks) == 0
}

// tickMsg is sent periodically for time updates.
type tickMsg time.Time

// tickCmd returns a command that sends a tick every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the app and loads data asynchronously.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		a.taskPane.LoadCmd(),
		a.planner.LoadCmd(),
	)
}

// Update handles all messages and routes them appropriately.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Route async messages to both views first (before key handling), so
	// store operation results are processed regardless of the active view.
	switch msg := msg.(type) {
	case todayLoadedMsg:
		if msg.err != nil {
			a.SetStatus("Chargement: "+msg.err.Error(), true)
		}
		return a, a.taskPane.Update(msg)

	case weekLoadedMsg, allLoadedMsg:
		if err := loadErr(msg); err != nil {
			a.SetStatus("Chargement: "+err.Error(), true)
		}
		return a, a.planner.Update(msg)

	case taskCreatedMsg:
		if msg.err != nil {
			a.SetStatus("Ajout: "+msg.err.Error(), true)
		} else if msg.task != nil {
			a.SetStatus("Ajouté: "+truncateText(msg.task.Text, 40), false)
		}
		return a, tea.Batch(a.taskPane.Update(msg), a.planner.Update(msg))

	case taskToggledMsg:
		if msg.err != nil {
			a.SetStatus("Statut: "+msg.err.Error(), true)
		}
		return a, tea.Batch(a.taskPane.Update(msg), a.planner.Update(msg))
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if a.showWelcome {
			a.showWelcome = false
			return a, nil
		}

		// Help overlay takes priority
		if a.showHelp {
			if key.Matches(msg, a.helpKeys.Close) {
				a.showHelp = false
				return a, nil
			}
			return a, nil
		}

		// Global keys only when the capture input does not own the keyboard
		if !a.taskPane.IsCapturing() {
			switch {
			case key.Matches(msg, a.keys.Quit):
				a.quitting = true
				return a, tea.Quit

			case key.Matches(msg, a.keys.Help):
				a.showHelp = true
				return a, nil

			case key.Matches(msg, a.keys.Planner):
				a.switchView()
				return a, a.activePaneLoadCmd()
			}
		} else if key.Matches(msg, a.keys.Quit) {
			// ctrl+c quits even mid-capture.
			a.quitting = true
			return a, tea.Quit
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tickMsg:
		a.taskPane.Tick()
		if a.status != "" && !a.statusUntil.IsZero() && time.Now().After(a.statusUntil) {
			a.status = ""
			a.statusErr = false
			a.statusUntil = time.Time{}
		}
		return a, tickCmd()
	}

	// Forward to active view (only if help is not shown)
	if !a.showHelp {
		switch a.activeView {
		case ViewDaily:
			if cmd := a.taskPane.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		case ViewPlanner:
			if cmd := a.planner.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}

	return a, tea.Batch(cmds...)
}

// loadErr extracts the error from either planner load message.
func loadErr(msg tea.Msg) error {
	switch m := msg.(type) {
	case weekLoadedMsg:
		return m.err
	case allLoadedMsg:
		return m.err
	}
	return nil
}

// handleMouse routes mouse events to overlays or the active view.
func (a *App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.showWelcome {
		if msg.Action == tea.MouseActionPress {
			a.showWelcome = false
		}
		return a, nil
	}

	if a.showHelp {
		// Any click closes help
		if msg.Action == tea.MouseActionPress {
			a.showHelp = false
		}
		return a, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		// In narrow mode, check for tab bar clicks
		if a.layoutMode == LayoutNarrow && msg.Y == a.contentTop-1 {
			if msg.X < a.width/2 {
				a.setActiveView(ViewDaily)
			} else {
				a.setActiveView(ViewPlanner)
			}
			return a, a.activePaneLoadCmd()
		}

		// Determine which view was clicked (in wide mode)
		clicked := a.viewAtPosition(msg.X)
		if clicked >= 0 && clicked != a.activeView {
			a.setActiveView(clicked)
		}

		// Forward click to the active view with adjusted coordinates
		if msg.Y >= a.contentTop && a.activeView == ViewDaily {
			localMsg := msg
			localMsg.Y = msg.Y - a.contentTop
			if a.layoutMode == LayoutWide {
				localMsg.X = msg.X - a.dailyStart
			}
			return a, a.taskPane.Update(localMsg)
		}
	}

	// Handle scroll wheel
	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		localMsg := msg
		localMsg.Y = msg.Y - a.contentTop
		if a.activeView == ViewDaily {
			return a, a.taskPane.Update(localMsg)
		}
	}

	return a, nil
}

// switchView toggles between the daily list and the planner.
func (a *App) switchView() {
	if a.activeView == ViewDaily {
		a.setActiveView(ViewPlanner)
	} else {
		a.setActiveView(ViewDaily)
	}
}

// setActiveView sets the active view and updates focus states.
func (a *App) setActiveView(v ViewID) {
	a.activeView = v
	a.taskPane.SetFocused(v == ViewDaily)
	a.planner.SetFocused(v == ViewPlanner)
}

// activePaneLoadCmd reloads the newly focused view's data.
func (a *App) activePaneLoadCmd() tea.Cmd {
	if a.activeView == ViewPlanner {
		return a.planner.LoadCmd()
	}
	return a.taskPane.LoadCmd()
}

// viewAtPosition returns which view is at the given X coordinate.
// Returns -1 if no view is at that position.
func (a *App) viewAtPosition(x int) ViewID {
	if a.layoutMode == LayoutNarrow {
		return a.activeView
	}

	if x >= a.dailyStart && x < a.dailyEnd {
		return ViewDaily
	}
	if x >= a.plannerStart && x < a.plannerEnd {
		return ViewPlanner
	}
	return -1
}

// updateLayout recalculates view sizes based on terminal dimensions.
func (a *App) updateLayout() {
	// Leave room for title bar (2) and help bar (1)
	contentHeight := a.height - 4
	if contentHeight < 10 {
		contentHeight = 10
	}

	// Content starts after title bar (1 line title + 1 line space)
	a.contentTop = 1

	a.helpOverlay.SetSize(a.width, a.height)

	totalWidth := a.width - 4

	threshold := a.config.UX.NarrowLayoutThreshold
	if threshold <= 0 {
		threshold = 80
	}

	if a.width < threshold {
		// Narrow mode: single view with a tab bar
		a.layoutMode = LayoutNarrow

		narrowHeight := contentHeight - 1
		if narrowHeight < 8 {
			narrowHeight = 8
		}

		paneWidth := totalWidth
		if paneWidth < 20 {
			paneWidth = 20
		}

		a.taskPane.SetSize(paneWidth, narrowHeight)
		a.planner.SetSize(paneWidth, narrowHeight)

		a.dailyStart = 0
		a.dailyEnd = a.width
		a.plannerStart = 0
		a.plannerEnd = a.width
		// Content starts after tab bar in narrow mode
		a.contentTop = 2
	} else {
		// Wide mode: both views side-by-side
		a.layoutMode = LayoutWide

		dailyWidth := (totalWidth * 45) / 100
		plannerWidth := totalWidth - dailyWidth - 2
		if totalWidth >= 130 {
			dailyWidth = min(dailyWidth, 58)
			plannerWidth = min(plannerWidth, 70)
		}

		a.taskPane.SetSize(dailyWidth, contentHeight)
		a.planner.SetSize(plannerWidth, contentHeight)

		a.dailyStart = 0
		a.dailyEnd = dailyWidth
		a.plannerStart = dailyWidth + 1
		a.plannerEnd = a.plannerStart + plannerWidth
	}
}

// View renders the entire app.
func (a *App) View() string {
	if a.quitting {
		return a.renderGoodbye()
	}

	if a.showWelcome {
		return a.renderWelcome()
	}

	if a.showHelp {
		return a.helpOverlay.View()
	}

	var b strings.Builder

	b.WriteString(a.renderTitleBar())
	b.WriteString("\n")

	switch a.layoutMode {
	case LayoutNarrow:
		b.WriteString(a.renderNarrowContent())
	default:
		b.WriteString(a.renderWideContent())
	}
	b.WriteString("\n")

	b.WriteString(a.renderHelpBar())

	return b.String()
}

func (a *App) renderWelcome() string {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorPrimary).
		MarginBottom(1)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	mutedStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted).
		Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Bienvenue dans listik"))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render("Tapez une tâche avec sa date: « appeler la banque demain ».\n"))
	b.WriteString(bodyStyle.Render("Tab ouvre le planning. ? ouvre l'aide.\n"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Appuyez sur une touche pour continuer"))

	content := overlayStyle.Render(b.String())
	return RenderCentered(content, a.width, a.height)
}

// renderWideContent renders both views side by side.
func (a *App) renderWideContent() string {
	return lipgloss.JoinHorizontal(lipgloss.Top, a.taskPane.View(), " ", a.planner.View())
}

// renderNarrowContent renders the active view with a tab bar.
func (a *App) renderNarrowContent() string {
	var b strings.Builder

	b.WriteString(a.renderViewTabs())
	b.WriteString("\n")

	switch a.activeView {
	case ViewDaily:
		b.WriteString(a.taskPane.View())
	case ViewPlanner:
		b.WriteString(a.planner.View())
	}

	return b.String()
}

// renderViewTabs renders a tab bar showing both views.
func (a *App) renderViewTabs() string {
	tabs := []struct {
		id    ViewID
		label string
	}{
		{ViewDaily, "Aujourd'hui"},
		{ViewPlanner, "Planning"},
	}

	activeTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorPrimary).
		Bold(true)
	inactiveTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var parts []string
	for _, tab := range tabs {
		label := tab.label
		if tab.id == a.activeView {
			label = activeTabStyle.Render("[" + label + "]")
		} else {
			label = inactiveTabStyle.Render(" " + label + " ")
		}
		parts = append(parts, label)
	}

	tabBar := strings.Join(parts, "  ")
	padding := (a.width - lipgloss.Width(tabBar)) / 2
	if padding > 0 {
		tabBar = strings.Repeat(" ", padding) + tabBar
	}

	return tabBar
}

// renderGoodbye shows an exit message with a day summary.
func (a *App) renderGoodbye() string {
	done, total := a.taskPane.Stats()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  À bientôt !\n")
	b.WriteString("\n")

	if total > 0 {
		pct := (done * 100) / total
		b.WriteString(fmt.Sprintf("  Aujourd'hui: %d/%d tâches (%d%%)\n", done, total, pct))
		b.WriteString("\n")
	}

	return b.String()
}

// renderTitleBar creates the top title bar with stats and the date.
func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render(" listik ")

	done, total := a.taskPane.Stats()
	var stats string
	if total > 0 {
		stats = a.styles.StatLabelStyle.Render(fmt.Sprintf("%d/%d", done, total))
	}

	// Current date in the configured locale
	now := a.store.Now()
	dateStr := fmt.Sprintf("%s %d %s",
		a.locale.WeekdayNames[int(now.Weekday())], now.Day(), a.locale.MonthNames[int(now.Month())])
	date := a.styles.DateStyle.Render(dateStr)

	titleWidth := lipgloss.Width(title)
	statsWidth := lipgloss.Width(stats)
	dateWidth := lipgloss.Width(date)

	spacerWidth := a.width - titleWidth - statsWidth - dateWidth - 4
	if spacerWidth < 2 {
		spacerWidth = 2
	}

	var parts []string
	parts = append(parts, title)
	if stats != "" {
		parts = append(parts, "  "+stats)
	}
	parts = append(parts, strings.Repeat(" ", spacerWidth))
	parts = append(parts, date)

	return strings.Join(parts, "")
}

// renderHelpBar creates the bottom help bar with context-sensitive hints.
func (a *App) renderHelpBar() string {
	if a.status != "" {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}

	if a.taskPane.IsCapturing() {
		return a.styles.RenderHelp(
			"enter", "ajouter",
			"ctrl+t", "aujourd'hui",
			"ctrl+n", "demain",
			"ctrl+d", "sans date",
			"ctrl+p", "priorité",
			"esc", "annuler",
		)
	}

	switch a.activeView {
	case ViewDaily:
		return a.styles.RenderHelp(
			"a", "ajouter",
			"d", "fait",
			"j/k", "nav",
			"tab", "planning",
			"?", "aide",
		)
	case ViewPlanner:
		return a.styles.RenderHelp(
			"h/l", "semaine",
			"v", "tout",
			"d", "fait",
			"tab", "retour",
			"?", "aide",
		)
	}

	return ""
}

// SetStatus sets a status message to display to the user.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := 5 * time.Second
	if isErr {
		ttl = 8 * time.Second
	}
	a.statusUntil = time.Now().Add(ttl)
}

// truncateText shortens s to at most n characters, rune-safe.
func truncateText(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

// Run starts the Bubble Tea program with the given store, styles, and config.
func Run(st *store.Store, styles *Styles, cfg *config.Config) error {
	app := NewApp(st, styles, cfg)
	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Enable mouse support
	)
	_, err := p.Run()
	return err
}
