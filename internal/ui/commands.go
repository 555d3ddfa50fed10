// Package ui provides terminal user interface components for the listik app.
// This file contains tea.Cmd factories that wrap store operations. These
// commands run I/O operations asynchronously to keep the Bubble Tea event
// loop responsive. Each command returns a corresponding message type defined
// in messages.go.
package ui

import (
	"listik/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// Task Commands
// =============================================================================

// loadTodayCmd returns a command that loads today's tasks from the store.
func loadTodayCmd(st *store.Store) tea.Cmd {
	return func() tea.Msg {
		tasks, err := st.ListToday()
		return todayLoadedMsg{tasks: tasks, err: err}
	}
}

// loadWeekCmd returns a command that loads the seven days starting at start.
func loadWeekCmd(st *store.Store, start store.Date) tea.Cmd {
	return func() tea.Msg {
		tasks, err := st.ListWeek(start)
		return weekLoadedMsg{start: start, tasks: tasks, err: err}
	}
}

// loadAllCmd returns a command that loads every task for the planner listing.
func loadAllCmd(st *store.Store) tea.Cmd {
	return func() tea.Msg {
		tasks, err := st.ListAll()
		return allLoadedMsg{tasks: tasks, err: err}
	}
}

// createTaskCmd returns a command that persists a new task.
func createTaskCmd(st *store.Store, draft store.CreateTask) tea.Cmd {
	return func() tea.Msg {
		task, err := st.Create(draft)
		return taskCreatedMsg{task: task, err: err}
	}
}

// toggleTaskCmd returns a command that flips a task between pending and done.
func toggleTaskCmd(st *store.Store, id string) tea.Cmd {
	return func() tea.Msg {
		task, err := st.ToggleStatus(id)
		return taskToggledMsg{task: task, err: err}
	}
}
