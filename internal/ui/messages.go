// Package ui provides terminal user interface components for the listik app.
// This file defines message types for async I/O operations using the Bubble Tea
// command pattern. All store operations return these messages to keep the
// event loop non-blocking.
package ui

import (
	"listik/internal/store"
)

// =============================================================================
// Task Messages
// =============================================================================

// todayLoadedMsg is sent when today's tasks are loaded from the store.
type todayLoadedMsg struct {
	tasks []store.Task
	err   error
}

// weekLoadedMsg is sent when a week of tasks is loaded for the planner.
type weekLoadedMsg struct {
	start store.Date
	tasks []store.Task
	err   error
}

// allLoadedMsg is sent when the full task list is loaded for the planner.
type allLoadedMsg struct {
	tasks []store.Task
	err   error
}

// taskCreatedMsg is sent when a new task has been persisted.
type taskCreatedMsg struct {
	task *store.Task
	err  error
}

// taskToggledMsg is sent when a task's status flip has been persisted.
type taskToggledMsg struct {
	task *store.Task
	err  error
}
