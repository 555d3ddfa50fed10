package store

import "time"

// Priority represents task priority levels. Normal is the default; there is
// no unset state.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the three known levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	}
	return false
}

// Status represents the completion state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Task is a persisted task item.
type Task struct {
	ID           string     `json:"id"`
	Text         string     `json:"text"`
	Status       Status     `json:"status"`
	Priority     Priority   `json:"priority"`
	DueDate      *Date      `json:"due_date,omitempty"`
	ScheduledFor *Date      `json:"scheduled_for,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// IsForToday reports whether the task is scheduled for the given day.
func (t *Task) IsForToday(today Date) bool {
	return t.ScheduledFor != nil && t.ScheduledFor.Equal(today)
}

// IsOverdue reports whether the task is pending with a due date in the past.
func (t *Task) IsOverdue(today Date) bool {
	return t.DueDate != nil && t.DueDate.Before(today) && t.Status == StatusPending
}

// CreateTask carries the fields a caller supplies when creating a task.
// ID, status and creation time are assigned by the store.
type CreateTask struct {
	Text         string   `json:"text"`
	Priority     Priority `json:"priority,omitempty"`
	DueDate      *Date    `json:"due_date,omitempty"`
	ScheduledFor *Date    `json:"scheduled_for,omitempty"`
}

// TaskList is the on-disk document holding all tasks.
type TaskList struct {
	Tasks []Task `json:"tasks"`
}
