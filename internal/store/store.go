// Package store persists tasks as plain JSON in the data directory and
// exposes the task-store operations the UI depends on: list today's tasks,
// create, and toggle completion.
package store

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"listik/internal/fsutil"
)

const (
	tasksFile = "tasks.json"

	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600

	maxTaskTextLen = 200
)

// Store handles all task file I/O.
type Store struct {
	dataDir string
	now     func() time.Time // injectable clock for deterministic tests
}

// New creates a Store rooted at dataDir, creating the directory and an
// empty tasks file if needed.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Store{dataDir: dataDir, now: time.Now}

	if !fileExists(s.path(tasksFile)) {
		if err := s.Save(&TaskList{Tasks: []Task{}}); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// SetNowFunc overrides the clock used by time-dependent operations.
// Passing nil resets it to time.Now.
func (s *Store) SetNowFunc(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// Now returns the current time according to the store clock.
func (s *Store) Now() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// Today returns the current calendar date according to the store clock.
func (s *Store) Today() Date {
	return DateOf(s.Now())
}

// DataDir returns the path to the data directory.
func (s *Store) DataDir() string {
	return s.dataDir
}

func (s *Store) path(filename string) string {
	return filepath.Join(s.dataDir, filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}

func newID(prefix string) (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), hex.EncodeToString(b[:])), nil
}

func (s *Store) writeJSONAtomic(filename string, v any) error {
	path := s.path(filename)
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize %s: %w", filename, err)
	}

	// Keep a best-effort backup before overwriting.
	fsutil.BestEffortBackup(path, dataFilePerm)

	if err := fsutil.WriteFileAtomic(path, data, dataFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}

	return nil
}

func (s *Store) loadJSONWithRecovery(filename string, v any) error {
	path := s.path(filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s.writeJSONAtomic(filename, v)
		}
		return fmt.Errorf("read %s: %w", filename, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s.recoverCorruptJSON(filename, v, fmt.Errorf("%s is empty", filename))
	}

	if err := json.Unmarshal(data, v); err == nil {
		return nil
	}
	return s.recoverCorruptJSON(filename, v, fmt.Errorf("parse %s: %w", filename, err))
}

func (s *Store) recoverCorruptJSON(filename string, v any, cause error) error {
	path := s.path(filename)

	// Try backup first.
	bakData, bakErr := os.ReadFile(path + ".bak")
	if bakErr == nil && len(bytes.TrimSpace(bakData)) > 0 {
		if err := json.Unmarshal(bakData, v); err == nil {
			corruptPath := fmt.Sprintf("%s.corrupt.%s", path, time.Now().Format("20060102-150405"))
			_ = os.Rename(path, corruptPath)
			_ = s.writeJSONAtomic(filename, v)
			return fmt.Errorf("%s (recovered from %s.bak)", cause.Error(), filename)
		}
	}

	// No usable backup: preserve the broken file (best effort) and reset.
	corruptPath := fmt.Sprintf("%s.corrupt.%s", path, time.Now().Format("20060102-150405"))
	_ = os.Rename(path, corruptPath)
	_ = s.writeJSONAtomic(filename, v)
	return fmt.Errorf("%s (reset to defaults; original moved to %s)", cause.Error(), corruptPath)
}

// Load reads all tasks from disk.
func (s *Store) Load() (*TaskList, error) {
	list := TaskList{Tasks: []Task{}}
	err := s.loadJSONWithRecovery(tasksFile, &list)
	return &list, err
}

// Save writes all tasks to disk.
func (s *Store) Save(list *TaskList) error {
	return s.writeJSONAtomic(tasksFile, list)
}

// Create persists a new task. The store assigns the id, the pending status,
// and the creation timestamp. A task created without an explicit schedule is
// scheduled for its due date when one is set.
func (s *Store) Create(draft CreateTask) (*Task, error) {
	text := strings.TrimSpace(draft.Text)
	if text == "" {
		return nil, fmt.Errorf("task text is required")
	}
	if len(text) > maxTaskTextLen {
		return nil, fmt.Errorf("task text too long (max %d)", maxTaskTextLen)
	}

	priority := draft.Priority
	if priority == "" {
		priority = PriorityNormal
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("invalid priority: must be low, normal, or high")
	}

	scheduledFor := draft.ScheduledFor
	if scheduledFor == nil && draft.DueDate != nil {
		d := *draft.DueDate
		scheduledFor = &d
	}

	list, err := s.Load()
	if err != nil {
		return nil, err
	}

	id, err := newID("t")
	if err != nil {
		return nil, err
	}

	task := Task{
		ID:           id,
		Text:         text,
		Status:       StatusPending,
		Priority:     priority,
		DueDate:      draft.DueDate,
		ScheduledFor: scheduledFor,
		CreatedAt:    s.Now(),
	}

	list.Tasks = append(list.Tasks, task)

	if err := s.Save(list); err != nil {
		return nil, err
	}

	return &task, nil
}

// ToggleStatus flips a task between pending and completed, setting or
// clearing its completion timestamp.
func (s *Store) ToggleStatus(id string) (*Task, error) {
	list, err := s.Load()
	if err != nil {
		return nil, err
	}

	for i := range list.Tasks {
		if list.Tasks[i].ID != id {
			continue
		}
		if list.Tasks[i].Status == StatusCompleted {
			list.Tasks[i].Status = StatusPending
			list.Tasks[i].CompletedAt = nil
		} else {
			list.Tasks[i].Status = StatusCompleted
			now := s.Now()
			list.Tasks[i].CompletedAt = &now
		}
		if err := s.Save(list); err != nil {
			return nil, err
		}
		task := list.Tasks[i]
		return &task, nil
	}

	return nil, fmt.Errorf("task not found: %s", id)
}

// ListToday returns tasks scheduled for the current calendar date, sorted.
func (s *Store) ListToday() ([]Task, error) {
	list, err := s.Load()
	if err != nil {
		return nil, err
	}

	today := s.Today()
	var tasks []Task
	for _, t := range list.Tasks {
		if t.IsForToday(today) {
			tasks = append(tasks, t)
		}
	}
	return s.SortTasks(tasks), nil
}

// ListWeek returns tasks scheduled within the seven days starting at start,
// sorted.
func (s *Store) ListWeek(start Date) ([]Task, error) {
	list, err := s.Load()
	if err != nil {
		return nil, err
	}

	end := start.AddDays(7)
	var tasks []Task
	for _, t := range list.Tasks {
		if t.ScheduledFor == nil {
			continue
		}
		if t.ScheduledFor.Before(start) || !t.ScheduledFor.Before(end) {
			continue
		}
		tasks = append(tasks, t)
	}
	return s.SortTasks(tasks), nil
}

// ListAll returns every task, sorted.
func (s *Store) ListAll() ([]Task, error) {
	list, err := s.Load()
	if err != nil {
		return nil, err
	}
	return s.SortTasks(list.Tasks), nil
}

// SortTasks sorts tasks: pending before completed, then by priority
// (high > normal > low), due date (earliest first), and creation time.
func (s *Store) SortTasks(tasks []Task) []Task {
	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)

	sort.SliceStable(sorted, func(i, j int) bool {
		a := sorted[i]
		b := sorted[j]

		// Completed tasks always go to the bottom.
		if (a.Status == StatusCompleted) != (b.Status == StatusCompleted) {
			return a.Status != StatusCompleted
		}

		aPrio := priorityValue(a.Priority)
		bPrio := priorityValue(b.Priority)
		if aPrio != bPrio {
			return aPrio > bPrio
		}

		// Tasks with due dates come before those without.
		if a.DueDate != nil && b.DueDate == nil {
			return true
		}
		if a.DueDate == nil && b.DueDate != nil {
			return false
		}
		if a.DueDate != nil && b.DueDate != nil && !a.DueDate.Equal(*b.DueDate) {
			return a.DueDate.Before(*b.DueDate)
		}

		return a.CreatedAt.After(b.CreatedAt)
	})

	return sorted
}

func priorityValue(p Priority) int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityNormal:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}
