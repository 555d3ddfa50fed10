// Package ui provides terminal user interface components for the listik app.
// This file defines key bindings using the Bubble Tea key package for
// type-safe key matching, help text generation, and future customization.
package ui

import (
	"strings"

	"listik/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// Helpers
// =============================================================================

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		trimmed := strings.TrimSpace(k)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// =============================================================================
// Global Keys (available in all contexts)
// =============================================================================

// GlobalKeyMap defines keys available throughout the application.
type GlobalKeyMap struct {
	Quit    key.Binding
	Help    key.Binding
	Planner key.Binding
}

// DefaultGlobalKeyMap returns the default global key bindings.
func DefaultGlobalKeyMap() GlobalKeyMap {
	return NewGlobalKeyMap(&config.KeysConfig{})
}

// NewGlobalKeyMap creates global key bindings from config. Quit deliberately
// has no plain-letter default: the capture input owns ordinary characters.
func NewGlobalKeyMap(cfg *config.KeysConfig) GlobalKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return GlobalKeyMap{
		Quit: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Quit, "ctrl+c")...),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Help, "?")...),
			key.WithHelp("?", "help"),
		),
		Planner: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Planner, "tab")...),
			key.WithHelp("tab", "planner"),
		),
	}
}

// =============================================================================
// Navigation Keys (shared by list-based views)
// =============================================================================

// NavigationKeyMap defines keys for list navigation.
type NavigationKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
}

// DefaultNavigationKeyMap returns the default navigation key bindings.
func DefaultNavigationKeyMap() NavigationKeyMap {
	return NewNavigationKeyMap(&config.KeysConfig{})
}

// NewNavigationKeyMap creates navigation key bindings from config.
func NewNavigationKeyMap(cfg *config.KeysConfig) NavigationKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return NavigationKeyMap{
		Up: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Up, "k", "up")...),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Down, "j", "down")...),
			key.WithHelp("j/↓", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Top, "g")...),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Bottom, "G")...),
			key.WithHelp("G", "bottom"),
		),
	}
}

// =============================================================================
// Task List Keys
// =============================================================================

// TaskKeyMap defines keys for the task list.
type TaskKeyMap struct {
	Capture key.Binding
	Toggle  key.Binding
	NavigationKeyMap
}

// DefaultTaskKeyMap returns the default task list key bindings.
func DefaultTaskKeyMap() TaskKeyMap {
	return NewTaskKeyMap(&config.KeysConfig{})
}

// NewTaskKeyMap creates task key bindings from config.
func NewTaskKeyMap(cfg *config.KeysConfig) TaskKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return TaskKeyMap{
		Capture: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Capture, "a", "i")...),
			key.WithHelp("a", "add task"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(parseKeys(cfg.ToggleTask, "d", " ")...),
			key.WithHelp("d/space", "toggle done"),
		),
		NavigationKeyMap: NewNavigationKeyMap(cfg),
	}
}

// ShortHelp returns the short help for the task list (implements help.KeyMap).
func (k TaskKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Capture, k.Toggle, k.Down}
}

// FullHelp returns the full help for the task list (implements help.KeyMap).
func (k TaskKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Capture, k.Toggle},
		{k.Up, k.Down, k.Top, k.Bottom},
	}
}

// =============================================================================
// Capture Keys (active while the input has focus)
// =============================================================================

// CaptureKeyMap defines keys for the capture input. Besides submit/cancel it
// carries the date-pick shortcuts that rewrite the buffer without typing.
type CaptureKeyMap struct {
	Submit        key.Binding
	Cancel        key.Binding
	SetToday      key.Binding
	SetTomorrow   key.Binding
	DateForward   key.Binding
	DateBack      key.Binding
	ClearDate     key.Binding
	CyclePriority key.Binding
}

// DefaultCaptureKeyMap returns the default capture key bindings.
func DefaultCaptureKeyMap() CaptureKeyMap {
	return NewCaptureKeyMap(&config.KeysConfig{})
}

// NewCaptureKeyMap creates capture key bindings from config.
func NewCaptureKeyMap(cfg *config.KeysConfig) CaptureKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return CaptureKeyMap{
		Submit: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Submit, "enter")...),
			key.WithHelp("enter", "add"),
		),
		Cancel: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Cancel, "esc")...),
			key.WithHelp("esc", "cancel"),
		),
		SetToday: key.NewBinding(
			key.WithKeys(parseKeys(cfg.SetToday, "ctrl+t")...),
			key.WithHelp("ctrl+t", "today"),
		),
		SetTomorrow: key.NewBinding(
			key.WithKeys(parseKeys(cfg.SetTomorrow, "ctrl+n")...),
			key.WithHelp("ctrl+n", "tomorrow"),
		),
		DateForward: key.NewBinding(
			key.WithKeys(parseKeys(cfg.DateForward, "ctrl+right")...),
			key.WithHelp("ctrl+→", "day later"),
		),
		DateBack: key.NewBinding(
			key.WithKeys(parseKeys(cfg.DateBack, "ctrl+left")...),
			key.WithHelp("ctrl+←", "day earlier"),
		),
		ClearDate: key.NewBinding(
			key.WithKeys(parseKeys(cfg.ClearDate, "ctrl+d")...),
			key.WithHelp("ctrl+d", "clear date"),
		),
		CyclePriority: key.NewBinding(
			key.WithKeys(parseKeys(cfg.CyclePriority, "ctrl+p")...),
			key.WithHelp("ctrl+p", "priority"),
		),
	}
}

// ShortHelp returns the short help for the capture input (implements help.KeyMap).
func (k CaptureKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.SetToday, k.ClearDate, k.Cancel}
}

// FullHelp returns the full help for the capture input (implements help.KeyMap).
func (k CaptureKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Cancel, k.CyclePriority},
		{k.SetToday, k.SetTomorrow, k.DateForward, k.DateBack, k.ClearDate},
	}
}

// =============================================================================
// Help Overlay Keys
// =============================================================================

// HelpKeyMap defines keys for the help overlay.
type HelpKeyMap struct {
	Close key.Binding
}

// DefaultHelpKeyMap returns the default help overlay key bindings.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Close: key.NewBinding(
			key.WithKeys("?", "esc", "q", "enter", " "),
			key.WithHelp("any key", "close"),
		),
	}
}
