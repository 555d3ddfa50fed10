// Package config handles configuration loading and defaults for the listik app.
// Configuration is loaded from XDG-compliant paths (typically ~/.config/listik/config.yaml).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"listik/internal/fsutil"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// DataDir overrides the default data directory (~/.listik)
	DataDir string `yaml:"data_dir,omitempty"`

	// Locale configures the capture language and extra detection phrases
	Locale LocaleConfig `yaml:"locale,omitempty"`

	// Theme customizes the visual appearance
	Theme ThemeConfig `yaml:"theme,omitempty"`

	// Keys customizes keyboard shortcuts
	Keys KeysConfig `yaml:"keys,omitempty"`

	// UX customizes user experience settings
	UX UXConfig `yaml:"ux,omitempty"`
}

// LocaleConfig defines the capture language and user-supplied trigger phrases.
type LocaleConfig struct {
	// Language selects the date and priority vocabulary ("fr" or "en")
	Language string `yaml:"language,omitempty"` // default: "fr"

	// ExtraHighPhrases are additional phrases that mark a task high priority
	ExtraHighPhrases []string `yaml:"extra_high_phrases,omitempty"`

	// ExtraLowPhrases are additional phrases that mark a task low priority
	ExtraLowPhrases []string `yaml:"extra_low_phrases,omitempty"`
}

// ThemeConfig defines color and style settings.
type ThemeConfig struct {
	// Primary color for focused elements (hex, e.g., "#FF5733")
	Primary string `yaml:"primary,omitempty"`

	// Accent color for highlights such as detected dates (hex)
	Accent string `yaml:"accent,omitempty"`

	// Muted color for secondary text (hex)
	Muted string `yaml:"muted,omitempty"`

	// Background color (hex)
	Background string `yaml:"background,omitempty"`

	// Text color (hex)
	Text string `yaml:"text,omitempty"`
}

// KeysConfig defines customizable keyboard shortcuts.
// Each field accepts a comma-separated list of key bindings.
// Examples: "q,ctrl+c", "tab", "j,down"
type KeysConfig struct {
	// Global keys
	Quit    string `yaml:"quit,omitempty"`    // default: "ctrl+c"
	Help    string `yaml:"help,omitempty"`    // default: "?"
	Planner string `yaml:"planner,omitempty"` // default: "tab"

	// Navigation keys
	Up     string `yaml:"up,omitempty"`     // default: "k,up"
	Down   string `yaml:"down,omitempty"`   // default: "j,down"
	Top    string `yaml:"top,omitempty"`    // default: "g"
	Bottom string `yaml:"bottom,omitempty"` // default: "G"

	// Task keys
	ToggleTask string `yaml:"toggle_task,omitempty"` // default: "d,space"
	Capture    string `yaml:"capture,omitempty"`     // default: "a,i"

	// Capture keys
	Submit        string `yaml:"submit,omitempty"`         // default: "enter"
	Cancel        string `yaml:"cancel,omitempty"`         // default: "esc"
	SetToday      string `yaml:"set_today,omitempty"`      // default: "ctrl+t"
	SetTomorrow   string `yaml:"set_tomorrow,omitempty"`   // default: "ctrl+n"
	DateForward   string `yaml:"date_forward,omitempty"`   // default: "ctrl+right"
	DateBack      string `yaml:"date_back,omitempty"`      // default: "ctrl+left"
	ClearDate     string `yaml:"clear_date,omitempty"`     // default: "ctrl+d"
	CyclePriority string `yaml:"cycle_priority,omitempty"` // default: "ctrl+p"
}

// UXConfig defines user experience settings.
type UXConfig struct {
	// StartView is the view shown on launch ("daily" or "planner")
	StartView string `yaml:"start_view,omitempty"` // default: "daily"

	// PlannerShowsAll starts the planner in the all-tasks listing
	PlannerShowsAll bool `yaml:"planner_shows_all,omitempty"` // default: false

	// ShowDetectionHint shows the detected-date hint line under the input
	ShowDetectionHint bool `yaml:"show_detection_hint,omitempty"` // default: true

	// NarrowLayoutThreshold is the terminal width below which to use stacked layout
	NarrowLayoutThreshold int `yaml:"narrow_layout_threshold,omitempty"` // default: 80
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Locale: LocaleConfig{
			Language: "fr",
		},
		Theme: ThemeConfig{
			Primary:    "#7C3AED", // Violet
			Accent:     "#10B981", // Emerald
			Muted:      "#6B7280", // Gray
			Background: "",        // Terminal default
			Text:       "",        // Terminal default
		},
		Keys: KeysConfig{
			// Defaults are empty strings, which means use built-in defaults
		},
		UX: UXConfig{
			StartView:             "daily",
			PlannerShowsAll:       false,
			ShowDetectionHint:     true,
			NarrowLayoutThreshold: 80,
		},
	}
}

// defaultDataDir returns the default data directory path.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".listik"
	}
	return filepath.Join(home, ".listik")
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "listik")
	}

	// Fall back to ~/.config/listik
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "listik")
}

// configPath returns the path to the config file.
func configPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from disk, merging with defaults.
// If no config file exists, returns default configuration.
func Load() (*Config, error) {
	cfg := Default()

	path := configPath()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file, use defaults
			return cfg, nil
		}
		return nil, err
	}

	// Parse YAML and merge with defaults
	var userCfg Config
	if err := yaml.Unmarshal(data, &userCfg); err != nil {
		return nil, err
	}

	var doc yaml.Node
	_ = yaml.Unmarshal(data, &doc) // best-effort; fall back to conservative merge if this fails

	// Merge user config with defaults (presence-aware for booleans/slices)
	cfg.mergeFromYAML(&userCfg, &doc)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Locale.Language {
	case "fr", "en":
	default:
		return fmt.Errorf("config: unsupported locale.language %q (use fr or en)", c.Locale.Language)
	}
	switch c.UX.StartView {
	case "daily", "planner":
	default:
		return fmt.Errorf("config: unsupported ux.start_view %q (use daily or planner)", c.UX.StartView)
	}
	return nil
}

// mergeNonEmpty applies non-empty values from other to c.
// It intentionally does not touch booleans or slices (those require presence-aware merging).
func (c *Config) mergeNonEmpty(other *Config) {
	if other.DataDir != "" {
		c.DataDir = other.DataDir
	}

	if other.Locale.Language != "" {
		c.Locale.Language = other.Locale.Language
	}

	// Theme merging
	if other.Theme.Primary != "" {
		c.Theme.Primary = other.Theme.Primary
	}
	if other.Theme.Accent != "" {
		c.Theme.Accent = other.Theme.Accent
	}
	if other.Theme.Muted != "" {
		c.Theme.Muted = other.Theme.Muted
	}
	if other.Theme.Background != "" {
		c.Theme.Background = other.Theme.Background
	}
	if other.Theme.Text != "" {
		c.Theme.Text = other.Theme.Text
	}

	// Keys merging
	if other.Keys.Quit != "" {
		c.Keys.Quit = other.Keys.Quit
	}
	if other.Keys.Help != "" {
		c.Keys.Help = other.Keys.Help
	}
	if other.Keys.Planner != "" {
		c.Keys.Planner = other.Keys.Planner
	}
	if other.Keys.Up != "" {
		c.Keys.Up = other.Keys.Up
	}
	if other.Keys.Down != "" {
		c.Keys.Down = other.Keys.Down
	}
	if other.Keys.Top != "" {
		c.Keys.Top = other.Keys.Top
	}
	if other.Keys.Bottom != "" {
		c.Keys.Bottom = other.Keys.Bottom
	}
	if other.Keys.ToggleTask != "" {
		c.Keys.ToggleTask = other.Keys.ToggleTask
	}
	if other.Keys.Capture != "" {
		c.Keys.Capture = other.Keys.Capture
	}
	if other.Keys.Submit != "" {
		c.Keys.Submit = other.Keys.Submit
	}
	if other.Keys.Cancel != "" {
		c.Keys.Cancel = other.Keys.Cancel
	}
	if other.Keys.SetToday != "" {
		c.Keys.SetToday = other.Keys.SetToday
	}
	if other.Keys.SetTomorrow != "" {
		c.Keys.SetTomorrow = other.Keys.SetTomorrow
	}
	if other.Keys.DateForward != "" {
		c.Keys.DateForward = other.Keys.DateForward
	}
	if other.Keys.DateBack != "" {
		c.Keys.DateBack = other.Keys.DateBack
	}
	if other.Keys.ClearDate != "" {
		c.Keys.ClearDate = other.Keys.ClearDate
	}
	if other.Keys.CyclePriority != "" {
		c.Keys.CyclePriority = other.Keys.CyclePriority
	}

	// UX strings/ints (presence-aware in mergeFromYAML)
	if other.UX.StartView != "" {
		c.UX.StartView = other.UX.StartView
	}
	if other.UX.NarrowLayoutThreshold > 0 {
		c.UX.NarrowLayoutThreshold = other.UX.NarrowLayoutThreshold
	}
}

func (c *Config) mergeFromYAML(other *Config, doc *yaml.Node) {
	// Fall back to conservative behavior if we can't inspect presence.
	if doc == nil || len(doc.Content) == 0 {
		// Avoid clobbering defaults with zero-values: only apply non-empty strings and non-zero ints.
		c.mergeNonEmpty(other)
		if len(other.Locale.ExtraHighPhrases) > 0 {
			c.Locale.ExtraHighPhrases = other.Locale.ExtraHighPhrases
		}
		if len(other.Locale.ExtraLowPhrases) > 0 {
			c.Locale.ExtraLowPhrases = other.Locale.ExtraLowPhrases
		}
		return
	}

	// First apply all non-empty string-ish merges.
	c.mergeNonEmpty(other)

	// Now re-apply booleans and slices only when present in YAML.
	if yamlHasPath(doc, "ux", "planner_shows_all") {
		c.UX.PlannerShowsAll = other.UX.PlannerShowsAll
	}
	if yamlHasPath(doc, "ux", "show_detection_hint") {
		c.UX.ShowDetectionHint = other.UX.ShowDetectionHint
	}
	if yamlHasPath(doc, "ux", "narrow_layout_threshold") && other.UX.NarrowLayoutThreshold > 0 {
		c.UX.NarrowLayoutThreshold = other.UX.NarrowLayoutThreshold
	}

	if yamlHasPath(doc, "locale", "extra_high_phrases") {
		c.Locale.ExtraHighPhrases = other.Locale.ExtraHighPhrases
	}
	if yamlHasPath(doc, "locale", "extra_low_phrases") {
		c.Locale.ExtraLowPhrases = other.Locale.ExtraLowPhrases
	}
}

func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	// Document -> root mapping.
	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			v := n.Content[i+1]
			if k.Kind == yaml.ScalarNode && k.Value == key {
				next = v
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	path := configPath()
	if path == "" {
		return nil
	}

	// Create config directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return fsutil.WriteFileAtomic(path, data, 0600)
}

// GetDataDir returns the resolved data directory path.
func (c *Config) GetDataDir() string {
	if c.DataDir != "" {
		// Expand ~ if present
		if c.DataDir == "~" {
			home, err := os.UserHomeDir()
			if err == nil {
				return home
			}
			return c.DataDir
		}

		if strings.HasPrefix(c.DataDir, "~/") || strings.HasPrefix(c.DataDir, `~\`) {
			home, err := os.UserHomeDir()
			if err == nil {
				trimmed := strings.TrimPrefix(c.DataDir, "~/")
				trimmed = strings.TrimPrefix(trimmed, `~\`)
				trimmed = strings.TrimPrefix(trimmed, `\`)
				return filepath.Join(home, trimmed)
			}
		}
		return c.DataDir
	}
	return defaultDataDir()
}
