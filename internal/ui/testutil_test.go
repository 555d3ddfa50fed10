package ui

import (
	"testing"
	"time"

	"listik/internal/config"
	"listik/internal/draft"
	"listik/internal/store"
	"listik/internal/taskparse"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// testNow is a fixed Wednesday used to keep relative dates stable.
var testNow = time.Date(2025, time.January, 8, 10, 30, 0, 0, time.UTC)

// setupTest prepares the test environment for deterministic rendering.
// It disables colors to ensure consistent output across environments.
func setupTest(t *testing.T) {
	t.Helper()
	// Use ASCII profile to disable all color codes in output
	lipgloss.SetColorProfile(termenv.Ascii)
}

// createTestStore creates a Store with a temp directory and a fixed clock.
func createTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	st.SetNowFunc(func() time.Time { return testNow })
	return st
}

// createTestStyles creates a default Styles instance for testing.
func createTestStyles() *Styles {
	return NewStylesFromTheme(&config.ThemeConfig{})
}

// createTestReconciler builds a reconciler with the French locale and the
// same fixed clock as createTestStore.
func createTestReconciler(st *store.Store) *draft.Reconciler {
	locale := taskparse.ForLanguage("fr")
	rec := draft.NewReconciler(taskparse.New(locale, taskparse.DefaultTriggers()))
	rec.SetNowFunc(st.Now)
	return rec
}
