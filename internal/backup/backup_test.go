package backup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// createTestData creates a sample tasks file for testing.
func createTestData(t *testing.T, dataDir string) {
	t.Helper()

	tasks := map[string]interface{}{
		"tasks": []map[string]interface{}{
			{"id": "t_1", "text": "Buy milk", "status": "pending", "priority": "normal"},
			{"id": "t_2", "text": "Call bank", "status": "completed", "priority": "high"},
			{"id": "t_3", "text": "Plan week", "status": "pending", "priority": "low"},
		},
	}
	writeTestJSON(t, filepath.Join(dataDir, TasksFile), tasks)
}

// writeTestJSON writes JSON to a file for testing.
func writeTestJSON(t *testing.T, path string, v interface{}) {
	t.Helper()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal JSON: %v", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

// readTestJSON reads JSON from a file for testing.
func readTestJSON(t *testing.T, path string) map[string]interface{} {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("failed to unmarshal JSON: %v", err)
	}

	return result
}

func TestCreate(t *testing.T) {
	dataDir := t.TempDir()
	createTestData(t, dataDir)

	m := NewManager(dataDir, "test")
	name, err := m.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	backupPath := filepath.Join(dataDir, BackupsDir, name)
	if _, err := os.Stat(filepath.Join(backupPath, TasksFile)); err != nil {
		t.Errorf("tasks file not copied: %v", err)
	}

	var manifest Manifest
	data, err := os.ReadFile(filepath.Join(backupPath, ManifestFile))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("parse manifest: %v", err)
	}

	if manifest.Version != ManifestVersion {
		t.Errorf("manifest version = %q", manifest.Version)
	}
	if manifest.AppVersion != "test" {
		t.Errorf("app version = %q", manifest.AppVersion)
	}
	if manifest.Stats["tasks"] != 3 {
		t.Errorf("stats tasks = %d, want 3", manifest.Stats["tasks"])
	}
	if manifest.Stats["pending"] != 2 || manifest.Stats["completed"] != 1 {
		t.Errorf("stats = %v", manifest.Stats)
	}
}

func TestCreate_NoDataFile(t *testing.T) {
	dataDir := t.TempDir()

	m := NewManager(dataDir, "test")
	name, err := m.Create()
	if err != nil {
		t.Fatalf("Create with no data: %v", err)
	}

	// A manifest exists even for an empty backup.
	manifestPath := filepath.Join(dataDir, BackupsDir, name, ManifestFile)
	if _, err := os.Stat(manifestPath); err != nil {
		t.Errorf("manifest missing: %v", err)
	}
}

func TestList(t *testing.T) {
	dataDir := t.TempDir()
	createTestData(t, dataDir)

	m := NewManager(dataDir, "test")

	// No backups yet.
	backups, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}

	first, err := m.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	time.Sleep(5 * time.Millisecond) // distinct timestamps
	second, err := m.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	backups, err = m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(backups) != 2 {
		t.Fatalf("got %d backups, want 2", len(backups))
	}
	// Newest first.
	if backups[0].Name != second || backups[1].Name != first {
		t.Errorf("order = %s, %s", backups[0].Name, backups[1].Name)
	}
}

func TestRestore(t *testing.T) {
	dataDir := t.TempDir()
	createTestData(t, dataDir)

	m := NewManager(dataDir, "test")
	name, err := m.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Overwrite the live file with a shrunken list.
	writeTestJSON(t, filepath.Join(dataDir, TasksFile), map[string]interface{}{
		"tasks": []map[string]interface{}{},
	})

	if err := m.Restore(name); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	restored := readTestJSON(t, filepath.Join(dataDir, TasksFile))
	tasks, ok := restored["tasks"].([]interface{})
	if !ok || len(tasks) != 3 {
		t.Errorf("restored tasks = %v", restored["tasks"])
	}

	// A safety backup of the pre-restore state was kept.
	backups, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(backups) < 2 {
		t.Errorf("expected a safety backup, got %d backups", len(backups))
	}
}

func TestRestore_InvalidName(t *testing.T) {
	m := NewManager(t.TempDir(), "test")

	for _, name := range []string{"", "../escape", "not-a-timestamp", "2025-13-99_999999"} {
		if err := m.Restore(name); err == nil {
			t.Errorf("Restore(%q): expected error", name)
		}
	}
}

func TestRestoreLatest(t *testing.T) {
	dataDir := t.TempDir()
	createTestData(t, dataDir)

	m := NewManager(dataDir, "test")

	if err := m.RestoreLatest(); err == nil {
		t.Error("expected error with no backups")
	}

	if _, err := m.Create(); err != nil {
		t.Fatalf("Create: %v", err)
	}
	writeTestJSON(t, filepath.Join(dataDir, TasksFile), map[string]interface{}{
		"tasks": []map[string]interface{}{},
	})

	if err := m.RestoreLatest(); err != nil {
		t.Fatalf("RestoreLatest: %v", err)
	}

	restored := readTestJSON(t, filepath.Join(dataDir, TasksFile))
	if tasks, ok := restored["tasks"].([]interface{}); !ok || len(tasks) != 3 {
		t.Errorf("restored tasks = %v", restored["tasks"])
	}
}

func TestPrune(t *testing.T) {
	dataDir := t.TempDir()
	createTestData(t, dataDir)

	m := NewManager(dataDir, "test")
	for i := 0; i < 4; i++ {
		if _, err := m.Create(); err != nil {
			t.Fatalf("Create: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	deleted, err := m.Prune(2)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(backups) != 2 {
		t.Errorf("remaining = %d, want 2", len(backups))
	}

	if _, err := m.Prune(-1); err == nil {
		t.Error("expected error for negative keep count")
	}
}

func TestParseBackupName(t *testing.T) {
	if _, err := parseBackupName("2025-12-15_143022_123"); err != nil {
		t.Errorf("millisecond format: %v", err)
	}
	if _, err := parseBackupName("2025-12-15_143022"); err != nil {
		t.Errorf("plain format: %v", err)
	}
	if _, err := parseBackupName("nope"); err == nil {
		t.Error("expected error for junk name")
	}
}
