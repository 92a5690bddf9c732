package history

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return &Manager{
		filePath: filepath.Join(t.TempDir(), historyFile),
		entries:  make([]Entry, 0),
	}
}

func TestRecord(t *testing.T) {
	m := newTestManager(t)

	entry, err := m.Record("site-a", "pruned", 6, 6)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if entry.ID == "" {
		t.Error("Record should assign a build ID")
	}
	if entry.Nodes != 6 {
		t.Errorf("Nodes = %d, want 6", entry.Nodes)
	}
	if entry.Pages != 6 {
		t.Errorf("Pages = %d, want 6", entry.Pages)
	}
	if entry.GeneratedAt.IsZero() {
		t.Error("Record should set the generation time")
	}
	if !filepath.IsAbs(entry.OutputDir) {
		t.Errorf("OutputDir should be absolute, got %q", entry.OutputDir)
	}
}

func TestRecordNewestFirst(t *testing.T) {
	m := newTestManager(t)

	if _, err := m.Record("site-a", "pruned", 6, 6); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if _, err := m.Record("site-b", "null-pages", 13, 6); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	all := m.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(all))
	}
	if filepath.Base(all[0].OutputDir) != "site-b" {
		t.Errorf("newest entry should come first, got %q", all[0].OutputDir)
	}
}

func TestRecordReplacesSameOutputDir(t *testing.T) {
	m := newTestManager(t)

	if _, err := m.Record("site-a", "pruned", 6, 6); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if _, err := m.Record("site-a", "null-pages", 13, 6); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	all := m.All()
	if len(all) != 1 {
		t.Fatalf("expected 1 entry after regenerating the same output, got %d", len(all))
	}
	if all[0].Variant != "null-pages" || all[0].Pages != 13 {
		t.Errorf("entry should reflect the latest run, got %+v", all[0])
	}
}

func TestRecordTrimsToMax(t *testing.T) {
	m := newTestManager(t)

	for i := 0; i < maxEntries+3; i++ {
		if _, err := m.Record(fmt.Sprintf("site-%d", i), "pruned", 1, 1); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	if got := len(m.All()); got != maxEntries {
		t.Errorf("expected history trimmed to %d entries, got %d", maxEntries, got)
	}
}

func TestPersistence(t *testing.T) {
	m := newTestManager(t)

	if _, err := m.Record("site-a", "pruned", 6, 6); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	reloaded := &Manager{filePath: m.filePath}
	if err := reloaded.load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	all := reloaded.All()
	if len(all) != 1 {
		t.Fatalf("expected 1 persisted entry, got %d", len(all))
	}
	if all[0].Variant != "pruned" {
		t.Errorf("Variant = %q, want %q", all[0].Variant, "pruned")
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), historyFile)
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatalf("Failed to write corrupt history: %v", err)
	}

	m := &Manager{filePath: path, entries: make([]Entry, 0)}
	if err := m.load(); err == nil {
		t.Error("load should fail for a corrupt history file")
	}

	// A corrupt file means starting fresh, not breaking the manager
	if _, err := m.Record("site-a", "pruned", 6, 6); err != nil {
		t.Fatalf("Record failed after corrupt load: %v", err)
	}
	if got := len(m.All()); got != 1 {
		t.Errorf("expected 1 entry after recovering, got %d", got)
	}
}

func TestClear(t *testing.T) {
	m := newTestManager(t)

	if _, err := m.Record("site-a", "pruned", 6, 6); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := m.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if got := len(m.All()); got != 0 {
		t.Errorf("expected empty history after Clear, got %d entries", got)
	}
}
