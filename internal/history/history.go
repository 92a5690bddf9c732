// Package history records recent site generations for the treesite CLI
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	maxEntries  = 10
	treesiteDir = ".treesite"
	historyFile = "history.json"
)

// Entry describes one completed generation run
type Entry struct {
	ID          string    `json:"id"`
	OutputDir   string    `json:"outputDir"`
	Variant     string    `json:"variant"` // "pruned" or "null-pages"
	Pages       int       `json:"pages"`
	Nodes       int       `json:"nodes"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Manager handles generation history storage and retrieval
type Manager struct {
	mu       sync.RWMutex
	entries  []Entry
	filePath string
}

// New creates a history manager backed by ~/.treesite/history.json
func New() (*Manager, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(home, treesiteDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	m := &Manager{
		filePath: filepath.Join(dir, historyFile),
		entries:  make([]Entry, 0),
	}

	// Load existing history; a missing or corrupt file means starting fresh
	if err := m.load(); err != nil {
		m.entries = make([]Entry, 0)
	}

	return m, nil
}

// load reads history from disk
func (m *Manager) load() error {
	data, err := os.ReadFile(m.filePath)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return json.Unmarshal(data, &m.entries)
}

// save writes history to disk
func (m *Manager) save() error {
	m.mu.RLock()
	data, err := json.MarshalIndent(m.entries, "", "  ")
	m.mu.RUnlock()

	if err != nil {
		return err
	}

	return os.WriteFile(m.filePath, data, 0644)
}

// Record adds a generation run to the history, newest first. A previous
// entry for the same output directory is replaced.
func (m *Manager) Record(outputDir, variant string, pages, nodes int) (Entry, error) {
	absPath, err := filepath.Abs(outputDir)
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{
		ID:          uuid.New().String(),
		OutputDir:   absPath,
		Variant:     variant,
		Pages:       pages,
		Nodes:       nodes,
		GeneratedAt: time.Now(),
	}

	m.mu.Lock()

	kept := make([]Entry, 0, maxEntries)
	for _, e := range m.entries {
		if e.OutputDir != absPath {
			kept = append(kept, e)
		}
	}

	m.entries = append([]Entry{entry}, kept...)
	if len(m.entries) > maxEntries {
		m.entries = m.entries[:maxEntries]
	}

	m.mu.Unlock()

	return entry, m.save()
}

// All returns all recorded generations, newest first
func (m *Manager) All() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Entry, len(m.entries))
	copy(result, m.entries)
	return result
}

// Clear removes all history entries
func (m *Manager) Clear() error {
	m.mu.Lock()
	m.entries = make([]Entry, 0)
	m.mu.Unlock()

	return m.save()
}
