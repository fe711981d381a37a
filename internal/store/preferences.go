package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Prefs are the locally persisted UI preferences.
type Prefs struct {
	DarkMode   bool      `yaml:"dark_mode"`
	LastExport time.Time `yaml:"last_export,omitempty"`
}

// Preferences loads and saves Prefs.
type Preferences interface {
	Load() (Prefs, error)
	Save(Prefs) error
}

// FilePreferences keeps Prefs in a YAML file. A missing file reads as
// zero Prefs.
type FilePreferences struct {
	path string
}

// NewFilePreferences returns preferences stored at path.
func NewFilePreferences(path string) *FilePreferences {
	return &FilePreferences{path: path}
}

// Load reads the preferences file.
func (p *FilePreferences) Load() (Prefs, error) {
	var prefs Prefs
	data, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return prefs, nil
	}
	if err != nil {
		return prefs, fmt.Errorf("reading preferences: %w", err)
	}
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return prefs, fmt.Errorf("parsing preferences %s: %w", p.path, err)
	}
	return prefs, nil
}

// Save writes the preferences file, creating its directory.
func (p *FilePreferences) Save(prefs Prefs) error {
	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("creating preferences directory: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0o600); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	return nil
}

// MemoryPreferences keeps Prefs in memory.
type MemoryPreferences struct {
	mu    sync.Mutex
	prefs Prefs
}

// NewMemoryPreferences returns empty in-memory preferences.
func NewMemoryPreferences() *MemoryPreferences { return &MemoryPreferences{} }

func (m *MemoryPreferences) Load() (Prefs, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prefs, nil
}

func (m *MemoryPreferences) Save(prefs Prefs) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs = prefs
	return nil
}
