package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// Manager loads device-family profiles from a directory of YAML files
// and tracks which one is active.
type Manager struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
	active   string
}

// NewManager creates a manager seeded with the built-in default profile
// and loads any YAML profiles found in dir. A missing directory is not
// an error; the built-in profile is always available.
func NewManager(dir string) (*Manager, error) {
	def := Default()
	m := &Manager{
		profiles: map[string]*Profile{def.Name: def},
		active:   def.Name,
	}
	if err := m.LoadDir(dir); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadDir loads every .yaml/.yml file in dir as a profile.
func (m *Manager) LoadDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read profiles directory %s: %w", dir, err)
	}

	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		if err := m.LoadFile(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile loads a single profile YAML file.
func (m *Manager) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	if p.Name == "" {
		return fmt.Errorf("profile %s has no name", path)
	}
	if p.PortStride == 0 {
		return fmt.Errorf("profile %s has zero port stride", p.Name)
	}

	m.mu.Lock()
	m.profiles[p.Name] = &p
	m.mu.Unlock()
	return nil
}

// Get returns a profile by name.
func (m *Manager) Get(name string) (*Profile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[name]
	return p, ok
}

// Active returns the currently selected profile.
func (m *Manager) Active() *Profile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profiles[m.active]
}

// SetActive selects the named profile.
func (m *Manager) SetActive(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[name]; !ok {
		return fmt.Errorf("unknown profile: %s", name)
	}
	m.active = name
	return nil
}

// Names returns all loaded profile names, sorted.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.profiles))
	for n := range m.profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
