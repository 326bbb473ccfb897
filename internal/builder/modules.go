package builder

import (
	"fmt"
	"path/filepath"
	"slices"
	"sync"
)

// DefaultModule is the builder used when a reference yields no usable builder.
const DefaultModule = "static"

// Constructor creates a builder instance. The value is checked against the
// builder contract after construction.
type Constructor func() (any, error)

// Module is a builder implementation known to the host.
type Module struct {
	Name        string
	Description string
	// Path is an optional source directory. Locators naming it resolve to
	// this module, and it is what "clone" copies.
	Path string
	New  Constructor
}

// Modules manages the builder modules a Loader can resolve by name.
type Modules struct {
	mu     sync.RWMutex
	byName map[string]Module
	byPath map[string]string
}

// NewModules creates an empty module registry.
func NewModules() *Modules {
	return &Modules{
		byName: make(map[string]Module),
		byPath: make(map[string]string),
	}
}

// Register adds a module. Names must be unique.
func (m *Modules) Register(mod Module) error {
	if mod.Name == "" {
		return fmt.Errorf("cannot register builder module without a name")
	}
	if mod.New == nil {
		return fmt.Errorf("builder module %s has no constructor", mod.Name)
	}
	if mod.Path != "" {
		abs, err := filepath.Abs(mod.Path)
		if err != nil {
			return fmt.Errorf("builder module %s: %w", mod.Name, err)
		}
		mod.Path = abs
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byName[mod.Name]; exists {
		return fmt.Errorf("builder module %s already registered", mod.Name)
	}
	m.byName[mod.Name] = mod
	if mod.Path != "" {
		m.byPath[mod.Path] = mod.Name
	}
	return nil
}

// MustRegister is like Register but panics on error. It is meant for init functions.
func (m *Modules) MustRegister(mod Module) {
	if err := m.Register(mod); err != nil {
		panic(err)
	}
}

// Lookup returns the module registered under name.
func (m *Modules) Lookup(name string) (Module, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	mod, ok := m.byName[name]
	return mod, ok
}

// LookupPath returns the module whose source directory is path.
func (m *Modules) LookupPath(path string) (Module, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	name, ok := m.byPath[filepath.Clean(path)]
	if !ok {
		return Module{}, false
	}
	return m.byName[name], true
}

// List returns all registered modules sorted by name.
func (m *Modules) List() []Module {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Module, 0, len(m.byName))
	for _, mod := range m.byName {
		result = append(result, mod)
	}
	slices.SortFunc(result, func(a, b Module) int {
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
	return result
}

var defaultModules = NewModules()

// DefaultModules returns the process-wide registry built-in builders add
// themselves to.
func DefaultModules() *Modules { return defaultModules }

// Register adds mod to the default registry.
func Register(mod Module) error { return defaultModules.Register(mod) }
