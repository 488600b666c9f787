package filter

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Presets holds named, pre-compiled filters loaded from configuration
type Presets struct {
	compiler *Compiler
	filters  map[string]*Filter
	mu       sync.RWMutex
}

// NewPresets creates an empty preset set that compiles with compiler.
// A nil compiler uses the package's shared one.
func NewPresets(compiler *Compiler) *Presets {
	if compiler == nil {
		compiler = defaultCompiler
	}
	return &Presets{
		compiler: compiler,
		filters:  make(map[string]*Filter),
	}
}

// Register compiles and stores a preset, replacing any with the same name
func (p *Presets) Register(name, expression string) error {
	f, err := p.compiler.Compile(expression)
	if err != nil {
		return fmt.Errorf("failed to compile preset '%s': %w", name, err)
	}

	p.mu.Lock()
	p.filters[name] = f
	p.mu.Unlock()

	return nil
}

// RegisterAll compiles every expression first and only registers them if all
// of them compile
func (p *Presets) RegisterAll(expressions map[string]string) error {
	compiled := make(map[string]*Filter, len(expressions))
	for _, name := range slices.Sorted(maps.Keys(expressions)) {
		f, err := p.compiler.Compile(expressions[name])
		if err != nil {
			return fmt.Errorf("failed to compile preset '%s': %w", name, err)
		}
		compiled[name] = f
	}

	p.mu.Lock()
	maps.Copy(p.filters, compiled)
	p.mu.Unlock()

	return nil
}

// Get returns a preset by name
func (p *Presets) Get(name string) (*Filter, error) {
	p.mu.RLock()
	f, ok := p.filters[name]
	p.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	return f, nil
}

// Names returns the registered preset names in sorted order
func (p *Presets) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Sorted(maps.Keys(p.filters))
}
