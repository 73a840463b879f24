package report

import (
	"fmt"
	"sort"
	"sync"

	"github.com/alexisbeaulieu97/extreports/internal/logger"
	"github.com/alexisbeaulieu97/extreports/internal/ports"
	reporterrors "github.com/alexisbeaulieu97/extreports/pkg/errors"
)

// Dependencies are handed to every generator factory. They are the only state
// a generator shares with the orchestrator.
type Dependencies struct {
	OutputDirectory string
	Store           ports.EnvironmentStore
	Logger          *logger.Logger
}

// Factory constructs a generator for one dispatch.
type Factory func(deps Dependencies) (ports.ReportGenerator, error)

// Descriptor documents a registered report kind.
type Descriptor struct {
	Kind        Kind
	Description string
	factory     Factory
}

// Registry maps report kinds to factories.
type Registry struct {
	mu      sync.RWMutex
	entries map[Kind]Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Kind]Descriptor)}
}

// RegisterFactory adds a factory for kind.
func (r *Registry) RegisterFactory(kind Kind, description string, factory Factory) error {
	if kind == "" {
		return fmt.Errorf("report kind is required")
	}
	if factory == nil {
		return fmt.Errorf("report factory is nil for kind %q", kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[kind]; exists {
		return fmt.Errorf("report kind %q already registered", kind)
	}
	r.entries[kind] = Descriptor{Kind: kind, Description: description, factory: factory}
	return nil
}

// Descriptors returns every registered kind sorted by name.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Descriptor, 0, len(r.entries))
	for _, d := range r.entries {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

// Bind returns a ports.ReportRegistry whose generators are built with deps.
func (r *Registry) Bind(deps Dependencies) *Resolver {
	return &Resolver{registry: r, deps: deps}
}

func (r *Registry) lookup(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.entries[Kind(name)]
	return d, ok
}

// Resolver resolves report names against a Registry with fixed Dependencies.
type Resolver struct {
	registry *Registry
	deps     Dependencies
}

// Validate reports every name that is not registered, each listed once in
// first-seen order.
func (res *Resolver) Validate(names []string) error {
	var unknown []string
	seen := make(map[string]struct{})
	for _, name := range names {
		if _, ok := res.registry.lookup(name); ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		unknown = append(unknown, name)
	}
	if len(unknown) > 0 {
		return reporterrors.NewUnknownReportError(unknown...)
	}
	return nil
}

// Generator constructs the generator registered for name.
func (res *Resolver) Generator(name string) (ports.ReportGenerator, error) {
	d, ok := res.registry.lookup(name)
	if !ok {
		return nil, reporterrors.NewUnknownReportError(name)
	}

	deps := res.deps
	deps.Logger = deps.Logger.With("report", name)

	gen, err := d.factory(deps)
	if err != nil {
		return nil, fmt.Errorf("construct report %q: %w", name, err)
	}
	if gen == nil {
		return nil, fmt.Errorf("report factory returned nil for kind %q", name)
	}
	return gen, nil
}

// Kinds lists the registered kind names in lexical order.
func (res *Resolver) Kinds() []string {
	descriptors := res.registry.Descriptors()
	kinds := make([]string, len(descriptors))
	for i, d := range descriptors {
		kinds[i] = string(d.Kind)
	}
	return kinds
}

var _ ports.ReportRegistry = (*Resolver)(nil)

var builtin = NewRegistry()

// Register adds a factory to the process-wide registry of built-in reports.
// Generator packages call it from init; duplicates panic since they indicate
// two packages claiming one kind.
func Register(kind Kind, description string, factory Factory) {
	if err := builtin.RegisterFactory(kind, description, factory); err != nil {
		panic(err)
	}
}

// Builtin returns the registry populated by generator packages.
func Builtin() *Registry {
	return builtin
}
