package environment

import (
	"sort"
	"sync"

	"github.com/alexisbeaulieu97/extreports/internal/ports"
)

// Property names shared between the orchestrator and the report generators.
const (
	ProjectKeyProperty          = "serenity.project.key"
	RequirementsBaseDirProperty = "serenity.test.requirements.basedir"
	LocaleProperty              = "report.locale"
	ClasspathProperty           = "report.project.classpath"
	OutputDirectoryProperty     = "serenity.outputDirectory"
	GitBranchProperty           = "report.git.branch"
	GitCommitProperty           = "report.git.commit"
)

// DefaultProjectKey is written when an invocation does not name a project.
const DefaultProjectKey = "default"

// Store implements ports.EnvironmentStore with an in-memory map.
type Store struct {
	mu    sync.RWMutex
	props map[string]string
}

// NewStore returns a store seeded with the supplied properties.
func NewStore(seed map[string]string) *Store {
	props := make(map[string]string, len(seed))
	for k, v := range seed {
		props[k] = v
	}
	return &Store{props: props}
}

// SetProperty records value under key, replacing any previous value.
func (s *Store) SetProperty(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.props[key] = value
}

// Property returns the current value for key.
func (s *Store) Property(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.props[key]
	return v, ok
}

// PropertyOr returns the value for key, or fallback when the key is unset.
func (s *Store) PropertyOr(key, fallback string) string {
	if v, ok := s.Property(key); ok {
		return v
	}
	return fallback
}

// Keys returns the stored keys in lexical order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.props))
	for k := range s.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of every property.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.props))
	for k, v := range s.props {
		out[k] = v
	}
	return out
}

var _ ports.EnvironmentStore = (*Store)(nil)
