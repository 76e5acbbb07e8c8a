package stores

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/niprobin/digging/internal/filters"
	"github.com/niprobin/digging/internal/repositories"
	"github.com/niprobin/digging/internal/shared"
)

// FilterStore persists the shared filter selection.
type FilterStore struct {
	kv     *repositories.KVRepository
	logger *log.Logger

	mu    sync.Mutex
	state filters.State
}

// NewFilterStore hydrates the filter selection from its namespace.
func NewFilterStore(kv *repositories.KVRepository, logger *log.Logger) *FilterStore {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	store := &FilterStore{kv: kv, logger: logger, state: filters.DefaultState()}
	patch := filters.Patch{}
	hydrate(kv, NamespaceFilters, &patch, logger)
	store.state = store.state.Apply(patch)
	return store
}

// State returns a copy of the current selection.
func (s *FilterStore) State() filters.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Update mutates the selection and persists the result.
func (s *FilterStore) Update(mutate func(*filters.State)) filters.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	mutate(&s.state)
	persist(s.kv, NamespaceFilters, s.state, s.logger)
	return s.state
}

// Apply merges a patch into the selection and persists the result.
func (s *FilterStore) Apply(patch filters.Patch) filters.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.state.Apply(patch)
	persist(s.kv, NamespaceFilters, s.state, s.logger)
	return s.state
}

// FlagStore persists a single boolean, such as the bookmark-only filter.
type FlagStore struct {
	kv        *repositories.KVRepository
	namespace string
	logger    *log.Logger

	mu    sync.Mutex
	value bool
}

// NewFlagStore hydrates a boolean flag from its namespace.
func NewFlagStore(kv *repositories.KVRepository, namespace string, initial bool, logger *log.Logger) *FlagStore {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	store := &FlagStore{kv: kv, namespace: namespace, logger: logger, value: initial}
	hydrate(kv, namespace, &store.value, logger)
	return store
}

// Get returns the flag.
func (s *FlagStore) Get() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set replaces the flag and persists it.
func (s *FlagStore) Set(value bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	persist(s.kv, s.namespace, s.value, s.logger)
}

// Toggle flips the flag, persists it, and returns the new value.
func (s *FlagStore) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = !s.value
	persist(s.kv, s.namespace, s.value, s.logger)
	return s.value
}
