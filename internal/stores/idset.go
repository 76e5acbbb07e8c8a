package stores

import (
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/niprobin/digging/internal/repositories"
	"github.com/niprobin/digging/internal/shared"
)

// IDSetStore persists a set of entry ids, serialized as a JSON array.
//
// Dismissals and bookmarks are both id sets with different namespaces.
type IDSetStore struct {
	kv        *repositories.KVRepository
	namespace string
	logger    *log.Logger

	mu  sync.Mutex
	ids map[string]bool
}

// NewIDSetStore hydrates an id set from its namespace.
func NewIDSetStore(kv *repositories.KVRepository, namespace string, logger *log.Logger) *IDSetStore {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	store := &IDSetStore{kv: kv, namespace: namespace, logger: logger, ids: map[string]bool{}}

	var raw []string
	hydrate(kv, namespace, &raw, logger)
	for _, id := range raw {
		if id != "" {
			store.ids[id] = true
		}
	}
	return store
}

// Has reports whether id is in the set.
func (s *IDSetStore) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ids[id]
}

// Add inserts id and persists the set.
func (s *IDSetStore) Add(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = true
	s.persistLocked()
}

// Remove drops id and persists the set.
func (s *IDSetStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, id)
	s.persistLocked()
}

// Toggle flips id's membership, persists the set, and reports the new state.
func (s *IDSetStore) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ids[id] {
		delete(s.ids, id)
	} else {
		s.ids[id] = true
	}
	s.persistLocked()
	return s.ids[id]
}

// Len returns the set size.
func (s *IDSetStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// IDs returns the members in lexical order.
func (s *IDSetStore) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Snapshot returns a copy of the set for use in a filter pipeline.
func (s *IDSetStore) Snapshot() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[string]bool, len(s.ids))
	for id := range s.ids {
		snapshot[id] = true
	}
	return snapshot
}

func (s *IDSetStore) persistLocked() {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	persist(s.kv, s.namespace, ids, s.logger)
}
