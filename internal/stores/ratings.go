package stores

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/niprobin/digging/internal/models"
	"github.com/niprobin/digging/internal/repositories"
	"github.com/niprobin/digging/internal/shared"
)

// RatingStore persists per-album star ratings.
type RatingStore struct {
	kv     *repositories.KVRepository
	logger *log.Logger

	mu      sync.Mutex
	ratings map[string]int
}

// NewRatingStore hydrates the ratings from their namespace.
func NewRatingStore(kv *repositories.KVRepository, logger *log.Logger) *RatingStore {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	store := &RatingStore{kv: kv, logger: logger, ratings: map[string]int{}}
	hydrate(kv, NamespaceAlbumRatings, &store.ratings, logger)
	return store
}

// Get returns the rating for id and whether one is recorded.
func (s *RatingStore) Get(id string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rating, ok := s.ratings[id]
	return rating, ok
}

// Set records a rating for id and persists the map.
func (s *RatingStore) Set(id string, rating int) error {
	if !models.ValidRating(rating) {
		return fmt.Errorf("rating %d out of range: %w", rating, shared.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ratings[id] = rating
	persist(s.kv, NamespaceAlbumRatings, s.ratings, s.logger)
	return nil
}

// Clear drops the rating for id and persists the map.
func (s *RatingStore) Clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ratings, id)
	persist(s.kv, NamespaceAlbumRatings, s.ratings, s.logger)
}

// Snapshot returns a copy of all recorded ratings.
func (s *RatingStore) Snapshot() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[string]int, len(s.ratings))
	for id, rating := range s.ratings {
		snapshot[id] = rating
	}
	return snapshot
}
