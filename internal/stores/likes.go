package stores

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/niprobin/digging/internal/models"
	"github.com/niprobin/digging/internal/repositories"
	"github.com/niprobin/digging/internal/shared"
)

// LikeStore tracks liked entries on top of the like history.
//
// The sheet snapshot carries each entry's server-side liked flag; local likes
// and unlikes are recorded as overrides that only stick when they differ from
// that flag. Liking an entry the sheet already marks liked clears the
// override instead, so a later sheet refresh stays authoritative.
type LikeStore struct {
	likes  *repositories.LikeRepository
	kv     *repositories.KVRepository
	logger *log.Logger
	now    func() time.Time

	mu        sync.Mutex
	overrides map[string]bool
}

// NewLikeStore hydrates the overrides and wires the like history repository.
func NewLikeStore(likes *repositories.LikeRepository, kv *repositories.KVRepository, logger *log.Logger) *LikeStore {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	store := &LikeStore{
		likes:     likes,
		kv:        kv,
		logger:    logger,
		now:       time.Now,
		overrides: map[string]bool{},
	}
	hydrate(kv, NamespaceLikeOverrides, &store.overrides, logger)
	return store
}

// IsLiked resolves an entry's liked status: the local override wins when
// present, otherwise the server-side flag stands.
func (s *LikeStore) IsLiked(id string, base bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if override, ok := s.overrides[id]; ok {
		return override
	}
	return base
}

// Like records a like for the item. base is the server-side liked flag at the
// time of the action.
func (s *LikeStore) Like(item models.LikeableItem, base bool) error {
	if err := s.likes.MarkLiked(item, s.now()); err != nil {
		return fmt.Errorf("failed to record like: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if base {
		delete(s.overrides, item.ID)
	} else {
		s.overrides[item.ID] = true
	}
	persist(s.kv, NamespaceLikeOverrides, s.overrides, s.logger)
	return nil
}

// Unlike archives the entry's history record and records the override.
func (s *LikeStore) Unlike(id string, base bool) error {
	if err := s.likes.MarkUnliked(id, s.now()); err != nil {
		return fmt.Errorf("failed to record unlike: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if base {
		s.overrides[id] = false
	} else {
		delete(s.overrides, id)
	}
	persist(s.kv, NamespaceLikeOverrides, s.overrides, s.logger)
	return nil
}

// History lists the like history, most recently liked first.
func (s *LikeStore) History(activeOnly bool) ([]models.HistoryEntry, error) {
	return s.likes.History(activeOnly)
}

// LikedFunc adapts the store for the filter pipelines.
func (s *LikeStore) LikedFunc() func(id string, fallback bool) bool {
	return s.IsLiked
}
