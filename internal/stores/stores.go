package stores

import (
	"encoding/json"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/niprobin/digging/internal/repositories"
	"github.com/niprobin/digging/internal/shared"
)

// Well known namespaces. The CLI's state inspection commands list these.
const (
	NamespaceFilters        = "filters"
	NamespaceTrackDismissed = "track-dismissed"
	NamespaceAlbumDismissed = "album-dismissed"
	NamespaceAlbumBookmarks = "album-bookmarks"
	NamespaceBookmarkFilter = "album-bookmark-filter"
	NamespaceAlbumRatings   = "album-ratings"
	NamespaceLikeOverrides  = "like-overrides"
)

// hydrate loads a namespace into target, falling back to the zero value when
// the snapshot is missing or corrupt.
func hydrate(kv *repositories.KVRepository, namespace string, target any, logger *log.Logger) {
	raw, err := kv.Get(namespace)
	if err != nil {
		if !errors.Is(err, shared.ErrEntryNotFound) {
			logger.Warnf("failed to hydrate %s: %v", namespace, err)
		}
		return
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		logger.Warnf("corrupt snapshot in %s, resetting: %v", namespace, err)
	}
}

// persist serializes value into a namespace. Failures are logged, not
// returned: the in-memory state stays authoritative for the session.
func persist(kv *repositories.KVRepository, namespace string, value any, logger *log.Logger) {
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Warnf("failed to serialize %s: %v", namespace, err)
		return
	}
	if err := kv.Set(namespace, string(raw)); err != nil {
		logger.Warnf("failed to persist %s: %v", namespace, err)
	}
}
