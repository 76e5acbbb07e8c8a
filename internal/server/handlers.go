package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/niprobin/digging/internal/cache"
	"github.com/niprobin/digging/internal/models"
	"github.com/niprobin/digging/internal/repositories"
	"github.com/niprobin/digging/internal/services"
	"github.com/niprobin/digging/internal/sheets"
	"github.com/niprobin/digging/internal/shared"
	"github.com/niprobin/digging/internal/stores"
)

const (
	cacheTagTracks = "tracks"
	cacheTagAlbums = "albums"

	defaultPageSize = 8
	minPageSize     = 3
	maxPageSize     = 12
)

// App owns every handler of the dashboard: the inbox views, the per-entry
// actions, the relays, and the login flow.
type App struct {
	cfg      *shared.Config
	logger   *log.Logger
	sheets   *sheets.Client
	cache    *cache.Cache
	relay    *services.RelayClient
	preview  *services.PreviewResolver
	sessions *SessionStore

	likes          *stores.LikeStore
	filterStore    *stores.FilterStore
	bookmarkFilter *stores.FlagStore
	trackDismissed *stores.IDSetStore
	albumDismissed *stores.IDSetStore
	bookmarks      *stores.IDSetStore
	ratings        *stores.RatingStore

	now func() time.Time
}

// NewApp wires the application together from its configuration and an open
// database handle.
func NewApp(cfg *shared.Config, db *sql.DB, logger *log.Logger) *App {
	httpClient := &http.Client{Timeout: 15 * time.Second}
	kv := repositories.NewKVRepository(db)

	ttl := time.Duration(cfg.Sources.CacheTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	return &App{
		cfg:      cfg,
		logger:   logger,
		sheets:   sheets.NewClient(cfg.Sources, httpClient, logger),
		cache:    cache.New(ttl),
		relay:    services.NewRelayClient(cfg.Webhooks, httpClient, logger),
		preview:  services.NewPreviewResolver(cfg.Preview, httpClient, logger),
		sessions: NewSessionStore(),

		likes:          stores.NewLikeStore(repositories.NewLikeRepository(db), kv, logger),
		filterStore:    stores.NewFilterStore(kv, logger),
		bookmarkFilter: stores.NewFlagStore(kv, stores.NamespaceBookmarkFilter, false, logger),
		trackDismissed: stores.NewIDSetStore(kv, stores.NamespaceTrackDismissed, logger),
		albumDismissed: stores.NewIDSetStore(kv, stores.NamespaceAlbumDismissed, logger),
		bookmarks:      stores.NewIDSetStore(kv, stores.NamespaceAlbumBookmarks, logger),
		ratings:        stores.NewRatingStore(kv, logger),

		now: time.Now,
	}
}

// Mount registers every route on the router.
func (a *App) Mount(router Router) {
	router.Handle("GET", "/{$}", http.HandlerFunc(a.handleIndex))
	router.Handle("GET", "/login", http.HandlerFunc(a.handleLoginPage))

	router.Handle("POST", "/api/login", http.HandlerFunc(a.handleLogin))
	router.Handle("POST", "/api/logout", http.HandlerFunc(a.handleLogout))

	router.Handle("", "/api/filters", http.HandlerFunc(a.handleFilters))
	router.Handle("GET", "/api/tracks", http.HandlerFunc(a.handleTracks))
	router.Handle("GET", "/api/albums", http.HandlerFunc(a.handleAlbums))
	router.Handle("GET", "/api/history", http.HandlerFunc(a.handleHistory))
	router.Handle("GET", "/api/curators", http.HandlerFunc(a.handleCurators))

	router.Handle("POST", "/api/tracks/{id}/dismiss", http.HandlerFunc(a.handleTrackDismiss))
	router.Handle("POST", "/api/tracks/{id}/playlist", http.HandlerFunc(a.handleTrackPlaylist))
	router.Handle("POST", "/api/albums/{id}/rate", http.HandlerFunc(a.handleAlbumRate))
	router.Handle("POST", "/api/albums/{id}/dismiss", http.HandlerFunc(a.handleAlbumDismiss))
	router.Handle("POST", "/api/albums/{id}/bookmark", http.HandlerFunc(a.handleAlbumBookmark))
	router.Handle("POST", "/api/likes/{id}", http.HandlerFunc(a.handleLike))

	router.Handle("GET", "/api/preview/search", http.HandlerFunc(a.handlePreviewSearch))
	router.Handle("GET", "/api/preview/track", http.HandlerFunc(a.handlePreviewTrack))
	router.Handle("GET", "/api/preview/album", http.HandlerFunc(a.handlePreviewAlbum))

	router.Handle("POST", "/api/library/search", http.HandlerFunc(a.handleLibrarySearch))
	router.Handle("POST", "/api/list/albums", http.HandlerFunc(a.handleAddAlbum))
	router.Handle("POST", "/api/list/songs", http.HandlerFunc(a.handleAddSong))

	router.Handle("", "/api/download", http.HandlerFunc(a.handleDownload))
	router.Handle("POST", "/api/revalidate", http.HandlerFunc(a.handleRevalidate))
}

// Sessions exposes the session store for the gate middleware.
func (a *App) Sessions() *SessionStore {
	return a.sessions
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"ok": false, "error": message})
}

// statusForError maps the shared sentinel errors onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, shared.ErrMissingArgument),
		errors.Is(err, shared.ErrInvalidArgument),
		errors.Is(err, shared.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrEntryNotFound),
		errors.Is(err, shared.ErrNoStreamURL):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrStreamingDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, shared.ErrWebhookFailed),
		errors.Is(err, shared.ErrAllHostsFailed),
		errors.Is(err, shared.ErrAPIRequest):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeFailure(w http.ResponseWriter, err error) {
	writeError(w, statusForError(err), err.Error())
}

// decodeBody decodes a small JSON request body into target.
func decodeBody(req *http.Request, target any) error {
	defer req.Body.Close()
	if err := json.NewDecoder(req.Body).Decode(target); err != nil {
		return shared.ErrInvalidInput
	}
	return nil
}

// cachedTracks returns the track snapshot, fetching through the TTL cache.
func (a *App) cachedTracks(req *http.Request) []models.TrackEntry {
	return cache.GetOrFill(a.cache, "tracks", cacheTagTracks, func() []models.TrackEntry {
		return a.sheets.TrackEntries(req.Context())
	})
}

// cachedAlbums returns the album snapshot, fetching through the TTL cache.
func (a *App) cachedAlbums(req *http.Request) []models.AlbumEntry {
	return cache.GetOrFill(a.cache, "albums", cacheTagAlbums, func() []models.AlbumEntry {
		return a.sheets.AlbumEntries(req.Context())
	})
}

func (a *App) findTrack(req *http.Request, id string) (models.TrackEntry, bool) {
	for _, entry := range a.cachedTracks(req) {
		if entry.ID == id {
			return entry, true
		}
	}
	return models.TrackEntry{}, false
}

func (a *App) findAlbum(req *http.Request, id string) (models.AlbumEntry, bool) {
	for _, entry := range a.cachedAlbums(req) {
		if entry.ID == id {
			return entry, true
		}
	}
	return models.AlbumEntry{}, false
}

func (a *App) handleDownload(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet && req.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := a.relay.TriggerDownload(req.Context()); err != nil {
		a.logger.Warn("download trigger failed", "error", err)
		writeError(w, http.StatusInternalServerError, "download trigger failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (a *App) handleRevalidate(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Tag string `json:"tag"`
	}
	if err := decodeBody(req, &body); err != nil || body.Tag == "" {
		writeError(w, http.StatusBadRequest, "missing tag")
		return
	}

	dropped := a.cache.Invalidate(body.Tag)
	a.logger.Info("cache revalidated", "tag", body.Tag, "entries", dropped)
	writeJSON(w, http.StatusOK, map[string]any{"revalidated": true, "tag": body.Tag})
}
