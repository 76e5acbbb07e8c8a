package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/niprobin/digging/internal/filters"
	"github.com/niprobin/digging/internal/models"
	"github.com/niprobin/digging/internal/sheets"
	"github.com/niprobin/digging/internal/shared"
)

// parseBoolParam reads a boolean query parameter, falling back when absent.
func parseBoolParam(values url.Values, key string, fallback bool) bool {
	raw := values.Get(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

// parseIntParam reads a positive integer query parameter, falling back when
// absent or malformed.
func parseIntParam(values url.Values, key string, fallback int) int {
	raw := values.Get(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 1 {
		return fallback
	}
	return parsed
}

// clampPageSize keeps requested page sizes inside the layout range.
func clampPageSize(size int) int {
	if size < minPageSize {
		return minPageSize
	}
	if size > maxPageSize {
		return maxPageSize
	}
	return size
}

// paginate slices one page out of the filtered list and reports the layout.
func paginate[T any](items []T, values url.Values) (page []T, meta map[string]any) {
	size := clampPageSize(parseIntParam(values, "page_size", defaultPageSize))

	p := filters.NewPagination(len(items), size)
	p.GoTo(parseIntParam(values, "page", 1))

	return filters.Page(items, p), map[string]any{
		"total":       len(items),
		"page":        p.CurrentPage,
		"page_size":   p.PageSize,
		"total_pages": p.TotalPages(),
	}
}

// handleFilters reads or updates the persisted filter selection shared by the
// inbox views. Updates are partial: absent fields keep their saved value.
func (a *App) handleFilters(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		a.writeFilters(w, a.filterStore.State())
	case http.MethodPost:
		var body struct {
			filters.Patch
			BookmarkedOnly *bool `json:"bookmarkedOnly"`
		}
		if err := decodeBody(req, &body); err != nil {
			writeFailure(w, err)
			return
		}
		if body.TimeWindow != nil {
			if _, err := filters.ParseTimeWindow(string(*body.TimeWindow)); err != nil {
				writeFailure(w, err)
				return
			}
		}

		state := a.filterStore.Apply(body.Patch)
		if body.BookmarkedOnly != nil {
			a.bookmarkFilter.Set(*body.BookmarkedOnly)
		}
		a.writeFilters(w, state)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (a *App) writeFilters(w http.ResponseWriter, state filters.State) {
	writeJSON(w, http.StatusOK, map[string]any{
		"filters":        state,
		"bookmarkedOnly": a.bookmarkFilter.Get(),
	})
}

func (a *App) handleTracks(w http.ResponseWriter, req *http.Request) {
	values := req.URL.Query()

	state := a.filterStore.State()
	if raw := values.Get("window"); raw != "" {
		window, err := filters.ParseTimeWindow(raw)
		if err != nil {
			writeFailure(w, err)
			return
		}
		state.TimeWindow = window
	}
	if values.Has("curator") {
		state.Curator = values.Get("curator")
	}
	state.HideChecked = parseBoolParam(values, "hide_checked", state.HideChecked)
	state.ShowLikedOnly = parseBoolParam(values, "liked", state.ShowLikedOnly)

	dismissed := a.trackDismissed.Snapshot()
	matches := filters.FilterTracks(a.cachedTracks(req), filters.TrackQuery{
		State:          state,
		Dismissed:      dismissed,
		LocallyChecked: dismissed,
		IsLiked:        a.likes.LikedFunc(),
		Now:            a.now(),
	})

	if q := strings.ToLower(strings.TrimSpace(values.Get("q"))); q != "" {
		narrowed := matches[:0:0]
		for _, entry := range matches {
			if strings.Contains(strings.ToLower(entry.Title), q) ||
				strings.Contains(strings.ToLower(entry.Artist), q) {
				narrowed = append(narrowed, entry)
			}
		}
		matches = narrowed
	}

	for i := range matches {
		matches[i].Liked = a.likes.IsLiked(matches[i].ID, matches[i].Liked)
	}

	page, meta := paginate(matches, values)
	meta["tracks"] = page
	meta["window"] = state.TimeWindow
	meta["curator"] = state.Curator
	writeJSON(w, http.StatusOK, meta)
}

// albumRow decorates an album entry with its derived artist/title split and
// the local bookmark and rating state.
type albumRow struct {
	models.AlbumEntry
	Artist     string `json:"artist"`
	Title      string `json:"title"`
	Bookmarked bool   `json:"bookmarked"`
	Rating     int    `json:"rating,omitempty"`
}

func (a *App) handleAlbums(w http.ResponseWriter, req *http.Request) {
	values := req.URL.Query()

	state := a.filterStore.State()
	window := state.TimeWindow
	if raw := values.Get("window"); raw != "" {
		parsed, err := filters.ParseTimeWindow(raw)
		if err != nil {
			writeFailure(w, err)
			return
		}
		window = parsed
	}

	// The bookmarked-only toggle survives restarts; a query override becomes
	// the new saved value.
	bookmarkedOnly := a.bookmarkFilter.Get()
	if values.Has("bookmarked") {
		if requested := parseBoolParam(values, "bookmarked", bookmarkedOnly); requested != bookmarkedOnly {
			a.bookmarkFilter.Set(requested)
			bookmarkedOnly = requested
		}
	}

	matches := filters.FilterAlbums(a.cachedAlbums(req), filters.AlbumQuery{
		TimeWindow:         window,
		ShowLikedOnly:      parseBoolParam(values, "liked", state.ShowLikedOnly),
		ShowBookmarkedOnly: bookmarkedOnly,
		Search:             values.Get("q"),
		Dismissed:          a.albumDismissed.Snapshot(),
		Bookmarked:         a.bookmarks.Snapshot(),
		IsLiked:            a.likes.LikedFunc(),
		Now:                a.now(),
	})

	page, meta := paginate(matches, values)

	rows := make([]albumRow, 0, len(page))
	for _, entry := range page {
		artist, title := shared.SplitReleaseName(entry.Name)
		entry.Liked = a.likes.IsLiked(entry.ID, entry.Liked)
		rating, _ := a.ratings.Get(entry.ID)
		rows = append(rows, albumRow{
			AlbumEntry: entry,
			Artist:     artist,
			Title:      title,
			Bookmarked: a.bookmarks.Has(entry.ID),
			Rating:     rating,
		})
	}

	meta["albums"] = rows
	meta["window"] = window
	writeJSON(w, http.StatusOK, meta)
}

func (a *App) handleHistory(w http.ResponseWriter, req *http.Request) {
	entries, err := a.likes.History(false)
	if err != nil {
		a.logger.Warn("history read failed", "error", err)
		writeError(w, http.StatusInternalServerError, "history unavailable")
		return
	}

	active := make([]models.HistoryEntry, 0, len(entries))
	archived := make([]models.HistoryEntry, 0)
	for _, entry := range entries {
		if entry.Active {
			active = append(active, entry)
		} else {
			archived = append(archived, entry)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"active":   active,
		"archived": archived,
	})
}

func (a *App) handleCurators(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"curators": sheets.Curators(a.cachedTracks(req)),
	})
}
