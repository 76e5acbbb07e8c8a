package server

import (
	"net/http"
	"strings"
)

func (a *App) handlePreviewSearch(w http.ResponseWriter, req *http.Request) {
	query := strings.TrimSpace(req.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query")
		return
	}

	tracks, err := a.preview.Search(req.Context(), query)
	if err != nil {
		a.logger.Warn("preview search failed", "query", query, "error", err)
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"tracks":      tracks,
		"search_page": a.preview.SearchPageURL(query),
	})
}

func (a *App) handlePreviewTrack(w http.ResponseWriter, req *http.Request) {
	values := req.URL.Query()
	artist := strings.TrimSpace(values.Get("artist"))
	track := strings.TrimSpace(values.Get("track"))
	trackID := strings.TrimSpace(values.Get("track_id"))

	if artist == "" && track == "" && trackID == "" {
		writeError(w, http.StatusBadRequest, "missing track identity")
		return
	}

	stream, err := a.preview.ResolveStream(req.Context(), artist, track, trackID)
	if err != nil {
		a.logger.Warn("stream resolution failed", "artist", artist, "track", track, "error", err)
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stream)
}

func (a *App) handlePreviewAlbum(w http.ResponseWriter, req *http.Request) {
	release := strings.TrimSpace(req.URL.Query().Get("album"))
	if release == "" {
		writeError(w, http.StatusBadRequest, "missing album")
		return
	}

	preview, err := a.preview.AlbumTracks(req.Context(), release)
	if err != nil {
		a.logger.Warn("album preview failed", "album", release, "error", err)
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, preview)
}

func (a *App) handleLibrarySearch(w http.ResponseWriter, req *http.Request) {
	var body struct {
		SearchQuery string `json:"search_query"`
	}
	if err := decodeBody(req, &body); err != nil {
		writeFailure(w, err)
		return
	}

	results, err := a.relay.LibrarySearch(req.Context(), body.SearchQuery)
	if err != nil {
		a.logger.Warn("library search failed", "query", body.SearchQuery, "error", err)
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (a *App) handleAddAlbum(w http.ResponseWriter, req *http.Request) {
	var body struct {
		AlbumName string `json:"album-name"`
	}
	if err := decodeBody(req, &body); err != nil {
		writeFailure(w, err)
		return
	}

	if err := a.relay.AddAlbum(req.Context(), body.AlbumName); err != nil {
		a.logger.Warn("add album relay failed", "error", err)
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (a *App) handleAddSong(w http.ResponseWriter, req *http.Request) {
	var body struct {
		SongName string `json:"song-name"`
		Playlist string `json:"playlist"`
	}
	if err := decodeBody(req, &body); err != nil {
		writeFailure(w, err)
		return
	}

	if err := a.relay.AddSong(req.Context(), body.SongName, body.Playlist); err != nil {
		a.logger.Warn("add song relay failed", "error", err)
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
