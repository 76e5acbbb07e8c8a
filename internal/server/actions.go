package server

import (
	"net/http"

	"github.com/niprobin/digging/internal/models"
	"github.com/niprobin/digging/internal/shared"
)

// trackItem builds the history record for a track entry.
func trackItem(entry models.TrackEntry) models.LikeableItem {
	return models.LikeableItem{
		ID:       entry.ID,
		Type:     models.LikeableTrack,
		Title:    entry.Title,
		Subtitle: entry.Artist,
		URL:      entry.SpotifyURL,
	}
}

// albumItem builds the history record for an album entry.
func albumItem(entry models.AlbumEntry) models.LikeableItem {
	artist, title := shared.SplitReleaseName(entry.Name)
	if title == "" {
		title = entry.Name
	}
	return models.LikeableItem{
		ID:         entry.ID,
		Type:       models.LikeableAlbum,
		Title:      title,
		Subtitle:   artist,
		URL:        entry.SpotifyURL,
		ArtworkURL: entry.CoverURL,
	}
}

func (a *App) handleTrackDismiss(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("id")
	entry, ok := a.findTrack(req, id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown track")
		return
	}

	if entry.SpotifyID != "" {
		if err := a.relay.MarkTrackChecked(req.Context(), entry.SpotifyID); err != nil {
			a.logger.Warn("track dismiss relay failed", "id", id, "error", err)
			writeFailure(w, err)
			return
		}
	}

	a.trackDismissed.Add(id)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (a *App) handleTrackPlaylist(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("id")
	entry, ok := a.findTrack(req, id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown track")
		return
	}

	var body struct {
		Playlist string `json:"playlist"`
	}
	if err := decodeBody(req, &body); err != nil {
		writeFailure(w, err)
		return
	}
	if !models.ValidPlaylist(body.Playlist) {
		writeError(w, http.StatusBadRequest, "unknown playlist")
		return
	}

	var err error
	if entry.SpotifyID != "" {
		err = a.relay.AddTrackToPlaylist(req.Context(), entry.SpotifyID, body.Playlist)
	} else {
		err = a.relay.AddNamedTrackToPlaylist(req.Context(), entry.Artist, entry.Title, body.Playlist)
	}
	if err != nil {
		a.logger.Warn("add to playlist relay failed", "id", id, "error", err)
		writeFailure(w, err)
		return
	}

	a.trackDismissed.Add(id)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "playlist": body.Playlist})
}

func (a *App) handleAlbumRate(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("id")
	entry, ok := a.findAlbum(req, id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown album")
		return
	}

	var body struct {
		Rating int `json:"rating"`
	}
	if err := decodeBody(req, &body); err != nil {
		writeFailure(w, err)
		return
	}
	if !models.ValidRating(body.Rating) {
		writeError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	if err := a.relay.RateAlbum(req.Context(), entry.Name, body.Rating); err != nil {
		a.logger.Warn("album rate relay failed", "id", id, "error", err)
		writeFailure(w, err)
		return
	}

	if err := a.ratings.Set(id, body.Rating); err != nil {
		writeFailure(w, err)
		return
	}
	if err := a.likes.Like(albumItem(entry), entry.Liked); err != nil {
		a.logger.Warn("album like record failed", "id", id, "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "rating": body.Rating})
}

func (a *App) handleAlbumDismiss(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("id")
	entry, ok := a.findAlbum(req, id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown album")
		return
	}

	if err := a.relay.DismissAlbum(req.Context(), entry.Name); err != nil {
		a.logger.Warn("album dismiss relay failed", "id", id, "error", err)
		writeFailure(w, err)
		return
	}

	a.albumDismissed.Add(id)
	a.bookmarks.Remove(id)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (a *App) handleAlbumBookmark(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("id")
	if _, ok := a.findAlbum(req, id); !ok {
		writeError(w, http.StatusNotFound, "unknown album")
		return
	}

	bookmarked := a.bookmarks.Toggle(id)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "bookmarked": bookmarked})
}

func (a *App) handleLike(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("id")

	var body struct {
		Liked       bool                `json:"liked"`
		ServerLiked bool                `json:"server_liked"`
		Type        models.LikeableType `json:"type"`
		Title       string              `json:"title"`
		Subtitle    string              `json:"subtitle"`
		URL         string              `json:"url"`
		ArtworkURL  string              `json:"artwork_url"`
	}
	if err := decodeBody(req, &body); err != nil {
		writeFailure(w, err)
		return
	}

	if body.Liked {
		item := models.LikeableItem{
			ID:         id,
			Type:       body.Type,
			Title:      body.Title,
			Subtitle:   body.Subtitle,
			URL:        body.URL,
			ArtworkURL: body.ArtworkURL,
		}
		if err := a.likes.Like(item, body.ServerLiked); err != nil {
			writeFailure(w, err)
			return
		}
	} else {
		if err := a.likes.Unlike(id, body.ServerLiked); err != nil {
			writeFailure(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "liked": body.Liked})
}
