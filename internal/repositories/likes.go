package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/niprobin/digging/internal/models"
	"github.com/niprobin/digging/internal/shared"
)

// LikeRepository persists the like history.
//
// Each entry id holds at most one row. Liking again after an unlike
// reactivates the original row and keeps its first liked_at, so the history
// never grows duplicates for the same entry.
type LikeRepository struct {
	db *sql.DB
}

// NewLikeRepository creates a LikeRepository with the given database connection.
func NewLikeRepository(db *sql.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// MarkLiked records a like for the item, inserting a new history row or
// reactivating the existing one in place.
func (r *LikeRepository) MarkLiked(item models.LikeableItem, likedAt time.Time) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO likes (id, item_type, title, subtitle, url, artwork_url, active, liked_at, unliked_at)
		VALUES (?, ?, ?, ?, ?, ?, 1, ?, NULL)
		ON CONFLICT(id) DO UPDATE SET active = 1, unliked_at = NULL
	`

	_, err := r.db.Exec(query,
		item.ID,
		string(item.Type),
		item.Title,
		item.Subtitle,
		item.URL,
		item.ArtworkURL,
		likedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record like: %w", err)
	}

	return nil
}

// MarkUnliked archives the history row for id. Ids with no history row are a
// no-op, matching how an unlike of a never-liked entry only flips an override.
func (r *LikeRepository) MarkUnliked(id string, unlikedAt time.Time) error {
	query := `
		UPDATE likes
		SET active = 0, unliked_at = ?
		WHERE id = ?
	`

	if _, err := r.db.Exec(query, unlikedAt, id); err != nil {
		return fmt.Errorf("failed to record unlike: %w", err)
	}

	return nil
}

// Get retrieves the history row for id.
func (r *LikeRepository) Get(id string) (*models.HistoryEntry, error) {
	query := `
		SELECT id, item_type, title, subtitle, url, artwork_url, active, liked_at, unliked_at
		FROM likes
		WHERE id = ?
	`

	entry, err := scanHistoryEntry(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("like history for %q: %w", id, shared.ErrEntryNotFound)
	}
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// History lists all history rows, most recently liked first. With activeOnly
// set, archived rows are skipped.
func (r *LikeRepository) History(activeOnly bool) ([]models.HistoryEntry, error) {
	query := `
		SELECT id, item_type, title, subtitle, url, artwork_url, active, liked_at, unliked_at
		FROM likes
	`
	if activeOnly {
		query += " WHERE active = 1"
	}
	query += " ORDER BY liked_at DESC"

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query like history: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		entry, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}

// Delete removes a history row outright.
func (r *LikeRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM likes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete like history: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("like history for %q: %w", id, shared.ErrEntryNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHistoryEntry(row rowScanner) (*models.HistoryEntry, error) {
	var (
		id         string
		itemType   string
		title      string
		subtitle   sql.NullString
		url        sql.NullString
		artworkURL sql.NullString
		active     bool
		likedAt    time.Time
		unlikedAt  sql.NullTime
	)

	err := row.Scan(&id, &itemType, &title, &subtitle, &url, &artworkURL, &active, &likedAt, &unlikedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan like history: %w", err)
	}

	entry := &models.HistoryEntry{
		LikeableItem: models.LikeableItem{
			ID:         id,
			Type:       models.LikeableType(itemType),
			Title:      title,
			Subtitle:   subtitle.String,
			URL:        url.String,
			ArtworkURL: artworkURL.String,
		},
		Active:  active,
		LikedAt: likedAt,
	}
	if unlikedAt.Valid {
		entry.UnlikedAt = unlikedAt.Time
	}

	return entry, nil
}
