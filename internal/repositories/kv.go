package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/niprobin/digging/internal/shared"
)

// KVRepository stores one JSON snapshot per namespace.
//
// The client-state stores (filters, dismissed sets, bookmarks, ratings, like
// overrides) serialize themselves into a namespace and hydrate from it on
// startup.
type KVRepository struct {
	db *sql.DB
}

// NewKVRepository creates a KVRepository with the given database connection.
func NewKVRepository(db *sql.DB) *KVRepository {
	return &KVRepository{db: db}
}

// Get retrieves the snapshot stored under namespace.
func (r *KVRepository) Get(namespace string) (string, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM kv WHERE namespace = ?", namespace).Scan(&value)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("namespace %q: %w", namespace, shared.ErrEntryNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read namespace %q: %w", namespace, err)
	}

	return value, nil
}

// Set replaces the snapshot stored under namespace.
func (r *KVRepository) Set(namespace, value string) error {
	query := `
		INSERT INTO kv (namespace, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(namespace) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := r.db.Exec(query, namespace, value, time.Now()); err != nil {
		return fmt.Errorf("failed to write namespace %q: %w", namespace, err)
	}

	return nil
}

// Delete removes the snapshot stored under namespace, if any.
func (r *KVRepository) Delete(namespace string) error {
	if _, err := r.db.Exec("DELETE FROM kv WHERE namespace = ?", namespace); err != nil {
		return fmt.Errorf("failed to delete namespace %q: %w", namespace, err)
	}

	return nil
}

// Namespaces lists the stored namespaces in lexical order.
func (r *KVRepository) Namespaces() ([]string, error) {
	rows, err := r.db.Query("SELECT namespace FROM kv ORDER BY namespace ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}
	defer rows.Close()

	var namespaces []string
	for rows.Next() {
		var namespace string
		if err := rows.Scan(&namespace); err != nil {
			return nil, fmt.Errorf("failed to scan namespace: %w", err)
		}
		namespaces = append(namespaces, namespace)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return namespaces, nil
}
