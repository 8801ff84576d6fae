package storage

import (
	"fmt"
	"time"

	"webbuilder/internal/domain"
)

// APICallStore implements domain.APICallStore using SQLite.
type APICallStore struct {
	db *DB
}

func NewAPICallStore(db *DB) *APICallStore {
	return &APICallStore{db: db}
}

func (s *APICallStore) CreateAPICall(c *domain.APICall) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	c.CreatedAt = c.CreatedAt.UTC()
	_, err := s.db.Conn().Exec(
		`INSERT INTO api_calls (id, element_id, page_id, endpoint, status_code, duration_ms, is_error, error, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.ElementID, c.PageID, c.Endpoint, c.StatusCode, c.DurationMs, c.IsError, c.Error, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create api call: %w", err)
	}
	return nil
}

// ListAPICalls returns the newest calls first.
func (s *APICallStore) ListAPICalls(limit int) ([]domain.APICall, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Conn().Query(
		`SELECT id, element_id, page_id, endpoint, status_code, duration_ms, is_error, error, created_at FROM api_calls ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list api calls: %w", err)
	}
	defer rows.Close()

	var calls []domain.APICall
	for rows.Next() {
		var c domain.APICall
		if err := rows.Scan(&c.ID, &c.ElementID, &c.PageID, &c.Endpoint, &c.StatusCode, &c.DurationMs, &c.IsError, &c.Error, &c.CreatedAt); err != nil {
			return nil, err
		}
		calls = append(calls, c)
	}
	return calls, rows.Err()
}

// DeleteAPICallsBefore prunes the log and reports how many rows went.
func (s *APICallStore) DeleteAPICallsBefore(t time.Time) (int64, error) {
	res, err := s.db.Conn().Exec(`DELETE FROM api_calls WHERE created_at < ?`, t.UTC())
	if err != nil {
		return 0, fmt.Errorf("prune api calls: %w", err)
	}
	return res.RowsAffected()
}
