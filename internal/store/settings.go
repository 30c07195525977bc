package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/theirongolddev/crmd/internal/model"
)

// GetSetting returns one setting by key, or ErrNotFound.
func (s *Store) GetSetting(ctx context.Context, key string) (*model.Setting, error) {
	var set model.Setting
	err := s.db.QueryRowContext(ctx,
		"SELECT key, value, updated_at FROM settings WHERE key = ?", key,
	).Scan(&set.Key, &set.Value, &set.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting setting: %w", err)
	}
	return &set, nil
}

// PutSetting upserts a setting.
func (s *Store) PutSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, nowRFC3339(),
	)
	if err != nil {
		return fmt.Errorf("saving setting: %w", err)
	}
	return nil
}
