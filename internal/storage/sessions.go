package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/finpilot/internal/common"
	"github.com/Veraticus/finpilot/internal/model"
)

// SaveSession stores session as the signed-in one, replacing any other.
func (s *SQLiteStorage) SaveSession(ctx context.Context, session *model.Session) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSession(session); err != nil {
		return err
	}

	createdAt := session.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, email, name, created_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			email = excluded.email,
			name = excluded.name,
			created_at = excluded.created_at
	`, session.UserID, session.Email, session.Name, createdAt)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// LoadSession returns the signed-in session, or common.ErrNotFound.
func (s *SQLiteStorage) LoadSession(ctx context.Context) (*model.Session, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.loadSessionTx(ctx, s.db)
}

func (s *SQLiteStorage) loadSessionTx(ctx context.Context, q queryable) (*model.Session, error) {
	var session model.Session
	err := q.QueryRowContext(ctx, `
		SELECT user_id, email, name, created_at
		FROM sessions
		WHERE id = 1
	`).Scan(&session.UserID, &session.Email, &session.Name, &session.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session: %w", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &session, nil
}

// DeleteSession signs out. Deleting when nobody is signed in is not an error.
func (s *SQLiteStorage) DeleteSession(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
