package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/finpilot/internal/service"
)

// DefaultNotificationLimit caps RecentNotifications when no limit is given.
const DefaultNotificationLimit = 20

// AppendNotification records a notification.
func (s *SQLiteStorage) AppendNotification(ctx context.Context, n service.Notification) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateNotification(n); err != nil {
		return err
	}

	createdAt := n.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (level, message, user_id, created_at)
		VALUES (?, ?, ?, ?)
	`, string(n.Level), n.Message, n.UserID, createdAt)
	if err != nil {
		return fmt.Errorf("failed to append notification: %w", err)
	}
	return nil
}

// RecentNotifications returns up to limit notifications, newest first.
func (s *SQLiteStorage) RecentNotifications(ctx context.Context, limit int) ([]service.Notification, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultNotificationLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, level, message, user_id, created_at
		FROM notifications
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []service.Notification
	for rows.Next() {
		var n service.Notification
		var level string
		if err := rows.Scan(&n.ID, &level, &n.Message, &n.UserID, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Level = service.NotificationLevel(level)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}
	return out, nil
}

// PruneNotifications keeps only the newest keep notifications.
func (s *SQLiteStorage) PruneNotifications(ctx context.Context, keep int) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if keep < 0 {
		keep = 0
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM notifications
		WHERE id NOT IN (
			SELECT id FROM notifications
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		)
	`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune notifications: %w", err)
	}
	return res.RowsAffected()
}
