package notifications

import (
	"context"
	"encoding/json"
	"fmt"
)

func (s *Store) CreateNotification(ctx context.Context, tenantID string, n Notification) error {
	dataJSON, err := json.Marshal(n.Data)
	if err != nil {
		return fmt.Errorf("create notification: marshal data: %w", err)
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO notifications (tenant_id, user_id, type, title, message, data)
    VALUES ($1,$2,$3,$4,$5,$6)
  `, tenantID, n.UserID, n.Type, n.Title, n.Message, dataJSON)
	return err
}

func (s *Store) ListNotifications(ctx context.Context, tenantID, userID string, limit, offset int) ([]Notification, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, user_id, type, title, message, data, read, created_at
    FROM notifications
    WHERE tenant_id = $1 AND user_id = $2
    ORDER BY created_at DESC
    LIMIT $3 OFFSET $4
  `, tenantID, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		var dataJSON []byte
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &dataJSON, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		if len(dataJSON) > 0 {
			if err := json.Unmarshal(dataJSON, &n.Data); err != nil {
				return nil, fmt.Errorf("notification %s: unmarshal data: %w", n.ID, err)
			}
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) CountUnread(ctx context.Context, tenantID, userID string) (int, error) {
	var total int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM notifications
    WHERE tenant_id = $1 AND user_id = $2 AND read = false
  `, tenantID, userID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) MarkRead(ctx context.Context, tenantID, userID, notificationID string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE notifications SET read = true
    WHERE tenant_id = $1 AND user_id = $2 AND id = $3
  `, tenantID, userID, notificationID)
	return err
}

func (s *Store) UserEmail(ctx context.Context, tenantID, userID string) (string, error) {
	var email string
	if err := s.DB.QueryRow(ctx, "SELECT email FROM users WHERE tenant_id = $1 AND id = $2", tenantID, userID).Scan(&email); err != nil {
		return "", err
	}
	return email, nil
}
