package notifications

import "context"

type StoreAPI interface {
	CreateNotification(ctx context.Context, tenantID string, n Notification) error
	ListNotifications(ctx context.Context, tenantID, userID string, limit, offset int) ([]Notification, error)
	CountUnread(ctx context.Context, tenantID, userID string) (int, error)
	MarkRead(ctx context.Context, tenantID, userID, notificationID string) error
	UserEmail(ctx context.Context, tenantID, userID string) (string, error)
}
