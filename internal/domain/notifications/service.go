package notifications

import (
	"context"
	"log/slog"
)

type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type Service struct {
	store       StoreAPI
	Mailer      Mailer
	DefaultFrom string
}

func New(store StoreAPI, mailer Mailer) *Service {
	return &Service{store: store, Mailer: mailer, DefaultFrom: "no-reply@example.com"}
}

// Create persists the notification; a persisted record is a sent
// notification. The optional email mirror is best-effort.
func (s *Service) Create(ctx context.Context, tenantID string, n Notification) error {
	if err := s.store.CreateNotification(ctx, tenantID, n); err != nil {
		return err
	}

	if s.Mailer == nil {
		return nil
	}
	email, err := s.store.UserEmail(ctx, tenantID, n.UserID)
	if err != nil {
		slog.Warn("notification email lookup failed", "err", err)
		return nil
	}
	if email == "" {
		return nil
	}
	if err := s.Mailer.Send(ctx, s.DefaultFrom, email, n.Title, n.Message); err != nil {
		slog.Warn("notification email send failed", "err", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, tenantID, userID string, limit, offset int) ([]Notification, error) {
	return s.store.ListNotifications(ctx, tenantID, userID, limit, offset)
}

func (s *Service) CountUnread(ctx context.Context, tenantID, userID string) (int, error) {
	return s.store.CountUnread(ctx, tenantID, userID)
}

func (s *Service) MarkRead(ctx context.Context, tenantID, userID, notificationID string) error {
	return s.store.MarkRead(ctx, tenantID, userID, notificationID)
}
