package notifications

import (
	"context"
	"errors"
	"testing"
)

type failingMailer struct {
	attempts int
}

func (m *failingMailer) Send(ctx context.Context, from, to, subject, body string) error {
	m.attempts++
	return errors.New("smtp unavailable")
}

func TestCreatePersistsDespiteMailerFailure(t *testing.T) {
	store := &captureStore{email: "jane@example.com"}
	mailer := &failingMailer{}
	svc := New(store, mailer)

	err := svc.Create(context.Background(), "t1", Notification{
		UserID:  "user-1",
		Type:    TypePayrollSubmitted,
		Title:   "Payroll Approval Required",
		Message: "test",
	})
	if err != nil {
		t.Fatalf("create must not fail on mailer errors: %v", err)
	}
	if len(store.created) != 1 {
		t.Fatalf("expected persisted notification, got %d", len(store.created))
	}
	if mailer.attempts != 1 {
		t.Fatalf("expected one send attempt, got %d", mailer.attempts)
	}
}

func TestCreateSkipsEmailWithoutAddress(t *testing.T) {
	store := &captureStore{}
	mailer := &failingMailer{}
	svc := New(store, mailer)

	if err := svc.Create(context.Background(), "t1", Notification{UserID: "user-1", Type: TypePayrollCompleted}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if mailer.attempts != 0 {
		t.Fatalf("no email address on file; expected no send attempts, got %d", mailer.attempts)
	}
}
