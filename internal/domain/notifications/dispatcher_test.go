package notifications

import (
	"context"
	"strings"
	"testing"

	"hrpay/internal/domain/payroll"
)

type captureStore struct {
	created []Notification
	email   string
}

func (c *captureStore) CreateNotification(ctx context.Context, tenantID string, n Notification) error {
	c.created = append(c.created, n)
	return nil
}

func (c *captureStore) ListNotifications(ctx context.Context, tenantID, userID string, limit, offset int) ([]Notification, error) {
	return nil, nil
}

func (c *captureStore) CountUnread(ctx context.Context, tenantID, userID string) (int, error) {
	return 0, nil
}

func (c *captureStore) MarkRead(ctx context.Context, tenantID, userID, notificationID string) error {
	return nil
}

func (c *captureStore) UserEmail(ctx context.Context, tenantID, userID string) (string, error) {
	return c.email, nil
}

func (c *captureStore) byType(ntype string) []Notification {
	var out []Notification
	for _, n := range c.created {
		if n.Type == ntype {
			out = append(out, n)
		}
	}
	return out
}

func testPayroll() payroll.Payroll {
	return payroll.Payroll{
		ID:             "pay-1",
		EmployeeID:     "emp-1",
		EmployeeName:   "Jane Doe",
		EmployeeUserID: "user-emp",
		Month:          3,
		Year:           2026,
		Net:            4500,
		Currency:       "USD",
		Status:         payroll.StatusPending,
	}
}

func newTestDispatcher() (*Dispatcher, *captureStore) {
	store := &captureStore{}
	return NewDispatcher(New(store, nil)), store
}

func TestPayrollSubmittedNotifiesNextApprover(t *testing.T) {
	d, store := newTestDispatcher()

	d.PayrollSubmitted(context.Background(), "t1", testPayroll(), payroll.Actor{UserID: "user-hr"}, &payroll.Approver{UserID: "user-dh"}, false)

	if len(store.created) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(store.created))
	}
	n := store.created[0]
	if n.UserID != "user-dh" || n.Type != TypePayrollSubmitted {
		t.Fatalf("unexpected notification: %+v", n)
	}
	if !strings.Contains(n.Message, "Jane Doe") || !strings.Contains(n.Message, "3/2026") {
		t.Fatalf("unexpected message: %s", n.Message)
	}
}

func TestPayrollSubmittedWithoutApproverIsSilent(t *testing.T) {
	d, store := newTestDispatcher()
	d.PayrollSubmitted(context.Background(), "t1", testPayroll(), payroll.Actor{UserID: "user-hr"}, nil, false)
	if len(store.created) != 0 {
		t.Fatalf("expected no notifications, got %d", len(store.created))
	}
}

func TestPayrollResubmittedUsesResubmitKind(t *testing.T) {
	d, store := newTestDispatcher()
	d.PayrollSubmitted(context.Background(), "t1", testPayroll(), payroll.Actor{UserID: "user-hr"}, &payroll.Approver{UserID: "user-dh"}, true)
	if len(store.created) != 1 || store.created[0].Type != TypePayrollResubmitted {
		t.Fatalf("unexpected notifications: %+v", store.created)
	}
}

func TestTransitionApproveFanOut(t *testing.T) {
	d, store := newTestDispatcher()

	tr := payroll.Transition{
		Payroll:   testPayroll(),
		FromLevel: payroll.LevelDepartmentHead,
		ToLevel:   payroll.LevelHRManager,
		Action:    payroll.ActionApprove,
		Actor:     payroll.Actor{UserID: "user-dh", Name: "Head"},
	}
	d.PayrollTransition(context.Background(), "t1", tr, &payroll.Approver{UserID: "user-hr"})

	if len(store.created) != 3 {
		t.Fatalf("expected 3 notifications, got %d: %+v", len(store.created), store.created)
	}
	if got := store.byType(TypePayrollApprovedDeptHead); len(got) != 1 || got[0].UserID != "user-emp" {
		t.Fatalf("employee progress notification wrong: %+v", got)
	}
	if got := store.byType(TypePayrollDecisionRecorded); len(got) != 1 || got[0].UserID != "user-dh" {
		t.Fatalf("actor confirmation wrong: %+v", got)
	}
	if got := store.byType(TypePayrollApprovalRequest); len(got) != 1 || got[0].UserID != "user-hr" {
		t.Fatalf("next approver request wrong: %+v", got)
	}
}

func TestTransitionRejectCarriesReasonVerbatim(t *testing.T) {
	d, store := newTestDispatcher()

	reason := "Net amount does not match the contract"
	tr := payroll.Transition{
		Payroll:   testPayroll(),
		FromLevel: payroll.LevelFinanceDirector,
		Action:    payroll.ActionReject,
		Actor:     payroll.Actor{UserID: "user-fd"},
		Reason:    reason,
		Rejected:  true,
	}
	d.PayrollTransition(context.Background(), "t1", tr, nil)

	rejected := store.byType(TypePayrollRejected)
	if len(rejected) != 1 || rejected[0].UserID != "user-emp" {
		t.Fatalf("expected one employee rejection notification: %+v", rejected)
	}
	if !strings.Contains(rejected[0].Message, reason) {
		t.Fatalf("reason must appear verbatim, got %s", rejected[0].Message)
	}
	if !strings.Contains(rejected[0].Message, "Finance Director") {
		t.Fatalf("rejection stage missing: %s", rejected[0].Message)
	}
	if got := store.byType(TypePayrollApprovalRequest); len(got) != 0 {
		t.Fatalf("rejection must not request further approvals: %+v", got)
	}
}

func TestTransitionDeduplicatesRecipients(t *testing.T) {
	d, store := newTestDispatcher()

	// The department head approves their own payroll: employee and actor are
	// the same user and must receive a single notification.
	p := testPayroll()
	p.EmployeeUserID = "user-dh"
	tr := payroll.Transition{
		Payroll:   p,
		FromLevel: payroll.LevelDepartmentHead,
		ToLevel:   payroll.LevelHRManager,
		Action:    payroll.ActionApprove,
		Actor:     payroll.Actor{UserID: "user-dh"},
	}
	d.PayrollTransition(context.Background(), "t1", tr, &payroll.Approver{UserID: "user-hr"})

	var forActor int
	for _, n := range store.created {
		if n.UserID == "user-dh" {
			forActor++
		}
	}
	if forActor != 1 {
		t.Fatalf("expected 1 notification for the shared user, got %d", forActor)
	}
}

func TestTransitionCompletionSendsDistinctMessage(t *testing.T) {
	d, store := newTestDispatcher()

	p := testPayroll()
	p.Status = payroll.StatusCompleted
	tr := payroll.Transition{
		Payroll:   p,
		FromLevel: payroll.LevelSuperAdmin,
		ToLevel:   payroll.LevelCompleted,
		Action:    payroll.ActionApprove,
		Actor:     payroll.Actor{UserID: "user-sa"},
		Completed: true,
	}
	d.PayrollTransition(context.Background(), "t1", tr, nil)

	// The completion message is the one deliberate exception to recipient
	// dedupe: the employee hears about the final approval and the completion.
	if got := store.byType(TypePayrollApprovedAdmin); len(got) != 1 || got[0].UserID != "user-emp" {
		t.Fatalf("final approval notification wrong: %+v", got)
	}
	completed := store.byType(TypePayrollCompleted)
	if len(completed) != 1 || completed[0].UserID != "user-emp" {
		t.Fatalf("completion notification wrong: %+v", completed)
	}
	if got := store.byType(TypePayrollApprovalRequest); len(got) != 0 {
		t.Fatalf("completed payroll must not request approvals: %+v", got)
	}
}
