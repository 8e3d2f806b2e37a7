package payroll

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

// MaxReasonLength caps free-text rejection reasons.
const MaxReasonLength = 500

// ApproverDirectory resolves who is authorized to act at a level. Resolution
// is best-effort: absence is a normal outcome, never a transition failure.
type ApproverDirectory interface {
	FindNextApprover(ctx context.Context, tenantID string, level Level, employeeID string) (Approver, bool, error)
}

// TransitionNotifier receives committed transitions for notification fan-out.
// Implementations must not fail the caller; delivery problems are their own
// concern.
type TransitionNotifier interface {
	PayrollSubmitted(ctx context.Context, tenantID string, p Payroll, submitter Actor, next *Approver, resubmitted bool)
	PayrollTransition(ctx context.Context, tenantID string, tr Transition, next *Approver)
}

type Service struct {
	store     StoreAPI
	directory ApproverDirectory
	notifier  TransitionNotifier
}

func NewService(store StoreAPI, directory ApproverDirectory, notifier TransitionNotifier) *Service {
	return &Service{store: store, directory: directory, notifier: notifier}
}

type SubmitInput struct {
	EmployeeID string
	Month      int
	Year       int
	Lines      []PayLine
}

// Submit creates the payroll for (employee, month, year) and enters the
// approval chain at DEPARTMENT_HEAD.
func (s *Service) Submit(ctx context.Context, tenantID string, submitter Actor, input SubmitInput) (Payroll, error) {
	if input.Month < 1 || input.Month > 12 || input.Year < 2000 || input.Year > 2200 {
		return Payroll{}, ErrInvalidPeriod
	}
	emp, err := s.store.EmployeePayInfo(ctx, tenantID, input.EmployeeID)
	if err != nil {
		return Payroll{}, err
	}

	gross, deductions, net := ComputeTotals(emp.Salary, input.Lines)
	now := time.Now().UTC()
	p := Payroll{
		EmployeeID:   emp.ID,
		DepartmentID: emp.DepartmentID,
		Month:        input.Month,
		Year:         input.Year,
		Gross:        gross,
		Deductions:   deductions,
		Net:          net,
		Currency:     emp.Currency,
		Status:       StatusPending,
		ApprovalFlow: newApprovalFlow(submitter.UserID, now, nil),
	}

	id, err := s.store.Create(ctx, tenantID, p)
	if err != nil {
		return Payroll{}, err
	}
	created, err := s.store.FindByID(ctx, tenantID, id)
	if err != nil {
		return Payroll{}, fmt.Errorf("submit payroll %s: reload: %w", id, err)
	}

	next := s.resolveApprover(ctx, tenantID, LevelDepartmentHead, created.EmployeeID, created.ID)
	if s.notifier != nil {
		s.notifier.PayrollSubmitted(ctx, tenantID, created, submitter, next, false)
	}
	return created, nil
}

// Resubmit re-enters a REJECTED payroll at DEPARTMENT_HEAD with a fresh flow.
// The prior audit trail is carried over; per-level decisions are cleared.
func (s *Service) Resubmit(ctx context.Context, tenantID, payrollID string, submitter Actor) (Payroll, error) {
	current, err := s.store.FindByID(ctx, tenantID, payrollID)
	if err != nil {
		return Payroll{}, err
	}
	if current.Status != StatusRejected {
		return Payroll{}, ErrNotRejected
	}

	flow := newApprovalFlow(submitter.UserID, time.Now().UTC(), current.ApprovalFlow.History)
	updated, err := s.store.ResetApprovalFlow(ctx, tenantID, payrollID, StatusPending, flow)
	if err != nil {
		return Payroll{}, err
	}

	next := s.resolveApprover(ctx, tenantID, LevelDepartmentHead, updated.EmployeeID, updated.ID)
	if s.notifier != nil {
		s.notifier.PayrollSubmitted(ctx, tenantID, updated, submitter, next, true)
	}
	return updated, nil
}

// Advance applies one approve/reject decision at the given level. The status
// change, per-level decision record and history append commit in a single
// conditional update; a concurrent decision at the same level loses with
// ErrLevelConflict. Notification fan-out and next-approver resolution happen
// after commit and cannot fail the transition.
func (s *Service) Advance(ctx context.Context, tenantID, payrollID string, level Level, actor Actor, action Action, reason string) (Payroll, error) {
	if !level.IsApprovalLevel() {
		return Payroll{}, ErrInvalidLevel
	}
	if action != ActionApprove && action != ActionReject {
		return Payroll{}, fmt.Errorf("advance payroll %s: unknown action %q", payrollID, action)
	}
	reason = strings.TrimSpace(reason)
	if action == ActionReject && reason == "" {
		return Payroll{}, ErrMissingReason
	}
	if len(reason) > MaxReasonLength {
		return Payroll{}, ErrReasonTooLong
	}

	current, err := s.store.FindByID(ctx, tenantID, payrollID)
	if err != nil {
		return Payroll{}, err
	}
	if current.Terminal() || current.ApprovalFlow.CurrentLevel == nil || !current.ApprovalFlow.CurrentLevel.IsApprovalLevel() {
		return Payroll{}, ErrInvalidTransition
	}
	if *current.ApprovalFlow.CurrentLevel != level {
		return Payroll{}, ErrLevelConflict
	}

	now := time.Now().UTC()
	flow := current.ApprovalFlow
	decision := Decision{ApprovedBy: actor.UserID, ApprovedAt: now, Reason: reason}

	var status string
	tr := Transition{FromLevel: level, Action: action, Actor: actor, Reason: reason}
	if action == ActionApprove {
		decision.Status = DecisionApproved
		next, _ := level.Successor()
		tr.ToLevel = next
		if next == LevelCompleted {
			status = StatusCompleted
			completed := LevelCompleted
			flow.CurrentLevel = &completed
			flow.NextApprovalLevel = nil
			flow.StatusMessage = "Payroll approved and ready for processing"
			tr.Completed = true
		} else {
			status = StatusPending
			after, _ := next.Successor()
			flow.CurrentLevel = &next
			flow.NextApprovalLevel = &after
			flow.StatusMessage = fmt.Sprintf("Pending %s Approval", next)
		}
	} else {
		decision.Status = DecisionRejected
		status = StatusRejected
		flow.CurrentLevel = nil
		flow.NextApprovalLevel = nil
		flow.StatusMessage = fmt.Sprintf("Rejected by %s", level.Title())
		tr.Rejected = true
	}
	flow.setDecision(level, decision)
	flow.History = append(flow.History, HistoryEntry{
		Level:      level,
		Status:     decision.Status,
		ApprovedBy: actor.UserID,
		ApprovedAt: now,
		Reason:     reason,
	})

	updated, err := s.store.UpdateApprovalFlow(ctx, tenantID, payrollID, level, status, flow)
	if err != nil {
		return Payroll{}, err
	}
	tr.Payroll = updated

	var next *Approver
	if tr.Action == ActionApprove && !tr.Completed {
		next = s.resolveApprover(ctx, tenantID, tr.ToLevel, updated.EmployeeID, updated.ID)
	}
	if s.notifier != nil {
		s.notifier.PayrollTransition(ctx, tenantID, tr, next)
	}
	return updated, nil
}

func (s *Service) FindByID(ctx context.Context, tenantID, payrollID string) (Payroll, error) {
	return s.store.FindByID(ctx, tenantID, payrollID)
}

func (s *Service) List(ctx context.Context, tenantID string, filter ListFilter) ([]Payroll, int, error) {
	return s.store.List(ctx, tenantID, filter)
}

// resolveApprover looks up who should act at the level. Absence or lookup
// failure is logged and reported as nil; the committed transition stands.
func (s *Service) resolveApprover(ctx context.Context, tenantID string, level Level, employeeID, payrollID string) *Approver {
	if s.directory == nil {
		return nil
	}
	approver, ok, err := s.directory.FindNextApprover(ctx, tenantID, level, employeeID)
	if err != nil {
		log.Printf("next approver lookup failed for payroll %s at %s: %v", payrollID, level, err)
		return nil
	}
	if !ok {
		log.Printf("no approver resolvable for payroll %s at %s", payrollID, level)
		return nil
	}
	return &approver
}

func newApprovalFlow(submittedBy string, now time.Time, history []HistoryEntry) ApprovalFlow {
	start := LevelDepartmentHead
	next := LevelHRManager
	if history == nil {
		history = []HistoryEntry{}
	}
	return ApprovalFlow{
		CurrentLevel:      &start,
		NextApprovalLevel: &next,
		StatusMessage:     fmt.Sprintf("Pending %s Approval", start),
		SubmittedBy:       submittedBy,
		SubmittedAt:       now,
		History:           history,
	}
}
