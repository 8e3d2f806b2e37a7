package notifications

import (
	"context"
	"fmt"
	"log"

	"hrpay/internal/domain/payroll"
)

var approvedTypes = map[payroll.Level]string{
	payroll.LevelDepartmentHead:  TypePayrollApprovedDeptHead,
	payroll.LevelHRManager:       TypePayrollApprovedHR,
	payroll.LevelFinanceDirector: TypePayrollApprovedFinance,
	payroll.LevelSuperAdmin:      TypePayrollApprovedAdmin,
}

// Dispatcher fans a committed payroll transition out to every interested
// party. Each recipient is best-effort: one failed write is logged and must
// not block the others, and nothing here can undo the transition.
type Dispatcher struct {
	svc *Service
}

func NewDispatcher(svc *Service) *Dispatcher {
	return &Dispatcher{svc: svc}
}

func (d *Dispatcher) PayrollSubmitted(ctx context.Context, tenantID string, p payroll.Payroll, submitter payroll.Actor, next *payroll.Approver, resubmitted bool) {
	if next == nil {
		return
	}
	ntype := TypePayrollSubmitted
	verb := "submitted"
	if resubmitted {
		ntype = TypePayrollResubmitted
		verb = "resubmitted"
	}
	d.create(ctx, tenantID, Notification{
		UserID: next.UserID,
		Type:   ntype,
		Title:  "Payroll Approval Required",
		Message: fmt.Sprintf("Payroll of %s for %d/%d (net %.2f %s) was %s and requires your approval.",
			p.EmployeeName, p.Month, p.Year, p.Net, p.Currency, verb),
		Data: payrollSnapshot(p, "", ""),
	})
}

func (d *Dispatcher) PayrollTransition(ctx context.Context, tenantID string, tr payroll.Transition, next *payroll.Approver) {
	p := tr.Payroll
	data := payrollSnapshot(p, string(tr.FromLevel), tr.Reason)

	// One logical transition never notifies the same recipient twice, except
	// for the explicitly distinct completion message.
	seen := map[string]bool{}
	send := func(userID string, n Notification, force bool) {
		if userID == "" || (seen[userID] && !force) {
			return
		}
		seen[userID] = true
		n.UserID = userID
		n.Data = data
		d.create(ctx, tenantID, n)
	}

	period := fmt.Sprintf("%d/%d", p.Month, p.Year)
	if tr.Rejected {
		send(p.EmployeeUserID, Notification{
			Type:  TypePayrollRejected,
			Title: "Payroll Rejected",
			Message: fmt.Sprintf("Your payroll for %s was rejected at the %s stage: %s",
				period, tr.FromLevel.Title(), tr.Reason),
		}, false)
	} else if tr.Completed {
		send(p.EmployeeUserID, Notification{
			Type:    approvedTypes[tr.FromLevel],
			Title:   fmt.Sprintf("Payroll Approved by %s", tr.FromLevel.Title()),
			Message: fmt.Sprintf("Your payroll for %s has passed %s approval.", period, tr.FromLevel.Title()),
		}, false)
	} else {
		send(p.EmployeeUserID, Notification{
			Type:  approvedTypes[tr.FromLevel],
			Title: fmt.Sprintf("Payroll Approved by %s", tr.FromLevel.Title()),
			Message: fmt.Sprintf("Your payroll for %s was approved by the %s and is now pending %s approval.",
				period, tr.FromLevel.Title(), tr.ToLevel.Title()),
		}, false)
	}

	verb := "approved"
	if tr.Rejected {
		verb = "rejected"
	}
	send(tr.Actor.UserID, Notification{
		Type:  TypePayrollDecisionRecorded,
		Title: "Payroll Decision Recorded",
		Message: fmt.Sprintf("You %s the payroll of %s for %s as %s.",
			verb, p.EmployeeName, period, tr.FromLevel.Title()),
	}, false)

	if next != nil && tr.Action == payroll.ActionApprove && !tr.Completed {
		send(next.UserID, Notification{
			Type:  TypePayrollApprovalRequest,
			Title: "Payroll Approval Required",
			Message: fmt.Sprintf("Payroll of %s for %s (net %.2f %s) requires your approval.",
				p.EmployeeName, period, p.Net, p.Currency),
		}, false)
	}

	if tr.Completed {
		send(p.EmployeeUserID, Notification{
			Type:    TypePayrollCompleted,
			Title:   "Payroll Fully Approved",
			Message: fmt.Sprintf("Your payroll for %s is fully approved and ready for processing.", period),
		}, true)
	}
}

func (d *Dispatcher) create(ctx context.Context, tenantID string, n Notification) {
	if err := d.svc.Create(ctx, tenantID, n); err != nil {
		log.Printf("notification %s to %s failed: %v", n.Type, n.UserID, err)
	}
}

func payrollSnapshot(p payroll.Payroll, level, reason string) map[string]any {
	data := map[string]any{
		"payrollId":    p.ID,
		"employeeId":   p.EmployeeID,
		"employeeName": p.EmployeeName,
		"month":        p.Month,
		"year":         p.Year,
		"net":          p.Net,
		"currency":     p.Currency,
		"status":       p.Status,
	}
	if level != "" {
		data["level"] = level
	}
	if reason != "" {
		data["reason"] = reason
	}
	return data
}
