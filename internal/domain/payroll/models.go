package payroll

import "time"

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCompleted = "COMPLETED"
)

const (
	DecisionApproved = "APPROVED"
	DecisionRejected = "REJECTED"
)

// Action is the decision an approver submits.
type Action string

const (
	ActionApprove Action = "APPROVE"
	ActionReject  Action = "REJECT"
)

// Decision is the stored outcome for one specific level.
type Decision struct {
	Status     string    `json:"status"`
	ApprovedBy string    `json:"approvedBy"`
	ApprovedAt time.Time `json:"approvedAt"`
	Reason     string    `json:"reason,omitempty"`
}

// HistoryEntry is one element of the append-only audit trail. Insertion order
// is significant and must never be reordered.
type HistoryEntry struct {
	Level      Level     `json:"level"`
	Status     string    `json:"status"`
	ApprovedBy string    `json:"approvedBy"`
	ApprovedAt time.Time `json:"approvedAt"`
	Reason     string    `json:"reason,omitempty"`
}

// ApprovalFlow is the workflow sub-document embedded in a payroll. CurrentLevel
// is nil after a rejection. The per-level decision fields are keyed by the
// level names so the persisted layout reads DEPARTMENT_HEAD: {...} etc.
type ApprovalFlow struct {
	CurrentLevel      *Level         `json:"currentLevel"`
	StatusMessage     string         `json:"statusMessage,omitempty"`
	NextApprovalLevel *Level         `json:"nextApprovalLevel,omitempty"`
	SubmittedBy       string         `json:"submittedBy,omitempty"`
	SubmittedAt       time.Time      `json:"submittedAt,omitzero"`
	DepartmentHead    *Decision      `json:"DEPARTMENT_HEAD,omitempty"`
	HRManager         *Decision      `json:"HR_MANAGER,omitempty"`
	FinanceDirector   *Decision      `json:"FINANCE_DIRECTOR,omitempty"`
	SuperAdmin        *Decision      `json:"SUPER_ADMIN,omitempty"`
	History           []HistoryEntry `json:"history"`
}

// DecisionAt returns the stored decision for a level, if any.
func (f *ApprovalFlow) DecisionAt(level Level) *Decision {
	switch level {
	case LevelDepartmentHead:
		return f.DepartmentHead
	case LevelHRManager:
		return f.HRManager
	case LevelFinanceDirector:
		return f.FinanceDirector
	case LevelSuperAdmin:
		return f.SuperAdmin
	}
	return nil
}

func (f *ApprovalFlow) setDecision(level Level, d Decision) {
	switch level {
	case LevelDepartmentHead:
		f.DepartmentHead = &d
	case LevelHRManager:
		f.HRManager = &d
	case LevelFinanceDirector:
		f.FinanceDirector = &d
	case LevelSuperAdmin:
		f.SuperAdmin = &d
	}
}

// Payroll is one employee's payroll for a month. It is unique on
// (employee, month, year) within a tenant and exclusively owns its
// ApprovalFlow; status is only ever derived from the flow by the state
// machine.
type Payroll struct {
	ID             string       `json:"id"`
	EmployeeID     string       `json:"employeeId"`
	EmployeeName   string       `json:"employeeName,omitempty"`
	EmployeeUserID string       `json:"-"`
	DepartmentID   string       `json:"departmentId,omitempty"`
	DepartmentName string       `json:"departmentName,omitempty"`
	Month          int          `json:"month"`
	Year           int          `json:"year"`
	Gross          float64      `json:"gross"`
	Deductions     float64      `json:"deductions"`
	Net            float64      `json:"net"`
	Currency       string       `json:"currency"`
	Status         string       `json:"status"`
	ApprovalFlow   ApprovalFlow `json:"approvalFlow"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// Terminal reports whether no further transitions are permitted.
func (p *Payroll) Terminal() bool {
	return p.Status == StatusCompleted || p.Status == StatusRejected
}

// PayLine is one earning or deduction feeding the payroll totals.
type PayLine struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Approver is a resolved user authorized to act at some level.
type Approver struct {
	UserID string
	Name   string
}

// Actor is the authenticated user making a decision.
type Actor struct {
	UserID string
	Name   string
}

// Transition is the value object describing one committed state change. The
// notification dispatcher consumes it after the payroll update has already
// committed, so nothing downstream can roll the transition back.
type Transition struct {
	Payroll   Payroll
	FromLevel Level
	ToLevel   Level
	Action    Action
	Actor     Actor
	Reason    string
	Completed bool
	Rejected  bool
}
