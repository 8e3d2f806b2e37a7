package payroll

import "context"

type ListFilter struct {
	EmployeeID string
	Status     string
	Month      int
	Year       int
	Limit      int
	Offset     int
}

// EmployeePayInfo is the hydrated employee view the submission path needs.
type EmployeePayInfo struct {
	ID           string
	UserID       string
	Name         string
	DepartmentID string
	Salary       float64
	Currency     string
}

// StoreAPI is the persistence contract for payrolls. UpdateApprovalFlow is a
// single conditional update: it commits only while the stored flow's
// currentLevel still equals expectedLevel, and reports ErrLevelConflict
// otherwise. ResetApprovalFlow is the analogous conditional write for
// resubmission, guarded on the stored status being REJECTED.
type StoreAPI interface {
	Create(ctx context.Context, tenantID string, p Payroll) (string, error)
	FindByID(ctx context.Context, tenantID, payrollID string) (Payroll, error)
	List(ctx context.Context, tenantID string, filter ListFilter) ([]Payroll, int, error)
	UpdateApprovalFlow(ctx context.Context, tenantID, payrollID string, expectedLevel Level, status string, flow ApprovalFlow) (Payroll, error)
	ResetApprovalFlow(ctx context.Context, tenantID, payrollID string, status string, flow ApprovalFlow) (Payroll, error)
	EmployeePayInfo(ctx context.Context, tenantID, employeeID string) (EmployeePayInfo, error)
}
