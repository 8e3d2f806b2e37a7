package payroll

import "errors"

var (
	ErrNotFound          = errors.New("payroll not found")
	ErrAlreadyExists     = errors.New("payroll already exists for employee and period")
	ErrInvalidLevel      = errors.New("invalid approval level")
	ErrInvalidTransition = errors.New("payroll is in a terminal state")
	ErrLevelConflict     = errors.New("payroll approval level has changed")
	ErrMissingReason     = errors.New("rejection reason is required")
	ErrReasonTooLong     = errors.New("rejection reason exceeds 500 characters")
	ErrInvalidPeriod     = errors.New("invalid payroll period")
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrNotRejected       = errors.New("only rejected payrolls can be resubmitted")
	ErrNotCompleted      = errors.New("payroll approval is not completed")
)
