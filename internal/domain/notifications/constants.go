package notifications

// Workflow event kinds. The payroll approval dispatcher emits the payroll_*
// kinds; the org handlers write the employee and department kinds through the
// same service.
const (
	TypePayrollSubmitted        = "payroll_submitted"
	TypePayrollResubmitted      = "payroll_resubmitted"
	TypePayrollApprovalRequest  = "payroll_approval_request"
	TypePayrollApprovedDeptHead = "payroll_approved_department_head"
	TypePayrollApprovedHR       = "payroll_approved_hr_manager"
	TypePayrollApprovedFinance  = "payroll_approved_finance_director"
	TypePayrollApprovedAdmin    = "payroll_approved_super_admin"
	TypePayrollRejected         = "payroll_rejected"
	TypePayrollDecisionRecorded = "payroll_decision_recorded"
	TypePayrollCompleted        = "payroll_completed"

	TypeEmployeeCreated   = "employee_created"
	TypeDepartmentHeadSet = "department_head_set"
)
