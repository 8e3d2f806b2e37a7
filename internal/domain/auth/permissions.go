package auth

import "hrpay/internal/domain/payroll"

const (
	RoleEmployee        = "employee"
	RoleDepartmentHead  = "department_head"
	RoleHRManager       = "hr_manager"
	RoleFinanceDirector = "finance_director"
	RoleSuperAdmin      = "super_admin"
)

const (
	PermEmployeesRead        = "core.employees.read"
	PermEmployeesWrite       = "core.employees.write"
	PermOrgRead              = "core.org.read"
	PermOrgWrite             = "core.org.write"
	PermPayrollRead          = "payroll.read"
	PermPayrollSubmit        = "payroll.submit"
	PermApproveDeptHead      = "payroll.approve.department_head"
	PermApproveHRManager     = "payroll.approve.hr_manager"
	PermApproveFinanceDir    = "payroll.approve.finance_director"
	PermApproveSuperAdmin    = "payroll.approve.super_admin"
	PermNotificationsRead    = "notifications.read"
	PermNotificationsManage  = "notifications.manage"
	PermSystemAdmin          = "admin.system"
)

var DefaultPermissions = []string{
	PermEmployeesRead,
	PermEmployeesWrite,
	PermOrgRead,
	PermOrgWrite,
	PermPayrollRead,
	PermPayrollSubmit,
	PermApproveDeptHead,
	PermApproveHRManager,
	PermApproveFinanceDir,
	PermApproveSuperAdmin,
	PermNotificationsRead,
	PermNotificationsManage,
	PermSystemAdmin,
}

var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermEmployeesRead,
		PermOrgRead,
		PermPayrollRead,
		PermNotificationsRead,
	},
	RoleDepartmentHead: {
		PermEmployeesRead,
		PermOrgRead,
		PermPayrollRead,
		PermApproveDeptHead,
		PermNotificationsRead,
	},
	RoleHRManager: {
		PermEmployeesRead,
		PermEmployeesWrite,
		PermOrgRead,
		PermOrgWrite,
		PermPayrollRead,
		PermPayrollSubmit,
		PermApproveHRManager,
		PermNotificationsRead,
		PermNotificationsManage,
	},
	RoleFinanceDirector: {
		PermEmployeesRead,
		PermOrgRead,
		PermPayrollRead,
		PermApproveFinanceDir,
		PermNotificationsRead,
	},
	RoleSuperAdmin: {
		PermEmployeesRead,
		PermEmployeesWrite,
		PermOrgRead,
		PermOrgWrite,
		PermPayrollRead,
		PermPayrollSubmit,
		PermApproveDeptHead,
		PermApproveHRManager,
		PermApproveFinanceDir,
		PermApproveSuperAdmin,
		PermNotificationsRead,
		PermNotificationsManage,
		PermSystemAdmin,
	},
}

// ApprovalPermissions maps each approval level to the permission required to
// decide at it.
var ApprovalPermissions = map[payroll.Level]string{
	payroll.LevelDepartmentHead:  PermApproveDeptHead,
	payroll.LevelHRManager:       PermApproveHRManager,
	payroll.LevelFinanceDirector: PermApproveFinanceDir,
	payroll.LevelSuperAdmin:      PermApproveSuperAdmin,
}
