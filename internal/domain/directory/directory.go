// Package directory resolves which user is authorized to act at each payroll
// approval level.
package directory

import (
	"context"
	"strings"

	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/payroll"
)

// Department name variants recognized when locating the HR and Finance
// departments. Matching is case-insensitive on the full name.
var (
	HRDepartmentNames = []string{
		"human resources",
		"human resource",
		"hr",
		"people operations",
		"people & culture",
	}
	FinanceDepartmentNames = []string{
		"finance",
		"finance & accounting",
		"finance and accounting",
		"accounting",
		"accounts",
	}
)

// Title patterns matched case-insensitively as substrings of an employee's
// position.
var (
	HRManagerTitles = []string{
		"hr manager",
		"human resource manager",
		"human resources manager",
		"people operations manager",
		"head of hr",
	}
	FinanceDirectorTitles = []string{
		"finance director",
		"director of finance",
		"financial director",
		"head of finance",
		"cfo",
	}
)

// Candidate is one active user inside a matched department.
type Candidate struct {
	UserID   string
	Name     string
	Position string
}

type StoreAPI interface {
	ListActiveUsersInDepartments(ctx context.Context, tenantID string, deptNames []string) ([]Candidate, error)
	FindActiveUserByRole(ctx context.Context, tenantID, roleName string) (payroll.Approver, bool, error)
	DepartmentHeadForEmployee(ctx context.Context, tenantID, employeeID string) (payroll.Approver, bool, error)
}

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

// FindNextApprover returns at most one user authorized to act at the level.
// When several candidates qualify the first match in store order wins; the
// directory does not enforce titleholder uniqueness. A missing department or
// titleholder is a normal not-found outcome.
func (s *Service) FindNextApprover(ctx context.Context, tenantID string, level payroll.Level, employeeID string) (payroll.Approver, bool, error) {
	switch level {
	case payroll.LevelDepartmentHead:
		return s.store.DepartmentHeadForEmployee(ctx, tenantID, employeeID)
	case payroll.LevelHRManager:
		return s.findByDepartmentAndTitle(ctx, tenantID, HRDepartmentNames, HRManagerTitles)
	case payroll.LevelFinanceDirector:
		return s.findByDepartmentAndTitle(ctx, tenantID, FinanceDepartmentNames, FinanceDirectorTitles)
	case payroll.LevelSuperAdmin:
		return s.store.FindActiveUserByRole(ctx, tenantID, auth.RoleSuperAdmin)
	}
	return payroll.Approver{}, false, nil
}

func (s *Service) findByDepartmentAndTitle(ctx context.Context, tenantID string, deptNames, titles []string) (payroll.Approver, bool, error) {
	candidates, err := s.store.ListActiveUsersInDepartments(ctx, tenantID, deptNames)
	if err != nil {
		return payroll.Approver{}, false, err
	}
	for _, c := range candidates {
		if MatchesTitle(c.Position, titles) {
			return payroll.Approver{UserID: c.UserID, Name: c.Name}, true, nil
		}
	}
	return payroll.Approver{}, false, nil
}

// MatchesTitle reports whether the position contains any of the title
// variants, ignoring case.
func MatchesTitle(position string, titles []string) bool {
	normalized := strings.ToLower(strings.TrimSpace(position))
	if normalized == "" {
		return false
	}
	for _, title := range titles {
		if strings.Contains(normalized, title) {
			return true
		}
	}
	return false
}
