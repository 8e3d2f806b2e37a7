package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrpay/internal/domain/payroll"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// ListActiveUsersInDepartments returns the active users employed in any
// active department whose name matches one of deptNames. Order is stable
// (creation order) so first-match resolution stays deterministic.
func (s *Store) ListActiveUsersInDepartments(ctx context.Context, tenantID string, deptNames []string) ([]Candidate, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT u.id, e.first_name || ' ' || e.last_name, COALESCE(e.position, '')
    FROM employees e
    JOIN users u ON e.user_id = u.id
    JOIN departments d ON e.department_id = d.id
    WHERE e.tenant_id = $1
      AND e.status = 'active'
      AND u.status = 'active'
      AND d.status = 'active'
      AND lower(d.name) = ANY($2)
    ORDER BY e.created_at, e.id
  `, tenantID, deptNames)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []Candidate
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(&c.UserID, &c.Name, &c.Position); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func (s *Store) FindActiveUserByRole(ctx context.Context, tenantID, roleName string) (payroll.Approver, bool, error) {
	var approver payroll.Approver
	err := s.DB.QueryRow(ctx, `
    SELECT u.id, COALESCE(u.name, u.email)
    FROM users u
    JOIN roles r ON u.role_id = r.id
    WHERE u.tenant_id = $1 AND r.name = $2 AND u.status = 'active'
    ORDER BY u.created_at, u.id
    LIMIT 1
  `, tenantID, roleName).Scan(&approver.UserID, &approver.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return payroll.Approver{}, false, nil
	}
	if err != nil {
		return payroll.Approver{}, false, err
	}
	return approver, true, nil
}

// DepartmentHeadForEmployee follows the submitting employee's own
// department's configured head reference, not a global search.
func (s *Store) DepartmentHeadForEmployee(ctx context.Context, tenantID, employeeID string) (payroll.Approver, bool, error) {
	var approver payroll.Approver
	err := s.DB.QueryRow(ctx, `
    SELECT hu.id, he.first_name || ' ' || he.last_name
    FROM employees e
    JOIN departments d ON e.department_id = d.id
    JOIN employees he ON d.head_employee_id = he.id
    JOIN users hu ON he.user_id = hu.id
    WHERE e.tenant_id = $1 AND e.id = $2
      AND he.status = 'active' AND hu.status = 'active'
  `, tenantID, employeeID).Scan(&approver.UserID, &approver.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return payroll.Approver{}, false, nil
	}
	if err != nil {
		return payroll.Approver{}, false, err
	}
	return approver, true, nil
}
