package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const payrollColumns = `
    p.id, p.employee_id,
    e.first_name || ' ' || e.last_name,
    COALESCE(e.user_id::text, ''),
    COALESCE(e.department_id::text, ''),
    COALESCE(d.name, ''),
    p.month, p.year, p.gross, p.deductions, p.net, p.currency,
    p.status, p.approval_flow, p.created_at, p.updated_at`

func (s *Store) Create(ctx context.Context, tenantID string, p Payroll) (string, error) {
	flowJSON, err := json.Marshal(p.ApprovalFlow)
	if err != nil {
		return "", fmt.Errorf("create payroll: marshal approval flow: %w", err)
	}

	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO payrolls (tenant_id, employee_id, month, year, gross, deductions, net, currency, status, approval_flow)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING id
  `, tenantID, p.EmployeeID, p.Month, p.Year, p.Gross, p.Deductions, p.Net, p.Currency, p.Status, flowJSON).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", ErrAlreadyExists
		}
		return "", err
	}
	return id, nil
}

func (s *Store) FindByID(ctx context.Context, tenantID, payrollID string) (Payroll, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT`+payrollColumns+`
    FROM payrolls p
    JOIN employees e ON p.employee_id = e.id
    LEFT JOIN departments d ON e.department_id = d.id
    WHERE p.tenant_id = $1 AND p.id = $2
  `, tenantID, payrollID)
	p, err := scanPayroll(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Payroll{}, ErrNotFound
	}
	return p, err
}

func (s *Store) List(ctx context.Context, tenantID string, filter ListFilter) ([]Payroll, int, error) {
	query := `
    SELECT` + payrollColumns + `
    FROM payrolls p
    JOIN employees e ON p.employee_id = e.id
    LEFT JOIN departments d ON e.department_id = d.id
    WHERE p.tenant_id = $1
  `
	countQuery := "SELECT COUNT(1) FROM payrolls p WHERE p.tenant_id = $1"
	args := []any{tenantID}

	addFilter := func(clause string, value any) {
		args = append(args, value)
		cond := fmt.Sprintf(clause, len(args))
		query += " AND " + cond
		countQuery += " AND " + cond
	}
	if filter.EmployeeID != "" {
		addFilter("p.employee_id = $%d", filter.EmployeeID)
	}
	if filter.Status != "" {
		addFilter("p.status = $%d", filter.Status)
	}
	if filter.Month > 0 {
		addFilter("p.month = $%d", filter.Month)
	}
	if filter.Year > 0 {
		addFilter("p.year = $%d", filter.Year)
	}

	var total int
	if err := s.DB.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		total = 0
	}

	query += fmt.Sprintf(" ORDER BY p.year DESC, p.month DESC, p.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var payrolls []Payroll
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, 0, err
		}
		payrolls = append(payrolls, p)
	}
	return payrolls, total, rows.Err()
}

// UpdateApprovalFlow is the check-and-set at the heart of the approval chain:
// the write lands only while the stored flow still sits at expectedLevel. Two
// concurrent decisions at the same level therefore produce exactly one commit;
// the loser observes ErrLevelConflict.
func (s *Store) UpdateApprovalFlow(ctx context.Context, tenantID, payrollID string, expectedLevel Level, status string, flow ApprovalFlow) (Payroll, error) {
	flowJSON, err := json.Marshal(flow)
	if err != nil {
		return Payroll{}, fmt.Errorf("update payroll %s: marshal approval flow: %w", payrollID, err)
	}

	tag, err := s.DB.Exec(ctx, `
    UPDATE payrolls
    SET status = $1, approval_flow = $2, updated_at = now()
    WHERE tenant_id = $3 AND id = $4
      AND status NOT IN ($5, $6)
      AND approval_flow->>'currentLevel' = $7
  `, status, flowJSON, tenantID, payrollID, StatusCompleted, StatusRejected, string(expectedLevel))
	if err != nil {
		return Payroll{}, err
	}
	if tag.RowsAffected() == 0 {
		return Payroll{}, s.classifyConflict(ctx, tenantID, payrollID)
	}
	return s.FindByID(ctx, tenantID, payrollID)
}

// ResetApprovalFlow re-opens a rejected payroll, guarded on the stored status
// so a concurrent resubmission commits only once.
func (s *Store) ResetApprovalFlow(ctx context.Context, tenantID, payrollID string, status string, flow ApprovalFlow) (Payroll, error) {
	flowJSON, err := json.Marshal(flow)
	if err != nil {
		return Payroll{}, fmt.Errorf("reset payroll %s: marshal approval flow: %w", payrollID, err)
	}

	tag, err := s.DB.Exec(ctx, `
    UPDATE payrolls
    SET status = $1, approval_flow = $2, updated_at = now()
    WHERE tenant_id = $3 AND id = $4 AND status = $5
  `, status, flowJSON, tenantID, payrollID, StatusRejected)
	if err != nil {
		return Payroll{}, err
	}
	if tag.RowsAffected() == 0 {
		if _, err := s.FindByID(ctx, tenantID, payrollID); err != nil {
			return Payroll{}, err
		}
		return Payroll{}, ErrNotRejected
	}
	return s.FindByID(ctx, tenantID, payrollID)
}

func (s *Store) EmployeePayInfo(ctx context.Context, tenantID, employeeID string) (EmployeePayInfo, error) {
	var info EmployeePayInfo
	err := s.DB.QueryRow(ctx, `
    SELECT e.id, COALESCE(e.user_id::text, ''), e.first_name || ' ' || e.last_name,
           COALESCE(e.department_id::text, ''), e.salary, e.currency
    FROM employees e
    WHERE e.tenant_id = $1 AND e.id = $2 AND e.status = 'active'
  `, tenantID, employeeID).Scan(&info.ID, &info.UserID, &info.Name, &info.DepartmentID, &info.Salary, &info.Currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return EmployeePayInfo{}, ErrEmployeeNotFound
	}
	return info, err
}

func (s *Store) classifyConflict(ctx context.Context, tenantID, payrollID string) error {
	current, err := s.FindByID(ctx, tenantID, payrollID)
	if err != nil {
		return err
	}
	if current.Terminal() {
		return ErrInvalidTransition
	}
	return ErrLevelConflict
}

func scanPayroll(row pgx.Row) (Payroll, error) {
	var p Payroll
	var flowJSON []byte
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.EmployeeName, &p.EmployeeUserID,
		&p.DepartmentID, &p.DepartmentName,
		&p.Month, &p.Year, &p.Gross, &p.Deductions, &p.Net, &p.Currency,
		&p.Status, &flowJSON, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return Payroll{}, err
	}
	if err := json.Unmarshal(flowJSON, &p.ApprovalFlow); err != nil {
		return Payroll{}, fmt.Errorf("payroll %s: unmarshal approval flow: %w", p.ID, err)
	}
	return p, nil
}
