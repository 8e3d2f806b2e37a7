package org

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("record not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListDepartments(ctx context.Context, tenantID string) ([]Department, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, status, COALESCE(head_employee_id::text, ''), created_at
    FROM departments
    WHERE tenant_id = $1
    ORDER BY name
  `, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []Department
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Status, &d.HeadEmployeeID, &d.CreatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (s *Store) CreateDepartment(ctx context.Context, tenantID string, d Department) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO departments (tenant_id, name, status, head_employee_id)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, tenantID, d.Name, statusOrActive(d.Status), nullIfEmpty(d.HeadEmployeeID)).Scan(&id)
	return id, err
}

func (s *Store) SetDepartmentHead(ctx context.Context, tenantID, departmentID, headEmployeeID string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE departments SET head_employee_id = $1 WHERE tenant_id = $2 AND id = $3
  `, nullIfEmpty(headEmployeeID), tenantID, departmentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListEmployees(ctx context.Context, tenantID string, limit, offset int) ([]Employee, int, error) {
	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE tenant_id = $1", tenantID).Scan(&total); err != nil {
		total = 0
	}

	rows, err := s.DB.Query(ctx, `
    SELECT id, COALESCE(user_id::text, ''), first_name, last_name, email,
           COALESCE(position, ''), COALESCE(department_id::text, ''), salary, currency, status, created_at
    FROM employees
    WHERE tenant_id = $1
    ORDER BY last_name, first_name
    LIMIT $2 OFFSET $3
  `, tenantID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.UserID, &e.FirstName, &e.LastName, &e.Email, &e.Position, &e.DepartmentID, &e.Salary, &e.Currency, &e.Status, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		employees = append(employees, e)
	}
	return employees, total, rows.Err()
}

func (s *Store) FindEmployee(ctx context.Context, tenantID, employeeID string) (Employee, error) {
	var e Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, COALESCE(user_id::text, ''), first_name, last_name, email,
           COALESCE(position, ''), COALESCE(department_id::text, ''), salary, currency, status, created_at
    FROM employees
    WHERE tenant_id = $1 AND id = $2
  `, tenantID, employeeID).Scan(&e.ID, &e.UserID, &e.FirstName, &e.LastName, &e.Email, &e.Position, &e.DepartmentID, &e.Salary, &e.Currency, &e.Status, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return e, err
}

func (s *Store) CreateEmployee(ctx context.Context, tenantID string, e Employee) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (tenant_id, user_id, first_name, last_name, email, position, department_id, salary, currency, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING id
  `, tenantID, nullIfEmpty(e.UserID), e.FirstName, e.LastName, e.Email, e.Position,
		nullIfEmpty(e.DepartmentID), e.Salary, currencyOrDefault(e.Currency), statusOrActive(e.Status)).Scan(&id)
	return id, err
}

func (s *Store) EmployeeIDByUserID(ctx context.Context, tenantID, userID string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, "SELECT id FROM employees WHERE tenant_id = $1 AND user_id = $2", tenantID, userID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return id, err
}

func nullIfEmpty(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func statusOrActive(status string) string {
	if strings.TrimSpace(status) == "" {
		return EmployeeStatusActive
	}
	return status
}

func currencyOrDefault(currency string) string {
	if strings.TrimSpace(currency) == "" {
		return "USD"
	}
	return currency
}
