package org

import "time"

const (
	EmployeeStatusActive   = "active"
	EmployeeStatusInactive = "inactive"
)

type Department struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Status         string    `json:"status"`
	HeadEmployeeID string    `json:"headEmployeeId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type Employee struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId,omitempty"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Position     string    `json:"position,omitempty"`
	DepartmentID string    `json:"departmentId,omitempty"`
	Salary       float64   `json:"salary"`
	Currency     string    `json:"currency"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}
