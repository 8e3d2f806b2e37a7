package payroll

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PayslipPDF renders the payslip for a fully approved payroll.
func (s *Service) PayslipPDF(ctx context.Context, tenantID, payrollID string) ([]byte, error) {
	p, err := s.store.FindByID(ctx, tenantID, payrollID)
	if err != nil {
		return nil, err
	}
	if p.Status != StatusCompleted {
		return nil, ErrNotCompleted
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", p.EmployeeName))
	pdf.Ln(7)
	if p.DepartmentName != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Department: %s", p.DepartmentName))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Period: %02d/%d", p.Month, p.Year))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Gross: %.2f %s", p.Gross, p.Currency))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deductions: %.2f %s", p.Deductions, p.Currency))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Net: %.2f %s", p.Net, p.Currency))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("payslip %s: render pdf: %w", payrollID, err)
	}
	return buf.Bytes(), nil
}
