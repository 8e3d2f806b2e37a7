package payroll

const (
	LineTypeEarning   = "earning"
	LineTypeDeduction = "deduction"
)

// ComputeTotals aggregates the base salary and pay lines into gross,
// deductions and net. Tax and statutory formulas are not applied here;
// callers provide them as regular deduction lines.
func ComputeTotals(baseSalary float64, lines []PayLine) (gross, deductions, net float64) {
	gross = baseSalary
	for _, line := range lines {
		switch line.Type {
		case LineTypeEarning:
			gross += line.Amount
		case LineTypeDeduction:
			deductions += line.Amount
		}
	}
	net = gross - deductions
	return gross, deductions, net
}
