package payroll

import "testing"

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name           string
		baseSalary     float64
		lines          []PayLine
		wantGross      float64
		wantDeductions float64
		wantNet        float64
	}{
		{
			name:       "salary only",
			baseSalary: 5000,
			wantGross:  5000,
			wantNet:    5000,
		},
		{
			name:       "earnings and deductions",
			baseSalary: 5000,
			lines: []PayLine{
				{Type: LineTypeEarning, Description: "overtime", Amount: 400},
				{Type: LineTypeEarning, Description: "bonus", Amount: 1000},
				{Type: LineTypeDeduction, Description: "tax", Amount: 1200},
				{Type: LineTypeDeduction, Description: "pension", Amount: 300},
			},
			wantGross:      6400,
			wantDeductions: 1500,
			wantNet:        4900,
		},
		{
			name:       "unknown line types are ignored",
			baseSalary: 1000,
			lines: []PayLine{
				{Type: "memo", Amount: 999},
			},
			wantGross: 1000,
			wantNet:   1000,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			gross, deductions, net := ComputeTotals(tc.baseSalary, tc.lines)
			if gross != tc.wantGross || deductions != tc.wantDeductions || net != tc.wantNet {
				t.Fatalf("ComputeTotals = (%v, %v, %v), want (%v, %v, %v)",
					gross, deductions, net, tc.wantGross, tc.wantDeductions, tc.wantNet)
			}
		})
	}
}
