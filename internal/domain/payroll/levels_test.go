package payroll

import "testing"

func TestSuccessorChain(t *testing.T) {
	want := []Level{LevelHRManager, LevelFinanceDirector, LevelSuperAdmin, LevelCompleted}
	for i, level := range ApprovalLevels {
		next, ok := level.Successor()
		if !ok {
			t.Fatalf("expected successor for %s", level)
		}
		if next != want[i] {
			t.Fatalf("successor of %s = %s, want %s", level, next, want[i])
		}
	}

	if _, ok := LevelCompleted.Successor(); ok {
		t.Fatal("COMPLETED must not have a successor")
	}
	if LevelCompleted.IsApprovalLevel() {
		t.Fatal("COMPLETED is not an acting level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  Level
		valid bool
	}{
		{name: "canonical", raw: "DEPARTMENT_HEAD", want: LevelDepartmentHead, valid: true},
		{name: "kebab", raw: "department-head", want: LevelDepartmentHead, valid: true},
		{name: "snake lower", raw: "hr_manager", want: LevelHRManager, valid: true},
		{name: "mixed case", raw: "Finance-Director", want: LevelFinanceDirector, valid: true},
		{name: "whitespace", raw: "  super_admin ", want: LevelSuperAdmin, valid: true},
		{name: "terminal marker", raw: "completed", valid: false},
		{name: "unknown", raw: "ceo", valid: false},
		{name: "empty", raw: "", valid: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseLevel(tc.raw)
			if ok != tc.valid {
				t.Fatalf("ParseLevel(%q) ok = %v, want %v", tc.raw, ok, tc.valid)
			}
			if ok && got != tc.want {
				t.Fatalf("ParseLevel(%q) = %s, want %s", tc.raw, got, tc.want)
			}
		})
	}
}

func TestLevelTitle(t *testing.T) {
	if got := LevelHRManager.Title(); got != "HR Manager" {
		t.Fatalf("unexpected title: %s", got)
	}
	if got := Level("SOMETHING_ELSE").Title(); got != "SOMETHING_ELSE" {
		t.Fatalf("unknown level should fall back to its name, got %s", got)
	}
}
