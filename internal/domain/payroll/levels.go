package payroll

import "strings"

// Level is one step in the fixed payroll sign-off chain. LevelCompleted is the
// terminal marker stored as currentLevel once the chain is exhausted; it is not
// a level anyone acts at.
type Level string

const (
	LevelDepartmentHead  Level = "DEPARTMENT_HEAD"
	LevelHRManager       Level = "HR_MANAGER"
	LevelFinanceDirector Level = "FINANCE_DIRECTOR"
	LevelSuperAdmin      Level = "SUPER_ADMIN"
	LevelCompleted       Level = "COMPLETED"
)

// ApprovalLevels lists the acting levels in chain order.
var ApprovalLevels = []Level{
	LevelDepartmentHead,
	LevelHRManager,
	LevelFinanceDirector,
	LevelSuperAdmin,
}

var successors = map[Level]Level{
	LevelDepartmentHead:  LevelHRManager,
	LevelHRManager:       LevelFinanceDirector,
	LevelFinanceDirector: LevelSuperAdmin,
	LevelSuperAdmin:      LevelCompleted,
}

var levelTitles = map[Level]string{
	LevelDepartmentHead:  "Department Head",
	LevelHRManager:       "HR Manager",
	LevelFinanceDirector: "Finance Director",
	LevelSuperAdmin:      "Super Admin",
}

// IsApprovalLevel reports whether the level is one someone can act at.
func (l Level) IsApprovalLevel() bool {
	_, ok := successors[l]
	return ok
}

// Successor returns the next level in the chain. The successor of
// LevelSuperAdmin is LevelCompleted. Calling it on anything else returns
// false.
func (l Level) Successor() (Level, bool) {
	next, ok := successors[l]
	return next, ok
}

// Title is the human-readable form used in notification text.
func (l Level) Title() string {
	if title, ok := levelTitles[l]; ok {
		return title
	}
	return string(l)
}

// ParseLevel accepts the canonical form plus the URL-friendly spellings used by
// the approvals endpoints ("department-head", "department_head").
func ParseLevel(raw string) (Level, bool) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), "-", "_"))
	level := Level(normalized)
	if level.IsApprovalLevel() {
		return level, true
	}
	return "", false
}
