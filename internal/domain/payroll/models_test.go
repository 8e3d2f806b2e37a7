package payroll

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestApprovalFlowJSONLayout(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	current := LevelHRManager
	next := LevelFinanceDirector
	flow := ApprovalFlow{
		CurrentLevel:      &current,
		StatusMessage:     "Pending HR_MANAGER Approval",
		NextApprovalLevel: &next,
		SubmittedBy:       "user-1",
		SubmittedAt:       now,
		DepartmentHead: &Decision{
			Status:     DecisionApproved,
			ApprovedBy: "head-1",
			ApprovedAt: now,
		},
		History: []HistoryEntry{
			{Level: LevelDepartmentHead, Status: DecisionApproved, ApprovedBy: "head-1", ApprovedAt: now},
		},
	}

	raw, err := json.Marshal(flow)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// The per-level decisions are keyed by the level name itself.
	if !strings.Contains(string(raw), `"DEPARTMENT_HEAD":{`) {
		t.Fatalf("expected DEPARTMENT_HEAD key, got %s", raw)
	}
	if strings.Contains(string(raw), `"HR_MANAGER":`) {
		t.Fatalf("undecided levels must be omitted, got %s", raw)
	}

	var decoded ApprovalFlow
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.CurrentLevel == nil || *decoded.CurrentLevel != LevelHRManager {
		t.Fatalf("unexpected currentLevel: %+v", decoded.CurrentLevel)
	}
	if d := decoded.DecisionAt(LevelDepartmentHead); d == nil || d.ApprovedBy != "head-1" {
		t.Fatalf("unexpected department head decision: %+v", d)
	}
	if len(decoded.History) != 1 || decoded.History[0].Level != LevelDepartmentHead {
		t.Fatalf("unexpected history: %+v", decoded.History)
	}
}

func TestApprovalFlowNilCurrentLevelSurvivesRoundTrip(t *testing.T) {
	flow := ApprovalFlow{
		StatusMessage: "Rejected by HR Manager",
		History:       []HistoryEntry{},
	}

	raw, err := json.Marshal(flow)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"currentLevel":null`) {
		t.Fatalf("currentLevel must serialize as explicit null, got %s", raw)
	}

	var decoded ApprovalFlow
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.CurrentLevel != nil {
		t.Fatalf("expected nil currentLevel, got %v", *decoded.CurrentLevel)
	}
}

func TestHistoryOrderPreserved(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	flow := ApprovalFlow{History: []HistoryEntry{}}
	for i, level := range ApprovalLevels {
		flow.History = append(flow.History, HistoryEntry{
			Level:      level,
			Status:     DecisionApproved,
			ApprovedBy: "u",
			ApprovedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}

	raw, err := json.Marshal(flow)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded ApprovalFlow
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for i, level := range ApprovalLevels {
		if decoded.History[i].Level != level {
			t.Fatalf("history[%d] = %s, want %s", i, decoded.History[i].Level, level)
		}
	}
}

func TestPayrollTerminal(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{StatusPending, false},
		{StatusCompleted, true},
		{StatusRejected, true},
	}
	for _, tc := range tests {
		p := Payroll{Status: tc.status}
		if p.Terminal() != tc.want {
			t.Fatalf("Terminal() for %s = %v, want %v", tc.status, p.Terminal(), tc.want)
		}
	}
}
