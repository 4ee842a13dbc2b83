package models

import "testing"

func TestRunStatusValid(t *testing.T) {
	valid := []RunStatus{RunPending, RunRunning, RunCompleted, RunFailed, RunStopped}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("expected status %q to be valid", s)
		}
	}

	if RunStatus("exploded").Valid() {
		t.Error("expected unknown status to be invalid")
	}
	if RunStatus("").Valid() {
		t.Error("expected empty status to be invalid")
	}
}

func TestRunStatusTerminal(t *testing.T) {
	tests := []struct {
		status   RunStatus
		terminal bool
	}{
		{RunPending, false},
		{RunRunning, false},
		{RunCompleted, true},
		{RunFailed, true},
		{RunStopped, true},
	}

	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.terminal {
			t.Errorf("Terminal(%q) = %v, want %v", tt.status, got, tt.terminal)
		}
	}
}

func TestTaskStateValid(t *testing.T) {
	valid := []TaskState{TaskPending, TaskRunning, TaskDone, TaskFailed, TaskSkipped}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("expected state %q to be valid", s)
		}
	}

	if TaskState("unknown").Valid() {
		t.Error("expected unknown state to be invalid")
	}
}

func TestUsageAdd(t *testing.T) {
	u := Usage{InputTokens: 100, OutputTokens: 50, Calls: 1}
	u.Add(Usage{InputTokens: 200, OutputTokens: 75, Calls: 2})

	if u.InputTokens != 300 {
		t.Errorf("expected 300 input tokens, got %d", u.InputTokens)
	}
	if u.OutputTokens != 125 {
		t.Errorf("expected 125 output tokens, got %d", u.OutputTokens)
	}
	if u.Calls != 3 {
		t.Errorf("expected 3 calls, got %d", u.Calls)
	}
	if u.Total() != 425 {
		t.Errorf("expected total 425, got %d", u.Total())
	}
}
