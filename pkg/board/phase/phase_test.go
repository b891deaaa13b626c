package phase

import "testing"

func twoPhasePlan(t *testing.T) *Plan {
	t.Helper()
	p, err := NewPlan(
		Phase{Name: "first", LeadPersonaId: "a", SeedPrompts: []string{"q1", "q2"}},
		Phase{Name: "second", LeadPersonaId: "b", SeedPrompts: []string{"q3"}},
	)
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}
	return p
}

func TestPlanNext(t *testing.T) {
	plan := twoPhasePlan(t)

	tests := []struct {
		name          string
		current       int
		leadResponses int
		wantNext      int
		wantCompleted bool
	}{
		{"below threshold stays", 0, 0, 0, false},
		{"one response stays", 0, 1, 0, false},
		{"threshold advances", 0, LeadResponsesPerPhase, 1, false},
		{"over threshold advances", 0, 5, 1, false},
		{"last phase below threshold", 1, 1, 1, false},
		{"last phase clamps and completes", 1, LeadResponsesPerPhase, 1, true},
		{"negative index clamps", -3, 0, 0, false},
		{"index past end clamps to last", 9, 0, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, completed := plan.Next(tt.current, tt.leadResponses)
			if next != tt.wantNext {
				t.Errorf("Next(%d, %d) next = %d, want %d", tt.current, tt.leadResponses, next, tt.wantNext)
			}
			if completed != tt.wantCompleted {
				t.Errorf("Next(%d, %d) completed = %v, want %v", tt.current, tt.leadResponses, completed, tt.wantCompleted)
			}
		})
	}
}

func TestSeedPromptClamps(t *testing.T) {
	plan := twoPhasePlan(t)
	first := plan.Phase(0)

	tests := []struct {
		idx  int
		want string
	}{
		{0, "q1"},
		{1, "q2"},
		{7, "q2"},
		{-1, "q1"},
	}

	for _, tt := range tests {
		if got := first.SeedPrompt(tt.idx); got != tt.want {
			t.Errorf("SeedPrompt(%d) = %q, want %q", tt.idx, got, tt.want)
		}
	}

	empty := Phase{Name: "empty"}
	if got := empty.SeedPrompt(0); got != "" {
		t.Errorf("SeedPrompt on empty prompts = %q, want empty string", got)
	}
}

func TestNewPlanValidation(t *testing.T) {
	if _, err := NewPlan(); err == nil {
		t.Error("NewPlan() with no phases should error")
	}

	if _, err := NewPlan(Phase{Name: "headless"}); err == nil {
		t.Error("NewPlan() with missing lead persona should error")
	}
}

func TestDefaultPlanShape(t *testing.T) {
	plan := DefaultPlan()

	if plan.Len() < 2 {
		t.Fatalf("default plan has %d phases, want at least 2", plan.Len())
	}
	for i := 0; i < plan.Len(); i++ {
		ph := plan.Phase(i)
		if ph.Index != i {
			t.Errorf("phase %q Index = %d, want %d", ph.Name, ph.Index, i)
		}
		if len(ph.SeedPrompts) == 0 {
			t.Errorf("phase %q has no seed prompts", ph.Name)
		}
		if ph.MaxAttempts < 1 {
			t.Errorf("phase %q MaxAttempts = %d, want >= 1", ph.Name, ph.MaxAttempts)
		}
		if len(ph.ChallengeMessages) == 0 {
			t.Errorf("phase %q has no challenge messages", ph.Name)
		}
	}
}
