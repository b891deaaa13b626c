package phase

import "fmt"

// LeadResponsesPerPhase is how many times the phase's lead persona must have
// responded before the conversation advances to the next phase.
const LeadResponsesPerPhase = 2

// Phase is one immutable ordered step of a board session. The answer-quality
// fields (Rubric, MinWords, ChallengeMessages, MaxAttempts) configure the
// specificity gate for answers given during this phase.
type Phase struct {
	Index         int
	Name          string
	Description   string
	LeadPersonaId string
	SeedPrompts   []string

	Rubric            string
	MinWords          int
	ChallengeMessages []string
	MaxAttempts       int
}

// SeedPrompt returns the prompt at idx, clamped to the last prompt so a
// prompt index that ran past the list never indexes out of bounds.
func (p Phase) SeedPrompt(idx int) string {
	if len(p.SeedPrompts) == 0 {
		return ""
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(p.SeedPrompts) {
		idx = len(p.SeedPrompts) - 1
	}
	return p.SeedPrompts[idx]
}

// Plan is the fixed ordered list of phases, shared read-only by all sessions.
type Plan struct {
	phases []Phase
}

func NewPlan(phases ...Phase) (*Plan, error) {
	if len(phases) == 0 {
		return nil, fmt.Errorf("plan requires at least one phase")
	}
	for i := range phases {
		if phases[i].LeadPersonaId == "" {
			return nil, fmt.Errorf("phase %d (%s) has no lead persona", i, phases[i].Name)
		}
		phases[i].Index = i
	}
	return &Plan{phases: phases}, nil
}

func (p *Plan) Len() int {
	return len(p.phases)
}

// Phase returns the phase at index i, clamped into the valid range.
func (p *Plan) Phase(i int) Phase {
	if i < 0 {
		i = 0
	}
	if i >= len(p.phases) {
		i = len(p.phases) - 1
	}
	return p.phases[i]
}

// Next is the pure phase-transition rule: given the current phase index and
// the number of lead-persona responses recorded in that phase, it returns the
// next phase index and whether the plan is complete. The index clamps at the
// last phase; completion is reported instead of transitioning past it.
func (p *Plan) Next(current, leadResponses int) (next int, completed bool) {
	if current < 0 {
		current = 0
	}
	last := len(p.phases) - 1
	if current >= last {
		return last, leadResponses >= LeadResponsesPerPhase
	}
	if leadResponses >= LeadResponsesPerPhase {
		return current + 1, false
	}
	return current, false
}
