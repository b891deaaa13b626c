package orchestrator

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleUser    Role = "user"
	RolePersona Role = "persona"
)

// Turn is one immutable exchange entry. PersonaId is set only for persona
// turns.
type Turn struct {
	Role      Role
	Content   string
	PersonaId string
}

// State is the per-session orchestrator aggregate. It is handed to the core
// by value and returned by value; Respond never mutates its input.
//
// Invariants: PhaseIndex is always a valid plan index; ActivePersonaId equals
// the lead of the current phase except immediately after an interjection
// turn; LeadResponses counts lead-persona turns within the current phase and
// resets to zero on every phase transition, as does PromptIndex.
type State struct {
	PhaseIndex      int
	PromptIndex     int
	ActivePersonaId string
	LeadResponses   int
	Turns           []Turn
}

// Clone returns a deep copy. The turn slice is copied so appends on the clone
// never alias the original's backing array.
func (s State) Clone() State {
	turns := make([]Turn, len(s.Turns))
	copy(turns, s.Turns)
	s.Turns = turns
	return s
}

// ContextRecord is one opaque briefing item (e.g. a tracked problem) passed
// through to the response generator's prompt. The orchestrator never branches
// on its content.
type ContextRecord struct {
	Title  string
	Detail string
}
