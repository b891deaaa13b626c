package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"ai-boardroom-be/pkg/board/persona"
	"ai-boardroom-be/pkg/board/phase"
	"ai-boardroom-be/pkg/llm"
)

// ErrGenerationFailed wraps any response-generation failure. The caller gets
// the error and an unchanged state; no fallback text is ever fabricated.
var ErrGenerationFailed = errors.New("board response generation failed")

// Rand is the injectable randomness capability used for interjection rolls.
type Rand interface {
	Float64() float64
}

type stdRand struct{}

func (stdRand) Float64() float64 { return rand.Float64() }

// ResponseGenerator produces the next persona utterance. priorTurns carries
// role + content only; systemContract is the persona's tone contract.
type ResponseGenerator interface {
	Generate(ctx context.Context, systemContract string, priorTurns []llm.Message, instruction string) (string, error)
}

// Orchestrator owns the turn-by-turn progression of board sessions. It is
// stateless itself: all per-session data lives in the State values passed in
// and returned, so one orchestrator serves every session concurrently.
type Orchestrator struct {
	registry           *persona.Registry
	plan               *phase.Plan
	generator          ResponseGenerator
	rand               Rand
	interjectionChance float64
	logger             *log.Logger
}

type Option func(*Orchestrator)

// WithRand pins the randomness source, used by tests to force or forbid
// interjections.
func WithRand(r Rand) Option {
	return func(o *Orchestrator) { o.rand = r }
}

func WithInterjectionChance(chance float64) Option {
	return func(o *Orchestrator) { o.interjectionChance = chance }
}

func New(registry *persona.Registry, plan *phase.Plan, generator ResponseGenerator, logger *log.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		registry:           registry,
		plan:               plan,
		generator:          generator,
		rand:               stdRand{},
		interjectionChance: persona.InterjectionChance,
		logger:             logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// NewState returns the initial state: phase 0, empty history, phase 0's lead
// active.
func (o *Orchestrator) NewState() State {
	first := o.plan.Phase(0)
	return State{
		PhaseIndex:      0,
		PromptIndex:     0,
		ActivePersonaId: first.LeadPersonaId,
	}
}

// Opening is the deterministic seed utterance for the current phase.
type Opening struct {
	Message string
	Persona *persona.Persona
}

// OpeningMessage returns the current phase's seed prompt and lead persona.
// Pure; callable at any time, used to seed an empty session.
func (o *Orchestrator) OpeningMessage(state State) (*Opening, error) {
	cur := o.plan.Phase(state.PhaseIndex)
	lead, ok := o.registry.Get(cur.LeadPersonaId)
	if !ok {
		return nil, fmt.Errorf("phase %q references unknown persona %q", cur.Name, cur.LeadPersonaId)
	}
	return &Opening{
		Message: cur.SeedPrompt(state.PromptIndex),
		Persona: lead,
	}, nil
}

// Reply is the outcome of one successful Respond call.
type Reply struct {
	Utterance string
	Persona   *persona.Persona
	NewState  State
	Completed bool
}

// Respond advances the conversation by one exchange: picks the responding
// persona (lead, or an interjector rolled in via the Rand capability),
// generates the utterance, then appends exactly one user turn and one persona
// turn to a copy of state and applies the phase-advance rule. On generation
// failure nothing is appended and the input state is untouched.
func (o *Orchestrator) Respond(ctx context.Context, state State, userText string, contextData []ContextRecord) (*Reply, error) {
	cur := o.plan.Phase(state.PhaseIndex)
	lead, ok := o.registry.Get(cur.LeadPersonaId)
	if !ok {
		return nil, fmt.Errorf("phase %q references unknown persona %q", cur.Name, cur.LeadPersonaId)
	}

	responder := lead
	if candidate := o.registry.FirstInterjector(cur.LeadPersonaId, userText); candidate != nil {
		if o.rand.Float64() < o.interjectionChance {
			o.logger.Printf("[BOARD] %s interjects in phase %q", candidate.Name, cur.Name)
			responder = candidate
		}
	}

	history := historyMessages(state.Turns)
	instruction := buildInstruction(cur, responder, contextData, userText)

	utterance, err := o.generator.Generate(ctx, responder.ToneContract, history, instruction)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	newState := state.Clone()
	newState.Turns = append(newState.Turns,
		Turn{Role: RoleUser, Content: userText},
		Turn{Role: RolePersona, Content: utterance, PersonaId: responder.Id},
	)
	newState.ActivePersonaId = responder.Id
	if responder.Id == cur.LeadPersonaId {
		newState.LeadResponses++
	}

	next, completed := o.plan.Next(newState.PhaseIndex, newState.LeadResponses)
	if next != newState.PhaseIndex {
		newState.PhaseIndex = next
		newState.PromptIndex = 0
		newState.LeadResponses = 0
		newState.ActivePersonaId = o.plan.Phase(next).LeadPersonaId
		o.logger.Printf("[BOARD] advanced to phase %d (%s)", next, o.plan.Phase(next).Name)
	}

	return &Reply{
		Utterance: utterance,
		Persona:   responder,
		NewState:  newState,
		Completed: completed,
	}, nil
}

func historyMessages(turns []Turn) []llm.Message {
	msgs := make([]llm.Message, 0, len(turns))
	for _, t := range turns {
		role := "user"
		if t.Role == RolePersona {
			role = "assistant"
		}
		msgs = append(msgs, llm.Message{Role: role, Content: t.Content})
	}
	return msgs
}

func buildInstruction(cur phase.Phase, responder *persona.Persona, contextData []ContextRecord, userText string) string {
	var b strings.Builder

	b.WriteString("<meeting_state>\n")
	b.WriteString(fmt.Sprintf("Current phase: %s — %s\n", cur.Name, cur.Description))
	b.WriteString(fmt.Sprintf("You are speaking as %s (%s).\n", responder.Name, responder.Title))
	b.WriteString("</meeting_state>\n\n")

	if len(contextData) > 0 {
		b.WriteString("<briefing_materials>\n")
		b.WriteString("The user's tracked problems, for reference only:\n")
		for i, rec := range contextData {
			b.WriteString(fmt.Sprintf("%d. %s", i+1, rec.Title))
			if rec.Detail != "" {
				b.WriteString(" — ")
				b.WriteString(rec.Detail)
			}
			b.WriteString("\n")
		}
		b.WriteString("</briefing_materials>\n\n")
	}

	b.WriteString("<user_message>\n")
	b.WriteString(userText)
	b.WriteString("\n</user_message>\n\n")

	b.WriteString("Reply in character, addressing the user's message within the current phase. Do not announce the phase.")
	return b.String()
}
