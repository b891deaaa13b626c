package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"testing"

	"ai-boardroom-be/pkg/board/persona"
	"ai-boardroom-be/pkg/board/phase"
	"ai-boardroom-be/pkg/llm"
)

type fixedRand struct{ v float64 }

func (r fixedRand) Float64() float64 { return r.v }

var (
	alwaysInterject = fixedRand{0.0}
	neverInterject  = fixedRand{0.99}
)

type scriptedGenerator struct {
	reply string
	err   error
	calls []generatorCall
}

type generatorCall struct {
	contract    string
	priorTurns  []llm.Message
	instruction string
}

func (g *scriptedGenerator) Generate(ctx context.Context, systemContract string, priorTurns []llm.Message, instruction string) (string, error) {
	g.calls = append(g.calls, generatorCall{systemContract, priorTurns, instruction})
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func testBoard(t *testing.T) (*persona.Registry, *phase.Plan) {
	t.Helper()
	reg, err := persona.NewRegistry(
		persona.Persona{Id: "a", Name: "Director A", ToneContract: "contract-a", TriggerKeywords: []string{"alpha"}},
		persona.Persona{Id: "b", Name: "Director B", ToneContract: "contract-b", TriggerKeywords: []string{"bravo"}},
	)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	plan, err := phase.NewPlan(
		phase.Phase{Name: "first", LeadPersonaId: "a", SeedPrompts: []string{"opening question", "followup question"}},
		phase.Phase{Name: "second", LeadPersonaId: "b", SeedPrompts: []string{"second phase question"}},
	)
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}
	return reg, plan
}

func newTestOrchestrator(t *testing.T, gen ResponseGenerator, r Rand) *Orchestrator {
	t.Helper()
	reg, plan := testBoard(t)
	return New(reg, plan, gen, log.New(io.Discard, "", 0), WithRand(r))
}

func TestNewStateStartsAtPhaseZero(t *testing.T) {
	o := newTestOrchestrator(t, &scriptedGenerator{reply: "ok"}, neverInterject)
	st := o.NewState()

	if st.PhaseIndex != 0 || st.PromptIndex != 0 || len(st.Turns) != 0 {
		t.Errorf("NewState = %+v, want empty phase-0 state", st)
	}
	if st.ActivePersonaId != "a" {
		t.Errorf("ActivePersonaId = %q, want lead of phase 0", st.ActivePersonaId)
	}
}

func TestOpeningMessage(t *testing.T) {
	o := newTestOrchestrator(t, &scriptedGenerator{reply: "ok"}, neverInterject)
	st := o.NewState()

	op, err := o.OpeningMessage(st)
	if err != nil {
		t.Fatalf("OpeningMessage: %v", err)
	}
	if op.Message != "opening question" {
		t.Errorf("Message = %q, want first seed prompt", op.Message)
	}
	if op.Persona.Id != "a" {
		t.Errorf("Persona = %q, want lead of phase 0", op.Persona.Id)
	}

	// Prompt index selects later seed prompts; out-of-range clamps.
	st.PromptIndex = 1
	op, _ = o.OpeningMessage(st)
	if op.Message != "followup question" {
		t.Errorf("Message = %q, want second seed prompt", op.Message)
	}
}

func TestRespondAppendsExactlyTwoTurns(t *testing.T) {
	gen := &scriptedGenerator{reply: "board says hello"}
	o := newTestOrchestrator(t, gen, neverInterject)
	st := o.NewState()

	reply, err := o.Respond(context.Background(), st, "hello board", nil)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}

	if len(reply.NewState.Turns) != 2 {
		t.Fatalf("new state has %d turns, want 2", len(reply.NewState.Turns))
	}
	if reply.NewState.Turns[0].Role != RoleUser || reply.NewState.Turns[0].Content != "hello board" {
		t.Errorf("first turn = %+v, want user turn", reply.NewState.Turns[0])
	}
	if reply.NewState.Turns[1].Role != RolePersona || reply.NewState.Turns[1].PersonaId != "a" {
		t.Errorf("second turn = %+v, want lead persona turn", reply.NewState.Turns[1])
	}
	if reply.Utterance != "board says hello" {
		t.Errorf("Utterance = %q", reply.Utterance)
	}

	// Input state must be untouched.
	if len(st.Turns) != 0 {
		t.Errorf("input state mutated: %d turns", len(st.Turns))
	}
}

func TestRespondDoesNotMutateInputOnFailure(t *testing.T) {
	gen := &scriptedGenerator{err: errors.New("model is down")}
	o := newTestOrchestrator(t, gen, neverInterject)
	st := o.NewState()
	st.Turns = append(st.Turns, Turn{Role: RoleUser, Content: "earlier"})

	_, err := o.Respond(context.Background(), st, "hello", nil)
	if err == nil {
		t.Fatal("Respond error = nil, want generation failure")
	}
	if !errors.Is(err, ErrGenerationFailed) {
		t.Errorf("error = %v, want ErrGenerationFailed", err)
	}
	if len(st.Turns) != 1 {
		t.Errorf("input state has %d turns after failure, want 1 (unchanged)", len(st.Turns))
	}
}

func TestRespondAdvancesPhaseAfterLeadThreshold(t *testing.T) {
	gen := &scriptedGenerator{reply: "noted"}
	o := newTestOrchestrator(t, gen, neverInterject)
	st := o.NewState()
	st.PromptIndex = 1 // prove the advance resets it

	reply, err := o.Respond(context.Background(), st, "plain answer one", nil)
	if err != nil {
		t.Fatalf("Respond 1: %v", err)
	}
	if reply.NewState.PhaseIndex != 0 {
		t.Fatalf("PhaseIndex after 1 lead response = %d, want 0", reply.NewState.PhaseIndex)
	}

	reply, err = o.Respond(context.Background(), reply.NewState, "plain answer two", nil)
	if err != nil {
		t.Fatalf("Respond 2: %v", err)
	}

	st2 := reply.NewState
	if st2.PhaseIndex != 1 {
		t.Errorf("PhaseIndex after 2 lead responses = %d, want 1", st2.PhaseIndex)
	}
	if st2.PromptIndex != 0 {
		t.Errorf("PromptIndex after advance = %d, want 0", st2.PromptIndex)
	}
	if st2.ActivePersonaId != "b" {
		t.Errorf("ActivePersonaId after advance = %q, want %q", st2.ActivePersonaId, "b")
	}
	if st2.LeadResponses != 0 {
		t.Errorf("LeadResponses after advance = %d, want 0", st2.LeadResponses)
	}
}

func TestRespondNeverAdvancesPastLastPhase(t *testing.T) {
	gen := &scriptedGenerator{reply: "still here"}
	o := newTestOrchestrator(t, gen, neverInterject)

	st := State{PhaseIndex: 1, ActivePersonaId: "b"}
	for i := 0; i < 4; i++ {
		reply, err := o.Respond(context.Background(), st, fmt.Sprintf("message %d", i), nil)
		if err != nil {
			t.Fatalf("Respond %d: %v", i, err)
		}
		st = reply.NewState
		if st.PhaseIndex != 1 {
			t.Fatalf("PhaseIndex = %d after call %d, want clamp at 1", st.PhaseIndex, i)
		}
		if i >= 1 && !reply.Completed {
			t.Errorf("Completed = false after %d lead responses on last phase", i+1)
		}
	}
}

func TestRespondInterjection(t *testing.T) {
	tests := []struct {
		name          string
		rand          Rand
		userText      string
		wantPersonaId string
	}{
		{"keyword plus winning roll interjects", alwaysInterject, "thinking about bravo options", "b"},
		{"keyword but losing roll keeps lead", neverInterject, "thinking about bravo options", "a"},
		{"no keyword keeps lead even with winning roll", alwaysInterject, "nothing triggering here", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &scriptedGenerator{reply: "reply"}
			o := newTestOrchestrator(t, gen, tt.rand)
			st := o.NewState()

			reply, err := o.Respond(context.Background(), st, tt.userText, nil)
			if err != nil {
				t.Fatalf("Respond: %v", err)
			}
			if reply.Persona.Id != tt.wantPersonaId {
				t.Errorf("responding persona = %q, want %q", reply.Persona.Id, tt.wantPersonaId)
			}
			if reply.NewState.Turns[1].PersonaId != tt.wantPersonaId {
				t.Errorf("persona turn attributed to %q, want %q", reply.NewState.Turns[1].PersonaId, tt.wantPersonaId)
			}

			wantContract := "contract-a"
			if tt.wantPersonaId == "b" {
				wantContract = "contract-b"
			}
			if gen.calls[0].contract != wantContract {
				t.Errorf("generator got contract %q, want %q", gen.calls[0].contract, wantContract)
			}
		})
	}
}

func TestInterjectionDoesNotCountTowardPhaseAdvance(t *testing.T) {
	gen := &scriptedGenerator{reply: "interjection"}
	o := newTestOrchestrator(t, gen, alwaysInterject)
	st := o.NewState()

	for i := 0; i < 3; i++ {
		reply, err := o.Respond(context.Background(), st, "bravo bravo bravo", nil)
		if err != nil {
			t.Fatalf("Respond %d: %v", i, err)
		}
		st = reply.NewState
	}

	if st.PhaseIndex != 0 {
		t.Errorf("PhaseIndex = %d after interjections only, want 0", st.PhaseIndex)
	}
	if st.LeadResponses != 0 {
		t.Errorf("LeadResponses = %d, want 0", st.LeadResponses)
	}
}

func TestRespondPassesHistoryAndContext(t *testing.T) {
	gen := &scriptedGenerator{reply: "reply"}
	o := newTestOrchestrator(t, gen, neverInterject)

	st := o.NewState()
	st.Turns = append(st.Turns,
		Turn{Role: RolePersona, Content: "opening question", PersonaId: "a"},
		Turn{Role: RoleUser, Content: "my first answer"},
	)

	ctxData := []ContextRecord{{Title: "Chronic lateness", Detail: "missed 3 standups"}}
	_, err := o.Respond(context.Background(), st, "next answer", ctxData)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}

	call := gen.calls[0]
	if len(call.priorTurns) != 2 {
		t.Fatalf("generator got %d prior turns, want 2", len(call.priorTurns))
	}
	if call.priorTurns[0].Role != "assistant" || call.priorTurns[1].Role != "user" {
		t.Errorf("prior turn roles = %q/%q, want assistant/user", call.priorTurns[0].Role, call.priorTurns[1].Role)
	}
	if !strings.Contains(call.instruction, "Chronic lateness") {
		t.Errorf("instruction missing context record:\n%s", call.instruction)
	}
	if !strings.Contains(call.instruction, "next answer") {
		t.Errorf("instruction missing user message:\n%s", call.instruction)
	}
	if !strings.Contains(call.instruction, "first") {
		t.Errorf("instruction missing phase name:\n%s", call.instruction)
	}
}

func TestTwoPhaseScenario(t *testing.T) {
	// PhasePlan with 2 phases, leads a then b; two non-triggering responds
	// move the session to phase 1 with persona b active.
	gen := &scriptedGenerator{reply: "acknowledged"}
	o := newTestOrchestrator(t, gen, neverInterject)
	st := o.NewState()

	if st.ActivePersonaId != "a" {
		t.Fatalf("initial active persona = %q, want a", st.ActivePersonaId)
	}

	for i := 0; i < 2; i++ {
		reply, err := o.Respond(context.Background(), st, "a perfectly plain answer", nil)
		if err != nil {
			t.Fatalf("Respond %d: %v", i, err)
		}
		st = reply.NewState
	}

	if st.PhaseIndex != 1 {
		t.Errorf("PhaseIndex = %d, want 1", st.PhaseIndex)
	}
	if st.ActivePersonaId != "b" {
		t.Errorf("ActivePersonaId = %q, want b", st.ActivePersonaId)
	}
	if len(st.Turns) != 4 {
		t.Errorf("history has %d turns, want 4", len(st.Turns))
	}
}
