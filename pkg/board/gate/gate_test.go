package gate

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"
)

type mockEvaluator struct {
	verdict *Verdict
	err     error
	calls   int
}

func (m *mockEvaluator) Evaluate(ctx context.Context, rubric, answer string) (*Verdict, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.verdict, nil
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func testSpec() QuestionSpec {
	return QuestionSpec{
		Rubric:   "Must name a concrete event.",
		MinWords: 5,
		ChallengeMessages: []string{
			"first challenge",
			"second challenge",
			"third challenge",
		},
	}
}

func TestEvaluateTooBriefSkipsEvaluator(t *testing.T) {
	tests := []struct {
		name   string
		answer string
	}{
		{"empty answer", ""},
		{"whitespace only", "   \t  "},
		{"below minimum", "went fine thanks"},
		{"one under minimum", "it was pretty busy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := &mockEvaluator{verdict: &Verdict{IsSpecific: true}}
			g := New(eval, testLogger())

			res := g.Evaluate(context.Background(), tt.answer, testSpec(), 1, 3)

			if res.Passed {
				t.Errorf("Passed = true, want false")
			}
			if res.IsSpecific {
				t.Errorf("IsSpecific = true, want false")
			}
			if res.ChallengeMessage != TooBriefChallenge {
				t.Errorf("ChallengeMessage = %q, want fixed too-brief challenge", res.ChallengeMessage)
			}
			if eval.calls != 0 {
				t.Errorf("evaluator called %d times, want 0", eval.calls)
			}
		})
	}
}

func TestEvaluateExhaustionAcceptsRegardlessOfContent(t *testing.T) {
	tests := []struct {
		name        string
		attempt     int
		maxAttempts int
	}{
		{"at max", 3, 3},
		{"past max", 5, 3},
		{"single attempt budget", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := &mockEvaluator{verdict: &Verdict{IsSpecific: false, Reason: "vague"}}
			g := New(eval, testLogger())

			res := g.Evaluate(context.Background(), "this answer has enough words to pass the floor", testSpec(), tt.attempt, tt.maxAttempts)

			if !res.Passed {
				t.Errorf("Passed = false, want true")
			}
			if res.IsSpecific {
				t.Errorf("IsSpecific = true, want false (accepted on attempts, not merit)")
			}
			if res.Reason != "max attempts reached" {
				t.Errorf("Reason = %q, want %q", res.Reason, "max attempts reached")
			}
			if eval.calls != 0 {
				t.Errorf("evaluator called %d times, want 0", eval.calls)
			}
		})
	}
}

func TestEvaluateChallengeEscalation(t *testing.T) {
	tests := []struct {
		name        string
		attempt     int
		wantMessage string
	}{
		{"first attempt", 1, "first challenge"},
		{"second attempt", 2, "second challenge"},
		{"clamps to last entry", 9, "third challenge"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := &mockEvaluator{verdict: &Verdict{IsSpecific: false, Reason: "no concrete event"}}
			g := New(eval, testLogger())

			res := g.Evaluate(context.Background(), "plenty of words here but still not specific enough", testSpec(), tt.attempt, 10)

			if res.Passed {
				t.Errorf("Passed = true, want false")
			}
			if !strings.HasPrefix(res.ChallengeMessage, tt.wantMessage) {
				t.Errorf("ChallengeMessage = %q, want prefix %q", res.ChallengeMessage, tt.wantMessage)
			}
			if !strings.Contains(res.ChallengeMessage, "no concrete event") {
				t.Errorf("ChallengeMessage = %q, want evaluator reason appended", res.ChallengeMessage)
			}
			if eval.calls != 1 {
				t.Errorf("evaluator called %d times, want 1", eval.calls)
			}
		})
	}
}

func TestEvaluateEmptyChallengeList(t *testing.T) {
	eval := &mockEvaluator{verdict: &Verdict{IsSpecific: false}}
	g := New(eval, testLogger())

	spec := QuestionSpec{Rubric: "r", MinWords: 1, ChallengeMessages: nil}
	res := g.Evaluate(context.Background(), "some words", spec, 1, 3)

	if res.Passed {
		t.Fatalf("Passed = true, want false")
	}
	if res.ChallengeMessage == "" {
		t.Errorf("ChallengeMessage empty, want default challenge")
	}
}

func TestEvaluateFailOpen(t *testing.T) {
	eval := &mockEvaluator{err: errors.New("timeout contacting model")}
	g := New(eval, testLogger())

	res := g.Evaluate(context.Background(), "this answer has enough words to reach the evaluator", testSpec(), 1, 3)

	if !res.Passed {
		t.Errorf("Passed = false, want true (fail-open)")
	}
	if !res.IsSpecific {
		t.Errorf("IsSpecific = false, want true (fail-open)")
	}
	if res.ChallengeMessage != "" {
		t.Errorf("ChallengeMessage = %q, want empty", res.ChallengeMessage)
	}
}

func TestEvaluateMeritPass(t *testing.T) {
	eval := &mockEvaluator{verdict: &Verdict{IsSpecific: true, Reason: "names a concrete event"}}
	g := New(eval, testLogger())

	res := g.Evaluate(context.Background(), "on tuesday I shipped the quarterly report two days early", testSpec(), 2, 3)

	if !res.Passed || !res.IsSpecific {
		t.Fatalf("got Passed=%v IsSpecific=%v, want both true", res.Passed, res.IsSpecific)
	}
	if res.Reason != "names a concrete event" {
		t.Errorf("Reason = %q, want evaluator reason", res.Reason)
	}
	if res.Attempt != 2 {
		t.Errorf("Attempt = %d, want 2", res.Attempt)
	}
}
