package gate

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// TooBriefChallenge is the fixed rejection shown when an answer fails the
// word-count floor. No evaluator call is made on that path.
const TooBriefChallenge = "That answer is too brief for the board. Please give a fuller, more specific answer."

// defaultChallenge covers the edge case of a question configured with an
// empty challenge list.
const defaultChallenge = "The board needs more specifics than that. Please try again with concrete details."

// Verdict is the evaluator's judgment of one answer against one rubric.
type Verdict struct {
	IsSpecific bool   `json:"is_specific"`
	Reason     string `json:"reason"`
}

// TextEvaluator judges whether an answer satisfies a rubric. Implementations
// fail with an error on timeout or malformed output; the gate converts every
// such failure into acceptance (fail-open).
type TextEvaluator interface {
	Evaluate(ctx context.Context, rubric, answer string) (*Verdict, error)
}

// QuestionSpec is the per-question acceptance configuration.
type QuestionSpec struct {
	Rubric            string
	MinWords          int
	ChallengeMessages []string
}

// Result is the outcome of one gate evaluation. It is always a value, never
// an error: every failure mode of the gate resolves into a Result.
type Result struct {
	Passed           bool
	IsSpecific       bool
	Reason           string
	ChallengeMessage string
	Attempt          int
}

// Gate decides whether a free-text answer is specific enough to accept. It is
// stateless across calls; the attempt counter is round-tripped by the caller.
type Gate struct {
	evaluator TextEvaluator
	logger    *log.Logger
}

func New(evaluator TextEvaluator, logger *log.Logger) *Gate {
	return &Gate{
		evaluator: evaluator,
		logger:    logger,
	}
}

// Evaluate runs one answer through the gate.
//
// Order of checks:
//  1. word-count floor: cheap deterministic rejection, evaluator not invoked;
//  2. exhaustion floor: at maxAttempts the answer is accepted on attempts,
//     not merit, so the protocol always terminates;
//  3. merit: the evaluator decides; a negative verdict picks the escalating
//     challenge for this attempt;
//  4. evaluator failure: accepted as specific (fail-open) so an unavailable
//     evaluator never blocks the user.
func (g *Gate) Evaluate(ctx context.Context, answer string, spec QuestionSpec, attempt, maxAttempts int) Result {
	if attempt < 1 {
		attempt = 1
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	if countWords(answer) < spec.MinWords {
		return Result{
			Passed:           false,
			IsSpecific:       false,
			Reason:           "answer below minimum word count",
			ChallengeMessage: TooBriefChallenge,
			Attempt:          attempt,
		}
	}

	if attempt >= maxAttempts {
		return Result{
			Passed:     true,
			IsSpecific: false,
			Reason:     "max attempts reached",
			Attempt:    attempt,
		}
	}

	verdict, err := g.evaluator.Evaluate(ctx, spec.Rubric, answer)
	if err != nil {
		// Fail open: availability over strictness. Logged, never surfaced.
		g.logger.Printf("[GATE] evaluator unavailable, accepting answer: %v", err)
		return Result{
			Passed:     true,
			IsSpecific: true,
			Reason:     "evaluator unavailable, accepted",
			Attempt:    attempt,
		}
	}

	if verdict.IsSpecific {
		return Result{
			Passed:     true,
			IsSpecific: true,
			Reason:     verdict.Reason,
			Attempt:    attempt,
		}
	}

	return Result{
		Passed:           false,
		IsSpecific:       false,
		Reason:           verdict.Reason,
		ChallengeMessage: challengeFor(spec.ChallengeMessages, attempt, verdict.Reason),
		Attempt:          attempt,
	}
}

// challengeFor picks the attempt-th escalating challenge, holding at the last
// entry instead of indexing out of bounds, and appends the evaluator's reason.
func challengeFor(messages []string, attempt int, reason string) string {
	if len(messages) == 0 {
		messages = []string{defaultChallenge}
	}
	idx := attempt
	if idx > len(messages) {
		idx = len(messages)
	}
	msg := messages[idx-1]
	if reason != "" {
		msg = fmt.Sprintf("%s (%s)", msg, reason)
	}
	return msg
}

func countWords(s string) int {
	return len(strings.Fields(s))
}
