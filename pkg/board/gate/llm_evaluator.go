package gate

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"ai-boardroom-be/pkg/llm"
)

// LLMEvaluator implements TextEvaluator over a chat-completion provider. The
// model is instructed to reply with a single JSON object; the first {...}
// block found in the reply is parsed. Anything else counts as evaluator
// failure, which the gate handles by failing open.
type LLMEvaluator struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewLLMEvaluator(provider llm.LLMProvider, logger *log.Logger) *LLMEvaluator {
	return &LLMEvaluator{
		provider: provider,
		logger:   logger,
	}
}

var _ TextEvaluator = (*LLMEvaluator)(nil)

func (e *LLMEvaluator) Evaluate(ctx context.Context, rubric, answer string) (*Verdict, error) {
	prompt := buildEvaluatorPrompt(rubric, answer)

	reply, err := e.provider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		return nil, fmt.Errorf("evaluator call failed: %w", err)
	}

	verdict, err := extractVerdict(reply)
	if err != nil {
		e.logger.Printf("[EVALUATOR] unparseable reply: %q", truncate(reply, 200))
		return nil, err
	}
	return verdict, nil
}

func buildEvaluatorPrompt(rubric, answer string) string {
	var b strings.Builder
	b.WriteString("<task>\n")
	b.WriteString("You are a strict evaluator of answer specificity. Judge the answer below against the rubric.\n")
	b.WriteString("Respond with ONLY a JSON object, no prose: {\"is_specific\": true|false, \"reason\": \"one short sentence\"}\n")
	b.WriteString("</task>\n\n")
	b.WriteString("<rubric>\n")
	b.WriteString(rubric)
	b.WriteString("\n</rubric>\n\n")
	b.WriteString("<answer>\n")
	b.WriteString(answer)
	b.WriteString("\n</answer>\n")
	return b.String()
}

// extractVerdict pulls the first JSON object out of the model's reply. Models
// sometimes wrap JSON in code fences or prose; taking the outermost braces
// tolerates both.
func extractVerdict(reply string) (*Verdict, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in evaluator reply")
	}

	var v Verdict
	if err := json.Unmarshal([]byte(reply[start:end+1]), &v); err != nil {
		return nil, fmt.Errorf("malformed evaluator JSON: %w", err)
	}
	return &v, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
