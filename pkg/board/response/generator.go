package response

import (
	"context"
	"fmt"
	"log"

	"ai-boardroom-be/pkg/llm"
)

// Generator produces persona utterances over an LLM provider. Unlike a
// retrieval pipeline there is no fallback text here: a failed generation is
// returned as an error so the caller never shows a fabricated board reply.
type Generator struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewGenerator(provider llm.LLMProvider, logger *log.Logger) *Generator {
	return &Generator{
		provider: provider,
		logger:   logger,
	}
}

// Generate sends the persona's tone contract as the system message, replays
// the prior turns, and appends the composed instruction as the final user
// message.
func (g *Generator) Generate(ctx context.Context, systemContract string, priorTurns []llm.Message, instruction string) (string, error) {
	messages := make([]llm.Message, 0, len(priorTurns)+2)
	messages = append(messages, llm.Message{Role: "system", Content: systemContract})
	messages = append(messages, priorTurns...)
	messages = append(messages, llm.Message{Role: "user", Content: instruction})

	reply, err := g.provider.Chat(ctx, messages, llm.WithTemperature(0.8))
	if err != nil {
		g.logger.Printf("[GENERATION] LLM call failed: %v", err)
		return "", fmt.Errorf("llm chat: %w", err)
	}

	g.logger.Printf("[GENERATION] produced %d chars from %d prior turns", len(reply), len(priorTurns))
	return reply, nil
}
