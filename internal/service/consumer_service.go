package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"ai-boardroom-be/internal/constant"
	"ai-boardroom-be/internal/dto"
	"ai-boardroom-be/internal/repository/specification"
	"ai-boardroom-be/internal/repository/unitofwork"
	"ai-boardroom-be/pkg/llm"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const summaryPrompt = `You are the secretary of a personal accountability board meeting.
Write a concise summary of the meeting transcript below: the commitments the member made,
the concerns the board raised, and the agreed next steps. Use short plain sentences.

Transcript:
%s`

// IConsumerService drains the summary work queue. When a board session
// completes, a summary of the transcript is generated off the request path and
// stored on the session row.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	uowFactory  unitofwork.RepositoryFactory
	llmProvider llm.LLMProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
) IConsumerService {
	return &consumerService{
		pubSub:      pubSub,
		topicName:   topicName,
		uowFactory:  uowFactory,
		llmProvider: llmProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.SummarizeSessionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal summary message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Summarizing board session %s", payload.BoardSessionId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.BoardSessionRepository().FindOne(ctx, specification.ByID{ID: payload.BoardSessionId})
	if err != nil {
		log.Printf("[ERROR] Failed to get session %s: %v", payload.BoardSessionId, err)
		msg.Nack()
		return
	}
	if session == nil {
		log.Printf("[WARN] Session not found: %s", payload.BoardSessionId)
		msg.Ack() // Session deleted? Ack.
		return
	}

	messages, err := uow.BoardMessageRepository().FindAll(ctx,
		specification.ByBoardSessionID{BoardSessionID: session.Id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		log.Printf("[ERROR] Failed to load transcript for session %s: %v", session.Id, err)
		msg.Nack()
		return
	}

	var sb strings.Builder
	for _, m := range messages {
		speaker := "Member"
		if m.Role == constant.BoardMessageRolePersona {
			speaker = m.PersonaId
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", speaker, m.Content))
	}

	summary, err := cs.llmProvider.Generate(ctx, fmt.Sprintf(summaryPrompt, sb.String()), llm.WithTemperature(0.3))
	if err != nil {
		log.Printf("[ERROR] Failed to generate summary for session %s: %v", session.Id, err)
		msg.Nack()
		return
	}

	session.Summary = &summary

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.BoardSessionRepository().Update(ctx, session); err != nil {
		log.Printf("[ERROR] Failed to store summary: %v", err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Stored summary for session %s (%d chars)", session.Id, len(summary))
	msg.Ack()
}
