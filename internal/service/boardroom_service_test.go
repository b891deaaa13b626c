package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-boardroom-be/internal/dto"
	"ai-boardroom-be/internal/entity"
	"ai-boardroom-be/internal/repository/memory"
	"ai-boardroom-be/pkg/board/gate"
	"ai-boardroom-be/pkg/board/orchestrator"
	"ai-boardroom-be/pkg/board/persona"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const passVerdict = `{"is_specific": true, "reason": "concrete"}`

// Keyword-free so no director interjects and the lead always answers.
const specificAnswer = "Last week I finished three chapters and sent them to my editor for review."

func newBoardroomFixture(provider *fakeLLM) (IBoardroomService, *fakeUnitOfWork, uuid.UUID) {
	uow := newFakeUnitOfWork()
	userId := uuid.New()
	uow.users.users[userId] = &entity.User{
		Id:                       userId,
		Email:                    "member@board.example",
		BoardDailyUsageLastReset: time.Now(),
	}

	svc := NewBoardroomService(
		&fakeUowFactory{uow: uow},
		provider,
		memory.NewRuntimeStateRepository(),
		nil, // no NATS in unit tests
		nil, // no summary bus in unit tests
		"SUMMARIZE_BOARD_SESSION",
	)
	return svc, uow, userId
}

func TestCreateSessionOpensWithChairQuestion(t *testing.T) {
	svc, uow, userId := newBoardroomFixture(&fakeLLM{})

	res, err := svc.CreateSession(context.Background(), userId)
	assert.NoError(t, err)
	assert.Equal(t, "Opening Check-In", res.Phase)
	assert.NotNil(t, res.Opening)
	assert.Equal(t, persona.IdChair, res.Opening.Persona.Id)

	assert.Len(t, uow.sessions.sessions, 1)
	assert.Len(t, uow.messages.messages, 1)
	assert.Equal(t, "persona", uow.messages.messages[0].Role)
	assert.Equal(t, res.Opening.Content, uow.messages.messages[0].Content)
}

func TestSendMessageTooBriefIsChallenged(t *testing.T) {
	provider := &fakeLLM{}
	svc, uow, userId := newBoardroomFixture(provider)

	created, err := svc.CreateSession(context.Background(), userId)
	assert.NoError(t, err)

	res, err := svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{
		BoardSessionId: created.Id,
		Content:        "Fine.",
	})
	assert.NoError(t, err)
	assert.True(t, res.Challenged)
	assert.False(t, res.Completed)
	assert.Equal(t, 0, res.PhaseIndex)
	assert.Equal(t, gate.TooBriefChallenge, res.Reply.Content)

	// Word-count floor rejects before any model call.
	assert.Equal(t, 0, provider.generateCalls)
	assert.Equal(t, 0, provider.chatCalls)

	// Challenge exchanges still cost daily usage and land in the transcript.
	assert.Equal(t, 1, uow.users.users[userId].BoardDailyUsage)
	assert.Len(t, uow.messages.messages, 3)
}

func TestSendMessageSpecificAnswerGetsBoardReply(t *testing.T) {
	provider := &fakeLLM{generateReply: passVerdict, chatReply: "Noted. Let's keep that pace up."}
	svc, uow, userId := newBoardroomFixture(provider)

	created, err := svc.CreateSession(context.Background(), userId)
	assert.NoError(t, err)

	res, err := svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{
		BoardSessionId: created.Id,
		Content:        specificAnswer,
	})
	assert.NoError(t, err)
	assert.False(t, res.Challenged)
	assert.Equal(t, "Noted. Let's keep that pace up.", res.Reply.Content)
	assert.Equal(t, 1, provider.generateCalls, "evaluator judges the answer once")
	assert.Equal(t, 1, provider.chatCalls, "one persona reply generated")

	// One lead response is not enough to advance; the next seed prompt is queued.
	assert.Equal(t, 0, res.PhaseIndex)
	session := uow.sessions.sessions[created.Id]
	assert.Equal(t, 1, session.PromptIndex)
	assert.Equal(t, 1, uow.users.users[userId].BoardDailyUsage)
	assert.Len(t, uow.messages.messages, 3)
}

func TestSecondLeadResponseAdvancesPhase(t *testing.T) {
	provider := &fakeLLM{generateReply: passVerdict, chatReply: "Understood."}
	svc, uow, userId := newBoardroomFixture(provider)

	created, err := svc.CreateSession(context.Background(), userId)
	assert.NoError(t, err)

	for i := 0; i < 2; i++ {
		res, err := svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{
			BoardSessionId: created.Id,
			Content:        specificAnswer,
		})
		assert.NoError(t, err)
		if i == 1 {
			assert.Equal(t, 1, res.PhaseIndex)
			assert.Equal(t, "Commitment Review", res.Phase)
		}
	}

	session := uow.sessions.sessions[created.Id]
	assert.Equal(t, 1, session.PhaseIndex)
	assert.Equal(t, 0, session.PromptIndex, "advancement resets the seed prompt cursor")
	assert.Equal(t, persona.IdOperator, session.ActivePersonaId)
}

func TestGenerationFailureLeavesSessionUntouched(t *testing.T) {
	provider := &fakeLLM{generateReply: passVerdict, chatErr: errors.New("model unavailable")}
	svc, uow, userId := newBoardroomFixture(provider)

	created, err := svc.CreateSession(context.Background(), userId)
	assert.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{
		BoardSessionId: created.Id,
		Content:        specificAnswer,
	})
	assert.ErrorIs(t, err, orchestrator.ErrGenerationFailed)

	// Nothing persisted, nothing charged: the exchange never happened.
	assert.Len(t, uow.messages.messages, 1)
	assert.Equal(t, 0, uow.users.users[userId].BoardDailyUsage)
	assert.Equal(t, 0, uow.sessions.sessions[created.Id].PromptIndex)
}

func TestEvaluatorFailureFailsOpen(t *testing.T) {
	provider := &fakeLLM{generateErr: errors.New("evaluator timeout"), chatReply: "Let's proceed."}
	svc, _, userId := newBoardroomFixture(provider)

	created, err := svc.CreateSession(context.Background(), userId)
	assert.NoError(t, err)

	res, err := svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{
		BoardSessionId: created.Id,
		Content:        specificAnswer,
	})
	assert.NoError(t, err)
	assert.False(t, res.Challenged, "an unavailable evaluator must never block the user")
	assert.Equal(t, "Let's proceed.", res.Reply.Content)
}

func TestSendMessageEnforcesDailyLimit(t *testing.T) {
	provider := &fakeLLM{generateReply: passVerdict, chatReply: "Noted."}
	svc, uow, userId := newBoardroomFixture(provider)

	created, err := svc.CreateSession(context.Background(), userId)
	assert.NoError(t, err)

	uow.users.users[userId].BoardDailyUsage = 30

	_, err = svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{
		BoardSessionId: created.Id,
		Content:        specificAnswer,
	})

	var limitErr *dto.LimitExceededError
	assert.True(t, errors.As(err, &limitErr))
	assert.Equal(t, 30, limitErr.Limit)
	assert.Equal(t, 30, limitErr.Used)
}

func TestDeleteSessionRemovesTranscript(t *testing.T) {
	svc, uow, userId := newBoardroomFixture(&fakeLLM{})

	created, err := svc.CreateSession(context.Background(), userId)
	assert.NoError(t, err)

	// A stranger cannot delete it.
	err = svc.DeleteSession(context.Background(), uuid.New(), &dto.DeleteSessionRequest{BoardSessionId: created.Id})
	assert.Error(t, err)

	err = svc.DeleteSession(context.Background(), userId, &dto.DeleteSessionRequest{BoardSessionId: created.Id})
	assert.NoError(t, err)
	assert.Empty(t, uow.sessions.sessions)
	assert.Empty(t, uow.messages.messages)
}
