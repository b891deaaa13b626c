package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"ai-boardroom-be/internal/constant"
	"ai-boardroom-be/internal/dto"
	"ai-boardroom-be/internal/entity"
	"ai-boardroom-be/internal/repository/memory"
	"ai-boardroom-be/internal/repository/specification"
	"ai-boardroom-be/internal/repository/unitofwork"
	"ai-boardroom-be/pkg/board/gate"
	"ai-boardroom-be/pkg/board/orchestrator"
	"ai-boardroom-be/pkg/board/persona"
	"ai-boardroom-be/pkg/board/phase"
	"ai-boardroom-be/pkg/board/response"
	"ai-boardroom-be/pkg/events"
	"ai-boardroom-be/pkg/llm"
	pktNats "ai-boardroom-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IBoardroomService defines the boardroom session interface
type IBoardroomService interface {
	CreateSession(ctx context.Context, userId uuid.UUID) (*dto.CreateSessionResponse, error)
	GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllSessionsResponse, error)
	GetSessionHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetSessionHistoryResponse, error)
	SendMessage(ctx context.Context, userId uuid.UUID, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	DeleteSession(ctx context.Context, userId uuid.UUID, request *dto.DeleteSessionRequest) error
}

// boardroomService coordinates the orchestrator, the specificity gate and
// persistence. The orchestrator owns turn-taking; this service owns the
// request/transaction boundary around it.
type boardroomService struct {
	uowFactory   unitofwork.RepositoryFactory
	registry     *persona.Registry
	plan         *phase.Plan
	orchestrator *orchestrator.Orchestrator
	gate         *gate.Gate
	runtimeRepo  *memory.RuntimeStateRepository

	eventPublisher *pktNats.Publisher
	pubSub         *gochannel.GoChannel
	summaryTopic   string

	boardLogger *log.Logger
}

func NewBoardroomService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	runtimeRepo *memory.RuntimeStateRepository,
	eventPublisher *pktNats.Publisher,
	pubSub *gochannel.GoChannel,
	summaryTopic string,
) IBoardroomService {

	boardLogger := initBoardLogger()

	registry := persona.DefaultRegistry()
	plan := phase.DefaultPlan()
	generator := response.NewGenerator(llmProvider, boardLogger)
	orch := orchestrator.New(registry, plan, generator, boardLogger)
	evaluator := gate.NewLLMEvaluator(llmProvider, boardLogger)

	return &boardroomService{
		uowFactory:     uowFactory,
		registry:       registry,
		plan:           plan,
		orchestrator:   orch,
		gate:           gate.New(evaluator, boardLogger),
		runtimeRepo:    runtimeRepo,
		eventPublisher: eventPublisher,
		pubSub:         pubSub,
		summaryTopic:   summaryTopic,
		boardLogger:    boardLogger,
	}
}

func initBoardLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_board.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM-BOARD] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

// CreateSession opens a new board session at phase 0 and persists the lead
// persona's opening question so history replay always starts with it.
func (bs *boardroomService) CreateSession(ctx context.Context, userId uuid.UUID) (*dto.CreateSessionResponse, error) {
	uow := bs.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()

	state := bs.orchestrator.NewState()
	opening, err := bs.orchestrator.OpeningMessage(state)
	if err != nil {
		return nil, err
	}

	session := entity.BoardSession{
		Id:              uuid.New(),
		UserId:          userId,
		Title:           constant.DefaultSessionTitle,
		PhaseIndex:      state.PhaseIndex,
		PromptIndex:     state.PromptIndex,
		ActivePersonaId: state.ActivePersonaId,
		CreatedAt:       now,
	}

	openingMessage := entity.BoardMessage{
		Id:             uuid.New(),
		BoardSessionId: session.Id,
		Role:           constant.BoardMessageRolePersona,
		Content:        opening.Message,
		PersonaId:      opening.Persona.Id,
		CreatedAt:      now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.BoardSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}
	if err := uow.BoardMessageRepository().Create(ctx, &openingMessage); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Seed the runtime cache; the opening question is part of the transcript
	// the generator replays.
	state.Turns = append(state.Turns, orchestrator.Turn{
		Role:      orchestrator.RolePersona,
		Content:   opening.Message,
		PersonaId: opening.Persona.Id,
	})
	bs.runtimeRepo.Save(session.Id.String(), &memory.SessionRuntime{State: state})

	return &dto.CreateSessionResponse{
		Id:      session.Id,
		Phase:   bs.plan.Phase(0).Name,
		Opening: bs.personaChat(&openingMessage),
	}, nil
}

// GetAllSessions retrieves all board sessions for a user
func (bs *boardroomService) GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllSessionsResponse, error) {
	uow := bs.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.BoardSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.GetAllSessionsResponse, 0, len(sessions))
	for _, s := range sessions {
		res = append(res, &dto.GetAllSessionsResponse{
			Id:          s.Id,
			Title:       s.Title,
			PhaseIndex:  s.PhaseIndex,
			Completed:   s.CompletedAt != nil,
			CreatedAt:   s.CreatedAt,
			UpdatedAt:   s.UpdatedAt,
			CompletedAt: s.CompletedAt,
		})
	}

	return res, nil
}

// GetSessionHistory replays a session transcript from Postgres
func (bs *boardroomService) GetSessionHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetSessionHistoryResponse, error) {
	uow := bs.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.BoardSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session not found or access denied")
	}

	messages, err := uow.BoardMessageRepository().FindAll(ctx,
		specification.ByBoardSessionID{BoardSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.GetSessionHistoryResponse, 0, len(messages))
	for _, msg := range messages {
		res = append(res, &dto.GetSessionHistoryResponse{
			Id:        msg.Id,
			Role:      msg.Role,
			Content:   msg.Content,
			Persona:   bs.personaDTO(msg.PersonaId),
			CreatedAt: msg.CreatedAt,
		})
	}

	return res, nil
}

// SendMessage runs one exchange: usage check, specificity gate, then either a
// gate challenge from the lead persona or a full orchestrator turn. All rows
// for one exchange are written in a single transaction.
func (bs *boardroomService) SendMessage(ctx context.Context, userId uuid.UUID, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	uow := bs.uowFactory.NewUnitOfWork(ctx)

	if err := bs.verifyUsageLimit(ctx, uow, userId); err != nil {
		return nil, err
	}

	session, err := uow.BoardSessionRepository().FindOne(ctx,
		specification.ByID{ID: request.BoardSessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session not found or access denied")
	}

	runtime, err := bs.loadRuntime(ctx, uow, session)
	if err != nil {
		return nil, err
	}

	currentPhase := bs.plan.Phase(runtime.State.PhaseIndex)
	now := time.Now()

	attempt := runtime.GateAttempts + 1
	gateResult := bs.gate.Evaluate(ctx, request.Content, gate.QuestionSpec{
		Rubric:            currentPhase.Rubric,
		MinWords:          currentPhase.MinWords,
		ChallengeMessages: currentPhase.ChallengeMessages,
	}, attempt, currentPhase.MaxAttempts)

	if !gateResult.Passed {
		return bs.sendChallenge(ctx, uow, session, runtime, request.Content, gateResult, now)
	}

	// Gate passed: hand the answer to the board.
	contextData, err := bs.loadBriefing(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	prevPhaseIndex := runtime.State.PhaseIndex
	reply, err := bs.orchestrator.Respond(ctx, runtime.State, request.Content, contextData)
	if err != nil {
		// State untouched; the error middleware maps this to a 502.
		return nil, err
	}

	newState := reply.NewState
	advanced := newState.PhaseIndex != prevPhaseIndex
	if !advanced {
		// Same phase: the lead moves to the next seed question.
		newState.PromptIndex++
	}

	userMessage := entity.BoardMessage{
		Id:             uuid.New(),
		BoardSessionId: session.Id,
		Role:           constant.BoardMessageRoleUser,
		Content:        request.Content,
		CreatedAt:      now,
	}
	personaMessage := entity.BoardMessage{
		Id:             uuid.New(),
		BoardSessionId: session.Id,
		Role:           constant.BoardMessageRolePersona,
		Content:        reply.Utterance,
		PersonaId:      reply.Persona.Id,
		CreatedAt:      now.Add(1 * time.Second),
	}

	session.PhaseIndex = newState.PhaseIndex
	session.PromptIndex = newState.PromptIndex
	session.ActivePersonaId = newState.ActivePersonaId
	session.LeadResponses = newState.LeadResponses
	justCompleted := reply.Completed && session.CompletedAt == nil
	if justCompleted {
		completedAt := now
		session.CompletedAt = &completedAt
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.BoardMessageRepository().CreateBulk(ctx, []*entity.BoardMessage{&userMessage, &personaMessage}); err != nil {
		return nil, err
	}
	if err := uow.BoardSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}
	if err := uow.UserRepository().IncrementBoardUsage(ctx, userId); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	runtime.State = newState
	runtime.GateAttempts = 0
	bs.runtimeRepo.Save(session.Id.String(), runtime)

	if advanced {
		bs.publishEvent(ctx, "BOARD_PHASE_ADVANCED", map[string]interface{}{
			"user_id":          userId.String(),
			"board_session_id": session.Id.String(),
			"phase_index":      newState.PhaseIndex,
			"phase_name":       bs.plan.Phase(newState.PhaseIndex).Name,
		})
	}
	if justCompleted {
		bs.publishEvent(ctx, "BOARD_SESSION_COMPLETED", map[string]interface{}{
			"user_id":          userId.String(),
			"board_session_id": session.Id.String(),
			"entity_type":      "board_session",
			"entity_id":        session.Id.String(),
		})
		bs.requestSummary(session.Id)
	}

	return &dto.SendMessageResponse{
		BoardSessionId: session.Id,
		Phase:          bs.plan.Phase(newState.PhaseIndex).Name,
		PhaseIndex:     newState.PhaseIndex,
		Completed:      reply.Completed,
		Challenged:     false,
		Sent:           bs.userChat(&userMessage),
		Reply:          bs.personaChat(&personaMessage),
	}, nil
}

// sendChallenge persists the user's answer plus the gate's challenge, spoken
// by the current lead persona. The orchestrator is not involved and the phase
// does not move.
func (bs *boardroomService) sendChallenge(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	session *entity.BoardSession,
	runtime *memory.SessionRuntime,
	userText string,
	gateResult gate.Result,
	now time.Time,
) (*dto.SendMessageResponse, error) {

	currentPhase := bs.plan.Phase(runtime.State.PhaseIndex)
	lead, ok := bs.registry.Get(currentPhase.LeadPersonaId)
	if !ok {
		return nil, fmt.Errorf("phase %q references unknown persona %q", currentPhase.Name, currentPhase.LeadPersonaId)
	}

	userMessage := entity.BoardMessage{
		Id:             uuid.New(),
		BoardSessionId: session.Id,
		Role:           constant.BoardMessageRoleUser,
		Content:        userText,
		CreatedAt:      now,
	}
	challengeMessage := entity.BoardMessage{
		Id:             uuid.New(),
		BoardSessionId: session.Id,
		Role:           constant.BoardMessageRolePersona,
		Content:        gateResult.ChallengeMessage,
		PersonaId:      lead.Id,
		CreatedAt:      now.Add(1 * time.Second),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.BoardMessageRepository().CreateBulk(ctx, []*entity.BoardMessage{&userMessage, &challengeMessage}); err != nil {
		return nil, err
	}
	if err := uow.UserRepository().IncrementBoardUsage(ctx, session.UserId); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// The challenge exchange stays in the transcript the generator replays.
	runtime.State.Turns = append(runtime.State.Turns,
		orchestrator.Turn{Role: orchestrator.RoleUser, Content: userText},
		orchestrator.Turn{Role: orchestrator.RolePersona, Content: gateResult.ChallengeMessage, PersonaId: lead.Id},
	)
	runtime.GateAttempts = gateResult.Attempt
	bs.runtimeRepo.Save(session.Id.String(), runtime)

	bs.boardLogger.Printf("[GATE] session %s attempt %d rejected: %s", session.Id, gateResult.Attempt, gateResult.Reason)

	return &dto.SendMessageResponse{
		BoardSessionId: session.Id,
		Phase:          currentPhase.Name,
		PhaseIndex:     runtime.State.PhaseIndex,
		Completed:      false,
		Challenged:     true,
		Sent:           bs.userChat(&userMessage),
		Reply:          bs.personaChat(&challengeMessage),
	}, nil
}

// DeleteSession removes a board session
func (bs *boardroomService) DeleteSession(ctx context.Context, userId uuid.UUID, request *dto.DeleteSessionRequest) error {
	uow := bs.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.BoardSessionRepository().FindOne(ctx,
		specification.ByID{ID: request.BoardSessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("session not found or access denied")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.BoardSessionRepository().Delete(ctx, request.BoardSessionId); err != nil {
		return err
	}
	if err := uow.BoardMessageRepository().DeleteByBoardSessionId(ctx, request.BoardSessionId); err != nil {
		return err
	}

	bs.runtimeRepo.Delete(request.BoardSessionId.String())

	return uow.Commit()
}

// verifyUsageLimit enforces the per-user daily message cap, resetting the
// counter on the first message of a new day.
func (bs *boardroomService) verifyUsageLimit(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) error {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user not found")
	}

	now := time.Now()
	if user.BoardDailyUsageLastReset.YearDay() != now.YearDay() || user.BoardDailyUsageLastReset.Year() != now.Year() {
		if err := uow.UserRepository().ResetBoardUsage(ctx, userId); err != nil {
			return err
		}
		return nil
	}

	limit := constant.DefaultBoardDailyLimit
	if user.BoardDailyLimitOverride != nil {
		limit = *user.BoardDailyLimitOverride
	}

	if user.BoardDailyUsage >= limit {
		resetAfter := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Add(24 * time.Hour)
		return &dto.LimitExceededError{
			Limit:      limit,
			Used:       user.BoardDailyUsage,
			ResetAfter: resetAfter,
		}
	}

	return nil
}

// loadRuntime fetches the cached runtime or rebuilds it from the session row
// and transcript after a cache eviction or restart.
func (bs *boardroomService) loadRuntime(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.BoardSession) (*memory.SessionRuntime, error) {
	if runtime, found := bs.runtimeRepo.Get(session.Id.String()); found {
		return runtime, nil
	}

	messages, err := uow.BoardMessageRepository().FindAll(ctx,
		specification.ByBoardSessionID{BoardSessionID: session.Id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	turns := make([]orchestrator.Turn, 0, len(messages))
	for _, msg := range messages {
		role := orchestrator.RoleUser
		if msg.Role == constant.BoardMessageRolePersona {
			role = orchestrator.RolePersona
		}
		turns = append(turns, orchestrator.Turn{
			Role:      role,
			Content:   msg.Content,
			PersonaId: msg.PersonaId,
		})
	}

	runtime := &memory.SessionRuntime{
		State: orchestrator.State{
			PhaseIndex:      session.PhaseIndex,
			PromptIndex:     session.PromptIndex,
			ActivePersonaId: session.ActivePersonaId,
			LeadResponses:   session.LeadResponses,
			Turns:           turns,
		},
	}
	bs.runtimeRepo.Save(session.Id.String(), runtime)
	bs.boardLogger.Printf("[RUNTIME] rebuilt state for session %s from %d messages", session.Id, len(messages))

	return runtime, nil
}

// loadBriefing collects the user's open problems as board briefing material.
func (bs *boardroomService) loadBriefing(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) ([]orchestrator.ContextRecord, error) {
	problems, err := uow.ProblemRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByStatus{Status: constant.ProblemStatusOpen},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	records := make([]orchestrator.ContextRecord, 0, len(problems))
	for _, p := range problems {
		records = append(records, orchestrator.ContextRecord{
			Title:  p.Title,
			Detail: p.Detail,
		})
	}
	return records, nil
}

func (bs *boardroomService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if bs.eventPublisher == nil {
		return
	}
	event := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := bs.eventPublisher.Publish(ctx, event); err != nil {
		bs.boardLogger.Printf("[WARN] Failed to publish %s event: %v", eventType, err)
	}
}

// requestSummary hands the completed session to the summary worker.
func (bs *boardroomService) requestSummary(sessionId uuid.UUID) {
	if bs.pubSub == nil {
		return
	}
	payload, err := json.Marshal(dto.SummarizeSessionMessage{BoardSessionId: sessionId})
	if err != nil {
		bs.boardLogger.Printf("[WARN] Failed to marshal summary request: %v", err)
		return
	}
	msg := message.NewMessage(uuid.New().String(), payload)
	if err := bs.pubSub.Publish(bs.summaryTopic, msg); err != nil {
		bs.boardLogger.Printf("[WARN] Failed to publish summary request: %v", err)
	}
}

func (bs *boardroomService) personaDTO(personaId string) *dto.PersonaDTO {
	if personaId == "" {
		return nil
	}
	p, ok := bs.registry.Get(personaId)
	if !ok {
		return &dto.PersonaDTO{Id: personaId}
	}
	return &dto.PersonaDTO{Id: p.Id, Name: p.Name, Title: p.Title}
}

func (bs *boardroomService) userChat(msg *entity.BoardMessage) *dto.SendMessageReplyChat {
	return &dto.SendMessageReplyChat{
		Id:        msg.Id,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func (bs *boardroomService) personaChat(msg *entity.BoardMessage) *dto.SendMessageReplyChat {
	return &dto.SendMessageReplyChat{
		Id:        msg.Id,
		Role:      msg.Role,
		Content:   msg.Content,
		Persona:   bs.personaDTO(msg.PersonaId),
		CreatedAt: msg.CreatedAt,
	}
}
