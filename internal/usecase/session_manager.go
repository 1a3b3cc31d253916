package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type botPlayer interface {
	ChooseMove(state entity.GameState) (int, error)
}

type outcomePublisherDep interface {
	PublishOutcome(ctx context.Context, event entity.OutcomeEvent) error
}

// session is one game; mu is held for the whole processing of a move.
type session struct {
	mu     sync.Mutex
	engine *tictactoe.Engine
}

type SessionManager struct {
	logger    *slog.Logger
	bot       botPlayer
	publisher outcomePublisherDep
	strict    bool

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewSessionManager - publisher may be nil, outcomes are then only logged.
func NewSessionManager(logger *slog.Logger, bot botPlayer, publisher outcomePublisherDep, strict bool) *SessionManager {
	return &SessionManager{
		logger:    logger.With("component", "session_manager"),
		bot:       bot,
		publisher: publisher,
		strict:    strict,
		sessions:  make(map[string]*session),
	}
}

func (that *SessionManager) CreateSession(_ context.Context) (string, entity.Snapshot) {
	sessionID := uuid.NewString()
	newSession := &session{
		engine: tictactoe.NewEngine(that.logger.With("session", sessionID), that.bot, that.strict),
	}

	that.mu.Lock()
	that.sessions[sessionID] = newSession
	that.mu.Unlock()

	that.logger.Info("session created", "session", sessionID)

	return sessionID, newSession.engine.Snapshot()
}

func (that *SessionManager) SelectMode(_ context.Context, sessionID string, mode entity.Mode) (entity.Snapshot, error) {
	current, err := that.getSession(sessionID)
	if err != nil {
		return entity.Snapshot{}, err
	}

	current.mu.Lock()
	defer current.mu.Unlock()

	if err = current.engine.SelectMode(mode); err != nil {
		return entity.Snapshot{}, fmt.Errorf("failed to select mode: %w", err)
	}

	return current.engine.Snapshot(), nil
}

func (that *SessionManager) PlayMove(ctx context.Context, sessionID string, cell int) (tictactoe.MoveResult, entity.Snapshot, error) {
	log := that.logger.With("method", "PlayMove", "session", sessionID)

	current, err := that.getSession(sessionID)
	if err != nil {
		return tictactoe.MoveResult{}, entity.Snapshot{}, err
	}

	current.mu.Lock()
	result, err := current.engine.PlayMove(cell)
	snapshot := current.engine.Snapshot()
	current.mu.Unlock()

	if err != nil {
		return tictactoe.MoveResult{}, snapshot, fmt.Errorf("failed to play move: %w", err)
	}

	if result.Outcome.IsTerminal() {
		log.Info("round finished", "outcome", result.Outcome.Kind, "winner", result.Outcome.Winner)
		that.publishOutcome(ctx, sessionID, result.Outcome, snapshot)
	}

	return result, snapshot, nil
}

func (that *SessionManager) ResetRound(_ context.Context, sessionID string) (entity.Snapshot, error) {
	current, err := that.getSession(sessionID)
	if err != nil {
		return entity.Snapshot{}, err
	}

	current.mu.Lock()
	defer current.mu.Unlock()

	current.engine.ResetRound()

	return current.engine.Snapshot(), nil
}

func (that *SessionManager) GetState(_ context.Context, sessionID string) (entity.Snapshot, error) {
	current, err := that.getSession(sessionID)
	if err != nil {
		return entity.Snapshot{}, err
	}

	current.mu.Lock()
	defer current.mu.Unlock()

	return current.engine.Snapshot(), nil
}

func (that *SessionManager) CloseSession(_ context.Context, sessionID string) {
	that.mu.Lock()
	delete(that.sessions, sessionID)
	that.mu.Unlock()

	that.logger.Info("session closed", "session", sessionID)
}

func (that *SessionManager) getSession(sessionID string) (*session, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	current, ok := that.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, sessionID)
	}

	return current, nil
}

func (that *SessionManager) publishOutcome(ctx context.Context, sessionID string, outcome entity.Outcome, snapshot entity.Snapshot) {
	if that.publisher == nil {
		return
	}

	event := entity.OutcomeEvent{
		SessionID: sessionID,
		Outcome:   outcome,
		Message:   outcome.Message(snapshot.Mode),
		Snapshot:  snapshot,
	}

	if err := that.publisher.PublishOutcome(ctx, event); err != nil {
		that.logger.Error("failed to publish outcome", "session", sessionID, "error", err)
	}
}
