package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	mockedUseCase "github.com/rocketscienceinc/tictactoe-engine/mocks/usecase"
)

var errRedisDown = errors.New("redis down")

func newTestManager(t *testing.T, publisher outcomePublisherDep) *SessionManager {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSessionManager(logger, service.NewBotService(rand.NewSource(1)), publisher, false)
}

func TestSessionManager_CreateSession(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t, nil)

	// When: two sessions are created
	firstID, snapshot := manager.CreateSession(ctx)
	secondID, _ := manager.CreateSession(ctx)

	// Then: they get distinct ids and start as fresh bot games
	assert.NotEmpty(t, firstID)
	assert.NotEqual(t, firstID, secondID)
	assert.Equal(t, entity.ModeVsBot, snapshot.Mode)
	assert.True(t, snapshot.Active)
	assert.Equal(t, entity.Player1, snapshot.ActivePlayer)
}

func TestSessionManager_UnknownSession(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t, nil)

	_, err := manager.GetState(ctx, "missing")
	require.ErrorIs(t, err, apperror.ErrSessionNotFound)

	_, _, err = manager.PlayMove(ctx, "missing", 1)
	require.ErrorIs(t, err, apperror.ErrSessionNotFound)

	_, err = manager.SelectMode(ctx, "missing", entity.ModeTwoPlayer)
	require.ErrorIs(t, err, apperror.ErrSessionNotFound)

	_, err = manager.ResetRound(ctx, "missing")
	require.ErrorIs(t, err, apperror.ErrSessionNotFound)
}

func TestSessionManager_PlayMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Publishes the outcome when a round ends", func(t *testing.T) {
		// Given: a two player session and a publisher expecting one event
		publisher := mockedUseCase.NewMockoutcomePublisherDep(t)
		manager := newTestManager(t, publisher)
		sessionID, _ := manager.CreateSession(ctx)
		_, err := manager.SelectMode(ctx, sessionID, entity.ModeTwoPlayer)
		require.NoError(t, err)

		publisher.EXPECT().
			PublishOutcome(mock.Anything, mock.MatchedBy(func(event entity.OutcomeEvent) bool {
				return event.SessionID == sessionID &&
					event.Outcome.Winner == entity.Player1 &&
					event.Message == "Player X Wins!" &&
					event.Snapshot.Scores.Player1 == 1
			})).
			Return(nil).
			Once()

		// When: X wins the top row
		var snapshot entity.Snapshot
		for _, cell := range []int{1, 5, 2, 6, 3} {
			_, snapshot, err = manager.PlayMove(ctx, sessionID, cell)
			require.NoError(t, err)
		}

		// Then: the final snapshot shows the finished round
		assert.False(t, snapshot.Active)
		assert.Equal(t, 1, snapshot.Scores.Player1)
	})

	t.Run("Publisher failure does not fail the move", func(t *testing.T) {
		publisher := mockedUseCase.NewMockoutcomePublisherDep(t)
		manager := newTestManager(t, publisher)
		sessionID, _ := manager.CreateSession(ctx)
		_, err := manager.SelectMode(ctx, sessionID, entity.ModeTwoPlayer)
		require.NoError(t, err)

		publisher.EXPECT().
			PublishOutcome(mock.Anything, mock.AnythingOfType("entity.OutcomeEvent")).
			Return(errRedisDown).
			Once()

		outcome, snapshot := playCells(t, manager, sessionID, 1, 4, 2, 5, 3)

		assert.Equal(t, entity.OutcomeWin, outcome.Kind)
		assert.False(t, snapshot.Active)
	})

	t.Run("Rejected move returns the unchanged snapshot", func(t *testing.T) {
		manager := newTestManager(t, nil)
		sessionID, _ := manager.CreateSession(ctx)
		_, before, err := manager.PlayMove(ctx, sessionID, 5)
		require.NoError(t, err)

		_, after, err := manager.PlayMove(ctx, sessionID, 5)

		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		assert.Equal(t, before, after)
	})

	t.Run("Bot answers in bot mode", func(t *testing.T) {
		manager := newTestManager(t, nil)
		sessionID, _ := manager.CreateSession(ctx)

		result, snapshot, err := manager.PlayMove(ctx, sessionID, 5)

		require.NoError(t, err)
		require.Len(t, result.Moves, 2)
		assert.Equal(t, entity.Player2, result.Moves[1].Player)
		assert.Equal(t, entity.MarkO, snapshot.Board[result.Moves[1].Cell-1])
		assert.Equal(t, entity.Player1, snapshot.ActivePlayer)
	})
}

func playCells(t *testing.T, manager *SessionManager, sessionID string, cells ...int) (entity.Outcome, entity.Snapshot) {
	t.Helper()

	var outcome entity.Outcome
	var snapshot entity.Snapshot
	for _, cell := range cells {
		result, current, err := manager.PlayMove(context.Background(), sessionID, cell)
		require.NoError(t, err)
		outcome, snapshot = result.Outcome, current
	}
	return outcome, snapshot
}

func TestSessionManager_ResetAndMode(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t, nil)
	sessionID, _ := manager.CreateSession(ctx)
	_, err := manager.SelectMode(ctx, sessionID, entity.ModeTwoPlayer)
	require.NoError(t, err)

	// Given: X has won one round
	playCells(t, manager, sessionID, 1, 5, 2, 6, 3)

	// When: the round is reset
	snapshot, err := manager.ResetRound(ctx, sessionID)

	// Then: the score stays and the board is empty
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.Scores.Player1)
	assert.True(t, snapshot.Active)
	assert.Equal(t, [entity.CellCount]entity.Mark{}, snapshot.Board)

	// When: the mode is switched
	snapshot, err = manager.SelectMode(ctx, sessionID, entity.ModeVsBot)

	// Then: scores are cleared
	require.NoError(t, err)
	assert.Equal(t, entity.Scores{}, snapshot.Scores)
	assert.Equal(t, entity.ModeVsBot, snapshot.Mode)

	_, err = manager.SelectMode(ctx, sessionID, "chess")
	require.ErrorIs(t, err, apperror.ErrUnknownMode)
}

func TestSessionManager_CloseSession(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t, nil)
	sessionID, _ := manager.CreateSession(ctx)

	manager.CloseSession(ctx, sessionID)

	_, err := manager.GetState(ctx, sessionID)
	require.ErrorIs(t, err, apperror.ErrSessionNotFound)
}

func TestSessionManager_ConcurrentMoves(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t, nil)
	sessionID, _ := manager.CreateSession(ctx)
	_, err := manager.SelectMode(ctx, sessionID, entity.ModeTwoPlayer)
	require.NoError(t, err)

	// When: every cell is played from its own goroutine
	var wg sync.WaitGroup
	for cell := entity.MinCell; cell <= entity.MaxCell; cell++ {
		wg.Add(1)
		go func(cell int) {
			defer wg.Done()
			_, _, _ = manager.PlayMove(ctx, sessionID, cell)
		}(cell)
	}
	wg.Wait()

	// Then: the state is still consistent
	snapshot, err := manager.GetState(ctx, sessionID)
	require.NoError(t, err)

	var xs, os int
	for _, mark := range snapshot.Board {
		switch mark {
		case entity.MarkX:
			xs++
		case entity.MarkO:
			os++
		}
	}
	assert.Contains(t, []int{0, 1}, xs-os)
}
