package service

import (
	"math/rand"
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBotService_ChooseMove(t *testing.T) {
	t.Run("Chooses only empty cells", func(t *testing.T) {
		// Given: a board where only cells 4 and 8 are free
		state := entity.NewGameState()
		for _, cell := range []int{1, 3, 5, 9} {
			state.Player1Moves = state.Player1Moves.Add(cell)
		}
		for _, cell := range []int{2, 6, 7} {
			state.Player2Moves = state.Player2Moves.Add(cell)
		}
		bot := NewBotService(rand.NewSource(42))

		// When: the bot chooses many times
		for range 100 {
			cell, err := bot.ChooseMove(state)

			// Then: every choice is one of the free cells
			require.NoError(t, err)
			assert.Contains(t, []int{4, 8}, cell)
		}
	})

	t.Run("Returns the last free cell", func(t *testing.T) {
		// Given: a board with only cell 7 free
		state := entity.NewGameState()
		for _, cell := range []int{1, 2, 6, 8, 9} {
			state.Player1Moves = state.Player1Moves.Add(cell)
		}
		for _, cell := range []int{3, 4, 5} {
			state.Player2Moves = state.Player2Moves.Add(cell)
		}
		bot := NewBotService(rand.NewSource(1))

		// When: the bot chooses
		cell, err := bot.ChooseMove(state)

		// Then: it must pick cell 7
		require.NoError(t, err)
		assert.Equal(t, 7, cell)
	})

	t.Run("Fails on a full board", func(t *testing.T) {
		// Given: a full board
		state := entity.NewGameState()
		for _, cell := range []int{1, 3, 4, 8, 9} {
			state.Player1Moves = state.Player1Moves.Add(cell)
		}
		for _, cell := range []int{2, 5, 6, 7} {
			state.Player2Moves = state.Player2Moves.Add(cell)
		}
		bot := NewBotService(rand.NewSource(1))

		// When: the bot is asked for a move
		_, err := bot.ChooseMove(state)

		// Then: ErrNoMovesAvailable is returned
		require.ErrorIs(t, err, apperror.ErrNoMovesAvailable)
	})

	t.Run("Same seed gives same choices", func(t *testing.T) {
		state := entity.NewGameState()
		first := NewBotService(rand.NewSource(7))
		second := NewBotService(rand.NewSource(7))

		for range 20 {
			a, err := first.ChooseMove(state)
			require.NoError(t, err)
			b, err := second.ChooseMove(state)
			require.NoError(t, err)

			assert.Equal(t, a, b)
		}
	})

	t.Run("Covers every empty cell", func(t *testing.T) {
		// Given: an empty board
		state := entity.NewGameState()
		bot := NewBotService(rand.NewSource(3))

		// When: the bot chooses many times
		seen := make(map[int]int)
		for range 2000 {
			cell, err := bot.ChooseMove(state)
			require.NoError(t, err)
			seen[cell]++
		}

		// Then: each of the nine cells shows up
		assert.Len(t, seen, entity.CellCount)
		for cell, hits := range seen {
			assert.Greater(t, hits, 100, "cell %d", cell)
		}
	})
}
