package service

import (
	"math/rand"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type BotService interface {
	ChooseMove(state entity.GameState) (int, error)
}

// botService picks uniformly among the empty cells. It never looks ahead.
type botService struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewBotService(source rand.Source) BotService {
	return &botService{
		rnd: rand.New(source), //nolint: gosec // the bot is not security sensitive
	}
}

func (that *botService) ChooseMove(state entity.GameState) (int, error) {
	availableCells := state.EmptyCells()
	if len(availableCells) == 0 {
		return 0, apperror.ErrNoMovesAvailable
	}

	that.mu.Lock()
	index := that.rnd.Intn(len(availableCells))
	that.mu.Unlock()

	return availableCells[index], nil
}
