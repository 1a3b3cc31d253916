package tictactoe

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type botPlayer interface {
	ChooseMove(state entity.GameState) (int, error)
}

// Observer is the renderer side of the engine. OnStateChanged fires after every
// transition, OnOutcome once per finished round.
type Observer interface {
	OnStateChanged(snapshot entity.Snapshot)
	OnOutcome(outcome entity.Outcome, snapshot entity.Snapshot)
}

// MoveResult describes what a single PlayMove call did: the human move and,
// in bot mode, the answer that was chained to it.
type MoveResult struct {
	Moves   []entity.Move  `json:"moves"`
	Outcome entity.Outcome `json:"outcome"`
}

// Engine owns one GameState. It is not safe for concurrent use; callers that
// share an engine must serialize access.
type Engine struct {
	logger *slog.Logger
	bot    botPlayer
	strict bool

	state     entity.GameState
	observers []Observer
}

func NewEngine(logger *slog.Logger, bot botPlayer, strict bool) *Engine {
	return &Engine{
		logger: logger.With("component", "engine"),
		bot:    bot,
		strict: strict,
		state:  entity.NewGameState(),
	}
}

func (that *Engine) Subscribe(observer Observer) {
	that.observers = append(that.observers, observer)
}

func (that *Engine) State() entity.GameState {
	return that.state
}

func (that *Engine) Snapshot() entity.Snapshot {
	return that.state.Snapshot()
}

// SelectMode - switches the mode and wipes board and scores, even when the mode is unchanged.
func (that *Engine) SelectMode(mode entity.Mode) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: %q", apperror.ErrUnknownMode, mode)
	}

	that.state.Mode = mode
	that.state.ClearBoard()
	that.state.Player1Score = 0
	that.state.Player2Score = 0

	that.logger.Debug("mode selected", "mode", mode)
	that.notifyState()

	return nil
}

// ResetRound - starts a new round in the same mode, scores are kept.
func (that *Engine) ResetRound() {
	that.state.ClearBoard()

	that.logger.Debug("round reset", "mode", that.state.Mode)
	that.notifyState()
}

// PlayMove - claims cell for the active player. In bot mode a move that does not
// end the round is answered by the bot before PlayMove returns.
func (that *Engine) PlayMove(cell int) (MoveResult, error) {
	if err := that.validateMove(cell); err != nil {
		return MoveResult{}, fmt.Errorf("%w: %w", apperror.ErrInvalidMove, err)
	}

	result := MoveResult{}

	move, outcome := that.applyMove(cell)
	result.Moves = append(result.Moves, move)
	result.Outcome = outcome

	if outcome.IsTerminal() || !that.botToMove() {
		return result, nil
	}

	botCell, err := that.bot.ChooseMove(that.state)
	if err != nil {
		that.invariantBreach(fmt.Errorf("bot failed to choose move: %w", err))
		return result, nil
	}

	if err = that.validateMove(botCell); err != nil {
		that.invariantBreach(fmt.Errorf("bot chose illegal cell %d: %w", botCell, err))
		return result, nil
	}

	move, outcome = that.applyMove(botCell)
	result.Moves = append(result.Moves, move)
	result.Outcome = outcome

	return result, nil
}

// validateMove - checks if the move is valid.
func (that *Engine) validateMove(cell int) error {
	if !that.state.Active {
		return apperror.ErrGameFinished
	}

	if !entity.IsValidCell(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.state.IsClaimed(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	return nil
}

func (that *Engine) applyMove(cell int) (entity.Move, entity.Outcome) {
	player := that.state.ActivePlayer
	move := entity.Move{Player: player, Cell: cell}

	if player == entity.Player2 {
		that.state.Player2Moves = that.state.Player2Moves.Add(cell)
	} else {
		that.state.Player1Moves = that.state.Player1Moves.Add(cell)
	}

	outcome := that.checkOutcome()
	if !outcome.IsTerminal() {
		that.state.ActivePlayer = player.Opponent()
	}

	that.notifyState()
	if outcome.IsTerminal() {
		that.logger.Debug("round finished", "outcome", outcome.Kind, "winner", outcome.Winner)
		that.notifyOutcome(outcome)
	}

	return move, outcome
}

// checkOutcome - player 1 is tested before player 2 on every line.
func (that *Engine) checkOutcome() entity.Outcome {
	for _, line := range entity.WinningLines {
		switch {
		case that.state.Player1Moves.ContainsAll(line):
			return that.finishRound(entity.WinOutcome(entity.Player1, line))
		case that.state.Player2Moves.ContainsAll(line):
			return that.finishRound(entity.WinOutcome(entity.Player2, line))
		}
	}

	if that.state.MoveCount() == entity.CellCount {
		return that.finishRound(entity.DrawOutcome())
	}

	return entity.ContinueOutcome()
}

func (that *Engine) finishRound(outcome entity.Outcome) entity.Outcome {
	that.state.Active = false
	that.state.LastOutcome = outcome

	switch outcome.Winner {
	case entity.Player1:
		that.state.Player1Score++
	case entity.Player2:
		that.state.Player2Score++
	}

	return outcome
}

func (that *Engine) botToMove() bool {
	return that.state.Mode == entity.ModeVsBot &&
		that.state.Active &&
		that.state.ActivePlayer == entity.Player2
}

// invariantBreach - panics in strict mode, otherwise the bot just skips its turn.
func (that *Engine) invariantBreach(err error) {
	if that.strict {
		panic(err)
	}

	that.logger.Error("engine invariant violated", "error", err)
}

func (that *Engine) notifyState() {
	if len(that.observers) == 0 {
		return
	}

	snapshot := that.state.Snapshot()
	for _, observer := range that.observers {
		observer.OnStateChanged(snapshot)
	}
}

func (that *Engine) notifyOutcome(outcome entity.Outcome) {
	if len(that.observers) == 0 {
		return
	}

	snapshot := that.state.Snapshot()
	for _, observer := range that.observers {
		observer.OnOutcome(outcome, snapshot)
	}
}
