package entity

import (
	"fmt"
	"math/bits"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	MinCell   = 1
	MaxCell   = 9
	CellCount = 9
	BoardSide = 3
)

type Mark string

const (
	MarkX     Mark = "X"
	MarkO     Mark = "O"
	MarkEmpty Mark = ""
)

// Player is the seat of a participant: player 1 always plays X, player 2 always plays O.
type Player int

const (
	NoPlayer Player = 0
	Player1  Player = 1
	Player2  Player = 2
)

func (that Player) Mark() Mark {
	switch that {
	case Player1:
		return MarkX
	case Player2:
		return MarkO
	default:
		return MarkEmpty
	}
}

func (that Player) Opponent() Player {
	if that == Player1 {
		return Player2
	}
	return Player1
}

type Mode string

const (
	ModeTwoPlayer Mode = "two_player"
	ModeVsBot     Mode = "bot"
)

// ParseMode - accepts the canonical names plus the short aliases used by the console.
func ParseMode(raw string) (Mode, error) {
	switch raw {
	case string(ModeTwoPlayer), "2p", "pvp":
		return ModeTwoPlayer, nil
	case string(ModeVsBot), "vsbot", "cpu":
		return ModeVsBot, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownMode, raw)
	}
}

func (that Mode) IsValid() bool {
	return that == ModeTwoPlayer || that == ModeVsBot
}

// WinningLines lists the eight triples in evaluation order: rows top to bottom,
// columns left to right, then the main and anti diagonals.
var WinningLines = [8][3]int{
	{1, 2, 3},
	{4, 5, 6},
	{7, 8, 9},
	{1, 4, 7},
	{2, 5, 8},
	{3, 6, 9},
	{1, 5, 9},
	{3, 5, 7},
}

func IsValidCell(cell int) bool {
	return cell >= MinCell && cell <= MaxCell
}

// CellPosition - maps a cell id to its zero-based row and column.
func CellPosition(cell int) (int, int, error) {
	if !IsValidCell(cell) {
		return 0, 0, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	index := cell - 1
	return index / BoardSide, index % BoardSide, nil
}

// MoveSet is a set of cell ids, bit n stands for cell n.
type MoveSet uint16

func (that MoveSet) Has(cell int) bool {
	if !IsValidCell(cell) {
		return false
	}
	return that&(1<<cell) != 0
}

func (that MoveSet) Add(cell int) MoveSet {
	if !IsValidCell(cell) {
		return that
	}
	return that | 1<<cell
}

func (that MoveSet) Len() int {
	return bits.OnesCount16(uint16(that))
}

func (that MoveSet) ContainsAll(line [3]int) bool {
	for _, cell := range line {
		if !that.Has(cell) {
			return false
		}
	}
	return true
}

// Cells - returns the claimed cell ids in ascending order.
func (that MoveSet) Cells() []int {
	cells := make([]int, 0, that.Len())
	for cell := MinCell; cell <= MaxCell; cell++ {
		if that.Has(cell) {
			cells = append(cells, cell)
		}
	}
	return cells
}

type Move struct {
	Player Player `json:"player"`
	Cell   int    `json:"cell"`
}

type GameState struct {
	ActivePlayer Player
	Player1Moves MoveSet
	Player2Moves MoveSet
	Mode         Mode
	Active       bool
	Player1Score int
	Player2Score int
	LastOutcome  Outcome
}

func NewGameState() GameState {
	return GameState{
		ActivePlayer: Player1,
		Mode:         ModeVsBot,
		Active:       true,
		LastOutcome:  ContinueOutcome(),
	}
}

func (that GameState) IsClaimed(cell int) bool {
	return that.Player1Moves.Has(cell) || that.Player2Moves.Has(cell)
}

func (that GameState) MoveCount() int {
	return that.Player1Moves.Len() + that.Player2Moves.Len()
}

// EmptyCells - returns the unclaimed cell ids in ascending order.
func (that GameState) EmptyCells() []int {
	cells := make([]int, 0, CellCount-that.MoveCount())
	for cell := MinCell; cell <= MaxCell; cell++ {
		if !that.IsClaimed(cell) {
			cells = append(cells, cell)
		}
	}
	return cells
}

func (that GameState) MarkAt(cell int) Mark {
	switch {
	case that.Player1Moves.Has(cell):
		return MarkX
	case that.Player2Moves.Has(cell):
		return MarkO
	default:
		return MarkEmpty
	}
}

// Board - index 0 holds cell 1.
func (that GameState) Board() [CellCount]Mark {
	var board [CellCount]Mark
	for cell := MinCell; cell <= MaxCell; cell++ {
		board[cell-1] = that.MarkAt(cell)
	}
	return board
}

// ClearBoard - empties both move sets and hands the turn back to player 1.
func (that *GameState) ClearBoard() {
	that.Player1Moves = 0
	that.Player2Moves = 0
	that.ActivePlayer = Player1
	that.Active = true
	that.LastOutcome = ContinueOutcome()
}
