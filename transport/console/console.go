package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const helpText = `commands:
  1-9        claim a cell (row-major, 1 is top left)
  mode bot   play against the bot (resets scores)
  mode 2p    two players on one keyboard (resets scores)
  restart    start a new round, scores are kept
  board      show the board again
  quit       leave
`

// Console is a terminal renderer and input source for one engine.
type Console struct {
	logger *slog.Logger
	engine *tictactoe.Engine
	in     io.Reader
	out    io.Writer
}

func New(logger *slog.Logger, engine *tictactoe.Engine, in io.Reader, out io.Writer) *Console {
	console := &Console{
		logger: logger.With("component", "console"),
		engine: engine,
		in:     in,
		out:    out,
	}

	engine.Subscribe(console)

	return console
}

// Run - reads commands until quit, EOF or ctx is done.
func (that *Console) Run(ctx context.Context) error {
	that.printf("tic-tac-toe, type 'help' for commands\n")
	that.render(that.engine.Snapshot())

	scanner := bufio.NewScanner(that.in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}

		if quit := that.execute(strings.TrimSpace(scanner.Text())); quit {
			that.printf("bye\n")
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}

func (that *Console) execute(line string) bool {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		that.printf("%s", helpText)
	case "board":
		that.render(that.engine.Snapshot())
	case "restart", "r":
		that.engine.ResetRound()
	case "mode":
		if len(fields) < 2 {
			that.printf("usage: mode bot|2p\n")
			return false
		}
		that.selectMode(fields[1])
	default:
		that.playMove(fields[0])
	}

	return false
}

func (that *Console) selectMode(raw string) {
	mode, err := entity.ParseMode(raw)
	if err != nil {
		that.printf("unknown mode %q, use bot or 2p\n", raw)
		return
	}

	if err = that.engine.SelectMode(mode); err != nil {
		that.logger.Error("failed to select mode", "error", err)
	}
}

func (that *Console) playMove(raw string) {
	cell, err := strconv.Atoi(raw)
	if err != nil {
		that.printf("unknown command %q, type 'help'\n", raw)
		return
	}

	if _, err = that.engine.PlayMove(cell); err != nil {
		switch {
		case errors.Is(err, apperror.ErrGameFinished):
			that.printf("round is over, type 'restart'\n")
		case errors.Is(err, apperror.ErrCellOccupied):
			that.printf("cell %d is taken\n", cell)
		default:
			that.printf("pick a cell between %d and %d\n", entity.MinCell, entity.MaxCell)
		}
	}
}

func (that *Console) OnStateChanged(snapshot entity.Snapshot) {
	that.render(snapshot)
}

func (that *Console) OnOutcome(outcome entity.Outcome, snapshot entity.Snapshot) {
	that.printf("*** %s ***\n", outcome.Message(snapshot.Mode))
}

func (that *Console) render(snapshot entity.Snapshot) {
	var sb strings.Builder

	sb.WriteString("\n")
	for row := range entity.BoardSide {
		if row > 0 {
			sb.WriteString("---+---+---\n")
		}
		for col := range entity.BoardSide {
			if col > 0 {
				sb.WriteString("|")
			}
			index := row*entity.BoardSide + col
			mark := string(snapshot.Board[index])
			if mark == "" {
				mark = strconv.Itoa(index + 1)
			}
			sb.WriteString(" " + mark + " ")
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "X %d : %d %s", snapshot.Scores.Player1, snapshot.Scores.Player2, opponentLabel(snapshot.Mode))
	if snapshot.Active {
		fmt.Fprintf(&sb, "   turn: %s", snapshot.ActivePlayer.Mark())
	}
	sb.WriteString("\n")

	that.printf("%s", sb.String())
}

func opponentLabel(mode entity.Mode) string {
	if mode == entity.ModeVsBot {
		return "BOT (O)"
	}
	return "PLAYER O"
}

func (that *Console) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}
