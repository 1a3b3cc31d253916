package entity

type OutcomeKind string

const (
	OutcomeContinue OutcomeKind = "continue"
	OutcomeWin      OutcomeKind = "win"
	OutcomeDraw     OutcomeKind = "draw"
)

type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Winner Player      `json:"winner,omitempty"`
	Line   [3]int      `json:"line,omitempty"`
}

func ContinueOutcome() Outcome {
	return Outcome{Kind: OutcomeContinue}
}

func WinOutcome(winner Player, line [3]int) Outcome {
	return Outcome{Kind: OutcomeWin, Winner: winner, Line: line}
}

func DrawOutcome() Outcome {
	return Outcome{Kind: OutcomeDraw}
}

func (that Outcome) IsTerminal() bool {
	return that.Kind == OutcomeWin || that.Kind == OutcomeDraw
}

// Message - the one-shot notification text shown to the players.
func (that Outcome) Message(mode Mode) string {
	switch that.Kind {
	case OutcomeWin:
		if that.Winner == Player1 {
			return "Player X Wins!"
		}
		if mode == ModeVsBot {
			return "Bot Wins!"
		}
		return "Player O Wins!"
	case OutcomeDraw:
		return "It's a Draw!"
	default:
		return ""
	}
}

// OutcomeEvent is the one-shot notification sent when a round ends.
type OutcomeEvent struct {
	SessionID string   `json:"session_id"`
	Outcome   Outcome  `json:"outcome"`
	Message   string   `json:"message"`
	Snapshot  Snapshot `json:"snapshot"`
}
