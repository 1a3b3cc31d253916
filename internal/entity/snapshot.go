package entity

type Scores struct {
	Player1 int `json:"player1"`
	Player2 int `json:"player2"`
}

// Snapshot is everything a renderer needs to draw the game.
type Snapshot struct {
	Board        [CellCount]Mark `json:"board"`
	ActivePlayer Player          `json:"active_player"`
	Active       bool            `json:"active"`
	Mode         Mode            `json:"mode"`
	Scores       Scores          `json:"scores"`
	Outcome      *Outcome        `json:"outcome,omitempty"`
}

func (that GameState) Snapshot() Snapshot {
	snapshot := Snapshot{
		Board:        that.Board(),
		ActivePlayer: that.ActivePlayer,
		Active:       that.Active,
		Mode:         that.Mode,
		Scores: Scores{
			Player1: that.Player1Score,
			Player2: that.Player2Score,
		},
	}

	if that.LastOutcome.IsTerminal() {
		outcome := that.LastOutcome
		snapshot.Outcome = &outcome
	}

	return snapshot
}
