package game

import (
	"fmt"
	"strings"

	"github.com/corentings/chess/v2"

	"cellchess/rules"
)

// MoveRecord is one entry of the move list.
type MoveRecord struct {
	Number int    `json:"number"`
	Color  string `json:"color"`
	UCI    string `json:"uci"`
	SAN    string `json:"san"`
	Engine bool   `json:"engine"`

	move rules.Move
}

// Move returns the coordinate move of the record.
func (r MoveRecord) Move() rules.Move { return r.move }

// SAN renders m in standard algebraic notation for the position before it is
// played. pre must be the board the move was legal on.
func SAN(pre *rules.Board, m rules.Move) (string, error) {
	opt, err := chess.FEN(pre.FEN())
	if err != nil {
		return "", fmt.Errorf("notation: load position: %w", err)
	}
	pos := chess.NewGame(opt).Position()
	// Generated moves carry the castling and capture tags the encoder needs;
	// a decoded UCI string does not.
	moves := pos.ValidMoves()
	uci := m.String()
	for i := range moves {
		if moves[i].String() == uci {
			return chess.AlgebraicNotation{}.Encode(pos, &moves[i]), nil
		}
	}
	return "", fmt.Errorf("notation: %s is not legal in %s", uci, pre.FEN())
}

// MoveText joins records into numbered movetext ("1. e4 e5 2. Nf3").
func MoveText(records []MoveRecord) string {
	var sb strings.Builder
	for i, r := range records {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch {
		case r.Color == rules.White.String():
			fmt.Fprintf(&sb, "%d. ", r.Number)
		case i == 0:
			fmt.Fprintf(&sb, "%d... ", r.Number)
		}
		sb.WriteString(r.SAN)
	}
	return sb.String()
}
