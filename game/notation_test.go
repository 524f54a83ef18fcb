package game_test

import (
	"testing"

	"cellchess/game"
	"cellchess/rules"
)

func TestSAN(t *testing.T) {
	tests := []struct {
		fen, move, want string
	}{
		{rules.FENStartPos, "e2e4", "e4"},
		{rules.FENStartPos, "b1c3", "Nc3"},
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", "O-O"},
		{"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8c8", "O-O-O"},
		{"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2", "e5d6", "exd6"},
		{"4k3/1P6/8/8/8/8/8/4K3 w - - 0 1", "b7b8q", "b8=Q+"},
		{"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", "a1a8", "Ra8#"},
	}
	for _, tt := range tests {
		t.Run(tt.move, func(t *testing.T) {
			m, err := rules.ParseMove(tt.move)
			if err != nil {
				t.Fatalf("ParseMove: %v", err)
			}
			got, err := game.SAN(rules.MustParseFEN(tt.fen), m)
			if err != nil {
				t.Fatalf("SAN: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q want %q", got, tt.want)
			}
		})
	}
}

func TestMoveText(t *testing.T) {
	records := []game.MoveRecord{
		{Number: 1, Color: "white", SAN: "e4"},
		{Number: 1, Color: "black", SAN: "e5"},
		{Number: 2, Color: "white", SAN: "Nf3"},
	}
	if got := game.MoveText(records); got != "1. e4 e5 2. Nf3" {
		t.Fatalf("got %q", got)
	}
	if got := game.MoveText(nil); got != "" {
		t.Fatalf("empty record: %q", got)
	}
}
