package game

import "cellchess/rules"

// Status summarises the live board for front ends.
type Status struct {
	Turn             rules.Color
	Check            bool
	Checkmate        bool
	Winner           rules.Color
	Stalemate        bool
	FiftyMove        bool
	PromotionPending bool
	Thinking         bool
}

func statusOf(b *rules.Board, thinking bool) Status {
	st := Status{
		Turn:             b.Turn(),
		Check:            b.KingChecked(),
		Checkmate:        b.Checkmate(),
		Winner:           rules.NoColor,
		Stalemate:        b.DrawByStalemate(),
		FiftyMove:        b.DrawByFiftyMove(),
		PromotionPending: b.PromotionPending(),
		Thinking:         thinking,
	}
	if loser, ok := b.Checkmated(); ok {
		st.Winner = loser.Opposite()
	}
	return st
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return statusOf(s.board, s.thinking)
}

func (st Status) Over() bool {
	return st.Checkmate || st.Stalemate || st.FiftyMove
}

// Result is the PGN result token.
func (st Status) Result() string {
	switch {
	case st.Checkmate && st.Winner == rules.White:
		return "1-0"
	case st.Checkmate && st.Winner == rules.Black:
		return "0-1"
	case st.Over():
		return "1/2-1/2"
	}
	return "*"
}

func (st Status) Reason() string {
	switch {
	case st.Checkmate:
		return "checkmate"
	case st.Stalemate:
		return "stalemate"
	case st.FiftyMove:
		return "fifty-move rule"
	case st.PromotionPending:
		return "awaiting promotion"
	case st.Check:
		return "check"
	}
	return ""
}
