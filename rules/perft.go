package rules

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		child := *b
		if !child.ApplyMove(m) {
			panic("rules: perft generated an illegal move " + m.String())
		}
		nodes += Perft(&child, depth-1)
	}
	return nodes
}

// Divide returns the perft count below each root move, keyed by move string.
func Divide(b *Board, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth <= 0 {
		return out
	}
	for _, m := range b.LegalMoves() {
		child := *b
		child.ApplyMove(m)
		out[m.String()] = Perft(&child, depth-1)
	}
	return out
}
