package rules

// FilterMode selects which analyzer constraints the legality filter applies.
// The analyzer relaxes them while it derives the very maps they consult.
type FilterMode struct {
	// BlockCheck keeps only check-blocking destinations while the king is checked.
	BlockCheck bool
	// Pins drops destinations that would expose the own king.
	Pins bool
}

var (
	// FullFilter is the mode used for moves that are actually played.
	FullFilter = FilterMode{BlockCheck: true, Pins: true}
	// PseudoLegal only drops friendly captures and unsafe king steps.
	PseudoLegal = FilterMode{}
)

// filterCellsInRange returns the destinations of the piece on src that
// survive mode. Nothing on the board is modified.
func (b *Board) filterCellsInRange(src Square, mode FilterMode) SquareSet {
	p := b.PieceAt(src)
	if p.Empty() {
		return 0
	}
	cell := &b.cells[src]
	var out SquareSet
	for m := rangeOf(b, src, true); m != 0; m &= m - 1 {
		dst := lowest(m)
		target := b.cells[dst].Piece
		if !target.Empty() && target.Color == p.Color {
			continue
		}
		if p.Type == PieceTypeKing && b.cells[dst].Dangerous[p.Color] {
			continue
		}
		if mode.BlockCheck && b.kingChecked && p.Color == b.turn && !cell.CheckBlocking.Has(dst) {
			continue
		}
		if mode.Pins && cell.OpensCheck && cell.CheckOpening.Has(dst) {
			continue
		}
		out = out.With(dst)
	}
	return out
}

// Destinations returns the legal destinations of the piece on src under mode.
func (b *Board) Destinations(src Square, mode FilterMode) SquareSet {
	if !src.Valid() {
		return 0
	}
	return b.filterCellsInRange(src, mode)
}

// markMovable flags the in-range and movable cells for the piece on src and
// updates movePending accordingly.
func (b *Board) markMovable(src Square, mode FilterMode) {
	for sq := range b.cells {
		b.cells[sq].InRange = false
		b.cells[sq].Movable = false
	}
	b.movePending = false
	for _, dst := range rangeOf(b, src, true).Squares() {
		b.cells[dst].InRange = true
	}
	for _, dst := range b.filterCellsInRange(src, mode).Squares() {
		b.cells[dst].Movable = true
		b.movePending = true
	}
}

// recordDangerousCells rebuilds the danger map from scratch. Pawns threaten
// both forward diagonals whatever occupies them; every other piece threatens
// its raw range without castling. A castling king captures nothing on its
// destination, so castling squares never count as attacked by the king.
func (b *Board) recordDangerousCells() {
	for sq := range b.cells {
		b.cells[sq].Dangerous = [2]bool{}
	}
	for sq := Square(0); sq < 64; sq++ {
		p := b.cells[sq].Piece
		if p.Empty() {
			continue
		}
		var attacks SquareSet
		if p.Type == PieceTypePawn {
			attacks = pawnAttacks(sq, p.Color)
		} else {
			attacks = rangeOf(b, sq, false)
		}
		victim := p.Color.Opposite()
		for m := attacks; m != 0; m &= m - 1 {
			b.cells[lowest(m)].Dangerous[victim] = true
		}
	}
}

// Attacked reports whether sq is attacked by the side opposite to c.
func (b *Board) Attacked(sq Square, c Color) bool {
	if !sq.Valid() || c == NoColor {
		return false
	}
	return b.cells[sq].Dangerous[c]
}
