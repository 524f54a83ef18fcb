package rules

// fiftyMoveLimit is the halfmove clock value at which the game is drawn.
// The clock counts halfmoves, so 100 is fifty moves by each side.
const fiftyMoveLimit = 100

// analyze re-derives the danger map, pins, check, checkmate and draws for
// the side to move. It runs after every completed move, after a promotion is
// resolved and after a position is loaded.
func (b *Board) analyze() {
	b.recordDangerousCells()
	for sq := range b.cells {
		c := &b.cells[sq]
		c.BlocksCheck = false
		c.OpensCheck = false
		c.CheckBlocking = 0
		c.CheckOpening = 0
	}
	b.kingChecked = false
	b.checkedKing = NoSquare
	b.checkmate = false
	b.drawByFiftyMove = false
	b.drawByStalemate = false

	b.recordPins()
	b.recordCheck()
	b.recordDraws()
}

// relocate moves the piece on from to to, including the geometric side
// effects of en passant and castling, and returns the captured piece.
func (b *Board) relocate(from, to Square) Piece {
	mover := b.cells[from].Piece
	captured := b.cells[to].Piece
	if mover.Type == PieceTypePawn && captured.Empty() && from.File() != to.File() {
		victim := SquareAt(to.File(), from.Rank())
		captured = b.cells[victim].Piece
		b.setPiece(victim, NoPiece)
	}
	if mover.Type == PieceTypeKing {
		if lane, ok := castlingLaneFor(mover.Color, from, to); ok {
			b.setPiece(lane.rookTo, b.cells[lane.rook].Piece)
			b.setPiece(lane.rook, NoPiece)
		}
	}
	b.setPiece(to, mover)
	b.setPiece(from, NoPiece)
	return captured
}

// simulate plays from -> to on the scratch copy it receives and returns it
// with a fresh danger map. The caller's board is never touched.
func simulate(scratch Board, from, to Square) Board {
	scratch.relocate(from, to)
	scratch.recordDangerousCells()
	return scratch
}

// exposesKing reports whether playing from -> to leaves c's king attacked.
// The king square is looked up on the scratch board, so king moves are
// judged from their destination.
func (b *Board) exposesKing(c Color, from, to Square) bool {
	after := simulate(*b, from, to)
	k := after.KingSquare(c)
	return k == NoSquare || after.cells[k].Dangerous[c]
}

// recordPins marks, for every friendly non-king piece, the destinations that
// would leave the own king attacked.
func (b *Board) recordPins() {
	us := b.turn
	for src := Square(0); src < 64; src++ {
		p := b.cells[src].Piece
		if p.Empty() || p.Color != us || p.Type == PieceTypeKing {
			continue
		}
		for m := b.filterCellsInRange(src, PseudoLegal); m != 0; m &= m - 1 {
			dst := lowest(m)
			if b.exposesKing(us, src, dst) {
				b.cells[src].OpensCheck = true
				b.cells[src].CheckOpening = b.cells[src].CheckOpening.With(dst)
			}
		}
	}
}

// recordCheck detects check on the side to move and builds the block-check
// map. A check that no move relieves is checkmate.
func (b *Board) recordCheck() {
	us := b.turn
	k := b.KingSquare(us)
	if k == NoSquare || !b.cells[k].Dangerous[us] {
		return
	}
	b.kingChecked = true
	b.checkedKing = k

	relieved := false
	for src := Square(0); src < 64; src++ {
		p := b.cells[src].Piece
		if p.Empty() || p.Color != us {
			continue
		}
		for m := b.filterCellsInRange(src, FilterMode{Pins: true}); m != 0; m &= m - 1 {
			dst := lowest(m)
			if b.exposesKing(us, src, dst) {
				continue
			}
			b.cells[src].BlocksCheck = true
			b.cells[src].CheckBlocking = b.cells[src].CheckBlocking.With(dst)
			relieved = true
		}
	}
	b.checkmate = !relieved
}

func (b *Board) recordDraws() {
	if b.checkmate {
		return
	}
	if b.halfmoveClock >= fiftyMoveLimit {
		b.drawByFiftyMove = true
	}
	if !b.kingChecked && !b.hasLegalMove() {
		b.drawByStalemate = true
	}
}

// hasLegalMove reports whether the side to move has any fully filtered move.
func (b *Board) hasLegalMove() bool {
	for src := Square(0); src < 64; src++ {
		p := b.cells[src].Piece
		if p.Empty() || p.Color != b.turn {
			continue
		}
		if b.filterCellsInRange(src, FullFilter) != 0 {
			return true
		}
	}
	return false
}
