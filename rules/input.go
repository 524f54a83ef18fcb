package rules

// TouchResult describes what a Touch did to the board.
type TouchResult uint8

const (
	TouchIgnored TouchResult = iota
	TouchSelected
	TouchDeselected
	TouchMoved
)

func (r TouchResult) String() string {
	switch r {
	case TouchSelected:
		return "selected"
	case TouchDeselected:
		return "deselected"
	case TouchMoved:
		return "moved"
	default:
		return "ignored"
	}
}

// Touch interprets a tap on sq. With a move pending and sq movable, the move
// is played. Otherwise any selection is dropped and sq is selected if it
// holds a piece of the side to move. Off-board taps, taps while a promotion
// is pending and taps after the game ended are ignored.
func (b *Board) Touch(sq Square) TouchResult {
	if !sq.Valid() || b.promotionPending || b.GameOver() {
		return TouchIgnored
	}
	if b.movePending && b.cells[sq].Movable {
		b.execute(b.active, sq)
		return TouchMoved
	}
	if sq == b.active {
		b.clearSelection()
		return TouchDeselected
	}
	hadSelection := b.active != NoSquare
	b.clearSelection()
	if p := b.cells[sq].Piece; !p.Empty() && p.Color == b.turn {
		b.active = sq
		b.markMovable(sq, FullFilter)
		return TouchSelected
	}
	if hadSelection {
		return TouchDeselected
	}
	return TouchIgnored
}
