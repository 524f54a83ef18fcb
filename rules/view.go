package rules

// Highlight is the decoration category a renderer paints on a cell.
type Highlight uint8

const (
	HighlightNone Highlight = iota
	HighlightActive
	HighlightMovable
	HighlightCapturable
	HighlightCastling
	HighlightChecked
	HighlightLastMoveFrom
	HighlightLastMoveTo
)

var highlightNames = [...]string{
	HighlightNone:         "none",
	HighlightActive:       "active",
	HighlightMovable:      "movable",
	HighlightCapturable:   "capturable",
	HighlightCastling:     "castling",
	HighlightChecked:      "checked",
	HighlightLastMoveFrom: "last-from",
	HighlightLastMoveTo:   "last-to",
}

func (h Highlight) String() string {
	if int(h) < len(highlightNames) {
		return highlightNames[h]
	}
	return "unknown"
}

// MarshalText lets views encode highlight names in JSON.
func (h Highlight) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

// CellView is everything a renderer needs to draw one square.
type CellView struct {
	Square      Square    `json:"square"`
	Piece       Piece     `json:"piece"`
	Dangerous   [2]bool   `json:"dangerous"`
	BlocksCheck bool      `json:"blocksCheck"`
	OpensCheck  bool      `json:"opensCheck"`
	Highlight   Highlight `json:"highlight"`
}

// View returns the renderer's picture of every cell, a1 first.
func (b *Board) View() [64]CellView {
	var out [64]CellView
	var castling SquareSet
	if b.active != NoSquare && b.cells[b.active].Piece.Type == PieceTypeKing {
		castling = castlingRange(b, b.active)
	}
	for sq := Square(0); sq < 64; sq++ {
		c := b.cells[sq]
		out[sq] = CellView{
			Square:      sq,
			Piece:       c.Piece,
			Dangerous:   c.Dangerous,
			BlocksCheck: c.BlocksCheck,
			OpensCheck:  c.OpensCheck,
			Highlight:   b.highlight(sq, castling),
		}
	}
	return out
}

func (b *Board) highlight(sq Square, castling SquareSet) Highlight {
	c := b.cells[sq]
	switch {
	case sq == b.active:
		return HighlightActive
	case c.Movable && castling.Has(sq):
		return HighlightCastling
	case c.Movable && b.IsCapture(Move{From: b.active, To: sq}):
		return HighlightCapturable
	case c.Movable:
		return HighlightMovable
	case sq == b.checkedKing:
		return HighlightChecked
	case sq == b.lastTo:
		return HighlightLastMoveTo
	case sq == b.lastFrom:
		return HighlightLastMoveFrom
	default:
		return HighlightNone
	}
}
