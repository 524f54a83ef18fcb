package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"cellchess/rules"
)

var (
	lightCell = color.New(color.BgHiWhite, color.FgBlack)
	darkCell  = color.New(color.BgGreen, color.FgBlack)

	highlightStyles = map[rules.Highlight]*color.Color{
		rules.HighlightActive:       color.New(color.BgYellow, color.FgBlack, color.Bold),
		rules.HighlightMovable:      color.New(color.BgCyan, color.FgBlack),
		rules.HighlightCapturable:   color.New(color.BgRed, color.FgWhite, color.Bold),
		rules.HighlightCastling:     color.New(color.BgMagenta, color.FgWhite),
		rules.HighlightChecked:      color.New(color.BgHiRed, color.FgWhite, color.Bold),
		rules.HighlightLastMoveFrom: color.New(color.BgHiYellow, color.FgBlack),
		rules.HighlightLastMoveTo:   color.New(color.BgHiYellow, color.FgBlack),
	}
)

// renderBoard prints the board from white's side, rank 8 first, with each
// cell coloured by its highlight.
func renderBoard(w io.Writer, view [64]rules.CellView) {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			cell := view[rules.SquareAt(file, rank)]
			sb.WriteString(cellStyle(cell, file, rank).Sprintf(" %c ", cellGlyph(cell)))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a  b  c  d  e  f  g  h\n")
	io.WriteString(w, sb.String())
}

func cellStyle(cell rules.CellView, file, rank int) *color.Color {
	if c, ok := highlightStyles[cell.Highlight]; ok {
		return c
	}
	if (file+rank)%2 == 0 {
		return darkCell
	}
	return lightCell
}

// cellGlyph is the FEN letter of the piece, or a marker for an empty
// highlighted cell so the dump stays readable without colour.
func cellGlyph(cell rules.CellView) byte {
	if !cell.Piece.Empty() {
		return cell.Piece.Char()
	}
	switch cell.Highlight {
	case rules.HighlightMovable, rules.HighlightCastling:
		return '*'
	}
	return '.'
}
