// Package render draws bitboards and positions as SVG diagrams.
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"chess-rules/bitmg"
)

const (
	cell   = 48
	margin = 24
	board  = 8 * cell
)

const (
	lightFill = "fill:#f0d9b5"
	darkFill  = "fill:#b58863"
	markFill  = "fill:#d64541;fill-opacity:0.55"
	labelText = "font-family:sans-serif;font-size:12px;fill:#555;text-anchor:middle"
	pieceText = "font-family:serif;font-size:36px;text-anchor:middle;dominant-baseline:central"
	titleText = "font-family:sans-serif;font-size:14px;fill:#222"
)

var glyphs = [2][bitmg.NumPieceTypes]string{
	bitmg.White: {"♔", "♕", "♖", "♗", "♘", "♙"},
	bitmg.Black: {"♚", "♛", "♜", "♝", "♞", "♟"},
}

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err == nil {
		_, e.err = e.w.Write(p)
	}
	return len(p), nil
}

// squareOrigin returns the top-left pixel of sq, rank 8 drawn on top.
func squareOrigin(sq bitmg.Square) (x, y int) {
	return margin + sq.File()*cell, margin + (7-sq.Rank())*cell
}

func drawBoard(canvas *svg.SVG, marked bitmg.Bitboard) {
	for sq := bitmg.Square(0); sq < 64; sq++ {
		x, y := squareOrigin(sq)
		fill := darkFill
		if (sq.Rank()+sq.File())%2 == 1 {
			fill = lightFill
		}
		canvas.Rect(x, y, cell, cell, fill)
		if marked.Has(sq) {
			canvas.Rect(x, y, cell, cell, markFill)
		}
	}
	for i := 0; i < 8; i++ {
		file := string(rune('a' + i))
		rank := fmt.Sprint(8 - i)
		canvas.Text(margin+i*cell+cell/2, margin+board+16, file, labelText)
		canvas.Text(margin/2, margin+i*cell+cell/2+4, rank, labelText)
	}
}

// Bitboard writes an SVG diagram with the members of bb highlighted.
func Bitboard(w io.Writer, bb bitmg.Bitboard, title string) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(board+2*margin, board+2*margin)
	if title != "" {
		canvas.Title(title)
		canvas.Text(margin, margin-8, title, titleText)
	}
	drawBoard(canvas, bb)
	canvas.End()
	return ew.err
}

// Position writes an SVG diagram of p with piece glyphs; highlight marks squares such as the
// targets of a piece.
func Position(w io.Writer, p *bitmg.Position, highlight bitmg.Bitboard) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(board+2*margin, board+2*margin)
	drawBoard(canvas, highlight)
	for occ := p.Occupied(); occ != 0; {
		sq := occ.PopLSB()
		c, pt, _ := p.PieceAt(sq)
		x, y := squareOrigin(sq)
		canvas.Text(x+cell/2, y+cell/2, glyphs[c][pt], pieceText)
	}
	canvas.End()
	return ew.err
}
