// Package bitmg is a bitboard chess rules engine: attack tables, legal move generation,
// move application and perft enumeration.
package bitmg

import (
	"fmt"
)

// Color identifies a side.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType is a colorless piece kind. The values double as plane indexes into a Position.
type PieceType uint8

const (
	King PieceType = iota
	Queen
	Rook
	Bishop
	Knight
	Pawn

	// NumPieceTypes is the number of piece planes per color.
	NumPieceTypes = 6

	// NoPieceType is returned by lookups on empty squares.
	NoPieceType PieceType = NumPieceTypes
)

var pieceLetters = [NumPieceTypes + 1]byte{'k', 'q', 'r', 'b', 'n', 'p', '.'}

// Letter returns the lowercase letter used for the type in FEN and move notation.
func (pt PieceType) Letter() byte { return pieceLetters[pt] }

func (pt PieceType) String() string {
	switch pt {
	case King:
		return "king"
	case Queen:
		return "queen"
	case Rook:
		return "rook"
	case Bishop:
		return "bishop"
	case Knight:
		return "knight"
	case Pawn:
		return "pawn"
	}
	return "none"
}

// CastlingRights records which castling moves are still available.
// A right is lost once the king or the corresponding rook leaves its home square,
// or when the rook is captured there.
type CastlingRights struct {
	WhiteKingside  bool
	WhiteQueenside bool
	BlackKingside  bool
	BlackQueenside bool
}

// AllCastlingRights is the state of the standard starting position.
var AllCastlingRights = CastlingRights{true, true, true, true}

// Kingside reports the short-castling right of a side.
func (c CastlingRights) Kingside(side Color) bool {
	if side == White {
		return c.WhiteKingside
	}
	return c.BlackKingside
}

// Queenside reports the long-castling right of a side.
func (c CastlingRights) Queenside(side Color) bool {
	if side == White {
		return c.WhiteQueenside
	}
	return c.BlackQueenside
}

// index packs the rights into 0-15 (used for hashing).
func (c CastlingRights) index() int {
	i := 0
	for n, ok := range [4]bool{c.WhiteKingside, c.WhiteQueenside, c.BlackKingside, c.BlackQueenside} {
		if ok {
			i |= 1 << n
		}
	}
	return i
}

// Position is the mutable board: one bitboard per (color, piece type) plus the castling
// rights and the en-passant target. It is a plain value; copying it takes a full snapshot.
type Position struct {
	pieces [2][NumPieceTypes]Bitboard

	// Castling holds the remaining castling rights.
	Castling CastlingRights

	// EnPassant is the square a pawn skipped with a double push on the previous half-move,
	// or NoSquare.
	EnPassant Square
}

// Start placement, one bitboard per plane.
var startPieces = [2][NumPieceTypes]Bitboard{
	White: {
		King:   0x0000000000000010,
		Queen:  0x0000000000000008,
		Rook:   0x0000000000000081,
		Bishop: 0x0000000000000024,
		Knight: 0x0000000000000042,
		Pawn:   0x000000000000FF00,
	},
	Black: {
		King:   0x1000000000000000,
		Queen:  0x0800000000000000,
		Rook:   0x8100000000000000,
		Bishop: 0x2400000000000000,
		Knight: 0x4200000000000000,
		Pawn:   0x00FF000000000000,
	},
}

// NewPosition returns the standard starting position.
func NewPosition() Position {
	return Position{pieces: startPieces, Castling: AllCastlingRights, EnPassant: NoSquare}
}

// EmptyPosition returns a board with no pieces, no castling rights and no en-passant target.
func EmptyPosition() Position {
	return Position{EnPassant: NoSquare}
}

// ==========================
// Occupancy
// ==========================

// Pieces returns the bitboard of one plane.
func (p *Position) Pieces(c Color, pt PieceType) Bitboard { return p.pieces[c][pt] }

// ColorOccupancy returns every square holding a piece of color c.
func (p *Position) ColorOccupancy(c Color) Bitboard {
	pl := &p.pieces[c]
	return pl[King] | pl[Queen] | pl[Rook] | pl[Bishop] | pl[Knight] | pl[Pawn]
}

// TypeOccupancy returns every square holding a piece of type pt, either color.
func (p *Position) TypeOccupancy(pt PieceType) Bitboard {
	return p.pieces[White][pt] | p.pieces[Black][pt]
}

// Occupied returns every occupied square.
func (p *Position) Occupied() Bitboard {
	return p.ColorOccupancy(White) | p.ColorOccupancy(Black)
}

// IsOccupied reports whether any piece stands on sq.
func (p *Position) IsOccupied(sq Square) bool { return p.Occupied().Has(sq) }

// PieceAt returns the piece on sq. ok is false for an empty square.
func (p *Position) PieceAt(sq Square) (c Color, pt PieceType, ok bool) {
	m := SquareMask(sq)
	for c = White; c <= Black; c++ {
		for pt = King; pt < NumPieceTypes; pt++ {
			if p.pieces[c][pt]&m != 0 {
				return c, pt, true
			}
		}
	}
	return White, NoPieceType, false
}

// TypeAt returns the type of the piece of color c on sq, or NoPieceType.
func (p *Position) TypeAt(sq Square, c Color) PieceType {
	m := SquareMask(sq)
	for pt := King; pt < NumPieceTypes; pt++ {
		if p.pieces[c][pt]&m != 0 {
			return pt
		}
	}
	return NoPieceType
}

// KingSquare returns the square of c's king, or NoSquare if it has none.
func (p *Position) KingSquare(c Color) Square { return p.pieces[c][King].LSB() }

// ==========================
// Placement
// ==========================

// SetPiece places a piece on sq, replacing whatever stood there.
func (p *Position) SetPiece(sq Square, c Color, pt PieceType) {
	if pt >= NumPieceTypes {
		panic(fmt.Sprintf("bitmg: cannot place piece type %d", pt))
	}
	p.RemovePiece(sq)
	p.pieces[c][pt] |= SquareMask(sq)
}

// RemovePiece clears sq in every plane and returns what was there.
func (p *Position) RemovePiece(sq Square) (c Color, pt PieceType, ok bool) {
	c, pt, ok = p.PieceAt(sq)
	if ok {
		p.pieces[c][pt] &^= SquareMask(sq)
	}
	return c, pt, ok
}

// Validate checks that no square is claimed by two planes.
func (p *Position) Validate() error {
	var seen Bitboard
	for c := White; c <= Black; c++ {
		for pt := King; pt < NumPieceTypes; pt++ {
			bb := p.pieces[c][pt]
			if overlap := seen & bb; overlap != 0 {
				return fmt.Errorf("bitmg: %s %s plane overlaps another plane on %s", c, pt, overlap.LSB())
			}
			seen |= bb
		}
	}
	if p.EnPassant != NoSquare && !p.EnPassant.Valid() {
		return fmt.Errorf("bitmg: en-passant square %d out of range", int(p.EnPassant))
	}
	return nil
}

// Mirror returns the position reflected top to bottom with the colors swapped.
// A position and its mirror have identical move counts with the sides exchanged.
func (p Position) Mirror() Position {
	var m Position
	for pt := King; pt < NumPieceTypes; pt++ {
		m.pieces[White][pt] = p.pieces[Black][pt].Mirror()
		m.pieces[Black][pt] = p.pieces[White][pt].Mirror()
	}
	m.Castling = CastlingRights{
		WhiteKingside:  p.Castling.BlackKingside,
		WhiteQueenside: p.Castling.BlackQueenside,
		BlackKingside:  p.Castling.WhiteKingside,
		BlackQueenside: p.Castling.WhiteQueenside,
	}
	m.EnPassant = NoSquare
	if p.EnPassant != NoSquare {
		m.EnPassant = p.EnPassant.Mirror()
	}
	return m
}

// ==========================
// Snapshots
// ==========================

// Snapshot is a saved copy of a position, restored bit for bit by Restore.
type Snapshot struct {
	pos Position
}

// Snapshot saves the current position.
func (p *Position) Snapshot() Snapshot { return Snapshot{pos: *p} }

// Restore returns the position to a saved snapshot.
func (p *Position) Restore(s Snapshot) { *p = s.pos }

// History is a stack of snapshots for drivers that play and take back sequences of moves.
type History struct {
	stack []Snapshot
}

// Push applies m for side after saving the current position.
func (h *History) Push(p *Position, m Move, side Color) {
	h.stack = append(h.stack, p.Snapshot())
	p.Apply(m, side)
}

// Pop restores the position saved by the matching Push.
// It panics if the stack is empty.
func (h *History) Pop(p *Position) {
	n := len(h.stack)
	if n == 0 {
		panic("bitmg: History.Pop on empty stack")
	}
	p.Restore(h.stack[n-1])
	h.stack = h.stack[:n-1]
}

// Len returns the number of saved snapshots.
func (h *History) Len() int { return len(h.stack) }
