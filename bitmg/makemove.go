package bitmg

import "fmt"

// Apply plays m for side, mutating the position in place. The move is assumed pseudo-legal;
// legality (own king safety) is the generator's concern. Undo by restoring a Snapshot.
func (p *Position) Apply(m Move, side Color) {
	t := Tables()
	fromBB := t.Mask[m.From]
	toBB := t.Mask[m.To]
	us := &p.pieces[side]
	them := &p.pieces[side.Other()]

	if us[m.Piece]&fromBB == 0 {
		panic(fmt.Sprintf("bitmg: no %s %s on %s for move %s", side, m.Piece, m.From, m))
	}

	// Lift the mover, then clear the destination (capture).
	us[m.Piece] &^= fromBB
	for pt := range them {
		them[pt] &^= toBB
	}

	// The previous en-passant target expires with every half-move.
	p.EnPassant = NoSquare

	placed := m.Piece
	switch m.Kind {
	case DoublePawnPush:
		p.EnPassant = (m.From + m.To) / 2
	case EnPassantCapture:
		them[Pawn] &^= t.Mask[m.Captured]
	case Castle:
		us[Rook] = us[Rook]&^t.Mask[m.RookFrom] | t.Mask[m.RookTo]
	case Promotion:
		placed = m.Promote
	}

	p.Castling.clear(m.From)
	p.Castling.clear(m.To)

	us[placed] |= toBB
}

// After returns the position that results from playing m for side, leaving p untouched.
func (p Position) After(m Move, side Color) Position {
	p.Apply(m, side)
	return p
}

// clear drops the rights tied to a king or rook home square. It runs for both the origin
// and the destination of every move, so a rook captured at home loses its right too.
func (c *CastlingRights) clear(sq Square) {
	switch sq {
	case E1:
		c.WhiteKingside, c.WhiteQueenside = false, false
	case H1:
		c.WhiteKingside = false
	case A1:
		c.WhiteQueenside = false
	case E8:
		c.BlackKingside, c.BlackQueenside = false, false
	case H8:
		c.BlackKingside = false
	case A8:
		c.BlackQueenside = false
	}
}
