package bitmg

import "math/rand"

// Zobrist keys for pieces, castling, en passant and side to move.
var (
	zobristPiece     [2][NumPieceTypes][64]uint64
	zobristCastle    [16]uint64
	zobristEnPassant [8]uint64 // by file
	zobristSide      uint64    // black to move
)

func init() {
	// Fixed seed so hashes are stable across runs.
	rnd := rand.New(rand.NewSource(0xC0DE))
	for c := range zobristPiece {
		for pt := range zobristPiece[c] {
			for sq := range zobristPiece[c][pt] {
				zobristPiece[c][pt][sq] = rnd.Uint64()
			}
		}
	}
	for i := range zobristCastle {
		zobristCastle[i] = rnd.Uint64()
	}
	for f := range zobristEnPassant {
		zobristEnPassant[f] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()
}

// Hash returns the Zobrist key of the position with side to move.
// The en-passant file only contributes when a capture onto the target is actually possible,
// so transpositions that differ only by an unusable marker hash alike.
func (p *Position) Hash(side Color) uint64 {
	var key uint64
	for c := White; c <= Black; c++ {
		for pt := King; pt < NumPieceTypes; pt++ {
			for bb := p.pieces[c][pt]; bb != 0; {
				key ^= zobristPiece[c][pt][bb.PopLSB()]
			}
		}
	}
	if side == Black {
		key ^= zobristSide
	}
	key ^= zobristCastle[p.Castling.index()]
	if p.EnPassant != NoSquare && p.enPassantCapturable(side) {
		key ^= zobristEnPassant[p.EnPassant.File()]
	}
	return key
}

// enPassantCapturable reports whether a pawn of side can take on the en-passant target.
func (p *Position) enPassantCapturable(side Color) bool {
	ep := p.EnPassant
	if !p.pieces[side.Other()][Pawn].Has(enPassantVictim(ep, side)) {
		return false
	}
	// A pawn of the other color on ep attacks exactly the squares our pawns capture ep from.
	return Tables().PawnAttack[side.Other()][ep]&p.pieces[side][Pawn] != 0
}
