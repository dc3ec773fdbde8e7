package bitmg

// Rules configures move generation.
type Rules struct {
	// CastleThroughAttack allows castling while the king stands on or passes over an attacked
	// square. The destination square is still covered by the legality filter.
	CastleThroughAttack bool
}

// Standard enforces the full castling rule: the king may not castle out of, through or into check.
var Standard = Rules{}

// Relaxed only requires castling rights and an empty path between king and rook.
var Relaxed = Rules{CastleThroughAttack: true}

type castleSpec struct {
	kingFrom, kingTo Square
	rookFrom, rookTo Square
}

// castles[color][0] is kingside, castles[color][1] queenside.
var castles = [2][2]castleSpec{
	White: {
		{kingFrom: E1, kingTo: G1, rookFrom: H1, rookTo: F1},
		{kingFrom: E1, kingTo: C1, rookFrom: A1, rookTo: D1},
	},
	Black: {
		{kingFrom: E8, kingTo: G8, rookFrom: H8, rookTo: F8},
		{kingFrom: E8, kingTo: C8, rookFrom: A8, rookTo: D8},
	},
}

var promotionTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

// ==========================
// Pseudo-legal generation
// ==========================

// PseudoMovesFrom returns the candidate moves of the piece of side on sq, without checking
// king safety. ok is false when sq holds no piece of side.
func (r Rules) PseudoMovesFrom(p *Position, sq Square, side Color) (moves []Move, ok bool) {
	pt := p.TypeAt(sq, side)
	if pt == NoPieceType {
		return nil, false
	}
	return r.appendPseudo(make([]Move, 0, 32), p, sq, side, pt), true
}

func (r Rules) appendPseudo(dst []Move, p *Position, sq Square, side Color, pt PieceType) []Move {
	own := p.ColorOccupancy(side)
	switch pt {
	case Pawn:
		return p.appendPawnMoves(dst, sq, side)
	case King:
		dst = appendTargets(dst, sq, King, Tables().Attack[King][sq]&^own)
		if sq == castles[side][0].kingFrom {
			dst = r.appendCastles(dst, p, side)
		}
		return dst
	default:
		occ := own | p.ColorOccupancy(side.Other())
		return appendTargets(dst, sq, pt, Attacks(pt, sq, occ)&^own)
	}
}

func appendTargets(dst []Move, from Square, pt PieceType, targets Bitboard) []Move {
	for targets != 0 {
		dst = append(dst, NewMove(from, targets.PopLSB(), pt))
	}
	return dst
}

func (p *Position) appendPawnMoves(dst []Move, from Square, side Color) []Move {
	for caps := p.PawnCaptures(from, side); caps != 0; {
		to := caps.PopLSB()
		if to == p.EnPassant {
			dst = append(dst, NewEnPassant(from, to, enPassantVictim(to, side)))
			continue
		}
		dst = appendPawnStep(dst, from, to)
	}
	for pushes := p.PawnPushes(from, side); pushes != 0; {
		to := pushes.PopLSB()
		if to-from == 16 || from-to == 16 {
			dst = append(dst, NewDoublePush(from, to))
			continue
		}
		dst = appendPawnStep(dst, from, to)
	}
	return dst
}

// appendPawnStep adds a plain pawn move, or the four promotions when it reaches the last rank.
func appendPawnStep(dst []Move, from, to Square) []Move {
	if (Rank1 | Rank8).Has(to) {
		for _, pt := range promotionTypes {
			dst = append(dst, NewPromotion(from, to, pt))
		}
		return dst
	}
	return append(dst, NewMove(from, to, Pawn))
}

// enPassantVictim returns the square of the pawn taken by a capture landing on target.
func enPassantVictim(target Square, side Color) Square {
	if side == White {
		return target - 8
	}
	return target + 8
}

// PawnPushes returns the push destinations of a pawn of side on sq: one step if the square
// ahead is empty, and two steps from the home rank if both squares are empty.
func (p *Position) PawnPushes(sq Square, side Color) Bitboard {
	mustSquare(sq)
	occ := p.Occupied()
	var one, two Square
	var home Bitboard
	if side == White {
		if sq >= 56 {
			return 0
		}
		one, two, home = sq+8, sq+16, Rank2
	} else {
		if sq < 8 {
			return 0
		}
		one, two, home = sq-8, sq-16, Rank7
	}
	if occ.Has(one) {
		return 0
	}
	pushes := SquareMask(one)
	if home.Has(sq) && !occ.Has(two) {
		pushes |= SquareMask(two)
	}
	return pushes
}

// PawnCaptures returns the capture destinations of a pawn of side on sq, including the
// en-passant target when an enemy pawn stands behind it.
func (p *Position) PawnCaptures(sq Square, side Color) Bitboard {
	t := Tables()
	targets := p.ColorOccupancy(side.Other())
	if ep := p.EnPassant; ep != NoSquare && p.pieces[side.Other()][Pawn].Has(enPassantVictim(ep, side)) {
		targets |= t.Mask[ep]
	}
	return t.PawnAttack[side][sq] & targets
}

// PawnTargets is the union of PawnPushes and PawnCaptures.
func (p *Position) PawnTargets(sq Square, side Color) Bitboard {
	return p.PawnPushes(sq, side) | p.PawnCaptures(sq, side)
}

// appendCastles adds the castling moves whose right is held, whose king and rook are at home
// and whose path between them is empty. Unless CastleThroughAttack is set, the king's square
// and the square it crosses must not be attacked either.
func (r Rules) appendCastles(dst []Move, p *Position, side Color) []Move {
	t := Tables()
	occ := p.Occupied()
	rights := [2]bool{p.Castling.Kingside(side), p.Castling.Queenside(side)}
	for wing, cs := range castles[side] {
		if !rights[wing] {
			continue
		}
		if !p.pieces[side][King].Has(cs.kingFrom) || !p.pieces[side][Rook].Has(cs.rookFrom) {
			continue
		}
		if t.Between[cs.kingFrom][cs.rookFrom]&occ != 0 {
			continue
		}
		if !r.CastleThroughAttack &&
			(IsAttacked(cs.kingFrom, side, p) || IsAttacked(cs.rookTo, side, p) || IsAttacked(cs.kingTo, side, p)) {
			continue
		}
		dst = append(dst, NewCastle(cs.kingFrom, cs.kingTo, cs.rookFrom, cs.rookTo))
	}
	return dst
}

// ==========================
// Legal generation
// ==========================

// IsLegal plays m on a scratch copy and reports whether side's king is safe afterwards.
func (r Rules) IsLegal(p *Position, m Move, side Color) bool {
	scratch := *p
	scratch.Apply(m, side)
	return !InCheck(side, &scratch)
}

// MovesFrom returns the legal moves of the piece of side on sq. ok is false when sq holds no
// piece of side; an occupied square without legal moves yields an empty, non-nil slice.
func (r Rules) MovesFrom(p *Position, sq Square, side Color) (moves []Move, ok bool) {
	pseudo, ok := r.PseudoMovesFrom(p, sq, side)
	if !ok {
		return nil, false
	}
	return r.filterLegal(pseudo[:0], pseudo, p, side), true
}

// LegalMoves returns every legal move of side.
func (r Rules) LegalMoves(p *Position, side Color) []Move {
	return r.AppendLegalMoves(make([]Move, 0, 64), p, side)
}

// AppendLegalMoves appends the legal moves of side to dst, reusing its capacity.
func (r Rules) AppendLegalMoves(dst []Move, p *Position, side Color) []Move {
	start := len(dst)
	for own := p.ColorOccupancy(side); own != 0; {
		sq := own.PopLSB()
		dst = r.appendPseudo(dst, p, sq, side, p.TypeAt(sq, side))
	}
	return r.filterLegal(dst[:start], dst[start:], p, side)
}

// filterLegal copies the legal subset of candidates into dst. dst may alias candidates.
func (r Rules) filterLegal(dst, candidates []Move, p *Position, side Color) []Move {
	for _, m := range candidates {
		if r.IsLegal(p, m, side) {
			dst = append(dst, m)
		}
	}
	return dst
}

// ==========================
// Status
// ==========================

// HasLegalMoves reports whether side has at least one legal move.
func (r Rules) HasLegalMoves(p *Position, side Color) bool {
	var buf [32]Move
	for own := p.ColorOccupancy(side); own != 0; {
		sq := own.PopLSB()
		for _, m := range r.appendPseudo(buf[:0], p, sq, side, p.TypeAt(sq, side)) {
			if r.IsLegal(p, m, side) {
				return true
			}
		}
	}
	return false
}

// InCheckmate reports whether side is in check with no legal move.
func (r Rules) InCheckmate(p *Position, side Color) bool {
	return InCheck(side, p) && !r.HasLegalMoves(p, side)
}

// InStalemate reports whether side is not in check but has no legal move.
func (r Rules) InStalemate(p *Position, side Color) bool {
	return !InCheck(side, p) && !r.HasLegalMoves(p, side)
}

// ==========================
// Position shorthands (Standard rules)
// ==========================

// MovesFrom returns the legal moves of the piece of side on sq under Standard rules.
func (p *Position) MovesFrom(sq Square, side Color) ([]Move, bool) {
	return Standard.MovesFrom(p, sq, side)
}

// LegalMoves returns every legal move of side under Standard rules.
func (p *Position) LegalMoves(side Color) []Move { return Standard.LegalMoves(p, side) }

// HasLegalMoves reports whether side can move under Standard rules.
func (p *Position) HasLegalMoves(side Color) bool { return Standard.HasLegalMoves(p, side) }

// InCheckmate reports whether side is checkmated.
func (p *Position) InCheckmate(side Color) bool { return Standard.InCheckmate(p, side) }

// InStalemate reports whether side is stalemated.
func (p *Position) InStalemate(side Color) bool { return Standard.InStalemate(p, side) }

// InCheck reports whether side's king is attacked.
func (p *Position) InCheck(side Color) bool { return InCheck(side, p) }
