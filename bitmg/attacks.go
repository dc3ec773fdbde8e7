package bitmg

import "fmt"

// Attacks returns the squares reached by a piece of type pt on 'from' given the occupancy.
// Blocking squares are included whatever their color; callers mask out their own pieces.
// Pawns are not accepted: their captures and pushes depend on color and use PawnAttack.
func Attacks(pt PieceType, from Square, occupied Bitboard) Bitboard {
	if pt == Pawn || pt >= NumPieceTypes {
		panic(fmt.Sprintf("bitmg: Attacks called with %s", pt))
	}
	t := Tables()
	reach := t.Attack[pt][from]
	// A square lies past the nearest blocker iff it lies behind some blocker on that ray.
	for b := occupied & t.Blocker[pt][from]; b != 0; b &= b - 1 {
		reach &^= t.Behind[from][b.LSB()]
	}
	return reach
}

// ==========================
// Attack queries
// ==========================

// IsAttacked reports whether sq is attacked by the opponent of side.
// The occupant of sq, if any, does not matter.
func IsAttacked(sq Square, side Color, p *Position) bool {
	return AttackedByPawn(sq, side, p) ||
		AttackedByKnight(sq, side, p) ||
		AttackedByKing(sq, side, p) ||
		AttackedByRook(sq, side, p) ||
		AttackedByBishop(sq, side, p) ||
		AttackedByQueen(sq, side, p)
}

// AttackedByPawn reports whether an enemy pawn attacks sq.
// A pawn of side standing on sq would attack exactly the squares enemy pawns attack sq from.
func AttackedByPawn(sq Square, side Color, p *Position) bool {
	return Tables().PawnAttack[side][sq]&p.pieces[side.Other()][Pawn] != 0
}

// AttackedByKnight reports whether an enemy knight attacks sq.
func AttackedByKnight(sq Square, side Color, p *Position) bool {
	return Tables().Attack[Knight][sq]&p.pieces[side.Other()][Knight] != 0
}

// AttackedByKing reports whether the enemy king attacks sq.
func AttackedByKing(sq Square, side Color, p *Position) bool {
	return Tables().Attack[King][sq]&p.pieces[side.Other()][King] != 0
}

// AttackedByRook reports whether an enemy rook attacks sq.
func AttackedByRook(sq Square, side Color, p *Position) bool {
	return attackedBySlider(sq, side.Other(), p, Rook)
}

// AttackedByBishop reports whether an enemy bishop attacks sq.
func AttackedByBishop(sq Square, side Color, p *Position) bool {
	return attackedBySlider(sq, side.Other(), p, Bishop)
}

// AttackedByQueen reports whether an enemy queen attacks sq.
func AttackedByQueen(sq Square, side Color, p *Position) bool {
	return attackedBySlider(sq, side.Other(), p, Queen)
}

// attackedBySlider checks every slider of type pt owned by 'by' that could reach sq on an
// empty board, and confirms the path between them is clear.
func attackedBySlider(sq Square, by Color, p *Position, pt PieceType) bool {
	t := Tables()
	candidates := p.pieces[by][pt] & t.Attack[pt][sq]
	if candidates == 0 {
		return false
	}
	occ := p.Occupied()
	for candidates != 0 {
		from := candidates.PopLSB()
		if t.Between[from][sq]&occ == 0 {
			return true
		}
	}
	return false
}

// AttackersOf returns the enemy pieces attacking sq.
func AttackersOf(sq Square, side Color, p *Position) Bitboard {
	t := Tables()
	them := &p.pieces[side.Other()]
	occ := p.Occupied()
	attackers := t.PawnAttack[side][sq] & them[Pawn]
	attackers |= t.Attack[Knight][sq] & them[Knight]
	attackers |= t.Attack[King][sq] & them[King]
	attackers |= Attacks(Rook, sq, occ) & (them[Rook] | them[Queen])
	attackers |= Attacks(Bishop, sq, occ) & (them[Bishop] | them[Queen])
	return attackers
}

// InCheck reports whether side's king is attacked. A side without a king is never in check.
func InCheck(side Color, p *Position) bool {
	ks := p.KingSquare(side)
	if ks == NoSquare {
		return false
	}
	return IsAttacked(ks, side, p)
}
