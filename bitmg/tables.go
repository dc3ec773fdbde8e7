package bitmg

import "sync"

// AttackTables holds the precomputed geometry shared by every position.
// The tables are immutable once built and safe for concurrent readers.
type AttackTables struct {
	// Mask[sq] is the single-bit mask of sq.
	Mask [64]Bitboard

	// Attack[pt][sq] is the reach of a piece of type pt on an empty board.
	// The Pawn plane is empty; pawn captures live in PawnAttack.
	Attack [NumPieceTypes][64]Bitboard

	// Blocker[pt][sq] holds the squares whose occupancy can cut a slider's reach.
	// The last square of each ray is left out: nothing lies behind it.
	Blocker [NumPieceTypes][64]Bitboard

	// PawnAttack[color][sq] is the capture pattern of a pawn of that color.
	PawnAttack [2][64]Bitboard

	// Behind[from][b] holds the squares strictly beyond b on the ray from 'from'.
	Behind [64][64]Bitboard

	// Between[a][b] holds the squares strictly between two aligned squares.
	Between [64][64]Bitboard
}

var (
	tablesOnce sync.Once
	tables     *AttackTables
)

// Tables returns the process-wide attack tables, building them on first use.
func Tables() *AttackTables {
	tablesOnce.Do(func() { tables = buildTables() })
	return tables
}

// ==========================
// 0x88 coordinates
// ==========================

// In 0x88 layout a square is rank*16 + file; any index with a bit of 0x88 set is off the board,
// so a ray walk only needs one mask test per step.

var (
	rookSteps   = [4]int{16, -16, 1, -1}
	bishopSteps = [4]int{17, 15, -15, -17}
	kingSteps   = [8]int{16, -16, 1, -1, 17, 15, -15, -17}
	knightSteps = [8]int{33, 31, 18, 14, -14, -18, -31, -33}
	pawnSteps   = [2][2]int{{15, 17}, {-15, -17}}
)

// stepByDelta maps (to88 - from88 + 119) to the unit step joining the two squares, or 0.
var stepByDelta [239]int

func init88() {
	for _, step := range kingSteps {
		for dist := 1; dist < 8; dist++ {
			stepByDelta[step*dist+119] = step
		}
	}
}

func to88(sq Square) int { return int(sq) + int(sq)&^7 }

func from88(s88 int) Square { return Square((s88 + s88&7) >> 1) }

func valid88(s88 int) bool { return s88 >= 0 && s88 < 128 && s88&0x88 == 0 }

// step88 returns the compass step leading from one 0x88 square to another, or 0 when
// the squares do not share a rank, file or diagonal.
func step88(from, to int) int { return stepByDelta[to-from+119] }

// ==========================
// Generation
// ==========================

func buildTables() *AttackTables {
	init88()
	t := &AttackTables{}
	for sq := 0; sq < 64; sq++ {
		t.Mask[sq] = 1 << uint(sq)
	}

	for sq := Square(0); sq < 64; sq++ {
		s88 := to88(sq)
		t.Attack[King][sq] = t.leap(s88, kingSteps[:])
		t.Attack[Knight][sq] = t.leap(s88, knightSteps[:])
		t.Attack[Rook][sq] = t.slide(s88, rookSteps[:])
		t.Attack[Bishop][sq] = t.slide(s88, bishopSteps[:])
		t.Attack[Queen][sq] = t.Attack[Rook][sq] | t.Attack[Bishop][sq]
		t.PawnAttack[White][sq] = t.leap(s88, pawnSteps[White][:])
		t.PawnAttack[Black][sq] = t.leap(s88, pawnSteps[Black][:])
	}

	for a := Square(0); a < 64; a++ {
		for b := Square(0); b < 64; b++ {
			t.Between[a][b] = t.between(a, b)
			t.Behind[a][b] = t.behind(a, b)
		}
	}

	for _, pt := range [3]PieceType{Queen, Rook, Bishop} {
		for sq := 0; sq < 64; sq++ {
			reach := t.Attack[pt][sq]
			for bb := reach; bb != 0; {
				b := bb.PopLSB()
				if t.Behind[sq][b] != 0 {
					t.Blocker[pt][sq] |= t.Mask[b]
				}
			}
		}
	}
	return t
}

func (t *AttackTables) leap(s88 int, steps []int) Bitboard {
	var bb Bitboard
	for _, d := range steps {
		if to := s88 + d; valid88(to) {
			bb |= t.Mask[from88(to)]
		}
	}
	return bb
}

func (t *AttackTables) slide(s88 int, steps []int) Bitboard {
	var bb Bitboard
	for _, d := range steps {
		for to := s88 + d; valid88(to); to += d {
			bb |= t.Mask[from88(to)]
		}
	}
	return bb
}

func (t *AttackTables) between(from, to Square) Bitboard {
	f, e := to88(from), to88(to)
	step := step88(f, e)
	if step == 0 {
		return 0
	}
	var bb Bitboard
	for s := f + step; s != e; s += step {
		bb |= t.Mask[from88(s)]
	}
	return bb
}

func (t *AttackTables) behind(from, to Square) Bitboard {
	f, e := to88(from), to88(to)
	step := step88(f, e)
	if step == 0 {
		return 0
	}
	var bb Bitboard
	for s := e + step; valid88(s); s += step {
		bb |= t.Mask[from88(s)]
	}
	return bb
}
