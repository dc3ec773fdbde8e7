package bitmg

import (
	"math/bits"
	"strings"
)

// Bitboard is a set of squares: bit i is set when square i is a member.
type Bitboard uint64

// Rank and file masks.
const (
	FileA Bitboard = 0x0101010101010101
	FileH Bitboard = FileA << 7
	Rank1 Bitboard = 0xFF
	Rank2 Bitboard = Rank1 << 8
	Rank7 Bitboard = Rank1 << 48
	Rank8 Bitboard = Rank1 << 56
)

// SquareMask returns the single-bit mask of sq from the shared mask table.
func SquareMask(sq Square) Bitboard {
	mustSquare(sq)
	return Tables().Mask[sq]
}

// Has reports whether sq is in the set.
func (b Bitboard) Has(sq Square) bool { return b&SquareMask(sq) != 0 }

// Set returns b with sq added.
func (b Bitboard) Set(sq Square) Bitboard { return b | SquareMask(sq) }

// Clear returns b with sq removed.
func (b Bitboard) Clear(sq Square) Bitboard { return b &^ SquareMask(sq) }

// Count returns the number of squares in the set.
func (b Bitboard) Count() int { return bits.OnesCount64(uint64(b)) }

// LSB returns the lowest square in the set, or NoSquare if empty.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLSB removes and returns the lowest square in the set.
func (b *Bitboard) PopLSB() Square {
	sq := Square(bits.TrailingZeros64(uint64(*b)))
	*b &= *b - 1
	return sq
}

// Squares lists the members of the set in ascending order.
func (b Bitboard) Squares() []Square {
	out := make([]Square, 0, b.Count())
	for b != 0 {
		out = append(out, b.PopLSB())
	}
	return out
}

// Mirror flips the set vertically (rank 1 <-> rank 8).
func (b Bitboard) Mirror() Bitboard { return Bitboard(bits.ReverseBytes64(uint64(b))) }

// String renders the set as an 8x8 grid of 0/1 characters, rank 8 on top and the a-file on the left.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			if file > 0 {
				sb.WriteByte(' ')
			}
			if b&(1<<uint(rank*8+file)) != 0 {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
