package bitmg

import (
	"fmt"
)

// Square represents a board position (0-63), rank-major with a1 = 0 and h8 = 63.
type Square int

// NoSquare marks an absent square (e.g. no en-passant target).
const NoSquare Square = -1

// Squares referenced by the castling rules and by tests.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

const (
	A8 Square = 56 + iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// SquareAt returns the square on the given rank and file (both 0-7).
func SquareAt(rank, file int) Square {
	if rank < 0 || rank > 7 || file < 0 || file > 7 {
		panic(fmt.Sprintf("bitmg: rank %d / file %d out of range", rank, file))
	}
	return Square(rank<<3 | file)
}

// Rank returns the 0-based rank (0 = White's back rank).
func (s Square) Rank() int { return int(s) >> 3 }

// File returns the 0-based file (0 = a-file).
func (s Square) File() int { return int(s) & 7 }

// Valid reports whether s is one of the 64 board squares.
func (s Square) Valid() bool { return s >= 0 && s < 64 }

// Mirror returns the square reflected across the middle of the board (a1 <-> a8).
func (s Square) Mirror() Square { return s ^ 56 }

// String returns the algebraic name of the square ("e4"), or "-" for NoSquare.
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(s.File()), '1' + byte(s.Rank())})
}

// ParseSquare converts an algebraic square name such as "e4" into a Square.
func ParseSquare(name string) (Square, error) {
	if len(name) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, name)
	}
	file, rank := name[0], name[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, name)
	}
	return Square(int(rank-'1')*8 + int(file-'a')), nil
}

// mustSquare panics on an out-of-range index. Square arithmetic must never wrap silently.
func mustSquare(s Square) {
	if !s.Valid() {
		panic(fmt.Sprintf("bitmg: square %d out of range", int(s)))
	}
}
