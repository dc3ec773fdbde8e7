package bitmg

import (
	"fmt"
	"strings"
)

// MoveKind tags the variant of a Move. Each variant carries exactly the data Apply needs.
type MoveKind uint8

const (
	// Normal covers quiet moves and ordinary captures.
	Normal MoveKind = iota
	// DoublePawnPush is a pawn advancing two squares from its home rank.
	DoublePawnPush
	// EnPassantCapture takes the pawn on Captured, which is not the destination square.
	EnPassantCapture
	// Castle moves the king two squares and the rook from RookFrom to RookTo.
	Castle
	// Promotion replaces the pawn with Promote on the last rank.
	Promotion
)

func (k MoveKind) String() string {
	switch k {
	case Normal:
		return "normal"
	case DoublePawnPush:
		return "double-push"
	case EnPassantCapture:
		return "en-passant"
	case Castle:
		return "castle"
	case Promotion:
		return "promotion"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Move is an immutable move value. Fields outside the active variant are zero-valued
// (squares: NoSquare) so that two equal moves compare equal with ==.
type Move struct {
	From  Square
	To    Square
	Piece PieceType
	Kind  MoveKind

	// Promote is the new piece type for Promotion.
	Promote PieceType
	// Captured is the square of the pawn taken by EnPassantCapture.
	Captured Square
	// RookFrom and RookTo describe the rook relocation of Castle.
	RookFrom Square
	RookTo   Square
}

// MoveKey identifies a move by (from, to, piece). Promotions to different pieces share a key.
type MoveKey struct {
	From, To Square
	Piece    PieceType
}

// NewMove builds a Normal move.
func NewMove(from, to Square, pt PieceType) Move {
	return Move{From: from, To: to, Piece: pt, Kind: Normal, Promote: NoPieceType, Captured: NoSquare, RookFrom: NoSquare, RookTo: NoSquare}
}

// NewDoublePush builds a DoublePawnPush move.
func NewDoublePush(from, to Square) Move {
	m := NewMove(from, to, Pawn)
	m.Kind = DoublePawnPush
	return m
}

// NewEnPassant builds an EnPassantCapture that removes the pawn on captured.
func NewEnPassant(from, to, captured Square) Move {
	m := NewMove(from, to, Pawn)
	m.Kind = EnPassantCapture
	m.Captured = captured
	return m
}

// NewCastle builds a Castle move for the king with the given rook relocation.
func NewCastle(kingFrom, kingTo, rookFrom, rookTo Square) Move {
	m := NewMove(kingFrom, kingTo, King)
	m.Kind = Castle
	m.RookFrom, m.RookTo = rookFrom, rookTo
	return m
}

// NewPromotion builds a pawn move that promotes to pt.
func NewPromotion(from, to Square, pt PieceType) Move {
	m := NewMove(from, to, Pawn)
	m.Kind = Promotion
	m.Promote = pt
	return m
}

// Key returns the (from, to, piece) triple of the move.
func (m Move) Key() MoveKey { return MoveKey{From: m.From, To: m.To, Piece: m.Piece} }

// String produces coordinate notation: "e2e4", castling as the king move "e1g1",
// promotions with a lowercase suffix "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Kind == Promotion {
		s += string(m.Promote.Letter())
	}
	return s
}

// ParseMove resolves coordinate notation against the legal moves of side.
func (p *Position) ParseMove(text string, side Color) (Move, error) {
	text = strings.TrimSpace(strings.ToLower(text))
	if len(text) < 4 || len(text) > 5 {
		return Move{}, fmt.Errorf("%w: %q", ErrIllegalMove, text)
	}
	if _, err := ParseSquare(text[0:2]); err != nil {
		return Move{}, err
	}
	if _, err := ParseSquare(text[2:4]); err != nil {
		return Move{}, err
	}
	for _, m := range p.LegalMoves(side) {
		if m.String() == text {
			return m, nil
		}
	}
	return Move{}, fmt.Errorf("%w: %s for %s", ErrIllegalMove, text, side)
}
