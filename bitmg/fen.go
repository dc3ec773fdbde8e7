package bitmg

import (
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Setup is a position together with the move-order fields of a FEN record.
// The generator itself only needs Position and SideToMove.
type Setup struct {
	Position       Position
	SideToMove     Color
	HalfmoveClock  int
	FullmoveNumber int
}

func fenError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidFEN}, args...)...)
}

// pieceFromChar converts a FEN character to a color and piece type.
func pieceFromChar(ch rune) (Color, PieceType, bool) {
	c := White
	if ch >= 'a' && ch <= 'z' {
		c = Black
		ch -= 'a' - 'A'
	}
	switch ch {
	case 'K':
		return c, King, true
	case 'Q':
		return c, Queen, true
	case 'R':
		return c, Rook, true
	case 'B':
		return c, Bishop, true
	case 'N':
		return c, Knight, true
	case 'P':
		return c, Pawn, true
	}
	return White, NoPieceType, false
}

// ParseFEN parses a FEN record. The halfmove and fullmove fields are optional and default
// to 0 and 1.
func ParseFEN(fen string) (Setup, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return Setup{}, fenError("not enough fields in %q", fen)
	}

	s := Setup{Position: EmptyPosition(), FullmoveNumber: 1}
	p := &s.Position

	// 1. Piece placement
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return Setup{}, fenError("incorrect number of ranks")
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			c, pt, ok := pieceFromChar(ch)
			if !ok {
				return Setup{}, fenError("unrecognized piece character %q", ch)
			}
			if file >= 8 {
				return Setup{}, fenError("too many squares in rank %d", rank+1)
			}
			p.pieces[c][pt] |= SquareMask(SquareAt(rank, file))
			file++
		}
		if file != 8 {
			return Setup{}, fenError("rank %d does not have 8 columns", rank+1)
		}
	}

	// 2. Side to move
	switch fields[1] {
	case "w":
		s.SideToMove = White
	case "b":
		s.SideToMove = Black
	default:
		return Setup{}, fenError("side to move must be 'w' or 'b'")
	}

	// 3. Castling rights
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				p.Castling.WhiteKingside = true
			case 'Q':
				p.Castling.WhiteQueenside = true
			case 'k':
				p.Castling.BlackKingside = true
			case 'q':
				p.Castling.BlackQueenside = true
			default:
				return Setup{}, fenError("invalid castling rights character %q", ch)
			}
		}
	}

	// 4. En passant target square
	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return Setup{}, fenError("en passant square: %v", err)
		}
		if sq.Rank() != 2 && sq.Rank() != 5 {
			return Setup{}, fenError("en passant square %s not on the third or sixth rank", sq)
		}
		p.EnPassant = sq
	}

	// 5. Halfmove clock, 6. fullmove number
	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return Setup{}, fenError("halfmove clock %q is not a number", fields[4])
		}
		s.HalfmoveClock = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return Setup{}, fenError("fullmove number %q is not a number", fields[5])
		}
		s.FullmoveNumber = n
	}
	return s, nil
}

// MustParseFEN is ParseFEN for literals known to be valid. It panics on error.
func MustParseFEN(fen string) Setup {
	s, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return s
}

// FEN produces the FEN record of the setup.
func (s Setup) FEN() string {
	var sb strings.Builder
	p := &s.Position

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			c, pt, ok := p.PieceAt(SquareAt(rank, file))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			ch := pt.Letter()
			if c == White {
				ch -= 'a' - 'A'
			}
			sb.WriteByte(ch)
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if s.SideToMove == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	castling := ""
	if p.Castling.WhiteKingside {
		castling += "K"
	}
	if p.Castling.WhiteQueenside {
		castling += "Q"
	}
	if p.Castling.BlackKingside {
		castling += "k"
	}
	if p.Castling.BlackQueenside {
		castling += "q"
	}
	if castling == "" {
		castling = "-"
	}
	sb.WriteString(castling)
	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())
	fmt.Fprintf(&sb, " %d %d", s.HalfmoveClock, s.FullmoveNumber)
	return sb.String()
}
