// Package crosscheck compares bitmg perft divides against independent move generators.
package crosscheck

import (
	"fmt"

	"github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
)

// Oracle is a reference move generator. Divide returns the leaf count below every legal root
// move, keyed by coordinate notation ("e2e4", "e7e8q").
type Oracle interface {
	Name() string
	Divide(fen string, depth int) (map[string]uint64, error)
}

// Default returns every available oracle.
func Default() []Oracle {
	return []Oracle{Dragontooth{}, Goose{}, Notnil{}}
}

// ==========================
// dragontoothmg
// ==========================

// Dragontooth wraps github.com/dylhunn/dragontoothmg.
type Dragontooth struct{}

func (Dragontooth) Name() string { return "dragontoothmg" }

func (Dragontooth) Divide(fen string, depth int) (map[string]uint64, error) {
	if depth <= 0 {
		return map[string]uint64{}, nil
	}
	b := dragontoothmg.ParseFen(fen)
	out := make(map[string]uint64)
	for _, m := range b.GenerateLegalMoves() {
		undo := b.Apply(m)
		out[m.String()] = dragontoothPerft(&b, depth-1)
		undo()
	}
	return out, nil
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		undo := b.Apply(m)
		nodes += dragontoothPerft(b, depth-1)
		undo()
	}
	return nodes
}

// ==========================
// GooseEngineMG
// ==========================

// Goose wraps github.com/Oliverans/GooseEngineMG/goosemg.
type Goose struct{}

func (Goose) Name() string { return "goosemg" }

func (Goose) Divide(fen string, depth int) (map[string]uint64, error) {
	b, err := goosemg.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("goosemg: %w", err)
	}
	out := make(map[string]uint64)
	for m, n := range goosemg.PerftDivide(b, depth) {
		out[m.String()] = n
	}
	return out, nil
}

// ==========================
// notnil/chess
// ==========================

// Notnil wraps github.com/notnil/chess. It is much slower than the bitboard generators and is
// best kept to shallow depths.
type Notnil struct{}

func (Notnil) Name() string { return "notnil/chess" }

func (Notnil) Divide(fen string, depth int) (map[string]uint64, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("notnil/chess: %w", err)
	}
	pos := chess.NewGame(opt).Position()
	out := make(map[string]uint64)
	if depth <= 0 {
		return out, nil
	}
	for _, m := range pos.ValidMoves() {
		out[m.String()] = notnilPerft(pos.Update(m), depth-1)
	}
	return out, nil
}

func notnilPerft(pos *chess.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := pos.ValidMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		nodes += notnilPerft(pos.Update(m), depth-1)
	}
	return nodes
}
