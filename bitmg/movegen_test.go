package bitmg_test

import (
	"sort"
	"testing"

	"chess-rules/bitmg"
)

func moveStrings(moves []bitmg.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	sort.Strings(out)
	return out
}

func sameMoves(t *testing.T, label string, got []bitmg.Move, want ...string) {
	t.Helper()
	gs := moveStrings(got)
	sort.Strings(want)
	if len(gs) != len(want) {
		t.Fatalf("%s: got %v want %v", label, gs, want)
	}
	for i := range gs {
		if gs[i] != want[i] {
			t.Fatalf("%s: got %v want %v", label, gs, want)
		}
	}
}

func TestMovesFromSquare(t *testing.T) {
	p := bitmg.NewPosition()
	moves, ok := p.MovesFrom(9, bitmg.White)
	if !ok {
		t.Fatalf("b2 should hold a white piece")
	}
	sameMoves(t, "pawn b2", moves, "b2b3", "b2b4")
	if moves[0].Piece != bitmg.Pawn {
		t.Fatalf("pawn move carries piece %s", moves[0].Piece)
	}

	p.SetPiece(35, bitmg.Black, bitmg.Rook)
	moves, _ = p.MovesFrom(35, bitmg.Black)
	sameMoves(t, "rook d5", moves,
		"d5d6", "d5d4", "d5d3", "d5d2",
		"d5a5", "d5b5", "d5c5", "d5e5", "d5f5", "d5g5", "d5h5")

	p = bitmg.NewPosition()
	p.SetPiece(20, bitmg.Black, bitmg.Bishop)
	moves, _ = p.MovesFrom(20, bitmg.Black)
	sameMoves(t, "bishop e3", moves, "e3d4", "e3c5", "e3b6", "e3f4", "e3g5", "e3h6", "e3d2", "e3f2")

	p = bitmg.NewPosition()
	p.SetPiece(43, bitmg.White, bitmg.Knight)
	moves, _ = p.MovesFrom(43, bitmg.White)
	sameMoves(t, "knight d6", moves, "d6b7", "d6f7", "d6c8", "d6e8", "d6b5", "d6f5", "d6c4", "d6e4")

	p = bitmg.NewPosition()
	p.SetPiece(7, bitmg.Black, bitmg.Queen)
	moves, _ = p.MovesFrom(7, bitmg.Black)
	sameMoves(t, "queen h1", moves, "h1g1", "h1g2", "h1h2")
}

func TestMovesFromEmptyAndBlocked(t *testing.T) {
	p := bitmg.NewPosition()
	if moves, ok := p.MovesFrom(27, bitmg.White); ok || moves != nil {
		t.Fatalf("empty square: got %v %v want nil false", moves, ok)
	}
	if _, ok := p.MovesFrom(12, bitmg.Black); ok {
		t.Fatalf("e2 holds no black piece")
	}
	moves, ok := p.MovesFrom(bitmg.E8, bitmg.Black)
	if !ok || moves == nil || len(moves) != 0 {
		t.Fatalf("boxed-in king: got %v %v want empty true", moves, ok)
	}
}

func TestPinnedBishopHasNoMoves(t *testing.T) {
	p := bitmg.NewPosition()
	p.RemovePiece(12)
	p.SetPiece(28, bitmg.Black, bitmg.Rook)
	p.SetPiece(12, bitmg.White, bitmg.Bishop)
	moves, ok := p.MovesFrom(12, bitmg.White)
	if !ok || len(moves) != 0 {
		t.Fatalf("pinned bishop: got %v want none", moveStrings(moves))
	}
	pseudo, _ := bitmg.Standard.PseudoMovesFrom(&p, 12, bitmg.White)
	if len(pseudo) == 0 {
		t.Fatalf("pinned bishop should still have pseudo-legal moves")
	}
}

func TestPawnPushes(t *testing.T) {
	p := bitmg.NewPosition()
	for sq := bitmg.Square(0); sq < 64; sq++ {
		var want bitmg.Bitboard
		switch {
		case sq >= 8 && sq < 16:
			want = bitmg.Bitboard(0).Set(sq + 8).Set(sq + 16)
		case sq >= 16 && sq < 40:
			want = bitmg.Bitboard(0).Set(sq + 8)
		}
		if got := p.PawnPushes(sq, bitmg.White); got != want {
			t.Fatalf("white pushes from %s:\n%s\nwant\n%s", sq, got, want)
		}
	}
	for sq := bitmg.Square(0); sq < 64; sq++ {
		var want bitmg.Bitboard
		switch {
		case sq >= 48 && sq < 56:
			want = bitmg.Bitboard(0).Set(sq - 8).Set(sq - 16)
		case sq >= 24 && sq < 48:
			want = bitmg.Bitboard(0).Set(sq - 8)
		}
		if got := p.PawnPushes(sq, bitmg.Black); got != want {
			t.Fatalf("black pushes from %s:\n%s\nwant\n%s", sq, got, want)
		}
	}
}

func TestPawnCaptures(t *testing.T) {
	p := bitmg.NewPosition()
	p.SetPiece(24, bitmg.Black, bitmg.Bishop)
	p.SetPiece(26, bitmg.Black, bitmg.Bishop)

	cases := []struct {
		from bitmg.Square
		side bitmg.Color
		want []bitmg.Square
	}{
		{17, bitmg.White, []bitmg.Square{24, 26}},
		{41, bitmg.White, []bitmg.Square{48, 50}},
		{17, bitmg.Black, []bitmg.Square{8, 10}},
		{19, bitmg.Black, []bitmg.Square{10, 12}},
	}
	for _, tc := range cases {
		var want bitmg.Bitboard
		for _, sq := range tc.want {
			want = want.Set(sq)
		}
		if got := p.PawnCaptures(tc.from, tc.side); got != want {
			t.Fatalf("%s captures from %s:\n%s\nwant\n%s", tc.side, tc.from, got, want)
		}
	}
}

func TestPawnTargets(t *testing.T) {
	for from := bitmg.Square(9); from < 15; from++ {
		p := bitmg.NewPosition()
		p.SetPiece(from+7, bitmg.Black, bitmg.Bishop)
		p.SetPiece(from+9, bitmg.Black, bitmg.Bishop)
		want := bitmg.Bitboard(0).Set(from + 7).Set(from + 8).Set(from + 9).Set(from + 16)
		if got := p.PawnTargets(from, bitmg.White); got != want {
			t.Fatalf("white targets from %s:\n%s\nwant\n%s", from, got, want)
		}
	}
	for from := bitmg.Square(49); from < 55; from++ {
		p := bitmg.NewPosition()
		p.SetPiece(from-7, bitmg.White, bitmg.Bishop)
		p.SetPiece(from-9, bitmg.White, bitmg.Bishop)
		want := bitmg.Bitboard(0).Set(from - 7).Set(from - 8).Set(from - 9).Set(from - 16)
		if got := p.PawnTargets(from, bitmg.Black); got != want {
			t.Fatalf("black targets from %s:\n%s\nwant\n%s", from, got, want)
		}
	}
}

func TestPromotionsAndDoublePushKinds(t *testing.T) {
	s := bitmg.MustParseFEN("1n5k/P7/8/8/8/8/4P3/7K w - - 0 1")
	moves, _ := s.Position.MovesFrom(48, bitmg.White)
	sameMoves(t, "a7 promotions", moves, "a7a8q", "a7a8r", "a7a8b", "a7a8n", "a7b8q", "a7b8r", "a7b8b", "a7b8n")
	for _, m := range moves {
		if m.Kind != bitmg.Promotion {
			t.Fatalf("%s: kind %s want promotion", m, m.Kind)
		}
	}
	moves, _ = s.Position.MovesFrom(12, bitmg.White)
	for _, m := range moves {
		want := bitmg.Normal
		if m.To == 28 {
			want = bitmg.DoublePawnPush
		}
		if m.Kind != want {
			t.Fatalf("%s: kind %s want %s", m, m.Kind, want)
		}
	}
}

func castleMoves(r bitmg.Rules, fen string) []string {
	s := bitmg.MustParseFEN(fen)
	var out []string
	for _, m := range r.LegalMoves(&s.Position, s.SideToMove) {
		if m.Kind == bitmg.Castle {
			out = append(out, m.String())
		}
	}
	sort.Strings(out)
	return out
}

func TestCastlingRules(t *testing.T) {
	cases := []struct {
		name     string
		fen      string
		standard []string
		relaxed  []string
	}{
		{"both free", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", []string{"e1c1", "e1g1"}, []string{"e1c1", "e1g1"}},
		{"black both free", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", []string{"e8c8", "e8g8"}, []string{"e8c8", "e8g8"}},
		{"no rights", "r3k2r/8/8/8/8/8/8/R3K2R w kq - 0 1", nil, nil},
		{"path blocked", "r3k2r/8/8/8/8/8/8/RN2K1NR w KQkq - 0 1", nil, nil},
		{"transit attacked", "r3kr2/8/8/8/8/8/8/R3K2R w KQq - 0 1", []string{"e1c1"}, []string{"e1c1", "e1g1"}},
		{"in check", "4k3/4r3/8/8/8/8/8/R3K2R w KQ - 0 1", nil, []string{"e1c1", "e1g1"}},
		{"destination attacked", "4k3/6r1/8/8/8/8/8/R3K2R w KQ - 0 1", []string{"e1c1"}, []string{"e1c1"}},
		{"b1 attacked only", "4k3/1r6/8/8/8/8/8/R3K2R w KQ - 0 1", []string{"e1c1", "e1g1"}, []string{"e1c1", "e1g1"}},
		{"rook missing", "4k3/8/8/8/8/8/8/4K2R w KQ - 0 1", []string{"e1g1"}, []string{"e1g1"}},
	}
	for _, tc := range cases {
		for _, run := range []struct {
			label string
			rules bitmg.Rules
			want  []string
		}{{"standard", bitmg.Standard, tc.standard}, {"relaxed", bitmg.Relaxed, tc.relaxed}} {
			got := castleMoves(run.rules, tc.fen)
			if len(got) != len(run.want) {
				t.Fatalf("%s/%s: got %v want %v", tc.name, run.label, got, run.want)
			}
			for i := range got {
				if got[i] != run.want[i] {
					t.Fatalf("%s/%s: got %v want %v", tc.name, run.label, got, run.want)
				}
			}
		}
	}
}

func TestCastleMovesRook(t *testing.T) {
	s := bitmg.MustParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	m, err := s.Position.ParseMove("e1c1", bitmg.White)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if m.Kind != bitmg.Castle || m.RookFrom != bitmg.A1 || m.RookTo != bitmg.D1 {
		t.Fatalf("castle move %+v", m)
	}
	p := s.Position.After(m, bitmg.White)
	if pt := p.TypeAt(bitmg.D1, bitmg.White); pt != bitmg.Rook {
		t.Fatalf("d1 holds %s want rook", pt)
	}
	if p.IsOccupied(bitmg.A1) || p.IsOccupied(bitmg.E1) {
		t.Fatalf("a1/e1 should be empty after castling")
	}
	if p.Castling.WhiteKingside || p.Castling.WhiteQueenside || !p.Castling.BlackKingside {
		t.Fatalf("castling rights after e1c1: %+v", p.Castling)
	}
}

func TestEnPassant(t *testing.T) {
	s := bitmg.MustParseFEN("k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	m, err := s.Position.ParseMove("e5d6", bitmg.White)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if m.Kind != bitmg.EnPassantCapture || m.Captured != 35 {
		t.Fatalf("en-passant move %+v", m)
	}
	p := s.Position.After(m, bitmg.White)
	if p.IsOccupied(35) {
		t.Fatalf("captured pawn still on d5")
	}
	if pt := p.TypeAt(43, bitmg.White); pt != bitmg.Pawn {
		t.Fatalf("d6 holds %s want pawn", pt)
	}
	if p.EnPassant != bitmg.NoSquare {
		t.Fatalf("en-passant marker not cleared: %s", p.EnPassant)
	}

	// The right expires after one reply.
	p = bitmg.NewPosition()
	p.Apply(bitmg.NewDoublePush(12, 28), bitmg.White)
	if p.EnPassant != 20 {
		t.Fatalf("marker after e2e4: got %s want e3", p.EnPassant)
	}
	p.Apply(bitmg.NewMove(48, 40, bitmg.Pawn), bitmg.Black)
	if p.EnPassant != bitmg.NoSquare {
		t.Fatalf("marker after a7a6: got %s want -", p.EnPassant)
	}
}

func TestEnPassantExposingKingIsIllegal(t *testing.T) {
	// Taking on d6 would clear the fifth rank between the a5 rook and the h5 king.
	s := bitmg.MustParseFEN("8/8/8/r2pP2K/8/8/8/k7 w - d6 0 2")
	if _, err := s.Position.ParseMove("e5d6", bitmg.White); err == nil {
		t.Fatalf("en-passant capture exposing the king was accepted")
	}
}

func TestEnPassantNeedsVictim(t *testing.T) {
	// A stale marker without a pawn behind it produces no capture.
	s := bitmg.MustParseFEN("k7/8/8/4P3/8/8/8/7K w - d6 0 2")
	moves, _ := s.Position.MovesFrom(36, bitmg.White)
	sameMoves(t, "e5 without victim", moves, "e5e6")
}

func TestStatus(t *testing.T) {
	cases := []struct {
		name      string
		fen       string
		check     bool
		mate      bool
		stalemate bool
	}{
		{"start", bitmg.FENStartPos, false, false, false},
		{"fool's mate", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", true, true, false},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", false, false, true},
		{"rook beside the file", "4k3/8/8/8/8/8/8/4KR2 b - - 0 1", false, false, false},
		{"check with escape", "4k3/8/8/8/8/8/8/4R1K1 b - - 0 1", true, false, false},
	}
	for _, tc := range cases {
		s := bitmg.MustParseFEN(tc.fen)
		p, side := &s.Position, s.SideToMove
		if got := p.InCheck(side); got != tc.check {
			t.Fatalf("%s: InCheck got %v want %v", tc.name, got, tc.check)
		}
		if got := p.InCheckmate(side); got != tc.mate {
			t.Fatalf("%s: InCheckmate got %v want %v", tc.name, got, tc.mate)
		}
		if got := p.InStalemate(side); got != tc.stalemate {
			t.Fatalf("%s: InStalemate got %v want %v", tc.name, got, tc.stalemate)
		}
		if got, want := p.HasLegalMoves(side), !tc.mate && !tc.stalemate; got != want {
			t.Fatalf("%s: HasLegalMoves got %v want %v", tc.name, got, want)
		}
	}
}

func TestAppendLegalMovesKeepsPrefix(t *testing.T) {
	p := bitmg.NewPosition()
	sentinel := bitmg.NewMove(0, 1, bitmg.Rook)
	got := bitmg.Standard.AppendLegalMoves([]bitmg.Move{sentinel}, &p, bitmg.White)
	if len(got) != 21 || got[0] != sentinel {
		t.Fatalf("append legal moves: got %d moves, first %s", len(got), got[0])
	}
}

func TestLegalMovesNeverLeaveKingInCheck(t *testing.T) {
	for _, fen := range []string{kiwipete, position4, position5} {
		s := bitmg.MustParseFEN(fen)
		for _, m := range s.Position.LegalMoves(s.SideToMove) {
			after := s.Position.After(m, s.SideToMove)
			if after.InCheck(s.SideToMove) {
				t.Fatalf("%s: %s leaves the king in check", fen, m)
			}
		}
	}
}
