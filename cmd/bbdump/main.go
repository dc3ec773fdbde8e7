// Command bbdump prints attack-table entries and position occupancy as bitboard grids.
//
//	bbdump -piece rook -square d4
//	bbdump -table between -square a1 -to h8
//	bbdump -fen "<fen>" -square g1 -svg moves.svg
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"

	"chess-rules/bitmg"
	"chess-rules/internal/render"
)

var pieceNames = map[string]bitmg.PieceType{
	"king":   bitmg.King,
	"queen":  bitmg.Queen,
	"rook":   bitmg.Rook,
	"bishop": bitmg.Bishop,
	"knight": bitmg.Knight,
	"pawn":   bitmg.Pawn,
}

type options struct {
	piece, square, table, to, color, fen, svgOut string
}

func main() {
	var o options
	flag.StringVar(&o.piece, "piece", "", "Piece type for -table attack|blocker (king, queen, rook, bishop, knight, pawn)")
	flag.StringVar(&o.square, "square", "", "Square to inspect (e.g. d4)")
	flag.StringVar(&o.table, "table", "attack", "Table to print: attack, blocker, behind, between")
	flag.StringVar(&o.to, "to", "", "Second square for -table behind|between")
	flag.StringVar(&o.color, "color", "white", "Pawn color for -piece pawn")
	flag.StringVar(&o.fen, "fen", "", "Print a position's occupancy, or the legal targets of -square")
	flag.StringVar(&o.svgOut, "svg", "", "Also write the result as an SVG diagram to this file")
	level := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log.SetHandler(cli.New(os.Stderr))
	lvl, err := log.ParseLevel(*level)
	if err != nil {
		fatal(err, "parse -log-level")
	}
	log.SetLevel(lvl)

	if o.fen != "" {
		err = dumpPosition(o)
	} else {
		err = dumpTable(o)
	}
	if err != nil {
		fatal(err, "bbdump")
	}
}

func dumpTable(o options) error {
	from, err := bitmg.ParseSquare(o.square)
	if err != nil {
		return fmt.Errorf("-square: %w", err)
	}
	t := bitmg.Tables()
	var bb bitmg.Bitboard
	var title string

	switch o.table {
	case "attack", "blocker":
		pt, ok := pieceNames[strings.ToLower(o.piece)]
		if !ok {
			return fmt.Errorf("-piece: unknown piece %q", o.piece)
		}
		switch {
		case pt == bitmg.Pawn && o.table == "attack":
			c := bitmg.White
			if strings.HasPrefix(strings.ToLower(o.color), "b") {
				c = bitmg.Black
			}
			bb = t.PawnAttack[c][from]
		case pt == bitmg.Pawn:
			return errors.New("pawns have no blocker table")
		case o.table == "attack":
			bb = t.Attack[pt][from]
		default:
			bb = t.Blocker[pt][from]
		}
		title = fmt.Sprintf("%s %s %s", o.table, pt, from)
	case "behind", "between":
		to, err := bitmg.ParseSquare(o.to)
		if err != nil {
			return fmt.Errorf("-to: %w", err)
		}
		if o.table == "behind" {
			bb = t.Behind[from][to]
		} else {
			bb = t.Between[from][to]
		}
		title = fmt.Sprintf("%s %s %s", o.table, from, to)
	default:
		return fmt.Errorf("-table: unknown table %q", o.table)
	}

	log.WithFields(log.Fields{"table": o.table, "square": from.String(), "count": bb.Count()}).Debug(title)
	fmt.Print(bb)
	if o.svgOut != "" {
		return writeSVG(o.svgOut, func(f *os.File) error { return render.Bitboard(f, bb, title) })
	}
	return nil
}

func dumpPosition(o options) error {
	setup, err := bitmg.ParseFEN(o.fen)
	if err != nil {
		return err
	}
	p := &setup.Position
	bb := p.Occupied()
	var highlight bitmg.Bitboard

	if o.square != "" {
		sq, err := bitmg.ParseSquare(o.square)
		if err != nil {
			return fmt.Errorf("-square: %w", err)
		}
		c, _, ok := p.PieceAt(sq)
		if !ok {
			return fmt.Errorf("no piece on %s", sq)
		}
		moves, _ := p.MovesFrom(sq, c)
		for _, m := range moves {
			highlight = highlight.Set(m.To)
		}
		log.WithFields(log.Fields{"square": sq.String(), "moves": len(moves)}).Info("legal targets")
		bb = highlight
	}

	fmt.Print(bb)
	if o.svgOut != "" {
		return writeSVG(o.svgOut, func(f *os.File) error { return render.Position(f, p, highlight) })
	}
	return nil
}

func writeSVG(path string, draw func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := draw(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.WithField("file", path).Info("wrote svg")
	return nil
}

func fatal(err error, msg string) {
	log.WithError(err).Error(msg)
	os.Exit(2)
}
