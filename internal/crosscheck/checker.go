package crosscheck

import (
	"fmt"
	"time"

	"github.com/apex/log"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"chess-rules/bitmg"
)

// Mismatch is one root move on which bitmg and an oracle disagree.
// A move missing on one side has a zero count there.
type Mismatch struct {
	Oracle string
	Move   string
	Kind   MismatchKind
	Ours   uint64
	Theirs uint64
}

// MismatchKind classifies a Mismatch.
type MismatchKind string

const (
	// Missing: the oracle generates the move, bitmg does not.
	Missing MismatchKind = "missing"
	// Extra: bitmg generates a move the oracle does not.
	Extra MismatchKind = "extra"
	// Count: both generate the move but the subtree sizes differ.
	Count MismatchKind = "count"
)

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: %s ours=%d %s=%d", m.Move, m.Kind, m.Ours, m.Oracle, m.Theirs)
}

// Report summarizes a cross-check at one depth.
type Report struct {
	FEN        string
	Depth      int
	Nodes      uint64
	Oracles    []string
	Mismatches []Mismatch
}

// OK reports whether every oracle agreed on every root move.
func (r Report) OK() bool { return len(r.Mismatches) == 0 }

// Checker runs bitmg against a set of oracles.
type Checker struct {
	Rules   bitmg.Rules
	Oracles []Oracle
	Log     log.Interface
}

// New returns a Checker with Standard rules, every default oracle and the global logger.
func New() *Checker {
	return &Checker{Rules: bitmg.Standard, Oracles: Default(), Log: log.Log}
}

// Check divides fen at depth with bitmg and with every oracle. Mismatches are grouped by
// oracle in Oracles order and sorted by move within a group. An oracle error aborts the check.
func (c *Checker) Check(fen string, depth int) (Report, error) {
	setup, err := bitmg.ParseFEN(fen)
	if err != nil {
		return Report{}, err
	}
	logger := c.logger().WithFields(log.Fields{"fen": fen, "depth": depth})

	ours := make(map[string]uint64)
	for m, n := range c.Rules.PerftDivide(setup.Position, setup.SideToMove, depth) {
		ours[m.String()] = n
	}
	rep := Report{FEN: fen, Depth: depth, Nodes: sum(ours)}

	for _, o := range c.Oracles {
		start := time.Now()
		theirs, err := o.Divide(fen, depth)
		if err != nil {
			return rep, fmt.Errorf("crosscheck: oracle %s: %w", o.Name(), err)
		}
		found := Compare(o.Name(), ours, theirs)
		entry := logger.WithFields(log.Fields{
			"oracle":     o.Name(),
			"nodes":      sum(theirs),
			"mismatches": len(found),
			"elapsed":    time.Since(start).Round(time.Millisecond),
		})
		if len(found) > 0 {
			entry.Warn("divide mismatch")
			for _, m := range found {
				logger.WithFields(log.Fields{"oracle": m.Oracle, "move": m.Move, "ours": m.Ours, "theirs": m.Theirs}).Debug(string(m.Kind))
			}
		} else {
			entry.Info("divide agrees")
		}
		rep.Oracles = append(rep.Oracles, o.Name())
		rep.Mismatches = append(rep.Mismatches, found...)
	}
	return rep, nil
}

// Compare lists the root moves whose counts differ between two divides, sorted by move.
func Compare(oracle string, ours, theirs map[string]uint64) []Mismatch {
	keys := maps.Keys(ours)
	for k := range theirs {
		if _, ok := ours[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	var out []Mismatch
	for _, k := range keys {
		o, inOurs := ours[k]
		t, inTheirs := theirs[k]
		m := Mismatch{Oracle: oracle, Move: k, Ours: o, Theirs: t}
		switch {
		case !inOurs:
			m.Kind = Missing
		case !inTheirs:
			m.Kind = Extra
		case o != t:
			m.Kind = Count
		default:
			continue
		}
		out = append(out, m)
	}
	return out
}

// SortedMoves returns the keys of a divide in lexical order.
func SortedMoves(div map[string]uint64) []string {
	keys := maps.Keys(div)
	slices.Sort(keys)
	return keys
}

func sum(div map[string]uint64) uint64 {
	var n uint64
	for _, v := range div {
		n += v
	}
	return n
}

func (c *Checker) logger() log.Interface {
	if c.Log == nil {
		return log.Log
	}
	return c.Log
}
