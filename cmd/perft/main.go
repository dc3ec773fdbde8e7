package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"

	"chess-rules/bitmg"
	"chess-rules/internal/crosscheck"
)

func main() {
	fen := flag.String("fen", bitmg.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	workers := flag.Int("workers", 1, "Goroutines for the root moves (0 = GOMAXPROCS)")
	hashBits := flag.Uint("hash", 0, "Memoize subtrees in a 2^N entry table (0 = off)")
	relaxed := flag.Bool("relaxed-castling", false, "Allow castling out of or through check")
	verify := flag.Bool("verify", false, "Cross-check the root divide against reference generators")
	level := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log.SetHandler(cli.New(os.Stderr))
	if lvl, err := log.ParseLevel(*level); err == nil {
		log.SetLevel(lvl)
	} else {
		fatal(err, "parse -log-level")
	}

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	setup, err := bitmg.ParseFEN(*fen)
	if err != nil {
		fatal(err, "parse FEN")
	}
	rules := bitmg.Standard
	if *relaxed {
		rules = bitmg.Relaxed
	}

	if *verify {
		c := &crosscheck.Checker{Rules: rules, Oracles: crosscheck.Default(), Log: log.Log}
		rep, err := c.Check(*fen, *depth)
		if err != nil {
			fatal(err, "cross-check")
		}
		for _, m := range rep.Mismatches {
			fmt.Println(m)
		}
		if !rep.OK() {
			os.Exit(1)
		}
		log.WithFields(log.Fields{"nodes": rep.Nodes, "oracles": rep.Oracles}).Info("verified")
		return
	}

	// Optional divide output
	if *divide {
		div := rules.PerftDivide(setup.Position, setup.SideToMove, *depth)
		counts := make(map[string]uint64, len(div))
		var sum uint64
		for m, n := range div {
			counts[m.String()] = n
			sum += n
		}
		for _, m := range crosscheck.SortedMoves(counts) {
			fmt.Printf("%s: %d\n", m, counts[m])
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	// Optional CPU profiling
	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fatal(err, "create cpuprofile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fatal(err, "start cpu profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var cache *bitmg.PerftCache
	if *hashBits > 0 {
		cache = bitmg.NewPerftCache(*hashBits)
	}

	// Timing loop
	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		switch {
		case cache != nil:
			cache.Clear()
			totalNodes += rules.PerftHashed(setup.Position, setup.SideToMove, *depth, cache)
		case *workers != 1:
			totalNodes += rules.PerftParallel(setup.Position, setup.SideToMove, *depth, *workers)
		default:
			totalNodes += rules.Perft(setup.Position, setup.SideToMove, *depth)
		}
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	fields := log.Fields{"depth": *depth, "nodes": totalNodes, "repeat": *repeat, "elapsed": elapsed}
	if cache != nil {
		fields["hits"], fields["probes"] = cache.Hits, cache.Probes
	}
	log.WithFields(fields).Debug("perft done")

	// Optional heap profile after run
	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			fatal(err, "create memprofile")
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			fatal(err, "write heap profile")
		}
		_ = f.Close()
	}
}

func fatal(err error, msg string) {
	log.WithError(err).Error(msg)
	os.Exit(2)
}
