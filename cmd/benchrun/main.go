package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

// run executes a command and prints its combined output. Returns exit code.
func run(name string, args ...string) int {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	fmt.Print(out.String())
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	fmt.Fprintf(os.Stderr, "error running %s: %v\n", name, err)
	return 1
}

func main() {
	// Usage: go run ./cmd/benchrun
	fmt.Println("Columns: BENCHMARK  N  ns/op  B/op  allocs/op")
	code := run("go", "test", "./bitmg", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime=1s")
	if code != 0 {
		os.Exit(code)
	}

	fmt.Println("\nPerft Performance:")
	fmt.Println("TEST \t\tDepth \t\tNodes \t\tTime \tNPS")
	for _, depth := range []string{"3", "4", "5"} {
		run("go", "run", "./cmd/perft", "-depth", depth, "-label", "Initial")
	}
	run("go", "run", "./cmd/perft", "-depth", "5", "-workers", "0", "-label", "Parallel")
	run("go", "run", "./cmd/perft", "-depth", "5", "-hash", "20", "-label", "Hashed")
	_ = run("go", "run", "./cmd/perft", "-fen", kiwipete, "-depth", "3", "-label", "Kiwipete")
	os.Exit(0)
}
