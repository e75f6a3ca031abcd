/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// eroica is the host CLI around the engine core in internal/. It is an
// illustrative, non-mandated implementation of the external
// collaborators the core leaves to a host: perft driving, a bench
// suite, and a minimal interactive move loop. None of this package is
// imported by internal/search or internal/position; the core stays
// single-threaded and synchronous regardless of what a host does with
// it.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/sync/errgroup"

	"github.com/akuraj/eroica/internal/config"
	"github.com/akuraj/eroica/internal/logging"
	"github.com/akuraj/eroica/internal/movegen"
	"github.com/akuraj/eroica/internal/position"
	"github.com/akuraj/eroica/internal/search"
	. "github.com/akuraj/eroica/internal/types"
)

func main() {
	configFile := flag.String("config", "./config.toml", "path to configuration settings file")
	doProfile := flag.Bool("profile", false, "write a CPU profile of the command to ./")
	fen := flag.String("fen", position.StartFen, "FEN of the position to operate on")
	flag.Parse()

	config.ConfFile = *configFile
	config.Setup()
	logging.GetLog()

	if *doProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: eroica [flags] <perft|bench|play> [args...]")
		os.Exit(2)
	}

	switch args[0] {
	case "perft":
		runPerft(*fen, args[1:])
	case "bench":
		runBench(args[1:])
	case "play":
		runPlay(*fen)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		os.Exit(2)
	}
}

// runPerft counts leaf nodes below *fen to the requested depth. With
// --divide it instead prints, for each root move, the node count of
// the subtree below it - the classic perft-divide debugging view,
// fanned out across goroutines since each root branch owns its own
// copy of the Position value and shares no mutable state with its
// siblings.
func runPerft(fen string, args []string) {
	fs := flag.NewFlagSet("perft", flag.ExitOnError)
	divide := fs.Bool("divide", false, "print per-root-move subtree counts instead of a single total")
	_ = fs.Parse(args)
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: eroica perft <depth> [--divide]")
		os.Exit(2)
	}
	depthArg := fs.Arg(0)
	_ = fs.Parse(fs.Args()[1:])
	var depth int
	if _, err := fmt.Sscanf(depthArg, "%d", &depth); err != nil || depth < 1 {
		fmt.Fprintln(os.Stderr, "depth must be a positive integer")
		os.Exit(2)
	}

	p, err := position.NewPositionFen(fen)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid fen:", err)
		os.Exit(2)
	}

	if *divide {
		runDivide(p, depth)
		return
	}

	start := time.Now()
	nodes := movegen.CountNodes(p, depth)
	elapsed := time.Since(start)
	fmt.Printf("depth %d: %d nodes in %s\n", depth, nodes, elapsed)
}

func runDivide(p *position.Position, depth int) {
	mg := movegen.NewMoveGen()
	roots := mg.GenerateLegalMoves(p, movegen.GenAll)

	counts := make([]uint64, roots.Len())
	var g errgroup.Group
	for i := 0; i < roots.Len(); i++ {
		i := i
		move := roots.At(i)
		g.Go(func() error {
			branch := *p
			branch.DoMove(move)
			counts[i] = movegen.CountNodes(&branch, depth-1)
			return nil
		})
	}
	_ = g.Wait()

	var total uint64
	for i := 0; i < roots.Len(); i++ {
		fmt.Printf("%s: %d\n", roots.At(i).StringUci(), counts[i])
		total += counts[i]
	}
	fmt.Printf("\ntotal: %d\n", total)
}

// benchPositions is a small fixed suite exercising the middlegame,
// endgame, and tactical code paths, in the spirit of the teacher's
// commented-out profiling hook in its own cmd/FrankyGo/main.go.
var benchPositions = []string{
	position.StartFen,
	"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
	"r3k2r/1ppn3p/2q1q1n1/8/2q1Pp2/B5R1/p1p2PPP/1R4K1 b kq -",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -",
}

// runBench runs the search to a fixed depth on each benchPositions
// entry and prints aggregate nodes and time, a rough proxy for engine
// speed across commits.
func runBench(args []string) {
	depth := config.Settings.Search.DefaultDepth
	if len(args) > 0 {
		_, _ = fmt.Sscanf(args[0], "%d", &depth)
	}

	var totalNodes uint64
	start := time.Now()
	for _, fen := range benchPositions {
		p, err := position.NewPositionFen(fen)
		if err != nil {
			fmt.Fprintln(os.Stderr, "invalid bench fen:", err)
			continue
		}
		s := search.NewSearch()
		sl := search.NewSearchLimits()
		sl.Depth = depth
		result := s.StartSearch(*p, *sl)
		totalNodes += s.NodesVisited()
		fmt.Printf("%-70s %s\n", fen, result.String())
	}
	elapsed := time.Since(start)
	nps := uint64(0)
	if elapsed > 0 {
		nps = uint64(float64(totalNodes) / elapsed.Seconds())
	}
	fmt.Printf("\nbench: %d nodes in %s (%d nps)\n", totalNodes, elapsed, nps)
}

// runPlay is a minimal interactive loop: the user enters UCI moves
// (e.g. e2e4) or "go" to have the engine reply, "undo" is not
// supported, "quit" exits. It is deliberately thin - no PGN, no
// opening book, no UCI protocol - those remain non-goals or other
// external collaborators this repository does not build.
func runPlay(fen string) {
	p, err := position.NewPositionFen(fen)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid fen:", err)
		os.Exit(2)
	}
	mg := movegen.NewMoveGen()
	s := search.NewSearch()

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println(p.String())
	for {
		fmt.Print("eroica> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "quit" || line == "exit":
			return
		case line == "go":
			sl := search.NewSearchLimits()
			result := s.StartSearch(*p, *sl)
			if result.BestMove == MoveNone {
				fmt.Println("no legal move")
				continue
			}
			p.DoMove(result.BestMove)
			fmt.Println(result.String())
			fmt.Println(p.String())
		default:
			move := mg.GetMoveFromUci(p, line)
			if move == MoveNone {
				fmt.Println("not a legal move:", line)
				continue
			}
			p.DoMove(move)
			fmt.Println(p.String())
		}
	}
}
