//
// FrankyGo - UCI chess engine in GO for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package search implements a fixed-depth negamax search with
// quiescence and a transposition table. Unlike the teacher's engine
// it runs synchronously on the caller's goroutine: there is no time
// control, no opening book, no UCI handler and no iterative
// deepening loop inside the package. A host wanting wall-clock
// bounded play calls StartSearch repeatedly at increasing depths and
// stops issuing calls once its own deadline passes.
package search

import (
	"time"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/akuraj/eroica/internal/config"
	"github.com/akuraj/eroica/internal/evaluator"
	myLogging "github.com/akuraj/eroica/internal/logging"
	"github.com/akuraj/eroica/internal/movegen"
	"github.com/akuraj/eroica/internal/moveslice"
	"github.com/akuraj/eroica/internal/position"
	"github.com/akuraj/eroica/internal/tt"
	. "github.com/akuraj/eroica/internal/types"
	"github.com/akuraj/eroica/internal/zobrist"
)

var out = message.NewPrinter(language.German)

// Search holds the data structures reused across calls to
// StartSearch: the evaluator, the transposition table, and one
// move generator and PV buffer per ply so a search never allocates
// while it runs.
type Search struct {
	log *logging.Logger

	tt   *tt.Table[zobrist.Key, TTEntry]
	eval *evaluator.Evaluator

	stopFlag     bool
	startTime    time.Time
	nodesVisited uint64
	mg           []*movegen.Movegen
	pv           []*moveslice.MoveSlice
	rootMoves    *moveslice.MoveSlice
	searchLimits *Limits
	statistics   Statistics
}

// NewSearch creates a new Search instance with its own evaluator and
// per-ply move generators. The transposition table is allocated lazily
// by StartSearch or ResizeCache; before that, ClearHash and NewGame do
// nothing.
func NewSearch() *Search {
	s := &Search{
		log:  myLogging.GetSearchLog(),
		eval: evaluator.NewEvaluator(),
	}
	s.mg = make([]*movegen.Movegen, 0, MaxDepth+1)
	s.pv = make([]*moveslice.MoveSlice, 0, MaxDepth+1)
	for i := 0; i <= MaxDepth; i++ {
		s.mg = append(s.mg, movegen.NewMoveGen())
		s.pv = append(s.pv, moveslice.NewMoveSlice(MaxDepth+1))
	}
	return s
}

// NewGame clears the transposition table so stale entries from a
// previous game cannot leak into a new one.
func (s *Search) NewGame() {
	if s.tt != nil {
		s.tt.Clear()
	}
}

// StartSearch runs a single fixed-depth search on p and returns the
// result. p is copied so the caller's position is left untouched.
func (s *Search) StartSearch(p position.Position, sl Limits) *Result {
	s.startTime = time.Now()
	s.stopFlag = false
	s.nodesVisited = 0
	s.statistics = Statistics{}
	s.searchLimits = &sl

	s.initialize()

	depth := sl.Depth
	if depth <= 0 {
		depth = config.Settings.Search.DefaultDepth
	}

	result := s.runSearch(&p, depth)
	result.SearchTime = time.Since(s.startTime)

	s.log.Infof("Search finished after %s", result.SearchTime)
	s.log.Debugf("Search stats: %s", s.statistics.String())
	s.log.Infof("Search result: %s", result.String())

	return result
}

// runSearch runs the fixed-depth negamax root search shared by
// StartSearch. Split out from StartSearch so tests can drive it
// directly on an already-built position without going through the
// copy-and-log wrapper.
func (s *Search) runSearch(p *position.Position, depth int) *Result {
	if s.checkDrawRepAnd50(p) {
		return &Result{BestValue: ValueDraw, SearchDepth: depth}
	}

	s.rootMoves = s.mg[0].GenerateLegalMoves(p, movegen.GenAll)
	if s.rootMoves.Len() == 0 {
		if p.HasCheck() {
			s.statistics.Checkmates++
			return &Result{BestValue: -ValueCheckMate, SearchDepth: depth}
		}
		s.statistics.Stalemates++
		return &Result{BestValue: ValueDraw, SearchDepth: depth}
	}

	s.pv[0].Clear()
	bestValue := s.rootSearch(p, depth, ValueMin, ValueMax)

	// a node limit can stop the search before the first root move has
	// been searched completely; the first root move is used then.
	bestMove := s.rootMoves.At(0).MoveOf()
	if s.pv[0].Len() > 0 {
		bestMove = s.pv[0].At(0).MoveOf()
	}
	result := &Result{
		BestMove:    bestMove,
		BestValue:   bestValue,
		SearchDepth: depth,
		ExtraDepth:  s.statistics.CurrentExtraSearchDepth,
		Pv:          *s.pv[0],
	}
	return result
}

// initialize lazily allocates the transposition table. Safe to call
// repeatedly; does nothing once the table already exists.
func (s *Search) initialize() {
	if !config.Settings.Search.UseTT {
		return
	}
	if s.tt == nil {
		sizeInMByte := config.Settings.Search.TTSize
		if sizeInMByte <= 0 {
			sizeInMByte = 64
		}
		bits := bitsForSizeInMB(sizeInMByte)
		s.tt = NewSearchTable(bits)
	}
}

// bitsForSizeInMB returns the largest bit count such that 2^bits
// TTEntry-sized buckets fit within the requested size in megabytes.
func bitsForSizeInMB(sizeInMByte int) int {
	const entrySize = 24 // rough per-bucket cost of tt.entry[zobrist.Key, TTEntry] with alignment
	maxEntries := uint64(sizeInMByte) * 1024 * 1024 / entrySize
	bits := 0
	for (uint64(1) << uint64(bits+1)) <= maxEntries {
		bits++
	}
	return bits
}

// ClearHash clears the transposition table.
func (s *Search) ClearHash() {
	if s.tt != nil {
		s.tt.Clear()
	}
}

// ResizeCache rebuilds the transposition table with the size currently
// configured in config.Settings.Search.TTSize.
func (s *Search) ResizeCache() {
	s.tt = nil
	s.initialize()
}

// stopConditions checks the node limit given in the search's Limits.
// There is no time-based stop condition: a host enforcing wall-clock
// limits does so by choosing not to call StartSearch again at a
// deeper depth, not by interrupting a call already in progress.
func (s *Search) stopConditions() bool {
	if s.stopFlag {
		return true
	}
	if s.searchLimits.Nodes > 0 && s.nodesVisited >= s.searchLimits.Nodes {
		s.stopFlag = true
	}
	return s.stopFlag
}

// checkDrawRepAnd50 reports a draw by threefold repetition or the
// 50-move rule.
func (s *Search) checkDrawRepAnd50(p *position.Position) bool {
	return p.CheckRepetitions(2) || p.HalfMoveClock() >= 100
}

// NodesVisited returns the number of nodes visited in the last search.
func (s *Search) NodesVisited() uint64 {
	return s.nodesVisited
}

// Statistics returns a pointer to the statistics of the last search.
func (s *Search) Statistics() *Statistics {
	return &s.statistics
}
