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

package search

import (
	. "github.com/akuraj/eroica/internal/config"
	"github.com/akuraj/eroica/internal/evaluator"
	"github.com/akuraj/eroica/internal/movegen"
	"github.com/akuraj/eroica/internal/moveslice"
	"github.com/akuraj/eroica/internal/position"
	. "github.com/akuraj/eroica/internal/types"
)

// rootSearch starts the recursive negamax search with the root moves
// for ply 0. Root moves are treated separately from search because the
// best move needs to be stored for the caller rather than discarded
// once the ply unwinds.
func (s *Search) rootSearch(p *position.Position, depth int, alpha Value, beta Value) Value {
	bestNodeValue := ValueNA
	var value Value

	for i := 0; i < s.rootMoves.Len(); i++ {
		m := s.rootMoves.At(i)

		p.DoMove(m)
		s.nodesVisited++
		s.statistics.CurrentVariation.PushBack(m)

		value = -s.search(p, depth-1, 1, -beta, -alpha)

		s.statistics.CurrentVariation.PopBack()
		p.UndoMove()

		if s.stopConditions() && depth > 1 {
			return bestNodeValue
		}

		if value > bestNodeValue {
			bestNodeValue = value
			savePV(m, s.pv[1], s.pv[0])
		}
		if value > alpha {
			alpha = value
		}
	}

	return bestNodeValue
}

// search is the negamax search for ply > 0. It consults the
// transposition table before searching, iterates legal moves in
// MoveGen's pre-scored order, and stores the result back into the
// table before returning.
func (s *Search) search(p *position.Position, depth int, ply int, alpha Value, beta Value) Value {
	if s.stopConditions() {
		return ValueNA
	}

	if depth == 0 || ply >= MaxDepth {
		return s.qsearch(p, ply, alpha, beta)
	}

	// terminal status is only known once we have tried to generate
	// moves below; a stored TT result lets us skip that work entirely
	// when the cached search was at least as deep as this one.
	ttMove := MoveNone
	if Settings.Search.UseTT {
		if entry, ok := s.tt.Probe(p.ZobristKey()); ok {
			s.statistics.TTHit++
			ttMove = entry.Move
			if int(entry.Depth) >= depth {
				cut := entry.Bound == Exact ||
					(entry.Bound == Upper && entry.Value <= alpha) ||
					entry.Value >= beta
				if cut {
					s.statistics.TTCuts++
					return entry.Value
				}
			}
			s.statistics.TTNoCuts++
		} else {
			s.statistics.TTMiss++
		}
	}

	hasCheck := p.HasCheck()
	myMg := s.mg[ply]
	myMg.ResetOnDemand()
	s.pv[ply].Clear()
	if ttMove != MoveNone {
		myMg.SetPvMove(ttMove)
	}

	bestNodeValue := ValueNA
	bestNodeMove := MoveNone
	bound := Upper
	movesSearched := 0
	var value Value

	for move := myMg.GetNextMove(p, movegen.GenAll); move != MoveNone; move = myMg.GetNextMove(p, movegen.GenAll) {
		if !p.IsLegalMove(move) {
			continue
		}
		p.DoMove(move)

		s.nodesVisited++
		s.statistics.CurrentVariation.PushBack(move)

		value = -s.search(p, depth-1, ply+1, -beta, -alpha)

		movesSearched++
		s.statistics.CurrentVariation.PopBack()
		p.UndoMove()

		if s.stopConditions() {
			return ValueNA
		}

		if value > bestNodeValue {
			bestNodeValue = value
			bestNodeMove = move
			if value > alpha {
				savePV(move, s.pv[ply+1], s.pv[ply])
				alpha = value
				bound = Exact
				if value >= beta {
					s.statistics.BetaCuts++
					if movesSearched == 1 {
						s.statistics.BetaCuts1st++
					}
					bound = Upper
					break
				}
			}
		}
	}

	if movesSearched == 0 && !s.stopConditions() {
		if hasCheck {
			s.statistics.Checkmates++
			bestNodeValue = -ValueCheckMate
		} else {
			s.statistics.Stalemates++
			bestNodeValue = ValueDraw
		}
		bound = Exact
	}

	if Settings.Search.UseTT {
		s.storeTT(p, depth, bestNodeMove, bestNodeValue, bound)
	}

	return bestNodeValue
}

// qsearch continues the search into capturing and promoting moves
// only, to avoid misjudging a position in the middle of an exchange.
// It returns a stand-pat evaluation as a fail-soft lower bound when
// not in check, and searches out of check fully like a normal node.
func (s *Search) qsearch(p *position.Position, ply int, alpha Value, beta Value) Value {
	if s.statistics.CurrentExtraSearchDepth < ply {
		s.statistics.CurrentExtraSearchDepth = ply
	}

	if !Settings.Search.UseQuiescence || ply >= MaxDepth {
		return s.evaluate(p)
	}

	hasCheck := p.HasCheck()
	bestNodeValue := ValueNA

	if !hasCheck {
		staticEval := s.evaluate(p)
		if Settings.Search.UseQSStandpat {
			if staticEval >= beta {
				s.statistics.StandpatCuts++
				return staticEval
			}
			if staticEval > alpha {
				alpha = staticEval
			}
		}
		bestNodeValue = staticEval
	}

	myMg := s.mg[ply]
	myMg.ResetOnDemand()
	s.pv[ply].Clear()

	mode := movegen.GenCap
	if hasCheck {
		mode = movegen.GenAll
	}

	movesSearched := 0
	var value Value

	for move := myMg.GetNextMove(p, mode); move != MoveNone; move = myMg.GetNextMove(p, mode) {
		if !hasCheck && !s.goodCapture(p, move) {
			continue
		}
		if !p.IsLegalMove(move) {
			continue
		}

		p.DoMove(move)

		s.nodesVisited++
		s.statistics.QNodes++
		s.statistics.CurrentVariation.PushBack(move)

		value = -s.qsearch(p, ply+1, -beta, -alpha)

		movesSearched++
		s.statistics.CurrentVariation.PopBack()
		p.UndoMove()

		if s.stopConditions() {
			return ValueNA
		}

		if value > bestNodeValue {
			bestNodeValue = value
			if value > alpha {
				savePV(move, s.pv[ply+1], s.pv[ply])
				if value >= beta {
					s.statistics.BetaCuts++
					if movesSearched == 1 {
						s.statistics.BetaCuts1st++
					}
					return bestNodeValue
				}
				alpha = value
			}
		}
	}

	if movesSearched == 0 && hasCheck && !s.stopConditions() {
		s.statistics.Checkmates++
		bestNodeValue = -ValueCheckMate
	}

	return bestNodeValue
}

// evaluate calls the static evaluator and counts the call.
func (s *Search) evaluate(p *position.Position) Value {
	s.statistics.LeafPositionsEvaluated++
	s.statistics.Evaluations++
	return s.eval.Evaluate(p)
}

// goodCapture reduces the number of moves searched in quiescence by
// filtering out captures that lose material even in the best case.
func (s *Search) goodCapture(p *position.Position, move Move) bool {
	if Settings.Search.UseSEE {
		return evaluator.SEE(p, move) > 0
	}
	return p.GetPiece(move.From()).ValueOf()+50 < p.GetPiece(move.To()).ValueOf() ||
		(p.LastMove() != MoveNone && p.LastMove().To() == move.To() && p.LastCapturedPiece() != PieceNone) ||
		!p.IsAttacked(move.To(), p.NextPlayer().Flip())
}

// savePV adds move as the first move of a cleared dest, followed by
// all of src's moves.
func savePV(move Move, src *moveslice.MoveSlice, dest *moveslice.MoveSlice) {
	dest.Clear()
	dest.PushBack(move)
	*dest = append(*dest, *src...)
}

// storeTT stores a node's search result into the transposition table.
// Mate values are the flat -ValueCheckMate wherever they are detected
// and are stored and read back unchanged, with no ply adjustment on the
// way in or out of the table. See DESIGN.md.
func (s *Search) storeTT(p *position.Position, depth int, move Move, value Value, bound Bound) {
	s.tt.Store(p.ZobristKey(), TTEntry{Move: move, Value: value, Depth: int8(depth), Bound: bound})
}
