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

package moveslice

import (
	"sort"

	. "github.com/akuraj/eroica/internal/types"
)

// scoredMove pairs a Move with the two sort keys the move generator
// computes for it. Both need the full Value range at once (SEE can be
// very negative, eval delta can be very positive) which would not fit
// alongside each other in the Move word's single 16-bit value slot, so
// they are kept in a slice parallel to the Move itself instead of
// packed into the move.
type scoredMove struct {
	move Move
	eval Value
	see  Value
}

// ScoredSlice is a move list carrying, for each move, its incremental
// evaluation delta and its SEE value alongside the move itself.
type ScoredSlice []scoredMove

// NewScoredSlice creates an empty ScoredSlice with the given capacity.
func NewScoredSlice(cap int) *ScoredSlice {
	s := make([]scoredMove, 0, cap)
	return (*ScoredSlice)(&s)
}

// Push appends a move together with its eval delta and SEE value.
func (ss *ScoredSlice) Push(m Move, eval Value, see Value) {
	*ss = append(*ss, scoredMove{move: m, eval: eval, see: see})
}

// Len returns the number of entries.
func (ss *ScoredSlice) Len() int {
	return len(*ss)
}

// Clear empties the slice while keeping its backing array.
func (ss *ScoredSlice) Clear() {
	*ss = (*ss)[:0]
}

// Move returns the move at index i.
func (ss *ScoredSlice) Move(i int) Move {
	return (*ss)[i].move
}

// Eval returns the cached eval delta for the move at index i.
func (ss *ScoredSlice) Eval(i int) Value {
	return (*ss)[i].eval
}

// See returns the cached SEE value for the move at index i.
func (ss *ScoredSlice) See(i int) Value {
	return (*ss)[i].see
}

// SortByScore stable-sorts the slice by eval+see descending, the move
// ordering scheme described for move generation.
func (ss *ScoredSlice) SortByScore() {
	sort.SliceStable(*ss, func(i, j int) bool {
		a := (*ss)[i]
		b := (*ss)[j]
		return a.eval+a.see > b.eval+b.see
	})
}

// Moves copies just the Move values out, in current order, into a
// plain MoveSlice for callers that do not need the scores.
func (ss *ScoredSlice) Moves() MoveSlice {
	out := make(MoveSlice, len(*ss))
	for i, sm := range *ss {
		out[i] = sm.move
	}
	return out
}
