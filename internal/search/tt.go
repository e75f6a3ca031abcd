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

package search

import (
	"github.com/akuraj/eroica/internal/tt"
	. "github.com/akuraj/eroica/internal/types"
	"github.com/akuraj/eroica/internal/zobrist"
)

// Bound classifies a TTEntry's Value relative to the window it was
// searched with. Unlike the teacher's three-way ValueType (which adds
// a Beta/lower-bound variant for its null-move and PVS machinery)
// this search only ever stores two kinds of result, so Bound drops
// the third case.
type Bound uint8

const (
	// Exact means Value is the true minimax value of the node.
	Exact Bound = iota
	// Upper is stored for every non-exact result, both nodes that failed
	// low and beta cutoffs. The probe in search cuts on it when Value is
	// <= alpha or >= beta.
	Upper
)

func (b Bound) String() string {
	if b == Exact {
		return "exact"
	}
	return "upper"
}

// TTEntry is the payload stored per position in the search transposition
// table: a plain struct of move, value, depth and bound. The key is kept
// by the generic table, and there is no age counter, which this search
// has no use for since it never runs longer than a single fixed-depth call.
type TTEntry struct {
	Move  Move
	Value Value
	Depth int8
	Bound Bound
}

// NewSearchTable creates the transposition table used by Search. It
// always replaces on a hash collision, matching spec's "search
// evaluations: always replace" policy; deeper-but-older results are
// not protected because an entry's depth is always checked by the
// caller before it is trusted (see the probe in search).
//
// This constructor lives in package search rather than package tt
// (despite instantiating the generic tt.Table there) because TTEntry
// is defined here: tt cannot depend on search without creating an
// import cycle, since search already depends on tt.
func NewSearchTable(bits int) *tt.Table[zobrist.Key, TTEntry] {
	return tt.NewTable[zobrist.Key, TTEntry](bits,
		func(k zobrist.Key) uint64 { return uint64(k) },
		tt.Policy[TTEntry]{ShouldReplace: func(old, new TTEntry) bool { return true }},
	)
}
