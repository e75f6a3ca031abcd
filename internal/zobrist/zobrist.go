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

// Package zobrist holds the random key tables used to maintain an
// incremental Zobrist hash for a chess position. The keys are
// deterministic across runs so that two processes fed the same moves
// compute the same hash.
package zobrist

import (
	. "github.com/akuraj/eroica/internal/types"
)

// Key is used for zobrist keys in chess positions.
// Zobrist keys need all 64 bits for distribution.
type Key uint64

// Base holds one random key per piece/square, per castling rights subset,
// per en passant file and one for the side to move. A position's hash is
// the XOR of the keys for everything currently true about it.
type Base struct {
	Pieces         [PieceLength][SqLength]Key
	CastlingRights [CastlingRightsLength]Key
	EnPassantFile  [8]Key
	NextPlayer     Key
}

// keySeed is fixed so that Zobrist keys - and therefore hash based test
// vectors and transposition table contents - are reproducible across runs.
const keySeed = 1070372

// NewBase builds and returns the package-wide Zobrist key table.
func NewBase() *Base {
	b := &Base{}
	r := newRandom(keySeed)
	for pc := PieceNone; pc < PieceLength; pc++ {
		for sq := SqA1; sq <= SqH8; sq++ {
			b.Pieces[pc][sq] = Key(r.rand64())
		}
	}
	for cr := CastlingNone; cr <= CastlingAny; cr++ {
		b.CastlingRights[cr] = Key(r.rand64())
	}
	for f := FileA; f <= FileH; f++ {
		b.EnPassantFile[f] = Key(r.rand64())
	}
	b.NextPlayer = Key(r.rand64())
	return b
}

// base is the single Zobrist key table shared by every position, computed
// once at package init so positions never have to carry their own copy.
var base = NewBase()

// Default returns the shared Zobrist key table.
func Default() *Base {
	return base
}

// random is the xorshift64star pseudo-random number generator, taken
// directly from Stockfish. Passes Dieharder and SmallCrush, needs no
// warm-up and has a period of 2^64-1.
type random struct {
	s uint64
}

// newRandom creates a random generator seeded with a non-zero value.
func newRandom(seed uint64) random {
	if seed == 0 {
		panic("zobrist: seed of random cannot be 0")
	}
	return random{s: seed}
}

func (r *random) rand64() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * uint64(2685821657736338717)
}
