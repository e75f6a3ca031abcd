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

package evaluator

import (
	. "github.com/akuraj/eroica/internal/config"
	"github.com/akuraj/eroica/internal/position"
	. "github.com/akuraj/eroica/internal/types"
	"github.com/akuraj/eroica/internal/zobrist"
)

// pawnKey folds the pawn bitboards of both colors into a zobrist key
// independent of all other position state, so that two positions which
// differ only in non-pawn material share a pawn cache entry.
func pawnKey(p *position.Position) zobrist.Key {
	zb := zobrist.Default()
	var key zobrist.Key
	for pawns := p.PiecesBb(White, Pawn); pawns != BbZero; {
		key ^= zb.Pieces[WhitePawn][pawns.PopLsb()]
	}
	for pawns := p.PiecesBb(Black, Pawn); pawns != BbZero; {
		key ^= zb.Pieces[BlackPawn][pawns.PopLsb()]
	}
	return key
}

func (e *Evaluator) evaluatePawns() *Score {
	tmpScore.MidGameValue = 0
	tmpScore.EndGameValue = 0

	var key zobrist.Key
	if Settings.Eval.UsePawnCache {
		key = pawnKey(e.position)
		entry := e.pawnCache.getEntry(key)
		if entry != nil {
			tmpScore.MidGameValue += entry.score.MidGameValue
			tmpScore.EndGameValue += entry.score.EndGameValue
			return &tmpScore
		}
	}

	// no cache hit - pawn structure evaluated from scratch
	tmpScore.MidGameValue = int16(e.position.PiecesBb(White, Pawn).PopCount() - e.position.PiecesBb(Black, Pawn).PopCount())
	tmpScore.EndGameValue = tmpScore.MidGameValue

	if Settings.Eval.UsePawnCache {
		e.pawnCache.put(key, &tmpScore)
	}

	return &tmpScore
}
