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

package position

import (
	"github.com/akuraj/eroica/internal/assert"
	. "github.com/akuraj/eroica/internal/types"
)

// ControlInfo is the derived attack/pin cache recomputed after every
// make and unmake. It lets search and move generation ask "is the side
// to move in check", "is this square defended" or "is this piece
// pinned" without re-deriving the answer from the raw bitboards.
type ControlInfo struct {
	// Attacked is the union of all squares attacked by the side NOT to
	// move, computed with an occupancy that excludes our own king so
	// sliding rays are projected through the king onto the square
	// behind it.
	Attacked Bitboard
	// NumChecks counts how many enemy pieces currently attack our king.
	NumChecks int
	// CheckBlocker is the intersection of squares that block every
	// checking attack (capture-or-block set). Ignored when NumChecks
	// is 0 (no restriction) and meaningless when NumChecks > 1 (king
	// must move).
	CheckBlocker Bitboard
	// Defended is the union of all squares attacked by the side to
	// move, computed with full occupancy.
	Defended Bitboard
	// AbsolutePin holds, for each of our pieces pinned to our king, the
	// segment between king and pinner (inclusive of the pinner) that
	// the pinned piece may still move along. BbZero for unpinned
	// squares.
	AbsolutePin [SqLength]Bitboard
	// EpLegal reports whether capturing en passant is legal in this
	// position (false when no en-passant target exists).
	EpLegal bool
}

// updateControlInfo recomputes p.control from scratch. Called once at
// the end of every DoMove/UndoMove/DoNullMove/UndoNullMove so callers
// never observe a stale cache.
func (p *Position) updateControlInfo() {
	us := p.nextPlayer
	them := us.Flip()

	kingSq := p.kingSquare[us]
	theirKingSq := p.kingSquare[them]

	allOccupied := p.OccupiedAll()
	// occupancy used for the enemy attack set: exclude our king so a
	// slider's ray continues through the king's former square.
	occupiedWithoutOurKing := allOccupied &^ kingSq.Bb()

	ci := ControlInfo{}

	// 1 & 2: attacked set and checks against our king.
	ci.Attacked, ci.NumChecks, ci.CheckBlocker = attackSetAndChecks(p, them, occupiedWithoutOurKing, kingSq)

	// 3: defended set, computed with full occupancy.
	ci.Defended, _, _ = attackSetAndChecks(p, us, allOccupied, theirKingSq)
	if assert.DEBUG {
		assert.Assert(!ci.Defended.Has(theirKingSq), "ControlInfo: enemy king square is defended - prior move was illegal")
	}

	// 4: absolute pins along the king's rays.
	ci.AbsolutePin = findAbsolutePins(p, us, them, kingSq, allOccupied)

	// 5: en-passant legality.
	ci.EpLegal = p.checkEnPassantLegality(us, them, kingSq, &ci.AbsolutePin)

	p.control = ci
}

// attackSetAndChecks computes the union of attacks from every piece of
// color attacker given the occupancy, plus how many of those attacks
// hit target and the combined capture-or-block mask for those checks.
func attackSetAndChecks(p *Position, attacker Color, occupied Bitboard, target Square) (Bitboard, int, Bitboard) {
	var attacked Bitboard
	numChecks := 0
	checkBlocker := BbAll

	// pawns
	for pawns := p.piecesBb[attacker][Pawn]; pawns != BbZero; {
		sq := pawns.PopLsb()
		a := GetPawnAttacks(attacker, sq)
		attacked |= a
		if a.Has(target) {
			numChecks++
			checkBlocker &= sq.Bb()
		}
	}

	leapersAndSliders := [5]PieceType{Knight, Bishop, Rook, Queen, King}
	for _, pt := range leapersAndSliders {
		for pieces := p.piecesBb[attacker][pt]; pieces != BbZero; {
			sq := pieces.PopLsb()
			a := GetAttacksBb(pt, sq, occupied)
			attacked |= a
			if a.Has(target) {
				numChecks++
				switch pt {
				case Knight, King:
					checkBlocker &= sq.Bb()
				default:
					checkBlocker &= Intermediate(sq, target) | sq.Bb()
				}
			}
		}
	}

	if numChecks == 0 {
		checkBlocker = BbAll
	}
	return attacked, numChecks, checkBlocker
}

// findAbsolutePins walks each of the king's eight rays looking for a
// single friendly piece followed by an enemy slider that attacks along
// that same ray; such a piece may only move within the ray segment
// between the king and the pinner.
func findAbsolutePins(p *Position, us Color, them Color, kingSq Square, occupied Bitboard) [SqLength]Bitboard {
	var pins [SqLength]Bitboard

	friends := p.occupiedBb[us]
	orthogonalPinners := p.piecesBb[them][Rook] | p.piecesBb[them][Queen]
	diagonalPinners := p.piecesBb[them][Bishop] | p.piecesBb[them][Queen]

	orientations := [8]Orientation{N, NE, E, SE, S, SW, W, NW}
	for _, o := range orientations {
		ray := kingSq.Ray(o)
		candidates := GetAttacksBb(Rook, kingSq, occupied) & ray & friends
		if o == NE || o == NW || o == SE || o == SW {
			candidates = GetAttacksBb(Bishop, kingSq, occupied) & ray & friends
		}
		if candidates == BbZero {
			continue
		}
		candidateSq := nearestOnRay(candidates, kingSq, o)

		occWithoutCandidate := occupied &^ candidateSq.Bb()
		var pt PieceType
		var pinners Bitboard
		if o == N || o == E || o == S || o == W {
			pt = Rook
			pinners = orthogonalPinners
		} else {
			pt = Bishop
			pinners = diagonalPinners
		}
		beyond := GetAttacksBb(pt, kingSq, occWithoutCandidate) & ray
		pinner := beyond & pinners
		if pinner != BbZero {
			pinnerSq := pinner.Lsb()
			pins[candidateSq] = Intermediate(kingSq, pinnerSq) | pinnerSq.Bb()
		}
	}

	return pins
}

// nearestOnRay returns the square in bb closest to sq along the given
// ray orientation (the first piece a slider from sq would meet).
func nearestOnRay(bb Bitboard, sq Square, o Orientation) Square {
	switch o {
	case N, NE, E, SE:
		return bb.Lsb()
	default:
		return bb.Msb()
	}
}

// checkEnPassantLegality implements the rule 5 dedicated check: capturing
// en passant must not expose our king along the rank the two pawns sit
// on (a horizontal pin revealed only once both pawns vanish from the
// rank simultaneously) nor along a diagonal through the captured pawn's
// square.
func (p *Position) checkEnPassantLegality(us Color, them Color, kingSq Square, pins *[SqLength]Bitboard) bool {
	epSq := p.enPassantSquare
	if epSq == SqNone {
		return false
	}

	capturedPawnSq := epSq.To(them.MoveDirection())
	attackerMask := epSq.NeighbourFilesMask() & capturedPawnSq.RankOf().Bb() & p.piecesBb[us][Pawn]
	if attackerMask == BbZero {
		return false
	}

	anyLegal := false
	for attackers := attackerMask; attackers != BbZero; {
		fromSq := attackers.PopLsb()

		occAfter := p.OccupiedAll() &^ fromSq.Bb() &^ capturedPawnSq.Bb() | epSq.Bb()

		horizontalAttackers := (p.piecesBb[them][Rook] | p.piecesBb[them][Queen]) & GetAttacksBb(Rook, kingSq, occAfter)
		diagonalAttackers := (p.piecesBb[them][Bishop] | p.piecesBb[them][Queen]) & GetAttacksBb(Bishop, kingSq, occAfter)

		if horizontalAttackers != BbZero || diagonalAttackers != BbZero {
			// mask the ep target out of this pawn's allowed squares
			// without disturbing a pre-existing diagonal/orthogonal pin.
			if pins[fromSq] == BbZero {
				pins[fromSq] = BbAll &^ epSq.Bb()
			} else {
				pins[fromSq] &^= epSq.Bb()
			}
			continue
		}
		anyLegal = true
	}

	return anyLegal
}
