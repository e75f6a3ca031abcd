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
	"github.com/akuraj/eroica/internal/position"
	. "github.com/akuraj/eroica/internal/types"
)

// SEE computes the static exchange evaluation for move: the material
// balance of the full capture sequence on move's target square,
// assuming both sides always recapture with their least valuable
// attacker. Used by move ordering and quiescence search to prune
// captures that lose material even in the best case.
func SEE(p *position.Position, move Move) Value {
	// enpassant moves are ignored in a sense that it will be winning
	// capture and therefore should lead to no cut-offs when using SEE
	if move.MoveType() == EnPassant {
		return 100
	}

	// max 32 pieces can ever take part in a single exchange sequence
	gain := make([]Value, 32, 32)

	ply := 0
	toSquare := move.To()
	fromSquare := move.From()
	movedPiece := p.GetPiece(fromSquare)
	nextPlayer := p.NextPlayer()

	// occupancy to remove single pieces from later, revealing x-ray attacks
	occupiedBitboard := p.OccupiedAll()

	// all attacks to the target square, either color
	remainingAttacks := seeAttacksTo(p, toSquare, White) | seeAttacksTo(p, toSquare, Black)

	capturedValue := p.GetPiece(toSquare).ValueOf()
	gain[ply] = capturedValue

	for {
		ply++
		nextPlayer = nextPlayer.Flip()

		if move.MoveType() == Promotion {
			gain[ply] = move.PromotionType().ValueOf() - Pawn.ValueOf() - gain[ply-1]
		} else {
			gain[ply] = movedPiece.ValueOf() - gain[ply-1]
		}

		// pruning if defended - will not change the final see score
		if seeMax(-gain[ply-1], gain[ply]) < 0 {
			break
		}

		remainingAttacks.PopSquare(fromSquare) // reset bit in set to traverse
		occupiedBitboard.PopSquare(fromSquare) // reset bit in temporary occupancy (for x-rays)

		remainingAttacks |= seeRevealedAttacks(p, toSquare, occupiedBitboard, White) |
			seeRevealedAttacks(p, toSquare, occupiedBitboard, Black)

		fromSquare = seeLeastValuablePiece(p, remainingAttacks, nextPlayer)
		if fromSquare == SqNone {
			break
		}
		movedPiece = p.GetPiece(fromSquare)
	}

	ply--
	for ply > 0 {
		gain[ply-1] = -seeMax(-gain[ply-1], gain[ply])
		ply--
	}

	return gain[0]
}

// seeAttacksTo determines all attacks to square for SEE. En passant is
// not included; the move preceding an en-passant capture is never
// itself a capture, so it never begins an exchange sequence.
func seeAttacksTo(p *position.Position, square Square, color Color) Bitboard {
	occupiedAll := p.OccupiedAll()
	return (GetPawnAttacks(color.Flip(), square) & p.PiecesBb(color, Pawn)) |
		(GetAttacksBb(Knight, square, occupiedAll) & p.PiecesBb(color, Knight)) |
		(GetAttacksBb(King, square, occupiedAll) & p.PiecesBb(color, King)) |
		(GetAttacksBb(Rook, square, occupiedAll) & (p.PiecesBb(color, Rook) | p.PiecesBb(color, Queen))) |
		(GetAttacksBb(Bishop, square, occupiedAll) & (p.PiecesBb(color, Bishop) | p.PiecesBb(color, Queen)))
}

// seeRevealedAttacks returns sliding attacks after a piece has been
// removed from occupied, revealing any attack behind it. Only sliders
// can have x-ray attacks, so only those are checked.
func seeRevealedAttacks(p *position.Position, square Square, occupied Bitboard, color Color) Bitboard {
	return (GetAttacksBb(Rook, square, occupied) & (p.PiecesBb(color, Rook) | p.PiecesBb(color, Queen)) & occupied) |
		(GetAttacksBb(Bishop, square, occupied) & (p.PiecesBb(color, Bishop) | p.PiecesBb(color, Queen)) & occupied)
}

// seeLeastValuablePiece returns the square of the least valuable attacker
// in bitboard for color. Ties are broken by the least significant bit.
func seeLeastValuablePiece(p *position.Position, bitboard Bitboard, color Color) Square {
	switch {
	case (bitboard & p.PiecesBb(color, Pawn)) != 0:
		return (bitboard & p.PiecesBb(color, Pawn)).Lsb()
	case (bitboard & p.PiecesBb(color, Knight)) != 0:
		return (bitboard & p.PiecesBb(color, Knight)).Lsb()
	case (bitboard & p.PiecesBb(color, Bishop)) != 0:
		return (bitboard & p.PiecesBb(color, Bishop)).Lsb()
	case (bitboard & p.PiecesBb(color, Rook)) != 0:
		return (bitboard & p.PiecesBb(color, Rook)).Lsb()
	case (bitboard & p.PiecesBb(color, Queen)) != 0:
		return (bitboard & p.PiecesBb(color, Queen)).Lsb()
	case (bitboard & p.PiecesBb(color, King)) != 0:
		return (bitboard & p.PiecesBb(color, King)).Lsb()
	default:
		return SqNone
	}
}

func seeMax(x, y Value) Value {
	if x > y {
		return x
	}
	return y
}
