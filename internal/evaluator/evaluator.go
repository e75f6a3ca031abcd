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

// Package evaluator contains structures and functions to calculate
// the value of a chess position to be used in a chess engine search.
package evaluator

import (
	"strings"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/akuraj/eroica/internal/config"
	myLogging "github.com/akuraj/eroica/internal/logging"
	"github.com/akuraj/eroica/internal/position"
	. "github.com/akuraj/eroica/internal/types"
)

var out = message.NewPrinter(language.German)

// Evaluator evaluates chess positions using material, tapered
// piece-square tables, a bishop-pair bonus and a tempo bonus for the
// side to move. Pawn structure values are cached across positions
// sharing the same pawn bitboards.
// Create a new instance with NewEvaluator().
type Evaluator struct {
	log *logging.Logger

	position        *position.Position
	gamePhaseFactor float64
	us              Color
	them            Color

	score Score

	pawnCache *pawnCache
}

// tmpScore is reused across evalPiece calls to avoid allocation.
var tmpScore = Score{}

// NewEvaluator creates a new instance of an Evaluator.
func NewEvaluator() *Evaluator {
	e := &Evaluator{
		log:       myLogging.GetLog(),
		pawnCache: nil,
	}
	if config.Settings.Eval.UsePawnCache {
		e.pawnCache = newPawnCache()
	} else {
		e.log.Info("Pawn Cache is disabled in configuration")
	}
	return e
}

// InitEval initializes data structures and values which are used several
// times. Called at the start of Evaluate but can be called separately to
// run single evaluations in unit tests.
func (e *Evaluator) InitEval(p *position.Position) {
	e.position = p
	e.gamePhaseFactor = p.GamePhaseFactor()
	e.us = p.NextPlayer()
	e.them = e.us.Flip()
	e.score.MidGameValue = 0
	e.score.EndGameValue = 0
}

// Evaluate calculates a value for a chess position using material,
// positional and pawn structure heuristics. It calls InitEval and then
// the internal evaluation function, which computes the value from the
// view of the next player to move.
func (e *Evaluator) Evaluate(p *position.Position) Value {
	e.InitEval(p)
	return e.evaluate()
}

// value adds up the mid and end game scores after multiplying them by
// the game phase factor.
func (e *Evaluator) value() Value {
	return e.score.ValueFromScore(e.gamePhaseFactor)
}

// evaluate sums up all partial evaluations. Assumes InitEval has already
// been called.
func (e *Evaluator) evaluate() Value {
	// insufficient material on the board to achieve a mate is a draw
	if e.position.HasInsufficientMaterial() {
		return ValueDraw
	}

	// each heuristic is evaluated from the view of the white player;
	// the result is flipped to the next player's view just before return

	// material
	e.score.MidGameValue = int16(e.position.Material(White) - e.position.Material(Black))
	e.score.EndGameValue = e.score.MidGameValue

	// tapered piece-square tables
	e.score.MidGameValue += int16(e.position.PsqMidValue(White) - e.position.PsqMidValue(Black))
	e.score.EndGameValue += int16(e.position.PsqEndValue(White) - e.position.PsqEndValue(Black))

	// bishop pair bonus, midgame and endgame alike
	if e.position.PiecesBb(White, Bishop).PopCount() > 1 {
		e.score.MidGameValue += config.Settings.Eval.BishopPairBonus
		e.score.EndGameValue += config.Settings.Eval.BishopPairBonus
	}
	if e.position.PiecesBb(Black, Bishop).PopCount() > 1 {
		e.score.MidGameValue -= config.Settings.Eval.BishopPairBonus
		e.score.EndGameValue -= config.Settings.Eval.BishopPairBonus
	}

	// tempo bonus for the side to move - reduces evaluation alternation
	// between plies, which makes the search's score curve smoother
	if e.us == White {
		e.score.MidGameValue += config.Settings.Eval.Tempo
	} else {
		e.score.MidGameValue -= config.Settings.Eval.Tempo
	}

	// pawn structure, cached by pawn bitboard key
	e.score.Add(*e.evaluatePawns())

	return e.finalEval(e.value())
}

// finalEval flips a white-relative value to the view of the next player.
func (e *Evaluator) finalEval(value Value) Value {
	return value * Value(e.position.NextPlayer().Direction())
}

// Report prints a report about the evaluation done. Used in debugging.
func (e *Evaluator) Report() string {
	var report strings.Builder

	report.WriteString("Evaluation Report\n")
	report.WriteString("=============================================\n")
	report.WriteString(out.Sprintf("Position: %s\n", e.position.StringFen()))
	report.WriteString(out.Sprintf("%s\n", e.position.StringBoard()))
	report.WriteString(out.Sprintf("GamePhase Factor: %f\n", e.position.GamePhaseFactor()))
	report.WriteString(out.Sprintf("Eval value  : %d \n(from the view of next player = %s)\n",
		e.Evaluate(e.position), e.position.NextPlayer().String()))

	return report.String()
}
