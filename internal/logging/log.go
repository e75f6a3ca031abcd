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

// Package logging is a helper for the "github.com/op/go-logging" package
// to reduce the lines of code within each go file to one line.
// The functions return Logger instances which are configured with
// the necessary backends and formatters, one per subsystem.
package logging

import (
	"log"
	"os"

	"github.com/op/go-logging"

	"github.com/akuraj/eroica/internal/config"
)

var (
	standardLog *logging.Logger
	positionLog *logging.Logger
	attacksLog  *logging.Logger
	movegenLog  *logging.Logger
	searchLog   *logging.Logger
	ttLog       *logging.Logger
	testLog     *logging.Logger

	standardFormat = logging.MustStringFormatter(`%{time:15:04:05.000} %{shortpkg:-8.8s}:%{shortfile:-14.14s} %{level:-7.7s}:  %{message}`)
)

func init() {
	standardLog = logging.MustGetLogger("standard")
	positionLog = logging.MustGetLogger("position")
	attacksLog = logging.MustGetLogger("attacks")
	movegenLog = logging.MustGetLogger("movegen")
	searchLog = logging.MustGetLogger("search")
	ttLog = logging.MustGetLogger("tt")
	testLog = logging.MustGetLogger("test")
}

func backend(l *logging.Logger, level int) *logging.Logger {
	b := logging.NewLogBackend(os.Stdout, "", log.Lmsgprefix)
	bf := logging.NewBackendFormatter(b, standardFormat)
	leveled := logging.AddModuleLevel(bf)
	leveled.SetLevel(logging.Level(level), "")
	l.SetBackend(leveled)
	return l
}

// GetLog returns the general purpose logger.
func GetLog() *logging.Logger {
	return backend(standardLog, config.LogLevel)
}

// GetPositionLog returns the logger used by internal/position.
func GetPositionLog() *logging.Logger {
	return backend(positionLog, config.LogLevel)
}

// GetAttacksLog returns the logger used by internal/attacks.
func GetAttacksLog() *logging.Logger {
	return backend(attacksLog, config.LogLevel)
}

// GetMovegenLog returns the logger used by internal/movegen.
func GetMovegenLog() *logging.Logger {
	return backend(movegenLog, config.LogLevel)
}

// GetSearchLog returns the logger used by internal/search, typically set
// to a more verbose level to trace node/cutoff statistics.
func GetSearchLog() *logging.Logger {
	return backend(searchLog, config.SearchLogLevel)
}

// GetTtLog returns the logger used by internal/tt to trace resizing and
// replacement decisions.
func GetTtLog() *logging.Logger {
	return backend(ttLog, config.LogLevel)
}

// GetTestLog returns the logger used by _test.go files across the module.
func GetTestLog() *logging.Logger {
	return backend(testLog, config.TestLogLevel)
}
