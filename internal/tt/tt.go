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

// Package tt implements a generic direct-mapped hash table used both as
// a perft node-count cache and as a search transposition table. Entry
// kind and replacement policy are supplied by the caller instead of
// being baked into a bit-packed struct, which lets the same table
// implementation serve both callers. The table is not thread safe and
// needs to be synchronized externally if probed/stored from multiple
// goroutines; Resize and Clear especially must not run concurrently
// with Probe/Store.
package tt

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/akuraj/eroica/internal/logging"
)

var out = message.NewPrinter(language.German)

// Policy decides, on a hash collision between an occupied slot and an
// incoming key, whether the new value should replace the old one.
type Policy[V any] struct {
	ShouldReplace func(old, new V) bool
}

type entry[K comparable, V any] struct {
	key   K
	value V
	used  bool
}

// Stats holds usage counters for a Table, mirroring the counters the
// teacher's transposition table kept for UCI "info" reporting.
type Stats struct {
	Puts       uint64
	Collisions uint64
	Overwrites uint64
	Updates    uint64
	Probes     uint64
	Hits       uint64
	Misses     uint64
}

// Table is a direct-mapped (single-slot-per-bucket) hash table keyed by
// K with payload V. Index is hash(key) masked to a power-of-two bucket
// count so addressing is a single AND.
type Table[K comparable, V any] struct {
	data   []entry[K, V]
	mask   uint64
	hash   func(K) uint64
	policy Policy[V]
	count  uint64
	Stats  Stats
}

// NewTable creates a Table with 2^bits buckets. hash must deterministically
// map a key to a uint64; policy.ShouldReplace decides collisions.
func NewTable[K comparable, V any](bits int, hash func(K) uint64, policy Policy[V]) *Table[K, V] {
	t := &Table[K, V]{hash: hash, policy: policy}
	t.Resize(bits)
	return t
}

// Resize reallocates the table to 2^bits buckets, discarding all entries.
func (t *Table[K, V]) Resize(bits int) {
	if bits < 0 {
		bits = 0
	}
	n := uint64(1) << uint64(bits)
	t.data = make([]entry[K, V], n)
	t.mask = n - 1
	t.count = 0
	t.Stats = Stats{}
	myLogging.GetTtLog().Debugf("tt resized to %d buckets", n)
}

// Clear empties all entries without changing capacity.
func (t *Table[K, V]) Clear() {
	t.data = make([]entry[K, V], len(t.data))
	t.count = 0
	t.Stats = Stats{}
}

// Probe looks up key and reports whether an entry for exactly that key
// is present.
func (t *Table[K, V]) Probe(key K) (V, bool) {
	t.Stats.Probes++
	e := &t.data[t.index(key)]
	if e.used && e.key == key {
		t.Stats.Hits++
		return e.value, true
	}
	t.Stats.Misses++
	var zero V
	return zero, false
}

// Store inserts value under key. An empty bucket is always filled. A
// bucket occupied by a different key is overwritten only when the
// configured Policy approves; a bucket already holding the same key is
// always updated in place.
func (t *Table[K, V]) Store(key K, value V) {
	if len(t.data) == 0 {
		return
	}
	t.Stats.Puts++
	e := &t.data[t.index(key)]

	if !e.used {
		e.used = true
		e.key = key
		e.value = value
		t.count++
		return
	}

	if e.key != key {
		t.Stats.Collisions++
		if t.policy.ShouldReplace(e.value, value) {
			t.Stats.Overwrites++
			e.key = key
			e.value = value
		}
		return
	}

	t.Stats.Updates++
	e.value = value
}

// Len returns the number of occupied buckets.
func (t *Table[K, V]) Len() uint64 {
	return t.count
}

// Hashfull returns how full the table is in permill, as reported by the
// UCI "hashfull" field.
func (t *Table[K, V]) Hashfull() int {
	if len(t.data) == 0 {
		return 0
	}
	return int((1000 * t.count) / uint64(len(t.data)))
}

// String summarizes the table's size and hit rate.
func (t *Table[K, V]) String() string {
	return out.Sprintf("tt: buckets %d entries %d (%d%%) puts %d updates %d collisions %d overwrites %d "+
		"probes %d hits %d (%d%%) misses %d (%d%%)",
		len(t.data), t.count, t.Hashfull()/10,
		t.Stats.Puts, t.Stats.Updates, t.Stats.Collisions, t.Stats.Overwrites, t.Stats.Probes,
		t.Stats.Hits, (t.Stats.Hits*100)/(1+t.Stats.Probes),
		t.Stats.Misses, (t.Stats.Misses*100)/(1+t.Stats.Probes))
}

func (t *Table[K, V]) index(key K) uint64 {
	return t.hash(key) & t.mask
}
