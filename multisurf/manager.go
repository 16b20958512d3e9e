// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package multisurf implements the bookkeeping of active yield surfaces for
// multi-surface return mapping algorithms
package multisurf

import (
	"errors"
	"math/bits"
	"sort"

	"github.com/cpmech/gosl/chk"
)

// NmaxSurf is the maximum number of candidate surfaces
const NmaxSurf = 16

// ErrExhausted indicates that all combinations of active surfaces have been tried
var ErrExhausted = errors.New("multisurf: all yield surface combinations have been tried")

// Combination is a bit pattern: bit i is set if surface i is active
type Combination uint32

// FromFlags builds a combination from a list of flags
func FromFlags(flags []bool) (c Combination) {
	for i, active := range flags {
		if active {
			c |= 1 << uint(i)
		}
	}
	return
}

// Active tells whether surface i is active
func (c Combination) Active(i int) bool {
	return c&(1<<uint(i)) != 0
}

// With returns a copy of c with surface i active
func (c Combination) With(i int) Combination {
	return c | 1<<uint(i)
}

// NumActive returns the number of active surfaces
func (c Combination) NumActive() int {
	return bits.OnesCount32(uint32(c))
}

// Flags returns the n flags of this combination
func (c Combination) Flags(n int) []bool {
	flags := make([]bool, n)
	for i := 0; i < n; i++ {
		flags[i] = c.Active(i)
	}
	return flags
}

// String returns the flags as a string of zeros and ones; e.g. surface 0 and 2
// active within 3 surfaces gives "101"
func (c Combination) String(n int) string {
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		buf[i] = '0'
		if c.Active(i) {
			buf[i] = '1'
		}
	}
	return string(buf)
}

// Order defines the sequence in which combinations are proposed
type Order int

const (
	Ascending         Order = iota // 0, 1, 2, ..., 2ⁿ-1
	FewestActiveFirst              // by number of active surfaces; ties in ascending order
)

// Manager records which combinations have been tried during one local solve.
// Each of the 2ⁿ combinations is proposed at most once between calls to Reset.
type Manager struct {
	n     int           // number of surfaces
	seq   []Combination // proposal sequence
	used  []bool        // [2ⁿ] tried flags
	nused int           // number of distinct combinations marked as used
}

// New returns a new manager for n surfaces
func New(n int, order Order) (o *Manager, err error) {
	if n < 1 || n > NmaxSurf {
		return nil, chk.Err("multisurf: number of surfaces must be in [1, %d]. n=%d is invalid", NmaxSurf, n)
	}
	ncomb := 1 << uint(n)
	o = &Manager{n: n, used: make([]bool, ncomb), seq: make([]Combination, ncomb)}
	for i := 0; i < ncomb; i++ {
		o.seq[i] = Combination(i)
	}
	switch order {
	case Ascending:
	case FewestActiveFirst:
		sort.SliceStable(o.seq, func(i, j int) bool {
			return o.seq[i].NumActive() < o.seq[j].NumActive()
		})
	default:
		return nil, chk.Err("multisurf: order %d is invalid", order)
	}
	return
}

// Nsurf returns the number of surfaces
func (o *Manager) Nsurf() int { return o.n }

// NumCombinations returns 2ⁿ
func (o *Manager) NumCombinations() int { return len(o.used) }

// NumUsed returns the number of distinct combinations already tried
func (o *Manager) NumUsed() int { return o.nused }

// Exhausted tells whether all combinations have been tried
func (o *Manager) Exhausted() bool { return o.nused == len(o.used) }

// Reset clears the tried set; call it at the start of each local solve
func (o *Manager) Reset() {
	for i := range o.used {
		o.used[i] = false
	}
	o.nused = 0
}

// MarkAsUsed records c as tried. It returns false if c is out of range
func (o *Manager) MarkAsUsed(c Combination) bool {
	if int(c) >= len(o.used) {
		return false
	}
	if !o.used[c] {
		o.used[c] = true
		o.nused++
	}
	return true
}

// WasUsed tells whether c has already been tried
func (o *Manager) WasUsed(c Combination) bool {
	if int(c) >= len(o.used) {
		return false
	}
	return o.used[c]
}

// NextUntried proposes the next combination not yet tried. ok is false when
// all combinations have been tried
func (o *Manager) NextUntried() (c Combination, ok bool) {
	if o.Exhausted() {
		return 0, false
	}
	for _, c = range o.seq {
		if !o.used[c] {
			return c, true
		}
	}
	return 0, false
}

// NextUntriedWith proposes the next untried combination that activates at
// least all surfaces in 'must'. ok is false if there is none
func (o *Manager) NextUntriedWith(must Combination) (c Combination, ok bool) {
	for _, c = range o.seq {
		if !o.used[c] && c&must == must {
			return c, true
		}
	}
	return 0, false
}
