// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package movmedian

import "math"

// NaNMedian computes the sliding-window median of a stream that may carry
// missing values (NaN).
//
// A NaN is never stored as NaN inside the heaps, where comparisons against
// it would be ill-defined.  Each missing value occupies a node pinned to the
// extreme of its heap: -Inf on the small side, +Inf on the large side, so
// both heap properties and the cross-heap root order hold trivially.  Each
// side additionally threads its placeholders on an intrusive doubly-linked
// list, which makes evicting a placeholder and transferring the oldest one
// across sides O(1).
//
// The median is taken over the non-NaN population only; while the window
// holds fewer than minCount non-NaN values, Median reports NaN.
type NaNMedian struct {
	heapCore

	nSNaN, nLNaN int // placeholders per side

	firstNaNS, lastNaNS int32 // small-side NaN list endpoints
	firstNaNL, lastNaNL int32 // large-side NaN list endpoints

	prevNaN, nextNaN []int32 // per-node NaN list links
}

// NewNaNMedian returns a NaN-aware engine for a window of w values.  All
// memory is allocated here; no later operation allocates.
func NewNaNMedian(w, minCount int) (*NaNMedian, error) {
	if err := checkArgs(w, minCount); err != nil {
		return nil, err
	}
	z := &NaNMedian{
		heapCore: newHeapCore(w, minCount),
		prevNaN:  make([]int32, w),
		nextNaN:  make([]int32, w),
	}
	z.resetNaN()
	return z, nil
}

// Reset returns the engine to the empty, filling state, retaining memory.
func (z *NaNMedian) Reset() {
	z.resetCore()
	z.resetNaN()
}

func (z *NaNMedian) resetNaN() {
	z.nSNaN = 0
	z.nLNaN = 0
	z.firstNaNS = nilNode
	z.lastNaNS = nilNode
	z.firstNaNL = nilNode
	z.lastNaNL = nilNode
}

// appendNaN links node n at the tail of one side's NaN list.  The side is
// keyed by the placeholder's sign, which always agrees with the heap the
// node settles in.
func (z *NaNMedian) appendNaN(n int32, smallSide bool) {
	var head, tail *int32
	if smallSide {
		z.nSNaN++
		head, tail = &z.firstNaNS, &z.lastNaNS
	} else {
		z.nLNaN++
		head, tail = &z.firstNaNL, &z.lastNaNL
	}
	z.nextNaN[n] = nilNode
	z.prevNaN[n] = *tail
	if *tail == nilNode {
		*head = n
	} else {
		z.nextNaN[*tail] = n
	}
	*tail = n
}

// removeNaN unlinks node n from the NaN list of the side it currently
// occupies.
func (z *NaNMedian) removeNaN(n int32) {
	var head, tail *int32
	if z.nodes[n].small {
		z.nSNaN--
		head, tail = &z.firstNaNS, &z.lastNaNS
	} else {
		z.nLNaN--
		head, tail = &z.firstNaNL, &z.lastNaNL
	}
	prev, next := z.prevNaN[n], z.nextNaN[n]
	if prev == nilNode {
		*head = next
	} else {
		z.nextNaN[prev] = next
	}
	if next == nilNode {
		*tail = prev
	} else {
		z.prevNaN[next] = prev
	}
	z.prevNaN[n] = nilNode
	z.nextNaN[n] = nilNode
}

// Push inserts one of the first w values; v may be NaN.  It must be called
// exactly w times after construction or Reset, before any Update.
func (z *NaNMedian) Push(v float64) {
	isNaN := math.IsNaN(v)
	if z.nS == 0 {
		n := int32(0)
		z.placeFirst(n, v)
		if isNaN {
			z.nodes[n].val = math.Inf(-1)
			z.appendNaN(n, true)
		}
	} else if isNaN {
		z.pushNaN()
	} else {
		n := int32(z.nS + z.nL)
		z.nodes[n].next = z.first
		z.first = n
		// Destination is chosen on the non-NaN populations so the real
		// values stay balanced even when placeholders crowd one side.
		if z.nS == z.maxS || (z.nS-z.nSNaN) > (z.nL-z.nLNaN) {
			z.placeLarge(n)
		} else {
			z.placeSmall(n)
		}
		z.rotate(v)
	}
	if z.nS+z.nL >= z.w {
		z.initDone = true
	}
}

// pushNaN inserts a placeholder during the fill phase.  Placeholders
// alternate sides (subject to capacity) so neither heap fills up with them.
func (z *NaNMedian) pushNaN() {
	n := int32(z.nS + z.nL)
	z.nodes[n].next = z.first
	z.first = n

	lFull := z.nL == z.w-z.maxS
	sFull := z.nS == z.maxS
	var v float64
	if (sFull || z.nSNaN > z.nLNaN) && !lFull {
		z.placeLarge(n)
		v = math.Inf(1)
	} else {
		z.placeSmall(n)
		v = math.Inf(-1)
	}
	z.admit(v)
}

// Update slides the window by one; v may be NaN.  Valid once the window is
// full.
func (z *NaNMedian) Update(v float64) {
	nonNaNS := z.nS - z.nSNaN
	nonNaNL := z.nL - z.nLNaN

	if math.IsNaN(v) {
		// Pick the placeholder's side so that, after the victim leaves, the
		// heavier non-NaN side receives it.  Keeping the real populations
		// balanced here avoids the cross-side transfer below in the common
		// case, which matters when both the NaN rate and the window are
		// large.
		victim := &z.nodes[z.first]
		evictS, evictL := 0, 0
		if math.IsInf(victim.val, 0) {
			if victim.small {
				evictS = 1
			} else {
				evictL = 1
			}
		}
		if nonNaNS+evictS > nonNaNL+evictL {
			z.evictAdmit(math.Inf(-1))
		} else {
			z.evictAdmit(math.Inf(1))
		}
	} else {
		// The victim may still be a placeholder, so take the eviction-aware
		// path regardless of v.
		z.evictAdmit(v)
	}

	nonNaNS = z.nS - z.nSNaN
	nonNaNL = z.nL - z.nLNaN
	if nonNaNL == nonNaNS+2 {
		z.moveNaN(false) // large side has too many real values
	} else if nonNaNS == nonNaNL+2 {
		z.moveNaN(true) // small side has too many real values
	}
}

// evictAdmit retires the oldest node's placeholder bookkeeping, if any, then
// admits v into that node.
func (z *NaNMedian) evictAdmit(v float64) {
	if math.IsInf(z.nodes[z.first].val, 0) {
		z.removeNaN(z.first)
	}
	z.admit(v)
}

// admit links the incoming node (at the FIFO head) into a NaN list when v is
// a placeholder, then rotates the ring and re-heapifies.
func (z *NaNMedian) admit(v float64) {
	if math.IsInf(v, 0) {
		z.appendNaN(z.first, math.IsInf(v, -1))
	}
	z.rotate(v)
}

// moveNaN transfers the oldest placeholder from one side to the other,
// flipping its sign.  The subsequent update carries the node across via a
// head swap.  A transfer shifts the non-NaN imbalance by two, restoring
// invariant balance in one step.
func (z *NaNMedian) moveNaN(toSmall bool) {
	var n int32
	var v float64
	if toSmall {
		n = z.firstNaNL
		v = math.Inf(-1)
	} else {
		n = z.firstNaNS
		v = math.Inf(1)
	}
	z.removeNaN(n)
	z.appendNaN(n, toSmall)
	z.update(n, v)
}

// Median returns the median of the non-NaN values currently in the window,
// or NaN while there are fewer than minCount of them.
func (z *NaNMedian) Median() float64 {
	nonNaNS := z.nS - z.nSNaN
	nonNaNL := z.nL - z.nLNaN
	total := nonNaNS + nonNaNL
	if total < z.minCount || total == 0 {
		return math.NaN()
	}
	if total%2 == 1 {
		if nonNaNL > nonNaNS {
			return z.nodes[z.heaps[z.maxS]].val
		}
		return z.nodes[z.heaps[0]].val
	}
	return (z.nodes[z.heaps[0]].val + z.nodes[z.heaps[z.maxS]].val) / 2
}

// Window returns the window size the engine was constructed with.
func (z *NaNMedian) Window() int { return z.w }

// Len returns the number of values, NaN included, currently in the window.
func (z *NaNMedian) Len() int { return z.nS + z.nL }

// NumNaN returns the number of missing values currently in the window.
func (z *NaNMedian) NumNaN() int { return z.nSNaN + z.nLNaN }
