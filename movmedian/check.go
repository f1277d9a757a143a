// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package movmedian

import (
	"math"

	"github.com/grailbio/base/log"
)

// checkHeaps verifies the structural invariants shared by both engines,
// panicking on failure:
//   - nS <= maxS, and nS + nL == w once the window is full.
//   - |nS - nL| <= 1 once the window is full, and while filling too when
//     fillBalanced is set.  The NaN-aware engine fills its heaps by non-NaN
//     and placeholder counts, so its heap sizes can differ by more than one
//     until the window is full.
//   - For every live node, heap[node.idx] == node and node.small agrees with
//     the heap that holds it.
//   - The small heap is an 8-ary max-heap, the large heap an 8-ary min-heap.
//   - When both heaps are nonempty, smallRoot <= largeRoot.
//   - The FIFO ring walks exactly nS + nL distinct nodes from first to last.
func (c *heapCore) checkHeaps(tag string, fillBalanced bool) {
	if c.nS > c.maxS {
		log.Panicf("nS = %d exceeds maxS = %d, tag: %s", c.nS, c.maxS, tag)
	}
	if d := c.nS - c.nL; (fillBalanced || c.initDone) && (d < -1 || d > 1) {
		log.Panicf("unbalanced heaps: nS = %d, nL = %d, tag: %s", c.nS, c.nL, tag)
	}
	if c.initDone && c.nS+c.nL != c.w {
		log.Panicf("full window holds %d values, w = %d, tag: %s", c.nS+c.nL, c.w, tag)
	}
	sHeap := c.heaps[:c.nS]
	lHeap := c.heaps[c.maxS : c.maxS+c.nL]
	for i, n := range sHeap {
		if int(c.nodes[n].idx) != i || !c.nodes[n].small {
			log.Panicf("small heap entry %d: node %d has idx %d, small %v, tag: %s", i, n, c.nodes[n].idx, c.nodes[n].small, tag)
		}
		if i > 0 && c.nodes[n].val > c.nodes[sHeap[(i-1)/numChildren]].val {
			log.Panicf("small heap order violated at %d, tag: %s", i, tag)
		}
	}
	for i, n := range lHeap {
		if int(c.nodes[n].idx) != i || c.nodes[n].small {
			log.Panicf("large heap entry %d: node %d has idx %d, small %v, tag: %s", i, n, c.nodes[n].idx, c.nodes[n].small, tag)
		}
		if i > 0 && c.nodes[n].val < c.nodes[lHeap[(i-1)/numChildren]].val {
			log.Panicf("large heap order violated at %d, tag: %s", i, tag)
		}
	}
	if c.nS > 0 && c.nL > 0 && c.nodes[sHeap[0]].val > c.nodes[lHeap[0]].val {
		log.Panicf("roots out of order: %v > %v, tag: %s",
			c.nodes[sHeap[0]].val, c.nodes[lHeap[0]].val, tag)
	}
	if total := c.nS + c.nL; total > 0 {
		seen := make(map[int32]bool, total)
		n := c.first
		for i := 0; i < total; i++ {
			if seen[n] {
				log.Panicf("FIFO ring revisits node %d, tag: %s", n, tag)
			}
			seen[n] = true
			if i == total-1 {
				if n != c.last {
					log.Panicf("FIFO ring ends at node %d, last is %d, tag: %s", n, c.last, tag)
				}
				break
			}
			n = c.nodes[n].next
		}
	}
}

// CheckPanic verifies the engine's invariants, panicking on failure.  Meant
// for stress tests; it walks both heaps and the FIFO ring.
func (m *Median) CheckPanic(tag string) {
	m.checkHeaps(tag, true)
}

// CheckPanic verifies the engine's invariants, panicking on failure.  On top
// of the shared heap and ring checks it verifies that the non-NaN
// populations are balanced, that every placeholder carries the infinity of
// its side and sits on exactly one NaN list, and that no finite node does.
func (z *NaNMedian) CheckPanic(tag string) {
	z.checkHeaps(tag, false)
	if z.nSNaN > z.nS || z.nLNaN > z.nL {
		log.Panicf("more placeholders than nodes: %d/%d small, %d/%d large, tag: %s",
			z.nSNaN, z.nS, z.nLNaN, z.nL, tag)
	}
	if d := (z.nS - z.nSNaN) - (z.nL - z.nLNaN); d < -1 || d > 1 {
		log.Panicf("non-NaN populations unbalanced: %d small, %d large, tag: %s",
			z.nS-z.nSNaN, z.nL-z.nLNaN, tag)
	}
	onList := make(map[int32]bool)
	for _, side := range []struct {
		head, tail int32
		small      bool
		count      int
	}{
		{z.firstNaNS, z.lastNaNS, true, z.nSNaN},
		{z.firstNaNL, z.lastNaNL, false, z.nLNaN},
	} {
		sign := 1
		if side.small {
			sign = -1
		}
		seen := 0
		prev := nilNode
		for n := side.head; n != nilNode; n = z.nextNaN[n] {
			if onList[n] {
				log.Panicf("node %d on two NaN lists, tag: %s", n, tag)
			}
			onList[n] = true
			if !math.IsInf(z.nodes[n].val, sign) {
				log.Panicf("NaN-list node %d holds %v, tag: %s", n, z.nodes[n].val, tag)
			}
			if z.nodes[n].small != side.small {
				log.Panicf("NaN-list node %d on wrong side, tag: %s", n, tag)
			}
			if z.prevNaN[n] != prev {
				log.Panicf("NaN list back-link broken at node %d, tag: %s", n, tag)
			}
			prev = n
			seen++
			if seen > side.count {
				break
			}
		}
		if seen != side.count || prev != side.tail {
			log.Panicf("NaN list walk saw %d of %d nodes (tail %d, want %d), tag: %s",
				seen, side.count, prev, side.tail, tag)
		}
	}
	for i := 0; i < z.nS+z.nL; i++ {
		n := int32(i)
		if math.IsInf(z.nodes[n].val, 0) != onList[n] {
			log.Panicf("node %d: val %v, on NaN list %v, tag: %s", n, z.nodes[n].val, onList[n], tag)
		}
	}
}
