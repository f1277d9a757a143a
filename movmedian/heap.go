// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package movmedian

// numChildren is the heap branching factor.  It has a maximum of 8 due to the
// manual unrolling in extremalChild.
const numChildren = 8

// nilNode marks an empty node reference.  All node "pointers" (FIFO links,
// NaN-list links, heap entries) are indices into a handle's node pool.
const nilNode = int32(-1)

// node is one slot of the window.  A node is allocated once, at handle
// construction, and recycled in place when its value slides out of the
// window.
type node struct {
	val   float64
	idx   int32 // back-index: position of this node in its heap's index array
	small bool  // true iff the node currently lives in the small (max-)heap
	next  int32 // FIFO successor, in order of insertion
}

// heapCore is the state shared by the plain and the NaN-aware engines: the
// node pool, the two root-coupled 8-ary heaps, and the FIFO eviction ring.
//
// The index array is a single []int32 of length w; the small heap occupies
// [0, maxS) and the large heap [maxS, w).  The small heap is a max-heap over
// the lower half of the window, the large heap a min-heap over the upper
// half, so the two roots bracket the median.
type heapCore struct {
	w        int
	minCount int
	maxS     int // small-heap capacity, ceil(w/2)
	nS, nL   int

	// Most nodes are leaves; caching the first leaf index lets update skip
	// the sift-down call on them.
	sFirstLeaf int
	lFirstLeaf int

	initDone    bool
	first, last int32

	heaps []int32 // small heap is heaps[:maxS], large heap is heaps[maxS:]
	nodes []node
}

func newHeapCore(w, minCount int) heapCore {
	c := heapCore{
		w:        w,
		minCount: minCount,
		maxS:     w/2 + w%2,
		heaps:    make([]int32, w),
		nodes:    make([]node, w),
	}
	c.resetCore()
	return c
}

func (c *heapCore) resetCore() {
	c.nS = 0
	c.nL = 0
	c.initDone = false
	c.first = nilNode
	c.last = nilNode
}

// firstLeafIdx returns the index of the first leaf of an n-element 8-ary
// heap, ceil((n-1)/8).  For n <= 1 this is the root; callers treat
// "idx < firstLeafIdx" strictly as "has at least one child", which a 1-node
// heap's root does not.
func firstLeafIdx(n int) int {
	if n <= 1 {
		return 0
	}
	return (n + numChildren - 2) / numChildren
}

func gtVal(a, b float64) bool { return a > b }
func ltVal(a, b float64) bool { return a < b }

// extremalChild returns the index of the child of heap[idx] that most
// strictly beats it under the given comparator (largest child for the
// max-heap, smallest for the min-heap), or idx itself when no child does.
// Children are scanned from the highest slot down with strict comparisons:
// a child never displaces an equal parent, and among equal best children the
// highest slot wins.
func extremalChild(pool []node, heap []int32, size, idx int, beats func(a, b float64) bool) int {
	i0 := numChildren*idx + 1
	if i0 >= size {
		return idx
	}
	i1 := i0 + numChildren
	if i1 > size {
		i1 = size
	}
	switch i1 - i0 {
	case 8:
		if beats(pool[heap[i0+7]].val, pool[heap[idx]].val) {
			idx = i0 + 7
		}
		fallthrough
	case 7:
		if beats(pool[heap[i0+6]].val, pool[heap[idx]].val) {
			idx = i0 + 6
		}
		fallthrough
	case 6:
		if beats(pool[heap[i0+5]].val, pool[heap[idx]].val) {
			idx = i0 + 5
		}
		fallthrough
	case 5:
		if beats(pool[heap[i0+4]].val, pool[heap[idx]].val) {
			idx = i0 + 4
		}
		fallthrough
	case 4:
		if beats(pool[heap[i0+3]].val, pool[heap[idx]].val) {
			idx = i0 + 3
		}
		fallthrough
	case 3:
		if beats(pool[heap[i0+2]].val, pool[heap[idx]].val) {
			idx = i0 + 2
		}
		fallthrough
	case 2:
		if beats(pool[heap[i0+1]].val, pool[heap[idx]].val) {
			idx = i0 + 1
		}
		fallthrough
	case 1:
		if beats(pool[heap[i0]].val, pool[heap[idx]].val) {
			idx = i0
		}
	}
	return idx
}

// swapNodes exchanges the two heap entries and keeps both nodes' back-indices
// in sync.  All idx maintenance funnels through here.
func swapNodes(pool []node, heap []int32, i, j int) {
	heap[i], heap[j] = heap[j], heap[i]
	pool[heap[i]].idx = int32(i)
	pool[heap[j]].idx = int32(j)
}

func siftUp(pool []node, heap []int32, idx int, beats func(a, b float64) bool) {
	for idx > 0 {
		p := (idx - 1) / numChildren
		if !beats(pool[heap[idx]].val, pool[heap[p]].val) {
			break
		}
		swapNodes(pool, heap, idx, p)
		idx = p
	}
}

func siftDown(pool []node, heap []int32, size, idx int, beats func(a, b float64) bool) {
	for {
		child := extremalChild(pool, heap, size, idx, beats)
		if child == idx {
			return
		}
		swapNodes(pool, heap, idx, child)
		idx = child
	}
}

// swapHeads exchanges the two heap roots, flips their heap membership, and
// sifts each toward the leaves of its new heap.  Called when a value update
// leaves the small root above the large root.
func (c *heapCore) swapHeads() {
	pool := c.nodes
	sHeap := c.heaps[:c.maxS]
	lHeap := c.heaps[c.maxS:]
	sn, ln := sHeap[0], lHeap[0]
	pool[sn].small = false
	pool[ln].small = true
	sHeap[0], lHeap[0] = ln, sn
	siftDown(pool, sHeap, c.nS, 0, gtVal)
	siftDown(pool, lHeap, c.nL, 0, ltVal)
}

// update replaces node n's value and restores both heap properties and the
// cross-heap root order.  The node keeps its identity and heap slot; a
// single sift (plus at most one head swap) suffices because only this one
// value changed.  Every mutation of a live node's value funnels through
// here.
func (c *heapCore) update(n int32, v float64) {
	pool := c.nodes
	pool[n].val = v
	idx := int(pool[n].idx)
	sHeap := c.heaps[:c.maxS]
	lHeap := c.heaps[c.maxS:]

	if pool[n].small {
		if idx > 0 {
			p := (idx - 1) / numChildren
			if v > pool[sHeap[p]].val {
				siftUp(pool, sHeap, idx, gtVal)
				// The large heap can be empty here: the window may so far
				// hold placeholders and a single number.
				if c.nL > 0 && v > pool[lHeap[0]].val {
					c.swapHeads()
				}
			} else if idx < c.sFirstLeaf {
				siftDown(pool, sHeap, c.nS, idx, gtVal)
			}
		} else {
			if c.nL > 0 && v > pool[lHeap[0]].val {
				c.swapHeads()
			} else {
				siftDown(pool, sHeap, c.nS, idx, gtVal)
			}
		}
		return
	}

	if idx > 0 {
		p := (idx - 1) / numChildren
		if v < pool[lHeap[p]].val {
			siftUp(pool, lHeap, idx, ltVal)
			if c.nS > 0 && v < pool[sHeap[0]].val {
				c.swapHeads()
			}
		} else if idx < c.lFirstLeaf {
			siftDown(pool, lHeap, c.nL, idx, ltVal)
		}
	} else {
		if c.nS > 0 && v < pool[sHeap[0]].val {
			c.swapHeads()
		} else {
			siftDown(pool, lHeap, c.nL, idx, ltVal)
		}
	}
}

// rotate advances the FIFO ring by one: the oldest node becomes the newest,
// then update re-heapifies it with the incoming value.
func (c *heapCore) rotate(v float64) {
	n := c.first
	c.first = c.nodes[n].next
	c.nodes[c.last].next = n
	c.last = n
	c.update(n, v)
}

// placeSmall appends node n at the end of the small heap.  The caller
// assigns the value (via update) afterwards.
func (c *heapCore) placeSmall(n int32) {
	c.heaps[c.nS] = n
	c.nodes[n].small = true
	c.nodes[n].idx = int32(c.nS)
	c.nS++
	c.sFirstLeaf = firstLeafIdx(c.nS)
}

// placeLarge appends node n at the end of the large heap.
func (c *heapCore) placeLarge(n int32) {
	c.heaps[c.maxS+c.nL] = n
	c.nodes[n].small = false
	c.nodes[n].idx = int32(c.nL)
	c.nL++
	c.lFirstLeaf = firstLeafIdx(c.nL)
}

// placeFirst installs node n as the very first element: the small-heap root
// and both FIFO endpoints.  Its FIFO link points at itself so a one-node
// ring rotates correctly.
func (c *heapCore) placeFirst(n int32, v float64) {
	c.heaps[0] = n
	c.nodes[n] = node{val: v, idx: 0, small: true, next: n}
	c.nS = 1
	c.sFirstLeaf = 0
	c.first = n
	c.last = n
}
