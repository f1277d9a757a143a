// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package movmedian

import (
	"math"

	"github.com/grailbio/base/errors"
)

// Median computes the sliding-window median of a stream with no missing
// values.  NaN inputs are not supported; feed streams that may carry NaN to
// NaNMedian instead.
//
// The zero value is not usable; call NewMedian.
type Median struct {
	heapCore
}

// NewMedian returns an engine for a window of w values.  While fewer than
// minCount values are in the window, Median reports NaN.  The node pool and
// both heap index arrays are allocated here, once; no later operation
// allocates.
func NewMedian(w, minCount int) (*Median, error) {
	if err := checkArgs(w, minCount); err != nil {
		return nil, err
	}
	return &Median{heapCore: newHeapCore(w, minCount)}, nil
}

func checkArgs(w, minCount int) error {
	if w < 1 {
		return errors.E("movmedian: window must be at least 1, got", w)
	}
	if minCount < 0 || minCount > w {
		return errors.E("movmedian: min count must be in [0, window], got", minCount)
	}
	return nil
}

// Reset returns the engine to the empty, filling state.  Memory is retained,
// so a single engine can be reused across the rows of a larger array.
func (m *Median) Reset() {
	m.resetCore()
}

// Push inserts one of the first w values.  It must be called exactly w times
// after construction or Reset, before any Update.
func (m *Median) Push(v float64) {
	n := int32(m.nS + m.nL)
	if m.nS == 0 {
		m.placeFirst(n, v)
	} else {
		// Thread the new node in at the head of the FIFO ring and park it at
		// the end of a heap; rotate immediately moves it to the tail and
		// update assigns v and sifts it into place.
		m.nodes[n].next = m.first
		m.first = n
		if m.nS == m.maxS || m.nS > m.nL {
			m.placeLarge(n)
		} else {
			m.placeSmall(n)
		}
		m.rotate(v)
	}
	if m.nS+m.nL >= m.w {
		m.initDone = true
	}
}

// Update slides the window by one: the oldest value is evicted and v is
// admitted.  Valid once the window is full.
func (m *Median) Update(v float64) {
	m.rotate(v)
}

// Median returns the median of the values currently in the window: the root
// of the fuller heap when their total is odd, the mean of the two roots when
// it is even.  It returns NaN while the window holds fewer than minCount
// values.
func (m *Median) Median() float64 {
	total := m.nS + m.nL
	if total < m.minCount || total == 0 {
		return math.NaN()
	}
	if total%2 == 1 {
		if m.nL > m.nS {
			return m.nodes[m.heaps[m.maxS]].val
		}
		return m.nodes[m.heaps[0]].val
	}
	return (m.nodes[m.heaps[0]].val + m.nodes[m.heaps[m.maxS]].val) / 2
}

// Window returns the window size the engine was constructed with.
func (m *Median) Window() int { return m.w }

// Len returns the number of values currently in the window.
func (m *Median) Len() int { return m.nS + m.nL }
