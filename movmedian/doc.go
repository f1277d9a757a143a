// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package movmedian maintains the median of a sliding window over a numeric
// stream in amortized O(log w) time per value.
//
// The engine is a pair of 8-ary heaps coupled at their roots: a max-heap
// holding the lower half of the window and a min-heap holding the upper half.
// Values leave the window in FIFO order, so eviction never has to delete an
// arbitrary heap node; the oldest node is recycled in place and a single
// re-heapify restores order.
//
// Median is the plain engine and assumes no NaN inputs.  NaNMedian accepts
// NaN, stores each missing value as a signed-infinity placeholder pinned to
// the extreme of its heap, and lazily rebalances so that the non-NaN
// population stays split evenly across the two heaps.
//
// Engines are not safe for concurrent use.  To process many streams in
// parallel, give each stream its own engine; engines share no state.
package movmedian
