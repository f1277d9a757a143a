// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package nonreduce

import (
	"math"
	"runtime"

	"github.com/grailbio/base/traverse"
)

// Push fills NaN gaps in a, in place, with the most recent non-NaN value, as
// long as that value is at most n positions back.  Leading NaNs, and NaNs
// further than n from a real value, are left as NaN.  Pass n >= len(a) for
// an unbounded forward fill.
func Push(a []float64, n int) {
	last := -1 // index of the most recent non-NaN value
	for i, v := range a {
		if !math.IsNaN(v) {
			last = i
			continue
		}
		if last >= 0 && i-last <= n {
			a[i] = a[last]
		}
	}
}

// Push2 applies Push to each row of a, spreading rows over parallelism
// goroutines (runtime.NumCPU() when <= 0).
func Push2(a [][]float64, n, parallelism int) {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	if parallelism > len(a) {
		parallelism = len(a)
	}
	if len(a) == 0 {
		return
	}
	traverse.Each(parallelism, func(job int) error { // nolint: errcheck
		start := job * len(a) / parallelism
		end := (job + 1) * len(a) / parallelism
		for row := start; row < end; row++ {
			Push(a[row], n)
		}
		return nil
	})
}
