// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package nonreduce

import (
	"math"
	"runtime"
	"sort"

	"github.com/grailbio/base/traverse"
)

// RankData returns the 1-based rank of each element of a, with tied values
// sharing the average of the ranks they span.  NaN inputs are not supported;
// use NaNRankData for data that may carry them.
func RankData(a []float64) []float64 {
	y := make([]float64, len(a))
	if len(a) == 0 {
		return y
	}
	z := argSort(a, false)
	rankSorted(a, z, y, false)
	return y
}

// NaNRankData is RankData for data that may carry NaN: missing values rank
// as NaN and do not influence the ranks of the rest.
func NaNRankData(a []float64) []float64 {
	y := make([]float64, len(a))
	if len(a) == 0 {
		return y
	}
	z := argSort(a, true)
	rankSorted(a, z, y, true)
	return y
}

func argSort(a []float64, nanLast bool) []int {
	z := make([]int, len(a))
	for i := range z {
		z[i] = i
	}
	if nanLast {
		sort.Slice(z, func(i, j int) bool {
			ai, aj := a[z[i]], a[z[j]]
			if math.IsNaN(ai) {
				return false
			}
			if math.IsNaN(aj) {
				return true
			}
			return ai < aj
		})
	} else {
		sort.Slice(z, func(i, j int) bool { return a[z[i]] < a[z[j]] })
	}
	return z
}

// rankSorted walks the sort order z, accumulating runs of equal values and
// assigning each run its average rank.  NaNs sort last and, when nanAware,
// rank as NaN.
func rankSorted(a []float64, z []int, y []float64, nanAware bool) {
	var sumRanks float64
	var dupCount int
	old := a[z[0]]
	for i := 0; i < len(a)-1; i++ {
		sumRanks += float64(i)
		dupCount++
		k := i + 1
		v := a[z[k]]
		if old != v {
			if nanAware && math.IsNaN(old) {
				y[z[i]] = math.NaN()
			} else {
				aveRank := sumRanks/float64(dupCount) + 1
				for j := k - dupCount; j < k; j++ {
					y[z[j]] = aveRank
				}
			}
			sumRanks = 0
			dupCount = 0
		}
		old = v
	}
	sumRanks += float64(len(a) - 1)
	dupCount++
	if nanAware && math.IsNaN(old) {
		y[z[len(a)-1]] = math.NaN()
	} else {
		aveRank := sumRanks/float64(dupCount) + 1
		for j := len(a) - dupCount; j < len(a); j++ {
			y[z[j]] = aveRank
		}
	}
}

// RankData2 applies RankData to each row of a, spreading rows over
// parallelism goroutines (runtime.NumCPU() when <= 0).
func RankData2(a [][]float64, parallelism int) [][]float64 {
	return rank2(a, parallelism, RankData)
}

// NaNRankData2 applies NaNRankData to each row of a in parallel.
func NaNRankData2(a [][]float64, parallelism int) [][]float64 {
	return rank2(a, parallelism, NaNRankData)
}

func rank2(a [][]float64, parallelism int, rank func([]float64) []float64) [][]float64 {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	if parallelism > len(a) {
		parallelism = len(a)
	}
	y := make([][]float64, len(a))
	if len(a) == 0 {
		return y
	}
	traverse.Each(parallelism, func(job int) error { // nolint: errcheck
		start := job * len(a) / parallelism
		end := (job + 1) * len(a) / parallelism
		for row := start; row < end; row++ {
			y[row] = rank(a[row])
		}
		return nil
	})
	return y
}
