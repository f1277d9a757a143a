// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package nonreduce_test

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/grailbio/movstats/nonreduce"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"
)

func TestPartition(t *testing.T) {
	for iter := 0; iter < 200; iter++ {
		length := rand.Intn(100) + 1
		a := make([]float64, length)
		for i := range a {
			a[i] = float64(rand.Intn(32)) // coarse values force ties
		}
		n := rand.Intn(length) + 1
		sorted := append([]float64(nil), a...)
		sort.Float64s(sorted)

		require.NoError(t, nonreduce.Partition(a, n))
		expect.EQ(t, a[n-1], sorted[n-1])
		for _, v := range a[:n] {
			expect.LE(t, v, sorted[n-1])
		}
		for _, v := range a[n:] {
			expect.GE(t, v, sorted[n-1])
		}
		// The multiset must be preserved.
		resorted := append([]float64(nil), a...)
		sort.Float64s(resorted)
		expect.EQ(t, resorted, sorted)
	}
}

func TestPartitionArgs(t *testing.T) {
	a := []float64{3, 1, 2}
	require.Error(t, nonreduce.Partition(a, 0))
	require.Error(t, nonreduce.Partition(a, 4))
	require.NoError(t, nonreduce.Partition(nil, 5)) // empty input: no-op
}

func TestArgPartition(t *testing.T) {
	for iter := 0; iter < 200; iter++ {
		length := rand.Intn(100) + 1
		a := make([]float64, length)
		for i := range a {
			a[i] = rand.NormFloat64()
		}
		orig := append([]float64(nil), a...)
		n := rand.Intn(length) + 1

		perm, err := nonreduce.ArgPartition(a, n)
		require.NoError(t, err)
		expect.EQ(t, a, orig) // input untouched

		seen := make([]bool, length)
		for _, p := range perm {
			require.False(t, seen[p], "index %d repeated", p)
			seen[p] = true
		}
		sorted := append([]float64(nil), a...)
		sort.Float64s(sorted)
		expect.EQ(t, a[perm[n-1]], sorted[n-1])
		for _, p := range perm[:n] {
			expect.LE(t, a[p], sorted[n-1])
		}
	}
}

func TestArgPartitionSmall(t *testing.T) {
	for idx, test := range []struct {
		a []float64
		n int
	}{
		{[]float64{5}, 1},
		{[]float64{2, 1}, 1},
		{[]float64{2, 1}, 2},
		{[]float64{7, 7, 7}, 2},
	} {
		t.Run(fmt.Sprint(idx), func(t *testing.T) {
			perm, err := nonreduce.ArgPartition(test.a, test.n)
			require.NoError(t, err)
			require.Len(t, perm, len(test.a))
		})
	}
}
