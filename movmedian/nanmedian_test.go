// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package movmedian_test

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/grailbio/movstats/movmedian"
	"github.com/stretchr/testify/require"
)

func feedNaNMedian(z *movmedian.NaNMedian, src []float64, dst []float64) {
	for i, v := range src {
		if i < z.Window() {
			z.Push(v)
		} else {
			z.Update(v)
		}
		dst[i] = z.Median()
	}
}

func TestNaNMedianScenarios(t *testing.T) {
	tests := []struct {
		w, minCount int
		in, want    []float64
	}{
		{3, 1, []float64{nan, 1, nan, 2, 3}, []float64{nan, 1, 1, 1.5, 2.5}},
		{5, 3, []float64{nan, nan, 1, 2, 3, nan, nan}, []float64{nan, nan, nan, nan, 2, 2, 2}},
		{5, 1, []float64{nan, nan, 1, 2, 3, nan, nan}, []float64{nan, nan, 1, 1.5, 2, 2, 2}},
		{3, 3, []float64{1, 2, 3, 4, 5}, []float64{nan, nan, 2, 3, 4}},
		{4, 1, []float64{10, 20, 30, 40, 50}, []float64{10, 15, 20, 25, 35}},
		{2, 1, []float64{nan, nan, nan, 7}, []float64{nan, nan, nan, 7}},
		{1, 1, []float64{nan, 4, nan}, []float64{nan, 4, nan}},
	}
	for idx, test := range tests {
		t.Run(fmt.Sprint(idx), func(t *testing.T) {
			z, err := movmedian.NewNaNMedian(test.w, test.minCount)
			require.NoError(t, err)
			got := make([]float64, len(test.in))
			feedNaNMedian(z, test.in, got)
			for i := range got {
				if !eqOrBothNaN(got[i], test.want[i]) {
					t.Errorf("position %d: got %v, want %v", i, got[i], test.want[i])
				}
			}
		})
	}
}

// TestNaNMedianOracle compares the NaN-aware engine against the naive
// sorted-window median on long random streams with a range of NaN injection
// rates.
func TestNaNMedianOracle(t *testing.T) {
	const n = 100000
	for _, w := range []int{1, 2, 7, 64, 1024} {
		for _, nanPct := range []int{0, 20, 80} {
			t.Run(fmt.Sprintf("w=%d-nan=%d%%", w, nanPct), func(t *testing.T) {
				minCount := 1
				if w > 1 {
					minCount = 1 + rand.Intn(w)
				}
				z, err := movmedian.NewNaNMedian(w, minCount)
				require.NoError(t, err)
				oracle := newNaiveMedian(w, minCount)
				for i := 0; i < n; i++ {
					v := float64(rand.Intn(64))
					if rand.Intn(100) < nanPct {
						v = nan
					}
					if i < w {
						z.Push(v)
					} else {
						z.Update(v)
					}
					oracle.push(v)
					if got, want := z.Median(), oracle.median(); !eqOrBothNaN(got, want) {
						t.Fatalf("position %d: got %v, want %v", i, got, want)
					}
				}
			})
		}
	}
}

// TestNaNMedianInvariants checks the placeholder and balance invariants
// after every operation, across NaN rates heavy enough to keep both sides'
// NaN lists busy.
func TestNaNMedianInvariants(t *testing.T) {
	const n = 3000
	for _, w := range []int{1, 2, 3, 7, 9, 64} {
		for _, nanPct := range []int{0, 20, 50, 95} {
			z, err := movmedian.NewNaNMedian(w, 1)
			require.NoError(t, err)
			for i := 0; i < n; i++ {
				v := float64(rand.Intn(16))
				if rand.Intn(100) < nanPct {
					v = nan
				}
				if i < w {
					z.Push(v)
				} else {
					z.Update(v)
				}
				z.CheckPanic(fmt.Sprintf("w=%d nan=%d i=%d", w, nanPct, i))
			}
		}
	}
}

func TestNaNMedianReset(t *testing.T) {
	const n = 5000
	for _, w := range []int{1, 5, 32} {
		src := make([]float64, n)
		for i := range src {
			if rand.Intn(4) == 0 {
				src[i] = nan
			} else {
				src[i] = rand.NormFloat64()
			}
		}
		z, err := movmedian.NewNaNMedian(w, 1)
		require.NoError(t, err)
		out1 := make([]float64, n)
		feedNaNMedian(z, src, out1)
		z.Reset()
		out2 := make([]float64, n)
		feedNaNMedian(z, src, out2)
		for i := range out1 {
			if math.Float64bits(out1[i]) != math.Float64bits(out2[i]) {
				t.Fatalf("w=%d: position %d differs after reset: %v vs %v", w, i, out1[i], out2[i])
			}
		}
	}
}

// TestNaNMedianAllNaN drains the window down to zero real values and
// refills it, exercising eviction of placeholders from both sides.
func TestNaNMedianAllNaN(t *testing.T) {
	z, err := movmedian.NewNaNMedian(4, 1)
	require.NoError(t, err)
	in := []float64{1, 2, 3, 4, nan, nan, nan, nan, 5, 6, nan, 7}
	want := []float64{1, 1.5, 2, 2.5, 3, 3.5, 4, nan, 5, 5.5, 5.5, 6}
	got := make([]float64, len(in))
	feedNaNMedian(z, in, got)
	for i := range got {
		if !eqOrBothNaN(got[i], want[i]) {
			t.Errorf("position %d: got %v, want %v", i, got[i], want[i])
		}
	}
	require.Equal(t, 1, z.NumNaN())
}

func BenchmarkNaNMedianUpdate(b *testing.B) {
	for _, nanPct := range []int{0, 20, 80} {
		b.Run(fmt.Sprintf("nan=%d%%", nanPct), func(b *testing.B) {
			const w = 64
			z, err := movmedian.NewNaNMedian(w, 1)
			if err != nil {
				b.Fatal(err)
			}
			src := make([]float64, w+b.N)
			for i := range src {
				if rand.Intn(100) < nanPct {
					src[i] = math.NaN()
				} else {
					src[i] = rand.NormFloat64()
				}
			}
			for i := 0; i < w; i++ {
				z.Push(src[i])
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				z.Update(src[w+i])
				_ = z.Median()
			}
		})
	}
}
