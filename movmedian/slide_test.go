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
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"
)

func TestSlide(t *testing.T) {
	src := []float64{10, 20, 30, 40, 50}
	dst := make([]float64, len(src))
	require.NoError(t, movmedian.Slide(dst, src, 4, 1))
	expect.EQ(t, dst, []float64{10, 15, 20, 25, 35})

	require.Error(t, movmedian.Slide(dst[:2], src, 4, 1))
	require.Error(t, movmedian.Slide(dst, src, 0, 0))
}

func TestSlideNaN(t *testing.T) {
	src := []float64{nan, 1, nan, 2, 3}
	dst := make([]float64, len(src))
	require.NoError(t, movmedian.SlideNaN(dst, src, 3, 1))
	want := []float64{nan, 1, 1, 1.5, 2.5}
	for i := range dst {
		if !eqOrBothNaN(dst[i], want[i]) {
			t.Errorf("position %d: got %v, want %v", i, dst[i], want[i])
		}
	}
}

// TestSlideShortStream covers streams shorter than the window: every
// position stays in the filling state.
func TestSlideShortStream(t *testing.T) {
	src := []float64{3, 1}
	dst := make([]float64, len(src))
	require.NoError(t, movmedian.Slide(dst, src, 8, 1))
	expect.EQ(t, dst, []float64{3, 2})
}

// TestSlideFrame verifies that the row-parallel driver matches per-row
// Slide exactly, for several parallelism settings including more jobs than
// rows.
func TestSlideFrame(t *testing.T) {
	const nRow, nCol = 37, 211
	src := make([][]float64, nRow)
	want := make([][]float64, nRow)
	for i := range src {
		src[i] = make([]float64, nCol)
		for j := range src[i] {
			src[i][j] = rand.NormFloat64()
		}
		want[i] = make([]float64, nCol)
		require.NoError(t, movmedian.Slide(want[i], src[i], 16, 4))
	}
	for _, parallelism := range []int{0, 1, 3, 64} {
		t.Run(fmt.Sprint(parallelism), func(t *testing.T) {
			dst := make([][]float64, nRow)
			for i := range dst {
				dst[i] = make([]float64, nCol)
			}
			require.NoError(t, movmedian.SlideFrame(dst, src, 16, 4, parallelism))
			for i := range dst {
				for j := range dst[i] {
					if math.Float64bits(dst[i][j]) != math.Float64bits(want[i][j]) {
						t.Fatalf("row %d col %d: got %v, want %v", i, j, dst[i][j], want[i][j])
					}
				}
			}
		})
	}
}

func TestSlideFrameNaN(t *testing.T) {
	const nRow, nCol = 19, 137
	src := make([][]float64, nRow)
	want := make([][]float64, nRow)
	for i := range src {
		src[i] = make([]float64, nCol)
		for j := range src[i] {
			if rand.Intn(5) == 0 {
				src[i][j] = nan
			} else {
				src[i][j] = float64(rand.Intn(32))
			}
		}
		want[i] = make([]float64, nCol)
		require.NoError(t, movmedian.SlideNaN(want[i], src[i], 9, 2))
	}
	dst := make([][]float64, nRow)
	for i := range dst {
		dst[i] = make([]float64, nCol)
	}
	require.NoError(t, movmedian.SlideFrameNaN(dst, src, 9, 2, 4))
	for i := range dst {
		for j := range dst[i] {
			if math.Float64bits(dst[i][j]) != math.Float64bits(want[i][j]) {
				t.Fatalf("row %d col %d: got %v, want %v", i, j, dst[i][j], want[i][j])
			}
		}
	}
}

func TestSlideFrameShapeMismatch(t *testing.T) {
	src := [][]float64{{1, 2}, {3, 4}}
	dst := [][]float64{{0, 0}}
	require.Error(t, movmedian.SlideFrame(dst, src, 2, 1, 1))
	dst = [][]float64{{0, 0}, {0}}
	require.Error(t, movmedian.SlideFrame(dst, src, 2, 1, 1))
}
