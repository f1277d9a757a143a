// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package movmedian

import (
	"runtime"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/traverse"
)

// Slide writes to dst, for every position of src, the median of the window
// of (up to) w values ending there.  Positions covered by fewer than
// minCount values get NaN.  src must not contain NaN; use SlideNaN for
// streams that may.
func Slide(dst, src []float64, w, minCount int) error {
	if len(dst) != len(src) {
		return errors.E("movmedian: dst length", len(dst), "does not match src length", len(src))
	}
	m, err := NewMedian(w, minCount)
	if err != nil {
		return err
	}
	slideRow(m, dst, src)
	return nil
}

func slideRow(m *Median, dst, src []float64) {
	w := m.Window()
	for i, v := range src {
		if i < w {
			m.Push(v)
		} else {
			m.Update(v)
		}
		dst[i] = m.Median()
	}
}

// SlideNaN is Slide for streams that may carry NaN.  The median at each
// position is taken over the window's non-NaN values; positions covered by
// fewer than minCount of them get NaN.
func SlideNaN(dst, src []float64, w, minCount int) error {
	if len(dst) != len(src) {
		return errors.E("movmedian: dst length", len(dst), "does not match src length", len(src))
	}
	z, err := NewNaNMedian(w, minCount)
	if err != nil {
		return err
	}
	slideRowNaN(z, dst, src)
	return nil
}

func slideRowNaN(z *NaNMedian, dst, src []float64) {
	w := z.Window()
	for i, v := range src {
		if i < w {
			z.Push(v)
		} else {
			z.Update(v)
		}
		dst[i] = z.Median()
	}
}

// SlideFrame applies Slide to each row of src, writing results to the
// corresponding rows of dst.  Rows are split over parallelism jobs
// (runtime.NumCPU() when <= 0); each job reuses one engine across its rows
// via Reset.
func SlideFrame(dst, src [][]float64, w, minCount, parallelism int) error {
	if err := checkFrame(dst, src); err != nil {
		return err
	}
	if err := checkArgs(w, minCount); err != nil {
		return err
	}
	parallelism = frameJobs(parallelism, len(src))
	return traverse.Each(parallelism, func(job int) error {
		m, err := NewMedian(w, minCount)
		if err != nil {
			return err
		}
		start := job * len(src) / parallelism
		end := (job + 1) * len(src) / parallelism
		for row := start; row < end; row++ {
			m.Reset()
			slideRow(m, dst[row], src[row])
		}
		return nil
	})
}

// SlideFrameNaN is SlideFrame for rows that may carry NaN.
func SlideFrameNaN(dst, src [][]float64, w, minCount, parallelism int) error {
	if err := checkFrame(dst, src); err != nil {
		return err
	}
	if err := checkArgs(w, minCount); err != nil {
		return err
	}
	parallelism = frameJobs(parallelism, len(src))
	return traverse.Each(parallelism, func(job int) error {
		z, err := NewNaNMedian(w, minCount)
		if err != nil {
			return err
		}
		start := job * len(src) / parallelism
		end := (job + 1) * len(src) / parallelism
		for row := start; row < end; row++ {
			z.Reset()
			slideRowNaN(z, dst[row], src[row])
		}
		return nil
	})
}

func checkFrame(dst, src [][]float64) error {
	if len(dst) != len(src) {
		return errors.E("movmedian: dst has", len(dst), "rows, src has", len(src))
	}
	for i := range src {
		if len(dst[i]) != len(src[i]) {
			return errors.E("movmedian: row", i, "length mismatch:", len(dst[i]), "vs", len(src[i]))
		}
	}
	return nil
}

func frameJobs(parallelism, nRow int) int {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	if parallelism > nRow {
		parallelism = nRow
	}
	if parallelism < 1 {
		parallelism = 1
	}
	return parallelism
}
