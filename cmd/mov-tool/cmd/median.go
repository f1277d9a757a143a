// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/movstats/floatio"
	"github.com/grailbio/movstats/movmedian"
	"v.io/x/lib/cmdline"
)

type medianFlags struct {
	window      *int
	minCount    *int
	nanAware    *bool
	cols        *string
	header      *bool
	parallelism *int
}

func newCmdMedian() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "median",
		Short:    "Sliding-window median of every selected column",
		ArgsName: "inpath outpath",
	}
	flags := medianFlags{
		window:      cmd.Flags.Int("window", 10, "Window size, in rows"),
		minCount:    cmd.Flags.Int("min-count", 1, "Minimum number of (non-missing) values a window must cover for a numeric result"),
		nanAware:    cmd.Flags.Bool("nan", false, "Tolerate missing values in the input"),
		cols:        cmd.Flags.String("cols", "", "1-based columns to process, e.g. '1,3-5'; default is every column"),
		header:      cmd.Flags.Bool("header", true, "Treat the input's first line as column names"),
		parallelism: cmd.Flags.Int("parallelism", 0, "Maximum number of simultaneous column jobs; 0 = runtime.NumCPU()"),
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("median takes inpath outpath, but got %v", argv)
		}
		return runMedian(flags, argv[0], argv[1])
	})
	return cmd
}

func runMedian(flags medianFlags, inPath, outPath string) error {
	ctx := vcontext.Background()
	names, inCols, err := floatio.ReadColumns(ctx, inPath, *flags.header)
	if err != nil {
		return err
	}
	selected, err := floatio.ParseColSet(*flags.cols, len(inCols))
	if err != nil {
		return err
	}
	src := make([][]float64, len(selected))
	dst := make([][]float64, len(selected))
	outNames := make([]string, len(selected))
	for i, c := range selected {
		src[i] = inCols[c]
		dst[i] = make([]float64, len(inCols[c]))
		outNames[i] = names[c]
	}
	if *flags.nanAware {
		err = movmedian.SlideFrameNaN(dst, src, *flags.window, *flags.minCount, *flags.parallelism)
	} else {
		err = movmedian.SlideFrame(dst, src, *flags.window, *flags.minCount, *flags.parallelism)
	}
	if err != nil {
		return err
	}
	if !*flags.header {
		outNames = nil
	}
	return floatio.WriteColumns(ctx, outPath, outNames, dst)
}
