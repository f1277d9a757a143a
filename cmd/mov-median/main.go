// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/movstats/floatio"
	"github.com/grailbio/movstats/movmedian"
)

var (
	window      = flag.Int("window", 10, "Window size, in rows")
	minCount    = flag.Int("min-count", 1, "Minimum number of (non-missing) values a window must cover for a numeric result; positions below it get NaN")
	nanAware    = flag.Bool("nan", false, "Tolerate missing values in the input")
	cols        = flag.String("cols", "", "1-based columns to process, e.g. '1,3-5'; default is every column")
	header      = flag.Bool("header", true, "Treat the input's first line as column names")
	outPath     = flag.String("out", "mov-median.tsv", "Output TSV path")
	parallelism = flag.Int("parallelism", 0, "Maximum number of simultaneous column jobs; 0 = runtime.NumCPU()")
)

func movMedianUsage() {
	fmt.Printf("Usage: %s [OPTIONS] tsvpath\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = movMedianUsage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 1 {
		log.Fatalf("Exactly one positional argument (tsvpath) expected, got %d", flag.NArg())
	}
	ctx := vcontext.Background()

	names, inCols, err := floatio.ReadColumns(ctx, flag.Arg(0), *header)
	if err != nil {
		log.Fatalf("%v", err)
	}
	selected, err := floatio.ParseColSet(*cols, len(inCols))
	if err != nil {
		log.Fatalf("%v", err)
	}

	src := make([][]float64, len(selected))
	dst := make([][]float64, len(selected))
	outNames := make([]string, len(selected))
	for i, c := range selected {
		src[i] = inCols[c]
		dst[i] = make([]float64, len(inCols[c]))
		outNames[i] = names[c]
	}
	if *nanAware {
		err = movmedian.SlideFrameNaN(dst, src, *window, *minCount, *parallelism)
	} else {
		err = movmedian.SlideFrame(dst, src, *window, *minCount, *parallelism)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
	if !*header {
		outNames = nil
	}
	if err = floatio.WriteColumns(ctx, *outPath, outNames, dst); err != nil {
		log.Fatalf("%v", err)
	}
	log.Debug.Printf("wrote %d columns to %s", len(dst), *outPath)
}
