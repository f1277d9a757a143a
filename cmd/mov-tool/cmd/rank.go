// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/movstats/floatio"
	"github.com/grailbio/movstats/nonreduce"
	"v.io/x/lib/cmdline"
)

func newCmdRank() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "rank",
		Short:    "Replace each column's values with their average ranks",
		ArgsName: "inpath outpath",
	}
	nanAware := cmd.Flags.Bool("nan", false, "Tolerate missing values; they rank as NaN")
	header := cmd.Flags.Bool("header", true, "Treat the input's first line as column names")
	parallelism := cmd.Flags.Int("parallelism", 0, "Maximum number of simultaneous column jobs; 0 = runtime.NumCPU()")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("rank takes inpath outpath, but got %v", argv)
		}
		ctx := vcontext.Background()
		names, cols, err := floatio.ReadColumns(ctx, argv[0], *header)
		if err != nil {
			return err
		}
		var ranked [][]float64
		if *nanAware {
			ranked = nonreduce.NaNRankData2(cols, *parallelism)
		} else {
			ranked = nonreduce.RankData2(cols, *parallelism)
		}
		if !*header {
			names = nil
		}
		return floatio.WriteColumns(ctx, argv[1], names, ranked)
	})
	return cmd
}
