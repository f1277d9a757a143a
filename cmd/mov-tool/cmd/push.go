// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"math"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/movstats/floatio"
	"github.com/grailbio/movstats/nonreduce"
	"v.io/x/lib/cmdline"
)

func newCmdPush() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "push",
		Short:    "Forward-fill missing values down each column",
		ArgsName: "inpath outpath",
	}
	n := cmd.Flags.Int("n", math.MaxInt32, "Maximum fill distance, in rows")
	header := cmd.Flags.Bool("header", true, "Treat the input's first line as column names")
	parallelism := cmd.Flags.Int("parallelism", 0, "Maximum number of simultaneous column jobs; 0 = runtime.NumCPU()")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("push takes inpath outpath, but got %v", argv)
		}
		ctx := vcontext.Background()
		names, cols, err := floatio.ReadColumns(ctx, argv[0], *header)
		if err != nil {
			return err
		}
		nonreduce.Push2(cols, *n, *parallelism)
		if !*header {
			names = nil
		}
		return floatio.WriteColumns(ctx, argv[1], names, cols)
	})
	return cmd
}
