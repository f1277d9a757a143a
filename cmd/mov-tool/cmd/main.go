// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package cmd

import (
	"log"

	"v.io/x/lib/cmdline"
)

// Run dispatches the mov-tool subcommands.
func Run() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "mov-tool",
			Short:    "Streaming and single-pass statistics over TSV columns",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdMedian(),
				newCmdRank(),
				newCmdPush(),
			},
		})
}
