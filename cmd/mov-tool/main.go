// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

/*
mov-tool bundles the movstats kernels behind one command with subcommands:

	mov-tool median -window 25 in.tsv out.tsv
	mov-tool rank in.tsv out.tsv
	mov-tool push -n 3 in.tsv out.tsv

Run "mov-tool help" for details on each.
*/
package main

import "github.com/grailbio/movstats/cmd/mov-tool/cmd"

func main() {
	cmd.Run()
}
