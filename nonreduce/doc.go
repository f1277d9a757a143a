// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package nonreduce provides single-pass array kernels that keep the shape
// of their input: partial sorting, rank transformation, and forward filling
// of missing values.  They complement the windowed statistics in movmedian.
package nonreduce
