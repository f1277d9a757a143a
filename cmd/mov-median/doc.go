// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

/*
mov-median computes the sliding-window median of every selected column of a
TSV of numbers, writing one output column per input column.

Input may be plain or gzip-compressed; missing values are written as empty
fields, "NA", or "NaN".  With -nan, missing values are tolerated and the
median at each position is taken over the window's non-missing values; rows
covered by fewer than -min-count of them get NaN.

Sample usage:
mov-median \
    -window 25 \
    -min-count 5 \
    -nan \
    -out smoothed.tsv \
    measurements.tsv.gz
*/
package main
