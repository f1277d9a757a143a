// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package floatio reads and writes TSV files of float64 columns, the
// interchange format used by the mov-* command line tools.  Missing values
// are represented as empty fields, "NA", or "NaN" on input and as "NaN" on
// output.
package floatio

import (
	"bufio"
	"context"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/tsv"
	"github.com/klauspost/compress/gzip"
)

// ReadColumns reads a TSV of numbers from path (gzip-compressed if the path
// says so) and returns its values in column-major order, so each column can
// be fed to a streaming engine directly.  When hasHeader is set the first
// line supplies the column names; otherwise names are "c1", "c2", ...
// All rows must have the same number of fields.
func ReadColumns(ctx context.Context, path string, hasHeader bool) (names []string, cols [][]float64, err error) {
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return
	}
	defer file.CloseAndReport(ctx, in, &err)
	reader := io.Reader(in.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		var gz *gzip.Reader
		if gz, err = gzip.NewReader(reader); err != nil {
			return
		}
		defer func() {
			if e := gz.Close(); e != nil && err == nil {
				err = e
			}
		}()
		reader = gz
	}
	return readColumns(reader, path, hasHeader)
}

func readColumns(reader io.Reader, path string, hasHeader bool) (names []string, cols [][]float64, err error) {
	scanner := bufio.NewScanner(reader)
	lineIdx := 0
	for scanner.Scan() {
		lineIdx++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if names == nil && cols == nil {
			if hasHeader {
				names = append(names, fields...)
				cols = make([][]float64, len(fields))
				continue
			}
			cols = make([][]float64, len(fields))
			for i := range cols {
				names = append(names, "c"+strconv.Itoa(i+1))
			}
		}
		if len(fields) != len(cols) {
			err = errors.E("floatio: line", lineIdx, "of", path, "has", len(fields), "fields, expected", len(cols))
			return
		}
		for i, field := range fields {
			var v float64
			if v, err = parseField(field); err != nil {
				err = errors.E(err, "floatio: line", lineIdx, "of", path)
				return
			}
			cols[i] = append(cols[i], v)
		}
	}
	err = scanner.Err()
	return
}

func parseField(s string) (float64, error) {
	switch s {
	case "", "NA", "na":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// WriteColumns writes the given columns as a TSV to path, one header line
// (when names is nonempty) followed by one line per row.  All columns must
// have equal length.
func WriteColumns(ctx context.Context, path string, names []string, cols [][]float64) (err error) {
	nRow := 0
	for i, col := range cols {
		if i == 0 {
			nRow = len(col)
		} else if len(col) != nRow {
			return errors.E("floatio: column", i, "has", len(col), "rows, expected", nRow)
		}
	}
	var out file.File
	if out, err = file.Create(ctx, path); err != nil {
		return
	}
	defer file.CloseAndReport(ctx, out, &err)
	w := tsv.NewWriter(out.Writer(ctx))
	if len(names) > 0 {
		for _, name := range names {
			w.WriteString(name)
		}
		if err = w.EndLine(); err != nil {
			return
		}
	}
	for row := 0; row < nRow; row++ {
		for _, col := range cols {
			w.WriteString(strconv.FormatFloat(col[row], 'g', -1, 64))
		}
		if err = w.EndLine(); err != nil {
			return
		}
	}
	return w.Flush()
}

// ParseColSet parses a 1-based column selection like "1,3-5" against a
// table of nCol columns, returning 0-based indices in the order given.  An
// empty selection means every column.
func ParseColSet(colsParam string, nCol int) ([]int, error) {
	if colsParam == "" {
		all := make([]int, nCol)
		for i := range all {
			all[i] = i
		}
		return all, nil
	}
	var cols []int
	for _, part := range strings.Split(colsParam, ",") {
		bounds := strings.SplitN(part, "-", 2)
		lo, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
		if err != nil {
			return nil, errors.E("floatio: bad column term", part)
		}
		hi := lo
		if len(bounds) == 2 {
			if hi, err = strconv.Atoi(strings.TrimSpace(bounds[1])); err != nil {
				return nil, errors.E("floatio: bad column term", part)
			}
		}
		if lo < 1 || hi > nCol || lo > hi {
			return nil, errors.E("floatio: column term", part, "out of range for", nCol, "columns")
		}
		for c := lo; c <= hi; c++ {
			cols = append(cols, c-1)
		}
	}
	return cols, nil
}
