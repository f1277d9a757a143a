// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package nonreduce

import "github.com/grailbio/base/errors"

func checkN(n, length int) error {
	if n < 1 || n > length {
		return errors.E("nonreduce: n =", n, "must be between 1 and", length, "inclusive")
	}
	return nil
}

// Partition rearranges a in place so that its n smallest values occupy
// a[:n], with a[n-1] in its final sorted position.  Neither side is sorted
// beyond that.  It uses Wirth's selection: repeated median-of-three pivoting
// and a Hoare scan narrowed around position n-1, O(len(a)) expected time.
func Partition(a []float64, n int) error {
	if len(a) == 0 {
		return nil
	}
	if err := checkN(n, len(a)); err != nil {
		return err
	}
	partition(a, n-1)
	return nil
}

func partition(a []float64, k int) {
	l, r := 0, len(a)-1
	for l < r {
		// Median-of-three: move the middle of a[l], a[k], a[r] into a[k].
		al, ak, ar := a[l], a[k], a[r]
		if al > ak {
			if ak < ar {
				if al < ar {
					a[k], a[l] = al, ak
				} else {
					a[k], a[r] = ar, ak
				}
			}
		} else {
			if ak > ar {
				if al > ar {
					a[k], a[l] = al, ak
				} else {
					a[k], a[r] = ar, ak
				}
			}
		}
		x := a[k]
		i, j := l, r
		for {
			for a[i] < x {
				i++
			}
			for x < a[j] {
				j--
			}
			if i <= j {
				a[i], a[j] = a[j], a[i]
				i++
				j--
			}
			if i > j {
				break
			}
		}
		if j < k {
			l = i
		}
		if k < i {
			r = j
		}
	}
}

// ArgPartition returns the index permutation that Partition would apply,
// leaving a untouched: a[perm[:n]] are the n smallest values and
// a[perm[n-1]] is the n-th smallest.
func ArgPartition(a []float64, n int) ([]int, error) {
	perm := make([]int, len(a))
	for i := range perm {
		perm[i] = i
	}
	if len(a) == 0 {
		return perm, nil
	}
	if err := checkN(n, len(a)); err != nil {
		return nil, err
	}
	b := append([]float64(nil), a...)
	argPartition(b, perm, n-1)
	return perm, nil
}

// argPartition is partition with the permutation carried alongside the
// scratch values.
func argPartition(b []float64, perm []int, k int) {
	l, r := 0, len(b)-1
	for l < r {
		bl, bk, br := b[l], b[k], b[r]
		if bl > bk {
			if bk < br {
				if bl < br {
					b[k], b[l] = bl, bk
					perm[k], perm[l] = perm[l], perm[k]
				} else {
					b[k], b[r] = br, bk
					perm[k], perm[r] = perm[r], perm[k]
				}
			}
		} else {
			if bk > br {
				if bl > br {
					b[k], b[l] = bl, bk
					perm[k], perm[l] = perm[l], perm[k]
				} else {
					b[k], b[r] = br, bk
					perm[k], perm[r] = perm[r], perm[k]
				}
			}
		}
		x := b[k]
		i, j := l, r
		for {
			for b[i] < x {
				i++
			}
			for x < b[j] {
				j--
			}
			if i <= j {
				b[i], b[j] = b[j], b[i]
				perm[i], perm[j] = perm[j], perm[i]
				i++
				j--
			}
			if i > j {
				break
			}
		}
		if j < k {
			l = i
		}
		if k < i {
			r = j
		}
	}
}
