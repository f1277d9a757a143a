package movmedian

import (
	"math/rand"
	"testing"
)

func TestFirstLeafIdx(t *testing.T) {
	// firstLeafIdx(n) must equal ceil((n-1)/8), with the n <= 1 case pinned
	// to the root.
	for n := 0; n <= 2000; n++ {
		want := 0
		if n > 1 {
			want = (n - 1 + numChildren - 1) / numChildren
		}
		if got := firstLeafIdx(n); got != want {
			t.Fatalf("firstLeafIdx(%d) = %d, want %d", n, got, want)
		}
	}
	// Every index below the first leaf has a child; none at or above it do.
	for n := 1; n <= 2000; n++ {
		fl := firstLeafIdx(n)
		for idx := 0; idx < n; idx++ {
			hasChild := numChildren*idx+1 < n
			if hasChild != (idx < fl) {
				t.Fatalf("n = %d, idx = %d: hasChild = %v, firstLeaf = %d", n, idx, hasChild, fl)
			}
		}
	}
}

func TestExtremalChildTies(t *testing.T) {
	// Children are scanned from the highest slot down, so among equal
	// children that beat the parent, the highest slot wins.
	pool := make([]node, 10)
	heap := make([]int32, 10)
	for i := range pool {
		pool[i].val = 5
		heap[i] = int32(i)
	}
	pool[0].val = 1
	if got := extremalChild(pool, heap, 10, 0, gtVal); got != 8 {
		t.Errorf("tie among children: got %d, want 8", got)
	}
	// A child equal to the parent does not displace it.
	pool[0].val = 5
	if got := extremalChild(pool, heap, 10, 0, gtVal); got != 0 {
		t.Errorf("children equal to parent: got %d, want 0", got)
	}
	// No child beats the parent: the parent index comes back.
	pool[0].val = 9
	if got := extremalChild(pool, heap, 10, 0, gtVal); got != 0 {
		t.Errorf("no beating child: got %d, want 0", got)
	}
	// Clipping at size: only children below size are considered.
	pool[0].val = 1
	pool[3].val = 100
	if got := extremalChild(pool, heap, 3, 0, gtVal); got != 2 {
		t.Errorf("clipped children: got %d, want 2", got)
	}
	// A leaf has no children at all.
	if got := extremalChild(pool, heap, 10, 4, gtVal); got != 4 {
		t.Errorf("leaf: got %d, want 4", got)
	}
}

func TestSwapNodesBackIndex(t *testing.T) {
	pool := make([]node, 16)
	heap := make([]int32, 16)
	for i := range pool {
		heap[i] = int32(i)
		pool[i].idx = int32(i)
	}
	for iter := 0; iter < 1000; iter++ {
		i, j := rand.Intn(16), rand.Intn(16)
		swapNodes(pool, heap, i, j)
		for k, n := range heap {
			if int(pool[n].idx) != k {
				t.Fatalf("iter %d: heap[%d] = node %d with idx %d", iter, k, n, pool[n].idx)
			}
		}
	}
}
