package writer

import (
	"testing"
)

func TestEmitAndFlushScenario(t *testing.T) {
	w := New(4)

	if err := w.Emit(0, "foo", 10); err != nil {
		t.Fatalf("Emit(0,foo,10) = %v", err)
	}
	if err := w.Emit(0, "foo", 20); err != nil {
		t.Fatalf("Emit(0,foo,20) = %v", err)
	}
	if err := w.Emit(1, "baz", 30); err != nil {
		t.Fatalf("Emit(1,baz,30) = %v", err)
	}
	if err := w.Emit(1, "baz", 40); err != nil {
		t.Fatalf("Emit(1,baz,40) = %v", err)
	}
	if err := w.Emit(0, "foooo", 1); err != ErrKeyOverflow {
		t.Fatalf("Emit(0,foooo,1) = %v, want ErrKeyOverflow", err)
	}

	w.FlushArrays(10)

	c0, err := w.EmitPairs(0, "baz=50")
	if err != nil || c0 != 1 {
		t.Fatalf("EmitPairs(0, baz=50) = (%d, %v), want (1, nil)", c0, err)
	}
	c1, err := w.EmitPairs(1, "baz=60&ignore=me")
	if err != nil || c1 != 1 {
		t.Fatalf("EmitPairs(1, baz=60&ignore=me) = (%d, %v), want (1, nil)", c1, err)
	}

	w.FlushArrays(11)

	if w.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", w.Len())
	}

	cases := []struct {
		namespace uint32
		key       string
		want      float32
	}{
		{0, "foo", 30},
		{0, "baz", 50},
		{1, "baz", 130},
	}
	for _, c := range cases {
		m := w.Map(c.namespace, c.key)
		if m == nil {
			t.Fatalf("Map(%d, %q) = nil", c.namespace, c.key)
		}
		if got := m.Sum(); got != c.want {
			t.Errorf("Map(%d, %q).Sum() = %v, want %v", c.namespace, c.key, got, c.want)
		}
	}
}

func TestKeyOverflowDoesNotCreateNode(t *testing.T) {
	w := New(4)
	if err := w.Emit(0, "foooo", 1); err != ErrKeyOverflow {
		t.Fatalf("Emit with overlong key = %v, want ErrKeyOverflow", err)
	}
	if w.Has(0, "foooo") {
		t.Fatalf("Has(0, foooo) = true after overflow, want false")
	}
	if w.Len() != 0 {
		t.Fatalf("Len() = %d after overflow, want 0", w.Len())
	}
}

func TestMaxKeyZeroMeansNoLimit(t *testing.T) {
	w := New(0)
	longKey := "a-very-long-key-that-would-overflow-a-small-limit"
	if err := w.Emit(0, longKey, 1); err != nil {
		t.Fatalf("Emit with maxKey=0 = %v, want nil", err)
	}
}

func TestHasAndArrayAccessors(t *testing.T) {
	w := New(0)
	if w.Has(0, "foo") {
		t.Fatalf("Has(0,foo) = true before Emit, want false")
	}
	_ = w.Emit(0, "foo", 1)
	if !w.Has(0, "foo") {
		t.Fatalf("Has(0,foo) = false after Emit, want true")
	}
	a := w.Array(0, "foo")
	if a == nil || a.Len() != 1 {
		t.Fatalf("Array(0,foo) = %v, want single-element array", a)
	}
}

func TestFlushArraysOnlyTouchesDirtyNodes(t *testing.T) {
	w := New(0)
	_ = w.Emit(0, "foo", 1)
	w.FlushArrays(0)
	// foo's array is now clear and unlinked; a second flush must not
	// re-append an empty array.
	w.FlushArrays(5)
	m := w.Map(0, "foo")
	if m.Len() == 0 {
		t.Fatalf("first FlushArrays did not record an entry")
	}
	if m.Count() != 1 {
		t.Fatalf("Count() = %v after redundant flush, want 1 (no duplicate append)", m.Count())
	}
}

func TestFlushMapsSoftKeepsNodes(t *testing.T) {
	w := New(0)
	_ = w.Emit(0, "foo", 1)
	w.FlushArrays(0)
	w.FlushMaps(true)
	if !w.Has(0, "foo") {
		t.Fatalf("Has(0,foo) = false after soft FlushMaps, want true (node retained)")
	}
	if w.Map(0, "foo").Len() != 0 {
		t.Fatalf("Map(0,foo) not cleared by soft FlushMaps")
	}
}

func TestFlushMapsHardRemovesNodes(t *testing.T) {
	w := New(0)
	_ = w.Emit(0, "foo", 1)
	w.FlushMaps(false)
	if w.Has(0, "foo") {
		t.Fatalf("Has(0,foo) = true after hard FlushMaps, want false")
	}
	if w.Len() != 0 {
		t.Fatalf("Len() = %d after hard FlushMaps, want 0", w.Len())
	}
}

func TestRehashPreservesAllNodes(t *testing.T) {
	w := New(0)
	n := 200
	for i := 0; i < n; i++ {
		key := string(rune('a' + i%26))
		_ = w.Emit(uint32(i), key, float32(i))
	}
	if w.Len() != n {
		t.Fatalf("Len() = %d after %d distinct (namespace,key) emits, want %d", w.Len(), n, n)
	}
	for i := 0; i < n; i++ {
		key := string(rune('a' + i%26))
		if !w.Has(uint32(i), key) {
			t.Fatalf("Has(%d, %q) = false after rehashing, want true", i, key)
		}
	}
}

func TestEmitPairsSkipsUnparsableValues(t *testing.T) {
	w := New(0)
	count, err := w.EmitPairs(0, "good=1.5&bad=notanumber&also_good=2")
	if err != nil {
		t.Fatalf("EmitPairs = %v", err)
	}
	if count != 2 {
		t.Fatalf("EmitPairs count = %d, want 2", count)
	}
	if w.Has(0, "bad") {
		t.Fatalf("Has(0,bad) = true, want false (unparsable value skipped)")
	}
}
