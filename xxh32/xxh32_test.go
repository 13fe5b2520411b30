package xxh32

import "testing"

func TestSumIsDeterministic(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	a := Sum(5132, data)
	b := Sum(5132, data)
	if a != b {
		t.Fatalf("Sum is not deterministic: %d != %d", a, b)
	}
}

func TestSumVariesWithSeed(t *testing.T) {
	data := []byte("namespace-key")
	a := Sum(0, data)
	b := Sum(5132, data)
	if a == b {
		t.Fatalf("Sum(0, data) == Sum(5132, data) = %d, want different seeds to diverge", a)
	}
}

func TestSumVariesWithInput(t *testing.T) {
	a := Sum(5132, []byte("key-a"))
	b := Sum(5132, []byte("key-b"))
	if a == b {
		t.Fatalf("Sum collided on two distinct short keys: %d", a)
	}
}

func TestIncrementalMatchesOneShot(t *testing.T) {
	data := []byte("a moderately long piece of input data used to exercise the 16-byte stripe loop and the tail bytes that follow it")
	want := Sum(5132, data)

	for _, chunkSize := range []int{1, 3, 7, 16, 17} {
		h := New(5132)
		for i := 0; i < len(data); i += chunkSize {
			end := i + chunkSize
			if end > len(data) {
				end = len(data)
			}
			h.Update(data[i:end])
		}
		if got := h.Digest(); got != want {
			t.Errorf("incremental Update in chunks of %d = %d, want %d", chunkSize, got, want)
		}
	}
}

func TestResetAllowsReuse(t *testing.T) {
	h := New(5132)
	h.Update([]byte("first"))
	first := h.Digest()

	h.Reset(5132)
	h.Update([]byte("first"))
	second := h.Digest()

	if first != second {
		t.Fatalf("Reset did not restore state: %d != %d", first, second)
	}
}

func TestEmptyInput(t *testing.T) {
	a := Sum(5132, nil)
	b := Sum(5132, []byte{})
	if a != b {
		t.Fatalf("Sum(nil) != Sum(empty slice): %d != %d", a, b)
	}
}

func TestBoundaryLengths(t *testing.T) {
	// exercise the <16-byte buffered path, the exactly-16-byte flush path,
	// and the >16-byte main-loop path with a tail.
	for _, n := range []int{0, 1, 15, 16, 17, 31, 32, 33, 100} {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i)
		}
		h := New(5132)
		h.Update(data)
		got := h.Digest()
		want := Sum(5132, data)
		if got != want {
			t.Errorf("length %d: incremental Digest = %d, want %d", n, got, want)
		}
	}
}
