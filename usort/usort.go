// Package usort sorts slices of uint32 in ascending unsigned order using a
// size-tiered strategy: insertion sort for small inputs, MSD radix sort for
// medium inputs, and a parallel two-way merge of radix-sorted halves for
// large inputs.
package usort

import "golang.org/x/sync/errgroup"

// Thresholds mirror include/sort.h's #defines in the original C library.
const (
	// InsertionSortMax is the largest n handled by plain insertion sort.
	InsertionSortMax = 64

	// RadixSortMax is the largest n handled by a single MSD radix pass
	// (1 MiB worth of uint32 words).
	RadixSortMax = 1024 * 1024 / 4

	// MergeSortMaxDepth bounds how many times the parallel merge splits
	// before falling back to radix sort at the leaves; at full depth this
	// spawns up to 2^MergeSortMaxDepth = 8 leaf workers.
	MergeSortMaxDepth = 3
)

// Sort returns a slice holding an ascending permutation of buf. For inputs
// up to RadixSortMax the result is buf itself, sorted in place. Beyond
// that, the result is a freshly allocated slice of the same length and the
// caller owns both it and the original buf. n <= 1 is a no-op. Equal keys
// may be reordered (the sort is not stable).
func Sort(buf []uint32) []uint32 {
	n := len(buf)
	if n <= 1 {
		return buf
	}
	if n <= InsertionSortMax {
		insertionSort(buf)
		return buf
	}
	if n <= RadixSortMax {
		radixSort(buf, 24)
		return buf
	}
	return parallelMergeSort(buf, 0)
}

func insertionSort(a []uint32) {
	for x := 1; x < len(a); x++ {
		for y := x; y > 0 && a[y-1] > a[y]; y-- {
			a[y-1], a[y] = a[y], a[y-1]
		}
	}
}

// radixSort performs an in-place MSD radix sort of a over byte buckets
// selected by shift, recursing into each bucket at shift-8 until shift
// reaches 0. Buckets with more than InsertionSortMax elements recurse with
// radix, 2..InsertionSortMax elements recurse with insertion, and buckets
// of 0 or 1 elements are already sorted.
func radixSort(a []uint32, shift uint32) {
	var count [256]int
	for _, v := range a {
		count[(v>>shift)&0xFF]++
	}
	var bucketStart, bucketEnd [256]int
	pointer := [256]int{}
	sum := 0
	for i := 0; i < 256; i++ {
		bucketStart[i] = sum
		pointer[i] = sum
		sum += count[i]
		bucketEnd[i] = sum
	}

	for x := 0; x < 256; x++ {
		for pointer[x] != bucketEnd[x] {
			value := a[pointer[x]]
			y := int((value >> shift) & 0xFF)
			for x != y {
				a[pointer[y]], value = value, a[pointer[y]]
				pointer[y]++
				y = int((value >> shift) & 0xFF)
			}
			a[pointer[x]] = value
			pointer[x]++
		}
	}

	if shift == 0 {
		return
	}
	shift -= 8
	for x := 0; x < 256; x++ {
		size := bucketEnd[x] - bucketStart[x]
		if size > InsertionSortMax {
			radixSort(a[bucketStart[x]:bucketEnd[x]], shift)
		} else if size > 1 {
			insertionSort(a[bucketStart[x]:bucketEnd[x]])
		}
	}
}

// parallelMergeSort splits buf in half, sorts each half concurrently (up to
// MergeSortMaxDepth levels of fan-out, so at most 2^MergeSortMaxDepth
// workers total), and merges the two sorted halves into a freshly
// allocated buffer via a stable two-pointer merge.
func parallelMergeSort(buf []uint32, depth int) []uint32 {
	n := len(buf)
	if depth == MergeSortMaxDepth || n <= RadixSortMax {
		out := make([]uint32, n)
		copy(out, buf)
		radixSort(out, 24)
		return out
	}

	split := n / 2
	left, right := buf[:split], buf[split:]
	var sortedLeft, sortedRight []uint32

	var g errgroup.Group
	g.Go(func() error {
		sortedLeft = parallelMergeSort(left, depth+1)
		return nil
	})
	g.Go(func() error {
		sortedRight = parallelMergeSort(right, depth+1)
		return nil
	})
	_ = g.Wait()

	out := make([]uint32, n)
	mergeBuffers(out, sortedLeft, sortedRight)
	return out
}

func mergeBuffers(dst, left, right []uint32) {
	i, j, pos := 0, 0, 0
	for pos < len(dst) {
		if j >= len(right) || (i < len(left) && left[i] <= right[j]) {
			dst[pos] = left[i]
			i++
		} else {
			dst[pos] = right[j]
			j++
		}
		pos++
	}
}
