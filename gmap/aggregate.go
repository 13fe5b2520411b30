package gmap

import (
	"math"

	"github.com/tsengine/gauged/array"
)

// First returns the first sample of the first non-empty sub-array, or NaN
// if the map holds no samples.
func (m *Map) First() float32 {
	for _, values := range m.All() {
		if len(values) > 0 {
			return values[0]
		}
	}
	return float32(math.NaN())
}

// Last returns the last sample of the last non-empty sub-array, or NaN if
// the map holds no samples.
func (m *Map) Last() float32 {
	result := float32(math.NaN())
	for _, values := range m.All() {
		if len(values) > 0 {
			result = values[len(values)-1]
		}
	}
	return result
}

// Sum returns the sum of every sample, accumulated in double precision and
// cast to float32 on return. Zero for an empty map.
func (m *Map) Sum() float32 {
	var sum float64
	for _, values := range m.All() {
		for _, v := range values {
			sum += float64(v)
		}
	}
	return float32(sum)
}

// Min returns the smallest sample, or NaN if the map holds no samples.
func (m *Map) Min() float32 {
	result := float32(math.Inf(1))
	found := false
	for _, values := range m.All() {
		for _, v := range values {
			if v < result || (!found && v == result) {
				result = v
				found = true
			}
		}
	}
	if !found {
		return float32(math.NaN())
	}
	return result
}

// Max returns the largest sample, or NaN if the map holds no samples.
func (m *Map) Max() float32 {
	result := float32(math.Inf(-1))
	found := false
	for _, values := range m.All() {
		for _, v := range values {
			if v > result || (!found && v == result) {
				result = v
				found = true
			}
		}
	}
	if !found {
		return float32(math.NaN())
	}
	return result
}

// Mean returns sum/count, or NaN if the map holds no samples.
func (m *Map) Mean() float32 {
	var sum float64
	var total int
	for _, values := range m.All() {
		total += len(values)
		for _, v := range values {
			sum += float64(v)
		}
	}
	if total == 0 {
		return float32(math.NaN())
	}
	return float32(sum) / float32(total)
}

// SumOfSquares returns sum((x - mean)^2) over every sample, double
// accumulated.
func (m *Map) SumOfSquares(mean float32) float32 {
	var sum float64
	for _, values := range m.All() {
		for _, v := range values {
			d := float64(v - mean)
			sum += d * d
		}
	}
	return float32(sum)
}

// StdDev returns the population standard deviation sqrt(SumOfSquares/n),
// or NaN if the map holds no samples.
func (m *Map) StdDev() float32 {
	var sum float64
	var total int
	for _, values := range m.All() {
		total += len(values)
		for _, v := range values {
			sum += float64(v)
		}
	}
	if total == 0 {
		return float32(math.NaN())
	}
	mean := float32(sum) / float32(total)
	return float32(math.Sqrt(float64(m.SumOfSquares(mean)) / float64(total)))
}

// Count returns the total number of samples as a float32.
func (m *Map) Count() float32 {
	var total int
	for _, values := range m.All() {
		total += len(values)
	}
	return float32(total)
}

// Percentile computes a linearly-interpolated percentile over every sample
// in the map.
//
// If the map is empty, p < 0, p > 100, or p is NaN, the result is NaN.
// Otherwise this call is destructive: every sample is copied into a newly
// allocated slice, which is sorted, and the map is reset to empty (its
// storage is not reused for the sort). Callers wanting to preserve the map
// must clone it first via Import(m.Export()).
func (m *Map) Percentile(p float32) float32 {
	if len(m.buf) == 0 || p < 0 || p > 100 || math.IsNaN(float64(p)) {
		return float32(math.NaN())
	}

	values := m.drainSorted()
	n := len(values)
	rank := float32(n-1) * p / 100
	lo := float32(math.Floor(float64(rank)))
	if float32(math.Ceil(float64(rank))) == lo {
		return values[int(lo)]
	}
	result := values[int(lo)]
	return result + (rank-lo)*(values[int(lo)+1]-result)
}

// drainSorted merges every sub-array's samples into a single contiguous,
// ascending-sorted slice, allocated separately from the map's backing
// storage, then resets the map to empty.
func (m *Map) drainSorted() []float32 {
	merged := make([]float32, 0, len(m.buf))
	for _, values := range m.All() {
		merged = append(merged, values...)
	}
	m.buf = m.buf[:0]

	a := array.Import(merged)
	a.Sort()
	return a.Export()
}
