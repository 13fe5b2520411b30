// Package gauged is a compact, append-only time-series store for numeric
// gauges. Samples are ingested as (namespace, key, value) triples into an
// in-memory writer, then serialized per-key into a variable-width packed
// binary layout (package gmap) that supports fast aggregation over
// contiguous position ranges.
//
// This package is a thin facade over array, config, gmap and writer;
// most callers only need the writer package directly. It exists
// to give the external operations named in spec.md §6 a single import
// path and a place to hang package-level documentation.
package gauged

import (
	"go.uber.org/zap"

	"github.com/tsengine/gauged/array"
	"github.com/tsengine/gauged/config"
	"github.com/tsengine/gauged/gmap"
	"github.com/tsengine/gauged/writer"
)

// Array is the growable float32 vector described in spec.md §4.3.
type Array = array.Array

// Map is the packed binary container described in spec.md §4.4.
type Map = gmap.Map

// Writer is the ingestion front-end described in spec.md §4.5.
type Writer = writer.Writer

// Config carries the writer's tunables (query/pair limits, hash seed,
// initial hash table size).
type Config = config.Config

// ErrKeyOverflow is writer.ErrKeyOverflow, re-exported for callers that
// only import the facade package.
var ErrKeyOverflow = writer.ErrKeyOverflow

// NewArray returns an empty Array.
func NewArray() *Array { return array.New() }

// NewArrayValues returns an Array pre-populated with values.
func NewArrayValues(values ...float32) *Array { return array.NewValues(values...) }

// ImportArray clones buf into a new Array.
func ImportArray(buf []float32) *Array { return array.Import(buf) }

// NewMap returns an empty Map.
func NewMap() *Map { return gmap.New() }

// ImportMap clones buf into a new Map.
func ImportMap(buf []uint32) *Map { return gmap.Import(buf) }

// Concat slices src's entries in [start, end) (end == gmap.End means no
// upper bound), shifts their positions by offset, and appends the result
// onto dst.
func Concat(dst, src *Map, start, end, offset uint32) {
	gmap.Concat(dst, src, start, end, offset)
}

// NewWriter returns a Writer with the given max key length (0 = no
// limit), an optional structured logger (WithLogger) and optional config
// overrides (WithConfig).
func NewWriter(maxKey int, opts ...writer.Option) *Writer {
	return writer.New(maxKey, opts...)
}

// WithLogger attaches a structured logger to a Writer.
func WithLogger(log *zap.Logger) writer.Option { return writer.WithLogger(log) }

// WithConfig overrides a Writer's tunables.
func WithConfig(cfg Config) writer.Option { return writer.WithConfig(cfg) }

// DefaultConfig returns the built-in tunable defaults.
func DefaultConfig(opts ...config.Option) Config { return config.Default(opts...) }
