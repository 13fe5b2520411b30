// Package writer implements the ingestion front-end described in
// spec.md §4.5: a specialized open-addressed hash table keyed by
// (namespace, key) that maintains a pending batch of samples and an
// accumulated history (gmap.Map) per key, with flush semantics that
// append a batch into its map at a supplied position offset.
package writer

import (
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/tsengine/gauged/array"
	"github.com/tsengine/gauged/config"
	"github.com/tsengine/gauged/gmap"
	"github.com/tsengine/gauged/xxh32"
)

// ErrKeyOverflow is returned by Emit when a key exceeds the maxKey limit
// given to New (the GAUGED_KEY_OVERFLOW soft failure in spec.md §7).
// EmitPairs skips such keys and does not return it. Callers may proceed
// after seeing it; the writer's state is unaffected.
var ErrKeyOverflow = errors.New("gauged: key exceeds maximum length")

// Option configures a Writer at construction time.
type Option func(*Writer)

// WithLogger attaches a structured logger; nil, like omitting the option,
// gives a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(w *Writer) {
		if log == nil {
			log = zap.NewNop()
		}
		w.log = log
	}
}

// WithConfig overrides the writer's tunables (query/pair limits, hash
// seed, initial table size). Default() is used if this option is absent.
func WithConfig(cfg config.Config) Option {
	return func(w *Writer) { w.cfg = cfg }
}

// Writer is the single-owner ingestion buffer for (namespace, key, value)
// samples. It is not safe for concurrent use: exactly one goroutine may
// call its methods at a time.
type Writer struct {
	pending *pendingHash
	maxKey  int
	cfg     config.Config
	log     *zap.Logger
}

// New returns a Writer. maxKey is the maximum key length (including the
// trailing NUL byte in the original C ABI, i.e. strlen(key)+1); 0 means no
// limit.
func New(maxKey int, opts ...Option) *Writer {
	w := &Writer{
		maxKey: maxKey,
		cfg:    config.Default(),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.pending = newPendingHash(w.cfg.HashInitialSize)
	return w
}

// Len returns the number of distinct (namespace, key) nodes currently held.
func (w *Writer) Len() int {
	return w.pending.count
}

// Has reports whether (namespace, key) already has a pending node.
func (w *Writer) Has(namespace uint32, key string) bool {
	seed := w.fingerprint(namespace, key)
	return w.pending.get(namespace, key, seed) != nil
}

func (w *Writer) fingerprint(namespace uint32, key string) uint32 {
	h := xxh32.New(w.cfg.HashSeed)
	var nsBytes [4]byte
	nsBytes[0] = byte(namespace)
	nsBytes[1] = byte(namespace >> 8)
	nsBytes[2] = byte(namespace >> 16)
	nsBytes[3] = byte(namespace >> 24)
	h.Update(nsBytes[:])
	h.Update(append([]byte(key), 0)) // include the trailing NUL, as the C ABI does
	return h.Digest()
}

// Emit routes value into the pending array for (namespace, key), creating
// a new node on first use. It returns ErrKeyOverflow if maxKey is set and
// len(key)+1 exceeds it.
func (w *Writer) Emit(namespace uint32, key string, value float32) error {
	keyLen := len(key) + 1
	if w.maxKey != 0 && keyLen > w.maxKey {
		w.log.Debug("key overflow", zap.String("key", key), zap.Int("max_key", w.maxKey))
		return ErrKeyOverflow
	}

	seed := w.fingerprint(namespace, key)

	if n := w.pending.get(namespace, key, seed); n != nil {
		n.array.Append(value)
		w.pending.linkArray(n)
		return nil
	}

	n := newNode(namespace, key, seed, value)
	w.pending.insert(n)
	w.pending.linkArray(n)
	return nil
}

// EmitPairs parses pairs as an application/x-www-form-urlencoded query
// string and emits each value that parses as a float, under namespace.
// Pairs whose value fails to parse are silently skipped. It returns the
// number of values successfully emitted.
func (w *Writer) EmitPairs(namespace uint32, pairs string) (int, error) {
	parsed := w.ParseQuery(pairs)
	count := 0
	for _, p := range parsed {
		value, err := strconv.ParseFloat(p.Value, 32)
		if err != nil {
			continue
		}
		switch emitErr := w.Emit(namespace, p.Key, float32(value)); emitErr {
		case nil:
			count++
		case ErrKeyOverflow:
			// soft failure: skip and keep going
		default:
			return count, emitErr
		}
	}
	return count, nil
}

// ParseQuery decodes query per spec.md §4.5.1 and returns the resulting
// key/value pairs, using the writer's configured MaxQuery/MaxPairs limits.
func (w *Writer) ParseQuery(query string) []pair {
	return parseQuery(query, w.cfg.MaxQuery, w.cfg.MaxPairs)
}

// FlushArrays appends every node's pending array into its map under
// position offset, then clears the pending arrays and detaches them from
// the array_* list. Nodes untouched since the previous flush are skipped
// entirely.
func (w *Writer) FlushArrays(offset uint32) {
	flushed := 0
	for n := w.pending.arrayHead; n != nil; n = n.arrayNext {
		n.mp.Append(offset, n.array)
		n.array.Clear()
		flushed++
	}
	w.pending.unlinkAllArrays()
	w.log.Debug("flush_arrays", zap.Uint32("offset", offset), zap.Int("nodes", flushed))
}

// FlushMaps clears every node's accumulated map. soft keeps the nodes
// (and their hash membership) and just resets each map to empty; hard
// destroys every node, returning the writer to a freshly-constructed
// state.
func (w *Writer) FlushMaps(soft bool) {
	if soft {
		count := 0
		for n := w.pending.head; n != nil; n = n.next {
			n.mp.Clear()
			count++
		}
		w.log.Debug("flush_maps", zap.Bool("soft", true), zap.Int("nodes", count))
		return
	}
	count := w.pending.count
	w.pending.clearHard()
	w.log.Debug("flush_maps", zap.Bool("soft", false), zap.Int("nodes", count))
}

// Map returns the accumulated map for (namespace, key), or nil if no node
// exists for it yet.
func (w *Writer) Map(namespace uint32, key string) *gmap.Map {
	seed := w.fingerprint(namespace, key)
	if n := w.pending.get(namespace, key, seed); n != nil {
		return n.mp
	}
	return nil
}

// Array returns the pending (not-yet-flushed) array for (namespace, key),
// or nil if no node exists for it yet.
func (w *Writer) Array(namespace uint32, key string) *array.Array {
	seed := w.fingerprint(namespace, key)
	if n := w.pending.get(namespace, key, seed); n != nil {
		return n.array
	}
	return nil
}
