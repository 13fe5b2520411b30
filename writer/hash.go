package writer

// pendingHash is the writer's open-addressed, quadratic-probe table of
// pending nodes, keyed by (namespace, key) via a precomputed XXH32 seed.
// Two intrusive lists thread the stored nodes: head/tail in insertion
// order, and arrayHead/arrayTail for nodes whose pending array is
// non-empty since the last flushArrays.
type pendingHash struct {
	buckets []*node
	size    int
	count   int

	head, tail           *node
	arrayHead, arrayTail *node
}

func newPendingHash(initialSize int) *pendingHash {
	return &pendingHash{
		buckets: make([]*node, initialSize),
		size:    initialSize,
	}
}

// get returns the node matching (namespace, key, seed), or nil.
func (h *pendingHash) get(namespace uint32, key string, seed uint32) *node {
	mask := uint32(h.size - 1)
	hashKey := seed & mask
	for j := uint32(1); j < uint32(h.size); j++ {
		n := h.buckets[hashKey]
		if n == nil {
			return nil
		}
		if n.seed == seed && n.namespace == namespace && n.key == key {
			return n
		}
		hashKey = (seed + j*j) & mask
	}
	return nil
}

// insert adds n to the table, growing (rehashing) first if more than half
// the buckets are already occupied, and appends n to the insertion-order
// list.
func (h *pendingHash) insert(n *node) {
	if h.count > h.size/2 {
		h.rehash()
	}
	h.insertOnly(n)
	h.count++
	if h.tail != nil {
		h.tail.next = n
		h.tail = n
	} else {
		h.head, h.tail = n, n
	}
}

// insertOnly probes for an empty slot and places n there, without
// touching the insertion-order list or count (used directly by rehash,
// which rebuilds the list separately).
func (h *pendingHash) insertOnly(n *node) {
	mask := uint32(h.size - 1)
	hashKey := n.seed & mask
	for j := uint32(1); j < uint32(h.size); j++ {
		if h.buckets[hashKey] == nil {
			h.buckets[hashKey] = n
			return
		}
		hashKey = (n.seed + j*j) & mask
	}
	// Every slot on n's probe sequence was occupied. The j*j sequence does
	// not reach every bucket, so this can happen even below a 1/2 load
	// factor. Grow once more and retry.
	h.rehash()
	h.insertOnly(n)
}

// rehash doubles the bucket array and reinserts every node using the same
// probe rule, preserving insertion order and rebuilding both intrusive
// lists (see spec.md DESIGN NOTES: both lists must stay synchronized
// across a rehash for flushMaps(soft) to be correct either way it's
// implemented).
func (h *pendingHash) rehash() {
	nodes := make([]*node, 0, h.count)
	for n := h.head; n != nil; n = n.next {
		nodes = append(nodes, n)
	}

	arrayNodes := make([]*node, 0)
	for n := h.arrayHead; n != nil; n = n.arrayNext {
		arrayNodes = append(arrayNodes, n)
	}

	h.size *= 2
	h.buckets = make([]*node, h.size)
	h.head, h.tail = nil, nil
	h.arrayHead, h.arrayTail = nil, nil

	for _, n := range nodes {
		n.next = nil
		h.insertOnly(n)
		if h.tail != nil {
			h.tail.next = n
		} else {
			h.head = n
		}
		h.tail = n
	}

	for _, n := range arrayNodes {
		n.arrayNext = nil
		if h.arrayTail != nil {
			h.arrayTail.arrayNext = n
		} else {
			h.arrayHead = n
		}
		h.arrayTail = n
	}
}

// linkArray appends n to the array_* list if it isn't already linked.
func (h *pendingHash) linkArray(n *node) {
	if n.onArray {
		return
	}
	n.onArray = true
	if h.arrayTail != nil {
		h.arrayTail.arrayNext = n
		h.arrayTail = n
	} else {
		h.arrayHead, h.arrayTail = n, n
	}
}

// unlinkAllArrays detaches every node from the array_* list after a flush.
func (h *pendingHash) unlinkAllArrays() {
	for n := h.arrayHead; n != nil; {
		next := n.arrayNext
		n.arrayNext = nil
		n.onArray = false
		n = next
	}
	h.arrayHead, h.arrayTail = nil, nil
}

// clearHard removes every node from the table.
func (h *pendingHash) clearHard() {
	h.buckets = make([]*node, h.size)
	h.head, h.tail = nil, nil
	h.arrayHead, h.arrayTail = nil, nil
	h.count = 0
}
