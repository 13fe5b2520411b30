package writer

import (
	"github.com/tsengine/gauged/array"
	"github.com/tsengine/gauged/gmap"
)

// node is a single (namespace, key) entry in the writer's pending hash
// table. It owns its current-batch array and its accumulated map, and
// threads two intrusive singly-linked lists: insertion order (next) and
// pending-with-samples order (arrayNext).
type node struct {
	key       string
	namespace uint32
	seed      uint32
	array     *array.Array
	mp        *gmap.Map

	next      *node
	arrayNext *node
	onArray   bool // true while linked into the array_* list
}

func newNode(namespace uint32, key string, seed uint32, value float32) *node {
	n := &node{
		key:       key,
		namespace: namespace,
		seed:      seed,
		array:     array.New(),
		mp:        gmap.New(),
	}
	n.array.Append(value)
	return n
}
