// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package btree

import (
	"unsafe"

	"github.com/joelparkerhenderson/collectables/common"
)

// DefaultNodeCapacity is the node capacity used by containers that do not
// choose one explicitly.
const DefaultNodeCapacity = 32

// BTree implements a classic B-tree holding a set of keys.
// The tree is initialized with the node capacity, and it is kept balanced
// so no node exceeds the capacity. Keys are kept ordered by the comparator.
// If a node exceeds its capacity it is split in two, and the middle key is
// moved to the parent node. Nodes falling below half of the capacity after
// a removal borrow a key from a sibling or are merged with it.
//
// A BTree is not safe for concurrent use.
type BTree[K any] struct {
	root *node[K]
	size int

	nodeCapacity int
	comparator   common.Comparator[K]
}

// NewBTree creates a new instance of BTree. Capacities below 2 are raised to 2.
func NewBTree[K any](nodeCapacity int, comparator common.Comparator[K]) *BTree[K] {
	if nodeCapacity < 2 {
		nodeCapacity = 2
	}
	return &BTree[K]{
		root:         newNode[K](nodeCapacity, comparator),
		nodeCapacity: nodeCapacity,
		comparator:   comparator,
	}
}

// Insert adds the key to this tree. It returns false if the key already exists.
func (m *BTree[K]) Insert(key K) bool {
	right, middle, split, added := m.root.insert(key)
	if split {
		left := m.root
		m.root = newNode[K](m.nodeCapacity, m.comparator)
		m.root.keys = append(m.root.keys, middle)
		m.root.children = append(m.root.children, left, right)
	}
	if added {
		m.size++
	}
	return added
}

// Remove deletes the key from this tree. It returns false if the key was not present.
func (m *BTree[K]) Remove(key K) bool {
	if !m.root.remove(key) {
		return false
	}
	if len(m.root.keys) == 0 && !m.root.isLeaf() {
		m.root = m.root.children[0]
	}
	m.size--
	return true
}

// Contains returns true if the input key exists in this BTree.
func (m *BTree[K]) Contains(key K) bool {
	_, exists := m.root.get(key)
	return exists
}

// Get returns the stored key comparing equal to the input key. It allows
// comparators looking at a part of the key only, e.g. map entries.
func (m *BTree[K]) Get(key K) (K, bool) {
	return m.root.get(key)
}

// Len returns the number of keys in this tree.
func (m *BTree[K]) Len() int {
	return m.size
}

// NewIterator creates an iterator over the keys in range [start;end).
func (m *BTree[K]) NewIterator(start, end K) *Iterator[K] {
	return newIterator[K](m.root, start, &end, m.comparator)
}

// NewIteratorFrom creates an iterator over all the keys not lower than start.
func (m *BTree[K]) NewIteratorFrom(start K) *Iterator[K] {
	return newIterator[K](m.root, start, nil, m.comparator)
}

// ForEach iterates over this BTree and visits all keys in order.
func (m *BTree[K]) ForEach(callback func(k K)) {
	m.root.ForEach(callback)
}

// Keys returns all keys of this tree in order.
func (m *BTree[K]) Keys() []K {
	res := make([]K, 0, m.size)
	m.ForEach(func(k K) {
		res = append(res, k)
	})
	return res
}

func (m *BTree[K]) String() string {
	return m.root.String()
}

func (m *BTree[K]) checkProperties() error {
	leafDepth := -1
	return m.root.checkProperties(&leafDepth, 0, true)
}

func (m *BTree[K]) GetMemoryFootprint() *common.MemoryFootprint {
	mf := common.NewMemoryFootprint(unsafe.Sizeof(*m))
	mf.AddChild("nodes", m.root.GetMemoryFootprint())
	return mf
}
