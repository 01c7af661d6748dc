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
	"fmt"
	"strings"
	"unsafe"

	"github.com/joelparkerhenderson/collectables/common"
	"golang.org/x/exp/slices"
)

// node is a single B-tree node. A node without children is a leaf. An inner
// node with n keys always has n+1 children, and every key of children[i]
// sorts between keys[i-1] and keys[i].
type node[K any] struct {
	keys     []K
	children []*node[K]

	capacity   int // maximal number of keys before the node is split
	comparator common.Comparator[K]
}

func newNode[K any](capacity int, comparator common.Comparator[K]) *node[K] {
	return &node[K]{
		keys:       make([]K, 0, capacity+1),
		capacity:   capacity,
		comparator: comparator,
	}
}

func (n *node[K]) isLeaf() bool {
	return len(n.children) == 0
}

// minKeys is the number of keys every non-root node holds at least.
func (n *node[K]) minKeys() int {
	return n.capacity / 2
}

// findItem finds a key in this node using binary search.
// It returns the index of the key and true when the key is present.
// Otherwise, it returns the position where the key would be inserted, which
// is also the index of the child that may contain the key.
func (n *node[K]) findItem(key K) (index int, exists bool) {
	start, end := 0, len(n.keys)-1
	for start <= end {
		mid := (start + end) / 2
		res := n.comparator.Compare(&n.keys[mid], &key)
		if res == 0 {
			return mid, true
		} else if res < 0 {
			start = mid + 1
		} else {
			end = mid - 1
		}
	}
	return start, false
}

// get returns the stored key equal to the input key.
func (n *node[K]) get(key K) (K, bool) {
	index, exists := n.findItem(key)
	if exists {
		return n.keys[index], true
	}
	if n.isLeaf() {
		var empty K
		return empty, false
	}
	return n.children[index].get(key)
}

// insert places the key in this subtree. When the key already exists nothing
// happens and added is false. When this node overflows it is split: this node
// keeps the lower half, the upper half is returned as the right node, and
// the middle key is returned to be stored in the parent.
func (n *node[K]) insert(key K) (right *node[K], middle K, split, added bool) {
	index, exists := n.findItem(key)
	if exists {
		return nil, middle, false, false
	}

	if n.isLeaf() {
		n.keys = slices.Insert(n.keys, index, key)
		added = true
	} else {
		var childRight *node[K]
		var childMiddle K
		var childSplit bool
		childRight, childMiddle, childSplit, added = n.children[index].insert(key)
		if childSplit {
			n.keys = slices.Insert(n.keys, index, childMiddle)
			n.children = slices.Insert(n.children, index+1, childRight)
		}
	}

	if len(n.keys) > n.capacity {
		right, middle = n.split()
		split = true
	}
	return
}

// split moves the upper half of the keys (and children) into a new node.
// When the number of keys is even the right node gets one key less.
func (n *node[K]) split() (right *node[K], middle K) {
	right = newNode[K](n.capacity, n.comparator)
	mid := len(n.keys) / 2

	middle = n.keys[mid]
	right.keys = append(right.keys, n.keys[mid+1:]...)
	n.keys = n.keys[:mid]

	if !n.isLeaf() {
		right.children = append(right.children, n.children[mid+1:]...)
		n.children = n.children[:mid+1]
	}
	return
}

// remove deletes the key from this subtree and reports whether it was present.
// Children left with less than minKeys keys are refilled from a sibling or
// merged; this node itself may underflow and is fixed by its parent.
func (n *node[K]) remove(key K) bool {
	index, exists := n.findItem(key)
	if n.isLeaf() {
		if !exists {
			return false
		}
		n.keys = slices.Delete(n.keys, index, index+1)
		return true
	}

	if exists {
		// replace by the predecessor, which always lives in a leaf
		predecessor := n.children[index].max()
		n.keys[index] = predecessor
		n.children[index].remove(predecessor)
	} else if !n.children[index].remove(key) {
		return false
	}

	n.rebalance(index)
	return true
}

func (n *node[K]) max() K {
	cur := n
	for !cur.isLeaf() {
		cur = cur.children[len(cur.children)-1]
	}
	return cur.keys[len(cur.keys)-1]
}

// rebalance restores the minimal fill of the child at the given index.
func (n *node[K]) rebalance(index int) {
	child := n.children[index]
	if len(child.keys) >= child.minKeys() {
		return
	}

	if index > 0 && len(n.children[index-1].keys) > child.minKeys() {
		n.rotateRight(index)
		return
	}
	if index+1 < len(n.children) && len(n.children[index+1].keys) > child.minKeys() {
		n.rotateLeft(index)
		return
	}

	if index > 0 {
		n.merge(index - 1)
	} else {
		n.merge(index)
	}
}

// rotateRight moves the separator key down into children[index], and the
// largest key of the left sibling up in its place.
func (n *node[K]) rotateRight(index int) {
	child, left := n.children[index], n.children[index-1]
	last := len(left.keys) - 1

	child.keys = slices.Insert(child.keys, 0, n.keys[index-1])
	n.keys[index-1] = left.keys[last]
	left.keys = left.keys[:last]

	if !left.isLeaf() {
		child.children = slices.Insert(child.children, 0, left.children[last+1])
		left.children = left.children[:last+1]
	}
}

// rotateLeft moves the separator key down into children[index], and the
// smallest key of the right sibling up in its place.
func (n *node[K]) rotateLeft(index int) {
	child, right := n.children[index], n.children[index+1]

	child.keys = append(child.keys, n.keys[index])
	n.keys[index] = right.keys[0]
	right.keys = slices.Delete(right.keys, 0, 1)

	if !right.isLeaf() {
		child.children = append(child.children, right.children[0])
		right.children = slices.Delete(right.children, 0, 1)
	}
}

// merge joins children[index], the separator key at index, and
// children[index+1] into children[index].
func (n *node[K]) merge(index int) {
	left, right := n.children[index], n.children[index+1]

	left.keys = append(left.keys, n.keys[index])
	left.keys = append(left.keys, right.keys...)
	left.children = append(left.children, right.children...)

	n.keys = slices.Delete(n.keys, index, index+1)
	n.children = slices.Delete(n.children, index+1, index+2)
}

// ForEach visits the keys of this subtree in order.
func (n *node[K]) ForEach(callback func(k K)) {
	for i, child := range n.children {
		child.ForEach(callback)
		if i < len(n.keys) {
			callback(n.keys[i])
		}
	}
	if n.isLeaf() {
		for _, key := range n.keys {
			callback(key)
		}
	}
}

// checkProperties verifies order, fill and balance of this subtree.
// The depth of the first visited leaf is recorded in leafDepth.
func (n *node[K]) checkProperties(leafDepth *int, depth int, isRoot bool) error {
	if len(n.keys) > n.capacity {
		return fmt.Errorf("node overflow: %d keys > capacity %d", len(n.keys), n.capacity)
	}
	if !isRoot && len(n.keys) < n.minKeys() {
		return fmt.Errorf("node underflow: %d keys < minimum %d", len(n.keys), n.minKeys())
	}
	for i := 1; i < len(n.keys); i++ {
		if n.comparator.Compare(&n.keys[i-1], &n.keys[i]) >= 0 {
			return fmt.Errorf("keys not sorted: %v >= %v", n.keys[i-1], n.keys[i])
		}
	}

	if n.isLeaf() {
		if *leafDepth < 0 {
			*leafDepth = depth
		} else if *leafDepth != depth {
			return fmt.Errorf("leaves at different depths: %d != %d", *leafDepth, depth)
		}
		return nil
	}

	if len(n.children) != len(n.keys)+1 {
		return fmt.Errorf("inner node with %d keys has %d children", len(n.keys), len(n.children))
	}
	for i, child := range n.children {
		if len(child.keys) == 0 {
			return fmt.Errorf("child %d of an inner node is empty", i)
		}
		if i > 0 && n.comparator.Compare(&n.keys[i-1], &child.keys[0]) >= 0 {
			return fmt.Errorf("child %d starts below its separator %v", i, n.keys[i-1])
		}
		if i < len(n.keys) && n.comparator.Compare(&child.keys[len(child.keys)-1], &n.keys[i]) >= 0 {
			return fmt.Errorf("child %d ends above its separator %v", i, n.keys[i])
		}
		if err := child.checkProperties(leafDepth, depth+1, false); err != nil {
			return err
		}
	}
	return nil
}

func (n *node[K]) String() string {
	items := make([]string, 0, len(n.keys)+len(n.children))
	if n.isLeaf() {
		for _, key := range n.keys {
			items = append(items, fmt.Sprintf("%v", key))
		}
		return "[" + strings.Join(items, ", ") + "]"
	}
	for i, child := range n.children {
		items = append(items, child.String())
		if i < len(n.keys) {
			items = append(items, fmt.Sprintf("%v", n.keys[i]))
		}
	}
	return "[" + strings.Join(items, ", ") + "]"
}

func (n *node[K]) GetMemoryFootprint() *common.MemoryFootprint {
	var k K
	var child *node[K]
	size := unsafe.Sizeof(*n) + uintptr(cap(n.keys))*unsafe.Sizeof(k) + uintptr(cap(n.children))*unsafe.Sizeof(child)
	for _, c := range n.children {
		size += c.GetMemoryFootprint().Total()
	}
	return common.NewMemoryFootprint(size)
}
