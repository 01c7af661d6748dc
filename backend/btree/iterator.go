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

import "github.com/joelparkerhenderson/collectables/common"

// Iterator of BTree elements. It visits keys in order, starting with the
// first key not lower than the start key and stopping before the end key.
// The tree must not be modified while an iterator is in use.
type Iterator[K any] struct {
	end        *K // nil for unbounded iteration
	comparator common.Comparator[K]
	nestStack  nestStack[K]

	next    K
	hasNext bool
}

func newIterator[K any](root *node[K], start K, end *K, comparator common.Comparator[K]) *Iterator[K] {
	it := &Iterator[K]{
		end:        end,
		comparator: comparator,
		nestStack:  make(nestStack[K], 0, 16),
	}
	it.seek(root, start)
	it.advance()
	return it
}

// HasNext returns true if there is a next key within the range of this iterator.
func (it *Iterator[K]) HasNext() bool {
	return it.hasNext
}

// Next returns the next key. HasNext() should be called to find out
// if there is a next key, otherwise the returned key should not be used.
func (it *Iterator[K]) Next() (k K) {
	if !it.hasNext {
		return
	}
	k = it.next
	it.advance()
	return k
}

// seek descends from the node to the first key not lower than start,
// remembering the path in the nest stack.
func (it *Iterator[K]) seek(n *node[K], start K) {
	for {
		index, exists := n.findItem(start)
		it.nestStack.push(nestCtx[K]{index, n})
		if exists || n.isLeaf() {
			return
		}
		n = n.children[index]
	}
}

// descend pushes the leftmost path of the subtree rooted in the node.
func (it *Iterator[K]) descend(n *node[K]) {
	for {
		it.nestStack.push(nestCtx[K]{0, n})
		if n.isLeaf() {
			return
		}
		n = n.children[0]
	}
}

// advance fetches the following in-order key into the lookahead.
func (it *Iterator[K]) advance() {
	it.hasNext = false
	for it.nestStack.size() > 0 {
		level := it.nestStack.peek()
		if level.currentIndex >= len(level.currentNode.keys) {
			it.nestStack.pop()
			continue
		}

		current := level.currentNode
		key := current.keys[level.currentIndex]
		level.currentIndex++
		if !current.isLeaf() {
			it.descend(current.children[level.currentIndex])
		}

		if it.end != nil && it.comparator.Compare(&key, it.end) >= 0 {
			it.nestStack = it.nestStack[:0]
			return
		}
		it.next, it.hasNext = key, true
		return
	}
}

var _ common.Iterator[int] = (*Iterator[int])(nil)

// nestStack contains the path from the root to the current position of the iterator.
type nestStack[K any] []nestCtx[K]

func (s nestStack[K]) size() int {
	return len(s)
}

func (s nestStack[K]) peek() *nestCtx[K] {
	return &s[len(s)-1]
}

func (s *nestStack[K]) push(c nestCtx[K]) {
	*s = append(*s, c)
}

func (s *nestStack[K]) pop() {
	ss := *s
	*s = ss[0 : len(ss)-1]
}

// nestCtx is the position of the iterator in one node: the index of
// the next key to visit in it.
type nestCtx[K any] struct {
	currentIndex int
	currentNode  *node[K]
}
