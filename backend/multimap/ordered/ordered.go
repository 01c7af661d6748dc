//
// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.
//

package ordered

import (
	"unsafe"

	"github.com/joelparkerhenderson/collectables/backend/btree"
	"github.com/joelparkerhenderson/collectables/backend/multimap"
	"github.com/joelparkerhenderson/collectables/common"
	"golang.org/x/exp/constraints"
)

// MultiMap implemented via BTrees. Keys are held in one BTree ordered by the
// key comparator, and every key owns a BTree of values ordered by the value
// comparator. Keys and values are therefore always visited in ascending order.
type MultiMap[K any, V any] struct {
	keys *btree.BTree[entry[K, V]]
	size int

	nodeCapacity    int
	valueComparator common.Comparator[V]
}

var _ multimap.MultiMap[int, int] = (*MultiMap[int, int])(nil)

// entry is a single key of the map with its set of values.
type entry[K any, V any] struct {
	key    K
	values *btree.BTree[V]
}

// entryComparator orders entries by their keys only.
type entryComparator[K any, V any] struct {
	keyComparator common.Comparator[K]
}

func (c entryComparator[K, V]) Compare(a, b *entry[K, V]) int {
	return c.keyComparator.Compare(&a.key, &b.key)
}

// NewMultiMap creates new instance ordering keys and values by the given comparators.
func NewMultiMap[K any, V any](
	keyComparator common.Comparator[K],
	valueComparator common.Comparator[V],
) *MultiMap[K, V] {
	return NewMultiMapWithCapacity[K, V](btree.DefaultNodeCapacity, keyComparator, valueComparator)
}

// NewMultiMapWithCapacity is like NewMultiMap but sets the node capacity of
// the underlying BTrees.
func NewMultiMapWithCapacity[K any, V any](
	nodeCapacity int,
	keyComparator common.Comparator[K],
	valueComparator common.Comparator[V],
) *MultiMap[K, V] {
	return &MultiMap[K, V]{
		keys:            btree.NewBTree[entry[K, V]](nodeCapacity, entryComparator[K, V]{keyComparator}),
		nodeCapacity:    nodeCapacity,
		valueComparator: valueComparator,
	}
}

// NewNatural creates a map of built-in ordered types using their natural order.
func NewNatural[K constraints.Ordered, V constraints.Ordered]() *MultiMap[K, V] {
	return NewMultiMap[K, V](common.NaturalComparator[K]{}, common.NaturalComparator[V]{})
}

func (m *MultiMap[K, V]) find(key K) (*btree.BTree[V], bool) {
	e, exists := m.keys.Get(entry[K, V]{key: key})
	return e.values, exists
}

func (m *MultiMap[K, V]) Contains(key K, value V) bool {
	values, exists := m.find(key)
	if !exists {
		return false
	}
	return values.Contains(value)
}

func (m *MultiMap[K, V]) Insert(key K, value V) bool {
	values, exists := m.find(key)
	if !exists {
		values = btree.NewBTree[V](m.nodeCapacity, m.valueComparator)
		m.keys.Insert(entry[K, V]{key, values})
	}
	if !values.Insert(value) {
		return false
	}
	m.size++
	return true
}

func (m *MultiMap[K, V]) Remove(key K, value V) bool {
	values, exists := m.find(key)
	if !exists {
		return false
	}
	if !values.Remove(value) { // the key stays, even with an empty set
		return false
	}
	m.size--
	return true
}

func (m *MultiMap[K, V]) RemoveAll(key K) bool {
	values, exists := m.find(key)
	if !exists {
		return false
	}
	m.size -= values.Len()
	return m.keys.Remove(entry[K, V]{key: key})
}

// Get provides the values of the given key in ascending order.
func (m *MultiMap[K, V]) Get(key K) ([]V, bool) {
	values, exists := m.find(key)
	if !exists {
		return []V{}, false
	}
	return values.Keys(), true
}

func (m *MultiMap[K, V]) HasKey(key K) bool {
	return m.keys.Contains(entry[K, V]{key: key})
}

// Keys provides all keys in ascending order.
func (m *MultiMap[K, V]) Keys() []K {
	res := make([]K, 0, m.keys.Len())
	m.keys.ForEach(func(e entry[K, V]) {
		res = append(res, e.key)
	})
	return res
}

// ForEach visits all key/value pairs ordered by key, then by value.
func (m *MultiMap[K, V]) ForEach(callback func(K, V)) {
	m.keys.ForEach(func(e entry[K, V]) {
		e.values.ForEach(func(value V) {
			callback(e.key, value)
		})
	})
}

// Range visits, in order, the keys in range [from;to) with their value sets.
// Keys with an empty set are visited too.
func (m *MultiMap[K, V]) Range(from, to K, callback func(K, []V)) {
	it := m.keys.NewIterator(entry[K, V]{key: from}, entry[K, V]{key: to})
	for it.HasNext() {
		e := it.Next()
		callback(e.key, e.values.Keys())
	}
}

func (m *MultiMap[K, V]) Len() int {
	return m.keys.Len()
}

func (m *MultiMap[K, V]) Size() int {
	return m.size
}

// GetMemoryFootprint provides the size of the map in memory in bytes.
func (m *MultiMap[K, V]) GetMemoryFootprint() *common.MemoryFootprint {
	mf := common.NewMemoryFootprint(unsafe.Sizeof(*m))
	mf.AddChild("keys", m.keys.GetMemoryFootprint())
	var values uintptr
	m.keys.ForEach(func(e entry[K, V]) {
		values += e.values.GetMemoryFootprint().Total()
	})
	mf.AddChild("values", common.NewMemoryFootprint(values))
	return mf
}
