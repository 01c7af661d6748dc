// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package hashed

import (
	"unsafe"

	"github.com/joelparkerhenderson/collectables/backend/multimap"
	"github.com/joelparkerhenderson/collectables/common"
	"golang.org/x/exp/maps"
)

// MultiMap is a hash based multimap.MultiMap implementation. Keys and the
// values of each key are kept in Go maps, so no iteration order is defined.
type MultiMap[K comparable, V comparable] struct {
	data map[K]map[V]struct{}
	size int
}

var _ multimap.MultiMap[int, int] = (*MultiMap[int, int])(nil)

// NewMultiMap creates an empty map.
func NewMultiMap[K comparable, V comparable]() *MultiMap[K, V] {
	return &MultiMap[K, V]{
		data: make(map[K]map[V]struct{}),
	}
}

func (m *MultiMap[K, V]) Contains(key K, value V) bool {
	set, exists := m.data[key]
	if !exists {
		return false
	}
	_, exists = set[value]
	return exists
}

func (m *MultiMap[K, V]) Insert(key K, value V) bool {
	set, exists := m.data[key]
	if !exists {
		set = make(map[V]struct{})
		m.data[key] = set
	}
	if _, exists := set[value]; exists {
		return false
	}
	set[value] = struct{}{}
	m.size++
	return true
}

func (m *MultiMap[K, V]) Remove(key K, value V) bool {
	set, exists := m.data[key]
	if !exists {
		return false
	}
	if _, exists := set[value]; !exists {
		return false
	}
	delete(set, value) // the key stays, even with an empty set
	m.size--
	return true
}

func (m *MultiMap[K, V]) RemoveAll(key K) bool {
	set, exists := m.data[key]
	if !exists {
		return false
	}
	m.size -= len(set)
	delete(m.data, key)
	return true
}

func (m *MultiMap[K, V]) Get(key K) ([]V, bool) {
	set, exists := m.data[key]
	if !exists {
		return []V{}, false
	}
	return maps.Keys(set), true
}

func (m *MultiMap[K, V]) HasKey(key K) bool {
	_, exists := m.data[key]
	return exists
}

func (m *MultiMap[K, V]) Keys() []K {
	return maps.Keys(m.data)
}

func (m *MultiMap[K, V]) ForEach(callback func(K, V)) {
	for key, set := range m.data {
		for value := range set {
			callback(key, value)
		}
	}
}

func (m *MultiMap[K, V]) Len() int {
	return len(m.data)
}

func (m *MultiMap[K, V]) Size() int {
	return m.size
}

// GetMemoryFootprint provides an estimate of the map size in memory in bytes.
// The internal overhead of Go maps is not included.
func (m *MultiMap[K, V]) GetMemoryFootprint() *common.MemoryFootprint {
	var k K
	var v V
	var set map[V]struct{}
	size := unsafe.Sizeof(*m)
	for _, d := range m.data {
		size += unsafe.Sizeof(k) + unsafe.Sizeof(set) + uintptr(len(d))*unsafe.Sizeof(v)
	}
	return common.NewMemoryFootprint(size)
}
