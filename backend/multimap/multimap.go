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

package multimap

import "github.com/joelparkerhenderson/collectables/common"

// MultiMap defines the interface for mapping keys to sets of values.
//
// A key, once inserted, stays in the map until RemoveAll is called for it,
// even if all of its values have been removed. Implementations are not safe
// for concurrent use; callers must provide their own synchronization.
type MultiMap[K any, V any] interface {
	// Contains returns true if the value is in the set of the given key.
	Contains(key K, value V) bool

	// Insert adds the value to the set of the given key, creating an empty set
	// for a new key first. It returns true if the value was not present yet.
	Insert(key K, value V) bool

	// Remove removes the value from the set of the given key and returns
	// true if it was present. The key is kept even if its set becomes empty.
	Remove(key K, value V) bool

	// RemoveAll removes the key together with its whole set. It returns
	// true if the key was present.
	RemoveAll(key K) bool

	// Get provides a copy of the values associated with the given key, and
	// whether the key is present. The slice is empty for a missing key.
	Get(key K) ([]V, bool)

	// HasKey returns true if the key is present, possibly with an empty set.
	HasKey(key K) bool

	// Keys provides all keys of the map.
	Keys() []K

	// ForEach visits all key/value pairs.
	ForEach(callback func(K, V))

	// Len returns the number of keys, including keys with an empty set.
	Len() int

	// Size returns the number of key/value pairs.
	Size() int

	// provides the size of the map in memory in bytes
	common.MemoryFootprintProvider
}
