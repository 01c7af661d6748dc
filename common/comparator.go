// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import "golang.org/x/exp/constraints"

// Comparator defines a total order on K. Compare returns zero for equal
// elements, a negative value when a sorts before b, and a positive value otherwise.
type Comparator[K any] interface {
	Compare(a, b *K) int
}

// NaturalComparator orders any built-in ordered type by its < operator.
type NaturalComparator[K constraints.Ordered] struct{}

func (NaturalComparator[K]) Compare(a, b *K) int {
	if *a < *b {
		return -1
	}
	if *a > *b {
		return 1
	}
	return 0
}

// ComparatorFunc adapts a plain function to the Comparator interface.
type ComparatorFunc[K any] func(a, b *K) int

func (f ComparatorFunc[K]) Compare(a, b *K) int {
	return f(a, b)
}

// Uint64Comparator orders file lengths and other unsigned 64-bit numbers.
type Uint64Comparator = NaturalComparator[uint64]

// StringComparator orders strings byte-wise.
type StringComparator = NaturalComparator[string]
