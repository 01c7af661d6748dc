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

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/exp/constraints"
)

// AssertArraysEqual fails the test when the two slices differ in length or content.
// A nil and an empty slice are considered equal.
func AssertArraysEqual[V any](t testing.TB, want, got []V) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("arrays differ (-want +got):\n%s", diff)
	}
}

// AssertSetsEqual is like AssertArraysEqual but ignores the order of elements.
func AssertSetsEqual[V constraints.Ordered](t testing.TB, want, got []V) {
	t.Helper()
	less := func(a, b V) bool { return a < b }
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty(), cmpopts.SortSlices(less)); diff != "" {
		t.Errorf("sets differ (-want +got):\n%s", diff)
	}
}

// AssertArraySorted fails the test when the slice is not in ascending order.
func AssertArraySorted[T any](t testing.TB, arr []T, comparator Comparator[T]) {
	t.Helper()
	for i := 1; i < len(arr); i++ {
		if comparator.Compare(&arr[i-1], &arr[i]) > 0 {
			t.Errorf("Unsorted: %v > %v", arr[i-1], arr[i])
		}
	}
}
