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

import "testing"

func TestNaturalComparator_Uint64(t *testing.T) {
	var a, b uint64 = 5, 7
	comparator := Uint64Comparator{}

	if comparator.Compare(&a, &a) != 0 {
		t.Errorf("Wrong comparator error")
	}
	if comparator.Compare(&a, &b) >= 0 {
		t.Errorf("Wrong comparator error")
	}
	if comparator.Compare(&b, &a) <= 0 {
		t.Errorf("Wrong comparator error")
	}
}

func TestNaturalComparator_String(t *testing.T) {
	a, b := "alpha.txt", "bravo.txt"
	comparator := StringComparator{}

	if comparator.Compare(&a, &a) != 0 {
		t.Errorf("Wrong comparator error")
	}
	if comparator.Compare(&a, &b) >= 0 {
		t.Errorf("Wrong comparator error")
	}
	if comparator.Compare(&b, &a) <= 0 {
		t.Errorf("Wrong comparator error")
	}
}

func TestComparatorFunc_ReversesOrder(t *testing.T) {
	reversed := ComparatorFunc[int](func(a, b *int) int { return *b - *a })
	a, b := 1, 2

	if reversed.Compare(&a, &b) <= 0 {
		t.Errorf("reversed comparator should put %d after %d", a, b)
	}
	if reversed.Compare(&b, &a) >= 0 {
		t.Errorf("reversed comparator should put %d before %d", b, a)
	}
}
