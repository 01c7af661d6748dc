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
	"regexp"
	"strings"
	"testing"
)

func expectSubstr(t *testing.T, str, substring string) {
	t.Helper()
	if !strings.Contains(str, substring) {
		t.Errorf("expected %v to contain substring %v", str, substring)
	}
}

func TestMemoryFootprint_IsFormattable(t *testing.T) {
	fp := NewMemoryFootprint(12)
	fp.AddChild("keys", NewMemoryFootprint(50*1024))
	fp.AddChild("values", NewMemoryFootprint(1536))

	print := fp.String()
	expectSubstr(t, print, "50 KiB ./keys")
	expectSubstr(t, print, "1.5 KiB ./values")
	expectSubstr(t, print, "KiB .\n")
}

func TestMemoryFootprint_ToStringUsesRootName(t *testing.T) {
	fp := NewMemoryFootprint(8)
	fp.AddChild("bucket", NewMemoryFootprint(1))

	print := fp.ToString("index")
	expectSubstr(t, print, "9 B index\n")
	expectSubstr(t, print, "1 B index/bucket\n")
}

func TestMemoryFootprint_Value(t *testing.T) {
	fp := NewMemoryFootprint(12)
	fp.AddChild("x", NewMemoryFootprint(30))

	if got, want := fp.Value(), uintptr(12); got != want {
		t.Errorf("value does not match: %d != %d", got, want)
	}
	if got, want := fp.Total(), uintptr(42); got != want {
		t.Errorf("total does not match: %d != %d", got, want)
	}
}

func TestMemoryFootprint_Recursive(t *testing.T) {
	fp := NewMemoryFootprint(12)
	fp.AddChild("x", fp)

	if got, want := fp.Total(), uintptr(12); got != want {
		t.Errorf("value does not match: %d != %d", got, want)
	}
	if lines := strings.Count(fp.String(), "\n"); lines != 1 {
		t.Errorf("recursive footprint should print once, got %d lines", lines)
	}
}

func TestMemoryFootprint_SharedChildCountedOnce(t *testing.T) {
	shared := NewMemoryFootprint(100)
	fp := NewMemoryFootprint(1)
	fp.AddChild("a", shared)
	fp.AddChild("b", shared)

	if got, want := fp.Total(), uintptr(101); got != want {
		t.Errorf("value does not match: %d != %d", got, want)
	}
}

func TestMemoryFootprint_ChildNil(t *testing.T) {
	fp := NewMemoryFootprint(12)
	fp.AddChild("x", nil)

	if got, want := fp.Total(), uintptr(12); got != want {
		t.Errorf("value does not match: %d != %d", got, want)
	}
}

func TestMemoryFootprint_PrintsComponentsInOrder(t *testing.T) {
	fp := NewMemoryFootprint(4)
	fp.AddChild("b", NewMemoryFootprint(5))
	fp.AddChild("a", NewMemoryFootprint(6))
	fp.AddChild("c", NewMemoryFootprint(7))

	match, err := regexp.MatchString(`6 B ./a[\S\s]*5 B ./b[\S\s]*7 B ./c`, fp.String())
	if err != nil {
		t.Fatalf("invalid regex: %v", err)
	}
	if !match {
		t.Errorf("components are not printed in order:\n%v", fp)
	}
}
