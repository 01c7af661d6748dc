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
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// MemoryFootprint describes the memory consumed by a container and,
// recursively, by the components it owns.
type MemoryFootprint struct {
	value    uintptr
	children map[string]*MemoryFootprint
}

// NewMemoryFootprint creates a footprint of the given number of bytes without children.
func NewMemoryFootprint(value uintptr) *MemoryFootprint {
	return &MemoryFootprint{
		value:    value,
		children: make(map[string]*MemoryFootprint),
	}
}

// AddChild attaches the footprint of a named sub-component. Nil children are ignored.
func (mf *MemoryFootprint) AddChild(name string, child *MemoryFootprint) {
	if child == nil {
		return
	}
	mf.children[name] = child
}

// Value provides the bytes consumed by this component alone.
func (mf *MemoryFootprint) Value() uintptr {
	return mf.value
}

// Total provides the bytes consumed by this component and all its children.
// A component reachable along several paths is counted once.
func (mf *MemoryFootprint) Total() uintptr {
	return mf.total(make(map[*MemoryFootprint]struct{}))
}

func (mf *MemoryFootprint) total(visited map[*MemoryFootprint]struct{}) uintptr {
	if _, seen := visited[mf]; seen {
		return 0
	}
	visited[mf] = struct{}{}
	sum := mf.value
	for _, child := range mf.children {
		sum += child.total(visited)
	}
	return sum
}

// ToString renders the footprint as a tree, one component per line, with
// children listed by name. The name param labels the root of the tree.
func (mf *MemoryFootprint) ToString(name string) string {
	var sb strings.Builder
	mf.write(&sb, name, make(map[*MemoryFootprint]struct{}))
	return sb.String()
}

func (mf *MemoryFootprint) String() string {
	return mf.ToString(".")
}

func (mf *MemoryFootprint) write(sb *strings.Builder, path string, visited map[*MemoryFootprint]struct{}) {
	if _, seen := visited[mf]; seen {
		return
	}
	visited[mf] = struct{}{}
	fmt.Fprintf(sb, "%s %s\n", humanize.IBytes(uint64(mf.Total())), path)

	names := maps.Keys(mf.children)
	slices.Sort(names)
	for _, name := range names {
		mf.children[name].write(sb, path+"/"+name, visited)
	}
}
