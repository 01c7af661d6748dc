// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package pathindex groups file paths by their byte length. Grouping by
// length is the cheap first stage of content deduplication: only files of
// equal length can have equal content, so only paths sharing a bucket need
// to be hashed by a later stage.
package pathindex

import (
	"unsafe"

	"github.com/joelparkerhenderson/collectables/backend/multimap"
	"github.com/joelparkerhenderson/collectables/backend/multimap/hashed"
	"github.com/joelparkerhenderson/collectables/backend/multimap/ordered"
	"github.com/joelparkerhenderson/collectables/common"
	"golang.org/x/exp/slices"
)

// Index is a multimap from file lengths to the set of paths having that
// length. The length is never supplied by the caller: every operation reads
// it from the Metadata source at call time, nothing is cached.
//
// Since each call reads the length again, a file changing its size between
// InsertPath and RemovePath is looked up in a different bucket, and the
// removal reports false. The index is not safe for concurrent use.
type Index struct {
	entries  multimap.MultiMap[uint64, string]
	metadata Metadata
}

// Option customizes a new Index.
type Option func(*Index)

// WithMetadata replaces the source of file lengths, which defaults to OSMetadata.
func WithMetadata(metadata Metadata) Option {
	return func(i *Index) {
		i.metadata = metadata
	}
}

// NewOrdered creates an index visiting lengths, and paths within a length,
// in ascending order.
func NewOrdered(opts ...Option) *Index {
	return newIndex(ordered.NewNatural[uint64, string](), opts)
}

// NewHashed creates an index backed by hash maps, without any iteration order.
func NewHashed(opts ...Option) *Index {
	return newIndex(hashed.NewMultiMap[uint64, string](), opts)
}

func newIndex(entries multimap.MultiMap[uint64, string], opts []Option) *Index {
	i := &Index{
		entries:  entries,
		metadata: OSMetadata{},
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// lengthOf reads the current length of the file at the given path.
func (i *Index) lengthOf(path string) (uint64, error) {
	length, err := i.metadata.Length(path)
	if err != nil {
		return 0, &MetadataError{Path: path, Err: err}
	}
	return length, nil
}

// ContainsPath returns true if the path is present in the bucket of its current length.
func (i *Index) ContainsPath(path string) (bool, error) {
	length, err := i.lengthOf(path)
	if err != nil {
		return false, err
	}
	return i.entries.Contains(length, path), nil
}

// InsertPath adds the path to the bucket of its current length. It returns
// true if the path was not present in that bucket yet.
func (i *Index) InsertPath(path string) (bool, error) {
	length, err := i.lengthOf(path)
	if err != nil {
		return false, err
	}
	return i.entries.Insert(length, path), nil
}

// RemovePath removes the path from the bucket of its current length and
// returns true if it was present. The bucket is kept even if it becomes empty.
func (i *Index) RemovePath(path string) (bool, error) {
	length, err := i.lengthOf(path)
	if err != nil {
		return false, err
	}
	return i.entries.Remove(length, path), nil
}

// RemoveLength drops the whole bucket of the given length, including an
// empty one. It returns true if the bucket existed.
func (i *Index) RemoveLength(length uint64) bool {
	return i.entries.RemoveAll(length)
}

// Paths provides the paths in the bucket of the given length, and whether
// the bucket exists. An existing bucket may be empty.
func (i *Index) Paths(length uint64) ([]string, bool) {
	return i.entries.Get(length)
}

// Lengths provides the lengths of all buckets, including empty ones.
func (i *Index) Lengths() []uint64 {
	return i.entries.Keys()
}

// Len returns the number of buckets.
func (i *Index) Len() int {
	return i.entries.Len()
}

// Size returns the number of indexed paths.
func (i *Index) Size() int {
	return i.entries.Size()
}

// Bucket is a group of paths sharing the same file length.
type Bucket struct {
	Length uint64
	Paths  []string
}

// Candidates provides the buckets holding at least two paths, the only ones
// that may contain duplicate files. Buckets are sorted by length and paths
// are sorted within a bucket, independently of the index kind.
func (i *Index) Candidates() []Bucket {
	lengths := i.entries.Keys()
	slices.Sort(lengths)

	res := make([]Bucket, 0)
	for _, length := range lengths {
		paths, _ := i.entries.Get(length)
		if len(paths) < 2 {
			continue
		}
		slices.Sort(paths)
		res = append(res, Bucket{Length: length, Paths: paths})
	}
	return res
}

// GetMemoryFootprint provides the size of the index in memory in bytes.
// The memory of path strings is included.
func (i *Index) GetMemoryFootprint() *common.MemoryFootprint {
	mf := common.NewMemoryFootprint(unsafe.Sizeof(*i))
	mf.AddChild("entries", i.entries.GetMemoryFootprint())
	var paths uintptr
	i.entries.ForEach(func(_ uint64, path string) {
		paths += uintptr(len(path))
	})
	mf.AddChild("paths", common.NewMemoryFootprint(paths))
	return mf
}
