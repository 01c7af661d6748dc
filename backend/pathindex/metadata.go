// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package pathindex

//go:generate mockgen -source metadata.go -destination metadata_mocks.go -package pathindex

import (
	"fmt"
	"os"

	"github.com/ccoveille/go-safecast"
	"github.com/joelparkerhenderson/collectables/common"
)

// ErrMetadata is matched by every error reporting that the metadata of a
// path could not be obtained.
const ErrMetadata = common.ConstError("failed to read file metadata")

// Metadata provides the byte length of files. It is queried on every
// index operation; implementations must not cache results.
type Metadata interface {
	// Length returns the current length of the file at the given path.
	Length(path string) (uint64, error)
}

// OSMetadata reads file lengths from the operating system. Symbolic links
// are followed, so a broken link yields an error.
type OSMetadata struct{}

func (OSMetadata) Length(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	length, err := safecast.ToUint64(info.Size())
	if err != nil {
		return 0, fmt.Errorf("invalid length of %s: %w", path, err)
	}
	return length, nil
}

// MetadataError is returned by index operations when the length of a path
// cannot be obtained, e.g. because the file does not exist, access is
// denied, or a symbolic link is broken. It matches ErrMetadata as well as
// the underlying cause, e.g. fs.ErrNotExist, when tested with errors.Is.
type MetadataError struct {
	Path string
	Err  error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("%v for %s: %v", ErrMetadata, e.Path, e.Err)
}

func (e *MetadataError) Unwrap() []error {
	return []error{ErrMetadata, e.Err}
}
