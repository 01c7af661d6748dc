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

import (
	"errors"
	"io/fs"
	"path/filepath"
)

// AddTree walks the directory tree rooted at root and inserts the path of
// every regular file into the index. Symbolic links and other special files
// are skipped. It returns the number of newly added paths.
//
// A file or directory that cannot be read does not stop the walk: its error
// is collected and all collected errors are returned, joined, at the end.
func (i *Index) AddTree(root string) (int, error) {
	var added int
	var errs []error
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return &MetadataError{Path: path, Err: err}
			}
			errs = append(errs, &MetadataError{Path: path, Err: err})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		inserted, err := i.InsertPath(path)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if inserted {
			added++
		}
		return nil
	})
	if err != nil {
		errs = append(errs, err)
	}
	return added, errors.Join(errs...)
}
