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
	"strings"
	"testing"
)

func TestOSMetadata_LengthOfFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "alpha.txt", "alpha")

	length, err := OSMetadata{}.Length(path)
	if err != nil {
		t.Fatalf("failed to read length: %v", err)
	}
	if length != 5 {
		t.Errorf("unexpected length: %d != 5", length)
	}
}

func TestOSMetadata_LengthOfEmptyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.txt", "")

	length, err := OSMetadata{}.Length(path)
	if err != nil {
		t.Fatalf("failed to read length: %v", err)
	}
	if length != 0 {
		t.Errorf("unexpected length: %d != 0", length)
	}
}

func TestOSMetadata_MissingFile(t *testing.T) {
	_, err := OSMetadata{}.Length(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMetadataError_Message(t *testing.T) {
	err := &MetadataError{Path: "alpha.txt", Err: fs.ErrNotExist}

	msg := err.Error()
	for _, part := range []string{string(ErrMetadata), "alpha.txt", fs.ErrNotExist.Error()} {
		if !strings.Contains(msg, part) {
			t.Errorf("message %q should contain %q", msg, part)
		}
	}
}

func TestMetadataError_CanBeTestedForWithErrorsIs(t *testing.T) {
	cause := errors.New("disk on fire")
	tests := []struct {
		err     error
		target  error
		matches bool
	}{
		{&MetadataError{Err: cause}, ErrMetadata, true},
		{&MetadataError{Err: cause}, cause, true},
		{&MetadataError{Err: cause}, fs.ErrNotExist, false},
		{cause, ErrMetadata, false},
		{errors.Join(cause, &MetadataError{Err: fs.ErrNotExist}), fs.ErrNotExist, true},
	}

	for _, test := range tests {
		if want, got := test.matches, errors.Is(test.err, test.target); want != got {
			t.Errorf("unexpected result for %v and %v, wanted %t, got %t", test.err, test.target, want, got)
		}
	}
}
