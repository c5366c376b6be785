// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package ext2fs

import "errors"

var (
	// ErrNoFilesystemFound indicates that the superblock magic signature did
	// not match, i.e. the device does not hold an ext2-family filesystem.
	ErrNoFilesystemFound = errors.New("no ext2 filesystem found")

	// ErrCorruptedFilesystem indicates that a decoded superblock holds values
	// no valid filesystem can have.
	ErrCorruptedFilesystem = errors.New("corrupted ext2 filesystem")

	// ErrNotInitialized is returned by operations which require a successfully
	// initialized filesystem.
	ErrNotInitialized = errors.New("filesystem is not initialized")
)
