// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package ext2fs

import "fmt"

// referenceBlockSize is the base the block size exponent is relative to.
const referenceBlockSize = 1024

// BlockSize returns the effective filesystem block size.
//
// LogBlockSize is a signed shift exponent relative to 1024 bytes: 0 means
// 1024, 2 means 4096, -1 would mean 512. The sign determines the shift
// direction; shifting by a negative amount is never attempted.
func (sb *SuperBlock) BlockSize() uint64 {
	if sb.LogBlockSize < 0 {
		return referenceBlockSize >> uint(-sb.LogBlockSize)
	}

	return referenceBlockSize << uint(sb.LogBlockSize)
}

// BlockGroupsCount returns the number of block groups on the volume, which is
// the exact integer ceiling of BlocksCount/BlocksPerGroup.
//
// A zero BlocksPerGroup is reported as ErrCorruptedFilesystem rather than
// dividing by it.
func (sb *SuperBlock) BlockGroupsCount() (uint64, error) {
	if sb.BlocksPerGroup == 0 {
		return 0, fmt.Errorf("%w: blocks per group is zero", ErrCorruptedFilesystem)
	}

	return (uint64(sb.BlocksCount) + uint64(sb.BlocksPerGroup) - 1) / uint64(sb.BlocksPerGroup), nil
}

// FilesystemSize returns the total size of the filesystem in bytes.
func (sb *SuperBlock) FilesystemSize() uint64 {
	return uint64(sb.BlocksCount) * sb.BlockSize()
}
