// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package ext2fs

// SuperBlockLocation describes the device block range covering the superblock
// record for a particular device block size.
type SuperBlockLocation struct {
	// Index is the first device block containing superblock bytes.
	Index uint64

	// Offset is the byte offset of the record within that block.
	Offset uint64

	// Blocks is the number of contiguous device blocks which must be read to
	// cover the whole record.
	Blocks uint64
}

// LocateSuperBlock computes where the superblock lives on a device with the
// given block size. The superblock starts SuperBlockOffset bytes into the
// volume regardless of the device block size, so for small blocks the record
// spans several of them while for large blocks it sits at an interior offset
// of the first one.
//
// blockSize must be positive.
func LocateSuperBlock(blockSize uint64) SuperBlockLocation {
	loc := SuperBlockLocation{
		Index:  SuperBlockOffset / blockSize,
		Offset: SuperBlockOffset % blockSize,
		Blocks: 1,
	}

	if remainder := blockSize - loc.Offset; remainder < SuperBlockSize {
		loc.Blocks += (SuperBlockSize - remainder + blockSize - 1) / blockSize
	}

	return loc
}
