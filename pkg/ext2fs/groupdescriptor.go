// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package ext2fs

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// GroupDescriptorSize is the on-disk size of a single block group descriptor.
const GroupDescriptorSize = 32

// GroupDescriptor mirrors the on-disk block group descriptor layout. One
// descriptor exists per block group; the table occupies the block(s)
// immediately following the superblock's block. All multi-byte fields are
// little-endian.
type GroupDescriptor struct {
	BlockBitmap     uint32
	InodeBitmap     uint32
	InodeTable      uint32
	FreeBlocksCount uint16
	FreeInodesCount uint16
	UsedDirsCount   uint16
	Flags           uint16
	ExcludeBitmap   uint32
	BlockBitmapCsum uint16
	InodeBitmapCsum uint16
	ItableUnused    uint16
	Checksum        uint16
}

// DecodeGroupDescriptors interprets the head of buf as a table of count
// consecutive group descriptors.
func DecodeGroupDescriptors(buf []byte, count uint64) ([]GroupDescriptor, error) {
	size := count * GroupDescriptorSize
	if uint64(len(buf)) < size {
		return nil, fmt.Errorf("group descriptor table needs %d bytes, buffer holds only %d", size, len(buf))
	}

	gds := make([]GroupDescriptor, count)
	if err := binary.Read(bytes.NewReader(buf[:size]), binary.LittleEndian, gds); err != nil {
		return nil, fmt.Errorf("error decoding group descriptor table: %w", err)
	}

	return gds, nil
}
