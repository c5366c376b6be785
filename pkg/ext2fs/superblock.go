// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package ext2fs decodes ext2 filesystem metadata from a block device.
package ext2fs

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
	"github.com/siderolabs/go-pointer"
)

const (
	// Magic is the ext2 superblock magic signature.
	Magic = 0xEF53

	// SuperBlockOffset is the fixed byte offset of the superblock from the
	// start of the volume, independent of the device block size.
	SuperBlockOffset = 1024

	// SuperBlockSize is the on-disk size of the superblock record, padded to a
	// full 1024-byte block.
	SuperBlockSize = 1024
)

// SuperBlock mirrors the on-disk ext2 superblock layout (struct
// ext2_super_block in the kernel's fs/ext2/ext2.h). All multi-byte fields are
// little-endian; the record is exactly SuperBlockSize bytes.
//
// VolumeName, LastMounted and the UUID fields are kept as raw byte arrays;
// use the accessors for a decoded view.
type SuperBlock struct {
	InodesCount     uint32
	BlocksCount     uint32
	RBlocksCount    uint32
	FreeBlocksCount uint32
	FreeInodesCount uint32
	FirstDataBlock  uint32
	LogBlockSize    int32
	LogFragSize     int32
	BlocksPerGroup  uint32
	FragsPerGroup   uint32
	InodesPerGroup  uint32
	Mtime           uint32
	Wtime           uint32
	MntCount        uint16
	MaxMntCount     uint16
	Magic           uint16
	State           uint16
	Errors          uint16
	MinorRevLevel   uint16
	LastCheck       uint32
	CheckInterval   uint32
	CreatorOS       uint32
	RevLevel        uint32
	DefResUID       uint16
	DefResGID       uint16

	// Fields below are valid for EXT2_DYNAMIC_REV superblocks only.

	FirstIno             uint32
	InodeSize            uint16
	BlockGroupNr         uint16
	FeatureCompat        uint32
	FeatureIncompat      uint32
	FeatureRoCompat      uint32
	UUID                 [16]byte
	VolumeName           [16]byte
	LastMounted          [64]byte
	AlgorithmUsageBitmap uint32

	PreallocBlocks    uint8
	PreallocDirBlocks uint8
	Padding1          uint16

	// Journal linkage, valid if the has-journal compat feature is set.

	JournalUUID      [16]byte
	JournalInum      uint32
	JournalDev       uint32
	LastOrphan       uint32
	HashSeed         [4]uint32
	DefHashVersion   uint8
	ReservedCharPad  uint8
	ReservedWordPad  uint16
	DefaultMountOpts uint32
	FirstMetaBg      uint32
	Reserved         [190]uint32
}

// DecodeSuperBlock interprets buf[offset : offset+SuperBlockSize] as an ext2
// superblock and validates its magic signature.
//
// The byte range is deserialized field by field with explicit little-endian
// widths, so neither the buffer alignment nor the host byte order matter.
// A buffer too short to hold the record is an error; the function never reads
// past buf.
func DecodeSuperBlock(buf []byte, offset uint64) (*SuperBlock, error) {
	if uint64(len(buf)) < offset+SuperBlockSize {
		return nil, fmt.Errorf("superblock needs %d bytes at offset %d, buffer holds only %d", SuperBlockSize, offset, len(buf))
	}

	sb := &SuperBlock{}
	if err := binary.Read(bytes.NewReader(buf[offset:offset+SuperBlockSize]), binary.LittleEndian, sb); err != nil {
		return nil, fmt.Errorf("error decoding superblock: %w", err)
	}

	if !sb.Is() {
		return nil, ErrNoFilesystemFound
	}

	return sb, nil
}

// Is checks the magic signature.
func (sb *SuperBlock) Is() bool {
	return sb.Magic == Magic
}

// VolumeUUID returns the 128-bit volume UUID.
func (sb *SuperBlock) VolumeUUID() (uuid.UUID, error) {
	return uuid.FromBytes(sb.UUID[:])
}

// VolumeLabel returns the volume name with trailing NULs stripped, or nil if
// the volume has no label.
func (sb *SuperBlock) VolumeLabel() *string {
	return decodeFixedString(sb.VolumeName[:])
}

// LastMountedPath returns the directory the volume was last mounted on, or
// nil if it was never recorded.
func (sb *SuperBlock) LastMountedPath() *string {
	return decodeFixedString(sb.LastMounted[:])
}

func decodeFixedString(raw []byte) *string {
	if raw[0] == 0 {
		return nil
	}

	idx := bytes.IndexByte(raw, 0)
	if idx == -1 {
		idx = len(raw)
	}

	return pointer.To(string(raw[:idx]))
}
