// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package ext2fs

import (
	"errors"
	"fmt"

	"github.com/siderolabs/gen/optional"
	"go.uber.org/zap"

	"github.com/Javier-varez/Ext2FS/pkg/blockdevice"
)

// FileSystem is a read-only view over an ext2 filesystem stored on a block
// device. It owns the device exclusively.
//
// A FileSystem starts out uninitialized: Initialize decodes the superblock
// and derives the filesystem geometry. The decoded values are immutable
// afterwards and safe to read concurrently.
type FileSystem struct {
	dev    blockdevice.Device
	logger *zap.Logger

	sb         optional.Optional[SuperBlock]
	groupDescs []GroupDescriptor

	blockSize   uint64
	blockGroups uint64
}

// New creates a FileSystem over dev, taking ownership of the device.
func New(dev blockdevice.Device, setters ...Option) *FileSystem {
	opts := NewDefaultOptions(setters...)

	return &FileSystem{
		dev:    dev,
		logger: opts.Logger,
	}
}

// Initialize locates, reads, decodes and validates the superblock, then
// derives the filesystem geometry from it.
//
// On failure the FileSystem is left in its uninitialized state: no partially
// decoded values are retained. Initializing twice over an unmodified device
// yields identical results.
func (fs *FileSystem) Initialize() error {
	fs.sb = optional.None[SuperBlock]()
	fs.groupDescs = nil
	fs.blockSize = 0
	fs.blockGroups = 0

	devBlockSize := fs.dev.BlockSize()
	if devBlockSize == 0 {
		return errors.New("device reports zero block size")
	}

	loc := LocateSuperBlock(devBlockSize)

	buf, err := fs.dev.ReadBlocks(loc.Index, loc.Blocks)
	if err != nil {
		return fmt.Errorf("error reading superblock: %w", err)
	}

	sb, err := DecodeSuperBlock(buf, loc.Offset)
	if err != nil {
		return err
	}

	blockGroups, err := sb.BlockGroupsCount()
	if err != nil {
		return err
	}

	fs.sb = optional.Some(*sb)
	fs.blockSize = sb.BlockSize()
	fs.blockGroups = blockGroups

	fs.logger.Debug("initialized ext2 filesystem",
		zap.Uint64("block_size", fs.blockSize),
		zap.Uint64("block_groups", fs.blockGroups),
		zap.Uint32("blocks", sb.BlocksCount),
		zap.Uint32("inodes", sb.InodesCount),
	)

	return nil
}

// SuperBlock returns the decoded superblock, if initialization succeeded.
func (fs *FileSystem) SuperBlock() (SuperBlock, bool) {
	return fs.sb.Get()
}

// BlockSize returns the effective filesystem block size, or zero before
// successful initialization.
func (fs *FileSystem) BlockSize() uint64 {
	return fs.blockSize
}

// NumBlockGroups returns the number of block groups, or zero before
// successful initialization.
func (fs *FileSystem) NumBlockGroups() uint64 {
	return fs.blockGroups
}

// NumBlocks returns the total number of filesystem blocks, or zero before
// successful initialization.
func (fs *FileSystem) NumBlocks() uint64 {
	sb, ok := fs.sb.Get()
	if !ok {
		return 0
	}

	return uint64(sb.BlocksCount)
}

// GroupDescriptors reads, caches and returns the block group descriptor
// table. The table lives in the filesystem block immediately following the
// superblock's block and holds exactly NumBlockGroups() descriptors.
//
// The filesystem must be initialized first.
func (fs *FileSystem) GroupDescriptors() ([]GroupDescriptor, error) {
	sb, ok := fs.sb.Get()
	if !ok {
		return nil, ErrNotInitialized
	}

	if fs.groupDescs != nil {
		return fs.groupDescs, nil
	}

	tableOffset := (uint64(sb.FirstDataBlock) + 1) * fs.blockSize
	tableSize := fs.blockGroups * GroupDescriptorSize

	devBlockSize := fs.dev.BlockSize()
	index := tableOffset / devBlockSize
	offset := tableOffset % devBlockSize
	blocks := (offset + tableSize + devBlockSize - 1) / devBlockSize

	buf, err := fs.dev.ReadBlocks(index, blocks)
	if err != nil {
		return nil, fmt.Errorf("error reading group descriptor table: %w", err)
	}

	gds, err := DecodeGroupDescriptors(buf[offset:], fs.blockGroups)
	if err != nil {
		return nil, err
	}

	fs.groupDescs = gds

	return gds, nil
}
