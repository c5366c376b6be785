// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package blockdevice

import (
	"errors"
	"fmt"
)

// MemoryDevice is a Device backed by a byte slice. It is handy for tests and
// for inspecting images already loaded into memory.
type MemoryDevice struct {
	data      []byte
	blockSize uint64
}

// NewMemoryDevice wraps data as a block device with the given block size.
func NewMemoryDevice(data []byte, blockSize uint64) (*MemoryDevice, error) {
	if blockSize == 0 {
		return nil, errors.New("block size must be positive")
	}

	return &MemoryDevice{
		data:      data,
		blockSize: blockSize,
	}, nil
}

// ReadBlocks implements the Device interface.
//
// Reads past the end of the backing slice are zero-padded.
func (dev *MemoryDevice) ReadBlocks(index, count uint64) ([]byte, error) {
	buf := make([]byte, count*dev.blockSize)

	offset := index * dev.blockSize
	if offset < uint64(len(dev.data)) {
		copy(buf, dev.data[offset:])
	}

	return buf, nil
}

// WriteBlocks implements the Device interface.
func (dev *MemoryDevice) WriteBlocks(index uint64, data []byte) error {
	if uint64(len(data))%dev.blockSize != 0 {
		return fmt.Errorf("write of %d bytes is not a whole number of %d-byte blocks", len(data), dev.blockSize)
	}

	offset := index * dev.blockSize
	if offset+uint64(len(data)) > uint64(len(dev.data)) {
		return fmt.Errorf("write of %d bytes at block %d past the end of the device", len(data), index)
	}

	copy(dev.data[offset:], data)

	return nil
}

// BlockSize implements the Device interface.
func (dev *MemoryDevice) BlockSize() uint64 {
	return dev.blockSize
}
