// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package blockdevice provides access to fixed-size block storage.
package blockdevice

// Device is the capability consumed by filesystem implementations.
//
// A device addresses storage in blocks of a constant size. How out-of-range
// reads behave (failure vs. zero-padding) is device-defined.
type Device interface {
	// ReadBlocks returns exactly count*BlockSize() bytes covering blocks
	// [index, index+count).
	ReadBlocks(index, count uint64) ([]byte, error)

	// WriteBlocks writes data starting at the given block index. data must be
	// a whole number of blocks.
	WriteBlocks(index uint64, data []byte) error

	// BlockSize returns the device block size in bytes. The value is positive
	// and constant for the lifetime of the device.
	BlockSize() uint64
}
