// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package blockdevice

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// defaultBlockSize is assumed for regular files (disk images) when no block
// size was requested explicitly.
const defaultBlockSize = 512

// FileDevice exposes a disk image or a raw block device as a Device.
type FileDevice struct {
	f      *os.File
	logger *zap.Logger

	blockSize uint64
	readWrite bool
}

// NewFileDevice opens the file or block device at path.
//
// Unless overridden with WithBlockSize, the block size is taken from the
// logical sector size reported by the device, falling back to 512 bytes for
// regular files.
func NewFileDevice(path string, setters ...Option) (*FileDevice, error) {
	opts := NewDefaultOptions(setters...)

	flag := os.O_RDONLY
	if opts.ReadWrite {
		flag = os.O_RDWR
	}

	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}

	dev := &FileDevice{
		f:         f,
		logger:    opts.Logger,
		blockSize: opts.BlockSize,
		readWrite: opts.ReadWrite,
	}

	if dev.blockSize == 0 {
		if dev.blockSize, err = detectBlockSize(f); err != nil {
			f.Close() //nolint:errcheck

			return nil, err
		}

		dev.logger.Debug("detected device block size",
			zap.String("path", path),
			zap.Uint64("block_size", dev.blockSize),
		)
	}

	return dev, nil
}

// detectBlockSize queries the logical sector size of a block device.
func detectBlockSize(f *os.File) (uint64, error) {
	st, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat error: %w", err)
	}

	var lsize uint64
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), unix.BLKSSZGET, uintptr(unsafe.Pointer(&lsize))); errno != 0 {
		if st.Mode().IsRegular() {
			// not a device, assume default block size
			return defaultBlockSize, nil
		}

		return 0, errors.New("BLKSSZGET failed")
	}

	return lsize, nil
}

// ReadBlocks implements the Device interface.
//
// Reads past the end of a regular file are zero-padded, matching the behavior
// of a sparse disk image.
func (dev *FileDevice) ReadBlocks(index, count uint64) ([]byte, error) {
	buf := make([]byte, count*dev.blockSize)

	// short reads only happen at EOF, and make() zeroed the tail already
	if _, err := dev.f.ReadAt(buf, int64(index*dev.blockSize)); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error reading %d block(s) at %d: %w", count, index, err)
	}

	return buf, nil
}

// WriteBlocks implements the Device interface.
func (dev *FileDevice) WriteBlocks(index uint64, data []byte) error {
	if !dev.readWrite {
		return errors.New("device is opened read-only")
	}

	if uint64(len(data))%dev.blockSize != 0 {
		return fmt.Errorf("write of %d bytes is not a whole number of %d-byte blocks", len(data), dev.blockSize)
	}

	if _, err := dev.f.WriteAt(data, int64(index*dev.blockSize)); err != nil {
		return fmt.Errorf("error writing %d bytes at block %d: %w", len(data), index, err)
	}

	return nil
}

// BlockSize implements the Device interface.
func (dev *FileDevice) BlockSize() uint64 {
	return dev.blockSize
}

// Close releases the underlying file.
func (dev *FileDevice) Close() error {
	return dev.f.Close()
}
