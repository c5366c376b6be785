// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package ext2fs_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Javier-varez/Ext2FS/pkg/ext2fs"
)

const testImageSize = 64 * 1024

var testVolumeUUID = uuid.MustParse("c12a7328-f81f-11d2-ba4b-00a0c93ec93b")

// testSuperBlock describes a tiny clean ext2 volume with 4096-byte filesystem
// blocks and a single block group.
func testSuperBlock() *ext2fs.SuperBlock {
	sb := &ext2fs.SuperBlock{
		InodesCount:     64,
		BlocksCount:     256,
		FreeBlocksCount: 200,
		FreeInodesCount: 53,
		FirstDataBlock:  0,
		LogBlockSize:    2,
		LogFragSize:     2,
		BlocksPerGroup:  32768,
		FragsPerGroup:   32768,
		InodesPerGroup:  64,
		MaxMntCount:     65535,
		Magic:           ext2fs.Magic,
		State:           1,
		Errors:          1,
		CreatorOS:       0,
		RevLevel:        1,
		FirstIno:        11,
		InodeSize:       128,
		BlockGroupNr:    0,
	}

	copy(sb.UUID[:], testVolumeUUID[:])
	copy(sb.VolumeName[:], "testdata")
	copy(sb.LastMounted[:], "/mnt/testdata")

	return sb
}

// buildImage serializes sb (and optionally a group descriptor table) into a
// raw volume image.
func buildImage(t *testing.T, sb *ext2fs.SuperBlock, gds []ext2fs.GroupDescriptor) []byte {
	t.Helper()

	img := make([]byte, testImageSize)

	var buf bytes.Buffer

	require.NoError(t, binary.Write(&buf, binary.LittleEndian, sb))
	require.Equal(t, ext2fs.SuperBlockSize, buf.Len())

	copy(img[ext2fs.SuperBlockOffset:], buf.Bytes())

	if gds != nil {
		buf.Reset()

		require.NoError(t, binary.Write(&buf, binary.LittleEndian, gds))

		tableOffset := (uint64(sb.FirstDataBlock) + 1) * sb.BlockSize()
		copy(img[tableOffset:], buf.Bytes())
	}

	return img
}
