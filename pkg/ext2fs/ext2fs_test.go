// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package ext2fs_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"github.com/Javier-varez/Ext2FS/pkg/blockdevice"
	"github.com/Javier-varez/Ext2FS/pkg/ext2fs"
)

type FileSystemSuite struct {
	suite.Suite
}

func (suite *FileSystemSuite) newFileSystem(img []byte, devBlockSize uint64) *ext2fs.FileSystem {
	dev, err := blockdevice.NewMemoryDevice(img, devBlockSize)
	suite.Require().NoError(err)

	return ext2fs.New(dev, ext2fs.WithLogger(zaptest.NewLogger(suite.T())))
}

func (suite *FileSystemSuite) TestInitialize() {
	img := buildImage(suite.T(), testSuperBlock(), nil)

	// the decoded geometry must not depend on the device block size
	for _, devBlockSize := range []uint64{512, 1024, 2048, 4096} {
		suite.Run(fmt.Sprintf("%d", devBlockSize), func() {
			fs := suite.newFileSystem(img, devBlockSize)

			suite.Require().NoError(fs.Initialize())

			suite.Assert().EqualValues(4096, fs.BlockSize())
			suite.Assert().EqualValues(1, fs.NumBlockGroups())
			suite.Assert().EqualValues(256, fs.NumBlocks())

			sb, ok := fs.SuperBlock()
			suite.Require().True(ok)
			suite.Assert().EqualValues(0, sb.CreatorOS)
			suite.Assert().EqualValues(1, sb.State)
			suite.Assert().EqualValues(0, sb.BlockGroupNr)
		})
	}
}

func (suite *FileSystemSuite) TestInitializeIdempotent() {
	img := buildImage(suite.T(), testSuperBlock(), nil)

	fs := suite.newFileSystem(img, 512)

	suite.Require().NoError(fs.Initialize())

	first, ok := fs.SuperBlock()
	suite.Require().True(ok)

	suite.Require().NoError(fs.Initialize())

	second, ok := fs.SuperBlock()
	suite.Require().True(ok)

	suite.Assert().Equal(first, second)
	suite.Assert().EqualValues(4096, fs.BlockSize())
	suite.Assert().EqualValues(1, fs.NumBlockGroups())
	suite.Assert().EqualValues(256, fs.NumBlocks())
}

func (suite *FileSystemSuite) TestUninitialized() {
	img := buildImage(suite.T(), testSuperBlock(), nil)

	fs := suite.newFileSystem(img, 512)

	// accessors are tolerant before initialization...
	suite.Assert().Zero(fs.BlockSize())
	suite.Assert().Zero(fs.NumBlockGroups())
	suite.Assert().Zero(fs.NumBlocks())

	_, ok := fs.SuperBlock()
	suite.Assert().False(ok)

	// ...but operations are not
	_, err := fs.GroupDescriptors()
	suite.Assert().ErrorIs(err, ext2fs.ErrNotInitialized)
}

func (suite *FileSystemSuite) TestInitializeNoFilesystem() {
	fs := suite.newFileSystem(make([]byte, testImageSize), 512)

	err := fs.Initialize()
	suite.Require().ErrorIs(err, ext2fs.ErrNoFilesystemFound)

	suite.Assert().Zero(fs.BlockSize())
	suite.Assert().Zero(fs.NumBlockGroups())
	suite.Assert().Zero(fs.NumBlocks())
}

func (suite *FileSystemSuite) TestInitializeCorruptedGeometry() {
	broken := testSuperBlock()
	broken.BlocksPerGroup = 0

	img := buildImage(suite.T(), broken, nil)

	fs := suite.newFileSystem(img, 512)

	err := fs.Initialize()
	suite.Require().ErrorIs(err, ext2fs.ErrCorruptedFilesystem)

	suite.Assert().Zero(fs.BlockSize())
	suite.Assert().Zero(fs.NumBlockGroups())

	_, ok := fs.SuperBlock()
	suite.Assert().False(ok)
}

func (suite *FileSystemSuite) TestGroupDescriptors() {
	expected := []ext2fs.GroupDescriptor{
		{
			BlockBitmap:     3,
			InodeBitmap:     4,
			InodeTable:      5,
			FreeBlocksCount: 200,
			FreeInodesCount: 53,
			UsedDirsCount:   2,
		},
	}

	img := buildImage(suite.T(), testSuperBlock(), expected)

	for _, devBlockSize := range []uint64{512, 4096} {
		suite.Run(fmt.Sprintf("%d", devBlockSize), func() {
			fs := suite.newFileSystem(img, devBlockSize)

			suite.Require().NoError(fs.Initialize())

			gds, err := fs.GroupDescriptors()
			suite.Require().NoError(err)
			suite.Assert().Equal(expected, gds)

			// second call is served from the cache
			cached, err := fs.GroupDescriptors()
			suite.Require().NoError(err)
			suite.Assert().Equal(gds, cached)
		})
	}
}

func TestFileSystemSuite(t *testing.T) {
	suite.Run(t, new(FileSystemSuite))
}
