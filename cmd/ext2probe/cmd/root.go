// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package cmd implements the ext2probe command line tool.
package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Javier-varez/Ext2FS/pkg/blockdevice"
	"github.com/Javier-varez/Ext2FS/pkg/ext2fs"
)

var (
	blockSizeArg   uint64
	descriptorsArg bool
	verboseArg     bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "ext2probe <image-or-device>",
	Short:         "Inspect ext2 filesystem metadata on a disk image or block device",
	Long:          ``,
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return probe(args[0])
	},
}

//nolint:gocyclo
func probe(path string) error {
	logger := zap.NewNop()

	if verboseArg {
		var err error

		logger, err = zap.NewDevelopment()
		if err != nil {
			return err
		}
	}

	devOpts := []blockdevice.Option{blockdevice.WithLogger(logger)}
	if blockSizeArg != 0 {
		devOpts = append(devOpts, blockdevice.WithBlockSize(blockSizeArg))
	}

	dev, err := blockdevice.NewFileDevice(path, devOpts...)
	if err != nil {
		return err
	}

	defer dev.Close() //nolint:errcheck

	fs := ext2fs.New(dev, ext2fs.WithLogger(logger))

	if err = fs.Initialize(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	sb, _ := fs.SuperBlock()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)

	fmt.Fprintf(w, "filesystem size:\t%s (%d blocks of %s)\n",
		humanize.IBytes(sb.FilesystemSize()), fs.NumBlocks(), humanize.IBytes(fs.BlockSize()))
	fmt.Fprintf(w, "block groups:\t%d (%d blocks per group)\n", fs.NumBlockGroups(), sb.BlocksPerGroup)
	fmt.Fprintf(w, "inodes:\t%d (%d free)\n", sb.InodesCount, sb.FreeInodesCount)
	fmt.Fprintf(w, "free blocks:\t%d\n", sb.FreeBlocksCount)
	fmt.Fprintf(w, "state:\t%s\n", fsState(sb.State))
	fmt.Fprintf(w, "revision:\t%d.%d\n", sb.RevLevel, sb.MinorRevLevel)

	if volumeUUID, uuidErr := sb.VolumeUUID(); uuidErr == nil {
		fmt.Fprintf(w, "uuid:\t%s\n", volumeUUID)
	}

	if label := sb.VolumeLabel(); label != nil {
		fmt.Fprintf(w, "label:\t%s\n", *label)
	}

	if lastMounted := sb.LastMountedPath(); lastMounted != nil {
		fmt.Fprintf(w, "last mounted on:\t%s\n", *lastMounted)
	}

	if sb.Mtime != 0 {
		fmt.Fprintf(w, "last mount time:\t%s\n", time.Unix(int64(sb.Mtime), 0).UTC().Format(time.RFC3339))
	}

	if err = w.Flush(); err != nil {
		return err
	}

	if descriptorsArg {
		return printDescriptors(fs)
	}

	return nil
}

func printDescriptors(fs *ext2fs.FileSystem) error {
	gds, err := fs.GroupDescriptors()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)

	fmt.Fprintln(w, "\nGROUP\tBLOCK BITMAP\tINODE BITMAP\tINODE TABLE\tFREE BLOCKS\tFREE INODES\tDIRS")

	for i, gd := range gds {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			i, gd.BlockBitmap, gd.InodeBitmap, gd.InodeTable,
			gd.FreeBlocksCount, gd.FreeInodesCount, gd.UsedDirsCount)
	}

	return w.Flush()
}

func fsState(state uint16) string {
	switch state {
	case 1:
		return "clean"
	case 2:
		return "errors detected"
	default:
		return fmt.Sprintf("unknown (%d)", state)
	}
}

// Execute runs the root command. This is called by main.main().
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
	}

	return err
}

func init() {
	rootCmd.Flags().Uint64VarP(&blockSizeArg, "block-size", "b", 0, "device block size in bytes (default: detected, or 512 for disk images)")
	rootCmd.Flags().BoolVarP(&descriptorsArg, "descriptors", "d", false, "also print the block group descriptor table")
	rootCmd.Flags().BoolVarP(&verboseArg, "verbose", "v", false, "enable debug logging")
}
