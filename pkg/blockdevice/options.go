// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package blockdevice

import "go.uber.org/zap"

// Options is the functional options struct.
type Options struct {
	Logger    *zap.Logger
	BlockSize uint64
	ReadWrite bool
}

// WithBlockSize overrides the detected device block size.
func WithBlockSize(size uint64) Option {
	return func(args *Options) {
		args.BlockSize = size
	}
}

// WithReadWrite opens the device for writing as well as reading.
func WithReadWrite() Option {
	return func(args *Options) {
		args.ReadWrite = true
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(args *Options) {
		args.Logger = logger
	}
}

// Option is the functional option func.
type Option func(*Options)

// NewDefaultOptions initializes a Options struct with default values.
func NewDefaultOptions(setters ...Option) *Options {
	opts := &Options{
		Logger: zap.NewNop(),
	}

	for _, setter := range setters {
		setter(opts)
	}

	return opts
}
