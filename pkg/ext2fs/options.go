// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package ext2fs

import "go.uber.org/zap"

// Options is the functional options struct.
type Options struct {
	Logger *zap.Logger
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
