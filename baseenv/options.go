// Copyright 2026 Joseph Cumines

package baseenv

import (
	goeventloop "github.com/joeycumines/go-eventloop"
	"github.com/joeycumines/logiface"
)

// envOptions holds configuration options for module registration.
type envOptions struct {
	logger     *logiface.Logger[logiface.Event]
	loop       *goeventloop.Loop
	moduleName string
	bare       bool
}

// Option configures the registered base environment module.
type Option interface {
	applyEnv(*envOptions) error
}

// envOptionImpl implements Option.
type envOptionImpl struct {
	applyEnvFunc func(*envOptions) error
}

func (o *envOptionImpl) applyEnv(opts *envOptions) error {
	return o.applyEnvFunc(opts)
}

// WithLogger sets the logger receiving console output and diagnostic events.
// Default is nil, discarding both.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &envOptionImpl{func(opts *envOptions) error {
		opts.logger = logger
		return nil
	}}
}

// WithLoop supplies a shared event loop for timer bindings. The caller keeps
// ownership: teardown() will not shut it down. Default is a per-instance loop
// created during setup() and shut down during teardown().
func WithLoop(loop *goeventloop.Loop) Option {
	return &envOptionImpl{func(opts *envOptions) error {
		opts.loop = loop
		return nil
	}}
}

// WithModuleName overrides the module path registered. Default [ModuleName].
func WithModuleName(name string) Option {
	return &envOptionImpl{func(opts *envOptions) error {
		opts.moduleName = name
		return nil
	}}
}

// WithBareExports registers the class as the module exports value itself,
// instead of under the TestEnvironment named export.
func WithBareExports(bare bool) Option {
	return &envOptionImpl{func(opts *envOptions) error {
		opts.bare = bare
		return nil
	}}
}

// resolveEnvOptions applies Option instances to envOptions.
func resolveEnvOptions(opts []Option) (*envOptions, error) {
	cfg := &envOptions{
		moduleName: ModuleName, // default
	}
	for _, opt := range opts {
		if opt == nil {
			continue // Skip nil options gracefully
		}
		if err := opt.applyEnv(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
