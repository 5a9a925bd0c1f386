// Copyright 2026 Joseph Cumines

package gojatestenv

import (
	"github.com/joeycumines/logiface"
)

// DefaultBaseExport is the named export consulted on the loaded module before
// falling back to the module value itself.
const DefaultBaseExport = `TestEnvironment`

// shieldOptions holds configuration options for Shield creation.
type shieldOptions struct {
	logger     *logiface.Logger[logiface.Event]
	baseExport string
}

// Option configures a Shield instance.
type Option interface {
	applyShield(*shieldOptions) error
}

// optionImpl implements Option.
type optionImpl struct {
	applyShieldFunc func(*shieldOptions) error
}

func (o *optionImpl) applyShield(opts *shieldOptions) error {
	return o.applyShieldFunc(opts)
}

// WithLogger sets a diagnostic logger, receiving debug-level events for the
// masking and restoration failures that are otherwise silently discarded.
// A nil logger (the default) keeps the zero-error-surface behavior.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &optionImpl{func(opts *shieldOptions) error {
		opts.logger = logger
		return nil
	}}
}

// WithBaseExport sets the named export consulted when resolving the base
// class from the loaded module. An empty name disables the named lookup, so
// the module value itself is always used. Default is [DefaultBaseExport].
func WithBaseExport(name string) Option {
	return &optionImpl{func(opts *shieldOptions) error {
		opts.baseExport = name
		return nil
	}}
}

// resolveShieldOptions applies Option instances to shieldOptions.
func resolveShieldOptions(opts []Option) (*shieldOptions, error) {
	cfg := &shieldOptions{
		baseExport: DefaultBaseExport, // default
	}
	for _, opt := range opts {
		if opt == nil {
			continue // Skip nil options gracefully
		}
		if err := opt.applyShield(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
