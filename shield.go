// Copyright 2026 Joseph Cumines

package gojatestenv

import (
	"fmt"

	"github.com/dop251/goja"
	"github.com/joeycumines/logiface"
)

// shieldedGlobals names the global bindings masked for the duration of the
// base module load. Order is significant: descriptors are restored in this
// order.
var shieldedGlobals = [...]string{"localStorage", "sessionStorage"}

// Requirer loads a module by path and returns its exports.
//
// *require.RequireModule from [github.com/dop251/goja_nodejs/require]
// satisfies this interface.
type Requirer interface {
	Require(path string) (goja.Value, error)
}

// Shield masks the storage globals of a goja runtime while a base
// test-environment module is loaded, restoring their exact property
// descriptors afterwards.
//
// A Shield is reusable but not safe for concurrent use, per the runtime it
// wraps. Running [Shield.Wrap] a second time simply reads the (restored)
// descriptors again.
type Shield struct {
	runtime    *goja.Runtime
	requirer   Requirer
	logger     *logiface.Logger[logiface.Event]
	baseExport string

	// Object intrinsics, captured once so masking and restoration observe the
	// same functions even if scripts later replace them.
	getOwnPropertyDescriptor goja.Callable
	defineProperty           goja.Callable
}

// savedProperty pairs a masked global with the descriptor it had before
// masking. The raw descriptor object is retained, rather than a decoded copy,
// so restoration via Object.defineProperty is an exact round trip.
type savedProperty struct {
	name       string
	descriptor goja.Value
}

// New creates a Shield for the given runtime and module loader.
func New(runtime *goja.Runtime, requirer Requirer, opts ...Option) (*Shield, error) {
	if runtime == nil {
		return nil, fmt.Errorf("runtime cannot be nil")
	}
	if requirer == nil {
		return nil, fmt.Errorf("requirer cannot be nil")
	}

	cfg, err := resolveShieldOptions(opts)
	if err != nil {
		return nil, err
	}

	s := &Shield{
		runtime:    runtime,
		requirer:   requirer,
		logger:     cfg.logger,
		baseExport: cfg.baseExport,
	}

	objectValue := runtime.Get("Object")
	if objectValue == nil || goja.IsUndefined(objectValue) || goja.IsNull(objectValue) {
		return nil, fmt.Errorf("runtime is missing the Object intrinsic")
	}
	object := objectValue.ToObject(runtime)
	var ok bool
	if s.getOwnPropertyDescriptor, ok = goja.AssertFunction(object.Get("getOwnPropertyDescriptor")); !ok {
		return nil, fmt.Errorf("runtime is missing Object.getOwnPropertyDescriptor")
	}
	if s.defineProperty, ok = goja.AssertFunction(object.Get("defineProperty")); !ok {
		return nil, fmt.Errorf("runtime is missing Object.defineProperty")
	}

	return s, nil
}

// Runtime returns the goja runtime.
func (s *Shield) Runtime() *goja.Runtime {
	return s.runtime
}

// Wrap loads the named base environment module with the storage globals
// masked, then returns an [Environment] whose class extends the class the
// module exported.
//
// The masked window covers only the module load: the saved descriptors are
// restored before Wrap returns, on the failure path included. A load failure
// is returned unmodified, since there is no fallback base class.
func (s *Shield) Wrap(moduleName string) (*Environment, error) {
	exports, err := s.requireShielded(moduleName)
	if err != nil {
		return nil, err
	}
	return newEnvironment(s.runtime, exports, s.baseExport)
}

// requireShielded performs the mask / load / restore sequence. Restoration
// is deferred so it runs even when the load throws.
func (s *Shield) requireShielded(moduleName string) (goja.Value, error) {
	saved := s.mask()
	defer s.restore(saved)
	return s.requirer.Require(moduleName)
}

// mask removes each shielded global that has a configurable descriptor,
// recording the original descriptor for restoration. Absent and
// non-configurable bindings are skipped entirely. Failure to remove a binding
// downgrades it to a configurable, writable, undefined-valued data property
// preserving the original enumerability; failure to do even that leaves the
// binding as it was, with the save entry kept so restoration still runs.
func (s *Shield) mask() []savedProperty {
	global := s.runtime.GlobalObject()
	var saved []savedProperty
	for _, name := range shieldedGlobals {
		descValue, err := s.getOwnPropertyDescriptor(goja.Undefined(), global, s.runtime.ToValue(name))
		if err != nil || descValue == nil || goja.IsUndefined(descValue) {
			continue
		}
		desc, ok := descValue.(*goja.Object)
		if !ok || !desc.Get("configurable").ToBoolean() {
			continue
		}

		saved = append(saved, savedProperty{name: name, descriptor: descValue})

		if err := global.Delete(name); err == nil {
			continue
		}
		enumerable := boolFlag(desc.Get("enumerable").ToBoolean())
		if err := global.DefineDataProperty(name, goja.Undefined(), goja.FLAG_TRUE, goja.FLAG_TRUE, enumerable); err != nil {
			s.logger.Debug().
				Err(err).
				Str("property", name).
				Log("could not neutralise global binding")
		}
	}
	return saved
}

// restore redefines each saved descriptor, in recorded order. Per-property
// failures are discarded: one binding made non-configurable in the interim
// must not block restoration of the rest.
func (s *Shield) restore(saved []savedProperty) {
	global := s.runtime.GlobalObject()
	for _, p := range saved {
		if _, err := s.defineProperty(goja.Undefined(), global, s.runtime.ToValue(p.name), p.descriptor); err != nil {
			s.logger.Debug().
				Err(err).
				Str("property", p.name).
				Log("could not restore global descriptor")
		}
	}
}

func boolFlag(b bool) goja.Flag {
	if b {
		return goja.FLAG_TRUE
	}
	return goja.FLAG_FALSE
}
