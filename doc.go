// Package gojatestenv provides a test-environment wrapper for the [goja]
// JavaScript runtime that shields a pair of global storage accessors while an
// external base environment module is loaded.
//
// # Overview
//
// Some platform builds install localStorage and sessionStorage on the global
// object as accessors that throw unless additional configuration is supplied.
// Loading a base test-environment module while those accessors are present
// fails before the environment can patch its own globals. The [Shield] works
// around this: it snapshots the property descriptors of the two storage
// globals, removes the bindings (or, failing that, overwrites them with a
// harmless undefined-valued data property), loads the base environment module
// through a require-style loader, restores the saved descriptors exactly, and
// finally derives an environment class from whatever the module exported.
//
// The shielded window covers only the module load. Restoration runs on all
// paths, including when the load fails, so the globals are always back in
// their original state by the time [Shield.Wrap] returns. Properties that are
// absent or non-configurable are never touched.
//
// # Usage
//
//	rt := goja.New()
//	registry := require.NewRegistry()
//	baseenv.Register(registry)
//	req := registry.Enable(rt)
//
//	shield, _ := gojatestenv.New(rt, req)
//	env, err := shield.Wrap(baseenv.ModuleName)
//	if err != nil {
//	    // the base module failed to load; globals are already restored
//	}
//	instance, _ := env.New()
//
// The derived class adds no members of its own; an instance behaves
// identically to an instance of the base class.
//
// [goja]: github.com/dop251/goja
package gojatestenv
