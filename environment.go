// Copyright 2026 Joseph Cumines

package gojatestenv

import (
	"fmt"

	"github.com/dop251/goja"
)

// deriveProgram builds a class extending the resolved base class, adding no
// members of its own. Compiled once, evaluated per runtime.
var deriveProgram = goja.MustCompile(
	"goja-testenv/derive.js",
	`(function (Base) { return class extends Base {}; })`,
	true,
)

// Environment is the artifact produced by [Shield.Wrap]: a class derived from
// the base environment class, plus the means to instantiate it.
type Environment struct {
	runtime   *goja.Runtime
	class     *goja.Object
	construct goja.Constructor
	base      goja.Value
}

func newEnvironment(runtime *goja.Runtime, exports goja.Value, exportName string) (*Environment, error) {
	if exports == nil {
		return nil, fmt.Errorf("module yielded no exports")
	}
	base := resolveBaseClass(exports, exportName)

	factoryValue, err := runtime.RunProgram(deriveProgram)
	if err != nil {
		return nil, fmt.Errorf("evaluate class factory: %w", err)
	}
	factory, ok := goja.AssertFunction(factoryValue)
	if !ok {
		return nil, fmt.Errorf("class factory is not callable")
	}

	classValue, err := factory(goja.Undefined(), base)
	if err != nil {
		return nil, fmt.Errorf("derive environment class: %w", err)
	}
	class, ok := classValue.(*goja.Object)
	if !ok {
		return nil, fmt.Errorf("derived environment class is not an object")
	}
	construct, ok := goja.AssertConstructor(class)
	if !ok {
		return nil, fmt.Errorf("derived environment class is not constructible")
	}

	return &Environment{
		runtime:   runtime,
		class:     class,
		construct: construct,
		base:      base,
	}, nil
}

// resolveBaseClass applies the two-variant module shape rule: prefer the
// named export when it is present and neither null nor undefined, otherwise
// treat the module value itself as the class.
func resolveBaseClass(exports goja.Value, exportName string) goja.Value {
	if exportName != "" {
		if obj, ok := exports.(*goja.Object); ok {
			if v := obj.Get(exportName); v != nil && !goja.IsUndefined(v) && !goja.IsNull(v) {
				return v
			}
		}
	}
	return exports
}

// Class returns the derived environment class.
func (e *Environment) Class() *goja.Object {
	return e.class
}

// Base returns the resolved base class the derived class extends.
func (e *Environment) Base() goja.Value {
	return e.base
}

// New constructs an instance of the environment class. A nil new.target
// makes the constructor itself the target.
func (e *Environment) New(args ...goja.Value) (*goja.Object, error) {
	return e.construct(nil, args...)
}
