package gojatestenv

import (
	"strconv"
	"testing"

	"github.com/dop251/goja"
	noderequire "github.com/dop251/goja_nodejs/require"
	"github.com/joeycumines/goja-testenv/baseenv"
)

// descriptorsEqualProgram compares two property descriptors field-wise, with
// identity semantics for values and accessors.
var descriptorsEqualProgram = goja.MustCompile(
	"descriptors_equal.js",
	`(function (a, b) {
	if (a === undefined || b === undefined) {
		return a === b;
	}
	return a.get === b.get && a.set === b.set && a.value === b.value &&
		a.writable === b.writable && a.enumerable === b.enumerable &&
		a.configurable === b.configurable;
})`,
	true,
)

// emptyClassProgram yields a minimal constructible class, for probe modules.
var emptyClassProgram = goja.MustCompile("empty_class.js", `(class {})`, true)

func newTestRuntime(t *testing.T) (*goja.Runtime, *noderequire.Registry, *noderequire.RequireModule) {
	t.Helper()
	runtime := goja.New()
	registry := noderequire.NewRegistry()
	if err := baseenv.Register(registry); err != nil {
		t.Fatalf("Failed to register base environment: %v", err)
	}
	req := registry.Enable(runtime)
	return runtime, registry, req
}

// descriptorOf returns the own property descriptor of a global binding, or
// undefined when absent.
func descriptorOf(t *testing.T, runtime *goja.Runtime, name string) goja.Value {
	t.Helper()
	v, err := runtime.RunString(`Object.getOwnPropertyDescriptor(globalThis, ` + strconv.Quote(name) + `)`)
	if err != nil {
		t.Fatalf("Failed to read descriptor of %s: %v", name, err)
	}
	return v
}

func descriptorsEqual(t *testing.T, runtime *goja.Runtime, a, b goja.Value) bool {
	t.Helper()
	fnValue, err := runtime.RunProgram(descriptorsEqualProgram)
	if err != nil {
		t.Fatalf("Failed to evaluate descriptor comparison: %v", err)
	}
	fn, ok := goja.AssertFunction(fnValue)
	if !ok {
		t.Fatalf("Descriptor comparison is not a function")
	}
	result, err := fn(goja.Undefined(), a, b)
	if err != nil {
		t.Fatalf("Failed to compare descriptors: %v", err)
	}
	return result.ToBoolean()
}

// installThrowingAccessor defines name on the global as a configurable
// accessor whose getter throws, simulating the platform API the shield works
// around.
func installThrowingAccessor(t *testing.T, runtime *goja.Runtime, name string) {
	t.Helper()
	getter := runtime.ToValue(func(call goja.FunctionCall) goja.Value {
		panic(runtime.NewTypeError("%s is not available in this context", name))
	})
	if err := runtime.GlobalObject().DefineAccessorProperty(name, getter, nil, goja.FLAG_TRUE, goja.FLAG_TRUE); err != nil {
		t.Fatalf("Failed to install throwing accessor for %s: %v", name, err)
	}
}

// installConfigurableData defines name on the global as an ordinary
// configurable data property.
func installConfigurableData(t *testing.T, runtime *goja.Runtime, name, value string) {
	t.Helper()
	if err := runtime.GlobalObject().DefineDataProperty(name, runtime.ToValue(value), goja.FLAG_TRUE, goja.FLAG_TRUE, goja.FLAG_TRUE); err != nil {
		t.Fatalf("Failed to install data property for %s: %v", name, err)
	}
}

// installNonConfigurableData defines name on the global as a non-configurable
// data property, which the shield must never touch.
func installNonConfigurableData(t *testing.T, runtime *goja.Runtime, name, value string) {
	t.Helper()
	if err := runtime.GlobalObject().DefineDataProperty(name, runtime.ToValue(value), goja.FLAG_TRUE, goja.FLAG_FALSE, goja.FLAG_TRUE); err != nil {
		t.Fatalf("Failed to install non-configurable property for %s: %v", name, err)
	}
}

// registerProbeModule registers a native module that runs the given script at
// load time, recording its result, and exports a minimal class so the load
// still yields a usable base.
func registerProbeModule(t *testing.T, registry *noderequire.Registry, name, script string, observed *goja.Value) {
	t.Helper()
	registry.RegisterNativeModule(name, func(runtime *goja.Runtime, module *goja.Object) {
		v, err := runtime.RunString(script)
		if err != nil {
			panic(err)
		}
		*observed = v
		class, err := runtime.RunProgram(emptyClassProgram)
		if err != nil {
			panic(err)
		}
		if err := module.Set("exports", class); err != nil {
			panic(err)
		}
	})
}
