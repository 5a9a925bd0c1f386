//go:build linux || darwin

package gojatestenv_test

import (
	"os"

	"github.com/dop251/goja"
	noderequire "github.com/dop251/goja_nodejs/require"
	gojatestenv "github.com/joeycumines/goja-testenv"
	"github.com/joeycumines/goja-testenv/baseenv"
	"github.com/joeycumines/stumpy"
)

// Example wraps the bundled base environment, constructs an instance, and
// exercises the storage and console bindings it installs.
func Example() {
	runtime := goja.New()
	registry := noderequire.NewRegistry()

	logger := stumpy.L.New(stumpy.L.WithStumpy(
		stumpy.WithWriter(os.Stdout),
		stumpy.WithTimeField(``), // disable time field (consistent example output)
	)).Logger()
	if err := baseenv.Register(registry, baseenv.WithLogger(logger)); err != nil {
		panic(err)
	}
	req := registry.Enable(runtime)

	shield, err := gojatestenv.New(runtime, req)
	if err != nil {
		panic(err)
	}
	env, err := shield.Wrap(baseenv.ModuleName)
	if err != nil {
		panic(err)
	}

	instance, err := env.New()
	if err != nil {
		panic(err)
	}
	setup, _ := goja.AssertFunction(instance.Get("setup"))
	if _, err := setup(instance); err != nil {
		panic(err)
	}
	defer func() {
		teardown, _ := goja.AssertFunction(instance.Get("teardown"))
		if _, err := teardown(instance); err != nil {
			panic(err)
		}
	}()

	if _, err := runtime.RunString(`
		localStorage.setItem("greeting", "hello");
		console.log(localStorage.getItem("greeting"));
	`); err != nil {
		panic(err)
	}

	//output:
	//{"lvl":"info","source":"console","msg":"hello"}
}
