// Copyright 2026 Joseph Cumines

package baseenv

import (
	"context"
	"fmt"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/console"
	"github.com/dop251/goja_nodejs/require"
	goeventloop "github.com/joeycumines/go-eventloop"
	"github.com/joeycumines/logiface"
)

// ModuleName is the default module path the base environment registers under.
const ModuleName = `testenv/base`

// classProgram builds the TestEnvironment class around Go-implemented hooks.
// Compiled once, evaluated per runtime at require time.
var classProgram = goja.MustCompile(
	"goja-testenv/baseenv/class.js",
	`(function (hooks) {
	return class TestEnvironment {
		constructor(options) {
			this.global = globalThis;
			this.state = hooks.newInstance(options === undefined ? null : options);
		}
		setup() {
			hooks.setup(this.state);
			return this;
		}
		teardown() {
			hooks.teardown(this.state);
		}
	};
})`,
	true,
)

// Register registers the base environment as a native module on the given
// registry, along with a console module forwarding to the configured logger.
//
// The registry must still be enabled on each runtime before the module can be
// required there.
func Register(registry *require.Registry, opts ...Option) error {
	if registry == nil {
		return fmt.Errorf("registry cannot be nil")
	}
	cfg, err := resolveEnvOptions(opts)
	if err != nil {
		return err
	}
	c := &config{envOptions: *cfg}
	registry.RegisterNativeModule(cfg.moduleName, c.load)
	registry.RegisterNativeModule(console.ModuleName, console.RequireWithPrinter(printer{logger: cfg.logger}))
	return nil
}

// config is the registered module's bound configuration.
type config struct {
	envOptions
}

// load is the require.ModuleLoader for the base environment module. Failures
// are thrown, surfacing as the error returned by require.
func (c *config) load(runtime *goja.Runtime, module *goja.Object) {
	class, err := c.buildClass(runtime)
	if err != nil {
		panic(runtime.NewGoError(err))
	}
	if c.bare {
		// The class is the module value itself, Node style.
		if err := module.Set("exports", class); err != nil {
			panic(runtime.NewGoError(err))
		}
		return
	}
	exports := module.Get("exports").ToObject(runtime)
	if err := exports.Set("TestEnvironment", class); err != nil {
		panic(runtime.NewGoError(err))
	}
}

// buildClass evaluates the class template, wiring its hooks to this config.
func (c *config) buildClass(runtime *goja.Runtime) (goja.Value, error) {
	factoryValue, err := runtime.RunProgram(classProgram)
	if err != nil {
		return nil, fmt.Errorf("evaluate class template: %w", err)
	}
	factory, ok := goja.AssertFunction(factoryValue)
	if !ok {
		return nil, fmt.Errorf("class template is not callable")
	}

	hooks := runtime.NewObject()
	if err := hooks.Set("newInstance", func(call goja.FunctionCall) goja.Value {
		return runtime.ToValue(c.newInstance(runtime))
	}); err != nil {
		return nil, err
	}
	if err := hooks.Set("setup", func(call goja.FunctionCall) goja.Value {
		if err := exportInstance(runtime, call.Argument(0)).setup(); err != nil {
			panic(runtime.NewGoError(err))
		}
		return goja.Undefined()
	}); err != nil {
		return nil, err
	}
	if err := hooks.Set("teardown", func(call goja.FunctionCall) goja.Value {
		exportInstance(runtime, call.Argument(0)).teardown()
		return goja.Undefined()
	}); err != nil {
		return nil, err
	}

	class, err := factory(goja.Undefined(), hooks)
	if err != nil {
		return nil, fmt.Errorf("build class: %w", err)
	}
	return class, nil
}

func exportInstance(runtime *goja.Runtime, v goja.Value) *instance {
	inst, ok := v.Export().(*instance)
	if !ok || inst == nil {
		panic(runtime.NewTypeError("not a base environment instance"))
	}
	return inst
}

// instance is the Go-side state backing one TestEnvironment instance.
type instance struct {
	runtime *goja.Runtime
	logger  *logiface.Logger[logiface.Event]
	loop    *goeventloop.Loop
	js      *goeventloop.JS
	ownLoop bool
	local   *Storage
	session *Storage
	bound   []string
}

func (c *config) newInstance(runtime *goja.Runtime) *instance {
	return &instance{
		runtime: runtime,
		logger:  c.logger,
		loop:    c.loop,
		local:   NewStorage(),
		session: NewStorage(),
	}
}

// setup binds storage, timer, and console globals on the runtime.
func (x *instance) setup() error {
	if x.bound != nil {
		return fmt.Errorf("environment already set up")
	}

	if x.loop == nil {
		loop, err := goeventloop.New()
		if err != nil {
			return fmt.Errorf("create event loop: %w", err)
		}
		x.loop = loop
		x.ownLoop = true
	}
	js, err := goeventloop.NewJS(x.loop)
	if err != nil {
		return fmt.Errorf("create JS adapter: %w", err)
	}
	x.js = js

	global := x.runtime.GlobalObject()
	bind := func(name string, value any) error {
		if err := global.Set(name, value); err != nil {
			return fmt.Errorf("bind %s: %w", name, err)
		}
		x.bound = append(x.bound, name)
		return nil
	}

	localObj, err := x.local.bind(x.runtime)
	if err != nil {
		return fmt.Errorf("bind localStorage: %w", err)
	}
	if err := bind("localStorage", localObj); err != nil {
		return err
	}
	sessionObj, err := x.session.bind(x.runtime)
	if err != nil {
		return fmt.Errorf("bind sessionStorage: %w", err)
	}
	if err := bind("sessionStorage", sessionObj); err != nil {
		return err
	}

	for _, timer := range []struct {
		name string
		fn   func(goja.FunctionCall) goja.Value
	}{
		{"setTimeout", x.setTimeout},
		{"clearTimeout", x.clearTimeout},
		{"setInterval", x.setInterval},
		{"clearInterval", x.clearInterval},
		{"queueMicrotask", x.queueMicrotask},
	} {
		if err := bind(timer.name, timer.fn); err != nil {
			return err
		}
	}

	console.Enable(x.runtime)
	x.bound = append(x.bound, "console")

	return nil
}

// teardown removes the bound globals and shuts down an owned loop. Safe to
// call without a prior setup, and more than once.
func (x *instance) teardown() {
	global := x.runtime.GlobalObject()
	for _, name := range x.bound {
		if err := global.Delete(name); err != nil {
			x.logger.Debug().
				Err(err).
				Str("property", name).
				Log("could not remove global binding")
		}
	}
	x.bound = nil
	x.js = nil
	if x.ownLoop && x.loop != nil {
		if err := x.loop.Shutdown(context.Background()); err != nil {
			x.logger.Debug().
				Err(err).
				Log("loop shutdown failed")
		}
		x.loop = nil
		x.ownLoop = false
	}
}
