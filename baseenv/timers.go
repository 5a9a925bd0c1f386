// Copyright 2026 Joseph Cumines

package baseenv

import (
	"github.com/dop251/goja"
)

// Timer bindings delegate to the go-eventloop JS adapter. Callbacks execute
// on the event loop thread, which must also be the only thread touching the
// goja runtime.

func (x *instance) setTimeout(call goja.FunctionCall) goja.Value {
	fnCallable, ok := goja.AssertFunction(call.Argument(0))
	if !ok {
		panic(x.runtime.NewTypeError("setTimeout requires a function as first argument"))
	}

	delayMs := int(call.Argument(1).ToInteger())
	if delayMs < 0 {
		panic(x.runtime.NewTypeError("delay cannot be negative"))
	}

	id, err := x.js.SetTimeout(func() {
		_, _ = fnCallable(goja.Undefined())
	}, delayMs)
	if err != nil {
		panic(x.runtime.NewGoError(err))
	}

	return x.runtime.ToValue(id)
}

func (x *instance) clearTimeout(call goja.FunctionCall) goja.Value {
	id := uint64(call.Argument(0).ToInteger())
	_ = x.js.ClearTimeout(id) // Silently ignore if timer not found (matches browser behavior)
	return goja.Undefined()
}

func (x *instance) setInterval(call goja.FunctionCall) goja.Value {
	fnCallable, ok := goja.AssertFunction(call.Argument(0))
	if !ok {
		panic(x.runtime.NewTypeError("setInterval requires a function as first argument"))
	}

	delayMs := int(call.Argument(1).ToInteger())
	if delayMs < 0 {
		panic(x.runtime.NewTypeError("delay cannot be negative"))
	}

	id, err := x.js.SetInterval(func() {
		_, _ = fnCallable(goja.Undefined())
	}, delayMs)
	if err != nil {
		panic(x.runtime.NewGoError(err))
	}

	return x.runtime.ToValue(id)
}

func (x *instance) clearInterval(call goja.FunctionCall) goja.Value {
	id := uint64(call.Argument(0).ToInteger())
	_ = x.js.ClearInterval(id) // Silently ignore if timer not found (matches browser behavior)
	return goja.Undefined()
}

func (x *instance) queueMicrotask(call goja.FunctionCall) goja.Value {
	fnCallable, ok := goja.AssertFunction(call.Argument(0))
	if !ok {
		panic(x.runtime.NewTypeError("queueMicrotask requires a function as first argument"))
	}

	if err := x.js.QueueMicrotask(func() {
		_, _ = fnCallable(goja.Undefined())
	}); err != nil {
		panic(x.runtime.NewGoError(err))
	}

	return goja.Undefined()
}
