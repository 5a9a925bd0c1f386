// Package baseenv implements a base test environment for the [goja] runtime,
// registered as a require-able native module whose exports carry a
// TestEnvironment class.
//
// An instance of the class binds localStorage, sessionStorage, timer globals,
// and console on the runtime's global object during setup(), and removes them
// again during teardown(). Timers delegate to a
// [github.com/joeycumines/go-eventloop] loop; storage is in-memory and
// insertion-ordered; console output is forwarded to an optional
// [github.com/joeycumines/logiface] logger.
//
// The package exists to make the module contract consumed by the root package
// concrete: the shield there loads a module like this one by name and derives
// its environment class from the exports.
//
// [goja]: github.com/dop251/goja
package baseenv
