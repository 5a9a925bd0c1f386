// Copyright 2026 Joseph Cumines

package baseenv

import (
	"github.com/dop251/goja_nodejs/console"
	"github.com/joeycumines/logiface"
)

// printer forwards console output to a logiface logger. With a nil logger it
// discards everything, which is the default for a test environment.
type printer struct {
	logger *logiface.Logger[logiface.Event]
}

var _ console.Printer = printer{}

func (p printer) Log(s string) {
	p.logger.Info().
		Str("source", "console").
		Log(s)
}

func (p printer) Warn(s string) {
	p.logger.Warning().
		Str("source", "console").
		Log(s)
}

func (p printer) Error(s string) {
	p.logger.Err().
		Str("source", "console").
		Log(s)
}
