package gameboy

import (
	"io"
	"os"

	"github.com/thelolagemann/dmgcore/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

// Debug logs every instruction executed. Unless a logger is provided
// with WithLogger, the trace is written to stderr.
func Debug() Opt {
	return func(gb *GameBoy) {
		gb.debug = true
		if gb.Logger == nil {
			gb.Logger = log.NewDebug(os.Stderr)
		}
	}
}

// WithLogger sets the logger used by every component.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithBreakpoint stops Run when the PC reaches pc.
func WithBreakpoint(pc uint16) Opt {
	return func(gb *GameBoy) {
		gb.breakpoints = append(gb.breakpoints, pc)
	}
}

// WithSerialOutput writes every byte sent over the serial port to w.
func WithSerialOutput(w io.Writer) Opt {
	return func(gb *GameBoy) {
		gb.serialOutput = w
	}
}
