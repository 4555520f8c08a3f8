// Package uictl describes the small controls a UI reads and drives, so
// screens never touch the hardware behind them.
package uictl

import "golang.org/x/exp/constraints"

type Number interface {
	constraints.Integer | constraints.Float
}

// Knob is an on/off control.
type Knob interface {
	Read() bool
	On()
	Off()
	Toggle()
}

// Dial reads a single value.
type Dial[N Number] interface {
	Read() N
}

// CappedDial is a Dial with an upper bound. Cap returns the current value
// and the bound; a bound of zero means none.
type CappedDial[N Number] interface {
	Dial[N]
	Cap() (num, max N)
}

// Levels reads a series of recent samples, oldest first.
type Levels[N Number] interface {
	Read() []N
}
