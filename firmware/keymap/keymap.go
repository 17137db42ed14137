// Package keymap holds the built-in keymap: three layers over the unified
// 4×12 matrix of both halves.
package keymap

import (
	kc "splitkb/firmware/keycode"
	"splitkb/firmware/layout"
)

const (
	Rows = 4
	Cols = 12

	// HoldTimeout is the hold-tap decision time in ticks (1ms).
	HoldTimeout = 200
)

// Custom payloads.
const (
	// Bootloader reboots the half into its USB bootloader on release.
	Bootloader uint8 = 1
)

var (
	k  = layout.K
	l  = layout.L
	__ = layout.Trans
	xx = layout.NoOp

	ht = func(hold, tap layout.Action) layout.Action {
		return layout.HT(hold, tap, HoldTimeout, layout.HoldOnOtherKeyPress)
	}

	raltEnter = ht(k(kc.RAlt), k(kc.Enter))
	laltDel   = ht(k(kc.LAlt), k(kc.Delete))
	l1Space   = ht(l(1), k(kc.Space))
	l2BSpace  = ht(l(2), k(kc.BSpace))
	boot      = layout.C(Bootloader)
)

// Default returns a fresh copy of the built-in keymap.
func Default() layout.Layers {
	return layout.Layers{
		{
			{k(kc.Escape), k(kc.Q), k(kc.W), k(kc.E), k(kc.R), k(kc.T), k(kc.Y), k(kc.U), k(kc.I), k(kc.O), k(kc.P), k(kc.LBracket)},
			{k(kc.Tab), k(kc.A), k(kc.S), k(kc.D), k(kc.F), k(kc.G), k(kc.H), k(kc.J), k(kc.K), k(kc.L), k(kc.SColon), k(kc.Quote)},
			{k(kc.LShift), k(kc.Z), k(kc.X), k(kc.C), k(kc.V), k(kc.B), k(kc.N), k(kc.M), k(kc.Comma), k(kc.Dot), k(kc.Slash), k(kc.RShift)},
			{xx, xx, xx, k(kc.LCtrl), laltDel, l2BSpace, l1Space, raltEnter, k(kc.LGui), xx, xx, xx},
		},
		{
			{k(kc.F11), k(kc.F1), k(kc.F2), k(kc.F3), k(kc.F4), k(kc.F5), k(kc.F6), k(kc.F7), k(kc.F8), k(kc.F9), k(kc.F10), k(kc.F12)},
			{__, k(kc.Kb1), k(kc.Kb2), k(kc.Kb3), k(kc.Kb4), k(kc.Kb5), k(kc.Kb6), k(kc.Kb7), k(kc.Kb8), k(kc.Kb9), k(kc.Kb0), __},
			{__, __, __, __, __, __, __, __, __, __, __, __},
			{__, __, __, __, __, __, __, __, __, __, __, __},
		},
		{
			{__, __, __, __, __, __, k(kc.PgUp), __, k(kc.Up), __, __, __},
			{__, __, __, __, __, __, k(kc.Home), k(kc.Left), k(kc.Down), k(kc.Right), k(kc.End), __},
			{__, __, __, __, __, __, k(kc.PgDown), k(kc.BSpace), k(kc.Delete), k(kc.Space), __, __},
			{boot, __, __, __, __, __, __, __, __, __, __, __},
		},
	}
}
