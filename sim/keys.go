//go:build !tinygo && cgo

package sim

import (
	"github.com/hajimehoshi/ebiten/v2"

	"splitkb/firmware/event"
)

// hostKeys maps the host keyboard onto the unified 4×12 matrix.
var hostKeys = map[ebiten.Key]event.Coordinate{
	ebiten.KeyEscape:      {Row: 0, Col: 0},
	ebiten.KeyQ:           {Row: 0, Col: 1},
	ebiten.KeyW:           {Row: 0, Col: 2},
	ebiten.KeyE:           {Row: 0, Col: 3},
	ebiten.KeyR:           {Row: 0, Col: 4},
	ebiten.KeyT:           {Row: 0, Col: 5},
	ebiten.KeyY:           {Row: 0, Col: 6},
	ebiten.KeyU:           {Row: 0, Col: 7},
	ebiten.KeyI:           {Row: 0, Col: 8},
	ebiten.KeyO:           {Row: 0, Col: 9},
	ebiten.KeyP:           {Row: 0, Col: 10},
	ebiten.KeyBracketLeft: {Row: 0, Col: 11},

	ebiten.KeyTab:       {Row: 1, Col: 0},
	ebiten.KeyA:         {Row: 1, Col: 1},
	ebiten.KeyS:         {Row: 1, Col: 2},
	ebiten.KeyD:         {Row: 1, Col: 3},
	ebiten.KeyF:         {Row: 1, Col: 4},
	ebiten.KeyG:         {Row: 1, Col: 5},
	ebiten.KeyH:         {Row: 1, Col: 6},
	ebiten.KeyJ:         {Row: 1, Col: 7},
	ebiten.KeyK:         {Row: 1, Col: 8},
	ebiten.KeyL:         {Row: 1, Col: 9},
	ebiten.KeySemicolon: {Row: 1, Col: 10},
	ebiten.KeyQuote:     {Row: 1, Col: 11},

	ebiten.KeyShiftLeft:  {Row: 2, Col: 0},
	ebiten.KeyZ:          {Row: 2, Col: 1},
	ebiten.KeyX:          {Row: 2, Col: 2},
	ebiten.KeyC:          {Row: 2, Col: 3},
	ebiten.KeyV:          {Row: 2, Col: 4},
	ebiten.KeyB:          {Row: 2, Col: 5},
	ebiten.KeyN:          {Row: 2, Col: 6},
	ebiten.KeyM:          {Row: 2, Col: 7},
	ebiten.KeyComma:      {Row: 2, Col: 8},
	ebiten.KeyPeriod:     {Row: 2, Col: 9},
	ebiten.KeySlash:      {Row: 2, Col: 10},
	ebiten.KeyShiftRight: {Row: 2, Col: 11},

	ebiten.KeyF2:          {Row: 3, Col: 0},
	ebiten.KeyControlLeft: {Row: 3, Col: 3},
	ebiten.KeyAltLeft:     {Row: 3, Col: 4},
	ebiten.KeyBackspace:   {Row: 3, Col: 5},
	ebiten.KeySpace:       {Row: 3, Col: 6},
	ebiten.KeyEnter:       {Row: 3, Col: 7},
	ebiten.KeyMetaLeft:    {Row: 3, Col: 8},
}

// keyboard tracks host key state and forwards changes to the bench switches.
type keyboard struct {
	down map[ebiten.Key]bool
}

func newKeyboard() *keyboard {
	return &keyboard{down: make(map[ebiten.Key]bool, len(hostKeys))}
}

func (k *keyboard) poll(b *Bench) {
	for key, c := range hostKeys {
		pressed := ebiten.IsKeyPressed(key)
		if pressed == k.down[key] {
			continue
		}
		k.down[key] = pressed
		b.SetUnified(c, pressed)
	}
}
