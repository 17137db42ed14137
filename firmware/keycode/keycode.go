package keycode

import (
	"fmt"
	"sort"
	"strings"
)

// aliases are alternative spellings accepted by Parse.
var aliases = map[string]Code{
	"esc":       Escape,
	"ent":       Enter,
	"return":    Enter,
	"bspc":      BSpace,
	"backspace": BSpace,
	"del":       Delete,
	"spc":       Space,
	"ctrl":      LCtrl,
	"shift":     LShift,
	"alt":       LAlt,
	"gui":       LGui,
	"ralt":      RAlt,
	"pgup":      PgUp,
	"pgdn":      PgDown,
	"semicolon": SColon,
	"lbrc":      LBracket,
	"rbrc":      RBracket,
	"1":         Kb1,
	"2":         Kb2,
	"3":         Kb3,
	"4":         Kb4,
	"5":         Kb5,
	"6":         Kb6,
	"7":         Kb7,
	"8":         Kb8,
	"9":         Kb9,
	"0":         Kb0,
}

var byName = func() map[string]Code {
	m := make(map[string]Code, len(names)+len(aliases))
	for c, n := range names {
		m[strings.ToLower(n)] = c
	}
	for n, c := range aliases {
		m[n] = c
	}
	return m
}()

// Parse returns the code for a key name. Matching ignores case.
func Parse(name string) (Code, error) {
	if c, ok := byName[strings.ToLower(name)]; ok {
		return c, nil
	}
	return No, fmt.Errorf("keycode: unknown key %q", name)
}

func (c Code) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return fmt.Sprintf("0x%02X", uint8(c))
}

// IsModifier reports whether c is one of the eight modifier keys.
func (c Code) IsModifier() bool { return c >= LCtrl && c <= RGui }

// ModifierBit returns the report modifier byte bit for c, or 0.
func (c Code) ModifierBit() uint8 {
	if !c.IsModifier() {
		return 0
	}
	return 1 << (c - LCtrl)
}

// Names returns every canonical key name, sorted by code.
func Names() []string {
	codes := make([]Code, 0, len(names))
	for c := range names {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = names[c]
	}
	return out
}
