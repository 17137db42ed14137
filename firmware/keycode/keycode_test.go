package keycode

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Code
	}{
		{"A", A},
		{"a", A},
		{"Esc", Escape},
		{"Escape", Escape},
		{"1", Kb1},
		{"kb0", Kb0},
		{"LShift", LShift},
		{"pgdn", PgDown},
		{"F12", F12},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := Parse("Hyper"); err == nil {
		t.Fatalf("Parse(Hyper): want error")
	}
}

func TestModifierBits(t *testing.T) {
	tests := []struct {
		c    Code
		want uint8
	}{
		{LCtrl, 0x01},
		{LShift, 0x02},
		{LAlt, 0x04},
		{LGui, 0x08},
		{RCtrl, 0x10},
		{RShift, 0x20},
		{RAlt, 0x40},
		{RGui, 0x80},
		{A, 0},
	}
	for _, tt := range tests {
		if got := tt.c.ModifierBit(); got != tt.want {
			t.Fatalf("%v.ModifierBit() = %#x, want %#x", tt.c, got, tt.want)
		}
	}
}

func TestNamesRoundTrip(t *testing.T) {
	for _, n := range Names() {
		c, err := Parse(n)
		if err != nil {
			t.Fatalf("Parse(%q): %v", n, err)
		}
		if c.String() != n {
			t.Fatalf("Parse(%q).String() = %q", n, c.String())
		}
	}
	if s := Code(0xA5).String(); s != "0xA5" {
		t.Fatalf("String() = %q, want 0xA5", s)
	}
}
