// Package keycode lists the USB HID keyboard usage IDs the keymap can emit.
package keycode

// Code is a HID keyboard/keypad page usage ID.
type Code uint8

const (
	No          Code = 0x00
	A           Code = 0x04
	B           Code = 0x05
	C           Code = 0x06
	D           Code = 0x07
	E           Code = 0x08
	F           Code = 0x09
	G           Code = 0x0A
	H           Code = 0x0B
	I           Code = 0x0C
	J           Code = 0x0D
	K           Code = 0x0E
	L           Code = 0x0F
	M           Code = 0x10
	N           Code = 0x11
	O           Code = 0x12
	P           Code = 0x13
	Q           Code = 0x14
	R           Code = 0x15
	S           Code = 0x16
	T           Code = 0x17
	U           Code = 0x18
	V           Code = 0x19
	W           Code = 0x1A
	X           Code = 0x1B
	Y           Code = 0x1C
	Z           Code = 0x1D
	Kb1         Code = 0x1E
	Kb2         Code = 0x1F
	Kb3         Code = 0x20
	Kb4         Code = 0x21
	Kb5         Code = 0x22
	Kb6         Code = 0x23
	Kb7         Code = 0x24
	Kb8         Code = 0x25
	Kb9         Code = 0x26
	Kb0         Code = 0x27
	Enter       Code = 0x28
	Escape      Code = 0x29
	BSpace      Code = 0x2A
	Tab         Code = 0x2B
	Space       Code = 0x2C
	Minus       Code = 0x2D
	Equal       Code = 0x2E
	LBracket    Code = 0x2F
	RBracket    Code = 0x30
	Bslash      Code = 0x31
	NonUsHash   Code = 0x32
	SColon      Code = 0x33
	Quote       Code = 0x34
	Grave       Code = 0x35
	Comma       Code = 0x36
	Dot         Code = 0x37
	Slash       Code = 0x38
	CapsLock    Code = 0x39
	F1          Code = 0x3A
	F2          Code = 0x3B
	F3          Code = 0x3C
	F4          Code = 0x3D
	F5          Code = 0x3E
	F6          Code = 0x3F
	F7          Code = 0x40
	F8          Code = 0x41
	F9          Code = 0x42
	F10         Code = 0x43
	F11         Code = 0x44
	F12         Code = 0x45
	PScreen     Code = 0x46
	ScrollLock  Code = 0x47
	Pause       Code = 0x48
	Insert      Code = 0x49
	Home        Code = 0x4A
	PgUp        Code = 0x4B
	Delete      Code = 0x4C
	End         Code = 0x4D
	PgDown      Code = 0x4E
	Right       Code = 0x4F
	Left        Code = 0x50
	Down        Code = 0x51
	Up          Code = 0x52
	NumLock     Code = 0x53
	KpSlash     Code = 0x54
	KpAsterisk  Code = 0x55
	KpMinus     Code = 0x56
	KpPlus      Code = 0x57
	KpEnter     Code = 0x58
	Kp1         Code = 0x59
	Kp2         Code = 0x5A
	Kp3         Code = 0x5B
	Kp4         Code = 0x5C
	Kp5         Code = 0x5D
	Kp6         Code = 0x5E
	Kp7         Code = 0x5F
	Kp8         Code = 0x60
	Kp9         Code = 0x61
	Kp0         Code = 0x62
	KpDot       Code = 0x63
	NonUsBslash Code = 0x64
	Application Code = 0x65
	Power       Code = 0x66
	KpEqual     Code = 0x67
	F13         Code = 0x68
	F14         Code = 0x69
	F15         Code = 0x6A
	F16         Code = 0x6B
	F17         Code = 0x6C
	F18         Code = 0x6D
	F19         Code = 0x6E
	F20         Code = 0x6F
	F21         Code = 0x70
	F22         Code = 0x71
	F23         Code = 0x72
	F24         Code = 0x73
	Mute        Code = 0x7F
	VolUp       Code = 0x80
	VolDown     Code = 0x81
	LCtrl       Code = 0xE0
	LShift      Code = 0xE1
	LAlt        Code = 0xE2
	LGui        Code = 0xE3
	RCtrl       Code = 0xE4
	RShift      Code = 0xE5
	RAlt        Code = 0xE6
	RGui        Code = 0xE7
)

var names = map[Code]string{
	A:           "A",
	B:           "B",
	C:           "C",
	D:           "D",
	E:           "E",
	F:           "F",
	G:           "G",
	H:           "H",
	I:           "I",
	J:           "J",
	K:           "K",
	L:           "L",
	M:           "M",
	N:           "N",
	O:           "O",
	P:           "P",
	Q:           "Q",
	R:           "R",
	S:           "S",
	T:           "T",
	U:           "U",
	V:           "V",
	W:           "W",
	X:           "X",
	Y:           "Y",
	Z:           "Z",
	Kb1:         "Kb1",
	Kb2:         "Kb2",
	Kb3:         "Kb3",
	Kb4:         "Kb4",
	Kb5:         "Kb5",
	Kb6:         "Kb6",
	Kb7:         "Kb7",
	Kb8:         "Kb8",
	Kb9:         "Kb9",
	Kb0:         "Kb0",
	Enter:       "Enter",
	Escape:      "Escape",
	BSpace:      "BSpace",
	Tab:         "Tab",
	Space:       "Space",
	Minus:       "Minus",
	Equal:       "Equal",
	LBracket:    "LBracket",
	RBracket:    "RBracket",
	Bslash:      "Bslash",
	NonUsHash:   "NonUsHash",
	SColon:      "SColon",
	Quote:       "Quote",
	Grave:       "Grave",
	Comma:       "Comma",
	Dot:         "Dot",
	Slash:       "Slash",
	CapsLock:    "CapsLock",
	F1:          "F1",
	F2:          "F2",
	F3:          "F3",
	F4:          "F4",
	F5:          "F5",
	F6:          "F6",
	F7:          "F7",
	F8:          "F8",
	F9:          "F9",
	F10:         "F10",
	F11:         "F11",
	F12:         "F12",
	PScreen:     "PScreen",
	ScrollLock:  "ScrollLock",
	Pause:       "Pause",
	Insert:      "Insert",
	Home:        "Home",
	PgUp:        "PgUp",
	Delete:      "Delete",
	End:         "End",
	PgDown:      "PgDown",
	Right:       "Right",
	Left:        "Left",
	Down:        "Down",
	Up:          "Up",
	NumLock:     "NumLock",
	KpSlash:     "KpSlash",
	KpAsterisk:  "KpAsterisk",
	KpMinus:     "KpMinus",
	KpPlus:      "KpPlus",
	KpEnter:     "KpEnter",
	Kp1:         "Kp1",
	Kp2:         "Kp2",
	Kp3:         "Kp3",
	Kp4:         "Kp4",
	Kp5:         "Kp5",
	Kp6:         "Kp6",
	Kp7:         "Kp7",
	Kp8:         "Kp8",
	Kp9:         "Kp9",
	Kp0:         "Kp0",
	KpDot:       "KpDot",
	NonUsBslash: "NonUsBslash",
	Application: "Application",
	Power:       "Power",
	KpEqual:     "KpEqual",
	F13:         "F13",
	F14:         "F14",
	F15:         "F15",
	F16:         "F16",
	F17:         "F17",
	F18:         "F18",
	F19:         "F19",
	F20:         "F20",
	F21:         "F21",
	F22:         "F22",
	F23:         "F23",
	F24:         "F24",
	Mute:        "Mute",
	VolUp:       "VolUp",
	VolDown:     "VolDown",
	LCtrl:       "LCtrl",
	LShift:      "LShift",
	LAlt:        "LAlt",
	LGui:        "LGui",
	RCtrl:       "RCtrl",
	RShift:      "RShift",
	RAlt:        "RAlt",
	RGui:        "RGui",
}
