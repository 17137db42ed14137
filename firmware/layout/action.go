// Package layout interprets a layered keymap: momentary layers, hold-tap
// keys and custom actions, producing the set of active key codes per tick.
package layout

import (
	"fmt"

	"splitkb/firmware/keycode"
)

// ActionKind selects the variant held by an Action.
type ActionKind uint8

const (
	// KindTrans falls through to the next active layer below.
	KindTrans ActionKind = iota
	KindNoOp
	KindKey
	KindLayer
	KindHoldTap
	KindCustom
)

func (k ActionKind) String() string {
	switch k {
	case KindTrans:
		return "trans"
	case KindNoOp:
		return "noop"
	case KindKey:
		return "key"
	case KindLayer:
		return "layer"
	case KindHoldTap:
		return "holdtap"
	case KindCustom:
		return "custom"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// HoldTapConfig decides how other keys influence an undecided hold-tap.
type HoldTapConfig uint8

const (
	// HoldTapDefault resolves only on release (tap) or timeout (hold).
	HoldTapDefault HoldTapConfig = iota
	// HoldOnOtherKeyPress resolves as hold as soon as another key goes down.
	HoldOnOtherKeyPress
	// PermissiveHold resolves as hold when another key is pressed and
	// released while undecided.
	PermissiveHold
)

func (c HoldTapConfig) String() string {
	switch c {
	case HoldTapDefault:
		return "default"
	case HoldOnOtherKeyPress:
		return "hold-on-other"
	case PermissiveHold:
		return "permissive"
	default:
		return fmt.Sprintf("config(%d)", uint8(c))
	}
}

// HoldTapAction is the payload of a KindHoldTap action.
type HoldTapAction struct {
	Hold    Action
	Tap     Action
	Timeout uint16 // ticks
	Config  HoldTapConfig
}

// Action is one keymap cell. The zero value is Trans.
type Action struct {
	Kind    ActionKind
	Key     keycode.Code
	Layer   uint8
	Custom  uint8
	HoldTap *HoldTapAction
}

var (
	Trans = Action{Kind: KindTrans}
	NoOp  = Action{Kind: KindNoOp}
)

// K returns an action that emits code while held.
func K(code keycode.Code) Action { return Action{Kind: KindKey, Key: code} }

// L returns an action that activates layer n while held.
func L(n uint8) Action { return Action{Kind: KindLayer, Layer: n} }

// C returns a custom action carrying payload.
func C(payload uint8) Action { return Action{Kind: KindCustom, Custom: payload} }

// HT returns a hold-tap action.
func HT(hold, tap Action, timeout uint16, cfg HoldTapConfig) Action {
	return Action{Kind: KindHoldTap, HoldTap: &HoldTapAction{Hold: hold, Tap: tap, Timeout: timeout, Config: cfg}}
}

func (a Action) String() string {
	switch a.Kind {
	case KindTrans:
		return "_"
	case KindNoOp:
		return "XX"
	case KindKey:
		return a.Key.String()
	case KindLayer:
		return fmt.Sprintf("L%d", a.Layer)
	case KindCustom:
		return fmt.Sprintf("C%d", a.Custom)
	case KindHoldTap:
		if a.HoldTap == nil {
			return "HT(?)"
		}
		return fmt.Sprintf("HT(%v,%v)", a.HoldTap.Hold, a.HoldTap.Tap)
	default:
		return a.Kind.String()
	}
}

// Layers is the keymap: layer, then row, then column.
type Layers [][][]Action
