package keymapfile

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"strings"

	"splitkb/firmware/layout"
)

// WriteGo writes Go source declaring fn in package pkg that returns layers.
func WriteGo(w io.Writer, pkg, fn string, layers layout.Layers) error {
	var b bytes.Buffer
	fmt.Fprintf(&b, "// Code generated by kbtool gen; DO NOT EDIT.\n\npackage %s\n\n", pkg)
	b.WriteString("import (\n\t\"splitkb/firmware/keycode\"\n\t\"splitkb/firmware/layout\"\n)\n\n")
	b.WriteString("var _ keycode.Code\n\n")
	fmt.Fprintf(&b, "func %s() layout.Layers {\n\treturn layout.Layers{\n", fn)
	for _, layer := range layers {
		b.WriteString("{\n")
		for _, row := range layer {
			cells := make([]string, len(row))
			for i, a := range row {
				cells[i] = goExpr(a)
			}
			fmt.Fprintf(&b, "{%s},\n", strings.Join(cells, ", "))
		}
		b.WriteString("},\n")
	}
	b.WriteString("}\n}\n")

	src, err := format.Source(b.Bytes())
	if err != nil {
		return fmt.Errorf("failed to format generated source: %w", err)
	}
	_, err = w.Write(src)
	return err
}

func goExpr(a layout.Action) string {
	switch a.Kind {
	case layout.KindTrans:
		return "layout.Trans"
	case layout.KindNoOp:
		return "layout.NoOp"
	case layout.KindKey:
		name := a.Key.String()
		if strings.HasPrefix(name, "0x") {
			return fmt.Sprintf("layout.K(keycode.Code(%s))", name)
		}
		return "layout.K(keycode." + name + ")"
	case layout.KindLayer:
		return fmt.Sprintf("layout.L(%d)", a.Layer)
	case layout.KindCustom:
		return fmt.Sprintf("layout.C(%d)", a.Custom)
	case layout.KindHoldTap:
		ht := a.HoldTap
		if ht == nil {
			return "layout.NoOp"
		}
		return fmt.Sprintf("layout.HT(%s, %s, %d, layout.%s)", goExpr(ht.Hold), goExpr(ht.Tap), ht.Timeout, configIdent(ht.Config))
	default:
		return "layout.NoOp"
	}
}

func configIdent(c layout.HoldTapConfig) string {
	switch c {
	case layout.HoldOnOtherKeyPress:
		return "HoldOnOtherKeyPress"
	case layout.PermissiveHold:
		return "PermissiveHold"
	default:
		return "HoldTapDefault"
	}
}
